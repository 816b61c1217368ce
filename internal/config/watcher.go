package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-reads a policy file on every write event and publishes the
// resulting PolicySnapshot on Snapshots. A failed reload (a transient
// half-written file, a bad edit) is published on Errors instead and the
// previously published snapshot is left standing.
type Watcher struct {
	path string

	w   *fsnotify.Watcher
	snC chan PolicySnapshot
	erC chan error
}

// NewWatcher loads path once to fail fast on a bad initial config, then
// starts watching it for subsequent edits.
func NewWatcher(path string) (*Watcher, error) {
	if _, err := Load(path); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}

	if err := fw.Add(path); err != nil {
		fw.Close()

		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	cw := &Watcher{
		path: path,
		w:    fw,
		snC:  make(chan PolicySnapshot, 1),
		erC:  make(chan error, 1),
	}

	go cw.loop()

	return cw, nil
}

func (cw *Watcher) loop() {
	for {
		select {
		case ev, ok := <-cw.w.Events:
			if !ok {
				return
			}

			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			snap, err := Load(cw.path)
			if err != nil {
				cw.publishError(err)

				continue
			}

			cw.publishSnapshot(snap)
		case err, ok := <-cw.w.Errors:
			if !ok {
				return
			}

			cw.publishError(err)
		}
	}
}

// publishSnapshot drops a stale unread value in favor of the fresh one: a
// consumer building the next Heap only ever cares about the latest edit.
func (cw *Watcher) publishSnapshot(snap PolicySnapshot) {
	select {
	case <-cw.snC:
	default:
	}

	cw.snC <- snap
}

func (cw *Watcher) publishError(err error) {
	select {
	case <-cw.erC:
	default:
	}

	cw.erC <- err
}

// Snapshots delivers the most recently loaded PolicySnapshot after each
// valid edit to the watched file.
func (cw *Watcher) Snapshots() <-chan PolicySnapshot { return cw.snC }

// Errors delivers a reload failure whenever an edit produces an invalid file.
func (cw *Watcher) Errors() <-chan error { return cw.erC }

// Close stops the watcher goroutine and releases the underlying fsnotify
// handle.
func (cw *Watcher) Close() error { return cw.w.Close() }
