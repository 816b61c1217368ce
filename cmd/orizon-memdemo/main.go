// Command orizon-memdemo drives the single-region free-list allocator from
// the command line. It wires together the region provider, the JSON policy
// loader (with optional fsnotify hot reload), and the dump formatter, and
// can run the library's own reference scenarios on demand.
package main

import (
	"flag"
	"fmt"
	"os"
	"unsafe"

	"github.com/orizon-lang/memregion/internal/allocator"
	"github.com/orizon-lang/memregion/internal/config"
	"github.com/orizon-lang/memregion/internal/region"
)

func main() {
	var (
		policyName string
		arenaBytes int
		configFile string
		provider   string
		scenario   string
		watch      bool
	)

	flag.StringVar(&policyName, "policy", "best", "placement policy (best|first|worst)")
	flag.IntVar(&arenaBytes, "arena", 4096, "requested region size in bytes")
	flag.StringVar(&configFile, "config", "", "optional JSON policy file; overrides -policy/-arena when set")
	flag.StringVar(&provider, "provider", "mem", "region provider (mem|os)")
	flag.StringVar(&scenario, "scenario", "", "replay the policy-distinguishing allocation sequence under -policy before printing the dump (the value only labels the output)")
	flag.BoolVar(&watch, "watch", false, "watch -config for edits and report the reloaded policy (requires -config)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if watch {
		if configFile == "" {
			fatal("-watch requires -config")
		}

		runWatch(configFile)

		return
	}

	policy, size, err := resolvePolicy(configFile, policyName, arenaBytes)
	if err != nil {
		fatal(err.Error())
	}

	prov, err := resolveProvider(provider)
	if err != nil {
		fatal(err.Error())
	}

	h := allocator.New(allocator.WithProvider(prov))
	if err := h.Init(size, policy); err != nil {
		fatal(fmt.Sprintf("init failed: %v", err))
	}

	if scenario != "" {
		runScenario(h, scenario)
	}

	fmt.Print(h.Dump())

	if err := config.CheckDumpFormat(h.Snapshot().FormatVersion); err != nil {
		fatal(err.Error())
	}
}

func resolvePolicy(configFile, policyName string, arenaBytes int) (allocator.Policy, int, error) {
	if configFile != "" {
		snap, err := config.Load(configFile)
		if err != nil {
			return 0, 0, err
		}

		return snap.Policy, snap.ArenaBytes, nil
	}

	policy, err := config.ParsePolicyName(policyName)
	if err != nil {
		return 0, 0, err
	}

	return policy, arenaBytes, nil
}

func resolveProvider(name string) (region.Provider, error) {
	switch name {
	case "mem":
		return region.NewMemProvider(0), nil
	case "os":
		return region.NewOSProvider(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want mem|os)", name)
	}
}

// runScenario replays the literal allocation/release sequence used to
// distinguish the three placement policies under the heap's own policy,
// then reports where the final small allocation landed. name is used only
// in messages.
func runScenario(h *allocator.Heap, name string) {
	sizes := []int{300, 200, 200, 100, 200, 800, 500, 700, 300}

	var ptrs []unsafe.Pointer

	for _, sz := range sizes {
		ptr, ok := h.Allocate(sz)
		if !ok {
			fatal(fmt.Sprintf("scenario %q: allocation of %d bytes failed", name, sz))
		}

		ptrs = append(ptrs, ptr)
	}

	// Release b, d, f, h (1-based letters b/d/f/h => indices 1,3,5,7).
	for _, idx := range []int{1, 3, 5, 7} {
		if err := h.Release(ptrs[idx]); err != nil {
			fatal(fmt.Sprintf("scenario %q: release of block %d failed: %v", name, idx, err))
		}
	}

	t, ok := h.Allocate(50)
	if !ok {
		fatal(fmt.Sprintf("scenario %q: final allocation failed", name))
	}

	fmt.Printf("scenario %s: final allocation landed at %p\n", name, t)
}

func runWatch(path string) {
	w, err := config.NewWatcher(path)
	if err != nil {
		fatal(err.Error())
	}
	defer w.Close()

	fmt.Printf("watching %s for edits (ctrl-c to stop)\n", path)

	for {
		select {
		case snap := <-w.Snapshots():
			fmt.Printf("reloaded: policy=%s arena_bytes=%d\n", snap.Policy, snap.ArenaBytes)
		case err := <-w.Errors():
			fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
		}
	}
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
