// Package config loads the small JSON policy file that tells a fresh Heap
// what placement policy and arena size to use, and watches it for edits so
// a long-running driver can pick up a new policy without a restart.
//
// Nothing in this package ever touches a live allocator.Heap: it only ever
// produces PolicySnapshot values consumed when the *next* Heap is
// constructed, matching the allocator's re-initialization non-goal.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/orizon-lang/memregion/internal/allocator"
	allocerrors "github.com/orizon-lang/memregion/internal/errors"
)

// PolicyFile is the on-disk JSON shape.
type PolicyFile struct {
	Policy     string `json:"policy"`
	ArenaBytes int    `json:"arena_bytes"`
}

// PolicySnapshot is the validated, in-memory form of a PolicyFile: the
// string has already been resolved to an allocator.Policy.
type PolicySnapshot struct {
	Policy     allocator.Policy
	ArenaBytes int
}

// policyByName mirrors the names the CLI and the policy file accept.
var policyByName = map[string]allocator.Policy{
	"best":      allocator.BestFit,
	"best-fit":  allocator.BestFit,
	"first":     allocator.FirstFit,
	"first-fit": allocator.FirstFit,
	"worst":     allocator.WorstFit,
	"worst-fit": allocator.WorstFit,
}

// ParsePolicyName resolves a policy file's or CLI flag's string to an
// allocator.Policy, or fails for anything not in policyByName.
func ParsePolicyName(name string) (allocator.Policy, error) {
	p, ok := policyByName[name]
	if !ok {
		return 0, allocerrors.InitRejected("UNKNOWN_POLICY_NAME",
			"policy file names an unrecognized placement policy", map[string]interface{}{
				"name": name,
			})
	}

	return p, nil
}

// Load reads and validates the policy file at path.
func Load(path string) (PolicySnapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PolicySnapshot{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var pf PolicyFile
	if err := json.Unmarshal(raw, &pf); err != nil {
		return PolicySnapshot{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	policy, err := ParsePolicyName(pf.Policy)
	if err != nil {
		return PolicySnapshot{}, err
	}

	if pf.ArenaBytes <= 0 {
		return PolicySnapshot{}, allocerrors.InitRejected("INVALID_ARENA_BYTES",
			"policy file names a non-positive arena_bytes", map[string]interface{}{
				"arena_bytes": pf.ArenaBytes,
			})
	}

	return PolicySnapshot{Policy: policy, ArenaBytes: pf.ArenaBytes}, nil
}
