package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// ModuleProgress tracks one user's checkpoint completion within one module.
// Exactly one row exists per (UserID, ModuleID); updates replace the
// checkpoint set wholesale (last writer wins).
type ModuleProgress struct {
	ID             int64
	UserID         int64
	ModuleID       int
	Checkpoints    CheckpointSet
	Completed      bool
	LastAccessedAt time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CheckpointSet is the set of checkpoint indices a user has completed within
// a module. The storage layer encodes it as comma-delimited text ("0,1,2");
// business logic only ever sees the set form.
type CheckpointSet map[int]struct{}

// NewCheckpointSet builds a set from the given indices, dropping duplicates.
func NewCheckpointSet(indices ...int) CheckpointSet {
	s := make(CheckpointSet, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

// ParseCheckpointSet decodes the comma-delimited storage form.
// Blank and non-numeric segments are skipped, so legacy values with stray
// delimiters ("0,,2") decode cleanly.
func ParseCheckpointSet(encoded string) CheckpointSet {
	s := make(CheckpointSet)
	for _, part := range strings.Split(encoded, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		s[n] = struct{}{}
	}
	return s
}

// Add marks a checkpoint as completed.
func (s CheckpointSet) Add(index int) {
	s[index] = struct{}{}
}

// Has reports whether the checkpoint is completed.
func (s CheckpointSet) Has(index int) bool {
	_, ok := s[index]
	return ok
}

// Len returns the number of completed checkpoints.
func (s CheckpointSet) Len() int { return len(s) }

// Sorted returns the indices in ascending order. Never nil.
func (s CheckpointSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Encode returns the comma-delimited storage form ("" for an empty set).
func (s CheckpointSet) Encode() string {
	indices := s.Sorted()
	parts := make([]string, len(indices))
	for i, n := range indices {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// Complete reports whether the set satisfies the module's checkpoint count.
// Completion is derived here rather than trusted from the client.
func (s CheckpointSet) Complete(checkpointsPerModule int) bool {
	return checkpointsPerModule > 0 && len(s) >= checkpointsPerModule
}
