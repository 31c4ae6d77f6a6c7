// Package view derives the visible, ordered subset of an inventory snapshot
// from a free-text filter and tracks the selected row. It is a pure
// projection: the snapshot stays owned by whoever produced it, and selection
// identity is the pid, not the row index.
package view

import (
	"strconv"
	"strings"

	"portwatch/internal/lsof"
)

// Matches reports whether the entry's command, decimal pid, or any of its
// ports contains filter as a substring. The empty filter matches everything.
func Matches(entry lsof.Entry, filter string) bool {
	if strings.Contains(entry.Command, filter) {
		return true
	}
	if strings.Contains(strconv.Itoa(entry.PID), filter) {
		return true
	}
	for _, port := range entry.Ports {
		if strings.Contains(port, filter) {
			return true
		}
	}
	return false
}

// Filter projects the snapshot onto the entries matching filter, preserving
// snapshot order.
func Filter(entries []lsof.Entry, filter string) []lsof.Entry {
	filtered := make([]lsof.Entry, 0, len(entries))
	for _, entry := range entries {
		if Matches(entry, filter) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// PreserveSelection resolves a previously selected pid against a freshly
// filtered view. ok == false means the process is gone from the view and the
// selection should be cleared.
func PreserveSelection(pid int, filtered []lsof.Entry) (int, bool) {
	for i, entry := range filtered {
		if entry.PID == pid {
			return i, true
		}
	}
	return -1, false
}

// Move shifts a selection index by delta within a view of size rows,
// clamping at both ends. With nothing selected yet (index < 0), moving down
// lands on the first row and moving up on the last. An empty view has no
// selectable row.
func Move(index, delta, size int) int {
	if size <= 0 {
		return -1
	}
	if index < 0 {
		if delta >= 0 {
			return 0
		}
		return size - 1
	}
	index += delta
	if index < 0 {
		return 0
	}
	if index >= size {
		return size - 1
	}
	return index
}
