package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

const maxErrorDepth = 64

// detailed is an error that reports its own message and metadata without the
// rest of the chain, as zerr errors do.
type detailed interface {
	Message() string
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the chain of err. Joined errors contribute their
// members in order; metadata carried by an empty zerr wrapper is attached to
// the next entry.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var pending map[string]any

	for depth := 0; err != nil && depth < maxErrorDepth; depth++ {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, member := range joined.Unwrap() {
				sub := collectErrorEntries(member)
				if len(sub) > 0 && pending != nil {
					sub[0].Metadata = mergeMetadata(pending, sub[0].Metadata)
					pending = nil
				}
				entries = append(entries, sub...)
			}
			return entries
		}

		d, ok := err.(detailed)
		if !ok {
			entries = append(entries, ErrorEntry{Message: err.Error(), Metadata: pending})
			return entries
		}

		if d.Message() == "" {
			pending = mergeMetadata(pending, d.Metadata())
		} else {
			entries = append(entries, ErrorEntry{
				Message:  d.Message(),
				Metadata: mergeMetadata(pending, d.Metadata()),
			})
			pending = nil
		}
		err = errors.Unwrap(err)
	}

	return entries
}

func mergeMetadata(pending, own map[string]any) map[string]any {
	if pending == nil {
		return own
	}
	merged := maps.Clone(pending)
	maps.Copy(merged, own)
	return merged
}

// formatErrorEntries renders the entries as a main error followed by an
// indented list of causes.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		var indent string
		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			indent = "       "
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			lines = append(lines, "    → "+msgLines[0])
			indent = "      "
		}

		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
