package index

import "strings"

// IsStaleLiveCopy classifies an indexed filename as a prior copy of the live
// document: an exact match on the canonical live filename, or a substring
// match on the stable marker token. The file id changes on every upload, so
// filename heuristics are the only identity available. Unresolved filenames
// never match; deleting an unidentified file is worse than leaving a stale
// copy for the next run.
func IsStaleLiveCopy(filename, marker string) bool {
	if filename == "" || marker == "" {
		return false
	}
	if filename == marker+".txt" {
		return true
	}
	return strings.Contains(filename, marker)
}
