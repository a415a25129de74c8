package domain

import (
	"fmt"
	"strings"
)

type EntryKind string

const (
	EntryKindJournal    EntryKind = "journal"
	EntryKindWorkRecord EntryKind = "work-record"
)

// ParseEntryKind resolves a kind string, accepting the legacy "diary" and
// "portfolio" aliases. An empty string defaults to journal.
func ParseEntryKind(s string) (EntryKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "journal", "diary":
		return EntryKindJournal, nil
	case "work-record", "work_record", "work", "portfolio":
		return EntryKindWorkRecord, nil
	default:
		return "", NewValidationError("kind", fmt.Sprintf("unknown entry kind %q", s))
	}
}

type RecommendationType string

const (
	RecommendationCurated  RecommendationType = "curated"
	RecommendationExternal RecommendationType = "external"
)

func (t RecommendationType) Valid() bool {
	return t == RecommendationCurated || t == RecommendationExternal
}
