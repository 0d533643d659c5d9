package store

import (
	"sort"
	"strings"
)

// DoctorReport describes the mismatches between a card's order sequence and
// its node records.
type DoctorReport struct {
	CardID string `json:"cardId"`

	// MissingRecords are sequence entries with no backing record.
	MissingRecords []string `json:"missingRecords,omitempty"`
	// OrphanRecords are records no sequence entry references.
	OrphanRecords []string `json:"orphanRecords,omitempty"`
	// DuplicateEntries are IDs appearing more than once in the sequence.
	DuplicateEntries []string `json:"duplicateEntries,omitempty"`

	Repaired bool `json:"repaired"`
}

func (r DoctorReport) Clean() bool {
	return len(r.MissingRecords) == 0 && len(r.OrphanRecords) == 0 && len(r.DuplicateEntries) == 0
}

// Doctor reconciles one card's sequence against its records. With repair
// set, missing and duplicate sequence entries are dropped and orphan
// records erased; the surviving sequence keeps its relative order, so the
// structural guarantees of the outline are untouched.
func (s Store) Doctor(cardID string, repair bool) (DoctorReport, error) {
	cardID = strings.TrimSpace(cardID)
	report := DoctorReport{CardID: cardID}
	if cardID == "" {
		return report, nil
	}

	records := s.CardRecords(cardID)
	seq := s.CardSequence(cardID)

	ids, err := seq.Get()
	if err != nil {
		return report, err
	}

	live := map[string]bool{}
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if live[id] {
			report.DuplicateEntries = append(report.DuplicateEntries, id)
			continue
		}
		if _, ok := records.Get(id); !ok {
			report.MissingRecords = append(report.MissingRecords, id)
			continue
		}
		live[id] = true
		cleaned = append(cleaned, id)
	}

	for _, id := range records.Keys() {
		if !live[id] {
			report.OrphanRecords = append(report.OrphanRecords, id)
		}
	}
	sort.Strings(report.OrphanRecords)

	if !repair || report.Clean() {
		return report, nil
	}

	if len(report.MissingRecords) > 0 || len(report.DuplicateEntries) > 0 {
		if err := seq.Replace(cleaned); err != nil {
			return report, err
		}
	}
	for _, id := range report.OrphanRecords {
		if err := records.Delete(id); err != nil {
			return report, err
		}
	}
	report.Repaired = true
	return report, nil
}
