// Package payload reads the agenda-data document the core is handed by
// its data-fetch collaborator. The core itself never fetches; this
// loader stands at that boundary and validates required fields so the
// projection code can trust its inputs.
package payload

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/confbase/agendakit/internal/agenda"
)

func LoadFile(path string) (*agenda.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read agenda data: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*agenda.Document, error) {
	var doc agenda.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode agenda data: %w", err)
	}
	if err := validate(&doc); err != nil {
		return nil, fmt.Errorf("invalid agenda data: %w", err)
	}
	return &doc, nil
}

func validate(doc *agenda.Document) error {
	if doc.Meeting.Number == "" {
		return fmt.Errorf("meeting number is missing")
	}
	if doc.Meeting.Timezone == "" {
		return fmt.Errorf("meeting timezone is missing")
	}
	if _, err := time.LoadLocation(doc.Meeting.Timezone); err != nil {
		return fmt.Errorf("meeting timezone %q: %w", doc.Meeting.Timezone, err)
	}

	seen := make(map[string]struct{}, len(doc.Schedule))
	for i, ev := range doc.Schedule {
		if ev.ID == "" {
			return fmt.Errorf("schedule entry %d has no id", i)
		}
		if _, dup := seen[ev.ID]; dup {
			return fmt.Errorf("schedule entry %d has duplicate id %s", i, ev.ID)
		}
		seen[ev.ID] = struct{}{}
		if _, err := time.Parse(agenda.StartTimeLayout, ev.StartDateTime); err != nil {
			return fmt.Errorf("schedule entry %s has bad start time %q: %w", ev.ID, ev.StartDateTime, err)
		}
		if ev.Duration < 0 {
			return fmt.Errorf("schedule entry %s has negative duration %d", ev.ID, ev.Duration)
		}
	}
	return nil
}
