package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// KV is the persistence capability the store runs on. Each key is
// written independently by the underlying medium.
type KV interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

const (
	keyTimezone         = "timezone"
	keyHideInfo         = "hideInfo"
	keyColorAssignments = "colorAssignments"
	keyPickedEvents     = "pickedEvents"
)

// Store reads and writes Preferences namespaced by meeting number.
type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

func prefKey(meetingNumber, suffix string) string {
	return fmt.Sprintf("agenda.%s.%s", meetingNumber, suffix)
}

// Load reads the persisted preferences for a meeting. A missing or
// malformed value falls back to its default (empty timezone, no
// acknowledgement, empty color map, empty picked set) without blocking
// the other keys; only medium errors are returned.
func (s *Store) Load(ctx context.Context, meetingNumber string) (Preferences, error) {
	prefs := Preferences{
		ColorAssignments: map[string]string{},
		PickedEvents:     []string{},
	}

	tz, ok, err := s.kv.Get(ctx, prefKey(meetingNumber, keyTimezone))
	if err != nil {
		return prefs, fmt.Errorf("load timezone: %w", err)
	}
	if ok {
		prefs.Timezone = tz
	}

	ack, ok, err := s.kv.Get(ctx, prefKey(meetingNumber, keyHideInfo))
	if err != nil {
		return prefs, fmt.Errorf("load info note ack: %w", err)
	}
	if ok {
		prefs.InfoNoteAck = ack
	}

	if raw, ok, err := s.kv.Get(ctx, prefKey(meetingNumber, keyColorAssignments)); err != nil {
		return prefs, fmt.Errorf("load color assignments: %w", err)
	} else if ok {
		var colors map[string]string
		if jerr := json.Unmarshal([]byte(raw), &colors); jerr != nil {
			slog.Warn("discarding malformed color assignments", "meeting", meetingNumber, "error", jerr)
		} else {
			prefs.ColorAssignments = colors
		}
	}

	if raw, ok, err := s.kv.Get(ctx, prefKey(meetingNumber, keyPickedEvents)); err != nil {
		return prefs, fmt.Errorf("load picked events: %w", err)
	} else if ok {
		var picked []string
		if jerr := json.Unmarshal([]byte(raw), &picked); jerr != nil {
			slog.Warn("discarding malformed picked events", "meeting", meetingNumber, "error", jerr)
		} else {
			prefs.PickedEvents = picked
		}
	}

	return prefs, nil
}

// Save writes all preference keys for a meeting. The keys are written
// independently, so other readers may briefly observe a partial update:
// the guarantee is "eventually all written", not a transaction. An empty
// acknowledgement removes the stored hash.
func (s *Store) Save(ctx context.Context, meetingNumber string, prefs Preferences) error {
	var errs []error

	if err := s.kv.Set(ctx, prefKey(meetingNumber, keyTimezone), prefs.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("save timezone: %w", err))
	}

	if prefs.InfoNoteAck == "" {
		if err := s.kv.Delete(ctx, prefKey(meetingNumber, keyHideInfo)); err != nil {
			errs = append(errs, fmt.Errorf("clear info note ack: %w", err))
		}
	} else {
		if err := s.kv.Set(ctx, prefKey(meetingNumber, keyHideInfo), prefs.InfoNoteAck); err != nil {
			errs = append(errs, fmt.Errorf("save info note ack: %w", err))
		}
	}

	colors := prefs.ColorAssignments
	if colors == nil {
		colors = map[string]string{}
	}
	colorJSON, err := json.Marshal(colors)
	if err != nil {
		errs = append(errs, fmt.Errorf("encode color assignments: %w", err))
	} else if err := s.kv.Set(ctx, prefKey(meetingNumber, keyColorAssignments), string(colorJSON)); err != nil {
		errs = append(errs, fmt.Errorf("save color assignments: %w", err))
	}

	picked := prefs.PickedEvents
	if picked == nil {
		picked = []string{}
	}
	pickedJSON, err := json.Marshal(picked)
	if err != nil {
		errs = append(errs, fmt.Errorf("encode picked events: %w", err))
	} else if err := s.kv.Set(ctx, prefKey(meetingNumber, keyPickedEvents), string(pickedJSON)); err != nil {
		errs = append(errs, fmt.Errorf("save picked events: %w", err))
	}

	return errors.Join(errs...)
}
