package agenda

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Below this width hint DistinctDays emits abbreviated day labels.
const dayLabelWideMinWidth = 1350

const (
	dayLabelNarrowLayout = "Mon Jan 2"
	dayLabelWideLayout   = "Monday, January 2, 2006"
)

// Projector turns a raw schedule plus user display state into the
// display-ready event list. It is pure with respect to its inputs:
// calling Project twice with identical arguments yields identical
// output.
type Projector struct {
	adjuster *Adjuster
}

func NewProjector(adjuster *Adjuster) *Projector {
	return &Projector{adjuster: adjuster}
}

// Project applies filtering (categories, lead exclusion, picker subset,
// search) and then time adjustment and link resolution per surviving
// event. Output preserves input order; callers needing chronological
// order must sort explicitly. An empty display timezone falls back to
// the meeting's own zone.
func (p *Projector) Project(schedule []Event, meeting Meeting, state FilterState) ([]ProjectedEvent, error) {
	meetingLoc, err := time.LoadLocation(meeting.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load meeting timezone %q: %w", meeting.Timezone, err)
	}
	displayLoc := meetingLoc
	if state.Timezone != "" && state.Timezone != meeting.Timezone {
		displayLoc, err = time.LoadLocation(state.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load display timezone %q: %w", state.Timezone, err)
		}
	}

	var picked map[string]struct{}
	if state.PickerMode && state.PickerModeView {
		picked = make(map[string]struct{}, len(state.PickedEvents))
		for _, id := range state.PickedEvents {
			picked[id] = struct{}{}
		}
	}

	projected := make([]ProjectedEvent, 0, len(schedule))
	for _, ev := range schedule {
		if !includeEvent(ev, state, picked) {
			continue
		}

		start, end, err := p.adjuster.Adjust(ev, meetingLoc, displayLoc)
		if err != nil {
			return nil, err
		}

		links := ev.Links
		links.VideoStream = ExpandTemplate(ev.Links.VideoStream, ev, meeting.Number)
		links.AudioStream = ExpandTemplate(ev.Links.AudioStream, ev, meeting.Number)
		links.OnsiteTool = ExpandTemplate(ev.Links.OnsiteTool, ev, meeting.Number)
		links.RemoteCallIn = resolveCallIn(ev)

		sessionKeyword := ev.GroupAcronym
		if ev.SessionToken != "" {
			sessionKeyword = ev.GroupAcronym + "-" + ev.SessionToken
		}

		projected = append(projected, ProjectedEvent{
			Event:             ev,
			AdjustedStart:     start,
			AdjustedEnd:       end,
			AdjustedStartDate: start.Format(time.DateOnly),
			Links:             links,
			SessionKeyword:    sessionKeyword,
		})
	}
	return projected, nil
}

func includeEvent(ev Event, state FilterState, picked map[string]struct{}) bool {
	if len(state.SelectedCatSubs) > 0 && !keywordsIntersect(ev.FilterKeywords, state.SelectedCatSubs) {
		return false
	}

	// Administrative placeholder rows are never shown.
	if ev.Type == EventTypeLead {
		return false
	}

	if picked != nil {
		if _, ok := picked[ev.ID]; !ok {
			return false
		}
	}

	if state.SearchVisible && state.SearchText != "" {
		searchable := strings.ToLower(ev.Name + " " + ev.GroupName + " " + ev.Acronym + " " + ev.Room + " " + ev.Note)
		if !strings.Contains(searchable, state.SearchText) {
			return false
		}
	}
	return true
}

func keywordsIntersect(keywords, selected []string) bool {
	for _, k := range keywords {
		for _, s := range selected {
			if k == s {
				return true
			}
		}
	}
	return false
}

// DistinctDays derives the ordered set of calendar days present in the
// projected schedule. Dedup is by adjusted start date, first occurrence
// wins; the dates are sorted lexicographically (ISO dates sort
// correctly as strings) before the list is built, so day order is
// deterministic even when the source events are not chronological. The
// width hint selects an abbreviated or fully spelled-out label.
func DistinctDays(projected []ProjectedEvent, widthHint int) []Day {
	firstID := make(map[string]string)
	dates := make([]string, 0)
	for _, ev := range projected {
		if _, seen := firstID[ev.AdjustedStartDate]; seen {
			continue
		}
		firstID[ev.AdjustedStartDate] = ev.ID
		dates = append(dates, ev.AdjustedStartDate)
	}
	sort.Strings(dates)

	layout := dayLabelWideLayout
	if widthHint < dayLabelWideMinWidth {
		layout = dayLabelNarrowLayout
	}

	days := make([]Day, 0, len(dates))
	for _, date := range dates {
		label := date
		if d, err := time.Parse(time.DateOnly, date); err == nil {
			label = d.Format(layout)
		}
		days = append(days, Day{ID: firstID[date], Date: date, Label: label})
	}
	return days
}

// IsLive reports whether the meeting is in progress at now: some
// projected event started strictly before now and some projected event
// ends strictly after now. This is deliberately a loose existence check,
// not a containment check on a single event; a gap schedule with no
// event covering now still reports live.
func IsLive(projected []ProjectedEvent, now time.Time) bool {
	afterStart := false
	beforeEnd := false
	for _, ev := range projected {
		if ev.AdjustedStart.Before(now) {
			afterStart = true
		}
		if ev.AdjustedEnd.After(now) {
			beforeEnd = true
		}
		if afterStart && beforeEnd {
			return true
		}
	}
	return false
}
