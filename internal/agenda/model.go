package agenda

import (
	"encoding/json"
	"time"
)

// StartTimeLayout is the wire format of Event.StartDateTime: a naive
// wall-clock time in the meeting's timezone, with no offset attached.
const StartTimeLayout = "2006-01-02T15:04:05"

type EventType string

const (
	EventTypeRegular EventType = "regular"
	EventTypeBreak   EventType = "break"
	EventTypePlenary EventType = "plenary"
	EventTypeLead    EventType = "lead"
	EventTypeOther   EventType = "other"
)

// Meeting describes the conference whose schedule is being displayed.
// Immutable once loaded for a session.
type Meeting struct {
	Number    string `json:"number"`
	City      string `json:"city"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Timezone  string `json:"timezone"`
	InfoNote  string `json:"infoNote"`
	Updated   string `json:"updated"`
}

// EventLinks holds the per-event link record. Values are either literal
// URLs or templates containing placeholders (see ExpandTemplate).
// RemoteCallIn is only populated on projected events.
type EventLinks struct {
	Webex        string `json:"webex,omitempty"`
	VideoStream  string `json:"videoStream,omitempty"`
	AudioStream  string `json:"audioStream,omitempty"`
	OnsiteTool   string `json:"onsiteTool,omitempty"`
	Chat         string `json:"chat,omitempty"`
	Calendar     string `json:"calendar,omitempty"`
	RemoteCallIn string `json:"remoteCallIn,omitempty"`
}

// Event is a single raw schedule entry. Events are never mutated in
// place; projection produces derived copies.
type Event struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	StartDateTime      string     `json:"startDateTime"`
	Duration           int64      `json:"duration"` // seconds
	Type               EventType  `json:"type"`
	FilterKeywords     []string   `json:"filterKeywords"`
	GroupAcronym       string     `json:"groupAcronym"`
	GroupName          string     `json:"groupName"`
	Acronym            string     `json:"acronym"`
	Room               string     `json:"room"`
	Note               string     `json:"note"`
	RemoteInstructions string     `json:"remoteInstructions"`
	Short              string     `json:"short"`
	OrderInMeeting     int        `json:"orderInMeeting"`
	SessionToken       string     `json:"sessionToken"`
	Links              EventLinks `json:"links"`
}

// ProjectedEvent is an Event after time adjustment and link resolution.
// Links shadows the embedded record with the expanded version.
type ProjectedEvent struct {
	Event

	AdjustedStart     time.Time
	AdjustedEnd       time.Time
	AdjustedStartDate string // calendar date in the display timezone, "2006-01-02"
	Links             EventLinks
	SessionKeyword    string
}

// FilterState is the user-chosen display state, owned and mutated by the
// presentation layer and passed by value into projection. SearchText is
// matched against a lower-cased composite string; callers lower-case the
// query themselves.
type FilterState struct {
	Timezone        string
	SelectedCatSubs []string
	SearchText      string
	SearchVisible   bool
	PickerMode      bool
	PickerModeView  bool
	PickedEvents    []string
	NowDebugDiff    time.Duration
}

// EffectiveNow shifts the given instant back by the debug diff, if any.
func (s FilterState) EffectiveNow(now time.Time) time.Time {
	if s.NowDebugDiff == 0 {
		return now
	}
	return now.Add(-s.NowDebugDiff)
}

func (s FilterState) IsTimezoneMeeting(m Meeting) bool {
	return s.Timezone == m.Timezone
}

func (s FilterState) IsTimezoneLocal() bool {
	return s.Timezone == time.Local.String()
}

// Day is one distinct calendar day of the projected schedule.
type Day struct {
	ID    string // id of the first event on that day
	Date  string // "2006-01-02" in the display timezone
	Label string
}

// Document is the agenda-data payload handed over by the data-fetch
// collaborator. Categories and Floors are opaque pass-through for other
// UI concerns; the core consumes Meeting and Schedule only.
type Document struct {
	Meeting          Meeting         `json:"meeting"`
	Categories       json.RawMessage `json:"categories"`
	Schedule         []Event         `json:"schedule"`
	Floors           json.RawMessage `json:"floors"`
	IsCurrentMeeting bool            `json:"isCurrentMeeting"`
	UseHedgeDoc      bool            `json:"useHedgeDoc"`
}
