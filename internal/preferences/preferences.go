// Package preferences persists per-meeting user choices (timezone,
// info-note acknowledgement, color tags, picked events) over an
// injected key-value capability.
package preferences

import (
	"strconv"

	"github.com/spaolacci/murmur3"
)

// Color is one entry of the tagging palette.
type Color struct {
	Hex string `json:"hex"`
	Tag string `json:"tag"`
}

// DefaultColors is the palette offered when the user has not assigned
// any tags yet.
var DefaultColors = []Color{
	{Hex: "#0d6efd", Tag: "Interesting"},
	{Hex: "#6f42c1", Tag: "Might Attend"},
	{Hex: "#d63384", Tag: "Important"},
	{Hex: "#ffc107", Tag: "Food"},
	{Hex: "#20c997", Tag: "Attended"},
}

// Preferences are the persisted user choices for one meeting.
type Preferences struct {
	// Timezone is the chosen display timezone; empty means the caller
	// should fall back to the meeting's own zone.
	Timezone string

	// InfoNoteAck is the content hash of the info note the user
	// dismissed; empty means the note has not been acknowledged.
	InfoNoteAck string

	// ColorAssignments maps event ids (or category keywords) to hex
	// colors.
	ColorAssignments map[string]string

	// PickedEvents is the user-curated event subset for picker mode.
	PickedEvents []string
}

// IsAcknowledged reports whether the stored acknowledgement still
// matches the current info note. Any edit to the note text changes the
// hash and silently resets the acknowledgement to "unseen".
func (p Preferences) IsAcknowledged(infoNote string) bool {
	return p.InfoNoteAck != "" && p.InfoNoteAck == NoteHash(infoNote)
}

// NoteHash computes the content hash used for info-note change
// detection: 32-bit murmur3 with seed 0, rendered in decimal. Fast and
// deterministic, not a security digest.
func NoteHash(text string) string {
	return strconv.FormatUint(uint64(murmur3.Sum32WithSeed([]byte(text), 0)), 10)
}
