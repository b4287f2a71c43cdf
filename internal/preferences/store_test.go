package preferences

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeKV struct {
	data    map[string]string
	failGet bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, bool, error) {
	if f.failGet {
		return "", false, errors.New("medium unavailable")
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func TestNoteHash_Deterministic(t *testing.T) {
	a := NoteHash("Welcome to the meeting")
	b := NoteHash("Welcome to the meeting")
	if a != b {
		t.Fatalf("hash is not deterministic: %s vs %s", a, b)
	}
	if a == NoteHash("Welcome to the meeting!") {
		t.Fatal("different texts must not share a hash")
	}
	if a == "" {
		t.Fatal("hash must not be empty")
	}
}

func TestLoad_Defaults(t *testing.T) {
	store := NewStore(newFakeKV())
	prefs, err := store.Load(context.Background(), "123")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if prefs.Timezone != "" {
		t.Fatalf("expected unset timezone, got %q", prefs.Timezone)
	}
	if prefs.InfoNoteAck != "" {
		t.Fatalf("expected no acknowledgement, got %q", prefs.InfoNoteAck)
	}
	if len(prefs.ColorAssignments) != 0 || prefs.ColorAssignments == nil {
		t.Fatalf("expected empty color map, got %v", prefs.ColorAssignments)
	}
	if len(prefs.PickedEvents) != 0 || prefs.PickedEvents == nil {
		t.Fatalf("expected empty picked set, got %v", prefs.PickedEvents)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	kv := newFakeKV()
	store := NewStore(kv)
	ctx := context.Background()

	in := Preferences{
		Timezone:         "Europe/Madrid",
		InfoNoteAck:      NoteHash("note text"),
		ColorAssignments: map[string]string{"42": "#0d6efd"},
		PickedEvents:     []string{"42", "77"},
	}
	if err := store.Save(ctx, "123", in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Keys are namespaced by meeting number.
	if _, ok := kv.data["agenda.123.timezone"]; !ok {
		t.Fatalf("timezone key not written: %v", kv.data)
	}

	out, err := store.Load(ctx, "123")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}

	// A different meeting sees none of it.
	other, err := store.Load(ctx, "124")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if other.Timezone != "" || len(other.PickedEvents) != 0 {
		t.Fatalf("meeting namespaces leaked: %+v", other)
	}
}

func TestSave_EmptyAckDeletesKey(t *testing.T) {
	kv := newFakeKV()
	store := NewStore(kv)
	ctx := context.Background()

	if err := store.Save(ctx, "123", Preferences{InfoNoteAck: NoteHash("x")}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, ok := kv.data["agenda.123.hideInfo"]; !ok {
		t.Fatal("acknowledgement hash not written")
	}

	if err := store.Save(ctx, "123", Preferences{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, ok := kv.data["agenda.123.hideInfo"]; ok {
		t.Fatal("empty acknowledgement must delete the stored hash")
	}
}

func TestLoad_MalformedJSONFallsBack(t *testing.T) {
	kv := newFakeKV()
	kv.data["agenda.123.timezone"] = "Asia/Tokyo"
	kv.data["agenda.123.colorAssignments"] = "{broken"
	kv.data["agenda.123.pickedEvents"] = "[1,2" // truncated

	prefs, err := NewStore(kv).Load(context.Background(), "123")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	// One bad key never blocks the others.
	if prefs.Timezone != "Asia/Tokyo" {
		t.Fatalf("valid key lost: %q", prefs.Timezone)
	}
	if len(prefs.ColorAssignments) != 0 {
		t.Fatalf("malformed colors must fall back to empty, got %v", prefs.ColorAssignments)
	}
	if len(prefs.PickedEvents) != 0 {
		t.Fatalf("malformed picked events must fall back to empty, got %v", prefs.PickedEvents)
	}
}

func TestLoad_MediumError(t *testing.T) {
	kv := newFakeKV()
	kv.failGet = true
	if _, err := NewStore(kv).Load(context.Background(), "123"); err == nil {
		t.Fatal("expected error when the medium fails")
	}
}

func TestIsAcknowledged_Invalidation(t *testing.T) {
	prefs := Preferences{InfoNoteAck: NoteHash("note A")}
	if !prefs.IsAcknowledged("note A") {
		t.Fatal("matching hash must count as acknowledged")
	}
	// Any edit to the note text silently resets the acknowledgement.
	if prefs.IsAcknowledged("note B") {
		t.Fatal("changed note must invalidate the acknowledgement")
	}

	empty := Preferences{}
	if empty.IsAcknowledged("") {
		t.Fatal("missing hash never counts as acknowledged")
	}
}
