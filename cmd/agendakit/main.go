package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	configloader "github.com/confbase/agendakit/external/config"
	"github.com/confbase/agendakit/external/kvstore"
	"github.com/confbase/agendakit/external/payload"
	"github.com/confbase/agendakit/internal/agenda"
	"github.com/confbase/agendakit/internal/config"
	"github.com/confbase/agendakit/internal/preferences"
	"github.com/samber/do/v2"
)

const storeTimeout = 10 * time.Second

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env, "store_driver", cfg.StoreDriver)

	injector := setupDI(cfg)

	if err := run(cfg, injector); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	kvstore.RegisterDI(injector)
	preferences.RegisterDI(injector)
	agenda.RegisterDI(injector)

	return injector
}

func run(cfg *config.Config, injector do.Injector) error {
	doc, err := payload.LoadFile(cfg.AgendaDataPath)
	if err != nil {
		return fmt.Errorf("failed to load this meeting: %w", err)
	}
	slog.Info("agenda data loaded",
		"meeting", doc.Meeting.Number,
		"timezone", doc.Meeting.Timezone,
		"events", len(doc.Schedule))

	store, err := do.Invoke[*preferences.Store](injector)
	if err != nil {
		return fmt.Errorf("failed to resolve preference store: %w", err)
	}
	projector, err := do.Invoke[*agenda.Projector](injector)
	if err != nil {
		return fmt.Errorf("failed to resolve projector: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	prefs, err := store.Load(ctx, doc.Meeting.Number)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	// Display timezone: explicit override, then the persisted choice,
	// then the meeting's own zone.
	timezone := cfg.DisplayTimezone
	if timezone == "" {
		timezone = prefs.Timezone
	}
	if timezone == "" {
		timezone = doc.Meeting.Timezone
	}

	state := agenda.FilterState{
		Timezone:     timezone,
		PickedEvents: prefs.PickedEvents,
	}

	projected, err := projector.Project(doc.Schedule, doc.Meeting, state)
	if err != nil {
		return fmt.Errorf("failed to project schedule: %w", err)
	}

	now := state.EffectiveNow(time.Now())
	days := agenda.DistinctDays(projected, cfg.DayLabelWidth)
	currentID := agenda.FindCurrent(projected, now)
	live := agenda.IsLive(projected, now)

	slog.Info("schedule projected",
		"visible_events", len(projected),
		"days", len(days),
		"live", live,
		"current_event", currentID,
		"info_note_acknowledged", prefs.IsAcknowledged(doc.Meeting.InfoNote))

	printAgenda(doc.Meeting, projected, days, currentID)

	prefs.Timezone = timezone
	if err := store.Save(ctx, doc.Meeting.Number, prefs); err != nil {
		return fmt.Errorf("failed to persist preferences: %w", err)
	}
	return nil
}

func printAgenda(meeting agenda.Meeting, projected []agenda.ProjectedEvent, days []agenda.Day, currentID string) {
	fmt.Printf("Meeting %s (%s)\n", meeting.Number, meeting.City)
	for _, day := range days {
		fmt.Printf("\n%s\n", day.Label)
		for _, ev := range projected {
			if ev.AdjustedStartDate != day.Date {
				continue
			}
			marker := " "
			if ev.ID == currentID {
				marker = ">"
			}
			fmt.Printf("%s %s - %s  %-40s %s\n",
				marker,
				ev.AdjustedStart.Format("15:04"),
				ev.AdjustedEnd.Format("15:04"),
				ev.Name,
				ev.Room)
			if ev.Links.RemoteCallIn != "" {
				fmt.Printf("    call-in: %s\n", ev.Links.RemoteCallIn)
			}
		}
	}
}
