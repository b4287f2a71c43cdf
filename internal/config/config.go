package config

import (
	"fmt"
	"time"
)

type StoreDriver string

const (
	StoreDriverMemory   StoreDriver = "memory"
	StoreDriverSQLite   StoreDriver = "sqlite"
	StoreDriverPostgres StoreDriver = "postgres"
)

type Config struct {
	Env             string
	AgendaDataPath  string
	StoreDriver     StoreDriver
	DatabaseURL     string
	SQLitePath      string
	DisplayTimezone string
	DayLabelWidth   int
}

func (c *Config) Validate() error {
	if c.AgendaDataPath == "" {
		return fmt.Errorf("AGENDA_DATA_PATH is required")
	}
	switch c.StoreDriver {
	case StoreDriverMemory:
	case StoreDriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORE_DRIVER=sqlite")
		}
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be memory, sqlite or postgres, got %q", c.StoreDriver)
	}
	if c.DisplayTimezone != "" {
		if _, err := time.LoadLocation(c.DisplayTimezone); err != nil {
			return fmt.Errorf("DISPLAY_TIMEZONE is invalid: %w", err)
		}
	}
	if c.DayLabelWidth < 0 {
		return fmt.Errorf("DAY_LABEL_WIDTH must not be negative, got %d", c.DayLabelWidth)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
