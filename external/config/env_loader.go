package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/confbase/agendakit/internal/config"
)

type envConfig struct {
	Env             string `env:"ENV" envDefault:"production"`
	AgendaDataPath  string `env:"AGENDA_DATA_PATH,required"`
	StoreDriver     string `env:"STORE_DRIVER" envDefault:"memory"`
	DatabaseURL     string `env:"DATABASE_URL"`
	SQLitePath      string `env:"SQLITE_PATH" envDefault:"./data/agendakit.db"`
	DisplayTimezone string `env:"DISPLAY_TIMEZONE"`
	DayLabelWidth   int    `env:"DAY_LABEL_WIDTH" envDefault:"1920"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:             raw.Env,
		AgendaDataPath:  raw.AgendaDataPath,
		StoreDriver:     internalconfig.StoreDriver(raw.StoreDriver),
		DatabaseURL:     raw.DatabaseURL,
		SQLitePath:      raw.SQLitePath,
		DisplayTimezone: raw.DisplayTimezone,
		DayLabelWidth:   raw.DayLabelWidth,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
