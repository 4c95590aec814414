package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the resolved pipeline configuration: environment first,
// then the optional TOML file, then built-in defaults.
type Config struct {
	DataDir     string
	DBPath      string
	GeniusToken string
	ChartFile   string

	StartYear int
	EndYear   int
	Workers   int

	OutlierMin   float64
	OutlierMax   float64
	BoundaryYear int

	MinRecords        int
	MaxMissingPercent float64
}

// fileConfig mirrors the TOML file. Pointer fields distinguish "unset"
// from a zero value.
type fileConfig struct {
	Extract struct {
		StartYear *int    `toml:"start_year"`
		EndYear   *int    `toml:"end_year"`
		Workers   *int    `toml:"workers"`
		ChartFile *string `toml:"chart_file"`
	} `toml:"extract"`
	Analysis struct {
		OutlierMin   *float64 `toml:"outlier_min"`
		OutlierMax   *float64 `toml:"outlier_max"`
		BoundaryYear *int     `toml:"trend_boundary_year"`
	} `toml:"analysis"`
	Quality struct {
		MinRecords        *int     `toml:"min_records"`
		MaxMissingPercent *float64 `toml:"max_missing_percent"`
	} `toml:"quality"`
	Storage struct {
		DataDir *string `toml:"data_dir"`
		DBPath  *string `toml:"db_path"`
	} `toml:"storage"`
}

// Load builds the configuration. A missing .env or TOML file is not an
// error; a malformed TOML file is.
func Load(tomlPath string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:           getEnv("DATA_DIR", "./data"),
		DBPath:            getEnv("DB_PATH", "./data/lyrics_complexity.db"),
		GeniusToken:       getEnv("GENIUS_TOKEN", ""),
		ChartFile:         getEnv("CHART_FILE", ""),
		StartYear:         2015,
		EndYear:           2024,
		Workers:           4,
		OutlierMin:        -50,
		OutlierMax:        100,
		BoundaryYear:      2020,
		MinRecords:        100,
		MaxMissingPercent: 50,
	}

	if tomlPath != "" {
		if _, err := os.Stat(tomlPath); err == nil {
			var fc fileConfig
			if _, err := toml.DecodeFile(tomlPath, &fc); err != nil {
				return nil, fmt.Errorf("decode config %s: %w", tomlPath, err)
			}
			applyInt(&cfg.StartYear, fc.Extract.StartYear)
			applyInt(&cfg.EndYear, fc.Extract.EndYear)
			applyInt(&cfg.Workers, fc.Extract.Workers)
			applyString(&cfg.ChartFile, fc.Extract.ChartFile)
			applyFloat(&cfg.OutlierMin, fc.Analysis.OutlierMin)
			applyFloat(&cfg.OutlierMax, fc.Analysis.OutlierMax)
			applyInt(&cfg.BoundaryYear, fc.Analysis.BoundaryYear)
			applyInt(&cfg.MinRecords, fc.Quality.MinRecords)
			applyFloat(&cfg.MaxMissingPercent, fc.Quality.MaxMissingPercent)
			applyString(&cfg.DataDir, fc.Storage.DataDir)
			applyString(&cfg.DBPath, fc.Storage.DBPath)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config %s: %w", tomlPath, err)
		}
	}

	if v := os.Getenv("START_YEAR"); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			cfg.StartYear = y
		}
	}
	if v := os.Getenv("END_YEAR"); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			cfg.EndYear = y
		}
	}

	if cfg.StartYear > cfg.EndYear {
		return nil, fmt.Errorf("start year %d after end year %d", cfg.StartYear, cfg.EndYear)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func applyInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func applyFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
