package config

import (
	"fmt"
	"os"
	"strconv"
)

// envBindings maps environment variables to config fields.
var envBindings = []struct {
	name  string
	field string
}{
	{"TASKLIST_SEED", "seed_file"},
	{"TASKLIST_SCHEMA", "schema_file"},
	{"TASKLIST_FILTER", "filter"},
	{"TASKLIST_WELCOME", "welcome_task"},
	{"TASKLIST_ALT_SCREEN", "alt_screen"},
	{"TASKLIST_LOG_DIR", "log_dir"},
	{"TASKLIST_LOG_LEVEL", "log_level"},
	{"TASKLIST_LOG_FORMAT", "log_format"},
	{"TASKLIST_LOG_TIMESTAMPS", "log_timestamps"},
	{"TASKLIST_LOG_CALLER", "log_caller"},
}

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
// TASKLIST_WELCOME is honoured even when set to the empty string.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	for _, b := range envBindings {
		v, ok := os.LookupEnv(b.name)
		if !ok || (v == "" && b.field != "welcome_task") {
			continue
		}
		if err := setField(cfg, b.field, v); err != nil {
			return fmt.Errorf("%s: %w", b.name, err)
		}
		if sources != nil {
			sources[b.field] = SourceEnv
		}
	}
	return nil
}

func setField(cfg *Config, field, v string) error {
	switch field {
	case "seed_file":
		cfg.SeedFile = v
	case "schema_file":
		cfg.SchemaFile = v
	case "filter":
		cfg.Filter = v
	case "welcome_task":
		cfg.WelcomeTask = v
	case "alt_screen":
		return setBool(&cfg.AltScreen, v)
	case "log_dir":
		cfg.LogDir = v
	case "log_level":
		cfg.LogLevel = v
	case "log_format":
		cfg.LogFormat = v
	case "log_timestamps":
		return setBool(&cfg.LogTimestamps, v)
	case "log_caller":
		return setBool(&cfg.LogCaller, v)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

func setBool(dst *bool, v string) error {
	switch v {
	case "yes", "on":
		*dst = true
		return nil
	case "no", "off":
		*dst = false
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid boolean %q", v)
	}
	*dst = b
	return nil
}
