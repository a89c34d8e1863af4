package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultFilter      = "All"
	DefaultWelcomeTask = "Walk everyday in the morning"
	DefaultLogDir      = "~/.tasklist"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultAltScreen   = true
)

// Config holds the full configuration for tasklist.
type Config struct {
	// Seed document loaded into the store at startup. Empty means none.
	SeedFile string `toml:"seed_file"`
	// SchemaFile overrides the embedded seed schema.
	SchemaFile string `toml:"schema_file"`

	// Initial filter mode (All, Active, Completed)
	Filter string `toml:"filter"`

	// Todo added to an unseeded store. Empty disables it.
	WelcomeTask string `toml:"welcome_task"`

	// Terminal
	AltScreen bool `toml:"alt_screen"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// configFields returns the configurable field names for source tracking.
// They match the TOML keys.
func configFields() []string {
	return []string{
		"seed_file",
		"schema_file",
		"filter",
		"welcome_task",
		"alt_screen",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.Filter = DefaultFilter
	cfg.WelcomeTask = DefaultWelcomeTask
	cfg.AltScreen = DefaultAltScreen
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}
