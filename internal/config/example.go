package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by TASKLIST_* environment variables or CLI flags

# Read-only seed document loaded at startup (relative to the working directory)
# seed_file = "todos.json"

# JSON Schema overriding the embedded seed schema
# schema_file = "seed.schema.json"

# Initial filter: All, Active or Completed
filter = "All"

# Todo added when no seed file is used (empty disables it)
welcome_task = "Walk everyday in the morning"

# Run the TUI in the alternate screen buffer
alt_screen = true

# Session log directory (supports ~ expansion, empty disables logging)
log_dir = "~/.tasklist"

# Log level: debug, info, warn, error
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"

log_timestamps = false
log_caller = false
`
}
