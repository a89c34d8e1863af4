// Package cmd implements the CLI command structure for tasklist.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/script"
	"github.com/nibzard/tasklist-go/internal/todo"
	"github.com/nibzard/tasklist-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

const (
	defaultSeedFile   = "todos.json"
	defaultConfigFile = "tasklist.toml"
	defaultTailLines  = 50
)

// Run executes the tasklist CLI.
func Run(ctx context.Context, args []string) error {
	return newCLI(os.Stdin, os.Stdout, os.Stderr).run(ctx, args)
}

type cli struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newCLI(in io.Reader, out, errOut io.Writer) *cli {
	return &cli{in: in, out: out, errOut: errOut}
}

func (c *cli) run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	fs.Usage = func() {
		c.printUsage(fs, c.errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		c.printUsage(fs, c.out)
		return nil
	}
	if *showVersion {
		return c.versionCommand()
	}

	// No subcommand means the TUI.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return c.tuiCommand(ctx, cws, remainingArgs)
	case "run":
		return c.runCommand(ctx, cws, remainingArgs)
	case "list", "ls":
		return c.listCommand(cws, remainingArgs)
	case "doctor":
		return c.doctorCommand(cws, remainingArgs)
	case "config":
		return c.configCommand(cws, remainingArgs)
	case "logs", "tail":
		return c.logsCommand(cws, remainingArgs)
	case "init":
		return c.initCommand(cws, remainingArgs)
	case "version":
		return c.versionCommand()
	case "help":
		c.printUsage(fs, c.out)
		return nil
	default:
		fmt.Fprintf(c.errOut, "Unknown command: %s\n", subcommand)
		c.printUsage(fs, c.errOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// tuiCommand launches the interactive todo list.
func (c *cli) tuiCommand(ctx context.Context, cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("tasklist tui", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := cws.Config
	store, err := buildStore(cws)
	if err != nil {
		return err
	}

	logger, session, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	completed, total := store.Counts()
	logger.Info("session started", "version", Version, "filter", store.Filter(), "todos", total, "completed", completed)
	err = ui.RunTUI(ctx, store, ui.WithAltScreen(cfg.AltScreen), ui.WithLogger(logger))
	completed, total = store.Counts()
	logger.Info("session ended", "todos", total, "completed", completed)
	return err
}

// runCommand applies a command script to the seeded store and prints the result.
func (c *cli) runCommand(ctx context.Context, cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("tasklist run", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	asJSON := fs.Bool("json", false, "Print the result as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("run requires exactly one script path (use - for stdin)")
	}

	var r io.Reader
	if remaining[0] == "-" {
		r = c.in
	} else {
		f, err := os.Open(remaining[0])
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		r = f
	}

	cmds, err := script.Parse(r)
	if err != nil {
		return fmt.Errorf("parse script: %w", err)
	}

	store, err := buildStore(cws)
	if err != nil {
		return err
	}

	logger, session, err := openLogger(cws.Config)
	if err != nil {
		return err
	}
	defer session.Close()

	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		results, err := script.Apply(store, []script.Command{cmd})
		if err != nil {
			logger.Error("script failed", "line", cmd.Line, "op", cmd.Op, "err", err)
			return err
		}
		logger.Debug("script command", "line", cmd.Line, "op", cmd.Op, "changed", results[0].Changed)
	}

	return writeSnapshot(c.out, store, *asJSON)
}

// listCommand prints the seeded store.
func (c *cli) listCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("tasklist list", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	asJSON := fs.Bool("json", false, "Print as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}

	store, err := buildStore(cws)
	if err != nil {
		return err
	}
	if len(remaining) == 1 {
		f, err := todo.ParseFilter(remaining[0])
		if err != nil {
			return err
		}
		if err := store.SetFilter(f); err != nil {
			return err
		}
	}

	return writeSnapshot(c.out, store, *asJSON)
}

// doctorCommand checks config, seed file and log directory.
func (c *cli) doctorCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("tasklist doctor", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg := cws.Config
	w := c.out

	fmt.Fprintln(w, "Tasklist Doctor")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintln(w, "Config:")
	if len(cws.Files) == 0 {
		fmt.Fprintln(w, "  ✅ No config files (defaults)")
	}
	for _, path := range cws.Files {
		fmt.Fprintf(w, "  ✅ %s\n", path)
	}
	fmt.Fprintf(w, "  ✅ Filter: %s (%s)\n", cfg.Filter, cws.Sources["filter"])
	fmt.Fprintf(w, "  ✅ Log level: %s, format: %s\n", cfg.LogLevel, cfg.LogFormat)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Seed:")
	if cfg.SeedFile == "" {
		if cfg.WelcomeTask == "" {
			fmt.Fprintln(w, "  ✅ None (empty list)")
		} else {
			fmt.Fprintf(w, "  ✅ None (welcome task %q)\n", cfg.WelcomeTask)
		}
	} else if !c.checkSeed(cfg) {
		allOK = false
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Logs:")
	if cfg.LogDir == "" {
		fmt.Fprintln(w, "  ✅ Disabled")
	} else if logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot); err != nil {
		fmt.Fprintf(w, "  ❌ %v\n", err)
		allOK = false
	} else {
		fmt.Fprintf(w, "  ✅ %s\n", logDir)
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed.")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}

func (c *cli) checkSeed(cfg *config.Config) bool {
	w := c.out
	fmt.Fprintf(w, "  File: %s\n", cfg.SeedFile)
	seed, err := todo.LoadSeed(cfg.SeedFile)
	if err != nil {
		fmt.Fprintf(w, "  ❌ %v\n", err)
		return false
	}

	result := seed.Validate(todo.ValidationOptions{SchemaPath: cfg.SchemaFile})
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	if !result.Valid {
		for _, verr := range result.Errors {
			fmt.Fprintf(w, "  ❌ %v\n", verr)
		}
		return false
	}

	completed := 0
	for _, t := range seed.Todos {
		if t.Completed {
			completed++
		}
	}
	schema := "embedded schema"
	if cfg.SchemaFile != "" {
		schema = cfg.SchemaFile
	}
	if !result.UsedSchema {
		schema = "minimal checks"
	}
	fmt.Fprintf(w, "  ✅ Valid (%s): %d todos, %d completed\n", schema, len(seed.Todos), completed)
	return true
}

// configCommand prints the effective configuration and where each value came from.
func (c *cli) configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("tasklist config", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		_, err := io.WriteString(c.out, config.ExampleConfig())
		return err
	}

	cfg := cws.Config
	values := []struct {
		key   string
		value any
	}{
		{"seed_file", cfg.SeedFile},
		{"schema_file", cfg.SchemaFile},
		{"filter", cfg.Filter},
		{"welcome_task", cfg.WelcomeTask},
		{"alt_screen", cfg.AltScreen},
		{"log_dir", cfg.LogDir},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"log_timestamps", cfg.LogTimestamps},
		{"log_caller", cfg.LogCaller},
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	for _, v := range values {
		fmt.Fprintf(tw, "%s\t%q\t%s\n", v.key, fmt.Sprint(v.value), cws.Sources[v.key])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, path := range cws.Files {
		fmt.Fprintf(c.out, "# read %s\n", path)
	}
	return nil
}

// logsCommand lists session logs or tails the latest one.
func (c *cli) logsCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("tasklist logs", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	n := fs.Int("n", defaultTailLines, "Number of lines to show (0 = all)")
	list := fs.Bool("list", false, "List session logs instead of tailing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := cws.Config
	if cfg.LogDir == "" {
		return fmt.Errorf("logging is disabled (log_dir is empty)")
	}
	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	sessions, err := logging.ListSessions(logDir)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(c.out, "No log files found.")
		return nil
	}

	if *list {
		for _, s := range sessions {
			fmt.Fprintf(c.out, "%s  %s\n", s.ModTime.Format("2006-01-02 15:04:05"), s.ID)
		}
		return nil
	}

	session := sessions[0]
	if id := fs.Arg(0); id != "" {
		found := false
		for _, s := range sessions {
			if s.ID == id {
				session, found = s, true
				break
			}
		}
		if !found {
			return fmt.Errorf("session %q not found in %s", id, logDir)
		}
	}

	fmt.Fprintf(c.out, "Log: %s\n\n", session.Path)
	return logging.TailLog(c.out, session.Path, *n)
}

// initCommand writes a starter config file and seed document.
func (c *cli) initCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("tasklist init", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	force := fs.Bool("force", false, "Overwrite existing files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := cws.Config
	seed := todo.Seed{SchemaVersion: 1, Filter: todo.FilterAll, Todos: []todo.Todo{}}
	if cfg.WelcomeTask != "" {
		seed.Todos = append(seed.Todos, todo.Todo{ID: 1, Task: cfg.WelcomeTask})
	}
	seedData, err := seed.Marshal()
	if err != nil {
		return err
	}

	configText := strings.Replace(config.ExampleConfig(),
		`# seed_file = "todos.json"`, `seed_file = "`+defaultSeedFile+`"`, 1)

	files := []struct {
		name string
		data []byte
	}{
		{defaultSeedFile, seedData},
		{defaultConfigFile, []byte(configText)},
	}
	for _, f := range files {
		path := filepath.Join(cfg.ProjectRoot, f.name)
		if _, err := os.Stat(path); err == nil && !*force {
			fmt.Fprintf(c.out, "Skipped %s (exists, use -force to overwrite)\n", path)
			continue
		}
		if err := os.WriteFile(path, f.data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
		fmt.Fprintf(c.out, "Wrote %s\n", path)
	}
	return nil
}

// versionCommand prints version information.
func (c *cli) versionCommand() error {
	fmt.Fprintf(c.out, "tasklist version %s\n", Version)
	return nil
}

// buildStore creates the store from the seed file, or with the welcome
// task when no seed is configured. An explicitly configured filter wins
// over the seed's.
func buildStore(cws *config.ConfigWithSources) (*todo.Store, error) {
	cfg := cws.Config
	filter := todo.Filter(cfg.Filter)

	if cfg.SeedFile == "" {
		store, err := todo.NewStore(todo.WithFilter(filter))
		if err != nil {
			return nil, err
		}
		if cfg.WelcomeTask != "" {
			store.Add(cfg.WelcomeTask)
		}
		return store, nil
	}

	seed, err := todo.LoadSeed(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	result := seed.Validate(todo.ValidationOptions{SchemaPath: cfg.SchemaFile})
	if !result.Valid {
		return nil, fmt.Errorf("invalid seed file %s: %w", cfg.SeedFile, errors.Join(result.Errors...))
	}
	if seed.Filter == "" || cws.Sources["filter"] != config.SourceDefault {
		seed.Filter = filter
	}
	return seed.Store()
}

// openLogger opens the session log configured by cfg. With an empty log
// dir everything is discarded and the returned session is nil.
func openLogger(cfg *config.Config) (*log.Logger, *logging.SessionLog, error) {
	if cfg.LogDir == "" {
		return logging.Discard(), nil, nil
	}

	session, err := logging.NewSessionLog(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("opening session log: %w", err)
	}
	logger, err := logging.NewLogger(session.Writer(), logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Timestamps: cfg.LogTimestamps,
		Caller:     cfg.LogCaller,
	})
	if err != nil {
		session.Close()
		return nil, nil, err
	}
	logger = logger.With("session", session.SessionID)
	return logger, session, nil
}

func writeSnapshot(w io.Writer, store *todo.Store, asJSON bool) error {
	snap := script.Snap(store)
	if asJSON {
		return snap.WriteJSON(w)
	}
	return snap.WriteText(w)
}

// printUsage prints the usage message.
func (c *cli) printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tasklist - a terminal todo list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklist [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui              Launch the terminal UI (default command)")
	fmt.Fprintln(w, "  run <script|->   Apply a command script and print the result")
	fmt.Fprintln(w, "  list [filter]    Print the seeded todos")
	fmt.Fprintln(w, "  doctor           Check config, seed file and log directory")
	fmt.Fprintln(w, "  config           Show the effective configuration")
	fmt.Fprintln(w, "  logs [session]   Tail a session log (latest by default)")
	fmt.Fprintln(w, "  init             Write a starter tasklist.toml and todos.json")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(c.errOut)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run/List Options:")
	fmt.Fprintln(w, "  -json")
	fmt.Fprintln(w, "        Print the result as JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options:")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintf(w, "        Number of lines to show, 0 = all (default %d)\n", defaultTailLines)
	fmt.Fprintln(w, "  -list")
	fmt.Fprintln(w, "        List session logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Script commands:")
	fmt.Fprintf(w, "  %s\n", strings.Join(script.Ops(), ", "))
}
