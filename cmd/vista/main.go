package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/henri123lemoine/vista/internal/app"
	"github.com/henri123lemoine/vista/internal/catalog"
	"github.com/henri123lemoine/vista/internal/config"
	"github.com/henri123lemoine/vista/internal/debug"
	"github.com/henri123lemoine/vista/internal/render"
	"github.com/henri123lemoine/vista/internal/ui"
)

const usage = `Usage:
  vista [--config path] [--debug path]         browse templates
  vista render [--width n] [--strict] <file>   render a template and print it
  vista list                                   list the template catalog
  vista lint <file>                            report unresolved placeholders and unknown elements
  vista init-config [--force]                  write the default config file
`

// defaultWidth is used by render when neither the flag, the config, the
// terminal nor $COLUMNS give a width.
const defaultWidth = 80

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := ""
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "":
		err = runBrowser(args, stderr)
	case "render":
		err = runRender(args, stdout, stderr)
	case "list":
		err = runList(args, stdout, stderr)
	case "lint":
		err = runLint(args, stdout, stderr)
	case "init-config":
		err = runInitConfig(args, stdout, stderr)
	case "help":
		fmt.Fprint(stdout, usage)
	default:
		fmt.Fprintf(stderr, "vista: unknown command %q\n\n%s", cmd, usage)
		return 2
	}

	var exit exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exit):
		return int(exit)
	case errors.Is(err, flag.ErrHelp):
		return 0
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

// exitError ends the program with a status and no further message.
type exitError int

func (e exitError) Error() string { return "exit status " + strconv.Itoa(int(e)) }

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *string) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := flags.String("config", "", "config file (default "+config.ConfigPath()+")")
	return flags, configPath
}

// loadConfig loads the config file and prints validation warnings.
func loadConfig(path string, stderr io.Writer) (*config.Config, error) {
	if path == "" {
		path = config.ConfigPath()
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	for _, w := range cfg.Validate() {
		fmt.Fprintf(stderr, "Warning: %s\n", w)
	}
	return cfg, nil
}

func enableDebug(path string) error {
	if path == "" {
		return nil
	}
	return debug.Enable(path)
}

func runBrowser(args []string, stderr io.Writer) error {
	flags, configPath := newFlagSet("vista", stderr)
	debugPath := flags.String("debug", "", "write a debug log to this file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath, stderr)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *debugPath != "" {
		cfg.General.DebugLog = *debugPath
	}
	if err := enableDebug(cfg.General.DebugLog); err != nil {
		return err
	}
	defer debug.Close()

	ui.ApplyTheme(cfg.UI.Theme)

	recents := catalog.NewRecents(catalog.RecentsPath(), cfg.General.RecentLimit)
	model := app.New(cfg, recents)
	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(app.Model); ok && m.ShouldQuit() {
		debug.Log("quit")
	}
	return nil
}

func runRender(args []string, stdout, stderr io.Writer) error {
	flags, configPath := newFlagSet("render", stderr)
	width := flags.Int("width", 0, "paint width in cells (default: config, $COLUMNS or 80)")
	strict := flags.Bool("strict", false, "render unregistered elements as error panels")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		fmt.Fprint(stderr, usage)
		return exitError(2)
	}

	cfg, err := loadConfig(*configPath, stderr)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := enableDebug(cfg.General.DebugLog); err != nil {
		return err
	}
	defer debug.Close()

	if *strict {
		cfg.Render.StrictElements = true
	}
	t, err := resolveTemplate(flags.Arg(0), cfg)
	if err != nil {
		return err
	}

	ui.ApplyTheme(cfg.UI.Theme)
	if !isTerminal(stdout) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	node := t.Render(app.RenderOptions(cfg, render.DefaultRegistry())...)
	fmt.Fprintln(stdout, ui.Paint(node, renderWidth(*width, cfg, stdout)))
	return nil
}

func runList(args []string, stdout, stderr io.Writer) error {
	flags, configPath := newFlagSet("list", stderr)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath, stderr)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	templates, warnings := catalog.Load(cfg.General.TemplatesDir)
	for _, w := range warnings {
		fmt.Fprintf(stderr, "Warning: %v\n", w)
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tCATEGORY\tTITLE")
	for _, t := range templates {
		name := t.Name
		if !t.Builtin {
			name += "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, t.Kind, t.Category, t.Title)
	}
	return tw.Flush()
}

func runLint(args []string, stdout, stderr io.Writer) error {
	flags, configPath := newFlagSet("lint", stderr)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		fmt.Fprint(stderr, usage)
		return exitError(2)
	}

	cfg, err := loadConfig(*configPath, stderr)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	t, err := resolveTemplate(flags.Arg(0), cfg)
	if err != nil {
		return err
	}

	problems := catalog.Lint(t, render.DefaultRegistry())
	for _, p := range problems {
		fmt.Fprintf(stdout, "%s: %s\n", flags.Arg(0), p)
	}
	if len(problems) > 0 {
		return exitError(1)
	}
	return nil
}

func runInitConfig(args []string, stdout, stderr io.Writer) error {
	flags, configPath := newFlagSet("init-config", stderr)
	force := flags.Bool("force", false, "overwrite an existing config file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	path := *configPath
	if path == "" {
		path = config.ConfigPath()
	}
	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.CreateDefaultConfigFile(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}

// resolveTemplate loads arg as a file, or looks it up by name in the catalog.
func resolveTemplate(arg string, cfg *config.Config) (catalog.Template, error) {
	if _, err := os.Stat(arg); err == nil {
		return catalog.LoadFile(arg)
	}
	templates, _ := catalog.Load(cfg.General.TemplatesDir)
	if t, ok := catalog.Find(templates, arg); ok {
		return t, nil
	}
	return catalog.Template{}, fmt.Errorf("no template file or catalog entry named %q", arg)
}

func renderWidth(flagWidth int, cfg *config.Config, stdout io.Writer) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if cfg.Render.Width > 0 {
		return cfg.Render.Width
	}
	if f, ok := stdout.(*os.File); ok && isTerminal(f) {
		if w, _, err := term.GetSize(f.Fd()); err == nil && w > 0 {
			return w
		}
	}
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return defaultWidth
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
