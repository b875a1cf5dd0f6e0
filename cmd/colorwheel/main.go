package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"gioui.org/app"
	"github.com/esimov/colorwheel/config"
	"github.com/esimov/colorwheel/palette"
	"github.com/esimov/colorwheel/project"
	"github.com/esimov/colorwheel/store"
	"github.com/esimov/colorwheel/utils"
	"github.com/sirupsen/logrus"
)

const HelpBanner = `
┌─┐┌─┐┬  ┌─┐┬─┐┬ ┬┬ ┬┌─┐┌─┐┬
│  │ ││  │ │├┬┘│││├─┤├┤ ├┤ │
└─┘└─┘┴─┘└─┘┴└─└┴┘┴ ┴└─┘└─┘┴─┘

Photo recoloring studio.
    Version: %s

`

// Version indicates the current build version.
var Version string

// errUsage is returned when a command is called with wrong arguments.
var errUsage = errors.New("invalid arguments")

// env is the state shared by the commands.
type env struct {
	cfg      config.Config
	log      logrus.FieldLogger
	store    store.Store
	projects *project.Manager
	palettes *palette.Registry
	stdout   io.Writer
	stderr   io.Writer
}

// command is a colorwheel subcommand.
type command struct {
	usage string
	desc  string
	// gui commands run next to the window event loop owning the main goroutine.
	gui bool
	run func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{
	"new":       {usage: "new [-name NAME] [-conc N] <file|url|dir|->", desc: "Create projects from images", run: runNew},
	"list":      {usage: "list", desc: "List the saved projects", run: runList},
	"edit":      {usage: "edit <id>", desc: "Open a project in the editor", gui: true, run: runEdit},
	"paint":     {usage: "paint -script FILE [-dry] <id>", desc: "Replay a gesture script on a project", run: runPaint},
	"export":    {usage: "export [-format png|json|project] [-size N] [-out FILE|-] <id>", desc: "Export a project", run: runExport},
	"import":    {usage: "import <file|->", desc: "Import a project exported in the project format", run: runImport},
	"duplicate": {usage: "duplicate <id>", desc: "Copy a project", run: runDuplicate},
	"rename":    {usage: "rename <id> <name>", desc: "Rename a project", run: runRename},
	"delete":    {usage: "delete <id>", desc: "Delete a project", run: runDelete},
	"palettes":  {usage: "palettes [key]", desc: "Show the color palettes", run: runPalettes},
}

func main() {
	log.SetFlags(0)

	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	name := flag.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		log.Fatalf(utils.DecorateText("Unknown command: %s", utils.ErrorMessage), name)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(utils.DecorateText("Configuration error: %v", utils.ErrorMessage), err)
	}
	logrus.SetLevel(cfg.LogLevel)
	logrus.SetOutput(os.Stderr)

	st, err := store.Open(cfg.Store)
	if err != nil {
		log.Fatalf(utils.DecorateText("Unable to open the project store: %v", utils.ErrorMessage), err)
	}

	logger := logrus.WithField("command", name)
	e := &env{
		cfg:      cfg,
		log:      logger,
		store:    st,
		projects: project.NewManager(st, project.WithLogger(logger)),
		palettes: cfg.Registry(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	exec := func() int {
		defer stop()
		defer st.Close()

		if err := cmd.run(ctx, e, flag.Args()[1:]); err != nil {
			if errors.Is(err, errUsage) {
				fmt.Fprintf(os.Stderr, "usage: colorwheel %s\n", cmd.usage)
				return 2
			}
			fmt.Fprintln(os.Stderr, utils.DecorateText(fmt.Sprintf("Error: %v", err), utils.ErrorMessage))
			return 1
		}
		return 0
	}

	if cmd.gui {
		go func() {
			os.Exit(exec())
		}()
		app.Main()
		return
	}
	os.Exit(exec())
}

func usage() {
	fmt.Fprintf(os.Stderr, HelpBanner, Version)
	fmt.Fprintf(os.Stderr, "Usage: colorwheel <command> [flags] [args]\n\nCommands:\n")

	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", n, commands[n].desc)
	}
	fmt.Fprintf(os.Stderr, "\nEnvironment:\n  %s, %s, %s, %s, %s\n",
		config.EnvStore, config.EnvDataPath, config.EnvDSN, config.EnvLogLevel, config.EnvConfig)
}
