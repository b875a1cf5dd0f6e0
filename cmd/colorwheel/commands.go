package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/disintegration/imaging"
	"github.com/esimov/colorwheel"
	"github.com/esimov/colorwheel/project"
	"github.com/esimov/colorwheel/utils"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// flagSet returns a flag set reporting to the command's stderr instead of exiting.
func flagSet(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

// withSpinner runs fn while showing the progress indicator on interactive terminals.
func withSpinner(e *env, msg string, fn func() error) error {
	if f, ok := e.stderr.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return fn()
	}
	spinner := utils.NewSpinner(msg, time.Millisecond*80, true)
	spinner.Start()
	defer spinner.Stop()

	return fn()
}

func runNew(ctx context.Context, e *env, args []string) error {
	fs := flagSet(e, "new")
	name := fs.String("name", "", "Project name")
	workers := fs.Int("conc", runtime.NumCPU(), "Number of files to import concurrently")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}
	in := fs.Arg(0)

	if in != pipeName && !utils.IsValidUrl(in) {
		if fi, err := os.Stat(in); err == nil && fi.IsDir() {
			return newFromDir(ctx, e, in, *workers)
		}
	}

	data, err := readSource(ctx, in)
	if err != nil {
		return err
	}
	src, err := colorwheel.LoadDataURL(data)
	if err != nil {
		return err
	}
	if *name == "" && in != pipeName && !utils.IsValidUrl(in) {
		*name = strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	}
	p, err := e.projects.Create(ctx, *name, src)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "%s\t%s\n", p.ID, p.Name)
	return nil
}

func newFromDir(ctx context.Context, e *env, dir string, workers int) error {
	var imported, failed int
	start := time.Now()

	err := withSpinner(e, fmt.Sprintf("Importing images from %s...", dir), func() error {
		return importDir(ctx, e.projects, dir, workers, func(res result) {
			if res.err != nil {
				failed++
				e.log.WithError(res.err).WithField("path", res.path).Warn("import failed")
				return
			}
			imported++
			fmt.Fprintf(e.stdout, "%s\t%s\n", res.project.ID, res.project.Name)
		})
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(e.stderr, "%s %s\n",
		utils.DecorateText(fmt.Sprintf("%d image(s) imported", imported), utils.SuccessMessage),
		utils.DecorateText(fmt.Sprintf("in %s", utils.FormatTime(time.Since(start))), utils.DefaultMessage),
	)
	if failed > 0 {
		return fmt.Errorf("%d image(s) could not be imported", failed)
	}
	return nil
}

func runList(ctx context.Context, e *env, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	projects, err := e.projects.List(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(e.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED\tCOLORS")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", p.ID, p.Name, p.CreatedAt().Format(time.DateTime), len(p.Colors))
	}
	return w.Flush()
}

// session opens an editor session on the project with the configured editor defaults.
func (e *env) session(ctx context.Context, id string) (*colorwheel.Session, error) {
	p, err := e.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	brush, err := e.cfg.Editor.Brush()
	if err != nil {
		return nil, fmt.Errorf("invalid editor settings: %w", err)
	}
	return colorwheel.NewSession(p, e.projects,
		colorwheel.WithBrush(brush),
		colorwheel.WithHistoryLimit(e.cfg.Editor.HistoryLimit),
		colorwheel.WithLogger(e.log),
	), nil
}

// loadSession opens a session and decodes its image right away.
func (e *env) loadSession(ctx context.Context, id string) (*colorwheel.Session, error) {
	s, err := e.session(ctx, id)
	if err != nil {
		return nil, err
	}
	err = withSpinner(e, "Decoding image...", func() error {
		return s.Load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func runEdit(ctx context.Context, e *env, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	s, err := e.session(ctx, args[0])
	if err != nil {
		return err
	}
	gui := colorwheel.NewGUI(s)
	if err := gui.Run(ctx); err != nil {
		return err
	}
	return gui.Err()
}

func runPaint(ctx context.Context, e *env, args []string) error {
	fs := flagSet(e, "paint")
	script := fs.String("script", "", "Gesture script (- for stdin)")
	dry := fs.Bool("dry", false, "Replay without saving the project")
	out := fs.String("out", "", "Write the painted image as PNG")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 || *script == "" {
		return errUsage
	}

	data, err := readSource(ctx, *script)
	if err != nil {
		return err
	}
	sc, err := ReadScript(bytes.NewReader(data))
	if err != nil {
		return err
	}
	s, err := e.loadSession(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	stats, err := sc.Replay(s, e.palettes)
	if err != nil {
		return err
	}
	e.log.WithFields(logrus.Fields{
		"events":  stats.events,
		"strokes": stats.strokes,
		"undone":  stats.undone,
		"redone":  stats.redone,
		"resets":  stats.resets,
		"history": s.HistoryLen(),
	}).Info("gesture script replayed")

	if *out != "" {
		if err := writeTo(*out, s.ExportPNG); err != nil {
			return err
		}
	}
	if *dry {
		return nil
	}
	p, err := s.Save(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "%s\t%s\t%d color(s)\n", p.ID, p.Name, len(p.Colors))
	return nil
}

func runExport(ctx context.Context, e *env, args []string) error {
	fs := flagSet(e, "export")
	format := fs.String("format", "png", "Export format: png, json or project")
	size := fs.Int("size", 0, "Fit the PNG into a square of this size")
	out := fs.String("out", "", "Destination file (- for stdout)")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}
	id := fs.Arg(0)

	if *format == "project" {
		p, err := e.projects.Get(ctx, id)
		if err != nil {
			return err
		}
		if *out == "" {
			*out = fileName(project.ExportName(p))
		}
		return writeTo(*out, func(w io.Writer) error {
			return e.projects.Export(ctx, id, w)
		})
	}

	s, err := e.loadSession(ctx, id)
	if err != nil {
		return err
	}
	var write func(w io.Writer) error

	switch *format {
	case "png":
		write = s.ExportPNG
		if *size > 0 {
			write = func(w io.Writer) error {
				img, err := s.ExportImage(*size)
				if err != nil {
					return err
				}
				return colorwheel.Encode(w, img, imaging.PNG)
			}
		}
	case "json":
		write = s.ExportJSON
	default:
		return fmt.Errorf("export format %q not supported", *format)
	}
	if *out == "" {
		*out = fileName(s.Project().Name + "." + *format)
	}
	return writeTo(*out, write)
}

// writeTo opens the destination and hands it to write.
func writeTo(out string, write func(w io.Writer) error) error {
	w, err := openDestination(out)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// fileName replaces the characters not allowed in file names.
func fileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, name)
}

func runImport(ctx context.Context, e *env, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	data, err := readSource(ctx, args[0])
	if err != nil {
		return err
	}
	p, err := e.projects.Import(ctx, bytes.NewReader(data))
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "%s\t%s\n", p.ID, p.Name)
	return nil
}

func runDuplicate(ctx context.Context, e *env, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := e.projects.Duplicate(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "%s\t%s\n", p.ID, p.Name)
	return nil
}

func runRename(ctx context.Context, e *env, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	p, err := e.projects.Rename(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "%s\t%s\n", p.ID, p.Name)
	return nil
}

func runDelete(ctx context.Context, e *env, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	return e.projects.Delete(ctx, args[0])
}

func runPalettes(ctx context.Context, e *env, args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	out := termenv.NewOutput(e.stdout)

	if len(args) == 0 {
		w := tabwriter.NewWriter(e.stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tNAME\tCOLORS")
		for _, p := range e.palettes.Palettes() {
			fmt.Fprintf(w, "%s\t%s\t%d\n", p.Key, p.Name, len(p.Colors))
		}
		return w.Flush()
	}

	p, ok := e.palettes.Palette(args[0])
	if !ok {
		return fmt.Errorf("palette %q not found", args[0])
	}
	fmt.Fprintln(e.stdout, p.Name)
	for _, c := range p.Colors {
		swatch := out.String("   ").Background(out.Color(c.Hex))
		fmt.Fprintf(e.stdout, "%s %s  %s\n", swatch, c.Hex, c.Name)
	}
	return nil
}
