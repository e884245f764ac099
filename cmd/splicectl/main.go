package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/splicectl/internal/config"
	"github.com/danmuck/splicectl/internal/observability"
	"github.com/danmuck/splicectl/internal/splicer"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// Options are shared by every command.
type Options struct {
	Config   string `short:"c" long:"config" description:"TOML job file; flags override its values"`
	File     string `short:"f" long:"file" description:"Document path or afs URL (mem://, file://)"`
	Start    string `short:"s" long:"start" description:"Start marker literal (first occurrence is used)"`
	End      string `short:"e" long:"end" description:"End marker literal (last occurrence is used)"`
	Encoding string `long:"encoding" description:"Document encoding: utf-8, utf-8-bom, utf-16le, utf-16be, latin1, windows-1252"`
}

type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	observability.InitLogger("splicectl")
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	var opts Options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.ShortDescription = "Replace the contents of a marker-bracketed section"

	if _, err := parser.AddCommand("apply",
		"Replace the section contents",
		"Replace the text between the first start marker and the last end marker, then write the document back.",
		&applyCommand{global: &opts, out: stdout}); err != nil {
		log.Error().Err(err).Msg("register apply command")
		return exitFailure
	}
	if _, err := parser.AddCommand("show",
		"Print the section contents",
		"Print the text currently between the markers without modifying the document.",
		&showCommand{global: &opts, out: stdout}); err != nil {
		log.Error().Err(err).Msg("register show command")
		return exitFailure
	}

	_, err := parser.ParseArgs(args)
	return exitCode(err, stdout)
}

func exitCode(err error, stdout io.Writer) int {
	if err == nil {
		return exitOK
	}
	var ferr *flags.Error
	if errors.As(err, &ferr) {
		if ferr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, ferr.Message)
			return exitOK
		}
		log.Error().Msg(ferr.Message)
		return exitUsage
	}
	var uerr usageError
	if errors.As(err, &uerr) {
		log.Error().Err(uerr.err).Msg("invalid job")
		return exitUsage
	}
	log.Error().Err(err).Msg("splicectl failed")
	return exitFailure
}

// job merges the config file, global flags and command overrides in that order.
func (o *Options) job(override config.Job) (config.Job, error) {
	var job config.Job
	if o.Config != "" {
		loaded, err := config.LoadJob(o.Config)
		if err != nil {
			return config.Job{}, usageError{err}
		}
		job = loaded
	}
	job = job.Merge(config.Job{
		Path:        o.File,
		StartMarker: o.Start,
		EndMarker:   o.End,
		Encoding:    o.Encoding,
	}).Merge(override)
	job, err := job.WithDefaults()
	if err != nil {
		return config.Job{}, usageError{err}
	}
	return job, nil
}

type applyCommand struct {
	global *Options
	out    io.Writer

	Replacement     *string `short:"r" long:"replacement" description:"Replacement text (may be empty)"`
	ReplacementFile string  `short:"R" long:"replacement-file" description:"Read replacement text from a file or afs URL; - reads stdin"`
	DryRun          bool    `short:"n" long:"dry-run" description:"Print the spliced document instead of writing it"`
	MetricsTextfile string  `long:"metrics-textfile" description:"Write run metrics to a node_exporter textfile"`
}

func (c *applyCommand) Execute(args []string) error {
	if len(args) > 0 {
		return usageError{fmt.Errorf("unexpected arguments: %v", args)}
	}
	override := config.Job{
		ReplacementFile: c.ReplacementFile,
		DryRun:          c.DryRun,
		MetricsTextfile: c.MetricsTextfile,
	}
	if c.Replacement != nil {
		override.SetReplacement(*c.Replacement)
	}
	job, err := c.global.job(override)
	if err != nil {
		return err
	}
	if err := job.Validate(true); err != nil {
		return usageError{err}
	}

	res, err := splicer.New().Apply(context.Background(), job)
	if job.MetricsTextfile != "" {
		if werr := observability.WriteTextfile(job.MetricsTextfile); werr != nil {
			log.Warn().Err(werr).Str("path", job.MetricsTextfile).Msg("metrics textfile not written")
		}
	}
	if err != nil {
		return err
	}
	if job.DryRun {
		_, err = io.WriteString(c.out, res.Output)
		return err
	}
	return nil
}

type showCommand struct {
	global *Options
	out    io.Writer
}

func (c *showCommand) Execute(args []string) error {
	if len(args) > 0 {
		return usageError{fmt.Errorf("unexpected arguments: %v", args)}
	}
	job, err := c.global.job(config.Job{})
	if err != nil {
		return err
	}
	if err := job.Validate(false); err != nil {
		return usageError{err}
	}
	section, err := splicer.New().Show(context.Background(), job)
	if err != nil {
		return err
	}
	_, err = io.WriteString(c.out, section)
	return err
}
