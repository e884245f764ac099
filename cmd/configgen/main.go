package main

import (
	"errors"
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/splicectl/internal/config"
	"github.com/danmuck/splicectl/internal/observability"
)

const defaultPath = "splice.toml"

type Options struct {
	Output   string `short:"o" long:"output" description:"Output path for the job template" default:"splice.toml"`
	Force    bool   `long:"force" description:"Overwrite an existing job file"`
	Validate bool   `long:"validate" description:"Validate an existing job file instead of writing one"`
	Input    string `short:"i" long:"input" description:"Job file to validate (defaults to --output)"`
}

func main() {
	observability.InitLogger("configgen")
	var opts Options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if opts.Validate {
		path := opts.Input
		if path == "" {
			path = opts.Output
		}
		if err := validateJobFile(path); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("job file invalid")
		}
		log.Info().Str("path", path).Msg("validated job file")
		return
	}

	target := opts.Output
	if target == "" {
		target = defaultPath
	}
	if err := config.WriteTemplate(target, opts.Force); err != nil {
		log.Fatal().Err(err).Msg("write job template")
	}
	log.Info().Str("path", target).Msg("wrote job template")
}
