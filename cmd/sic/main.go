package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ironsheep/sic/internal/config"
	"github.com/ironsheep/sic/internal/convert"
	"github.com/ironsheep/sic/internal/imaging"
	"github.com/ironsheep/sic/internal/logging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const licenseText = `sic is distributed under the terms of the MIT license.

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files, to deal in the Software
without restriction, subject to the conditions of the MIT license.
`

// paletteSize is the number of dominant colors reported by --info.
const paletteSize = 5

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	v := viper.New()
	fs := config.NewFlagSet(v)
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			usage(stdout, fs)
			return 0
		}
		fmt.Fprintf(stderr, "sic: %v\n", err)
		return 2
	}
	if help, _ := fs.GetBool("help"); help {
		usage(stdout, fs)
		return 0
	}

	cfg, err := config.Load(v, fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "sic: %v\n\n", err)
		usage(stderr, fs)
		return 2
	}

	switch {
	case cfg.Version:
		fmt.Fprintf(stdout, "sic %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return 0
	case cfg.License:
		fmt.Fprint(stdout, licenseText)
		return 0
	}

	log, err := logging.New(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "sic: %v\n", err)
		return 2
	}
	defer func() { _ = log.Sync() }()

	log.Debug("starting",
		zap.String("version", Version),
		zap.String("commit", GitCommit),
		zap.String("input", cfg.Input),
		zap.String("output", cfg.Output),
	)

	in, closeInput, err := openInput(cfg.Input, stdin)
	if err != nil {
		log.Error("cannot open input", zap.String("path", cfg.Input), zap.Error(err))
		return 1
	}
	defer closeInput()

	if cfg.Info {
		if err := printInfo(in, stdout); err != nil {
			log.Error("info failed", zap.String("input", cfg.Input), zap.Error(err))
			return 1
		}
		return 0
	}

	if cfg.Output == config.StdioPath {
		cfg.Job.Target = convert.StreamTarget{W: stdout}
	}

	if err := convert.New(log).Run(in, cfg.Job); err != nil {
		log.Error("conversion failed",
			zap.String("input", cfg.Input),
			zap.String("output", cfg.Output),
			zap.Error(err),
		)
		return 1
	}
	return 0
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == config.StdioPath {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func printInfo(in io.Reader, out io.Writer) error {
	data, err := convert.ReadInput(in)
	if err != nil {
		return err
	}
	img, err := convert.Load(data, convert.FirstFrame())
	if err != nil {
		return err
	}

	info := imaging.DescribeWithPalette(img.Pixels, data, paletteSize)
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

func usage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "sic - convert images between formats and apply simple operations")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  sic [options] INPUT OUTPUT")
	fmt.Fprintln(w, "  sic --info INPUT")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "INPUT and OUTPUT may be - for stdin and stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  Every option can be set as %s_<OPTION>, e.g. %s_LOG_LEVEL=debug\n", config.EnvPrefix, config.EnvPrefix)
}
