// Package config turns command-line flags and SIC_* environment variables
// into a resolved conversion job.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ironsheep/sic/internal/convert"
	"github.com/ironsheep/sic/internal/logging"
)

// EnvPrefix prefixes every environment variable read by sic, e.g.
// SIC_LOG_LEVEL or SIC_JPEG_ENCODING_QUALITY.
const EnvPrefix = "SIC"

// StdioPath stands for stdin as input and stdout as output.
const StdioPath = "-"

// Flag names.
const (
	keyForceFormat     = "force-format"
	keyJPEGQuality     = "jpeg-encoding-quality"
	keyOperations      = "apply-operations"
	keySelectFrame     = "select-frame"
	keyDisableAdjust   = "disable-automatic-color-type-adjustment"
	keyInfo            = "info"
	keyLogLevel        = "log-level"
	keyLogFormat       = "log-format"
	keyLogFile         = "log-file"
	keyVersion         = "version"
	keyLicense         = "license"
	keyHelp            = "help"
	keyPNMArbitraryMap = "pnm-encoding-arbitrarymap"
)

type pnmFlag struct {
	name     string
	subtype  convert.PNMSubtype
	encoding convert.SampleEncoding
}

var pnmFlags = []pnmFlag{
	{"pnm-encoding-bitmap-ascii", convert.Bitmap, convert.ASCII},
	{"pnm-encoding-graymap-ascii", convert.Graymap, convert.ASCII},
	{"pnm-encoding-pixmap-ascii", convert.Pixmap, convert.ASCII},
	{"pnm-encoding-bitmap-binary", convert.Bitmap, convert.Binary},
	{"pnm-encoding-graymap-binary", convert.Graymap, convert.Binary},
	{"pnm-encoding-pixmap-binary", convert.Pixmap, convert.Binary},
	{keyPNMArbitraryMap, convert.ArbitraryMap, convert.Binary},
}

var validate = validator.New()

// logOptions holds the logging settings checked before the logger is built.
type logOptions struct {
	Level  string `validate:"oneof=debug info warn error dpanic panic fatal"`
	Format string `validate:"oneof=console json"`
}

// Config is the resolved configuration of one sic invocation.
type Config struct {
	// Input is a file path or StdioPath.
	Input string

	// Output is a file path or StdioPath. Empty in info mode.
	Output string

	// Job is the conversion to run. Its Target is set from Output.
	Job convert.Job

	// Info requests image metadata instead of a conversion.
	Info bool

	// Version and License request informational output only.
	Version bool
	License bool

	Log logging.Config
}

// NewFlagSet defines sic's flags and binds them, together with the SIC_*
// environment, to v.
func NewFlagSet(v *viper.Viper) *pflag.FlagSet {
	fs := pflag.NewFlagSet("sic", pflag.ContinueOnError)
	fs.SortFlags = false

	fs.StringP(keyForceFormat, "f", "", "Output format, overriding the output file extension (bmp, gif, ico, jpg, png, tiff, pbm, pgm, ppm, pam)")
	fs.Int(keyJPEGQuality, convert.DefaultJPEGQuality, "JPEG quality (1-100)")
	for _, pf := range pnmFlags {
		fs.Bool(pf.name, false, fmt.Sprintf("Encode %s output with %s samples", pf.subtype, pf.encoding))
	}
	fs.StringP(keyOperations, "x", "", `Operations script, e.g. "resize 100 200; blur 1; fliph; flipv"`)
	fs.String(keySelectFrame, "first", "Frame of an animated input to convert: first, last or a 1-based index")
	fs.Bool(keyDisableAdjust, false, "Do not convert the color type to one the output format supports")
	fs.Bool(keyInfo, false, "Print information about the input image as JSON and exit")
	fs.String(keyLogLevel, logging.DefaultConfig().Level, "Log level (debug, info, warn, error)")
	fs.String(keyLogFormat, logging.DefaultConfig().Format, "Log format (console, json)")
	fs.String(keyLogFile, "", "Write logs to this file, rotated by size, instead of stderr")
	fs.BoolP(keyVersion, "v", false, "Print version information")
	fs.Bool(keyLicense, false, "Print the license")
	fs.BoolP(keyHelp, "h", false, "Print this help message")

	_ = v.BindPFlags(fs)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return fs
}

// Load resolves the configuration from v and the positional arguments
// (INPUT and OUTPUT) left after flag parsing.
func Load(v *viper.Viper, args []string) (*Config, error) {
	cfg := &Config{
		Info:    v.GetBool(keyInfo),
		Version: v.GetBool(keyVersion),
		License: v.GetBool(keyLicense),
		Log: logging.Config{
			Level:  v.GetString(keyLogLevel),
			Format: v.GetString(keyLogFormat),
			File:   v.GetString(keyLogFile),
		},
	}
	if cfg.Version || cfg.License {
		return cfg, nil
	}

	err := validate.Struct(logOptions{
		Level:  strings.ToLower(strings.TrimSpace(cfg.Log.Level)),
		Format: strings.ToLower(cfg.Log.Format),
	})
	if err != nil {
		return nil, fmt.Errorf("invalid logging options: %w", err)
	}

	want := 2
	if cfg.Info {
		want = 1
	}
	if len(args) != want {
		return nil, fmt.Errorf("expected %d positional argument(s), got %d", want, len(args))
	}
	cfg.Input = args[0]
	if cfg.Info {
		return cfg, nil
	}
	cfg.Output = args[1]

	ops, err := ParseScript(v.GetString(keyOperations))
	if err != nil {
		return nil, fmt.Errorf("invalid operations: %w", err)
	}

	frame, err := ParseFrame(v.GetString(keySelectFrame))
	if err != nil {
		return nil, err
	}

	format, err := ResolveFormat(v, cfg.Output)
	if err != nil {
		return nil, err
	}

	var target convert.ExportTarget = convert.FileTarget{Path: cfg.Output}
	if cfg.Output == StdioPath {
		target = convert.Stdout()
	}

	cfg.Job = convert.Job{
		Operations:  ops,
		Frame:       frame,
		Format:      format,
		Target:      target,
		AdjustColor: !v.GetBool(keyDisableAdjust),
	}
	return cfg, nil
}

// ParseFrame parses a frame selection: "first", "last" or a 1-based index.
func ParseFrame(s string) (convert.FrameSelector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return convert.FirstFrame(), nil
	case "last":
		return convert.LastFrame(), nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return convert.FrameSelector{}, fmt.Errorf("invalid frame %q: expected first, last or a number starting at 1", s)
	}
	return convert.NthFrame(n - 1), nil
}

// ResolveFormat determines the output format from the force-format flag or,
// when it is not set, from the extension of output. Encoding parameters are
// validated and applied.
func ResolveFormat(v *viper.Viper, output string) (convert.Format, error) {
	name := v.GetString(keyForceFormat)
	if name == "" {
		if output == StdioPath {
			return convert.Format{}, errors.New("writing to stdout requires --force-format")
		}
		name = filepath.Ext(output)
		if name == "" {
			return convert.Format{}, fmt.Errorf("cannot derive an output format from %q: use --force-format", output)
		}
	}

	format, err := convert.FormatByName(name)
	if err != nil {
		return convert.Format{}, err
	}

	if format.Family == convert.JPEG {
		quality := v.GetInt(keyJPEGQuality)
		if err := validate.Var(quality, "min=1,max=100"); err != nil {
			return convert.Format{}, fmt.Errorf("jpeg quality must be between 1 and 100, got %d", quality)
		}
		format.Quality = quality
	}

	var chosen *pnmFlag
	for i := range pnmFlags {
		if !v.GetBool(pnmFlags[i].name) {
			continue
		}
		if chosen != nil {
			return convert.Format{}, fmt.Errorf("--%s and --%s are mutually exclusive", chosen.name, pnmFlags[i].name)
		}
		chosen = &pnmFlags[i]
	}
	if chosen != nil && format.Family == convert.PNM && format.Subtype == chosen.subtype {
		format.Encoding = chosen.encoding
	}

	return format, nil
}
