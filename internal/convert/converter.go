package convert

import (
	"io"
	"time"

	"go.uber.org/zap"

	imginfo "github.com/ironsheep/sic/internal/imaging"
)

// Job is a fully resolved conversion request.
type Job struct {
	// Operations are applied in order.
	Operations []Operation

	// Frame selects the frame of animated input. Ignored for still images.
	Frame FrameSelector

	// Format is the output encoding, including its parameters.
	Format Format

	// Target receives the encoded image.
	Target ExportTarget

	// AdjustColor enables automatic color model adjustment before encoding.
	AdjustColor bool
}

// Converter runs jobs through the load, operation, adjustment and write
// stages. A Converter holds no per-job state; run one job per input.
type Converter struct {
	log *zap.Logger
}

// New creates a Converter logging to log. A nil logger disables logging.
func New(log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{log: log.Named("convert")}
}

// Run reads r to completion and converts its content according to job.
func (c *Converter) Run(r io.Reader, job Job) error {
	data, err := ReadInput(r)
	if err != nil {
		return err
	}
	return c.Convert(data, job)
}

// Convert decodes data and converts it according to job. The first failing
// stage stops the conversion and its error is returned.
func (c *Converter) Convert(data []byte, job Job) error {
	start := time.Now()

	img, err := Load(data, job.Frame)
	if err != nil {
		return err
	}
	if ce := c.log.Check(zap.DebugLevel, "loaded"); ce != nil {
		info := imginfo.Describe(img.Pixels, data)
		ce.Write(
			zap.Int("bytes", len(data)),
			zap.String("format", info.Format),
			zap.Int("width", info.Width),
			zap.Int("height", info.Height),
			zap.Stringer("model", img.Model),
			zap.Stringer("frame", job.Frame),
		)
	}

	for _, op := range job.Operations {
		c.log.Debug("queued operation", zap.Stringer("op", op))
	}
	img, err = Apply(img, job.Operations)
	if err != nil {
		return err
	}

	adjusted := Adjust(img, job.Format, job.AdjustColor)
	c.log.Debug("color adjustment",
		zap.Bool("enabled", job.AdjustColor),
		zap.Stringer("policy", AdjustmentFor(job.Format)),
		zap.Stringer("model", adjusted.Model),
	)

	if err := Write(adjusted, job.Format, job.Target); err != nil {
		return err
	}

	c.log.Debug("converted",
		zap.Stringer("format", job.Format),
		zap.Int("width", adjusted.Width()),
		zap.Int("height", adjusted.Height()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
