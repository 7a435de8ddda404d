package identify

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
)

type identifier struct {
	logger *slog.Logger
	now    func() time.Time
}

// New creates the identify System.
func New(logger *slog.Logger) System {
	return &identifier{
		logger: logger.With("system", "identify"),
		now:    time.Now,
	}
}

func (s *identifier) Handler(maxUploadSize int64) *Handler {
	return NewHandler(s, s.logger, maxUploadSize)
}

func (s *identifier) Identify(ctx context.Context, in Input) (*Identification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metal, density := Classify(in)

	id := &Identification{
		ID:           uuid.New(),
		Input:        in,
		Metal:        metal,
		Density:      density,
		IdentifiedAt: s.now().UTC(),
	}

	s.logger.Info("sample identified",
		"id", id.ID,
		"metal", id.Metal,
		"density", id.DensityText(),
		"magnetic", in.Magnetic,
	)
	return id, nil
}

func (s *identifier) Options() Options {
	return Options{
		Defaults:     Defaults(),
		SparkResults: slices.Clone(SparkResults),
		WeightMin:    MinWeight,
		VolumeMin:    MinVolume,
		ScratchMin:   MinScratch,
		ScratchMax:   MaxScratch,
		Metals:       slices.Clone(Metals),
		ImageFormats: slices.Clone(ImageFormats),
	}
}
