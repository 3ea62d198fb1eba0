package thsa

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// buildDiagnostics scopes one Build call's logging: a build-correlation
// id (so concurrent builds in a process's logs can be told apart) and a
// running tally of switching triples dropped because the target grid
// could not resolve the reset image, made observable instead of silent.
type buildDiagnostics struct {
	logger  *zap.Logger
	buildID string
	dropped int
}

func newBuildDiagnostics(logger *zap.Logger) *buildDiagnostics {
	id := uuid.NewString()
	return &buildDiagnostics{
		logger:  logger.With(zap.String("build_id", id)),
		buildID: id,
	}
}

func (d *buildDiagnostics) phase(name string, fields ...zap.Field) {
	d.logger.Info(name, fields...)
}

func (d *buildDiagnostics) droppedBoundary(tid TransitionID, q StateSymbol, i TimeIndex) {
	d.dropped++
	d.logger.Debug("switching image dropped at grid boundary",
		zap.Int("transition", int(tid)),
		zap.Int("source_state", int(q)),
		zap.Int("source_time_index", int(i)),
	)
}

func (d *buildDiagnostics) summary() {
	if d.dropped > 0 {
		d.logger.Warn("switching builder dropped reset images on cell boundaries",
			zap.Int("dropped_count", d.dropped),
		)
	}
}
