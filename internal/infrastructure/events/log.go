package events

import (
	"context"

	"github.com/rs/zerolog"

	"bpa-inspection/internal/domain/entity"
	"bpa-inspection/internal/domain/port"
)

// LogPublisher пишет события в журнал
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log.With().Str("component", "events").Logger()}
}

func (p *LogPublisher) PublishCycle(ctx context.Context, report *entity.CycleReport) {
	p.log.Info().
		Str("cycle", report.ID).
		Str("auto_id", report.AutoID).
		Str("outcome", string(report.Outcome)).
		Bool("passed", report.Passed()).
		Msg("inspection cycle")
}

func (p *LogPublisher) PublishStatus(ctx context.Context, status entity.Status) {
	p.log.Debug().
		Str("state", string(status.State)).
		Bool("connected", status.Connected).
		Str("latest_auto_id", status.LatestAutoID).
		Msg("status")
}

// Проверка реализации интерфейса
var _ port.EventPublisher = (*LogPublisher)(nil)
