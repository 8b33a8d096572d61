package port

import (
	"context"

	"bpa-inspection/internal/domain/entity"
)

//go:generate mockgen -destination=mocks/publisher_mock.go -package=mocks bpa-inspection/internal/domain/port EventPublisher

// EventPublisher интерфейс публикации событий инспекции
type EventPublisher interface {
	// PublishCycle публикует итог цикла инспекции
	PublishCycle(ctx context.Context, report *entity.CycleReport)

	// PublishStatus публикует снимок состояния обработчика
	PublishStatus(ctx context.Context, status entity.Status)
}
