package port

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/tagsource_mock.go -package=mocks bpa-inspection/internal/domain/port TagSource

// ChangeFunc получает новое значение отслеживаемого узла.
// Вызывается из горутины транспорта.
type ChangeFunc func(raw string)

// TagSource интерфейс источника тегов (сессия OPC UA на одном узле)
type TagSource interface {
	// Endpoint возвращает адрес источника для логов
	Endpoint() string

	// Probe проверяет доступность конечной точки, не трогая подписку
	Probe(ctx context.Context, timeout time.Duration) error

	// Open открывает сессию и подписывается на изменения одного узла
	Open(ctx context.Context, onChange ChangeFunc) error

	// Close закрывает подписку и сессию, безопасен без Open
	Close(ctx context.Context) error
}
