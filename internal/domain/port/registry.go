package port

import (
	"context"

	"bpa-inspection/internal/domain/entity"
)

//go:generate mockgen -destination=mocks/registry_mock.go -package=mocks bpa-inspection/internal/domain/port Registry

// Registry интерфейс реестра Asset Administration Shell
type Registry interface {
	// TestConnection проверяет доступность реестра и запоминает результат
	TestConnection(ctx context.Context) bool

	// Healthy возвращает результат последней проверки
	Healthy() bool

	// GetInspectionPlan загружает план инспекции автомобиля
	GetInspectionPlan(ctx context.Context, autoID string) (*entity.InspectionPlan, error)

	// GetInspectionResponse загружает записанный ответ инспекции
	GetInspectionResponse(ctx context.Context, autoID string) (*entity.ResponsePlan, error)

	// PutInspectionResponse записывает ответ инспекции во вложение оболочки
	PutInspectionResponse(ctx context.Context, autoID string, plan *entity.ResponsePlan) error

	// GetAllIDShorts возвращает idShort всех оболочек, пустой список при ошибке
	GetAllIDShorts(ctx context.Context) []string
}
