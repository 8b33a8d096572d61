package port

import (
	"context"

	"bpa-inspection/internal/domain/entity"
)

// CarRepository интерфейс таблицы автомобилей (RFID ↔ AutoID)
type CarRepository interface {
	// AutoID возвращает идентификатор оболочки по RFID-метке
	AutoID(ctx context.Context, rfid string) (string, bool)

	// CarName возвращает название модели по идентификатору
	CarName(ctx context.Context, autoID string) (string, bool)

	// List возвращает все автомобили, отсортированные по названию
	List(ctx context.Context) []entity.Car

	// Merge добавляет автомобили для новых idShort из реестра, возвращает число добавленных
	Merge(ctx context.Context, autoIDs []string) int

	// SetRFID назначает метку автомобилю
	SetRFID(ctx context.Context, autoID, rfid string) error
}

// Translator интерфейс таблицы перевода классов плана в ключи камеры
type Translator interface {
	// CameraKey возвращает ключ ответа камеры для класса плана
	CameraKey(className string) (string, bool)
}
