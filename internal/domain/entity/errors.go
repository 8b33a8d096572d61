package entity

import (
	"errors"
	"fmt"
)

// Ошибки компонентов конвейера инспекции.
// Проверяются через errors.Is.
var (
	// ErrConnection конечная точка недоступна или сессия отклонена
	ErrConnection = errors.New("connection failed")

	// ErrSubscription узел не найден или подписка не создана после подключения
	ErrSubscription = errors.New("subscription failed")

	// ErrTimeout ответ не пришёл за отведённое время
	ErrTimeout = errors.New("timed out waiting for response")

	// ErrDecode некорректный JSON от камеры или реестра
	ErrDecode = errors.New("malformed payload")

	// ErrRegistryLookup идентификатор, подмодель или вложение не найдены в реестре
	ErrRegistryLookup = errors.New("registry lookup failed")

	// ErrMalformedHref href конечной точки оболочки не содержит scheme://host:port
	ErrMalformedHref = errors.New("malformed endpoint href")
)

// LookupStage этап поиска в реестре AAS, на котором произошёл сбой.
type LookupStage string

const (
	StageShell      LookupStage = "shell"      // оболочка с нужным idShort
	StageSubmodel   LookupStage = "submodel"   // подмодель в списке подмоделей
	StageAttachment LookupStage = "attachment" // файл-вложение подмодели
)

// LookupError описывает, что именно не нашлось в реестре.
type LookupError struct {
	Stage LookupStage
	Key   string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Stage, e.Key)
}

// Unwrap позволяет сравнивать с ErrRegistryLookup.
func (e *LookupError) Unwrap() error {
	return ErrRegistryLookup
}
