package entity

import "time"

// ConnectionState состояние подключения отдельного компонента
type ConnectionState string

const (
	Disconnected ConnectionState = "disconnected"
	Connected    ConnectionState = "connected"
)

// ConnectionOf переводит флаг подключения в ConnectionState.
func ConnectionOf(connected bool) ConnectionState {
	if connected {
		return Connected
	}
	return Disconnected
}

// HandlerState состояние обработчика инспекции
type HandlerState string

const (
	StateInactive HandlerState = "inactive" // Обработчик остановлен
	StateStarting HandlerState = "starting" // Подключение и запуск супервизора
	StateActive   HandlerState = "active"   // Подписка работает, супервизор следит за связью
	StateDegraded HandlerState = "degraded" // Проверка связи не прошла, идёт остановка
)

// Ответы обработчика для UI
const (
	StatusActive        = "active"
	StatusFailed        = "failed"
	StatusInactive      = "inactive"
	StatusAlreadyActive = "already active"
)

// Status снимок состояния обработчика для UI.
type Status struct {
	State        HandlerState    `json:"state"`
	Source       ConnectionState `json:"source"`
	Bridge       ConnectionState `json:"bridge"`
	Connected    bool            `json:"connected"`
	Simulation   bool            `json:"simulation"`
	LastTestOK   bool            `json:"lastTestOk"`
	LatestAutoID string          `json:"latestAutoId"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Label возвращает строку состояния в том виде, в каком её показывает UI.
func (s Status) Label() string {
	if !s.LastTestOK && !s.Connected {
		return "not connected"
	}
	if s.Connected {
		return StatusActive
	}
	return StatusInactive
}
