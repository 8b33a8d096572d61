package port

import "context"

// MessageFunc получает полезную нагрузку сообщения из топика
type MessageFunc func(payload []byte)

// LostFunc вызывается при асинхронном обрыве соединения с брокером
type LostFunc func(err error)

// Broker интерфейс pub/sub брокера (MQTT)
type Broker interface {
	// Address возвращает адрес брокера для логов
	Address() string

	// Probe подключается и сразу отключается отдельным клиентом
	Probe(ctx context.Context) error

	// Connect открывает постоянную сессию, onLost вызывается при обрыве
	Connect(ctx context.Context, onLost LostFunc) error

	// Subscribe подписывается на топик и ждёт подтверждения брокера
	Subscribe(ctx context.Context, topic string, handler MessageFunc) error

	// Publish публикует сообщение в топик
	Publish(ctx context.Context, topic string, payload []byte) error

	// Disconnect закрывает сессию, безопасен без Connect
	Disconnect()
}
