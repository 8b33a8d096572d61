package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"bpa-inspection/internal/domain/entity"
	"bpa-inspection/internal/domain/port"
)

// Топики камеры
const (
	RequestTopic  = "bpa24/cv/request"
	ResponseTopic = "bpa24/cv/result"
)

// Bridge реализует синхронный запрос-ответ к сервису камеры поверх брокера.
type Bridge struct {
	broker port.Broker
	log    zerolog.Logger

	mu         sync.Mutex
	connected  bool
	lastTestOK bool
	last       *entity.CameraResponse
	received   chan struct{}
}

// NewBridge создаёт мост к камере.
func NewBridge(broker port.Broker, log zerolog.Logger) *Bridge {
	return &Bridge{
		broker:   broker,
		log:      log.With().Str("component", "bridge").Logger(),
		received: make(chan struct{}, 1),
	}
}

// TestConnection подключается к брокеру отдельным клиентом и сразу отключается.
func (b *Bridge) TestConnection(ctx context.Context) bool {
	err := b.broker.Probe(ctx)

	b.mu.Lock()
	b.lastTestOK = err == nil
	b.mu.Unlock()

	if err != nil {
		b.log.Warn().Err(err).Str("broker", b.broker.Address()).Msg("broker probe failed")
		return false
	}
	return true
}

// Connect открывает сессию и ждёт подтверждения подписки на топик ответов.
func (b *Bridge) Connect(ctx context.Context) error {
	if b.IsConnected() {
		b.log.Warn().Msg("bridge already connected")
		return nil
	}

	if !b.TestConnection(ctx) {
		return fmt.Errorf("broker %s: %w", b.broker.Address(), entity.ErrConnection)
	}

	if err := b.broker.Connect(ctx, b.onLost); err != nil {
		b.log.Error().Err(err).Msg("failed to connect to broker")
		return err
	}

	if err := b.broker.Subscribe(ctx, ResponseTopic, b.onMessage); err != nil {
		b.broker.Disconnect()
		b.log.Error().Err(err).Str("topic", ResponseTopic).Msg("failed to subscribe")
		return err
	}

	b.mu.Lock()
	b.connected = true
	b.mu.Unlock()

	b.log.Info().Str("broker", b.broker.Address()).Msg("bridge connected")
	return nil
}

// Disconnect закрывает сессию. Безопасен без Connect.
func (b *Bridge) Disconnect() {
	b.mu.Lock()
	wasConnected := b.connected
	b.connected = false
	b.mu.Unlock()

	b.broker.Disconnect()
	if wasConnected {
		b.log.Info().Msg("bridge disconnected")
	}
}

// IsConnected сообщает, открыта ли сессия с брокером.
func (b *Bridge) IsConnected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.connected
}

// LastTestOK возвращает результат последней проверки брокера.
func (b *Bridge) LastTestOK() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastTestOK
}

// RequestResponse публикует запрос и ждёт ответ камеры не дольше timeout.
// По истечении времени возвращает nil и entity.ErrTimeout.
func (b *Bridge) RequestResponse(ctx context.Context, message string, timeout time.Duration) (*entity.CameraResponse, error) {
	if !b.IsConnected() {
		if err := b.Connect(ctx); err != nil {
			return nil, err
		}
	}

	// Сбрасываем сигнал от ответа на прошлый запрос
	b.mu.Lock()
	b.last = nil
	select {
	case <-b.received:
	default:
	}
	b.mu.Unlock()

	if err := b.broker.Publish(ctx, RequestTopic, []byte(message)); err != nil {
		b.log.Error().Err(err).Str("topic", RequestTopic).Msg("failed to publish request")
		return nil, err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-b.received:
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.last, nil
	case <-timer.C:
		b.log.Warn().Dur("timeout", timeout).Msg("no camera response")
		return nil, fmt.Errorf("camera response after %s: %w", timeout, entity.ErrTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// onMessage обрабатывает ответ камеры. Некорректный JSON не сигналит ожидающему запросу.
func (b *Bridge) onMessage(payload []byte) {
	resp, err := entity.DecodeCameraResponse(payload)
	if err != nil {
		b.log.Error().Err(err).Msg("failed to decode camera response")
		return
	}

	b.mu.Lock()
	b.last = resp
	b.mu.Unlock()

	select {
	case b.received <- struct{}{}:
	default:
	}
}

func (b *Bridge) onLost(err error) {
	b.mu.Lock()
	b.connected = false
	b.mu.Unlock()
	b.log.Warn().Err(err).Msg("broker connection lost")
}
