package mqtt

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bpa-inspection/internal/domain/entity"
	"bpa-inspection/internal/domain/port"
)

const (
	defaultConnectTimeout = 5 * time.Second
	qos                   = 1
	disconnectQuiesce     = 250 // мс
)

var errNotConnected = errors.New("mqtt client is not connected")

// Config параметры брокера
type Config struct {
	Host           string
	Port           int
	ClientID       string        // пустой: генерируется
	ConnectTimeout time.Duration // ожидание подключения и подтверждения подписки
}

// Broker клиент MQTT-брокера для запросов к камере.
type Broker struct {
	cfg Config
	log zerolog.Logger

	mu     sync.Mutex
	client paho.Client
}

// NewBroker создаёт клиента. Подключение выполняется в Connect.
func NewBroker(cfg Config, log zerolog.Logger) *Broker {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "bpa-inspection-" + uuid.NewString()[:8]
	}
	return &Broker{
		cfg: cfg,
		log: log.With().Str("component", "mqtt").Logger(),
	}
}

// Address возвращает адрес брокера
func (b *Broker) Address() string {
	return "tcp://" + net.JoinHostPort(b.cfg.Host, strconv.Itoa(b.cfg.Port))
}

func (b *Broker) options(clientID string) *paho.ClientOptions {
	return paho.NewClientOptions().
		AddBroker(b.Address()).
		SetClientID(clientID).
		SetConnectTimeout(b.cfg.ConnectTimeout).
		SetAutoReconnect(false).
		SetCleanSession(true)
}

// Probe подключается отдельным клиентом и сразу отключается.
func (b *Broker) Probe(ctx context.Context) error {
	client := paho.NewClient(b.options("probe-" + uuid.NewString()[:8]))
	if err := b.wait(ctx, client.Connect()); err != nil {
		return fmt.Errorf("probe %s: %v: %w", b.Address(), err, entity.ErrConnection)
	}
	client.Disconnect(0)
	return nil
}

// Connect открывает постоянную сессию.
func (b *Broker) Connect(ctx context.Context, onLost port.LostFunc) error {
	opts := b.options(b.cfg.ClientID).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			if onLost != nil {
				onLost(err)
			}
		})

	client := paho.NewClient(opts)
	if err := b.wait(ctx, client.Connect()); err != nil {
		return fmt.Errorf("connect %s: %v: %w", b.Address(), err, entity.ErrConnection)
	}

	b.mu.Lock()
	prev := b.client
	b.client = client
	b.mu.Unlock()

	if prev != nil && prev.IsConnected() {
		prev.Disconnect(disconnectQuiesce)
	}

	b.log.Info().Str("broker", b.Address()).Str("client_id", b.cfg.ClientID).Msg("connected to broker")
	return nil
}

// Subscribe подписывается на топик и ждёт SUBACK.
func (b *Broker) Subscribe(ctx context.Context, topic string, handler port.MessageFunc) error {
	client, err := b.current()
	if err != nil {
		return err
	}

	token := client.Subscribe(topic, qos, func(_ paho.Client, msg paho.Message) {
		handler(msg.Payload())
	})
	if err := b.wait(ctx, token); err != nil {
		return fmt.Errorf("subscribe %s: %v: %w", topic, err, entity.ErrConnection)
	}

	b.log.Debug().Str("topic", topic).Msg("subscribed")
	return nil
}

// Publish публикует сообщение в топик.
func (b *Broker) Publish(ctx context.Context, topic string, payload []byte) error {
	client, err := b.current()
	if err != nil {
		return err
	}

	if err := b.wait(ctx, client.Publish(topic, qos, false, payload)); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Disconnect закрывает сессию.
func (b *Broker) Disconnect() {
	b.mu.Lock()
	client := b.client
	b.client = nil
	b.mu.Unlock()

	if client != nil && client.IsConnected() {
		client.Disconnect(disconnectQuiesce)
	}
}

func (b *Broker) current() (paho.Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client == nil || !b.client.IsConnectionOpen() {
		return nil, errNotConnected
	}
	return b.client, nil
}

// wait ждёт завершения операции не дольше ConnectTimeout.
func (b *Broker) wait(ctx context.Context, token paho.Token) error {
	timer := time.NewTimer(b.cfg.ConnectTimeout)
	defer timer.Stop()

	select {
	case <-token.Done():
		return token.Error()
	case <-timer.C:
		return fmt.Errorf("no answer from broker after %s", b.cfg.ConnectTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Проверка реализации интерфейса
var _ port.Broker = (*Broker)(nil)
