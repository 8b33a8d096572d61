package opcua

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gopcua/opcua"
	"github.com/gopcua/opcua/id"
	"github.com/gopcua/opcua/monitor"
	"github.com/gopcua/opcua/ua"
	"github.com/rs/zerolog"

	"bpa-inspection/internal/domain/entity"
	"bpa-inspection/internal/domain/port"
)

const (
	subscriptionInterval = 100 * time.Millisecond
	changeBuffer         = 64
)

// Config параметры источника
type Config struct {
	Endpoint    string        // opc.tcp://host:port
	Node        string        // NodeId (ns=..;s=..) или путь просмотра от Objects
	DialTimeout time.Duration // таймаут установки соединения
}

// Source сессия OPC UA с подпиской на один узел считывателя.
type Source struct {
	cfg Config
	log zerolog.Logger

	mu     sync.Mutex
	client *opcua.Client
	sub    *monitor.Subscription
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSource создаёт источник. Подключение выполняется в Open.
func NewSource(cfg Config, log zerolog.Logger) *Source {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	return &Source{
		cfg: cfg,
		log: log.With().Str("component", "opcua").Str("endpoint", cfg.Endpoint).Logger(),
	}
}

// Endpoint возвращает адрес сервера
func (s *Source) Endpoint() string {
	return s.cfg.Endpoint
}

// Probe запрашивает список конечных точек сервера без открытия сессии.
func (s *Source) Probe(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := opcua.GetEndpoints(ctx, s.cfg.Endpoint); err != nil {
		return fmt.Errorf("get endpoints: %w", err)
	}
	return nil
}

// Open подключается к серверу и подписывается на изменения узла.
func (s *Source) Open(ctx context.Context, onChange port.ChangeFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return nil
	}

	client, err := opcua.NewClient(s.cfg.Endpoint,
		opcua.SecurityMode(ua.MessageSecurityModeNone),
		opcua.SecurityPolicy(ua.SecurityPolicyURINone),
		opcua.AuthAnonymous(),
		opcua.DialTimeout(s.cfg.DialTimeout),
		opcua.AutoReconnect(true),
		opcua.ReconnectInterval(5*time.Second),
	)
	if err != nil {
		return fmt.Errorf("create client: %v: %w", err, entity.ErrConnection)
	}

	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("connect %s: %v: %w", s.cfg.Endpoint, err, entity.ErrConnection)
	}

	nodeID, err := s.resolveNode(ctx, client)
	if err != nil {
		_ = client.Close(ctx)
		return fmt.Errorf("resolve node %q: %v: %w", s.cfg.Node, err, entity.ErrSubscription)
	}

	nm, err := monitor.NewNodeMonitor(client)
	if err != nil {
		_ = client.Close(ctx)
		return fmt.Errorf("create node monitor: %v: %w", err, entity.ErrSubscription)
	}

	subCtx, cancel := context.WithCancel(context.Background())
	ch := make(chan *monitor.DataChangeMessage, changeBuffer)
	sub, err := nm.ChanSubscribe(subCtx, &opcua.SubscriptionParameters{Interval: subscriptionInterval}, ch, nodeID.String())
	if err != nil {
		cancel()
		_ = client.Close(ctx)
		return fmt.Errorf("subscribe %s: %v: %w", nodeID, err, entity.ErrSubscription)
	}

	s.client, s.sub, s.cancel = client, sub, cancel
	s.done = make(chan struct{})
	go s.read(subCtx, ch, onChange, s.done)

	s.log.Info().Str("node", nodeID.String()).Dur("interval", subscriptionInterval).Msg("subscribed to reader node")
	return nil
}

// Close снимает подписку и закрывает сессию.
func (s *Source) Close(ctx context.Context) error {
	s.mu.Lock()
	client, sub, cancel, done := s.client, s.sub, s.cancel, s.done
	s.client, s.sub, s.cancel, s.done = nil, nil, nil, nil
	s.mu.Unlock()

	if client == nil {
		return nil
	}

	if sub != nil {
		if err := sub.Unsubscribe(ctx); err != nil {
			s.log.Debug().Err(err).Msg("unsubscribe failed")
		}
	}
	cancel()
	<-done

	if err := client.Close(ctx); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}

// resolveNode находит NodeId узла по конфигурации.
func (s *Source) resolveNode(ctx context.Context, client *opcua.Client) (*ua.NodeID, error) {
	if IsNodeID(s.cfg.Node) {
		return ua.ParseNodeID(s.cfg.Node)
	}

	path, err := ParseBrowsePath(s.cfg.Node)
	if err != nil {
		return nil, err
	}
	root := client.Node(ua.NewNumericNodeID(0, id.ObjectsFolder))
	return root.TranslateBrowsePathsToNodeIDs(ctx, path)
}

func (s *Source) read(ctx context.Context, ch <-chan *monitor.DataChangeMessage, onChange port.ChangeFunc, done chan<- struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case dcm, ok := <-ch:
			if !ok {
				return
			}
			if dcm.Error != nil {
				s.log.Debug().Err(dcm.Error).Msg("data change error")
				continue
			}
			if dcm.Status != ua.StatusOK {
				s.log.Warn().Str("status", dcm.Status.Error()).Msg("bad value quality")
				continue
			}
			onChange(valueText(dcm.Value))
		}
	}
}

// Проверка реализации интерфейса
var _ port.TagSource = (*Source)(nil)
