package container

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"bpa-inspection/config"
	app "bpa-inspection/internal/application"
	"bpa-inspection/internal/domain/entity"
	"bpa-inspection/internal/domain/port"
	"bpa-inspection/internal/infrastructure/aas"
	"bpa-inspection/internal/infrastructure/events"
	"bpa-inspection/internal/infrastructure/mqtt"
	"bpa-inspection/internal/infrastructure/opcua"
	"bpa-inspection/internal/infrastructure/storage"
)

// HeartbeatInterval период обновления heartbeat процесса, меньше TTL бакета
const HeartbeatInterval = 20 * time.Second

type Container struct {
	Config *config.Config
	Log    zerolog.Logger

	Cars            *storage.MemoryCarRepository
	Translations    *storage.TranslationTable
	Registry        *aas.Client
	Events          *events.Fanout
	OperatorService *app.OperatorService

	nats      *events.NATSPublisher
	heartbeat port.EventPublisher

	// mu упорядочивает Start, Stop и SwitchMode, защищает текущий набор компонентов
	mu         sync.RWMutex
	simulation bool
	subscriber *app.Subscriber
	bridge     *app.Bridge
	inspection *app.InspectionService
}

// New собирает сервисы приложения по конфигурации. NATS подключается только если задан NATS_URL.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Container, error) {
	cars, err := storage.LoadCarRepository(cfg.CarsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load cars table: %w", err)
	}

	translations, err := storage.LoadTranslationTable(cfg.TranslationConfigPath, log)
	if err != nil {
		return nil, fmt.Errorf("load translation table: %w", err)
	}

	c := &Container{
		Config:          cfg,
		Log:             log,
		Cars:            cars,
		Translations:    translations,
		Registry:        aas.NewClient(cfg.AASURL, cfg.AASTimeout, nil, log),
		Events:          events.NewFanout(events.NewLogPublisher(log)),
		OperatorService: app.NewOperatorService(storage.NewMemoryOperatorRepository()),
	}

	if cfg.NATSURL != "" {
		nats, err := events.NewNATSPublisher(ctx, cfg.NATSURL, "", log)
		if err != nil {
			// События необязательны, обработчик работает без них
			log.Warn().Err(err).Msg("nats is not available, events are logged only")
		} else {
			c.nats = nats
			c.heartbeat = nats
			c.Events.Add(nats)
		}
	}

	c.build(cfg.Simulation)
	return c, nil
}

// build собирает источник, мост и обработчик для режима. Вызывается под mu или до публикации.
func (c *Container) build(simulation bool) {
	cfg := c.Config

	endpoint, node := cfg.OPCUAEndpoint(simulation), cfg.OPCUANodePath(simulation)
	if node == "" {
		node = opcua.DefaultNodePath(simulation)
	}

	source := opcua.NewSource(opcua.Config{
		Endpoint: endpoint,
		Node:     node,
	}, c.Log)

	broker := mqtt.NewBroker(mqtt.Config{
		Host:           cfg.MQTTHost,
		Port:           cfg.MQTTPort,
		ClientID:       cfg.MQTTClientID,
		ConnectTimeout: cfg.MQTTConnectTimeout,
	}, c.Log)

	c.simulation = simulation
	c.subscriber = app.NewSubscriber(source, c.Registry, c.Cars, c.Events, app.SubscriberConfig{
		QueueSize: cfg.QueueSize,
	}, c.Log)
	c.bridge = app.NewBridge(broker, c.Log)
	c.inspection = app.NewInspectionService(c.subscriber, c.bridge, c.Translations, c.Events, app.InspectionConfig{
		Simulation:         simulation,
		CameraTimeout:      cfg.CameraTimeout,
		Threshold:          cfg.ConfidenceThreshold,
		SupervisorInterval: cfg.SupervisorInterval,
	}, c.Log)
}

// SwitchMode останавливает обработчик и пересобирает компоненты для другого режима.
// Обработчик после переключения не запускается. Возвращает false, если режим уже выбран.
func (c *Container) SwitchMode(ctx context.Context, simulation bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.simulation == simulation {
		return false
	}

	c.inspection.Stop(ctx)
	c.build(simulation)
	c.Log.Info().Bool("simulation", simulation).Msg("inspection mode switched")
	return true
}

// Simulation сообщает текущий режим
func (c *Container) Simulation() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.simulation
}

// InspectionService возвращает обработчик текущего режима
func (c *Container) InspectionService() *app.InspectionService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inspection
}

// Subscriber возвращает подписчика текущего режима
func (c *Container) Subscriber() *app.Subscriber {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.subscriber
}

// Bridge возвращает мост к камере текущего режима
func (c *Container) Bridge() *app.Bridge {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bridge
}

// TestConnection проверяет связь обработчика текущего режима
func (c *Container) TestConnection(ctx context.Context) bool {
	return c.InspectionService().TestConnection(ctx)
}

// Start запускает обработчик текущего режима
func (c *Container) Start(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inspection.Start(ctx)
}

// Stop останавливает обработчик текущего режима
func (c *Container) Stop(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inspection.Stop(ctx)
}

// Status возвращает снимок состояния обработчика текущего режима
func (c *Container) Status() entity.Status {
	return c.InspectionService().Status()
}

// WatchTables перечитывает таблицу перевода при изменении файла, пока не отменён ctx.
func (c *Container) WatchTables(ctx context.Context) {
	go func() {
		if err := c.Translations.Watch(ctx); err != nil {
			c.Log.Warn().Err(err).Msg("translation table watcher stopped")
		}
	}()
}

// KeepAlive обновляет heartbeat процесса независимо от состояния обработчика, пока не отменён ctx.
func (c *Container) KeepAlive(ctx context.Context, interval time.Duration) {
	if c.heartbeat == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		c.heartbeat.PublishStatus(ctx, c.Status())
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.heartbeat.PublishStatus(ctx, c.Status())
			}
		}
	}()
}

// SyncCars добавляет в таблицу автомобили для новых оболочек реестра.
func (c *Container) SyncCars(ctx context.Context) int {
	added := c.Cars.Merge(ctx, c.Registry.GetAllIDShorts(ctx))
	if added > 0 {
		c.Log.Info().Int("added", added).Msg("cars table extended from registry")
	}
	return added
}

// Close останавливает обработчик и закрывает соединения.
func (c *Container) Close(ctx context.Context) {
	c.Stop(ctx)
	if c.nats != nil {
		c.nats.Close(ctx)
	}
}
