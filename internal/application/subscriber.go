package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bpa-inspection/internal/domain/entity"
	"bpa-inspection/internal/domain/port"
)

const (
	defaultProbeTimeout = 2 * time.Second
	defaultQueueSize    = 16
)

// PlanHandler строит ответ инспекции по плану. Регистрируется оркестратором.
type PlanHandler func(ctx context.Context, plan *entity.InspectionPlan) *entity.ResponsePlan

// SubscriberConfig параметры подписчика
type SubscriberConfig struct {
	ProbeTimeout time.Duration // таймаут проверки доступности источника
	QueueSize    int           // размер очереди циклов инспекции
}

// cycleJob одно уведомление, ожидающее обработки воркером
type cycleJob struct {
	tag    string
	autoID string
}

// Subscriber следит за RFID-считывателем и запускает цикл инспекции на каждую метку.
type Subscriber struct {
	source   port.TagSource
	registry port.Registry
	cars     port.CarRepository
	events   port.EventPublisher
	log      zerolog.Logger
	cfg      SubscriberConfig

	mu         sync.Mutex
	connected  bool
	lastTestOK bool
	latest     string
	handler    PlanHandler
	ctx        context.Context
	queue      chan cycleJob
	done       chan struct{}
	wg         sync.WaitGroup
}

// NewSubscriber создаёт подписчика. events может быть nil.
func NewSubscriber(source port.TagSource, registry port.Registry, cars port.CarRepository,
	events port.EventPublisher, cfg SubscriberConfig, log zerolog.Logger) *Subscriber {
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = defaultProbeTimeout
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	return &Subscriber{
		source:   source,
		registry: registry,
		cars:     cars,
		events:   events,
		cfg:      cfg,
		log:      log.With().Str("component", "subscriber").Logger(),
		latest:   entity.NoAutoID,
	}
}

// TestConnection проверяет доступность источника. Состояние подписки не меняется.
func (s *Subscriber) TestConnection(ctx context.Context) bool {
	err := s.source.Probe(ctx, s.cfg.ProbeTimeout)

	s.mu.Lock()
	s.lastTestOK = err == nil
	s.mu.Unlock()

	if err != nil {
		s.log.Warn().Err(err).Str("endpoint", s.source.Endpoint()).Msg("tag source probe failed")
		return false
	}
	return true
}

// Connect открывает подписку на узел считывателя и запускает воркер инспекции.
func (s *Subscriber) Connect(ctx context.Context) error {
	if s.IsConnected() {
		s.log.Warn().Msg("subscriber already connected")
		return nil
	}

	if !s.TestConnection(ctx) {
		return fmt.Errorf("tag source %s: %w", s.source.Endpoint(), entity.ErrConnection)
	}

	s.mu.Lock()
	s.ctx = context.WithoutCancel(ctx)
	s.queue = make(chan cycleJob, s.cfg.QueueSize)
	s.done = make(chan struct{})
	queue, done := s.queue, s.done
	s.mu.Unlock()

	if err := s.source.Open(ctx, s.handleChange); err != nil {
		s.mu.Lock()
		close(s.done)
		s.queue, s.done = nil, nil
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("failed to open tag subscription")
		return err
	}

	s.wg.Add(1)
	go s.worker(queue, done)

	s.mu.Lock()
	s.connected = true
	s.mu.Unlock()

	s.log.Info().Str("endpoint", s.source.Endpoint()).Msg("subscriber connected")
	return nil
}

// Disconnect закрывает подписку и останавливает воркер. Безопасен при повторном вызове.
func (s *Subscriber) Disconnect(ctx context.Context) {
	s.mu.Lock()
	wasConnected := s.connected
	s.connected = false
	if s.done != nil {
		close(s.done)
		s.done, s.queue = nil, nil
	}
	s.mu.Unlock()

	if err := s.source.Close(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to close tag source")
	}
	s.wg.Wait()

	if wasConnected {
		s.log.Info().Msg("subscriber disconnected")
	}
}

// RegisterCallback сохраняет обработчик плана, заменяя предыдущий.
func (s *Subscriber) RegisterCallback(fn PlanHandler) {
	s.mu.Lock()
	s.handler = fn
	s.mu.Unlock()
}

// IsConnected сообщает, активна ли подписка.
func (s *Subscriber) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// LastTestOK возвращает результат последней проверки доступности.
func (s *Subscriber) LastTestOK() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTestOK
}

// LatestAutoID возвращает последний распознанный идентификатор или entity.NoAutoID.
func (s *Subscriber) LatestAutoID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// handleChange вызывается транспортом на каждое новое значение узла.
func (s *Subscriber) handleChange(raw string) {
	tag, ok := entity.ParseTag(raw)
	if !ok {
		s.setLatest(entity.NoAutoID)
		s.log.Error().Str("payload", raw).Msg("no tag in reader payload")
		return
	}

	autoID, found := s.cars.AutoID(context.Background(), tag)
	if !found {
		s.setLatest(entity.NoAutoID)
		s.log.Error().Str("tag", tag).Msg("tag is not assigned to any car")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = autoID
	s.log.Info().Str("tag", tag).Str("auto_id", autoID).Msg("tag resolved")

	if s.queue == nil {
		return
	}
	select {
	case s.queue <- cycleJob{tag: tag, autoID: autoID}:
	default:
		s.log.Error().Str("auto_id", autoID).Int("queue_size", s.cfg.QueueSize).
			Msg("inspection queue is full, notification dropped")
	}
}

func (s *Subscriber) setLatest(autoID string) {
	s.mu.Lock()
	s.latest = autoID
	s.mu.Unlock()
}

// worker выполняет циклы инспекции строго по одному, в порядке поступления.
func (s *Subscriber) worker(queue <-chan cycleJob, done <-chan struct{}) {
	defer s.wg.Done()

	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	for {
		select {
		case <-done:
			return
		case job := <-queue:
			s.runCycle(ctx, job)
		}
	}
}

func (s *Subscriber) runCycle(ctx context.Context, job cycleJob) {
	report := &entity.CycleReport{
		ID:        uuid.NewString(),
		Tag:       job.tag,
		AutoID:    job.autoID,
		StartedAt: time.Now(),
	}
	log := s.log.With().Str("cycle", report.ID).Str("auto_id", job.autoID).Logger()

	defer func() {
		report.FinishedAt = time.Now()
		log.Info().Str("outcome", string(report.Outcome)).Dur("took", report.Duration()).Msg("inspection cycle finished")
		if s.events != nil {
			s.events.PublishCycle(ctx, report)
		}
	}()

	s.mu.Lock()
	handler := s.handler
	s.mu.Unlock()
	if handler == nil {
		report.Outcome = entity.OutcomeNoCallback
		log.Warn().Msg("no plan handler registered")
		return
	}

	plan, err := s.registry.GetInspectionPlan(ctx, job.autoID)
	if err != nil {
		report.Outcome = entity.OutcomeNoPlan
		report.Error = err.Error()
		return
	}
	report.Plan = plan

	response := handler(ctx, plan)
	if response == nil {
		response = entity.BuildResponsePlan(nil, nil, nil)
	}
	report.Response = response

	if err := s.registry.PutInspectionResponse(ctx, job.autoID, response); err != nil {
		report.Outcome = entity.OutcomeWriteFail
		report.Error = err.Error()
		return
	}
	report.Outcome = entity.OutcomeCompleted
}
