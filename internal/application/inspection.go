package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"bpa-inspection/internal/domain/entity"
	"bpa-inspection/internal/domain/port"
)

// CameraTrigger сообщение, по которому камера делает снимок
const CameraTrigger = "Triggering Camera"

const (
	defaultCameraTimeout      = 2 * time.Second
	defaultSupervisorInterval = time.Second
	defaultGraceDelay         = 500 * time.Millisecond
)

// InspectionConfig параметры оркестратора
type InspectionConfig struct {
	Simulation         bool
	CameraTimeout      time.Duration // ожидание ответа камеры
	Threshold          float64       // порог уверенности детекции
	SupervisorInterval time.Duration // период проверки связи с источником
	GraceDelay         time.Duration // пауза перед ответом Start
}

// InspectionService связывает подписчика и мост к камере в фоновый обработчик инспекции.
type InspectionService struct {
	subscriber *Subscriber
	bridge     *Bridge
	translator port.Translator
	events     port.EventPublisher
	cfg        InspectionConfig
	log        zerolog.Logger

	mu         sync.Mutex
	state      entity.HandlerState
	lastTestOK bool
	stop       chan struct{}
	loopDone   chan struct{}
}

// NewInspectionService создаёт оркестратор и регистрирует его обработчик плана у подписчика.
func NewInspectionService(subscriber *Subscriber, bridge *Bridge, translator port.Translator,
	events port.EventPublisher, cfg InspectionConfig, log zerolog.Logger) *InspectionService {
	if cfg.CameraTimeout <= 0 {
		cfg.CameraTimeout = defaultCameraTimeout
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = entity.DefaultConfidenceThreshold
	}
	if cfg.SupervisorInterval <= 0 {
		cfg.SupervisorInterval = defaultSupervisorInterval
	}
	if cfg.GraceDelay <= 0 {
		cfg.GraceDelay = defaultGraceDelay
	}

	s := &InspectionService{
		subscriber: subscriber,
		bridge:     bridge,
		translator: translator,
		events:     events,
		cfg:        cfg,
		log:        log.With().Str("component", "inspection").Logger(),
		state:      entity.StateInactive,
	}
	subscriber.RegisterCallback(s.GetInspectionResponse)
	return s
}

// TestConnection проверяет источник и брокер. Общий флаг true только если доступны оба.
func (s *InspectionService) TestConnection(ctx context.Context) bool {
	sourceOK := s.subscriber.TestConnection(ctx)
	bridgeOK := s.bridge.TestConnection(ctx)
	ok := sourceOK && bridgeOK

	s.mu.Lock()
	s.lastTestOK = ok
	s.mu.Unlock()

	s.log.Info().Bool("source", sourceOK).Bool("bridge", bridgeOK).Msg("connection test")
	return ok
}

// Connect подключает мост, затем подписчика. При ошибке подписчика мост отключается.
func (s *InspectionService) Connect(ctx context.Context) error {
	if err := s.bridge.Connect(ctx); err != nil {
		s.log.Warn().Err(err).Msg("inspection handler failed to connect bridge")
		return err
	}

	if err := s.subscriber.Connect(ctx); err != nil {
		s.bridge.Disconnect()
		s.log.Warn().Err(err).Msg("inspection handler failed to connect subscriber")
		return err
	}
	return nil
}

// Disconnect отключает подписчика и мост.
func (s *InspectionService) Disconnect(ctx context.Context) {
	s.subscriber.Disconnect(ctx)
	s.bridge.Disconnect()
}

// IsConnected сообщает, подключены ли оба компонента.
func (s *InspectionService) IsConnected() bool {
	return s.subscriber.IsConnected() && s.bridge.IsConnected()
}

// GetInspectionResponse запрашивает снимок у камеры и строит ответ по плану.
// Без ответа камеры проверки заполняются null или false.
func (s *InspectionService) GetInspectionResponse(ctx context.Context, plan *entity.InspectionPlan) *entity.ResponsePlan {
	camera, err := s.bridge.RequestResponse(ctx, CameraTrigger, s.cfg.CameraTimeout)
	if err != nil {
		s.log.Warn().Err(err).Msg("camera response is not available")
	}

	simplified := entity.Simplify(camera, s.cfg.Threshold)
	response := entity.BuildResponsePlan(plan, simplified, s.translate)

	if raw, err := json.Marshal(response); err == nil {
		s.log.Info().RawJSON("response", raw).Msg("created inspection response")
	}
	return response
}

func (s *InspectionService) translate(className string) (string, bool) {
	if s.translator == nil {
		return "", false
	}
	return s.translator.CameraKey(className)
}

// Start подключает компоненты и запускает супервизор.
func (s *InspectionService) Start(ctx context.Context) string {
	s.mu.Lock()
	if s.state == entity.StateActive || s.state == entity.StateStarting {
		s.mu.Unlock()
		return entity.StatusAlreadyActive
	}
	s.state = entity.StateStarting
	s.mu.Unlock()

	if err := s.Connect(ctx); err != nil {
		s.setState(entity.StateInactive)
		s.log.Error().Err(err).Msg("inspection handler failed to start")
		return entity.StatusFailed
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	s.mu.Lock()
	s.stop, s.loopDone = stop, done
	s.mu.Unlock()

	go s.runLoop(context.WithoutCancel(ctx), stop, done)

	grace := time.NewTimer(s.cfg.GraceDelay)
	defer grace.Stop()

	select {
	case <-done:
		s.Disconnect(ctx)
		s.setState(entity.StateInactive)
		s.log.Error().Msg("supervisor exited during start")
		return entity.StatusFailed
	case <-grace.C:
	}

	s.mu.Lock()
	if s.state == entity.StateStarting {
		s.state = entity.StateActive
	}
	s.mu.Unlock()

	s.log.Info().Bool("simulation", s.cfg.Simulation).Msg("inspection handler started")
	return entity.StatusActive
}

// Stop останавливает супервизор и отключает компоненты. Безопасен при повторном вызове.
func (s *InspectionService) Stop(ctx context.Context) string {
	s.mu.Lock()
	stop, done := s.stop, s.loopDone
	s.stop, s.loopDone = nil, nil
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}

	s.Disconnect(ctx)
	s.setState(entity.StateInactive)
	s.publishStatus(ctx)

	if stop != nil {
		s.log.Info().Msg("inspection handler stopped")
	}
	return entity.StatusInactive
}

// runLoop периодически проверяет источник тегов. При потере связи останавливает обработчик.
func (s *InspectionService) runLoop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.cfg.SupervisorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		if s.subscriber.TestConnection(ctx) {
			s.publishStatus(ctx)
			continue
		}

		s.mu.Lock()
		s.state = entity.StateDegraded
		s.lastTestOK = false
		own := s.stop == stop
		if own {
			s.stop, s.loopDone = nil, nil
		}
		s.mu.Unlock()

		if !own {
			// Stop уже забрал каналы и сам отключит компоненты
			return
		}

		s.log.Error().Msg("tag source lost, stopping inspection handler")
		s.Disconnect(ctx)
		s.setState(entity.StateInactive)
		s.publishStatus(ctx)
		return
	}
}

// Status возвращает снимок состояния для UI.
func (s *InspectionService) Status() entity.Status {
	sourceUp := s.subscriber.IsConnected()
	bridgeUp := s.bridge.IsConnected()

	s.mu.Lock()
	defer s.mu.Unlock()
	return entity.Status{
		State:        s.state,
		Source:       entity.ConnectionOf(sourceUp),
		Bridge:       entity.ConnectionOf(bridgeUp),
		Connected:    sourceUp && bridgeUp,
		Simulation:   s.cfg.Simulation,
		LastTestOK:   s.lastTestOK,
		LatestAutoID: s.subscriber.LatestAutoID(),
		UpdatedAt:    time.Now(),
	}
}

func (s *InspectionService) setState(state entity.HandlerState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *InspectionService) publishStatus(ctx context.Context) {
	if s.events == nil {
		return
	}
	s.events.PublishStatus(ctx, s.Status())
}
