package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog"

	"bpa-inspection/internal/domain/entity"
	"bpa-inspection/internal/domain/port"
)

// Субъекты и ключи NATS
const (
	CycleSubjectPrefix = "bpa.inspection.cycle."
	StatusSubject      = "bpa.inspection.status"
	HeartbeatBucket    = "service_heartbeats"
	ServiceType        = "bpa-inspection"
)

// Heartbeat запись в бакете service_heartbeats
type Heartbeat struct {
	ServiceType string        `json:"serviceType"`
	ModuleID    string        `json:"moduleId"`
	LastSeen    int64         `json:"lastSeen"`
	StartedAt   int64         `json:"startedAt"`
	Status      entity.Status `json:"status"`
}

var subjectToken = strings.NewReplacer(".", "_", " ", "_", "*", "_", ">", "_")

// CycleSubject возвращает субъект для отчётов по автомобилю
func CycleSubject(autoID string) string {
	if autoID == "" {
		autoID = entity.NoAutoID
	}
	return CycleSubjectPrefix + subjectToken.Replace(autoID)
}

// NATSPublisher публикует отчёты циклов и heartbeat обработчика в NATS.
type NATSPublisher struct {
	nc        *nats.Conn
	kv        jetstream.KeyValue
	moduleID  string
	startedAt time.Time
	log       zerolog.Logger
}

// NewNATSPublisher подключается к NATS и открывает бакет heartbeat.
func NewNATSPublisher(ctx context.Context, url, moduleID string, log zerolog.Logger) (*NATSPublisher, error) {
	log = log.With().Str("component", "events").Logger()

	nc, err := nats.Connect(url,
		nats.Name(ServiceType),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  HeartbeatBucket,
		History: 1,
		TTL:     60 * time.Second,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("open heartbeat bucket: %w", err)
	}

	if moduleID == "" {
		moduleID = ServiceType
	}
	log.Info().Str("url", url).Str("module_id", moduleID).Msg("nats publisher ready")

	return &NATSPublisher{
		nc:        nc,
		kv:        kv,
		moduleID:  moduleID,
		startedAt: time.Now(),
		log:       log,
	}, nil
}

// PublishCycle публикует отчёт цикла в bpa.inspection.cycle.<autoID>
func (p *NATSPublisher) PublishCycle(ctx context.Context, report *entity.CycleReport) {
	data, err := json.Marshal(report)
	if err != nil {
		p.log.Warn().Err(err).Msg("failed to marshal cycle report")
		return
	}
	if err := p.nc.Publish(CycleSubject(report.AutoID), data); err != nil {
		p.log.Warn().Err(err).Msg("failed to publish cycle report")
	}
}

// PublishStatus публикует снимок состояния и обновляет heartbeat
func (p *NATSPublisher) PublishStatus(ctx context.Context, status entity.Status) {
	data, err := json.Marshal(status)
	if err != nil {
		p.log.Warn().Err(err).Msg("failed to marshal status")
		return
	}
	if err := p.nc.Publish(StatusSubject, data); err != nil {
		p.log.Warn().Err(err).Msg("failed to publish status")
	}

	hb := Heartbeat{
		ServiceType: ServiceType,
		ModuleID:    p.moduleID,
		LastSeen:    time.Now().UnixMilli(),
		StartedAt:   p.startedAt.UnixMilli(),
		Status:      status,
	}
	data, err = json.Marshal(hb)
	if err != nil {
		p.log.Warn().Err(err).Msg("failed to marshal heartbeat")
		return
	}
	if _, err := p.kv.Put(ctx, p.moduleID, data); err != nil {
		p.log.Warn().Err(err).Msg("failed to publish heartbeat")
	}
}

// Close удаляет heartbeat и закрывает соединение
func (p *NATSPublisher) Close(ctx context.Context) {
	if err := p.kv.Delete(ctx, p.moduleID); err != nil {
		p.log.Debug().Err(err).Msg("heartbeat already gone")
	}
	if err := p.nc.Drain(); err != nil {
		p.log.Warn().Err(err).Msg("nats drain failed")
	}
}

// Проверка реализации интерфейса
var _ port.EventPublisher = (*NATSPublisher)(nil)
