package events

import (
	"context"
	"sync"

	"bpa-inspection/internal/domain/entity"
	"bpa-inspection/internal/domain/port"
)

// Fanout раздаёт события нескольким получателям по порядку.
// Получателей можно добавлять после создания.
type Fanout struct {
	mu   sync.RWMutex
	subs []port.EventPublisher
}

// NewFanout собирает получателей, пропуская nil
func NewFanout(publishers ...port.EventPublisher) *Fanout {
	f := &Fanout{}
	for _, p := range publishers {
		f.Add(p)
	}
	return f
}

// Add добавляет получателя в конец списка
func (f *Fanout) Add(p port.EventPublisher) {
	if p == nil {
		return
	}
	f.mu.Lock()
	f.subs = append(f.subs, p)
	f.mu.Unlock()
}

func (f *Fanout) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}

func (f *Fanout) PublishCycle(ctx context.Context, report *entity.CycleReport) {
	for _, p := range f.snapshot() {
		p.PublishCycle(ctx, report)
	}
}

func (f *Fanout) PublishStatus(ctx context.Context, status entity.Status) {
	for _, p := range f.snapshot() {
		p.PublishStatus(ctx, status)
	}
}

func (f *Fanout) snapshot() []port.EventPublisher {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.subs
}

// Проверка реализации интерфейса
var _ port.EventPublisher = (*Fanout)(nil)
