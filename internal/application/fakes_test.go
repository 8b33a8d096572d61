package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"bpa-inspection/internal/domain/entity"
	"bpa-inspection/internal/domain/port"
)

// fakeSource источник тегов в памяти
type fakeSource struct {
	mu       sync.Mutex
	probeErr error
	openErr  error
	onChange port.ChangeFunc
	opens    int
	closes   int
}

func (f *fakeSource) Endpoint() string { return "opc.tcp://fake:4840" }

func (f *fakeSource) Probe(ctx context.Context, timeout time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.probeErr
}

func (f *fakeSource) Open(ctx context.Context, onChange port.ChangeFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.openErr != nil {
		return f.openErr
	}
	f.onChange = onChange
	f.opens++
	return nil
}

func (f *fakeSource) Close(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange = nil
	f.closes++
	return nil
}

func (f *fakeSource) setProbeErr(err error) {
	f.mu.Lock()
	f.probeErr = err
	f.mu.Unlock()
}

func (f *fakeSource) emit(raw string) {
	f.mu.Lock()
	fn := f.onChange
	f.mu.Unlock()
	if fn != nil {
		fn(raw)
	}
}

func (f *fakeSource) isOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.onChange != nil
}

// fakeBroker брокер в памяти. На запрос камеры отвечает reply, если он задан.
type fakeBroker struct {
	mu         sync.Mutex
	probeErr   error
	connectErr error
	connected  bool
	connects   int
	handlers   map[string]port.MessageFunc
	onLost     port.LostFunc
	published  []string
	reply      []byte
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{handlers: make(map[string]port.MessageFunc)}
}

func (f *fakeBroker) Address() string { return "tcp://fake:1883" }

func (f *fakeBroker) Probe(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.probeErr
}

func (f *fakeBroker) Connect(ctx context.Context, onLost port.LostFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = true
	f.connects++
	f.onLost = onLost
	return nil
}

func (f *fakeBroker) Subscribe(ctx context.Context, topic string, handler port.MessageFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[topic] = handler
	return nil
}

func (f *fakeBroker) Publish(ctx context.Context, topic string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.connected {
		return errors.New("not connected")
	}
	f.published = append(f.published, string(payload))

	if topic == RequestTopic && f.reply != nil {
		handler, reply := f.handlers[ResponseTopic], f.reply
		go func() {
			time.Sleep(10 * time.Millisecond)
			handler(reply)
		}()
	}
	return nil
}

func (f *fakeBroker) Disconnect() {
	f.mu.Lock()
	f.connected = false
	f.mu.Unlock()
}

func (f *fakeBroker) setReply(reply string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if reply == "" {
		f.reply = nil
		return
	}
	f.reply = []byte(reply)
}

// drop имитирует обрыв соединения со стороны брокера
func (f *fakeBroker) drop(err error) {
	f.mu.Lock()
	f.connected = false
	onLost := f.onLost
	f.mu.Unlock()
	if onLost != nil {
		onLost(err)
	}
}

func (f *fakeBroker) isConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeBroker) connectCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connects
}

// cycleRecorder собирает отчёты циклов
type cycleRecorder struct {
	cycles   chan *entity.CycleReport
	mu       sync.Mutex
	statuses []entity.Status
}

func newCycleRecorder() *cycleRecorder {
	return &cycleRecorder{cycles: make(chan *entity.CycleReport, 16)}
}

func (r *cycleRecorder) PublishCycle(ctx context.Context, report *entity.CycleReport) {
	r.cycles <- report
}

func (r *cycleRecorder) PublishStatus(ctx context.Context, status entity.Status) {
	r.mu.Lock()
	r.statuses = append(r.statuses, status)
	r.mu.Unlock()
}

func (r *cycleRecorder) statusCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.statuses)
}

// next ждёт следующий отчёт не дольше секунды
func (r *cycleRecorder) next() *entity.CycleReport {
	select {
	case report := <-r.cycles:
		return report
	case <-time.After(time.Second):
		return nil
	}
}
