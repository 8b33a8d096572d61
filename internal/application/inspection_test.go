package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"bpa-inspection/internal/domain/entity"
	"bpa-inspection/internal/domain/port/mocks"
	"bpa-inspection/internal/infrastructure/aas"
	"bpa-inspection/internal/infrastructure/aas/aastest"
	"bpa-inspection/internal/infrastructure/storage"
)

type inspectionFixture struct {
	svc    *InspectionService
	source *fakeSource
	broker *fakeBroker
	events *cycleRecorder
}

func newInspectionFixture(t *testing.T, registry *mocks.MockRegistry, translation map[string]string) *inspectionFixture {
	t.Helper()
	f := &inspectionFixture{
		source: &fakeSource{},
		broker: newFakeBroker(),
		events: newCycleRecorder(),
	}
	cfg := InspectionConfig{
		CameraTimeout:      200 * time.Millisecond,
		SupervisorInterval: 20 * time.Millisecond,
		GraceDelay:         30 * time.Millisecond,
	}
	if registry == nil {
		registry = mocks.NewMockRegistry(gomock.NewController(t))
	}
	sub := NewSubscriber(f.source, registry, testCars(), f.events, SubscriberConfig{}, zerolog.Nop())
	bridge := NewBridge(f.broker, zerolog.Nop())
	f.svc = NewInspectionService(sub, bridge, storage.NewTranslationTable(translation), f.events, cfg, zerolog.Nop())
	t.Cleanup(func() { f.svc.Stop(context.Background()) })
	return f
}

func responseJSON(t *testing.T, plan *entity.ResponsePlan) string {
	t.Helper()
	data, err := json.Marshal(plan)
	require.NoError(t, err)
	return string(data)
}

func TestInspectionService_GetInspectionResponse(t *testing.T) {
	f := newInspectionFixture(t, nil, map[string]string{"Door": "DoorCam"})
	f.broker.setReply(`{"classes": {"3": "DoorCam"}, "detections": [[0.95, true, 3]]}`)

	plan, err := entity.DecodeInspectionPlan([]byte(`{"Inspection_Plan": {"Door": {"in_place": [true, null]}, "Hood": {"free_of_damage": [false]}}}`))
	require.NoError(t, err)

	got := f.svc.GetInspectionResponse(context.Background(), plan)
	require.JSONEq(t, `{"Response_Plan": {"Door": {"in_place": true}, "Hood": {"free_of_damage": false}}}`, responseJSON(t, got))
	require.Equal(t, []string{CameraTrigger}, f.broker.published)
}

func TestInspectionService_GetInspectionResponseWithoutCamera(t *testing.T) {
	f := newInspectionFixture(t, nil, map[string]string{"Door": "DoorCam"})

	plan, err := entity.DecodeInspectionPlan([]byte(`{"Inspection_Plan": {"Door": {"in_place": [true, null], "free_of_damage": [true]}}}`))
	require.NoError(t, err)

	got := f.svc.GetInspectionResponse(context.Background(), plan)
	require.JSONEq(t, `{"Response_Plan": {"Door": {"in_place": null, "free_of_damage": false}}}`, responseJSON(t, got))
}

func TestInspectionService_TestConnection(t *testing.T) {
	f := newInspectionFixture(t, nil, nil)
	ctx := context.Background()

	require.True(t, f.svc.TestConnection(ctx))
	require.True(t, f.svc.Status().LastTestOK)

	f.broker.mu.Lock()
	f.broker.probeErr = errors.New("refused")
	f.broker.mu.Unlock()

	require.False(t, f.svc.TestConnection(ctx))
	require.False(t, f.svc.Status().LastTestOK)
}

func TestInspectionService_ConnectRollsBackBridge(t *testing.T) {
	f := newInspectionFixture(t, nil, nil)
	f.source.setProbeErr(errors.New("refused"))

	err := f.svc.Connect(context.Background())
	require.True(t, errors.Is(err, entity.ErrConnection))
	require.False(t, f.broker.isConnected())
	require.False(t, f.svc.IsConnected())
}

func TestInspectionService_StartStop(t *testing.T) {
	f := newInspectionFixture(t, nil, nil)
	ctx := context.Background()

	require.Equal(t, entity.StatusActive, f.svc.Start(ctx))
	require.Equal(t, entity.StateActive, f.svc.Status().State)
	require.True(t, f.svc.IsConnected())
	require.Equal(t, entity.StatusAlreadyActive, f.svc.Start(ctx))

	require.Equal(t, entity.StatusInactive, f.svc.Stop(ctx))
	status := f.svc.Status()
	require.Equal(t, entity.StateInactive, status.State)
	require.Equal(t, entity.Disconnected, status.Source)
	require.Equal(t, entity.Disconnected, status.Bridge)
	require.False(t, f.broker.isConnected())
	require.False(t, f.source.isOpen())

	require.Equal(t, entity.StatusInactive, f.svc.Stop(ctx))
}

func TestInspectionService_StartFails(t *testing.T) {
	f := newInspectionFixture(t, nil, nil)
	f.broker.mu.Lock()
	f.broker.probeErr = errors.New("refused")
	f.broker.mu.Unlock()

	require.Equal(t, entity.StatusFailed, f.svc.Start(context.Background()))
	require.Equal(t, entity.StateInactive, f.svc.Status().State)
	require.False(t, f.source.isOpen())
}

func TestInspectionService_SupervisorStopsOnLostSource(t *testing.T) {
	f := newInspectionFixture(t, nil, nil)
	ctx := context.Background()

	require.Equal(t, entity.StatusActive, f.svc.Start(ctx))
	require.Eventually(t, func() bool { return f.events.statusCount() > 0 }, time.Second, 10*time.Millisecond)

	f.source.setProbeErr(errors.New("network unreachable"))

	require.Eventually(t, func() bool {
		return f.svc.Status().State == entity.StateInactive
	}, time.Second, 10*time.Millisecond)

	status := f.svc.Status()
	require.False(t, status.LastTestOK)
	require.False(t, status.Connected)
	require.False(t, f.broker.isConnected())
	require.False(t, f.source.isOpen())

	// После потери связи обработчик можно запустить снова
	f.source.setProbeErr(nil)
	require.Equal(t, entity.StatusActive, f.svc.Start(ctx))
}

func TestInspectionService_EndToEnd(t *testing.T) {
	reg := aastest.New(aastest.Shell{
		IDShort: "CAR42",
		Plan:    `{"Inspection_Plan": {"Bumper": {"in_place": [true, null]}}}`,
	})
	defer reg.Close()

	source := &fakeSource{}
	broker := newFakeBroker()
	broker.setReply(`{"classes": {"0": "BumperCam"}, "detections": [[0.9, true, 0]]}`)
	events := newCycleRecorder()

	registry := aas.NewClient(reg.URL(), time.Second, nil, zerolog.Nop())
	cars := storage.NewMemoryCarRepository(entity.Car{Name: "Golf", RFID: "ANT001-CAR42", AutoID: "CAR42"})
	translation := storage.NewTranslationTable(map[string]string{"Bumper": "BumperCam"})

	sub := NewSubscriber(source, registry, cars, events, SubscriberConfig{}, zerolog.Nop())
	svc := NewInspectionService(sub, NewBridge(broker, zerolog.Nop()), translation, events, InspectionConfig{
		Threshold:          0.6,
		SupervisorInterval: 50 * time.Millisecond,
		GraceDelay:         20 * time.Millisecond,
	}, zerolog.Nop())
	ctx := context.Background()

	require.Equal(t, entity.StatusActive, svc.Start(ctx))
	defer svc.Stop(ctx)

	source.emit("ANT001-CAR42")

	report := events.next()
	require.NotNil(t, report)
	require.Equal(t, entity.OutcomeCompleted, report.Outcome)
	require.Equal(t, "CAR42", svc.Status().LatestAutoID)

	uploads := reg.Uploads()
	require.Len(t, uploads, 1)
	require.Equal(t, "CAR42", uploads[0].IDShort)
	require.JSONEq(t, `{"Response_Plan": {"Bumper": {"in_place": true}}}`, string(uploads[0].Body))
}
