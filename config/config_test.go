package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var keys = []string{
	"OPCUA_URL", "OPCUA_URL_MOCKUP", "OPCUA_NODE", "OPCUA_NODE_MOCKUP", "SIMULATION",
	"MQTT_URL", "MQTT_PORT", "MQTT_CLIENT_ID", "MQTT_CONNECT_TIMEOUT",
	"AAS_URL", "AAS_TIMEOUT", "CAMERA_TIMEOUT", "CONFIDENCE_THRESHOLD",
	"SUPERVISOR_INTERVAL", "QUEUE_SIZE", "CARS_CONFIG_PATH", "TRANSLATION_CONFIG_PATH",
	"NATS_URL", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_IDS", "LOG_LEVEL",
}

// clearEnv очищает переменные на время теста
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	require.False(t, cfg.Simulation)
	require.Equal(t, DefaultMQTTPort, cfg.MQTTPort)
	require.Equal(t, DefaultMQTTConnectTimeout, cfg.MQTTConnectTimeout)
	require.Equal(t, DefaultCameraTimeout, cfg.CameraTimeout)
	require.Equal(t, DefaultConfidenceThreshold, cfg.ConfidenceThreshold)
	require.Equal(t, DefaultSupervisorInterval, cfg.SupervisorInterval)
	require.Equal(t, DefaultQueueSize, cfg.QueueSize)
	require.Equal(t, DefaultCarsConfigPath, cfg.CarsConfigPath)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
	require.Empty(t, cfg.TelegramChatIDs)
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	content := `OPCUA_URL=opc.tcp://plc:4840
OPCUA_URL_MOCKUP=opc.tcp://localhost:4840
SIMULATION=true
MQTT_URL=broker.local
MQTT_PORT=1884
AAS_URL=http://registry:8082/shell-descriptors
CAMERA_TIMEOUT=3s
CONFIDENCE_THRESHOLD=0.75
TELEGRAM_CHAT_IDS=10, 20
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.True(t, cfg.Simulation)
	require.Equal(t, "opc.tcp://localhost:4840", cfg.OPCUAEndpoint(cfg.Simulation))
	require.Equal(t, "broker.local", cfg.MQTTHost)
	require.Equal(t, 1884, cfg.MQTTPort)
	require.Equal(t, "http://registry:8082/shell-descriptors", cfg.AASURL)
	require.Equal(t, 3*time.Second, cfg.CameraTimeout)
	require.Equal(t, 0.75, cfg.ConfidenceThreshold)
	require.Equal(t, []int64{10, 20}, cfg.TelegramChatIDs)
	require.True(t, cfg.Allowed(20))
	require.False(t, cfg.Allowed(30))
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MQTT_PORT", "2883")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("MQTT_PORT=1884\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2883, cfg.MQTTPort)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"MQTT_PORT", "abc"},
		{"CAMERA_TIMEOUT", "2"},
		{"CONFIDENCE_THRESHOLD", "1.5"},
		{"CONFIDENCE_THRESHOLD", "0"},
		{"SIMULATION", "maybe"},
		{"TELEGRAM_CHAT_IDS", "1,x"},
		{"QUEUE_SIZE", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestLoad_ThresholdUpperBound(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIDENCE_THRESHOLD", "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, 1.0, cfg.ConfidenceThreshold)
}

func TestConfig_ModeSelection(t *testing.T) {
	cfg := &Config{
		OPCUAURL:        "opc.tcp://plc:4840",
		OPCUAURLMockup:  "opc.tcp://sim:4840",
		OPCUANode:       "ns=3;s=Data",
		OPCUANodeMockup: "",
	}
	require.Equal(t, "opc.tcp://plc:4840", cfg.OPCUAEndpoint(false))
	require.Equal(t, "ns=3;s=Data", cfg.OPCUANodePath(false))

	require.Equal(t, "opc.tcp://sim:4840", cfg.OPCUAEndpoint(true))
	require.Empty(t, cfg.OPCUANodePath(true))
	require.True(t, cfg.Allowed(42))
}
