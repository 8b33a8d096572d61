package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Значения по умолчанию
const (
	DefaultMQTTPort              = 1883
	DefaultMQTTConnectTimeout    = 5 * time.Second
	DefaultAASTimeout            = 5 * time.Second
	DefaultCameraTimeout         = 2 * time.Second
	DefaultConfidenceThreshold   = 0.6
	DefaultSupervisorInterval    = time.Second
	DefaultQueueSize             = 16
	DefaultCarsConfigPath        = "config/cars_config.json"
	DefaultTranslationConfigPath = "config/inspection_plan_response_config.json"
	DefaultLogLevel              = "info"
)

type Config struct {
	OPCUAURL        string
	OPCUAURLMockup  string
	OPCUANode       string
	OPCUANodeMockup string
	Simulation      bool

	MQTTHost           string
	MQTTPort           int
	MQTTClientID       string
	MQTTConnectTimeout time.Duration

	AASURL     string
	AASTimeout time.Duration

	CameraTimeout       time.Duration
	ConfidenceThreshold float64
	SupervisorInterval  time.Duration
	QueueSize           int

	CarsConfigPath        string
	TranslationConfigPath string

	NATSURL string

	TelegramToken   string
	TelegramChatIDs []int64

	LogLevel string
}

// Load читает .env файлы (отсутствующие игнорируются) и переменные окружения.
func Load(files ...string) (*Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	if len(files) == 0 {
		// Загружаем .env файл (игнорируем ошибку если файла нет)
		_ = godotenv.Load()
	}

	var p parser
	cfg := &Config{
		OPCUAURL:        os.Getenv("OPCUA_URL"),
		OPCUAURLMockup:  os.Getenv("OPCUA_URL_MOCKUP"),
		OPCUANode:       os.Getenv("OPCUA_NODE"),
		OPCUANodeMockup: os.Getenv("OPCUA_NODE_MOCKUP"),
		Simulation:      p.parseBool("SIMULATION", false),

		MQTTHost:           os.Getenv("MQTT_URL"),
		MQTTPort:           p.parseInt("MQTT_PORT", DefaultMQTTPort),
		MQTTClientID:       os.Getenv("MQTT_CLIENT_ID"),
		MQTTConnectTimeout: p.parseDuration("MQTT_CONNECT_TIMEOUT", DefaultMQTTConnectTimeout),

		AASURL:     os.Getenv("AAS_URL"),
		AASTimeout: p.parseDuration("AAS_TIMEOUT", DefaultAASTimeout),

		CameraTimeout:       p.parseDuration("CAMERA_TIMEOUT", DefaultCameraTimeout),
		ConfidenceThreshold: p.parseFloat("CONFIDENCE_THRESHOLD", DefaultConfidenceThreshold),
		SupervisorInterval:  p.parseDuration("SUPERVISOR_INTERVAL", DefaultSupervisorInterval),
		QueueSize:           p.parseInt("QUEUE_SIZE", DefaultQueueSize),

		CarsConfigPath:        stringOr("CARS_CONFIG_PATH", DefaultCarsConfigPath),
		TranslationConfigPath: stringOr("TRANSLATION_CONFIG_PATH", DefaultTranslationConfigPath),

		NATSURL: os.Getenv("NATS_URL"),

		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatIDs: p.parseIDs("TELEGRAM_CHAT_IDS"),

		LogLevel: stringOr("LOG_LEVEL", DefaultLogLevel),
	}

	if p.err != nil {
		return nil, p.err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет диапазоны значений
func (c *Config) Validate() error {
	var errs []error
	if c.MQTTPort <= 0 || c.MQTTPort > 65535 {
		errs = append(errs, fmt.Errorf("MQTT_PORT %d out of range", c.MQTTPort))
	}
	if c.ConfidenceThreshold <= 0 || c.ConfidenceThreshold > 1 {
		errs = append(errs, fmt.Errorf("CONFIDENCE_THRESHOLD %v not in (0,1]", c.ConfidenceThreshold))
	}
	if c.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("QUEUE_SIZE must be positive, got %d", c.QueueSize))
	}
	for name, d := range map[string]time.Duration{
		"MQTT_CONNECT_TIMEOUT": c.MQTTConnectTimeout,
		"AAS_TIMEOUT":          c.AASTimeout,
		"CAMERA_TIMEOUT":       c.CameraTimeout,
		"SUPERVISOR_INTERVAL":  c.SupervisorInterval,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}
	return errors.Join(errs...)
}

// OPCUAEndpoint возвращает адрес сервера для режима
func (c *Config) OPCUAEndpoint(simulation bool) string {
	if simulation {
		return c.OPCUAURLMockup
	}
	return c.OPCUAURL
}

// OPCUANodePath возвращает настроенный узел для режима, пустой если не задан
func (c *Config) OPCUANodePath(simulation bool) string {
	if simulation {
		return c.OPCUANodeMockup
	}
	return c.OPCUANode
}

// Allowed сообщает, разрешён ли чат. Пустой список разрешает всех.
func (c *Config) Allowed(chatID int64) bool {
	if len(c.TelegramChatIDs) == 0 {
		return true
	}
	for _, id := range c.TelegramChatIDs {
		if id == chatID {
			return true
		}
	}
	return false
}

func stringOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// parser запоминает первую ошибку разбора
type parser struct {
	err error
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
}

func (p *parser) parseBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return b
}

func (p *parser) parseInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) parseFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return f
}

func (p *parser) parseDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return d
}

func (p *parser) parseIDs(key string) []int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	var out []int64
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			p.fail(key, part, err)
			return nil
		}
		out = append(out, id)
	}
	return out
}
