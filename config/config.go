package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	Server    ServerConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Log       LogConfig
	Branch    BranchConfig
	Announcer AnnouncerConfig
	Display   DisplayConfig
	Relay     RelayConfig
}

type ServerConfig struct {
	HTTPPort        int
	GRpcPort        int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type RedisConfig struct {
	Enabled      bool
	Addr         string
	Password     string
	DB           int
	MaxRetries   int
	PoolSize     int
	MinIdleConns int
	BoardTTL     time.Duration
}

type KafkaConfig struct {
	Brokers              []string
	ProducerRetryMax     int
	ProducerRequiredAcks int
	Enabled              bool
	ConsumerEnabled      bool
	ConsumerGroupID      string
}

type LogConfig struct {
	Level    string
	Mode     string
	Encoding string
}

type BranchConfig struct {
	ID       string
	SeedFile string
}

type AnnouncerConfig struct {
	Locale        string
	Rate          float64
	FlashDuration time.Duration
	RecallWindow  time.Duration
	SpeechTimeout time.Duration
	// Command is an espeak-compatible binary. Empty logs utterances only.
	Command string
}

type DisplayConfig struct {
	WriteWait  time.Duration
	PongWait   time.Duration
	PingPeriod time.Duration
	SendBuffer int
}

type RelayConfig struct {
	Buffer          int
	RetryAttempts   int
	RetryDelay      time.Duration
	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{
		Env: getEnv("ENV", "development"),
		Server: ServerConfig{
			HTTPPort:        getEnvAsInt("SERVER_HTTP_PORT", 8080),
			GRpcPort:        getEnvAsInt("SERVER_GRPC_PORT", 50056),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			AllowedOrigins:  getEnvAsSlice("SERVER_ALLOWED_ORIGINS", []string{"*"}),
		},
		Redis: RedisConfig{
			Enabled:      getEnvAsBool("REDIS_ENABLED", false),
			Addr:         getEnv("REDIS_ADDR", "localhost:6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			MaxRetries:   getEnvAsInt("REDIS_MAX_RETRIES", 3),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
			BoardTTL:     getEnvAsDuration("REDIS_BOARD_TTL", 10*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:              getEnvAsSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			ProducerRetryMax:     getEnvAsInt("KAFKA_PRODUCER_RETRY_MAX", 3),
			ProducerRequiredAcks: getEnvAsInt("KAFKA_PRODUCER_REQUIRED_ACKS", 1),
			Enabled:              getEnvAsBool("KAFKA_ENABLED", false),
			ConsumerEnabled:      getEnvAsBool("KAFKA_CONSUMER_ENABLED", false),
			ConsumerGroupID:      getEnv("KAFKA_CONSUMER_GROUP_ID", "branchqueue"),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Mode:     getEnv("LOG_MODE", "development"),
			Encoding: getEnv("LOG_ENCODING", "console"),
		},
		Branch: BranchConfig{
			ID:       getEnv("BRANCH_ID", "main"),
			SeedFile: getEnv("BRANCH_SEED_FILE", ""),
		},
		Announcer: AnnouncerConfig{
			Locale:        getEnv("ANNOUNCE_LOCALE", "pt-BR"),
			Rate:          getEnvAsFloat("ANNOUNCE_RATE", 0.9),
			FlashDuration: getEnvAsDuration("ANNOUNCE_FLASH_DURATION", 3*time.Second),
			RecallWindow:  getEnvAsDuration("ANNOUNCE_RECALL_WINDOW", time.Second),
			SpeechTimeout: getEnvAsDuration("ANNOUNCE_SPEECH_TIMEOUT", 10*time.Second),
			Command:       getEnv("ANNOUNCE_COMMAND", ""),
		},
		Display: DisplayConfig{
			WriteWait:  getEnvAsDuration("DISPLAY_WRITE_WAIT", 10*time.Second),
			PongWait:   getEnvAsDuration("DISPLAY_PONG_WAIT", 60*time.Second),
			PingPeriod: getEnvAsDuration("DISPLAY_PING_PERIOD", 54*time.Second),
			SendBuffer: getEnvAsInt("DISPLAY_SEND_BUFFER", 64),
		},
		Relay: RelayConfig{
			Buffer:          getEnvAsInt("RELAY_BUFFER", 256),
			RetryAttempts:   getEnvAsInt("RELAY_RETRY_ATTEMPTS", 3),
			RetryDelay:      getEnvAsDuration("RELAY_RETRY_DELAY", 200*time.Millisecond),
			ShutdownTimeout: getEnvAsDuration("RELAY_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port: %d", c.Server.HTTPPort)
	}

	if c.Server.GRpcPort <= 0 || c.Server.GRpcPort > 65535 {
		return fmt.Errorf("invalid grpc port: %d", c.Server.GRpcPort)
	}

	if c.Server.HTTPPort == c.Server.GRpcPort {
		return fmt.Errorf("http and grpc ports must differ: %d", c.Server.HTTPPort)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required")
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required")
	}

	if c.Branch.ID == "" {
		return fmt.Errorf("branch id is required")
	}

	if c.Announcer.FlashDuration <= 0 || c.Announcer.RecallWindow <= 0 {
		return fmt.Errorf("announcer durations must be positive")
	}

	if c.Announcer.Rate <= 0 || c.Announcer.Rate > 10 {
		return fmt.Errorf("invalid announcer rate: %v", c.Announcer.Rate)
	}

	if c.Display.PingPeriod >= c.Display.PongWait {
		return fmt.Errorf("display ping period must be shorter than pong wait")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
