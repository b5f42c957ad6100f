package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every service setting.
type Config struct {
	Server   ServerConfig
	Engine   EngineConfig
	Storage  StorageConfig
	Voice    VoiceConfig
	LogLevel string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	engine, err := loadEngineConfig()
	if err != nil {
		return nil, err
	}

	storage, err := loadStorageConfig()
	if err != nil {
		return nil, err
	}

	voice, err := loadVoiceConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:   server,
		Engine:   engine,
		Storage:  storage,
		Voice:    voice,
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// EngineConfig bounds the response engine's artificial thinking delay.
type EngineConfig struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

func loadEngineConfig() (EngineConfig, error) {
	minDelay, err := parseOptionalDurationEnv("ENGINE_MIN_DELAY")
	if err != nil {
		return EngineConfig{}, err
	}
	maxDelay, err := parseOptionalDurationEnv("ENGINE_MAX_DELAY")
	if err != nil {
		return EngineConfig{}, err
	}

	cfg := EngineConfig{MinDelay: 1 * time.Second, MaxDelay: 3 * time.Second}
	if minDelay != nil {
		cfg.MinDelay = *minDelay
	}
	if maxDelay != nil {
		cfg.MaxDelay = *maxDelay
	}
	if cfg.MinDelay < 0 || cfg.MaxDelay < cfg.MinDelay {
		return EngineConfig{}, fmt.Errorf("invalid engine delay range: min %s max %s", cfg.MinDelay, cfg.MaxDelay)
	}
	return cfg, nil
}

// StorageConfig describes the persistence backend. An empty RedisAddr
// selects the in-memory backend.
type StorageConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Prefix        string
}

func loadStorageConfig() (StorageConfig, error) {
	db := 0
	if override, err := parseOptionalIntEnv("REDIS_DB"); err != nil {
		return StorageConfig{}, err
	} else if override != nil {
		db = *override
	}

	return StorageConfig{
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       db,
		Prefix:        strings.TrimSpace(os.Getenv("STORAGE_PREFIX")),
	}, nil
}

// VoiceConfig bounds the speech adapter's platform operations. Zero means
// unbounded.
type VoiceConfig struct {
	ListenTimeout time.Duration
	SpeakTimeout  time.Duration
}

func loadVoiceConfig() (VoiceConfig, error) {
	listen, err := parseOptionalDurationEnv("VOICE_LISTEN_TIMEOUT")
	if err != nil {
		return VoiceConfig{}, err
	}
	speak, err := parseOptionalDurationEnv("VOICE_SPEAK_TIMEOUT")
	if err != nil {
		return VoiceConfig{}, err
	}

	cfg := VoiceConfig{}
	if listen != nil {
		cfg.ListenTimeout = *listen
	}
	if speak != nil {
		cfg.SpeakTimeout = *speak
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalDurationEnv(key string) (*time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := time.ParseDuration(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
