package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr     string
	LogLevel string

	DatabaseURL string
	Redis       RedisConfig
	Audit       AuditConfig
	Resolution  ResolutionConfig

	// CapabilitiesFile optionally overrides the built-in source capabilities.
	CapabilitiesFile string
}

// RedisConfig configures the support desk's Redis connection.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AuditConfig configures where access-audit events go. No brokers means events are dropped.
type AuditConfig struct {
	Brokers    []string
	Topic      string
	BufferSize int
	SampleRate float64
}

// ResolutionConfig bounds the work a single resolution call may do.
type ResolutionConfig struct {
	Timeout          time.Duration
	ScanWindow       int
	MaxAmbiguous     int
	DefaultAmbiguous int
}

// FromEnv builds a Server config from environment variables so main stays lean.
// Malformed numeric or duration values are reported rather than silently defaulted.
func FromEnv() (Server, error) {
	p := &parser{}
	cfg := Server{
		Addr:             getEnv("CUSTID_ADDR", ":8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		CapabilitiesFile: os.Getenv("SOURCE_CAPABILITIES_FILE"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     p.int("REDIS_POOL_SIZE", 10),
			MinIdleConns: p.int("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  p.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  p.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: p.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Audit: AuditConfig{
			Brokers:    splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:      getEnv("AUDIT_TOPIC", "identity.audit"),
			BufferSize: p.int("AUDIT_BUFFER_SIZE", 1024),
			SampleRate: p.float("AUDIT_SAMPLE_RATE", 1),
		},
		Resolution: ResolutionConfig{
			Timeout:          p.duration("RESOLVE_TIMEOUT", 5*time.Second),
			ScanWindow:       p.int("AMBIGUITY_SCAN_WINDOW", 500),
			MaxAmbiguous:     p.int("AMBIGUITY_MAX_RESULTS", 100),
			DefaultAmbiguous: 50,
		},
	}
	if p.err != nil {
		return Server{}, p.err
	}
	if cfg.Resolution.ScanWindow <= 0 {
		return Server{}, fmt.Errorf("AMBIGUITY_SCAN_WINDOW must be positive")
	}
	if cfg.Resolution.MaxAmbiguous <= 0 {
		return Server{}, fmt.Errorf("AMBIGUITY_MAX_RESULTS must be positive")
	}
	cfg.Resolution.DefaultAmbiguous = min(cfg.Resolution.DefaultAmbiguous, cfg.Resolution.MaxAmbiguous)
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parser records the first malformed variable.
type parser struct {
	err error
}

func (p *parser) int(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return v
}

func (p *parser) float(key string, fallback float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return v
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return v
}
