package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// NASA NeoWs catalog configuration.
	NASAAPIKey   string
	NeoTimeout   time.Duration
	NeoCacheSize int

	// Threat feed pipeline configuration.
	FeedEnabled      bool
	FeedPollInterval time.Duration
	KafkaBrokers     []string
	KafkaSinkTopic   string

	// Nominal impact point used when assessing feed objects. The real
	// corridor is unknown, so assessments assume this reference site.
	AssessmentLat float64
	AssessmentLon float64
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	neoTimeout, err := parseDuration("NEO_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	pollInterval, err := parseDuration("FEED_POLL_INTERVAL", "1h")
	if err != nil {
		return nil, err
	}

	lat, err := parseFloat("ASSESSMENT_LAT", 40.7128)
	if err != nil {
		return nil, err
	}
	lon, err := parseFloat("ASSESSMENT_LON", -74.0060)
	if err != nil {
		return nil, err
	}

	feedEnabled := false
	if v := os.Getenv("FEED_ENABLED"); v != "" {
		feedEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		NASAAPIKey:   envOrDefault("NASA_API_KEY", "DEMO_KEY"),
		NeoTimeout:   neoTimeout,
		NeoCacheSize: parseNeoCacheSize(),

		FeedEnabled:      feedEnabled,
		FeedPollInterval: pollInterval,
		KafkaBrokers:     parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic:   envOrDefault("KAFKA_SINK_TOPIC", "asteroid-threat-assessments"),

		AssessmentLat: lat,
		AssessmentLon: lon,
	}

	if cfg.FeedEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("FEED_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.FeedEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("FEED_ENABLED is true but KAFKA_SINK_TOPIC is empty")
	}
	if cfg.AssessmentLat < -90 || cfg.AssessmentLat > 90 {
		return nil, errors.New("ASSESSMENT_LAT must be within [-90, 90]")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return f, nil
}

func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if b := strings.TrimSpace(p); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseNeoCacheSize() int {
	if s := os.Getenv("NEO_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
