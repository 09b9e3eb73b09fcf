package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pitwall/fantasy-gp/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                       string
	ServiceName                  string
	ServiceVersion               string
	HTTPAddr                     string
	DBURL                        string
	CORSAllowedOrigins           []string
	ReadTimeout                  time.Duration
	WriteTimeout                 time.Duration
	PprofEnabled                 bool
	PprofAddr                    string
	PaddockBaseURL               string
	PaddockIntrospectPath        string
	PaddockTimeout               time.Duration
	PaddockCacheTTL              time.Duration
	PaddockCircuitEnabled        bool
	PaddockCircuitFailureCount   int
	PaddockCircuitOpenTimeout    time.Duration
	PaddockCircuitHalfOpenMaxReq int
	UptraceEnabled               bool
	UptraceDSN                   string
	UptraceLogsEnabled           bool
	PyroscopeEnabled             bool
	PyroscopeServerAddress       string
	PyroscopeAppName             string
	PyroscopeAuthToken           string
	PyroscopeBasicAuthUser       string
	PyroscopeBasicAuthPassword   string
	PyroscopeUploadRate          time.Duration
	InternalJobToken             string
	QStashEnabled                bool
	QStashBaseURL                string
	QStashToken                  string
	QStashTargetBaseURL          string
	QStashRetries                int
	QStashTimeout                time.Duration
	QStashCircuitEnabled         bool
	QStashCircuitFailureCount    int
	QStashCircuitOpenTimeout     time.Duration
	QStashCircuitHalfOpenMaxReq  int
	RecomputeWorkers             int
	LogLevel                     logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	paddockTimeout, err := time.ParseDuration(getEnv("PADDOCK_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PADDOCK_TIMEOUT: %w", err)
	}
	if paddockTimeout <= 0 {
		return Config{}, fmt.Errorf("PADDOCK_TIMEOUT must be > 0")
	}
	paddockCacheTTL, err := time.ParseDuration(getEnv("PADDOCK_CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PADDOCK_CACHE_TTL: %w", err)
	}
	if paddockCacheTTL <= 0 {
		return Config{}, fmt.Errorf("PADDOCK_CACHE_TTL must be > 0")
	}
	paddockCircuitEnabled, err := strconv.ParseBool(getEnv("PADDOCK_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PADDOCK_CIRCUIT_ENABLED: %w", err)
	}
	paddockCircuitFailureCount, err := getEnvAsInt("PADDOCK_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse PADDOCK_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if paddockCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("PADDOCK_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	paddockCircuitOpenTimeout, err := time.ParseDuration(getEnv("PADDOCK_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PADDOCK_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if paddockCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("PADDOCK_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	paddockCircuitHalfOpenMaxReq, err := getEnvAsInt("PADDOCK_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse PADDOCK_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if paddockCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("PADDOCK_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	qstashEnabled, err := strconv.ParseBool(getEnv("QSTASH_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_ENABLED: %w", err)
	}
	qstashRetries, err := getEnvAsInt("QSTASH_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_RETRIES: %w", err)
	}
	if qstashRetries < 0 {
		return Config{}, fmt.Errorf("QSTASH_RETRIES must be >= 0")
	}
	qstashTimeout, err := time.ParseDuration(getEnv("QSTASH_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_TIMEOUT: %w", err)
	}
	if qstashTimeout <= 0 {
		return Config{}, fmt.Errorf("QSTASH_TIMEOUT must be > 0")
	}
	qstashCircuitEnabled, err := strconv.ParseBool(getEnv("QSTASH_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_CIRCUIT_ENABLED: %w", err)
	}
	qstashCircuitFailureCount, err := getEnvAsInt("QSTASH_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if qstashCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("QSTASH_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	qstashCircuitOpenTimeout, err := time.ParseDuration(getEnv("QSTASH_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if qstashCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("QSTASH_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	qstashCircuitHalfOpenMaxReq, err := getEnvAsInt("QSTASH_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if qstashCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("QSTASH_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	qstashBaseURL := strings.TrimSpace(getEnv("QSTASH_BASE_URL", "https://qstash.upstash.io"))
	qstashToken := strings.TrimSpace(getEnv("QSTASH_TOKEN", ""))
	qstashTargetBaseURL := strings.TrimSpace(getEnv("QSTASH_TARGET_BASE_URL", ""))
	internalJobToken := strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", ""))
	if qstashEnabled {
		if qstashToken == "" {
			return Config{}, fmt.Errorf("QSTASH_TOKEN is required when QSTASH_ENABLED=true")
		}
		if qstashTargetBaseURL == "" {
			return Config{}, fmt.Errorf("QSTASH_TARGET_BASE_URL is required when QSTASH_ENABLED=true")
		}
		if internalJobToken == "" {
			return Config{}, fmt.Errorf("INTERNAL_JOB_TOKEN is required when QSTASH_ENABLED=true")
		}
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	recomputeWorkers, err := getEnvAsInt("RECOMPUTE_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECOMPUTE_WORKERS: %w", err)
	}
	if recomputeWorkers < 1 {
		return Config{}, fmt.Errorf("RECOMPUTE_WORKERS must be >= 1")
	}

	cfg := Config{
		AppEnv:                       appEnv,
		ServiceName:                  getEnv("APP_SERVICE_NAME", "fantasy-gp-api"),
		ServiceVersion:               getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                     getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                        strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins:           splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                  readTimeout,
		WriteTimeout:                 writeTimeout,
		PprofEnabled:                 pprofEnabled,
		PprofAddr:                    pprofAddr,
		PaddockBaseURL:               getEnv("PADDOCK_BASE_URL", "http://localhost:8081"),
		PaddockIntrospectPath:        getEnv("PADDOCK_INTROSPECT_PATH", "/v1/auth/introspect"),
		PaddockTimeout:               paddockTimeout,
		PaddockCacheTTL:              paddockCacheTTL,
		PaddockCircuitEnabled:        paddockCircuitEnabled,
		PaddockCircuitFailureCount:   paddockCircuitFailureCount,
		PaddockCircuitOpenTimeout:    paddockCircuitOpenTimeout,
		PaddockCircuitHalfOpenMaxReq: paddockCircuitHalfOpenMaxReq,
		UptraceEnabled:               uptraceEnabled,
		UptraceDSN:                   uptraceDSN,
		UptraceLogsEnabled:           uptraceLogsEnabled,
		PyroscopeEnabled:             pyroscopeEnabled,
		PyroscopeServerAddress:       pyroscopeServerAddress,
		PyroscopeAuthToken:           strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:       strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:   strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:          pyroscopeUploadRate,
		InternalJobToken:             internalJobToken,
		QStashEnabled:                qstashEnabled,
		QStashBaseURL:                qstashBaseURL,
		QStashToken:                  qstashToken,
		QStashTargetBaseURL:          qstashTargetBaseURL,
		QStashRetries:                qstashRetries,
		QStashTimeout:                qstashTimeout,
		QStashCircuitEnabled:         qstashCircuitEnabled,
		QStashCircuitFailureCount:    qstashCircuitFailureCount,
		QStashCircuitOpenTimeout:     qstashCircuitOpenTimeout,
		QStashCircuitHalfOpenMaxReq:  qstashCircuitHalfOpenMaxReq,
		RecomputeWorkers:             recomputeWorkers,
		LogLevel:                     parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
