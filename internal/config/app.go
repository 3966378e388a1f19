package config

import "time"

// LoggerConfig controls the zap logger.
type LoggerConfig struct {
	Level       string
	Format      string // "json" or "console"
	ServiceName string
	LogFile     string
	MaxSize     int
	MaxBackups  int
	MaxAge      int
	Compress    bool
}

// DBConfig holds the postgres connection and pool settings.
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// RedisConfig holds the redis connection settings.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// FormDefaults seeds the form configuration when a client sends none.
type FormDefaults struct {
	IncludeZip     bool
	IncludeHelper  bool
	CardNumberHint string
}

// AppConfig is everything the server reads from the environment.
type AppConfig struct {
	Port         string
	AllowOrigins string

	AuthEnabled bool
	JWTSecret   string
	JWTIssuer   string

	AuditEnabled bool
	StatsTTL     time.Duration
	DB           DBConfig

	RedisEnabled bool
	Redis        RedisConfig

	RateLimitMax    int
	RateLimitWindow time.Duration

	SessionTTL   time.Duration
	MaxSessions  int
	FormDefaults FormDefaults

	Logger LoggerConfig
}

// Load reads AppConfig from the environment, applying defaults.
func Load() AppConfig {
	return AppConfig{
		Port:         GetEnv("PORT", "3000"),
		AllowOrigins: GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),

		AuthEnabled: GetBoolEnv("AUTH_ENABLED", false),
		JWTSecret:   GetEnv("JWT_SECRET", "ccentry"),
		JWTIssuer:   GetEnv("JWT_ISSUER", "ccentry-api"),

		AuditEnabled: GetBoolEnv("AUDIT_ENABLED", true),
		StatsTTL:     GetDurationEnv("STATS_CACHE_TTL", time.Minute),
		DB: DBConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "ccentry"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},

		RedisEnabled: GetBoolEnv("REDIS_ENABLED", true),
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
		},

		RateLimitMax:    GetIntEnv("RATE_LIMIT_MAX", 120),
		RateLimitWindow: GetDurationEnv("RATE_LIMIT_WINDOW", time.Minute),

		SessionTTL:  GetDurationEnv("SESSION_TTL", 15*time.Minute),
		MaxSessions: GetIntEnv("MAX_SESSIONS", 10000),
		FormDefaults: FormDefaults{
			IncludeZip:     GetBoolEnv("FORM_INCLUDE_ZIP", true),
			IncludeHelper:  GetBoolEnv("FORM_INCLUDE_HELPER", true),
			CardNumberHint: GetEnv("FORM_CARD_NUMBER_HINT", "1234 5678 9012 3456"),
		},

		Logger: LoggerConfig{
			Level:       GetEnv("LOG_LEVEL", "info"),
			Format:      GetEnv("LOG_FORMAT", defaultLogFormat()),
			ServiceName: GetEnv("SERVICE_NAME", "ccentry"),
			LogFile:     GetEnv("LOG_FILE", ""),
			MaxSize:     GetIntEnv("LOG_MAX_SIZE_MB", 100),
			MaxBackups:  GetIntEnv("LOG_MAX_BACKUPS", 3),
			MaxAge:      GetIntEnv("LOG_MAX_AGE_DAYS", 28),
			Compress:    GetBoolEnv("LOG_COMPRESS", true),
		},
	}
}

func defaultLogFormat() string {
	if IsProduction() {
		return "json"
	}
	return "console"
}
