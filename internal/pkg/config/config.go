package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, secrets)
// - default: Values common across all environments (timeouts, pool sizes, feature toggles)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Checkout  CheckoutConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Outbox    OutboxConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Jakarta"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"2"`
}

type CheckoutConfig struct {
	TxTimeout          time.Duration `envconfig:"CHECKOUT_TX_TIMEOUT" default:"5s"`
	TxMaxRetries       int           `envconfig:"CHECKOUT_TX_MAX_RETRIES" default:"2"`
	MaxItems           int           `envconfig:"CHECKOUT_MAX_ITEMS" default:"20"`
	VoucherOncePerUser bool          `envconfig:"CHECKOUT_VOUCHER_ONCE_PER_USER" default:"false"`
	IdempotencyKeyTTL  time.Duration `envconfig:"CHECKOUT_IDEMPOTENCY_TTL" default:"24h"`
	IdempotencyLockTTL time.Duration `envconfig:"CHECKOUT_IDEMPOTENCY_LOCK_TTL" default:"10s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location,X-Request-ID,X-Idempotency-Hit"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Jakarta"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"25200"` // 7*60*60
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Issuer   string        `envconfig:"JWT_ISSUER" default:""`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:""`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Enabled reports whether an idempotency store should be wired
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type KafkaConfig struct {
	Brokers      []string      `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic        string        `envconfig:"KAFKA_TOPIC" default:"checkout.orders"`
	WriteTimeout time.Duration `envconfig:"KAFKA_WRITE_TIMEOUT" default:"10s"`
}

type OutboxConfig struct {
	RelayEnabled bool          `envconfig:"OUTBOX_RELAY_ENABLED" default:"false"`
	PollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"2s"`
	BatchSize    int32         `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`
}

type TelemetryConfig struct {
	ServiceName  string  `envconfig:"OTEL_SERVICE_NAME" default:"ticket-checkout"`
	OTLPEndpoint string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:""`
	Insecure     bool    `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	SampleRatio  float64 `envconfig:"OTEL_TRACES_SAMPLER_RATIO" default:"1.0"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Jakarta",
			MaxConns: 20,
			MinConns: 1,
		},
		Checkout: CheckoutConfig{
			TxTimeout:          5 * time.Second,
			TxMaxRetries:       2,
			MaxItems:           20,
			IdempotencyKeyTTL:  time.Hour,
			IdempotencyLockTTL: 10 * time.Second,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Jakarta",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 25200,
		},
		JWT: JWTConfig{
			Secret:   "test-secret-key-for-checkout",
			Duration: time.Hour,
		},
		Kafka: KafkaConfig{
			Brokers:      []string{"localhost:9092"},
			Topic:        "checkout.orders.test",
			WriteTimeout: time.Second,
		},
		Outbox: OutboxConfig{
			PollInterval: time.Second,
			BatchSize:    10,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "ticket-checkout-test",
			SampleRatio: 1.0,
		},
	}
}
