//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"ticket-checkout/cmd/bootstrap"
	"ticket-checkout/cmd/bootstrap/components"
	"ticket-checkout/internal/infra/db"
	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/migrations"
	"ticket-checkout/tests/common/authtest"
	"ticket-checkout/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for wait.ForSQL
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgPort     = nat.Port("5432/tcp")
	redisPort  = nat.Port("6379/tcp")
)

// Containers are shared by every suite in the process. Each suite gets its
// own database and Redis logical DB, so suites can run in parallel.
var (
	containersOnce sync.Once
	containersErr  error
	pgContainer    testcontainers.Container
	redisContainer testcontainers.Container

	redisDBMu   sync.Mutex
	nextRedisDB = 1
)

type endpoint struct {
	Host string
	Port nat.Port
}

func (e endpoint) addr() string {
	return net.JoinHostPort(e.Host, e.Port.Port())
}

type environment struct {
	pool   *pgxpool.Pool
	router *gin.Engine
	cfg    config.Config
}

func setupEnvironment(t *testing.T) environment {
	gin.SetMode(gin.TestMode)
	startContainers(t)

	pg := mappedEndpoint(t, pgContainer, pgPort)
	rd := mappedEndpoint(t, redisContainer, redisPort)

	cfg := config.NewTestConfig()
	cfg.DB = createDatabase(t, pg)
	cfg.Redis = config.RedisConfig{Addr: rd.addr(), DB: allocateRedisDB()}

	pool := connectAndMigrate(t, cfg.DB)
	router := startApp(t, pool, cfg)

	slog.Info("e2e environment ready",
		"database", cfg.DB.DBName,
		"postgres", pg.addr(),
		"redis", rd.addr(),
		"redis_db", cfg.Redis.DB)

	return environment{pool: pool, router: router, cfg: cfg}
}

// ------------------------------------------------------------
// Containers
// ------------------------------------------------------------

func startContainers(t *testing.T) {
	containersOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		pgContainer, containersErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: postgresRequest(),
			Started:          true,
		})
		if containersErr != nil {
			return
		}
		redisContainer, containersErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "redis:7-alpine",
				ExposedPorts: []string{string(redisPort)},
				WaitingFor:   wait.ForListeningPort(redisPort).WithStartupTimeout(30 * time.Second),
				Labels:       map[string]string{"purpose": "e2e-tests"},
			},
			Started: true,
		})
	})
	require.NoError(t, containersErr, "failed to start test containers")
}

// Durability is switched off; the data lives only as long as the run.
func postgresRequest() testcontainers.ContainerRequest {
	return testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{string(pgPort)},
		Env: map[string]string{
			"POSTGRES_USER":     pgUser,
			"POSTGRES_PASSWORD": pgPassword,
			"POSTGRES_DB":       "postgres",
		},
		Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
		Cmd: []string{
			"postgres",
			"-c", "fsync=off",
			"-c", "synchronous_commit=off",
			"-c", "full_page_writes=off",
			"-c", "max_connections=300",
		},
		WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
			return adminDSN(endpoint{Host: host, Port: port})
		}).WithStartupTimeout(60 * time.Second),
		Labels: map[string]string{"purpose": "e2e-tests"},
	}
}

func mappedEndpoint(t *testing.T, c testcontainers.Container, port nat.Port) endpoint {
	ctx := context.Background()
	mapped, err := c.MappedPort(ctx, port)
	require.NoError(t, err, "failed to read mapped port %s", port)
	host, err := c.Host(ctx)
	require.NoError(t, err, "failed to read container host")
	return endpoint{Host: host, Port: mapped}
}

func allocateRedisDB() int {
	redisDBMu.Lock()
	defer redisDBMu.Unlock()
	// redis ships with 16 logical databases
	db := nextRedisDB % 16
	nextRedisDB++
	return db
}

// ------------------------------------------------------------
// Database
// ------------------------------------------------------------

func adminDSN(pg endpoint) string {
	return fmt.Sprintf("postgres://%s:%s@%s/postgres?sslmode=disable", pgUser, pgPassword, pg.addr())
}

func createDatabase(t *testing.T, pg endpoint) config.DBConfig {
	name := "checkout_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, adminDSN(pg))
	require.NoError(t, err, "admin connection failed")
	defer admin.Close()

	// CREATE DATABASE conflicts when several suites clone template1 at once
	var createErr error
	for attempt := range 5 {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}
		if _, createErr = admin.Exec(ctx, "CREATE DATABASE "+name); createErr == nil {
			break
		}
		slog.Warn("retrying database creation", "attempt", attempt+1, "error", createErr.Error())
	}
	require.NoError(t, createErr, "failed to create test database")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, adminDSN(pg))
		if err != nil {
			slog.Warn("cleanup connection failed", "database", name, "error", err.Error())
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", name, "error", err.Error())
		}
	})

	return config.DBConfig{
		Host:     pg.Host,
		Port:     pg.Port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "Asia/Jakarta",
		// the concurrency tests hold one connection per buyer
		MaxConns: 40,
		MinConns: 1,
	}
}

func connectAndMigrate(t *testing.T, cfg config.DBConfig) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, closePool, err := db.Connect(ctx, cfg)
	require.NoError(t, err, "database connection failed")
	t.Cleanup(closePool)

	require.NoError(t, migrations.Apply(ctx, pool), "database migration failed")
	require.NoError(t, dbtest.SeedReferenceData(pool), "failed to seed reference data")
	return pool
}

// ------------------------------------------------------------
// Application under test
// ------------------------------------------------------------

// startApp wires the production modules around the test pool and config.
// The outbox relay stays off so tests can inspect unpublished events.
func startApp(t *testing.T, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	var router *gin.Engine

	app := fx.New(
		fx.Provide(
			func() *pgxpool.Pool { return pool },
			func() config.Config { return cfg },
			func() *gin.Engine { return gin.New() },
		),
		bootstrap.LoggerModule,
		bootstrap.TelemetryModule,
		bootstrap.RedisModule,
		bootstrap.KafkaModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		components.WorkerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "failed to start application")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop application", "error", err.Error())
		}
	})

	require.NotNil(t, router, "application started without a router")
	return router
}

// ------------------------------------------------------------
// Shared suite
// ------------------------------------------------------------

type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
	Auth   *authtest.JWTHelper
}

func (s *SharedSuite) SetupSuite() {
	env := setupEnvironment(s.T())
	s.DB = env.pool
	s.Router = env.router
	s.Config = env.cfg
	s.Auth = authtest.NewJWTHelper(env.cfg.JWT)
}

// SetupSubTest truncates every table and reseeds, so each s.Run starts
// from the same catalog.
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset database state")
}
