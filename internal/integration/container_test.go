package integration_test

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	pgxstd "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const migrationsPath = "file://../../migrations"

type PostgresContainer struct {
	Container        *postgres.PostgresContainer
	ConnectionString string
}

type RedisContainer struct {
	Container        *tcredis.RedisContainer
	ConnectionString string
}

func getDbContainer(ctx context.Context) (*PostgresContainer, error) {
	container, err := postgres.Run(ctx, dbImageName,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
					return dsn(host, port.Port())
				}),
			).WithDeadline(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("postgres connection string: %w", err)
	}

	err = runMigrations(connStr, migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresContainer{
		Container:        container,
		ConnectionString: connStr,
	}, nil
}

func dsn(host, port string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPassword, host, port, dbName)
}

func runMigrations(dsn string, path string) error {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("parse dsn: %w", err)
	}

	db := pgxstd.OpenDB(*config)
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(path, "pgx", driver)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migrate up: %w", err)
	}

	return nil
}

func getCacheContainer(ctx context.Context) (*RedisContainer, error) {
	container, err := tcredis.Run(ctx, cacheImageName)
	if err != nil {
		return nil, fmt.Errorf("start redis container: %w", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("redis endpoint: %w", err)
	}

	return &RedisContainer{
		Container:        container,
		ConnectionString: endpoint,
	}, nil
}
