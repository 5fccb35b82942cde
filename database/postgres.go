package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"showcase/api/logger"
)

type DBClient struct {
	DB  *sql.DB
	log *logger.Logger
}

// NewPostgresDB opens and pings the relational database.
func NewPostgresDB(ctx context.Context, dbURL string, log *logger.Logger) (*DBClient, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("error opening database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database (ping failed): %w", err)
	}

	log.Info("connected to PostgreSQL")
	return &DBClient{DB: db, log: log}, nil
}

// Gorm wraps the existing pool for the CMS store so both share connections
// and migrations.
func (c *DBClient) Gorm() (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: c.DB}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening gorm on postgres pool: %w", err)
	}
	return gdb, nil
}

func (c *DBClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *DBClient) Close() {
	if c.DB == nil {
		return
	}
	if err := c.DB.Close(); err != nil {
		c.log.Error("error closing database connection", "error", err)
		return
	}
	c.log.Info("PostgreSQL connection closed")
}
