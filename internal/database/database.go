package database

import (
	"context"
	"fmt"
	"time"

	"quiz-tutor/internal/logger"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // registers the "oracle" driver
	"go.uber.org/zap"
)

const (
	DriverMySQL  = "mysql"
	DriverOracle = "oracle"
)

func init() {
	// go-ora only understands :name placeholders.
	sqlx.BindDriver(DriverOracle, sqlx.NAMED)
}

// NewSQLXDB opens and pings a pooled connection for the given driver.
// The caller owns the returned handle and must Close it.
func NewSQLXDB(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverMySQL:
		if _, err := mysql.ParseDSN(dsn); err != nil {
			return nil, fmt.Errorf("invalid MySQL DSN: %w", err)
		}
	case DriverOracle:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	logger.Get().Info("Connected to database", zap.String("driver", driver))
	return db, nil
}
