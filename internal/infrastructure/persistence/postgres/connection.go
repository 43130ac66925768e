// Package postgres provides PostgreSQL database connection and management
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// ConnectionConfig holds connection settings
type ConnectionConfig struct {
	DSN string

	// Connection Pool Settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// Read Replica Settings
	ReadReplicaDSNs   []string
	LoadBalancePolicy string
}

// DefaultConnectionConfig returns default pool settings
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:      25,
		MaxIdleConns:      5,
		ConnMaxLifetime:   30 * time.Minute,
		ConnMaxIdleTime:   5 * time.Minute,
		LoadBalancePolicy: "round_robin",
	}
}

// ConnectionManager manages the PostgreSQL connection pool and read replicas
type ConnectionManager struct {
	logger  *zap.Logger
	db      *gorm.DB
	writeDB *sql.DB
}

// NewConnectionManager opens the primary connection and registers replicas
func NewConnectionManager(ctx context.Context, cfg ConnectionConfig, gormLogger logger.Interface, log *zap.Logger) (*ConnectionManager, error) {
	defaults := DefaultConnectionConfig()
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = defaults.MaxOpenConns
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = defaults.MaxIdleConns
	}
	if cfg.ConnMaxLifetime <= 0 {
		cfg.ConnMaxLifetime = defaults.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime <= 0 {
		cfg.ConnMaxIdleTime = defaults.ConnMaxIdleTime
	}

	cm := &ConnectionManager{logger: log.Named("postgres")}

	if err := cm.initializePrimaryConnection(ctx, cfg, gormLogger); err != nil {
		return nil, fmt.Errorf("failed to initialize primary connection: %w", err)
	}

	if err := cm.initializeReadReplicas(cfg); err != nil {
		cm.logger.Warn("Failed to initialize read replicas", zap.Error(err))
	}

	cm.logger.Info("Database connection manager initialized",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
		zap.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		zap.Int("read_replicas", len(cfg.ReadReplicaDSNs)),
	)

	return cm, nil
}

// initializePrimaryConnection sets up the primary database connection
func (cm *ConnectionManager) initializePrimaryConnection(ctx context.Context, cfg ConnectionConfig, gormLogger logger.Interface) error {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	cm.db = db
	cm.writeDB = sqlDB
	return nil
}

// initializeReadReplicas routes reads to replicas through dbresolver
func (cm *ConnectionManager) initializeReadReplicas(cfg ConnectionConfig) error {
	if len(cfg.ReadReplicaDSNs) == 0 {
		return nil
	}

	replicas := make([]gorm.Dialector, len(cfg.ReadReplicaDSNs))
	for i, dsn := range cfg.ReadReplicaDSNs {
		replicas[i] = postgres.Open(dsn)
	}

	err := cm.db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   getLoadBalancePolicy(cfg.LoadBalancePolicy),
	}).
		SetMaxOpenConns(cfg.MaxOpenConns).
		SetMaxIdleConns(cfg.MaxIdleConns).
		SetConnMaxLifetime(cfg.ConnMaxLifetime))
	if err != nil {
		return fmt.Errorf("failed to register read replicas: %w", err)
	}

	cm.logger.Info("Read replicas configured",
		zap.Int("replica_count", len(cfg.ReadReplicaDSNs)),
		zap.String("load_balance_policy", cfg.LoadBalancePolicy),
	)
	return nil
}

// DB returns the main database handle
func (cm *ConnectionManager) DB() *gorm.DB {
	return cm.db
}

// SQLDB returns the primary connection pool
func (cm *ConnectionManager) SQLDB() *sql.DB {
	return cm.writeDB
}

// HealthCheck pings the primary
func (cm *ConnectionManager) HealthCheck(ctx context.Context) error {
	if err := cm.writeDB.PingContext(ctx); err != nil {
		return fmt.Errorf("primary database ping failed: %w", err)
	}
	return nil
}

// Close closes the primary pool
func (cm *ConnectionManager) Close() error {
	if cm.writeDB == nil {
		return nil
	}
	return cm.writeDB.Close()
}

// getLoadBalancePolicy converts string to dbresolver policy
func getLoadBalancePolicy(policy string) dbresolver.Policy {
	switch policy {
	case "random":
		return dbresolver.RandomPolicy{}
	case "round_robin":
		return dbresolver.RoundRobinPolicy()
	default:
		return dbresolver.RandomPolicy{}
	}
}
