package database

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"loomhouse/internal/config"
	"loomhouse/internal/logger"
	"loomhouse/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrSQLiteMigrations is returned by versioned migration commands on sqlite,
// where the schema comes from the models instead of migrations/.
var ErrSQLiteMigrations = errors.New("versioned migrations are only available on postgres")

// Manager handles database operations
type Manager struct {
	db             *gorm.DB
	driver         string
	migrateURL     string
	migrationsPath string
}

// NewManager opens the database named by cfg.DBDriver.
func NewManager(cfg *config.Config) (*Manager, error) {
	gormCfg := &gorm.Config{}
	if cfg.IsProduction() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	m := &Manager{driver: cfg.DBDriver, migrationsPath: cfg.MigrationsPath}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.PostgresDSN(),
			PreferSimpleProtocol: true, // Required for pgbouncer in transaction mode; harmless for direct connections
		})
		m.migrateURL = cfg.PostgresURL()
	case DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on")
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use postgres or sqlite)", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if cfg.DBDriver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	m.db = db
	return m, nil
}

// Migrate brings the schema up to date. Postgres applies the SQL files in
// migrations/; sqlite auto-migrates the models.
func (m *Manager) Migrate() error {
	log := logger.Named("database")

	if m.driver == DriverSQLite {
		log.Info("Auto-migrating sqlite schema...")
		if err := m.db.AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("auto-migrate failed: %w", err)
		}
		return nil
	}

	log.Info("Running database migrations...")
	mig, err := m.newMigrate()
	if err != nil {
		return err
	}
	defer closeMigrate(mig)

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Info("Database migrations completed successfully")
	return nil
}

// MigrateDown rolls back the given number of migrations.
func (m *Manager) MigrateDown(steps int) error {
	if m.driver == DriverSQLite {
		return ErrSQLiteMigrations
	}
	if steps < 1 {
		return fmt.Errorf("step count must be positive, got %d", steps)
	}

	mig, err := m.newMigrate()
	if err != nil {
		return err
	}
	defer closeMigrate(mig)

	if err := mig.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return nil
}

// Version reports the applied migration version and whether it is dirty.
func (m *Manager) Version() (uint, bool, error) {
	if m.driver == DriverSQLite {
		return 0, false, ErrSQLiteMigrations
	}

	mig, err := m.newMigrate()
	if err != nil {
		return 0, false, err
	}
	defer closeMigrate(mig)

	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get version: %w", err)
	}
	return version, dirty, nil
}

func (m *Manager) newMigrate() (*migrate.Migrate, error) {
	path, err := filepath.Abs(m.migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("invalid migrations path: %w", err)
	}
	mig, err := migrate.New("file://"+filepath.ToSlash(path), m.migrateURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mig, nil
}

func closeMigrate(mig *migrate.Migrate) {
	srcErr, dbErr := mig.Close()
	if srcErr != nil {
		logger.Named("database").Warnf("migrate source close error: %v", srcErr)
	}
	if dbErr != nil {
		logger.Named("database").Warnf("migrate database close error: %v", dbErr)
	}
}

// Driver returns the configured driver name.
func (m *Manager) Driver() string {
	return m.driver
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
