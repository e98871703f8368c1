package config

import (
	"fmt"
	"strings"
	"time"

	"wejv/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseCredentials is everything needed to open the recipe database.
// For sqlite, Name is the file path or DSN.
type DatabaseCredentials struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

func CredentialsFromConfig() DatabaseCredentials {
	return DatabaseCredentials{
		Driver:   utils.GetConfig("DB_DRIVER"),
		Host:     utils.GetConfig("DB_HOST"),
		Port:     utils.GetConfig("DB_PORT"),
		User:     utils.GetConfig("DB_USER"),
		Password: utils.GetConfig("DB_PASSWORD"),
		Name:     utils.GetConfig("DB_NAME"),
		SSLMode:  utils.GetConfig("DB_SSLMODE"),
		TimeZone: utils.GetConfig("DB_TIMEZONE"),
	}
}

func (c DatabaseCredentials) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Name
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host,
		c.User,
		c.Password,
		c.Name,
		c.Port,
		firstNonEmpty(c.SSLMode, "disable"),
		firstNonEmpty(c.TimeZone, "UTC"),
	)
}

func (c DatabaseCredentials) dialector() (gorm.Dialector, error) {
	switch strings.ToLower(firstNonEmpty(c.Driver, DriverPostgres)) {
	case DriverPostgres:
		if strings.TrimSpace(c.Host) == "" || strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("postgres host and database name must not be empty")
		}
		return postgres.Open(c.DSN()), nil
	case DriverSQLite:
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("sqlite database path must not be empty")
		}
		return sqlite.Open(c.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

func ConnectDB(creds DatabaseCredentials) (*gorm.DB, error) {
	dialector, err := creds.dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if creds.Driver == DriverSQLite {
		// sqlite serializes writers; one connection avoids "database is locked"
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
