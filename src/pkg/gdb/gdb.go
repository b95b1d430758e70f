package gdb

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config is the db section of the service config.
type Config struct {
	Dsn             string `toml:"dsn" mapstructure:"dsn" json:"-"`
	MaxIdleConns    int    `toml:"max_idle_conns" mapstructure:"max_idle_conns" json:"max_idle_conns"`
	MaxOpenConns    int    `toml:"max_open_conns" mapstructure:"max_open_conns" json:"max_open_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" mapstructure:"conn_max_lifetime" json:"conn_max_lifetime"` // seconds
	LogLevel        string `toml:"log_level" mapstructure:"log_level" json:"log_level"`
}

// NewDB opens a gorm connection pool against MySQL.
func NewDB(c *Config) (*gorm.DB, error) {
	level := logger.Warn
	switch c.LogLevel {
	case "silent":
		level = logger.Silent
	case "error":
		level = logger.Error
	case "info":
		level = logger.Info
	}

	db, err := gorm.Open(mysql.Open(c.Dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed on open database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed on get database pool")
	}
	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetime) * time.Second)
	}

	return db, nil
}
