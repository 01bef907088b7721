package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const SchemaName = "tagcat"

// GormConfig is shared by the server and the integration tests so both see
// the same table names.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   SchemaName + ".",
			SingularTable: false,
		},
		Logger: logger.Default.LogMode(logger.Silent),
	}
}

func DSN(cfg *Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable search_path=%s",
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.DatabaseName,
		SchemaName,
	)
}

// InitDB opens the connection and migrates the given models into the
// tagcat schema.
func InitDB(cfg *Config, models ...any) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN(cfg)), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := Migrate(db, models...); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB, models ...any) error {
	x := db.Exec(`CREATE SCHEMA IF NOT EXISTS ` + SchemaName)
	if x.Error != nil {
		return fmt.Errorf("failed to create schema: %w", x.Error)
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
