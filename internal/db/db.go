package db

import (
	"fmt"

	"discord-backend/internal/app/channel"
	"discord-backend/internal/app/conversation"
	"discord-backend/internal/app/member"
	"discord-backend/internal/app/message"
	"discord-backend/internal/app/profile"
	"discord-backend/internal/app/server"
	"discord-backend/internal/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{}
	if cfg.Env == "prod" || cfg.Env == "production" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger.Info("Connected to PostgreSQL",
		zap.String("host", cfg.DBHost),
		zap.String("database", cfg.DBName),
	)

	return db, nil
}

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&profile.Profile{},
		&server.Server{},
		&member.Member{},
		&channel.Channel{},
		&message.Message{},
		&conversation.Conversation{},
		&conversation.DirectMessage{},
	}
}

func Migrate(db *gorm.DB, logger *zap.Logger) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	logger.Info("Database migrated", zap.Int("tables", len(Models())))
	return nil
}
