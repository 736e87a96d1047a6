package utils

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// LoadEnv reads .env files into the process environment. Existing variables win.
func LoadEnv(logger *zap.Logger, files ...string) {
	if err := godotenv.Load(files...); err != nil {
		logger.Warn("ENV file not found or failed to load, using defaults", zap.Strings("files", files))
	} else {
		logger.Info("ENV file loaded successfully")
	}
}
