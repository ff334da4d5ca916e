package utils

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger builds a production logger unless ENV says otherwise.
func NewLogger() (*zap.Logger, error) {
	if os.Getenv("ENV") == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
