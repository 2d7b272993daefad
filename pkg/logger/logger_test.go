package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		override string
		want     zerolog.Level
	}{
		{"development defaults to debug", "development", "", zerolog.DebugLevel},
		{"production defaults to info", "production", "", zerolog.InfoLevel},
		{"override wins", "production", "warn", zerolog.WarnLevel},
		{"override is case insensitive", "development", "ERROR", zerolog.ErrorLevel},
		{"unknown override ignored", "production", "loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, levelFor(tt.env, tt.override))
		})
	}
}
