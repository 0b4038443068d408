package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		var cfg Config
		cfg.Binance.APIKey = "key"
		cfg.Binance.SecretKey = "secret"
		cfg.Binance.BaseURL = "https://testnet.binancefuture.com"
		return &cfg
	}

	t.Run("유효한 설정", func(t *testing.T) {
		assert.NoError(t, ValidateConfig(valid()))
	})

	t.Run("API 키 누락", func(t *testing.T) {
		cfg := valid()
		cfg.Binance.APIKey = ""
		assert.ErrorIs(t, ValidateConfig(cfg), ErrMissingCredentials)
	})

	t.Run("시크릿이 공백", func(t *testing.T) {
		cfg := valid()
		cfg.Binance.SecretKey = "   "
		assert.ErrorIs(t, ValidateConfig(cfg), ErrMissingCredentials)
	})

	t.Run("기본 URL 누락", func(t *testing.T) {
		cfg := valid()
		cfg.Binance.BaseURL = ""
		assert.ErrorIs(t, ValidateConfig(cfg), ErrEmptyBaseURL)
	})
}
