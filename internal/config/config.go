package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// 설정 검증 에러들
var (
	ErrMissingCredentials = fmt.Errorf("BINANCE_API_KEY와 BINANCE_API_SECRET이 설정되지 않았습니다")
	ErrEmptyBaseURL       = fmt.Errorf("BINANCE_BASE_URL은 비어있을 수 없습니다")
)

type Config struct {
	// 바이낸스 API 설정
	Binance struct {
		APIKey    string `envconfig:"BINANCE_API_KEY"`
		SecretKey string `envconfig:"BINANCE_API_SECRET"`
		BaseURL   string `envconfig:"BINANCE_BASE_URL" default:"https://testnet.binancefuture.com"`
	}

	// 디스코드 웹훅 설정 (선택, 비어있으면 알림 비활성화)
	Discord struct {
		TradeWebhook string `envconfig:"DISCORD_TRADE_WEBHOOK"`
		ErrorWebhook string `envconfig:"DISCORD_ERROR_WEBHOOK"`
	}

	// HTTP 클라이언트 설정
	HTTP struct {
		Timeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	}

	// 로그 설정
	Log struct {
		Level      string `envconfig:"LOG_LEVEL" default:"info"`
		File       string `envconfig:"LOG_FILE" default:"trading_bot.log"`
		MaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"5"`
		MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"3"`
	}
}

// ValidateConfig는 설정이 유효한지 확인합니다.
// 자격 증명이 비어있으면 어떤 작업도 시작하기 전에 실패합니다.
func ValidateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Binance.APIKey) == "" || strings.TrimSpace(cfg.Binance.SecretKey) == "" {
		return ErrMissingCredentials
	}

	if strings.TrimSpace(cfg.Binance.BaseURL) == "" {
		return ErrEmptyBaseURL
	}

	return nil
}

// LoadConfig는 환경변수에서 설정을 로드합니다.
// .env 파일은 있으면 읽고, 없어도 에러가 아닙니다.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	// 환경변수를 구조체로 파싱
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("환경변수 처리 실패: %w", err)
	}

	// 설정값 검증
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("설정값 검증 실패: %w", err)
	}

	return &cfg, nil
}
