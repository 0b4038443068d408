package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assist-by/griffin/internal/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawOrder
		wantErr string // 기대하는 에러 필드 (빈 문자열이면 성공 기대)
		check   func(t *testing.T, req domain.OrderRequest)
	}{
		{
			name: "시장가 매수 주문 정규화",
			raw:  RawOrder{Symbol: "btcusdt", Side: "buy", Type: "market", Quantity: "0.001"},
			check: func(t *testing.T, req domain.OrderRequest) {
				assert.Equal(t, "BTCUSDT", req.Symbol)
				assert.Equal(t, domain.Buy, req.Side)
				assert.Equal(t, domain.Market, req.Type)
				assert.Equal(t, domain.BothPosition, req.PositionSide)
				assert.Equal(t, "0.001", req.Quantity.String())
				assert.False(t, req.Price.Valid)
				assert.False(t, req.StopPrice.Valid)
				assert.Empty(t, req.TimeInForce)
			},
		},
		{
			name: "MARKET 주문의 가격은 조용히 무시",
			raw:  RawOrder{Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET", Quantity: "0.001", Price: "65000"},
			check: func(t *testing.T, req domain.OrderRequest) {
				assert.False(t, req.Price.Valid)
				assert.False(t, req.StopPrice.Valid)
			},
		},
		{
			name: "지정가 주문은 가격과 timeInForce 기본값 GTC",
			raw:  RawOrder{Symbol: "BTCUSDT", Side: "SELL", Type: "LIMIT", Quantity: "0.5", Price: "65000.5"},
			check: func(t *testing.T, req domain.OrderRequest) {
				require.True(t, req.Price.Valid)
				assert.Equal(t, "65000.5", req.Price.Decimal.String())
				assert.Equal(t, domain.GTC, req.TimeInForce)
			},
		},
		{
			name: "스탑 시장가 주문의 가격은 스탑 가격으로 사용",
			raw:  RawOrder{Symbol: "BTCUSDT", Side: "BUY", Type: "STOP_MARKET", Quantity: "0.01", Price: "95000"},
			check: func(t *testing.T, req domain.OrderRequest) {
				assert.False(t, req.Price.Valid)
				require.True(t, req.StopPrice.Valid)
				assert.Equal(t, "95000", req.StopPrice.Decimal.String())
				assert.Empty(t, req.TimeInForce)
			},
		},
		{
			name: "지정가 주문 IOC 유효 기간",
			raw:  RawOrder{Symbol: "BTCUSDT", Side: "BUY", Type: "LIMIT", Quantity: "0.1", Price: "100", TimeInForce: "ioc"},
			check: func(t *testing.T, req domain.OrderRequest) {
				assert.Equal(t, domain.IOC, req.TimeInForce)
			},
		},
		{
			name:    "빈 심볼",
			raw:     RawOrder{Symbol: "", Side: "BUY", Type: "MARKET", Quantity: "1"},
			wantErr: "symbol",
		},
		{
			name:    "심볼에 특수문자 포함",
			raw:     RawOrder{Symbol: "BTC-USDT", Side: "BUY", Type: "MARKET", Quantity: "1"},
			wantErr: "symbol",
		},
		{
			name:    "잘못된 주문 방향",
			raw:     RawOrder{Symbol: "BTCUSDT", Side: "HOLD", Type: "MARKET", Quantity: "1"},
			wantErr: "side",
		},
		{
			name:    "잘못된 주문 유형",
			raw:     RawOrder{Symbol: "BTCUSDT", Side: "BUY", Type: "TRAILING", Quantity: "1"},
			wantErr: "type",
		},
		{
			name:    "수량이 숫자가 아님",
			raw:     RawOrder{Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET", Quantity: "abc"},
			wantErr: "quantity",
		},
		{
			name:    "수량이 0",
			raw:     RawOrder{Symbol: "BTCUSDT", Side: "BUY", Type: "MARKET", Quantity: "0"},
			wantErr: "quantity",
		},
		{
			name:    "수량이 음수",
			raw:     RawOrder{Symbol: "BTCUSDT", Side: "SELL", Type: "MARKET", Quantity: "-0.5"},
			wantErr: "quantity",
		},
		{
			name:    "지정가 주문에 가격 누락",
			raw:     RawOrder{Symbol: "BTCUSDT", Side: "BUY", Type: "LIMIT", Quantity: "0.001"},
			wantErr: "price",
		},
		{
			name:    "스탑 시장가 주문에 가격 누락",
			raw:     RawOrder{Symbol: "BTCUSDT", Side: "BUY", Type: "STOP_MARKET", Quantity: "0.001"},
			wantErr: "price",
		},
		{
			name:    "지정가 주문에 음수 가격",
			raw:     RawOrder{Symbol: "BTCUSDT", Side: "BUY", Type: "LIMIT", Quantity: "0.001", Price: "-100"},
			wantErr: "price",
		},
		{
			name:    "잘못된 timeInForce",
			raw:     RawOrder{Symbol: "BTCUSDT", Side: "BUY", Type: "LIMIT", Quantity: "0.001", Price: "100", TimeInForce: "GTD"},
			wantErr: "timeInForce",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Normalize(tt.raw)

			if tt.wantErr != "" {
				require.Error(t, err)
				var vErr *ValidationError
				require.True(t, errors.As(err, &vErr), "에러 타입이 *ValidationError가 아님: %T", err)
				assert.Equal(t, tt.wantErr, vErr.Field)
				return
			}

			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, req)
			}
		})
	}
}

// 검증 순서: 첫 번째 실패가 우선합니다
func TestNormalize_FirstFailureWins(t *testing.T) {
	// side와 quantity가 모두 잘못되었지만 side가 먼저 검사됩니다
	_, err := Normalize(RawOrder{Symbol: "BTCUSDT", Side: "WRONG", Type: "MARKET", Quantity: "abc"})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "side", vErr.Field)
}
