package trading

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assist-by/griffin/internal/domain"
	"github.com/assist-by/griffin/internal/exchange/binance"
	"github.com/assist-by/griffin/internal/validator"
)

// mockExchange는 거래소 호출을 기록하는 테스트 대역입니다
type mockExchange struct {
	placeOrderCalls  int
	cancelOrderCalls int
	lastOrder        domain.OrderRequest

	orderResponse *domain.OrderResponse
	balances      []domain.Balance
	err           error
}

func (m *mockExchange) Ping(ctx context.Context) error     { return m.err }
func (m *mockExchange) SyncTime(ctx context.Context) error { return m.err }

func (m *mockExchange) PlaceOrder(ctx context.Context, order domain.OrderRequest) (*domain.OrderResponse, error) {
	m.placeOrderCalls++
	m.lastOrder = order
	if m.err != nil {
		return nil, m.err
	}
	return m.orderResponse, nil
}

func (m *mockExchange) CancelOrder(ctx context.Context, symbol string, orderID int64) (*domain.OrderResponse, error) {
	m.cancelOrderCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.orderResponse, nil
}

func (m *mockExchange) GetOrder(ctx context.Context, symbol string, orderID int64) (*domain.OrderResponse, error) {
	return m.orderResponse, m.err
}

func (m *mockExchange) GetOpenOrders(ctx context.Context, symbol string) ([]domain.OrderResponse, error) {
	return nil, m.err
}

func (m *mockExchange) GetBalances(ctx context.Context) ([]domain.Balance, error) {
	return m.balances, m.err
}

func (m *mockExchange) GetSymbolInfo(ctx context.Context, symbol string) (*domain.SymbolInfo, error) {
	return nil, m.err
}

// 시장가 매수 시나리오: 입력 정규화와 응답 매핑을 함께 확인합니다
func TestService_PlaceOrder_MarketBuy(t *testing.T) {
	mock := &mockExchange{
		orderResponse: &domain.OrderResponse{
			OrderID:          123,
			Symbol:           "BTCUSDT",
			Status:           "FILLED",
			ExecutedQuantity: "0.001",
			AvgPrice:         "65000",
		},
	}
	svc := NewService(mock)

	order, err := svc.PlaceOrder(context.Background(), validator.RawOrder{
		Symbol:   "BTCUSDT",
		Side:     "buy",
		Type:     "MARKET",
		Quantity: "0.001",
	})
	require.NoError(t, err)

	// 정규화된 요청이 거래소로 전달됩니다
	assert.Equal(t, 1, mock.placeOrderCalls)
	assert.Equal(t, domain.Buy, mock.lastOrder.Side)
	assert.Equal(t, domain.BothPosition, mock.lastOrder.PositionSide)
	assert.False(t, mock.lastOrder.Price.Valid, "MARKET 주문에 가격이 전달되면 안 됩니다")

	// 응답 필드가 그대로 반환됩니다
	assert.Equal(t, int64(123), order.OrderID)
	assert.Equal(t, "FILLED", order.Status)
	assert.Equal(t, "0.001", order.ExecutedQuantity)
	assert.Equal(t, "65000", order.AvgPrice)
}

// 검증 실패 시 네트워크 호출이 발생하지 않습니다
func TestService_PlaceOrder_ValidationFailureSkipsNetwork(t *testing.T) {
	mock := &mockExchange{}
	svc := NewService(mock)

	// LIMIT 주문에 가격 누락
	_, err := svc.PlaceOrder(context.Background(), validator.RawOrder{
		Symbol:   "BTCUSDT",
		Side:     "BUY",
		Type:     "LIMIT",
		Quantity: "0.001",
	})

	var vErr *validator.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "price", vErr.Field)
	assert.Equal(t, 0, mock.placeOrderCalls, "검증 실패 시 거래소 호출이 없어야 합니다")
}

// 거래소 도메인 에러는 재해석 없이 타입 그대로 전달됩니다
func TestService_CancelOrder_PassesThroughAPIError(t *testing.T) {
	mock := &mockExchange{
		err: &binance.APIError{Code: -2011, Message: "Unknown order sent."},
	}
	svc := NewService(mock)

	_, err := svc.CancelOrder(context.Background(), "BTCUSDT", 999)

	var apiErr *binance.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, -2011, apiErr.Code)
	assert.Equal(t, "Unknown order sent.", apiErr.Message)
	assert.Equal(t, 1, mock.cancelOrderCalls)
}

// 취소 전 심볼 검증이 수행됩니다
func TestService_CancelOrder_ValidatesSymbol(t *testing.T) {
	mock := &mockExchange{}
	svc := NewService(mock)

	_, err := svc.CancelOrder(context.Background(), "", 1)

	var vErr *validator.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, mock.cancelOrderCalls)
}

// 잔고 조회: includeZero에 따라 0 잔고 자산을 제외합니다
func TestService_Balances_FiltersZero(t *testing.T) {
	mock := &mockExchange{
		balances: []domain.Balance{
			{Asset: "USDT", WalletBalance: "1000.5"},
			{Asset: "BTC", WalletBalance: "0.00000000"},
			{Asset: "ETH", WalletBalance: "2"},
		},
	}
	svc := NewService(mock)

	filtered, err := svc.Balances(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "USDT", filtered[0].Asset)
	assert.Equal(t, "ETH", filtered[1].Asset)

	all, err := svc.Balances(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

// 열린 주문 조회: 심볼은 선택이며 지정 시 정규화됩니다
func TestService_OpenOrders_OptionalSymbol(t *testing.T) {
	mock := &mockExchange{}
	svc := NewService(mock)

	_, err := svc.OpenOrders(context.Background(), "")
	assert.NoError(t, err)

	_, err = svc.OpenOrders(context.Background(), "btc-usdt")
	var vErr *validator.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "symbol", vErr.Field)
}
