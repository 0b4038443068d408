// internal/exchange/exchange.go
package exchange

import (
	"context"

	"github.com/assist-by/griffin/internal/domain"
)

// Exchange는 거래소와의 상호작용을 위한 인터페이스입니다.
type Exchange interface {
	// 연결 및 시간 동기화
	Ping(ctx context.Context) error
	SyncTime(ctx context.Context) error

	// 거래 기능
	PlaceOrder(ctx context.Context, order domain.OrderRequest) (*domain.OrderResponse, error)
	CancelOrder(ctx context.Context, symbol string, orderID int64) (*domain.OrderResponse, error)

	// 조회 기능
	GetOrder(ctx context.Context, symbol string, orderID int64) (*domain.OrderResponse, error)
	GetOpenOrders(ctx context.Context, symbol string) ([]domain.OrderResponse, error)
	GetBalances(ctx context.Context) ([]domain.Balance, error)
	GetSymbolInfo(ctx context.Context, symbol string) (*domain.SymbolInfo, error)
}
