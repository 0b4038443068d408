package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRequest는 검증이 끝난 주문 요청 정보를 표현합니다
type OrderRequest struct {
	Symbol        string              // 심볼 (예: BTCUSDT)
	Side          OrderSide           // 매수/매도
	PositionSide  PositionSide        // 원웨이 모드에서는 항상 BOTH
	Type          OrderType           // 주문 유형 (시장가, 지정가, 스탑 시장가)
	Quantity      decimal.Decimal     // 수량 (항상 양수)
	Price         decimal.NullDecimal // 지정가 (LIMIT 주문 시에만 유효)
	StopPrice     decimal.NullDecimal // 스탑 가격 (STOP_MARKET 주문 시에만 유효)
	TimeInForce   TimeInForce         // 주문 유효 기간 (LIMIT 주문 시에만 유효)
	ReduceOnly    bool                // 포지션 축소 전용 여부
	ClientOrderID string              // 클라이언트 측 주문 ID (선택, 전달만 함)
}

// OrderResponse는 거래소의 주문 응답을 표현합니다.
// 알 수 없는 응답 필드는 버리지 않고 Raw에 그대로 보존합니다.
type OrderResponse struct {
	OrderID          int64          // 주문 ID
	Symbol           string         // 심볼
	Status           string         // 주문 상태 (NEW, FILLED 등)
	ClientOrderID    string         // 클라이언트 측 주문 ID
	Price            string         // 주문 가격
	AvgPrice         string         // 평균 체결 가격
	OrigQuantity     string         // 원래 주문 수량
	ExecutedQuantity string         // 체결된 수량
	Side             OrderSide      // 매수/매도
	PositionSide     PositionSide   // 포지션 방향
	Type             OrderType      // 주문 유형
	TimeInForce      string         // 주문 유효 기간
	UpdateTime       time.Time      // 마지막 갱신 시간
	Raw              map[string]any // 거래소 원본 응답 필드 전체
}

// Balance는 계정 자산 잔고 항목을 표현합니다
type Balance struct {
	Asset            string         // 자산 심볼 (예: USDT, BTC)
	WalletBalance    string         // 지갑 잔고
	AvailableBalance string         // 사용 가능한 잔고
	UnrealizedProfit string         // 미실현 손익
	Raw              map[string]any // 거래소 원본 응답 필드 전체
}

// SymbolInfo는 심볼의 거래 규칙 정보를 나타냅니다
type SymbolInfo struct {
	Symbol            string  // 심볼 이름 (예: BTCUSDT)
	StepSize          float64 // 수량 최소 단위 (예: 0.001 BTC)
	TickSize          float64 // 가격 최소 단위 (예: 0.01 USDT)
	MinNotional       float64 // 최소 주문 가치 (예: 10 USDT)
	PricePrecision    int     // 가격 소수점 자릿수
	QuantityPrecision int     // 수량 소수점 자릿수
}
