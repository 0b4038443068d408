package domain

// OrderSide는 주문 방향을 정의합니다
type OrderSide string

const (
	Buy  OrderSide = "BUY"
	Sell OrderSide = "SELL"
)

// PositionSide는 포지션 방향을 정의합니다
type PositionSide string

const (
	LongPosition  PositionSide = "LONG"
	ShortPosition PositionSide = "SHORT"
	BothPosition  PositionSide = "BOTH" // 원웨이 모드 (헤지 모드가 아닌 경우)
)

// OrderType은 주문 유형을 정의합니다
type OrderType string

const (
	Market     OrderType = "MARKET"
	Limit      OrderType = "LIMIT"
	StopMarket OrderType = "STOP_MARKET"
)

// TimeInForce는 주문 유효 기간 정책을 정의합니다
type TimeInForce string

const (
	GTC TimeInForce = "GTC" // Good-Till-Cancelled
	IOC TimeInForce = "IOC" // Immediate-Or-Cancel
	FOK TimeInForce = "FOK" // Fill-Or-Kill
)

// 바이낸스 API 에러 코드
const (
	ErrCodePrecision            = -1111 // 수량/가격 정밀도 위반
	ErrCodeUnknownOrder         = -2011 // 존재하지 않는 주문
	ErrCodePositionModeNoChange = -4059 // 포지션 모드 변경 불필요
)
