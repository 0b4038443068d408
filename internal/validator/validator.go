package validator

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/assist-by/griffin/internal/domain"
)

// RawOrder는 CLI 등 외부에서 전달된 검증 전 주문 파라미터입니다
type RawOrder struct {
	Symbol        string // 심볼 (예: BTCUSDT)
	Side          string // BUY | SELL (대소문자 무관)
	Type          string // MARKET | LIMIT | STOP_MARKET (대소문자 무관)
	Quantity      string // 수량 문자열
	Price         string // 가격 문자열 (LIMIT/STOP_MARKET일 때 필수)
	TimeInForce   string // GTC | IOC | FOK (LIMIT 전용, 기본값 GTC)
	ReduceOnly    bool   // 포지션 축소 전용 여부
	ClientOrderID string // 클라이언트 측 주문 ID (선택)
}

// Normalize는 주문 파라미터를 순서대로 검증하고 정규화합니다.
// 첫 번째 검증 실패에서 즉시 *ValidationError를 반환하며, 네트워크 접근은 없습니다.
func Normalize(raw RawOrder) (domain.OrderRequest, error) {
	var req domain.OrderRequest

	symbol, err := ValidateSymbol(raw.Symbol)
	if err != nil {
		return req, err
	}

	side, err := ValidateSide(raw.Side)
	if err != nil {
		return req, err
	}

	orderType, err := ValidateOrderType(raw.Type)
	if err != nil {
		return req, err
	}

	quantity, err := ValidateQuantity(raw.Quantity)
	if err != nil {
		return req, err
	}

	price, err := ValidatePrice(raw.Price, orderType)
	if err != nil {
		return req, err
	}

	tif, err := validateTimeInForce(raw.TimeInForce, orderType)
	if err != nil {
		return req, err
	}

	req = domain.OrderRequest{
		Symbol:        symbol,
		Side:          side,
		PositionSide:  domain.BothPosition,
		Type:          orderType,
		Quantity:      quantity,
		TimeInForce:   tif,
		ReduceOnly:    raw.ReduceOnly,
		ClientOrderID: raw.ClientOrderID,
	}

	switch orderType {
	case domain.Limit:
		req.Price = decimal.NullDecimal{Decimal: price, Valid: true}
	case domain.StopMarket:
		// STOP_MARKET은 가격 입력을 스탑 가격으로 사용합니다
		req.StopPrice = decimal.NullDecimal{Decimal: price, Valid: true}
	}

	return req, nil
}

// ValidateSymbol은 심볼이 비어있지 않은 영숫자 문자열인지 확인하고 대문자로 정규화합니다.
// 심볼이 거래소에 실제로 존재하는지는 확인하지 않습니다 (거래소가 도메인 에러로 응답).
func ValidateSymbol(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", &ValidationError{Field: "symbol", Value: symbol, Reason: "심볼은 비어있을 수 없습니다"}
	}
	for _, r := range symbol {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", &ValidationError{
				Field:  "symbol",
				Value:  symbol,
				Reason: "심볼은 영숫자만 사용할 수 있습니다 (예: BTCUSDT)",
			}
		}
	}
	return symbol, nil
}

// ValidateSide는 주문 방향이 BUY 또는 SELL인지 확인합니다 (대소문자 무관)
func ValidateSide(side string) (domain.OrderSide, error) {
	normalized := domain.OrderSide(strings.ToUpper(strings.TrimSpace(side)))
	switch normalized {
	case domain.Buy, domain.Sell:
		return normalized, nil
	}
	return "", &ValidationError{
		Field:  "side",
		Value:  side,
		Reason: "주문 방향은 BUY 또는 SELL이어야 합니다",
	}
}

// ValidateOrderType은 주문 유형이 MARKET, LIMIT, STOP_MARKET 중 하나인지 확인합니다
func ValidateOrderType(orderType string) (domain.OrderType, error) {
	normalized := domain.OrderType(strings.ToUpper(strings.TrimSpace(orderType)))
	switch normalized {
	case domain.Market, domain.Limit, domain.StopMarket:
		return normalized, nil
	}
	return "", &ValidationError{
		Field:  "type",
		Value:  orderType,
		Reason: "주문 유형은 MARKET, LIMIT, STOP_MARKET 중 하나여야 합니다",
	}
}

// ValidateQuantity는 수량이 양수인지 확인합니다.
// 심볼별 stepSize 정밀도 검사는 로컬에서 수행하지 않습니다 — 거래소가
// 정밀도 위반을 도메인 에러(-1111)로 거부합니다.
func ValidateQuantity(quantity string) (decimal.Decimal, error) {
	qty, err := decimal.NewFromString(strings.TrimSpace(quantity))
	if err != nil {
		return decimal.Decimal{}, &ValidationError{
			Field:  "quantity",
			Value:  quantity,
			Reason: "수량이 숫자가 아닙니다",
		}
	}
	if qty.Sign() <= 0 {
		return decimal.Decimal{}, &ValidationError{
			Field:  "quantity",
			Value:  quantity,
			Reason: "수량은 0보다 커야 합니다",
		}
	}
	return qty, nil
}

// ValidatePrice는 주문 유형에 따라 가격을 검증합니다.
// LIMIT/STOP_MARKET은 양수 가격이 필수이고, MARKET은 가격이 있어도 에러가 아니라
// 조용히 무시합니다 (복사 붙여넣기된 명령을 허용하기 위함).
func ValidatePrice(price string, orderType domain.OrderType) (decimal.Decimal, error) {
	price = strings.TrimSpace(price)

	if orderType == domain.Market {
		if price != "" {
			logrus.WithField("price", price).Warn("MARKET 주문의 가격 입력은 무시됩니다")
		}
		return decimal.Decimal{}, nil
	}

	label := "가격"
	if orderType == domain.StopMarket {
		label = "스탑 가격"
	}

	if price == "" {
		return decimal.Decimal{}, &ValidationError{
			Field:  "price",
			Value:  price,
			Reason: label + "은(는) " + string(orderType) + " 주문에 필수입니다",
		}
	}

	p, err := decimal.NewFromString(price)
	if err != nil {
		return decimal.Decimal{}, &ValidationError{
			Field:  "price",
			Value:  price,
			Reason: label + "이(가) 숫자가 아닙니다",
		}
	}
	if p.Sign() <= 0 {
		return decimal.Decimal{}, &ValidationError{
			Field:  "price",
			Value:  price,
			Reason: label + "은(는) 0보다 커야 합니다",
		}
	}
	return p, nil
}

// validateTimeInForce는 LIMIT 주문의 유효 기간 정책을 검증합니다.
// LIMIT이 아닌 주문에서는 항상 빈 값을 반환합니다.
func validateTimeInForce(tif string, orderType domain.OrderType) (domain.TimeInForce, error) {
	if orderType != domain.Limit {
		return "", nil
	}
	if strings.TrimSpace(tif) == "" {
		return domain.GTC, nil
	}
	normalized := domain.TimeInForce(strings.ToUpper(strings.TrimSpace(tif)))
	switch normalized {
	case domain.GTC, domain.IOC, domain.FOK:
		return normalized, nil
	}
	return "", &ValidationError{
		Field:  "timeInForce",
		Value:  tif,
		Reason: "유효 기간은 GTC, IOC, FOK 중 하나여야 합니다",
	}
}
