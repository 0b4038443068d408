package trading

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/assist-by/griffin/internal/domain"
	"github.com/assist-by/griffin/internal/exchange"
	"github.com/assist-by/griffin/internal/notification"
	"github.com/assist-by/griffin/internal/validator"
)

// Service는 주문 작업을 오케스트레이션합니다:
// 검증 → 서명된 요청 전송 → 응답 해석의 흐름을 담당하며,
// 각 단계의 에러(검증/도메인/전송)를 타입 그대로 호출자에게 전달합니다.
type Service struct {
	exchange exchange.Exchange
	notifier notification.Notifier
	log      *logrus.Entry
}

// ServiceOption은 서비스 생성 옵션을 정의합니다
type ServiceOption func(*Service)

// WithNotifier는 주문 결과 알림을 활성화합니다
func WithNotifier(n notification.Notifier) ServiceOption {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithLogger는 로거를 설정합니다
func WithLogger(log *logrus.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log.WithField("component", "trading")
	}
}

// NewService는 새로운 주문 서비스를 생성합니다
func NewService(ex exchange.Exchange, opts ...ServiceOption) *Service {
	s := &Service{
		exchange: ex,
		log:      logrus.StandardLogger().WithField("component", "trading"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Ping은 거래소 연결 상태를 확인합니다
func (s *Service) Ping(ctx context.Context) error {
	return s.exchange.Ping(ctx)
}

// SyncTime은 거래소 서버와 시간을 동기화합니다
func (s *Service) SyncTime(ctx context.Context) error {
	return s.exchange.SyncTime(ctx)
}

// PlaceOrder는 주문 파라미터를 검증한 뒤 주문을 실행합니다.
// 검증에 실패하면 네트워크 호출 없이 *validator.ValidationError를 반환합니다.
func (s *Service) PlaceOrder(ctx context.Context, raw validator.RawOrder) (*domain.OrderResponse, error) {
	req, err := validator.Normalize(raw)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"symbol":   req.Symbol,
		"side":     req.Side,
		"type":     req.Type,
		"quantity": req.Quantity.String(),
	}).Info("주문 실행")

	order, err := s.exchange.PlaceOrder(ctx, req)
	if err != nil {
		s.notifyError(fmt.Errorf("주문 실행 실패 [%s %s %s]: %w", req.Symbol, req.Side, req.Type, err))
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"orderId": order.OrderID,
		"status":  order.Status,
	}).Info("주문 완료")
	s.notifyOrder("주문 실행", order)

	return order, nil
}

// CancelOrder는 주문 ID로 열린 주문을 취소합니다
func (s *Service) CancelOrder(ctx context.Context, symbol string, orderID int64) (*domain.OrderResponse, error) {
	symbol, err := validator.ValidateSymbol(symbol)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"symbol":  symbol,
		"orderId": orderID,
	}).Info("주문 취소")

	order, err := s.exchange.CancelOrder(ctx, symbol, orderID)
	if err != nil {
		s.notifyError(fmt.Errorf("주문 취소 실패 [%s, 주문 ID: %d]: %w", symbol, orderID, err))
		return nil, err
	}

	s.notifyOrder("주문 취소", order)
	return order, nil
}

// GetOrder는 주문 ID로 특정 주문을 조회합니다
func (s *Service) GetOrder(ctx context.Context, symbol string, orderID int64) (*domain.OrderResponse, error) {
	symbol, err := validator.ValidateSymbol(symbol)
	if err != nil {
		return nil, err
	}

	return s.exchange.GetOrder(ctx, symbol, orderID)
}

// OpenOrders는 열린 주문 목록을 조회합니다.
// 심볼이 빈 문자열이면 모든 심볼의 주문을 반환합니다.
func (s *Service) OpenOrders(ctx context.Context, symbol string) ([]domain.OrderResponse, error) {
	if symbol != "" {
		normalized, err := validator.ValidateSymbol(symbol)
		if err != nil {
			return nil, err
		}
		symbol = normalized
	}

	return s.exchange.GetOpenOrders(ctx, symbol)
}

// Balances는 계정 자산 잔고를 조회합니다.
// includeZero가 false이면 지갑 잔고가 0인 자산은 제외합니다.
func (s *Service) Balances(ctx context.Context, includeZero bool) ([]domain.Balance, error) {
	balances, err := s.exchange.GetBalances(ctx)
	if err != nil {
		return nil, err
	}

	if includeZero {
		return balances, nil
	}

	filtered := make([]domain.Balance, 0, len(balances))
	for _, b := range balances {
		wallet, err := decimal.NewFromString(b.WalletBalance)
		if err != nil || wallet.IsZero() {
			continue
		}
		filtered = append(filtered, b)
	}

	return filtered, nil
}

// SymbolInfo는 심볼의 거래 규칙 정보를 조회합니다
func (s *Service) SymbolInfo(ctx context.Context, symbol string) (*domain.SymbolInfo, error) {
	symbol, err := validator.ValidateSymbol(symbol)
	if err != nil {
		return nil, err
	}

	return s.exchange.GetSymbolInfo(ctx, symbol)
}

// notifyOrder는 주문 결과 알림을 전송합니다. 알림 실패는 작업을 실패시키지 않습니다.
func (s *Service) notifyOrder(action string, order *domain.OrderResponse) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendOrder(action, order); err != nil {
		s.log.Warnf("알림 전송 실패: %v", err)
	}
}

// notifyError는 에러 알림을 전송합니다
func (s *Service) notifyError(opErr error) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendError(opErr); err != nil {
		s.log.Warnf("에러 알림 전송 실패: %v", err)
	}
}
