package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/assist-by/griffin/internal/domain"
)

// maxRetries는 일시적 실패에 대한 최대 재시도 횟수입니다 (총 4회 시도)
const maxRetries = 3

// Client는 바이낸스 선물 REST API 클라이언트를 구현합니다.
// 전송 계층, 요청 서명, 일시적 실패에 대한 재시도를 담당합니다.
type Client struct {
	apiKey           string
	baseURL          string
	httpClient       *http.Client
	signer           *signer
	log              *logrus.Entry
	serverTimeOffset int64 // 서버 시간과의 차이를 저장 (ms)
	mu               sync.RWMutex

	nowFn   func() time.Time
	sleepFn func(ctx context.Context, d time.Duration) error
}

// ClientOption은 클라이언트 생성 옵션을 정의합니다
type ClientOption func(*Client)

// WithTimeout은 HTTP 클라이언트의 타임아웃을 설정합니다
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithBaseURL은 기본 URL을 설정합니다
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTestnet은 테스트넷 사용 여부를 설정합니다
func WithTestnet(useTestnet bool) ClientOption {
	return func(c *Client) {
		if useTestnet {
			c.baseURL = "https://testnet.binancefuture.com"
		} else {
			c.baseURL = "https://fapi.binance.com"
		}
	}
}

// WithClock은 타임스탬프 생성에 사용할 시계를 주입합니다 (테스트용)
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.nowFn = now
	}
}

// WithLogger는 로거를 설정합니다
func WithLogger(log *logrus.Logger) ClientOption {
	return func(c *Client) {
		c.log = log.WithField("component", "binance")
	}
}

// NewClient는 새로운 바이낸스 API 클라이언트를 생성합니다
func NewClient(apiKey, secretKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    "https://fapi.binance.com",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logrus.StandardLogger().WithField("component", "binance"),
		nowFn:      time.Now,
		sleepFn:    sleepContext,
	}

	// 옵션 적용
	for _, opt := range opts {
		opt(c)
	}

	c.signer = &signer{secret: secretKey, now: c.timestamp}
	return c
}

// timestamp는 서버 시간 오프셋이 반영된 현재 시각을 반환합니다
func (c *Client) timestamp() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nowFn().Add(time.Duration(c.serverTimeOffset) * time.Millisecond)
}

// sleepContext는 컨텍스트 취소를 존중하는 대기입니다
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// doRequest는 HTTP 요청을 실행하고 재시도 상태 기계를 수행합니다.
// 일시적 실패(네트워크 에러, 5xx, 429)는 1s, 2s, 4s 백오프로 재시도하고,
// 4xx와 거래소 비즈니스 에러는 재시도 없이 즉시 *APIError로 반환합니다.
// 재시도가 모두 소진되면 마지막 원인을 담은 *TransportError를 반환합니다.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values, needSign bool) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}

	reqURL, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("URL 파싱 실패: %w", err)
	}

	// 재시도 상태는 논리적 요청마다 새로 생성됩니다
	state := newRetryState(maxRetries)

	var lastErr error
	for {
		state.attempts++

		// 서명은 시도마다 새로 계산합니다 — 타임스탬프는 전송 시점 기준이어야 합니다
		if needSign {
			signParams := url.Values{}
			for k, vs := range params {
				signParams[k] = vs
			}
			reqURL.RawQuery = c.signer.signedQuery(signParams)
		} else {
			reqURL.RawQuery = params.Encode()
		}

		body, class, hint, err := c.attempt(ctx, method, reqURL.String(), endpoint, needSign)
		if err == nil {
			return body, nil
		}
		if class == nonRetryable {
			return nil, err
		}
		lastErr = err

		if state.exhausted() {
			return nil, &TransportError{Method: method, Endpoint: endpoint, Attempts: state.attempts, Err: lastErr}
		}

		delay := state.next(hint)
		c.log.WithFields(logrus.Fields{
			"method":   method,
			"endpoint": endpoint,
			"attempt":  state.attempts,
			"delay":    delay,
		}).Warnf("일시적 실패, 재시도 예정: %v", err)

		if err := c.sleepFn(ctx, delay); err != nil {
			return nil, &TransportError{Method: method, Endpoint: endpoint, Attempts: state.attempts, Err: err}
		}
	}
}

// attempt는 한 번의 HTTP 시도를 수행하고 실패 분류와 백오프 힌트를 반환합니다
func (c *Client) attempt(ctx context.Context, method, fullURL, endpoint string, needSign bool) ([]byte, failureClass, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, nonRetryable, 0, fmt.Errorf("요청 생성 실패: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if needSign {
		req.Header.Set("X-MBX-APIKEY", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			// 사용자 중단은 재시도하지 않습니다
			return nil, nonRetryable, 0, fmt.Errorf("요청 중단: %w", ctx.Err())
		}
		return nil, transientNetwork, 0, fmt.Errorf("API 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transientNetwork, 0, fmt.Errorf("응답 읽기 실패: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"endpoint": endpoint,
		"status":   resp.StatusCode,
	}).Debug("응답 수신")

	if resp.StatusCode != http.StatusOK {
		class := classifyStatus(resp.StatusCode)
		if class != nonRetryable {
			return nil, class, retryAfterHint(resp), fmt.Errorf("HTTP 에러(%d): %s", resp.StatusCode, string(body))
		}

		// 4xx는 요청이 수신되어 거부된 것이므로 재시도 없이 즉시 반환합니다
		var apiErr struct {
			Code    int    `json:"code"`
			Message string `json:"msg"`
		}
		if err := json.Unmarshal(body, &apiErr); err != nil {
			return nil, nonRetryable, 0, fmt.Errorf("HTTP 에러(%d): %s", resp.StatusCode, string(body))
		}
		return nil, nonRetryable, 0, &APIError{Code: apiErr.Code, Message: apiErr.Message, HTTPStatus: resp.StatusCode}
	}

	// 일부 엔드포인트는 200 응답 본문에 비즈니스 에러 코드를 담아 반환합니다
	if apiErr := businessError(body, resp.StatusCode); apiErr != nil {
		return nil, nonRetryable, 0, apiErr
	}

	return body, 0, 0, nil
}

// businessError는 2xx 응답 본문에 포함된 거래소 에러 코드를 확인합니다
func businessError(body []byte, status int) *APIError {
	var probe struct {
		Code *int   `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || probe.Code == nil {
		return nil
	}
	if *probe.Code == 0 || *probe.Code == 200 {
		return nil
	}
	return &APIError{Code: *probe.Code, Message: probe.Msg, HTTPStatus: status}
}

// Ping은 거래소 연결 상태를 확인합니다 (서명 불필요)
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/fapi/v1/ping", nil, false)
	return err
}

// SyncTime은 바이낸스 서버와 시간을 동기화합니다
func (c *Client) SyncTime(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/fapi/v1/time", nil, false)
	if err != nil {
		return fmt.Errorf("서버 시간 조회 실패: %w", err)
	}

	var result struct {
		ServerTime int64 `json:"serverTime"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return fmt.Errorf("서버 시간 파싱 실패: %w", err)
	}

	c.mu.Lock()
	c.serverTimeOffset = result.ServerTime - c.nowFn().UnixMilli()
	c.mu.Unlock()
	return nil
}

// PlaceOrder는 새로운 주문을 생성합니다.
// 주의: 주문 생성은 멱등하지 않습니다. 첫 요청이 서버에 도달한 뒤 네트워크가
// 끊겼다면 재시도가 중복 주문을 만들 수 있습니다. 이는 이 유형의 클라이언트가
// 감수하는 알려진 위험이며 클라이언트 측 중복 제거로 가리지 않습니다.
func (c *Client) PlaceOrder(ctx context.Context, order domain.OrderRequest) (*domain.OrderResponse, error) {
	params := url.Values{}
	params.Add("symbol", order.Symbol)
	params.Add("side", string(order.Side))
	params.Add("type", string(order.Type))
	params.Add("quantity", order.Quantity.String())

	if order.PositionSide != "" {
		params.Add("positionSide", string(order.PositionSide))
	}

	switch order.Type {
	case domain.Limit:
		params.Add("price", order.Price.Decimal.String())
		if order.TimeInForce != "" {
			params.Add("timeInForce", string(order.TimeInForce))
		} else {
			params.Add("timeInForce", string(domain.GTC))
		}

	case domain.StopMarket:
		params.Add("stopPrice", order.StopPrice.Decimal.String())
	}

	if order.ReduceOnly {
		params.Add("reduceOnly", "true")
	}

	// 클라이언트 주문 ID는 호출자가 지정했을 때만 전달합니다
	if order.ClientOrderID != "" {
		params.Add("newClientOrderId", order.ClientOrderID)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/fapi/v1/order", params, true)
	if err != nil {
		return nil, err
	}

	return parseOrderResponse(resp)
}

// CancelOrder는 주문을 취소하고 취소된 주문 정보를 반환합니다
func (c *Client) CancelOrder(ctx context.Context, symbol string, orderID int64) (*domain.OrderResponse, error) {
	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("orderId", strconv.FormatInt(orderID, 10))

	resp, err := c.doRequest(ctx, http.MethodDelete, "/fapi/v1/order", params, true)
	if err != nil {
		return nil, err
	}

	return parseOrderResponse(resp)
}

// GetOrder는 주문 ID로 특정 주문을 조회합니다
func (c *Client) GetOrder(ctx context.Context, symbol string, orderID int64) (*domain.OrderResponse, error) {
	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("orderId", strconv.FormatInt(orderID, 10))

	resp, err := c.doRequest(ctx, http.MethodGet, "/fapi/v1/order", params, true)
	if err != nil {
		return nil, err
	}

	return parseOrderResponse(resp)
}

// GetOpenOrders는 현재 열린 주문 목록을 조회합니다.
// 심볼이 빈 문자열이면 모든 심볼의 주문을 반환합니다.
func (c *Client) GetOpenOrders(ctx context.Context, symbol string) ([]domain.OrderResponse, error) {
	params := url.Values{}
	if symbol != "" {
		params.Add("symbol", symbol)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, "/fapi/v1/openOrders", params, true)
	if err != nil {
		return nil, err
	}

	var ordersRaw []json.RawMessage
	if err := json.Unmarshal(resp, &ordersRaw); err != nil {
		return nil, fmt.Errorf("주문 데이터 파싱 실패: %w", err)
	}

	orders := make([]domain.OrderResponse, 0, len(ordersRaw))
	for _, raw := range ordersRaw {
		order, err := parseOrderResponse(raw)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}

	return orders, nil
}

// GetBalances는 계정의 자산 잔고 목록을 조회합니다
func (c *Client) GetBalances(ctx context.Context) ([]domain.Balance, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/fapi/v2/account", nil, true)
	if err != nil {
		return nil, err
	}

	var result struct {
		Assets []json.RawMessage `json:"assets"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("잔고 응답 파싱 실패: %w", err)
	}

	balances := make([]domain.Balance, 0, len(result.Assets))
	for _, rawAsset := range result.Assets {
		var asset struct {
			Asset            string `json:"asset"`
			WalletBalance    string `json:"walletBalance"`
			AvailableBalance string `json:"availableBalance"`
			UnrealizedProfit string `json:"unrealizedProfit"`
		}
		if err := json.Unmarshal(rawAsset, &asset); err != nil {
			return nil, fmt.Errorf("잔고 데이터 파싱 실패: %w", err)
		}

		var raw map[string]any
		if err := json.Unmarshal(rawAsset, &raw); err != nil {
			return nil, fmt.Errorf("잔고 데이터 파싱 실패: %w", err)
		}

		balances = append(balances, domain.Balance{
			Asset:            asset.Asset,
			WalletBalance:    asset.WalletBalance,
			AvailableBalance: asset.AvailableBalance,
			UnrealizedProfit: asset.UnrealizedProfit,
			Raw:              raw,
		})
	}

	return balances, nil
}

// GetSymbolInfo는 특정 심볼의 거래 규칙 정보를 조회합니다 (서명 불필요).
// 정밀도 필터는 여기서 조회만 할 뿐, 로컬 검증에는 사용하지 않습니다.
func (c *Client) GetSymbolInfo(ctx context.Context, symbol string) (*domain.SymbolInfo, error) {
	params := url.Values{}
	params.Add("symbol", symbol)

	resp, err := c.doRequest(ctx, http.MethodGet, "/fapi/v1/exchangeInfo", params, false)
	if err != nil {
		return nil, err
	}

	var exchangeInfo struct {
		Symbols []struct {
			Symbol            string `json:"symbol"`
			PricePrecision    int    `json:"pricePrecision"`
			QuantityPrecision int    `json:"quantityPrecision"`
			Filters           []struct {
				FilterType  string `json:"filterType"`
				StepSize    string `json:"stepSize,omitempty"`
				TickSize    string `json:"tickSize,omitempty"`
				MinNotional string `json:"notional,omitempty"`
			} `json:"filters"`
		} `json:"symbols"`
	}

	if err := json.Unmarshal(resp, &exchangeInfo); err != nil {
		return nil, fmt.Errorf("심볼 정보 파싱 실패: %w", err)
	}

	if len(exchangeInfo.Symbols) == 0 {
		return nil, fmt.Errorf("심볼 정보를 찾을 수 없음: %s", symbol)
	}

	s := exchangeInfo.Symbols[0]
	info := &domain.SymbolInfo{
		Symbol:            symbol,
		PricePrecision:    s.PricePrecision,
		QuantityPrecision: s.QuantityPrecision,
	}

	// 필터 정보 추출
	for _, filter := range s.Filters {
		switch filter.FilterType {
		case "LOT_SIZE": // 수량 단위 필터
			if v, err := strconv.ParseFloat(filter.StepSize, 64); err == nil {
				info.StepSize = v
			}
		case "PRICE_FILTER": // 가격 단위 필터
			if v, err := strconv.ParseFloat(filter.TickSize, 64); err == nil {
				info.TickSize = v
			}
		case "MIN_NOTIONAL": // 최소 주문 가치 필터
			if v, err := strconv.ParseFloat(filter.MinNotional, 64); err == nil {
				info.MinNotional = v
			}
		}
	}

	return info, nil
}

// parseOrderResponse는 주문 응답을 도메인 모델로 변환합니다.
// 알 수 없는 필드는 버리지 않고 Raw에 그대로 보존하여 포매터가 표시할 수 있게 합니다.
func parseOrderResponse(body []byte) (*domain.OrderResponse, error) {
	var result struct {
		OrderID       int64  `json:"orderId"`
		Symbol        string `json:"symbol"`
		Status        string `json:"status"`
		ClientOrderID string `json:"clientOrderId"`
		Price         string `json:"price"`
		AvgPrice      string `json:"avgPrice"`
		OrigQty       string `json:"origQty"`
		ExecutedQty   string `json:"executedQty"`
		Side          string `json:"side"`
		PositionSide  string `json:"positionSide"`
		Type          string `json:"type"`
		TimeInForce   string `json:"timeInForce"`
		UpdateTime    int64  `json:"updateTime"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("주문 응답 파싱 실패: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("주문 응답 파싱 실패: %w", err)
	}

	return &domain.OrderResponse{
		OrderID:          result.OrderID,
		Symbol:           result.Symbol,
		Status:           result.Status,
		ClientOrderID:    result.ClientOrderID,
		Price:            result.Price,
		AvgPrice:         result.AvgPrice,
		OrigQuantity:     result.OrigQty,
		ExecutedQuantity: result.ExecutedQty,
		Side:             domain.OrderSide(result.Side),
		PositionSide:     domain.PositionSide(result.PositionSide),
		Type:             domain.OrderType(result.Type),
		TimeInForce:      result.TimeInForce,
		UpdateTime:       time.Unix(0, result.UpdateTime*int64(time.Millisecond)),
		Raw:              raw,
	}, nil
}
