package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	osSignal "os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/assist-by/griffin/internal/config"
	"github.com/assist-by/griffin/internal/domain"
	"github.com/assist-by/griffin/internal/exchange/binance"
	"github.com/assist-by/griffin/internal/logging"
	"github.com/assist-by/griffin/internal/notification/discord"
	"github.com/assist-by/griffin/internal/trading"
	"github.com/assist-by/griffin/internal/validator"
)

const usageText = `사용법: trader <명령> [옵션]

명령:
  ping          거래소 연결 상태를 확인합니다
  place-order   새 주문을 실행합니다 (MARKET | LIMIT | STOP_MARKET)
  cancel-order  주문 ID로 열린 주문을 취소합니다
  order         주문 ID로 주문 상태를 조회합니다
  open-orders   열린 주문 목록을 조회합니다
  account       계정 자산 잔고를 조회합니다
  symbol-info   심볼의 거래 규칙을 조회합니다

환경변수:
  BINANCE_API_KEY, BINANCE_API_SECRET (필수)
  BINANCE_BASE_URL (기본값: https://testnet.binancefuture.com)

예시:
  trader place-order -symbol BTCUSDT -side BUY -type MARKET -quantity 0.001
  trader place-order -symbol BTCUSDT -side SELL -type LIMIT -quantity 0.001 -price 100000
  trader cancel-order -symbol BTCUSDT -order-id 123456789
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	// 사용자 중단 시 진행 중인 요청과 재시도 대기를 함께 중단합니다
	ctx, stop := osSignal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	command := os.Args[1]
	args := os.Args[2:]

	if command == "help" || command == "-h" || command == "--help" {
		fmt.Print(usageText)
		return
	}

	app, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "설정 오류: %v\n", err)
		os.Exit(1)
	}

	switch command {
	case "ping":
		err = app.runPing(ctx)
	case "place-order":
		err = app.runPlaceOrder(ctx, args)
	case "cancel-order":
		err = app.runCancelOrder(ctx, args)
	case "order":
		err = app.runGetOrder(ctx, args)
	case "open-orders":
		err = app.runOpenOrders(ctx, args)
	case "account":
		err = app.runAccount(ctx, args)
	case "symbol-info":
		err = app.runSymbolInfo(ctx, args)
	default:
		fmt.Fprintf(os.Stderr, "알 수 없는 명령: %s\n\n", command)
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

// app은 CLI 명령 실행에 필요한 의존성을 묶습니다
type app struct {
	service *trading.Service
	log     *logrus.Logger
}

// newApp은 설정을 로드하고 로깅, 클라이언트, 서비스 계층을 조립합니다
func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	log := logging.Setup(cfg)

	client := binance.NewClient(
		cfg.Binance.APIKey,
		cfg.Binance.SecretKey,
		binance.WithBaseURL(cfg.Binance.BaseURL),
		binance.WithTimeout(cfg.HTTP.Timeout),
		binance.WithLogger(log),
	)

	opts := []trading.ServiceOption{trading.WithLogger(log)}
	if cfg.Discord.TradeWebhook != "" || cfg.Discord.ErrorWebhook != "" {
		opts = append(opts, trading.WithNotifier(
			discord.NewClient(cfg.Discord.TradeWebhook, cfg.Discord.ErrorWebhook),
		))
	}

	return &app{
		service: trading.NewService(client, opts...),
		log:     log,
	}, nil
}

// syncTime은 서명된 요청 전에 서버 시간을 동기화합니다 (실패해도 계속 진행)
func (a *app) syncTime(ctx context.Context) {
	if err := a.service.SyncTime(ctx); err != nil {
		a.log.Warnf("서버 시간 동기화 실패: %v", err)
	}
}

func (a *app) runPing(ctx context.Context) error {
	if err := a.service.Ping(ctx); err != nil {
		return err
	}
	fmt.Println("거래소에 연결할 수 있습니다.")
	return nil
}

func (a *app) runPlaceOrder(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("place-order", flag.ExitOnError)
	symbol := fs.String("symbol", "", "거래 심볼 (예: BTCUSDT)")
	side := fs.String("side", "", "주문 방향: BUY | SELL")
	orderType := fs.String("type", "", "주문 유형: MARKET | LIMIT | STOP_MARKET")
	quantity := fs.String("quantity", "", "주문 수량 (예: 0.001)")
	price := fs.String("price", "", "지정가(LIMIT) 또는 스탑 가격(STOP_MARKET)")
	tif := fs.String("tif", "", "주문 유효 기간: GTC | IOC | FOK (LIMIT 전용, 기본값 GTC)")
	reduceOnly := fs.Bool("reduce-only", false, "포지션 축소 전용 주문")
	clientOrderID := fs.String("client-order-id", "", "클라이언트 측 주문 ID (선택)")
	fs.Parse(args)

	a.syncTime(ctx)

	order, err := a.service.PlaceOrder(ctx, validator.RawOrder{
		Symbol:        *symbol,
		Side:          *side,
		Type:          *orderType,
		Quantity:      *quantity,
		Price:         *price,
		TimeInForce:   *tif,
		ReduceOnly:    *reduceOnly,
		ClientOrderID: *clientOrderID,
	})
	if err != nil {
		return err
	}

	printOrder("주문 실행 결과", order)
	return nil
}

func (a *app) runCancelOrder(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel-order", flag.ExitOnError)
	symbol := fs.String("symbol", "", "거래 심볼 (예: BTCUSDT)")
	orderID := fs.Int64("order-id", 0, "취소할 주문 ID")
	fs.Parse(args)

	a.syncTime(ctx)

	order, err := a.service.CancelOrder(ctx, *symbol, *orderID)
	if err != nil {
		return err
	}

	printOrder("주문 취소 결과", order)
	return nil
}

func (a *app) runGetOrder(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	symbol := fs.String("symbol", "", "거래 심볼 (예: BTCUSDT)")
	orderID := fs.Int64("order-id", 0, "조회할 주문 ID")
	fs.Parse(args)

	a.syncTime(ctx)

	order, err := a.service.GetOrder(ctx, *symbol, *orderID)
	if err != nil {
		return err
	}

	printOrder("주문 조회 결과", order)
	return nil
}

func (a *app) runOpenOrders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("open-orders", flag.ExitOnError)
	symbol := fs.String("symbol", "", "심볼 필터 (생략하면 전체)")
	fs.Parse(args)

	a.syncTime(ctx)

	orders, err := a.service.OpenOrders(ctx, *symbol)
	if err != nil {
		return err
	}

	if len(orders) == 0 {
		fmt.Println("열린 주문이 없습니다.")
		return nil
	}

	fmt.Println(strings.Repeat("═", 70))
	fmt.Println("  열린 주문")
	fmt.Println(strings.Repeat("═", 70))
	for _, o := range orders {
		fmt.Printf("  ID: %-14d %-12s %-5s %-12s 수량=%s 가격=%s 상태=%s\n",
			o.OrderID, o.Symbol, o.Side, o.Type, o.OrigQuantity, o.Price, o.Status)
	}
	fmt.Println(strings.Repeat("═", 70))
	return nil
}

func (a *app) runAccount(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("account", flag.ExitOnError)
	showAll := fs.Bool("show-all", false, "잔고가 0인 자산도 표시")
	fs.Parse(args)

	a.syncTime(ctx)

	balances, err := a.service.Balances(ctx, *showAll)
	if err != nil {
		return err
	}

	fmt.Println(strings.Repeat("═", 60))
	fmt.Println("  계정 잔고")
	fmt.Println(strings.Repeat("═", 60))
	for _, b := range balances {
		fmt.Printf("  %-10s 지갑: %-16s 미실현 손익: %s\n",
			b.Asset, b.WalletBalance, b.UnrealizedProfit)
	}
	fmt.Println(strings.Repeat("═", 60))
	return nil
}

func (a *app) runSymbolInfo(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("symbol-info", flag.ExitOnError)
	symbol := fs.String("symbol", "", "거래 심볼 (예: BTCUSDT)")
	fs.Parse(args)

	info, err := a.service.SymbolInfo(ctx, *symbol)
	if err != nil {
		return err
	}

	fmt.Println(strings.Repeat("─", 55))
	fmt.Printf("  심볼         : %s\n", info.Symbol)
	fmt.Printf("  수량 단위    : %g\n", info.StepSize)
	fmt.Printf("  가격 단위    : %g\n", info.TickSize)
	fmt.Printf("  최소 주문가치: %g\n", info.MinNotional)
	fmt.Printf("  가격 정밀도  : %d\n", info.PricePrecision)
	fmt.Printf("  수량 정밀도  : %d\n", info.QuantityPrecision)
	fmt.Println(strings.Repeat("─", 55))
	return nil
}

// printOrder는 주문 응답을 사람이 읽을 수 있는 형태로 출력합니다
func printOrder(title string, o *domain.OrderResponse) {
	fmt.Println(strings.Repeat("─", 55))
	fmt.Printf("  %s\n", title)
	fmt.Println(strings.Repeat("─", 55))
	fmt.Printf("  주문 ID    : %d\n", o.OrderID)
	fmt.Printf("  심볼       : %s\n", o.Symbol)
	fmt.Printf("  방향       : %s\n", o.Side)
	fmt.Printf("  유형       : %s\n", o.Type)
	fmt.Printf("  상태       : %s\n", o.Status)
	fmt.Printf("  주문 수량  : %s\n", o.OrigQuantity)
	fmt.Printf("  체결 수량  : %s\n", o.ExecutedQuantity)
	if o.AvgPrice != "" && o.AvgPrice != "0" {
		fmt.Printf("  평균 체결가: %s\n", o.AvgPrice)
	}
	if o.Price != "" && o.Price != "0" {
		fmt.Printf("  지정가     : %s\n", o.Price)
	}
	fmt.Println(strings.Repeat("─", 55))
}

// printError는 에러 종류에 따라 한 줄 진단 메시지를 출력합니다
func printError(err error) {
	var vErr *validator.ValidationError
	var apiErr *binance.APIError
	var tErr *binance.TransportError

	switch {
	case errors.As(err, &vErr):
		fmt.Fprintf(os.Stderr, "입력 오류: %v\n", vErr)
	case errors.As(err, &apiErr):
		fmt.Fprintf(os.Stderr, "거래소 거부 (코드 %d): %s\n", apiErr.Code, apiErr.Message)
	case errors.As(err, &tErr):
		fmt.Fprintf(os.Stderr, "네트워크 오류: %v\n", tErr)
	default:
		fmt.Fprintf(os.Stderr, "오류: %v\n", err)
	}
}
