package notification

import "github.com/assist-by/griffin/internal/domain"

// 알림 색상 코드
const (
	ColorSuccess = 0x00FF00 // 녹색
	ColorError   = 0xFF0000 // 빨간색
	ColorInfo    = 0x0000FF // 파란색
)

// Notifier는 알림 전송 인터페이스를 정의합니다.
// 알림 실패는 작업 자체를 실패시키지 않습니다.
type Notifier interface {
	// SendOrder는 주문 실행/취소 결과 알림을 전송합니다
	SendOrder(action string, order *domain.OrderResponse) error

	// SendError는 에러 알림을 전송합니다
	SendError(err error) error

	// SendInfo는 일반 정보 알림을 전송합니다
	SendInfo(message string) error
}
