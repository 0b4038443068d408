package binance

import "fmt"

// APIError는 거래소가 요청을 수신한 뒤 거부했음을 나타냅니다.
// 거래소의 숫자 코드와 메시지를 재해석 없이 그대로 보존하며, 재시도하지 않습니다.
type APIError struct {
	Code       int    // 거래소 에러 코드 (예: -1111, -2011)
	Message    string // 거래소 에러 메시지 원문
	HTTPStatus int    // HTTP 상태 코드
}

// Error는 error 인터페이스를 구현합니다
func (e *APIError) Error() string {
	return fmt.Sprintf("바이낸스 API 에러 (코드: %d): %s", e.Code, e.Message)
}

// TransportError는 재시도가 모두 소진된 뒤의 네트워크/전송 계층 실패를 나타냅니다
type TransportError struct {
	Method   string // HTTP 메서드
	Endpoint string // API 경로
	Attempts int    // 수행한 총 시도 횟수
	Err      error  // 마지막으로 관측된 원인
}

// Error는 error 인터페이스를 구현합니다
func (e *TransportError) Error() string {
	return fmt.Sprintf("요청 실패 [%s %s, 시도 %d회]: %v", e.Method, e.Endpoint, e.Attempts, e.Err)
}

// Unwrap은 내부 에러를 반환합니다 (errors.Is/As 지원을 위함)
func (e *TransportError) Unwrap() error {
	return e.Err
}
