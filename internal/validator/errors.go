package validator

import "fmt"

// ValidationError는 네트워크 호출 전에 발견된 주문 파라미터 오류를 나타냅니다
type ValidationError struct {
	Field  string // 문제가 된 필드 이름
	Value  string // 입력된 값
	Reason string // 사람이 읽을 수 있는 실패 이유
}

// Error는 error 인터페이스를 구현합니다
func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("검증 실패 [%s=%q]: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("검증 실패 [%s]: %s", e.Field, e.Reason)
}
