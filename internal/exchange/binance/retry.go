package binance

import (
	"net/http"
	"strconv"
	"time"
)

// failureClass는 요청 실패의 재시도 가능 여부 분류를 정의합니다
type failureClass int

const (
	nonRetryable     failureClass = iota // HTTP 4xx — 재시도해도 성공할 수 없음
	transientNetwork                     // 연결 거부, 타임아웃, DNS 실패 등
	transientServer                      // HTTP 5xx 및 429
)

// retryState는 하나의 논리적 요청 동안의 재시도 상태를 추적합니다.
// 요청마다 새로 생성되며 성공하거나 소진되면 버려집니다.
type retryState struct {
	attempts int           // 지금까지 수행한 시도 횟수
	max      int           // 최대 재시도 횟수 (총 시도 = max + 1)
	delay    time.Duration // 다음 재시도 전 대기 시간
}

func newRetryState(maxRetries int) *retryState {
	return &retryState{max: maxRetries, delay: time.Second}
}

// exhausted는 재시도 한도에 도달했는지 반환합니다
func (s *retryState) exhausted() bool {
	return s.attempts > s.max
}

// next는 이번 재시도 전 대기할 시간을 반환하고 다음 대기 시간을 두 배로 늘립니다.
// hint(예: Retry-After)가 현재 대기 시간보다 길면 hint를 따르지만,
// 짧으면 무시합니다 — 레이트 리밋 압력을 키우지 않기 위해 하한은 지킵니다.
func (s *retryState) next(hint time.Duration) time.Duration {
	d := s.delay
	if hint > d {
		d = hint
	}
	s.delay *= 2
	return d
}

// classifyStatus는 HTTP 상태 코드를 실패 분류로 변환합니다
func classifyStatus(status int) failureClass {
	switch {
	case status == http.StatusTooManyRequests:
		return transientServer
	case status >= 500:
		return transientServer
	default:
		return nonRetryable
	}
}

// retryAfterHint는 429 응답의 Retry-After 헤더를 대기 시간으로 해석합니다
func retryAfterHint(resp *http.Response) time.Duration {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return 0
	}
	seconds, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
