package binance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"time"
)

// recvWindow는 클라이언트와 서버 간 시계 오차 허용 범위(ms)입니다.
// 이 범위를 벗어난 요청은 서버가 거부합니다.
const recvWindow = "5000"

// signer는 요청 파라미터에 대한 HMAC-SHA256 서명을 생성합니다.
// I/O가 없는 순수 변환이며, 시간은 주입된 시계에서 읽습니다.
type signer struct {
	secret string
	now    func() time.Time
}

// signedQuery는 서명된 쿼리 문자열을 생성합니다.
// 직렬화는 url.Values.Encode의 키 정렬 순서를 정준 순서로 사용하므로
// 호출자가 파라미터를 추가한 순서는 서명에 영향을 주지 않습니다.
// 서명은 전송되는 문자열과 정확히 같은 바이트에 대해 계산되어야 하며,
// signature는 마지막 파라미터로 덧붙입니다.
func (s *signer) signedQuery(params url.Values) string {
	params.Set("timestamp", strconv.FormatInt(s.now().UnixMilli(), 10))
	params.Set("recvWindow", recvWindow)

	encoded := params.Encode()
	return encoded + "&signature=" + s.sign(encoded)
}

// sign은 주어진 페이로드의 HMAC-SHA256 16진수 서명을 반환합니다
func (s *signer) sign(payload string) string {
	h := hmac.New(sha256.New, []byte(s.secret))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}
