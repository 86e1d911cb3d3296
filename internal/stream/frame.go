package stream

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Mode はリクエストの配信モードを表す
type Mode string

const (
	ModeSnapshot Mode = "snapshot" // 静止画を1枚返す
	ModeStream   Mode = "stream"   // MJPEGストリームを配信し続ける
)

const (
	// DefaultAction はactionパラメータが無いときの値
	DefaultAction = string(ModeSnapshot)

	// DefaultFPS はルーターがfpsパラメータ無しのときに渡す値
	DefaultFPS = "100"

	// FallbackFPS はfpsが解釈できないときにストリーム側で使う値
	// DefaultFPS とは別の値で、両方とも既存クライアントの挙動に合わせている
	FallbackFPS = 2

	// Boundary はマルチパートの区切り文字列
	Boundary = "--myboundary"

	// StreamContentType はストリームレスポンスのContent-Type
	StreamContentType = "multipart/x-mixed-replace; boundary=" + Boundary

	// ImageContentType は画像1枚のContent-Type
	ImageContentType = "image/jpeg"
)

// ParseAction はactionパラメータを配信モードに変換する
// "stream" 以外はすべてスナップショットとして扱う
func ParseAction(action string) Mode {
	if action == string(ModeStream) {
		return ModeStream
	}
	return ModeSnapshot
}

// ParseFPS はfpsパラメータを正の整数として解釈する
// 解釈できない値や0以下の値は FallbackFPS になる
func ParseFPS(fps string) int {
	// 32ビットに収まらない値も解釈できないものとして扱う
	n, err := strconv.ParseInt(strings.TrimSpace(fps), 10, 32)
	if err != nil || n <= 0 {
		return FallbackFPS
	}
	return int(n)
}

// FrameDelay はフレーム間の待ち時間を返す
// ミリ秒単位の整数除算なので、1000fpsを超えると0（待ちなし）になる
func FrameDelay(fps int) time.Duration {
	if fps <= 0 {
		fps = FallbackFPS
	}
	return time.Duration(1000/fps) * time.Millisecond
}

// FrameHeader は画像サイズnのフレームの先頭に付けるヘッダーを返す
func FrameHeader(n int) []byte {
	return []byte(fmt.Sprintf("\r\n%s\r\nContent-Length: %d\r\nContent-Type: %s\r\n\r\n", Boundary, n, ImageContentType))
}
