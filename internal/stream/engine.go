package stream

import (
	"fmt"
	"net/http"
	"time"

	"mjpegsrv/internal/camera"
)

// ResponseWriter は配信先のレスポンス
// gin.ResponseWriter と httptest.ResponseRecorder はどちらもこれを満たす
type ResponseWriter interface {
	http.ResponseWriter
	http.Flusher
}

// Engine はスナップショットとMJPEGストリームの配信を行う
type Engine struct {
	source camera.Source

	// sleep はフレーム間の待機。ゴルーチンだけを停止させ、他の接続は止めない
	sleep func(time.Duration)
}

// NewEngine は新しいEngineを作成する
func NewEngine(source camera.Source) *Engine {
	return &Engine{
		source: source,
		sleep:  time.Sleep,
	}
}

// Snapshot は現在の画像を1枚だけ書き込む
// 画像全体を読み込んでから書き込むため、読み込みに失敗したときは何も書かれない
func (e *Engine) Snapshot(w ResponseWriter) error {
	image, err := e.source.ReadFrame()
	if err != nil {
		return fmt.Errorf("スナップショットの取得に失敗: %w", err)
	}

	w.Header().Set("Content-Type", ImageContentType)
	if _, err := w.Write(image); err != nil {
		return fmt.Errorf("スナップショットの書き込みに失敗: %w", err)
	}
	w.Flush()

	return nil
}

// Stream はMJPEGストリームを配信する
// 画像の読み込みか書き込みに失敗するまで戻らない
func (e *Engine) Stream(w ResponseWriter, fps string) error {
	delay := FrameDelay(ParseFPS(fps))

	// Content-Lengthを設定しないので、HTTP/1.1ではチャンク転送になる
	w.Header().Set("Content-Type", StreamContentType)

	for {
		// 毎回ファイルから読み直す
		image, err := e.source.ReadFrame()
		if err != nil {
			return fmt.Errorf("フレームの取得に失敗: %w", err)
		}

		// ヘッダーと画像を順に書き込む
		if _, err := w.Write(FrameHeader(len(image))); err != nil {
			return fmt.Errorf("フレームヘッダーの書き込みに失敗: %w", err)
		}
		if _, err := w.Write(image); err != nil {
			return fmt.Errorf("フレームの書き込みに失敗: %w", err)
		}

		// 待機の前に送信する
		w.Flush()

		e.sleep(delay)
	}
}
