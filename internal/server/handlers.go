package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"mjpegsrv/internal/stream"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// handleRequest はクエリパラメータから配信方法を選んで実行する
func (s *Server) handleRequest(c *gin.Context) {
	// NoRouteは404を設定済みなので上書きする
	c.Status(http.StatusOK)

	mode := stream.ParseAction(queryParam(c, "action", stream.DefaultAction))
	fps := ""
	if mode == stream.ModeStream {
		fps = queryParam(c, "fps", stream.DefaultFPS)
	}

	session := s.tracker.Open(mode, fps, c.Request.RemoteAddr)
	log.Printf("配信を開始しました: id=%s mode=%s fps=%d remote=%s", session.ID, session.Mode, session.FPS, session.Remote)

	err := s.deliver(c.Writer, session, fps)

	s.tracker.Close(session.ID)
	log.Printf("配信を終了しました: id=%s frames=%d duration=%s err=%v",
		session.ID, session.Frames(), time.Since(session.StartedAt).Round(time.Millisecond), err)

	if err != nil {
		// エラーはクライアントに返さず、接続を切るだけにする
		panic(http.ErrAbortHandler)
	}
}

// deliver はセッションのモードに応じて配信する
func (s *Server) deliver(w gin.ResponseWriter, session *stream.Session, fps string) error {
	switch session.Mode {
	case stream.ModeStream:
		return s.engine.Stream(session.Writer(w), fps)
	default:
		return s.engine.Snapshot(w)
	}
}

// queryParam はクエリパラメータを文字列として取得する
// デフォルト値を使うのは未指定のときだけ。同じ名前が複数あるときはカンマで連結して返す
func queryParam(c *gin.Context, name, defaultValue string) string {
	query := c.Request.URL.Query()
	values, found := query[name]
	if !found {
		return defaultValue
	}
	if len(values) > 1 {
		return strings.Join(values, ",")
	}

	value := defaultValue
	if err := runtime.BindQueryParameter("form", true, false, name, query, &value); err != nil {
		return values[0]
	}
	return value
}
