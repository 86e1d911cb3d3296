package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mjpegsrv/internal/camera"
	"mjpegsrv/internal/config"
	"mjpegsrv/internal/stream"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	httpServer *http.Server
	router     *gin.Engine
	engine     *stream.Engine
	tracker    *stream.Tracker
}

// New は設定された画像ファイルを配信するServerを作成する
func New(cfg *config.Config) *Server {
	return NewWithSource(cfg, camera.NewFileSource(cfg.Stream.ImagePath))
}

// NewWithSource は任意のSourceを配信するServerを作成する
func NewWithSource(cfg *config.Config, source camera.Source) *Server {
	s := &Server{
		config:  cfg,
		router:  gin.New(),
		engine:  stream.NewEngine(source),
		tracker: stream.NewTracker(),
	}

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

// setupRoutes はHTTPルートを設定する
func (s *Server) setupRoutes() {
	s.router.Use(gin.Logger())

	// パスとメソッドは区別しないので、すべてのリクエストをNoRouteで受ける
	s.router.NoRoute(s.handleRequest)
}

// Handler はHTTPハンドラーを返す
func (s *Server) Handler() http.Handler {
	return s.router
}

// Tracker は配信中のセッションを返す
func (s *Server) Tracker() *stream.Tracker {
	return s.tracker
}

// Start はサーバーを起動する
// 接続ごとにnet/httpがゴルーチンを起動するため、長時間のストリームが受け付けを妨げることはない
func (s *Server) Start(ctx context.Context) error {
	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		log.Printf("HTTPサーバーを起動しています: %s", s.config.ServerAddress())
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			shutdownCh <- fmt.Errorf("サーバーの起動に失敗: %w", err)
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	case err := <-shutdownCh:
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
// ストリームは終わらないので、猶予を過ぎたら接続を閉じて書き込みを失敗させる
func (s *Server) Shutdown() error {
	log.Println("サーバーをシャットダウンしています...")

	timeout := s.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		log.Printf("配信中の接続を切断します: %d 件", s.tracker.Count())
		for _, session := range s.tracker.Sessions() {
			log.Printf("  id=%s mode=%s fps=%d remote=%s frames=%d", session.ID, session.Mode, session.FPS, session.Remote, session.Frames)
		}
		if err := s.httpServer.Close(); err != nil {
			return fmt.Errorf("サーバーの強制停止に失敗: %w", err)
		}
		log.Println("サーバーを強制的に停止しました")
		return nil
	}
	if err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	log.Println("サーバーが正常にシャットダウンされました")
	return nil
}
