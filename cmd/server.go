// Package main はMJPEG配信サーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"mjpegsrv/internal/api"
	"mjpegsrv/internal/config"
	"mjpegsrv/internal/server"

	"github.com/goccy/go-json"
)

func main() {
	// コマンドラインオプション
	var (
		host       = flag.String("host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
		port       = flag.Int("port", 0, "サーバーのポート (デフォルト: 60000)")
		configFile = flag.String("config", "", "YAML設定ファイルのパス")
		image      = flag.String("image", "", "配信する画像ファイル (デフォルト: image.jpg)")
		openapi    = flag.Bool("openapi", false, "OpenAPI定義をJSONで出力して終了")
		help       = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("mjpegsrv")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("リクエスト:")
		fmt.Println("  /?action=snapshot        静止画を1枚返す")
		fmt.Println("  /?action=stream&fps=30   MJPEGストリームを配信する")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	ctx := context.Background()

	if *openapi {
		if err := printOpenAPI(ctx); err != nil {
			log.Fatalf("OpenAPI定義の出力に失敗しました: %v", err)
		}
		return
	}

	// 設定を読み込む
	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コマンドラインオプションで設定を上書き
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *image != "" {
		cfg.Stream.ImagePath = *image
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定が無効です: %v", err)
	}

	srv := server.New(cfg)

	// サーバーを起動
	log.Printf("MJPEGサーバーを起動します: %s (画像: %s)", cfg.ServerAddress(), cfg.Stream.ImagePath)
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}

// loadConfig は設定ファイルの指定があればそれを、無ければ環境変数から設定を読み込む
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// printOpenAPI はOpenAPI定義を検証してJSONで出力する
func printOpenAPI(ctx context.Context) error {
	doc, err := api.Load(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("JSONへの変換に失敗: %w", err)
	}

	fmt.Println(string(data))
	return nil
}
