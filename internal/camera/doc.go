// Package camera 配信元となるカメラ画像へのアクセスを担う
//
// # 責務
// - 外部のキャプチャプロセスが上書きする画像ファイルの読み込み
// - 読み込みごとのパス解決（相対パスはカレントディレクトリ基準）
//
// # 仕様
// - 画像の生成・更新は行わない。読み取り専用
// - キャッシュを持たず、毎回ファイルシステムから読み直す
// - 書き込み側とのロックは取らない。読み込み途中で上書きされた内容もそのまま返す
// - テスト用に MockSource を提供する
package camera
