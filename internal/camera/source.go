package camera

import (
	"fmt"
	"os"
	"path/filepath"
)

// Source は配信する最新のJPEG画像を提供するインターフェース
type Source interface {
	// ReadFrame は現在の画像全体を読み込む。呼び出しごとに最新の内容を返す
	ReadFrame() ([]byte, error)
}

// FileSource は外部プロセスが上書きする画像ファイルを読み込むSource実装
type FileSource struct {
	path string
}

// NewFileSource は新しいFileSourceを作成する
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Resolve は読み込み対象の絶対パスを返す
// 相対パスは呼び出し時点のカレントディレクトリから解決する
func (s *FileSource) Resolve() (string, error) {
	if filepath.IsAbs(s.path) {
		return s.path, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("カレントディレクトリの取得に失敗: %w", err)
	}
	return filepath.Join(wd, s.path), nil
}

// ReadFrame は画像ファイル全体を読み込む
// キャッシュは持たないため、ファイルの更新は次の呼び出しで反映される
func (s *FileSource) ReadFrame() ([]byte, error) {
	path, err := s.Resolve()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("画像 %s の読み込みに失敗: %w", path, err)
	}
	return data, nil
}
