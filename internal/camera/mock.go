package camera

import (
	"errors"
	"sync"
)

// ErrNoMoreFrames はMockSourceが用意されたフレームを使い切ったときに返される
var ErrNoMoreFrames = errors.New("モック: フレームがありません")

// MockSource はテスト用のSource実装
// 登録されたフレームを順番に返し、使い切った後はエラーを返す
type MockSource struct {
	frames [][]byte
	err    error
	reads  int
	mu     sync.Mutex
}

// NewMockSource は新しいMockSourceを作成する
func NewMockSource(frames ...[]byte) *MockSource {
	return &MockSource{
		frames: frames,
		err:    ErrNoMoreFrames,
	}
}

// ReadFrame は次のフレームを返す
func (m *MockSource) ReadFrame() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.reads >= len(m.frames) {
		m.reads++
		return nil, m.err
	}

	frame := m.frames[m.reads]
	m.reads++
	return frame, nil
}

// Reads は読み込みが行われた回数を返す
func (m *MockSource) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// SetError はフレームを使い切った後に返すエラーを設定する
func (m *MockSource) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
