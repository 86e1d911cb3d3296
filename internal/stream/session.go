package stream

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Session は1つの接続に対する配信を表す
type Session struct {
	ID        string    // セッションの一意識別子
	Mode      Mode      // 配信モード
	FPS       int       // フレームレート（ストリームのみ）
	Remote    string    // クライアントのアドレス
	StartedAt time.Time // 配信開始時刻

	frames atomic.Int64
}

// SessionInfo はSessionの読み取り用コピー
type SessionInfo struct {
	ID        string
	Mode      Mode
	FPS       int
	Remote    string
	StartedAt time.Time
	Frames    int64
}

// Frames は書き込んだフレーム数を返す
func (s *Session) Frames() int64 {
	return s.frames.Load()
}

func (s *Session) countFrame() {
	s.frames.Add(1)
}

// Writer はフラッシュのたびにフレーム数を数えるResponseWriterを返す
// ストリームはフレームごとに1回だけフラッシュする
func (s *Session) Writer(w ResponseWriter) ResponseWriter {
	return &countingWriter{ResponseWriter: w, session: s}
}

type countingWriter struct {
	ResponseWriter
	session *Session
}

func (w *countingWriter) Flush() {
	w.ResponseWriter.Flush()
	w.session.countFrame()
}

// Info はセッションのコピーを返す
func (s *Session) Info() SessionInfo {
	return SessionInfo{
		ID:        s.ID,
		Mode:      s.Mode,
		FPS:       s.FPS,
		Remote:    s.Remote,
		StartedAt: s.StartedAt,
		Frames:    s.Frames(),
	}
}

// Tracker は配信中のセッションを管理する
// 同時接続数の上限は設けない
type Tracker struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewTracker は新しいTrackerを作成する
func NewTracker() *Tracker {
	return &Tracker{
		sessions: make(map[string]*Session),
	}
}

// Open はセッションを登録する
// fps はストリームの場合のみ解釈される
func (t *Tracker) Open(mode Mode, fps string, remote string) *Session {
	session := &Session{
		ID:        uuid.New().String(),
		Mode:      mode,
		Remote:    remote,
		StartedAt: time.Now(),
	}
	if mode == ModeStream {
		session.FPS = ParseFPS(fps)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[session.ID] = session

	return session
}

// Close はセッションを削除する
func (t *Tracker) Close(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, id)
}

// Count は配信中のセッション数を返す
func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.sessions)
}

// Sessions は配信中のセッション一覧を開始順で返す
func (t *Tracker) Sessions() []SessionInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	sessions := make([]SessionInfo, 0, len(t.sessions))
	for _, session := range t.sessions {
		sessions = append(sessions, session.Info())
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.Before(sessions[j].StartedAt)
	})

	return sessions
}
