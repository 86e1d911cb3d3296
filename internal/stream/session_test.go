package stream

import (
	"sync"
	"testing"
)

func TestTracker_OpenClose(t *testing.T) {
	tracker := NewTracker()

	snapshot := tracker.Open(ModeSnapshot, "30", "10.0.0.1:5000")
	stream := tracker.Open(ModeStream, "30", "10.0.0.2:5000")

	if snapshot.ID == "" || stream.ID == "" || snapshot.ID == stream.ID {
		t.Fatalf("Expected unique session IDs, got %q and %q", snapshot.ID, stream.ID)
	}
	// fpsはストリームのときだけ解釈する
	if snapshot.FPS != 0 {
		t.Errorf("Expected snapshot FPS 0, got %d", snapshot.FPS)
	}
	if stream.FPS != 30 {
		t.Errorf("Expected stream FPS 30, got %d", stream.FPS)
	}

	if tracker.Count() != 2 {
		t.Fatalf("Expected 2 sessions, got %d", tracker.Count())
	}

	seen := map[string]SessionInfo{}
	for _, info := range tracker.Sessions() {
		seen[info.ID] = info
	}
	if seen[stream.ID].Remote != "10.0.0.2:5000" || seen[stream.ID].Mode != ModeStream {
		t.Errorf("unexpected stream session info: %+v", seen[stream.ID])
	}
	if seen[snapshot.ID].Mode != ModeSnapshot {
		t.Errorf("unexpected snapshot session info: %+v", seen[snapshot.ID])
	}

	tracker.Close(snapshot.ID)
	if tracker.Count() != 1 {
		t.Fatalf("Expected 1 session after close, got %d", tracker.Count())
	}
	if tracker.Sessions()[0].ID != stream.ID {
		t.Errorf("Expected remaining session %s", stream.ID)
	}

	// 存在しないIDのCloseは何もしない
	tracker.Close("unknown")
	if tracker.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", tracker.Count())
	}
}

func TestTracker_Concurrent(t *testing.T) {
	tracker := NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session := tracker.Open(ModeStream, "", "client")
			session.countFrame()
			_ = tracker.Sessions()
			tracker.Close(session.ID)
		}()
	}
	wg.Wait()

	if tracker.Count() != 0 {
		t.Errorf("Expected no sessions, got %d", tracker.Count())
	}
}
