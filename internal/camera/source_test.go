package camera

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSource_ReadFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.jpg")
	first := []byte{0xFF, 0xD8, 0x01, 0xFF, 0xD9}
	if err := os.WriteFile(path, first, 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}

	source := NewFileSource(path)

	data, err := source.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}
	if !bytes.Equal(data, first) {
		t.Errorf("Expected %v, got %v", first, data)
	}

	// 外部プロセスによる上書きは次の読み込みで反映される
	second := []byte{0xFF, 0xD8, 0x02, 0x03, 0x04, 0xFF, 0xD9}
	if err := os.WriteFile(path, second, 0o644); err != nil {
		t.Fatalf("failed to overwrite image: %v", err)
	}

	data, err = source.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}
	if !bytes.Equal(data, second) {
		t.Errorf("Expected updated image %v, got %v", second, data)
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	source := NewFileSource(filepath.Join(t.TempDir(), "missing.jpg"))

	_, err := source.ReadFrame()
	if err == nil {
		t.Fatal("Expected error for missing image")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist, got %v", err)
	}
}

func TestFileSource_RelativePathFollowsWorkingDirectory(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	if err := os.WriteFile(filepath.Join(dirA, "image.jpg"), []byte("A"), 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dirB, "image.jpg"), []byte("BB"), 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}

	source := NewFileSource("image.jpg")

	chdir(t, dirA)
	data, err := source.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}
	if string(data) != "A" {
		t.Errorf("Expected image from %s, got %q", dirA, data)
	}

	// カレントディレクトリの変更は次の読み込みに反映される
	chdir(t, dirB)
	data, err = source.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame failed: %v", err)
	}
	if string(data) != "BB" {
		t.Errorf("Expected image from %s, got %q", dirB, data)
	}

	resolved, err := source.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !filepath.IsAbs(resolved) || filepath.Base(resolved) != "image.jpg" {
		t.Errorf("Expected absolute path, got %s", resolved)
	}
}

func TestMockSource(t *testing.T) {
	source := NewMockSource([]byte("one"), []byte("two"))

	for _, want := range []string{"one", "two"} {
		data, err := source.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame failed: %v", err)
		}
		if string(data) != want {
			t.Errorf("Expected %q, got %q", want, data)
		}
	}

	if _, err := source.ReadFrame(); !errors.Is(err, ErrNoMoreFrames) {
		t.Errorf("Expected ErrNoMoreFrames, got %v", err)
	}

	custom := errors.New("locked")
	source.SetError(custom)
	if _, err := source.ReadFrame(); !errors.Is(err, custom) {
		t.Errorf("Expected custom error, got %v", err)
	}

	if source.Reads() != 4 {
		t.Errorf("Expected 4 reads, got %d", source.Reads())
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatalf("failed to restore working directory: %v", err)
		}
	})
}
