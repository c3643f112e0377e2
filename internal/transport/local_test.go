package transport

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLocalRun(t *testing.T) {
	l := NewLocal(DefaultOptions())
	ctx := context.Background()

	tests := []struct {
		name       string
		argv       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"echo", []string{"echo", "hello"}, 0, "hello\n", ""},
		{"exit status", []string{"sh", "-c", "exit 42"}, 42, "", ""},
		{"stderr", []string{"sh", "-c", "echo oops >&2; exit 1"}, 1, "", "oops\n"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			res, err := l.Run(ctx, tt.argv)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if res.ExitCode != tt.wantCode || res.Stdout != tt.wantStdout || res.Stderr != tt.wantStderr {
				t.Errorf("Run() = %+v, want code %d stdout %q stderr %q", res, tt.wantCode, tt.wantStdout, tt.wantStderr)
			}
		})
	}

	if _, err := l.Run(ctx, nil); err == nil {
		t.Error("Run(nil) should fail")
	}
}

func TestLocalRunTimeout(t *testing.T) {
	l := NewLocal(Options{Timeout: 100 * time.Millisecond})
	start := time.Now()
	_, err := l.Run(context.Background(), []string{"sleep", "10"})
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Run() took %v, want about 100ms", elapsed)
	}
	if err == nil {
		t.Error("Run() should report the timeout")
	}
}

func TestLocalStream(t *testing.T) {
	l := NewLocal(DefaultOptions())
	var stdout, stderr bytes.Buffer
	code, err := l.Stream(context.Background(), []string{"printf", "a\\nb\\n"}, &stdout, &stderr)
	if err != nil || code != 0 {
		t.Fatalf("Stream() = %d, %v", code, err)
	}
	if stdout.String() != "a\nb\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestLocalFiles(t *testing.T) {
	l := NewLocal(DefaultOptions())
	ctx := context.Background()
	dir := t.TempDir()

	src := filepath.Join(dir, "capture.pcap")
	if err := os.WriteFile(src, []byte("capture"), 0644); err != nil {
		t.Fatal(err)
	}

	info, err := l.Stat(ctx, src)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() != 7 || info.IsDir() {
		t.Errorf("Stat() = size %d dir %v", info.Size(), info.IsDir())
	}

	dst := filepath.Join(dir, "nested", "copy.pcap")
	if err := l.Get(ctx, src, dst); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got, _ := os.ReadFile(dst); string(got) != "capture" {
		t.Errorf("copied %q, want capture", got)
	}

	if err := l.Remove(ctx, src); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("file still exists after Remove()")
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
