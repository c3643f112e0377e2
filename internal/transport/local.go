package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// Local runs tcpdump and reads captures on this host.
type Local struct {
	opts Options
}

func NewLocal(opts Options) *Local {
	return &Local{opts: opts}
}

func (l *Local) Run(ctx context.Context, argv []string) (Result, error) {
	if l.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.opts.Timeout)
		defer cancel()
	}
	var stdout, stderr bytes.Buffer
	code, err := l.Stream(ctx, argv, &stdout, &stderr)
	return Result{ExitCode: code, Stdout: stdout.String(), Stderr: stderr.String()}, err
}

func (l *Local) Stream(ctx context.Context, argv []string, stdout, stderr io.Writer) (int, error) {
	if len(argv) == 0 {
		return -1, fmt.Errorf("empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case ctx.Err() != nil:
		return -1, ctx.Err()
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

func (l *Local) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (l *Local) Get(ctx context.Context, path, local string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	return writeLocal(local, src)
}

func (l *Local) Remove(ctx context.Context, path string) error {
	return os.Remove(path)
}

func (l *Local) Close() error { return nil }

func (l *Local) String() string { return "local" }

// writeLocal copies r into the file local, creating its directory.
func writeLocal(local string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(local), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	f, err := os.Create(local)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("copy: %w", err)
	}
	return f.Close()
}

var _ Transport = (*Local)(nil)
