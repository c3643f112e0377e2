package transport

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/tturner/disgo/internal/config"
)

// exitTimedOut is the status timeout(1) returns when it stops tcpdump.
const exitTimedOut = 124

// CaptureSpec describes a tcpdump run on a sensor host.
type CaptureSpec struct {
	Interface string        // capture interface, default "any"
	Port      int           // DIS UDP port, default 3000
	Snaplen   int           // default 65535
	Duration  time.Duration // stop after this long; 0 relies on Count
	Count     int           // stop after this many packets; 0 = no limit
	RemoteDir string        // where the capture file is written, default /tmp
}

func (c *CaptureSpec) applyDefaults() {
	if c.Interface == "" {
		c.Interface = "any"
	}
	if c.Port == 0 {
		c.Port = config.DefaultPort
	}
	if c.Snaplen == 0 {
		c.Snaplen = config.DefaultSnaplen
	}
	if c.RemoteDir == "" {
		c.RemoteDir = "/tmp"
	}
}

// Validate reports a spec that would never stop on its own.
func (c CaptureSpec) Validate() error {
	if c.Duration <= 0 && c.Count <= 0 {
		return fmt.Errorf("capture needs a duration or a packet count")
	}
	if c.Duration > 0 && c.Duration < time.Second {
		return fmt.Errorf("capture duration %s is shorter than one second", c.Duration)
	}
	return nil
}

// Command returns the tcpdump argv that writes DIS traffic to file.
func (c CaptureSpec) Command(file string) []string {
	c.applyDefaults()
	var cmd []string
	if c.Duration > 0 {
		cmd = append(cmd, "timeout", strconv.Itoa(int(c.Duration/time.Second)))
	}
	cmd = append(cmd, "tcpdump", "-i", c.Interface, "-s", strconv.Itoa(c.Snaplen), "-U", "-w", file)
	if c.Count > 0 {
		cmd = append(cmd, "-c", strconv.Itoa(c.Count))
	}
	return append(cmd, "udp", "port", strconv.Itoa(c.Port))
}

// CheckSensor reports the tcpdump version on the sensor, or why it cannot
// be run there.
func CheckSensor(ctx context.Context, t Transport) (string, error) {
	res, err := t.Run(ctx, []string{"tcpdump", "--version"})
	if err != nil {
		return "", fmt.Errorf("reach %s: %w", t, err)
	}
	out := strings.TrimSpace(res.Stdout + "\n" + res.Stderr)
	if res.ExitCode != 0 {
		return "", fmt.Errorf("tcpdump not usable on %s (exit %d): %s", t, res.ExitCode, out)
	}
	line, _, _ := strings.Cut(out, "\n")
	return line, nil
}

// Capture runs tcpdump through t, copies the capture to local and removes
// the remote file.
func Capture(ctx context.Context, t Transport, spec CaptureSpec, local string) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	spec.applyDefaults()
	remote := path.Join(spec.RemoteDir, fmt.Sprintf("disgo-%d.pcap", time.Now().UnixNano()))

	var stderr strings.Builder
	code, err := t.Stream(ctx, spec.Command(remote), io.Discard, &stderr)
	if err != nil {
		return fmt.Errorf("run tcpdump on %s: %w", t, err)
	}
	if code != 0 && code != exitTimedOut {
		return fmt.Errorf("tcpdump on %s exited %d: %s", t, code, strings.TrimSpace(stderr.String()))
	}
	defer t.Remove(context.WithoutCancel(ctx), remote)

	return Fetch(ctx, t, remote, local)
}

// Stream runs tcpdump through t writing the capture to w as packets
// arrive, until ctx is done or the spec's count is reached. Duration is
// ignored; the caller bounds the run with ctx.
func Stream(ctx context.Context, t Transport, spec CaptureSpec, w io.Writer) error {
	spec.Duration = 0
	var stderr strings.Builder
	code, err := t.Stream(ctx, spec.Command("-"), w, &stderr)
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("run tcpdump on %s: %w", t, err)
	}
	if code != 0 {
		return fmt.Errorf("tcpdump on %s exited %d: %s", t, code, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Fetch copies the capture file remote to local.
func Fetch(ctx context.Context, t Transport, remote, local string) error {
	info, err := t.Stat(ctx, remote)
	if err != nil {
		return fmt.Errorf("stat %s on %s: %w", remote, t, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s on %s is a directory", remote, t)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s on %s is empty", remote, t)
	}
	if err := t.Get(ctx, remote, local); err != nil {
		return fmt.Errorf("copy %s from %s: %w", remote, t, err)
	}
	return nil
}

// FetchCapture copies a capture file from host over SSH.
func FetchCapture(ctx context.Context, host, remote, local string, opts SSHOptions) error {
	s, err := NewSSH(host, opts)
	if err != nil {
		return err
	}
	defer s.Close()
	return Fetch(ctx, s, remote, local)
}
