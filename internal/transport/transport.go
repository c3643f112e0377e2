// Package transport moves DIS traffic and capture files. Endpoint sends and
// receives PDUs over UDP. Transport runs commands and copies files either
// locally or on a remote sensor over SSH, which is how captures taken
// elsewhere on the exercise network are collected.
package transport

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/tturner/disgo/internal/config"
)

// Transport runs commands and reads files on the host a capture is taken
// on: this machine, or a sensor reached over SSH.
type Transport interface {
	// Run executes argv and collects its output. A non-zero exit is
	// reported in Result, not as an error.
	Run(ctx context.Context, argv []string) (Result, error)

	// Stream executes argv with its output copied to stdout and stderr as
	// it is produced, for example tcpdump writing a capture to "-".
	Stream(ctx context.Context, argv []string, stdout, stderr io.Writer) (exitCode int, err error)

	Stat(ctx context.Context, path string) (os.FileInfo, error)

	// Get copies the file at path on the sensor to local.
	Get(ctx context.Context, path, local string) error

	Remove(ctx context.Context, path string) error
	Close() error

	// String names the sensor, "local" or ssh://user@host:port.
	String() string
}

// Result is the outcome of Run.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Options applies to every transport.
type Options struct {
	Timeout time.Duration // limit for Run; Stream is bounded only by ctx
}

func DefaultOptions() Options {
	return Options{Timeout: 5 * time.Minute}
}

// SSHOptions configures a sensor reached over SSH.
type SSHOptions struct {
	Options

	User          string
	KeyFile       string
	KeyPassphrase string
	Agent         bool // try keys held by ssh-agent first

	// Password is offered only when AllowPassword is set.
	Password      string
	AllowPassword bool

	KnownHostsFile     string // default ~/.ssh/known_hosts
	InsecureIgnoreHost bool

	Port           int
	ConnectTimeout time.Duration
	KeepAlive      time.Duration

	// Elevate prefixes commands with sudo; tcpdump usually needs it.
	Elevate bool
}

func DefaultSSHOptions() SSHOptions {
	return SSHOptions{
		Options:        DefaultOptions(),
		Agent:          true,
		Port:           22,
		ConnectTimeout: 30 * time.Second,
		KeepAlive:      30 * time.Second,
	}
}

// SSHOptionsFrom builds SSH options from the capture.remote section of a
// config file.
func SSHOptionsFrom(r config.RemoteConfig) SSHOptions {
	opts := DefaultSSHOptions()
	opts.User = r.User
	if r.Port != 0 {
		opts.Port = r.Port
	}
	opts.KeyFile = r.KeyFile
	opts.KnownHostsFile = r.KnownHostsFile
	opts.InsecureIgnoreHost = r.Insecure
	opts.Elevate = r.Elevate
	return opts
}
