package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// SSH is a sensor host reached over SSH. Commands run in sessions and
// capture files are read over SFTP. The connection is opened on first use.
type SSH struct {
	opts SSHOptions
	host string

	mu     sync.Mutex
	client *ssh.Client
	sftp   *sftp.Client
}

func NewSSH(host string, opts SSHOptions) (*SSH, error) {
	if host == "" {
		return nil, fmt.Errorf("host is required")
	}
	if opts.Port == 0 {
		opts.Port = 22
	}
	return &SSH{opts: opts, host: host}, nil
}

func (s *SSH) addr() string {
	return net.JoinHostPort(s.host, strconv.Itoa(s.opts.Port))
}

func (s *SSH) dial() (*ssh.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}

	cfg, err := s.clientConfig()
	if err != nil {
		return nil, err
	}
	client, err := ssh.Dial("tcp", s.addr(), cfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", s, err)
	}
	s.client = client
	if s.opts.KeepAlive > 0 {
		go keepAlive(client, s.opts.KeepAlive)
	}
	return client, nil
}

func keepAlive(c *ssh.Client, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for range t.C {
		if _, _, err := c.SendRequest("keepalive@openssh.com", true, nil); err != nil {
			return
		}
	}
}

func (s *SSH) clientConfig() (*ssh.ClientConfig, error) {
	auth, err := s.authMethods()
	if err != nil {
		return nil, err
	}
	hostKeys, err := s.hostKeyCallback()
	if err != nil {
		return nil, err
	}
	return &ssh.ClientConfig{
		User:            s.user(),
		Auth:            auth,
		HostKeyCallback: hostKeys,
		Timeout:         s.opts.ConnectTimeout,
	}, nil
}

func (s *SSH) authMethods() ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod
	if s.opts.Agent {
		if m := agentAuth(); m != nil {
			methods = append(methods, m)
		}
	}
	switch {
	case s.opts.KeyFile != "":
		m, err := keyAuth(s.opts.KeyFile, s.opts.KeyPassphrase)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", s.opts.KeyFile, err)
		}
		methods = append(methods, m)
	case !s.opts.Agent:
		for _, path := range defaultKeys() {
			if m, err := keyAuth(path, ""); err == nil {
				methods = append(methods, m)
				break
			}
		}
	}
	if s.opts.AllowPassword && s.opts.Password != "" {
		methods = append(methods, ssh.Password(s.opts.Password))
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("no SSH credentials for %s (set a key file or run ssh-agent)", s)
	}
	return methods, nil
}

func (s *SSH) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if s.opts.InsecureIgnoreHost {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	file := s.opts.KnownHostsFile
	if file == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("no known_hosts file: %w", err)
		}
		file = filepath.Join(home, ".ssh", "known_hosts")
	}
	cb, err := knownhosts.New(file)
	if err != nil {
		return nil, fmt.Errorf("known_hosts %s: %w (or set insecure=true)", file, err)
	}
	return cb, nil
}

func (s *SSH) user() string {
	if s.opts.User != "" {
		return s.opts.User
	}
	for _, env := range []string{"USER", "USERNAME"} {
		if u := os.Getenv(env); u != "" {
			return u
		}
	}
	return "unknown"
}

func (s *SSH) files() (*sftp.Client, error) {
	client, err := s.dial()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sftp == nil {
		if s.sftp, err = sftp.NewClient(client); err != nil {
			return nil, fmt.Errorf("start SFTP on %s: %w", s, err)
		}
	}
	return s.sftp, nil
}

func (s *SSH) Run(ctx context.Context, argv []string) (Result, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}
	var stdout, stderr bytes.Buffer
	code, err := s.Stream(ctx, argv, &stdout, &stderr)
	return Result{ExitCode: code, Stdout: stdout.String(), Stderr: stderr.String()}, err
}

func (s *SSH) Stream(ctx context.Context, argv []string, stdout, stderr io.Writer) (int, error) {
	if len(argv) == 0 {
		return -1, fmt.Errorf("empty command")
	}
	client, err := s.dial()
	if err != nil {
		return -1, err
	}
	session, err := client.NewSession()
	if err != nil {
		return -1, fmt.Errorf("open session on %s: %w", s, err)
	}
	defer session.Close()
	session.Stdout = stdout
	session.Stderr = stderr

	done := make(chan error, 1)
	go func() { done <- session.Run(shellCommand(argv, s.opts.Elevate)) }()

	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGTERM)
		return -1, ctx.Err()
	case err := <-done:
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitStatus(), nil
		}
		if err != nil {
			return -1, err
		}
		return 0, nil
	}
}

func (s *SSH) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	fs, err := s.files()
	if err != nil {
		return nil, err
	}
	return fs.Stat(path)
}

func (s *SSH) Get(ctx context.Context, path, local string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	fs, err := s.files()
	if err != nil {
		return err
	}
	src, err := fs.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	return writeLocal(local, src)
}

func (s *SSH) Remove(ctx context.Context, path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	fs, err := s.files()
	if err != nil {
		return err
	}
	return fs.Remove(path)
}

func (s *SSH) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	if s.sftp != nil {
		err = s.sftp.Close()
		s.sftp = nil
	}
	if s.client != nil {
		if cerr := s.client.Close(); err == nil {
			err = cerr
		}
		s.client = nil
	}
	return err
}

func (s *SSH) String() string {
	return fmt.Sprintf("ssh://%s@%s", s.user(), s.addr())
}

// Elevated reports whether commands run through sudo.
func (s *SSH) Elevated() bool { return s.opts.Elevate }

func agentAuth() ssh.AuthMethod {
	sock := os.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return nil
	}
	conn, err := net.Dial("unix", sock)
	if err != nil {
		return nil
	}
	return ssh.PublicKeysCallback(agent.NewClient(conn).Signers)
}

func keyAuth(path, passphrase string) (ssh.AuthMethod, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var signer ssh.Signer
	if passphrase != "" {
		signer, err = ssh.ParsePrivateKeyWithPassphrase(pem, []byte(passphrase))
	} else {
		signer, err = ssh.ParsePrivateKey(pem)
	}
	if err != nil {
		return nil, err
	}
	return ssh.PublicKeys(signer), nil
}

func defaultKeys() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	var keys []string
	for _, name := range []string{"id_ed25519", "id_ecdsa", "id_rsa"} {
		keys = append(keys, filepath.Join(home, ".ssh", name))
	}
	return keys
}

var _ Transport = (*SSH)(nil)
