package transport

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tturner/disgo/internal/config"
)

func TestShellCommand(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		elevate bool
		want    string
	}{
		{"simple", []string{"ls", "-la"}, false, "ls -la"},
		{"spaces", []string{"echo", "hello world"}, false, "echo 'hello world'"},
		{"empty argument", []string{"printf", ""}, false, "printf ''"},
		{"bpf filter", []string{"tcpdump", "-w", "-", "udp port 3000"}, false, "tcpdump -w - 'udp port 3000'"},
		{"elevated", []string{"tcpdump", "-i", "eth0"}, true, "sudo -n tcpdump -i eth0"},
		{"substitution", []string{"echo", "$(whoami)"}, false, "echo '$(whoami)'"},
		{"single quote", []string{"echo", "it's"}, false, `echo 'it'\''s'`},
		{"comment", []string{"echo", "#x"}, false, "echo '#x'"},
		{"nothing", nil, true, ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := shellCommand(tt.argv, tt.elevate); got != tt.want {
				t.Errorf("shellCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"foo/bar", false},
		{"/tmp/disgo-1.pcap", false},
		{"./foo", false},
		{"../etc/passwd", true},
		{"foo/../../../etc/passwd", true},
		{"..", true},
		{"", true},
	}
	for _, tt := range tests {
		if err := ValidatePath(tt.path); (err != nil) != tt.wantErr {
			t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestDefaultSSHOptions(t *testing.T) {
	opts := DefaultSSHOptions()
	if opts.Port != 22 || opts.ConnectTimeout != 30*time.Second || opts.Timeout != 5*time.Minute {
		t.Errorf("DefaultSSHOptions() = %+v", opts)
	}
	if !opts.Agent || opts.AllowPassword {
		t.Errorf("agent = %v allowPassword = %v, want true false", opts.Agent, opts.AllowPassword)
	}
}

// testSSH points at a TEST-NET address that never answers.
func testSSH(t *testing.T) *SSH {
	t.Helper()
	opts := DefaultSSHOptions()
	opts.ConnectTimeout = 10 * time.Millisecond
	s, err := NewSSH("192.0.2.1", opts)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSSHRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s := testSSH(t)
	const bad = "../../../etc/shadow"

	_, statErr := s.Stat(ctx, bad)
	errs := map[string]error{
		"Stat":   statErr,
		"Get":    s.Get(ctx, bad, t.TempDir()+"/x"),
		"Remove": s.Remove(ctx, bad),
	}
	for op, err := range errs {
		if err == nil || !strings.Contains(err.Error(), "traversal") {
			t.Errorf("%s() error = %v, want traversal rejection", op, err)
		}
	}
}

func TestSSHPasswordNeedsOptIn(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SSH_AUTH_SOCK", "")

	s, err := NewSSH("example.com", SSHOptions{Password: "secret"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.authMethods(); err == nil || !strings.Contains(err.Error(), "no SSH credentials") {
		t.Errorf("authMethods() error = %v, want no credentials", err)
	}

	s.opts.AllowPassword = true
	s.opts.InsecureIgnoreHost = true
	cfg, err := s.clientConfig()
	if err != nil {
		t.Fatalf("clientConfig() error = %v", err)
	}
	if len(cfg.Auth) != 1 {
		t.Errorf("got %d auth methods, want the password", len(cfg.Auth))
	}
}

func TestSSHHostKeysRequired(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	s, err := NewSSH("example.com", SSHOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.hostKeyCallback(); err == nil || !strings.Contains(err.Error(), "known_hosts") {
		t.Errorf("hostKeyCallback() error = %v, want missing known_hosts", err)
	}
}

func TestSSHString(t *testing.T) {
	s, err := NewSSH("::1", SSHOptions{User: "ops"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := s.String(), "ssh://ops@[::1]:22"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if _, err := NewSSH("", SSHOptions{}); err == nil {
		t.Error("NewSSH(\"\") should fail")
	}
}

func TestSSHOptionsFrom(t *testing.T) {
	opts := SSHOptionsFrom(config.RemoteConfig{
		Host:     "sensor",
		User:     "ops",
		Port:     2222,
		KeyFile:  "/keys/id",
		Insecure: true,
		Elevate:  true,
	})
	if opts.User != "ops" || opts.Port != 2222 || opts.KeyFile != "/keys/id" {
		t.Errorf("SSHOptionsFrom() = %+v", opts)
	}
	if !opts.InsecureIgnoreHost || !opts.Elevate || !opts.Agent || opts.AllowPassword {
		t.Errorf("flags: insecure=%v elevate=%v agent=%v password=%v",
			opts.InsecureIgnoreHost, opts.Elevate, opts.Agent, opts.AllowPassword)
	}
}
