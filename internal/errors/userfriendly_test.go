package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tturner/disgo/internal/dis/codec"
)

func TestUserFriendlyError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      UserFriendlyError
		contains []string
	}{
		{
			name:     "message only",
			err:      UserFriendlyError{Message: "something broke"},
			contains: []string{"something broke"},
		},
		{
			name: "all fields",
			err: UserFriendlyError{
				Message: "connection failed",
				Reason:  "timeout",
				Hint:    "check network",
				Try:     "ping host",
				Err:     fmt.Errorf("dial tcp: timeout"),
			},
			contains: []string{"connection failed", "Reason: timeout", "Hint: check network", "Try: ping host", "Details: dial tcp: timeout"},
		},
		{
			name: "no reason",
			err: UserFriendlyError{
				Message: "failed",
				Hint:    "hint here",
			},
			contains: []string{"failed", "Hint: hint here"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("Error() = %q, want to contain %q", msg, s)
				}
			}
		})
	}
}

func TestUserFriendlyError_ErrorOmitsEmptyFields(t *testing.T) {
	err := UserFriendlyError{Message: "msg"}
	msg := err.Error()
	if strings.Contains(msg, "Reason:") || strings.Contains(msg, "Hint:") || strings.Contains(msg, "Try:") || strings.Contains(msg, "Details:") {
		t.Errorf("Error() = %q, should not contain empty fields", msg)
	}
}

func TestUserFriendlyError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("root cause")
	err := UserFriendlyError{Message: "wrapper", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("Unwrap should return the inner error")
	}

	var nilErr UserFriendlyError
	if nilErr.Unwrap() != nil {
		t.Error("Unwrap on nil Err should return nil")
	}
}

func TestWrapNetworkError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if WrapNetworkError(nil, "239.1.2.3:3000") != nil {
			t.Error("expected nil")
		}
	})

	tests := []struct {
		name   string
		err    error
		reason string
	}{
		{"timeout", fmt.Errorf("read udp 0.0.0.0:3000: i/o timeout"), "timeout"},
		{"port in use", fmt.Errorf("listen udp :3000: bind: address already in use"), "already in use"},
		{"broadcast denied", fmt.Errorf("write udp: permission denied"), "broadcast"},
		{"bad interface", fmt.Errorf("route ip+net: no such network interface"), "Interface"},
		{"unreachable", fmt.Errorf("sendto: network is unreachable"), "unreachable"},
		{"generic", fmt.Errorf("something else"), "Network communication failed"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := WrapNetworkError(tt.err, "239.1.2.3:3000")
			ufe := err.(UserFriendlyError)
			if !strings.Contains(ufe.Message, "239.1.2.3:3000") {
				t.Errorf("message should contain address, got %q", ufe.Message)
			}
			if !strings.Contains(ufe.Reason, tt.reason) {
				t.Errorf("Reason = %q, want to contain %q", ufe.Reason, tt.reason)
			}
			if !errors.Is(err, tt.err) {
				t.Error("wrapped error should unwrap to the original")
			}
		})
	}
}

func TestWrapDecodeError(t *testing.T) {
	if WrapDecodeError(nil, "udp") != nil {
		t.Fatal("expected nil")
	}

	tests := []struct {
		name   string
		err    error
		kind   error
		reason string
	}{
		{"truncated", codec.Truncated("Entity State PDU", 144, 100, 0), codec.ErrTruncated, "shorter"},
		{"unsupported", codec.Unsupported(99), codec.ErrUnsupportedPDUType, "PDU type 99"},
		{"length", codec.LengthMismatch("Fire PDU", 96, 92), codec.ErrLengthMismatch, "Declared length"},
		{"malformed", codec.Malformed("variable records", 40, "too many"), codec.ErrMalformedRecord, "overruns"},
		{"range", codec.OutOfRange("count", 300, 255), codec.ErrValueOutOfRange, "wire width"},
		{"other", fmt.Errorf("garbage"), nil, "not a DIS PDU"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := WrapDecodeError(fmt.Errorf("datagram: %w", tt.err), "capture.pcap")
			ufe := err.(UserFriendlyError)
			if !strings.Contains(ufe.Message, "capture.pcap") {
				t.Errorf("message should contain source, got %q", ufe.Message)
			}
			if !strings.Contains(ufe.Reason, tt.reason) {
				t.Errorf("Reason = %q, want to contain %q", ufe.Reason, tt.reason)
			}
			if tt.kind != nil && !errors.Is(err, tt.kind) {
				t.Errorf("errors.Is(%v) = false", tt.kind)
			}
		})
	}
}

func TestWrapConfigError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if WrapConfigError(nil, "disgo.yaml") != nil {
			t.Error("expected nil")
		}
	})

	t.Run("wraps config error", func(t *testing.T) {
		err := WrapConfigError(fmt.Errorf("invalid yaml"), "disgo.yaml")
		ufe := err.(UserFriendlyError)
		if !strings.Contains(ufe.Message, "disgo.yaml") {
			t.Errorf("message should contain config path, got %q", ufe.Message)
		}
		if ufe.Reason != "invalid yaml" {
			t.Errorf("reason should be inner error message, got %q", ufe.Reason)
		}
		if !strings.Contains(ufe.Hint, "config init") {
			t.Errorf("hint should point at config init, got %q", ufe.Hint)
		}
	})
}

func TestWrapCaptureError(t *testing.T) {
	if WrapCaptureError(nil, "x.pcap") != nil {
		t.Fatal("expected nil")
	}
	tests := []struct {
		err    string
		reason string
	}{
		{"open x.pcap: no such file or directory", "does not exist"},
		{"eth0: You don't have permission to capture on that device (socket: Operation not permitted)", "privileges"},
		{"ssh: handshake failed: ssh: unable to authenticate", "SSH"},
		{"bad magic", "could not be read"},
	}
	for _, tt := range tests {
		ufe := WrapCaptureError(fmt.Errorf("%s", tt.err), "x.pcap").(UserFriendlyError)
		if !strings.Contains(ufe.Reason, tt.reason) {
			t.Errorf("%q: Reason = %q, want to contain %q", tt.err, ufe.Reason, tt.reason)
		}
	}
}
