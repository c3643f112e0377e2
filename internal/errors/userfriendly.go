package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/tturner/disgo/internal/dis/codec"
)

// UserFriendlyError provides user-friendly error messages with context and hints
type UserFriendlyError struct {
	Message string
	Reason  string
	Hint    string
	Try     string
	Err     error
}

func (e UserFriendlyError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Message)
	if e.Reason != "" {
		buf.WriteString("\n  Reason: " + e.Reason)
	}
	if e.Hint != "" {
		buf.WriteString("\n  Hint: " + e.Hint)
	}
	if e.Try != "" {
		buf.WriteString("\n  Try: " + e.Try)
	}
	if e.Err != nil {
		buf.WriteString("\n  Details: " + e.Err.Error())
	}
	return buf.String()
}

func (e UserFriendlyError) Unwrap() error {
	return e.Err
}

// WrapNetworkError wraps socket errors on a DIS endpoint.
func WrapNetworkError(err error, addr string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Network error on DIS endpoint %s", addr),
		Reason:  extractNetworkReason(err),
		Hint:    "Check that the port is free and that the interface can reach the exercise network",
		Try:     fmt.Sprintf("disgo listen --address %s --count 1", addr),
		Err:     err,
	}
}

// WrapDecodeError wraps a codec failure with the place the bytes came from.
func WrapDecodeError(err error, source string) error {
	if err == nil {
		return nil
	}

	reason, hint := decodeReason(err)
	return UserFriendlyError{
		Message: fmt.Sprintf("Failed to decode DIS PDU from %s", source),
		Reason:  reason,
		Hint:    hint,
		Try:     "disgo decode --hex <bytes> to inspect the raw PDU",
		Err:     err,
	}
}

// WrapConfigError wraps configuration errors with user-friendly context
func WrapConfigError(err error, configPath string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Configuration error in %s", configPath),
		Reason:  err.Error(),
		Hint:    "Run 'disgo config init' to write a commented default file",
		Try:     fmt.Sprintf("disgo config show --config %s", configPath),
		Err:     err,
	}
}

// WrapCaptureError wraps failures opening or fetching a packet capture.
func WrapCaptureError(err error, path string) error {
	if err == nil {
		return nil
	}

	reason := "Capture could not be read"
	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "no such file"):
		reason = "Capture file does not exist"
	case strings.Contains(errStr, "permission denied"), strings.Contains(errStr, "Operation not permitted"):
		reason = "Insufficient privileges to open the capture or interface"
	case strings.Contains(errStr, "unable to authenticate"), strings.Contains(errStr, "handshake failed"):
		reason = "SSH authentication failed"
	}
	return UserFriendlyError{
		Message: fmt.Sprintf("Capture error for %s", path),
		Reason:  reason,
		Hint:    "Live sniffing needs root or CAP_NET_RAW; remote fetches need a working SSH login",
		Err:     err,
	}
}

func extractNetworkReason(err error) string {
	errStr := err.Error()

	// Common network error patterns
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		return "Read timeout - no simulation may be publishing on this port"
	}
	if strings.Contains(errStr, "address already in use") {
		return "Address already in use - another DIS application owns the port without SO_REUSEADDR"
	}
	if strings.Contains(errStr, "permission denied") {
		return "Permission denied - broadcast may need to be enabled on the socket"
	}
	if strings.Contains(errStr, "no such device") || strings.Contains(errStr, "no such network interface") {
		return "Interface not found - check the multicast interface name"
	}
	if strings.Contains(errStr, "network is unreachable") {
		return "Network unreachable - no route to the destination address"
	}

	return "Network communication failed"
}

func decodeReason(err error) (reason, hint string) {
	var ce *codec.Error
	stderrors.As(err, &ce)

	switch {
	case stderrors.Is(err, codec.ErrTruncated):
		return "PDU is shorter than its declared length",
			"The capture may have been taken with a small snaplen, or the datagram was cut"
	case stderrors.Is(err, codec.ErrUnsupportedPDUType):
		code := 0
		if ce != nil {
			code = ce.Have
		}
		return fmt.Sprintf("PDU type %d is not one of the 72 known types", code),
			"The sender may use a vendor or experimental PDU type"
	case stderrors.Is(err, codec.ErrLengthMismatch):
		return "Declared length disagrees with the body layout",
			"The sender may use a different protocol version for this PDU type"
	case stderrors.Is(err, codec.ErrMalformedRecord):
		return "A count or size field overruns the PDU",
			"The PDU is corrupt or was produced by a non-conforming encoder"
	case stderrors.Is(err, codec.ErrValueOutOfRange):
		return "A field value does not fit its wire width", ""
	}
	return "Bytes are not a DIS PDU", "Check the source port; DIS normally uses UDP 3000"
}
