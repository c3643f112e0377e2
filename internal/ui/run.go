package ui

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh"

	"github.com/tturner/disgo/internal/dis/pdu"
)

// ErrAborted is returned when the user leaves the form without finishing.
var ErrAborted = errors.New("aborted")

// RunPDUBuilder shows the builder form and returns the PDU it describes.
func RunPDUBuilder(defaults PDUSpec) (pdu.PDU, error) {
	f := BuildPDUForm(defaults)
	if err := f.Form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrAborted
		}
		return nil, fmt.Errorf("pdu form: %w", err)
	}
	spec, err := f.Spec()
	if err != nil {
		return nil, err
	}
	return spec.Build()
}

// CopyHex encodes p and puts its hex on the system clipboard. It returns
// the hex so callers can print it as well.
func CopyHex(p pdu.PDU) (string, error) {
	b, err := pdu.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", p.Type(), err)
	}
	text := hex.EncodeToString(b)
	if err := clipboard.WriteAll(text); err != nil {
		return text, fmt.Errorf("copy to clipboard: %w", err)
	}
	return text, nil
}
