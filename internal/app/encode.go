package app

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tturner/disgo/internal/dis/enums"
	"github.com/tturner/disgo/internal/dis/pdu"
	"github.com/tturner/disgo/internal/pcap"
	"github.com/tturner/disgo/internal/ui"
)

type EncodeOptions struct {
	Spec        ui.PDUSpec
	Entity      string // site:application:entity, overrides Spec.Entity
	Interactive bool   // ask for the spec with the builder form
	Copy        bool   // put the hex on the clipboard
	Annotate    bool   // print an annotated dump instead of plain hex
	OutputFile  string // also write the raw bytes here
	Out         io.Writer
}

// RunEncode builds a PDU from flags or the interactive form and prints
// its encoding.
func RunEncode(opts EncodeOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Entity != "" {
		id, err := ui.ParseEntityID(opts.Entity)
		if err != nil {
			return err
		}
		opts.Spec.Entity = id
	}

	var p pdu.PDU
	var err error
	if opts.Interactive {
		p, err = ui.RunPDUBuilder(opts.Spec)
		if errors.Is(err, ui.ErrAborted) {
			fmt.Fprintln(opts.Out, "Aborted.")
			return nil
		}
	} else {
		if opts.Spec.Type == 0 {
			opts.Spec.Type = enums.PduTypeEntityState
		}
		p, err = opts.Spec.Build()
	}
	if err != nil {
		return err
	}

	b, err := pdu.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode %s: %w", p.Type(), err)
	}

	fmt.Fprintf(opts.Out, "%s\n", pdu.Summary(p))
	if opts.Annotate {
		fmt.Fprintf(opts.Out, "%s\n", pcap.FormatPDUHex(b, true))
	} else {
		fmt.Fprintf(opts.Out, "%s\n", hex.EncodeToString(b))
	}

	if opts.OutputFile != "" {
		if err := os.WriteFile(opts.OutputFile, b, 0644); err != nil {
			return fmt.Errorf("write %s: %w", opts.OutputFile, err)
		}
		fmt.Fprintf(opts.Out, "Wrote %d bytes to %s\n", len(b), opts.OutputFile)
	}
	if opts.Copy {
		if _, err := ui.CopyHex(p); err != nil {
			return err
		}
		fmt.Fprintln(opts.Out, "Copied hex to clipboard.")
	}
	return nil
}
