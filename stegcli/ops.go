package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/npillmayer/glyphsteg"
	"github.com/npillmayer/glyphsteg/internal/fontload"
	"github.com/npillmayer/glyphsteg/internal/payload"
	"github.com/npillmayer/glyphsteg/lsb"
	"github.com/pterm/pterm"
)

var errNoFont = errors.New("no font loaded, use 'load <font.ttf>'")

// --- Font Loading -----------------------------------------------------

func loadOp(intp *Intp, op *Op) (error, bool) {
	if op.arg == "" {
		return errors.New("usage: load <font.ttf>"), false
	}
	return intp.loadFont(op.arg), false
}

func (intp *Intp) loadFont(path string) error {
	f, err := fontload.LoadTrueTypeFont(path)
	if err != nil {
		return err
	}
	tracer().Infof("loaded SFNT font = %s", f.Fontname)
	c, err := glyphsteg.ParseContainer(f.Binary)
	if err != nil {
		return fmt.Errorf("cannot decode font %s: %w", path, err)
	}
	intp.font, intp.fontpath, intp.carrier = c, path, nil
	pterm.Printf("font tables: %v\n", c.TableNames())
	return nil
}

// ----------------------------------------------------------------------

func changeOp(intp *Intp, op *Op) (error, bool) {
	if op.arg == "" {
		pterm.Printf("changing %d bits per coordinate\n", intp.change)
		return nil, false
	}
	n, err := strconv.Atoi(op.arg)
	if err != nil || n < 1 || n > lsb.MaxChange {
		return fmt.Errorf("%w: %q", lsb.ErrInvalidBitBudget, op.arg), false
	}
	if n >= lsb.PerceptibleChange {
		pterm.Info.Printf("changing %d bits per coordinate will probably be visible\n", n)
	}
	intp.change = n
	return nil, false
}

func capacityOp(intp *Intp, op *Op) (error, bool) {
	if intp.font.Font == nil {
		return errNoFont, false
	}
	change := intp.change
	if op.arg != "" {
		n, err := strconv.Atoi(op.arg)
		if err != nil {
			return fmt.Errorf("not a number: %q", op.arg), false
		}
		change = n
	}
	capacity, err := glyphsteg.CapacityOf(intp.font, change, lsb.WithHeaderWidth(intp.header))
	if err != nil {
		return err, false
	}
	if capacity < 0 {
		pterm.Printf("font %s cannot carry a payload with change=%d\n", intp.fontpath, change)
		return nil, false
	}
	pterm.Printf("capacity with change=%d: %d bits (%d bytes)\n", change, capacity, capacity/8)
	return nil, false
}

// hideOp hides its argument in the loaded font. Format selects how the
// argument is interpreted: text (default), bits or file.
func hideOp(intp *Intp, op *Op) (error, bool) {
	if intp.font.Font == nil {
		return errNoFont, false
	}
	var secret lsb.Bits
	var err error
	switch op.format {
	case "", "text":
		secret, err = payload.FromText(op.arg, payload.DefaultEncoding)
	case "bits":
		secret, err = lsb.ParseBits(op.arg)
	case "file":
		secret, err = payload.FromFile(op.arg)
	default:
		err = fmt.Errorf("unknown format %q (expected text|bits|file)", op.format)
	}
	if err != nil {
		return err, false
	}
	data, err := glyphsteg.HideIn(intp.font, secret, intp.change, lsb.WithHeaderWidth(intp.header))
	if err != nil {
		return err, false
	}
	intp.carrier = data
	pterm.Printf("hid %d bits, use 'save <out.ttf>' to write the carrier\n", secret.Len())
	return nil, false
}

// recoverOp recovers a payload from the unsaved carrier, if any, or else
// from the loaded font.
func recoverOp(intp *Intp, op *Op) (error, bool) {
	var c glyphsteg.Container = intp.font
	if intp.carrier != nil {
		carrier, err := glyphsteg.ParseContainer(intp.carrier)
		if err != nil {
			return err, false
		}
		c = carrier
	} else if intp.font.Font == nil {
		return errNoFont, false
	}
	bits, err := glyphsteg.RecoverFrom(c, intp.change, lsb.WithHeaderWidth(intp.header))
	if err != nil {
		return err, false
	}
	switch op.format {
	case "", "text":
		text, err := payload.ToText(bits, payload.DefaultEncoding)
		if err != nil {
			return err, false
		}
		pterm.Println(text)
	case "bits":
		pterm.Println(bits.String())
	case "hex":
		pterm.Println(payload.Hex(bits))
	default:
		return fmt.Errorf("unknown format %q (expected text|bits|hex)", op.format), false
	}
	return nil, false
}

func saveOp(intp *Intp, op *Op) (error, bool) {
	if intp.carrier == nil {
		return errors.New("nothing to save, use 'hide' first"), false
	}
	if err := fontload.CheckFileType(op.arg); err != nil {
		return err, false
	}
	if err := os.WriteFile(op.arg, intp.carrier, 0o644); err != nil {
		return err, false
	}
	tracer().Infof("saved carrier to %s", op.arg)
	pterm.Printf("wrote %s (%d bytes)\n", op.arg, len(intp.carrier))
	intp.carrier = nil
	return nil, false
}
