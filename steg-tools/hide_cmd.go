package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/glyphsteg"
	"github.com/npillmayer/glyphsteg/internal/fontload"
	"github.com/npillmayer/glyphsteg/internal/payload"
	"github.com/npillmayer/glyphsteg/lsb"
	"github.com/npillmayer/glyphsteg/outline"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
	"golang.org/x/term"
)

func runHideCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	fontPath, outPath := mustArg(args, "font"), mustArg(args, "out")
	if err := fontload.CheckFileType(outPath); err != nil {
		fatalf("%v", err)
	}
	secret, err := readPayload(flags, os.Stdin)
	if err != nil {
		fatalf("%v", err)
	}
	change := mustFlagInt(flags["change"], "change")
	opts := codecOptions(flags)
	c := mustLoadCarrier(fontPath)
	capacity, err := glyphsteg.CapacityOf(c, change, opts...)
	if err != nil {
		fatalf("%v", err)
	}
	pterm.Info.Printf("hiding %d bits in %d points, capacity is %d bits\n", secret.Len(), c.NumPoints(), capacity)
	data, err := glyphsteg.HideIn(c, secret, change, opts...)
	if errors.Is(err, glyphsteg.ErrIncomplete) {
		fatalf("%v; try a smaller payload or a larger --change", err)
	} else if err != nil {
		fatalf("%v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		fatalf("cannot write carrier: %v", err)
	}
	pterm.Info.Printf("wrote %s (%d bytes)\n", outPath, len(data))
	if mustFlagBool(flags["verify"], "verify") {
		report, err := outline.Verify(data)
		if err != nil {
			fatalf("carrier does not verify: %v", err)
		}
		pterm.Info.Printf("verified %q: %d glyphs, %d points\n", report.Fontname, report.NumGlyphs, report.NumPoints)
	}
}

// readPayload collects the payload from exactly one of the flags --bits,
// --file, --message and --stdin.
func readPayload(flags map[string]commando.FlagValue, stdin *os.File) (lsb.Bits, error) {
	bits := optFlagString(flags["bits"], "bits")
	file := optFlagString(flags["file"], "file")
	message := optFlagString(flags["message"], "message")
	fromStdin := mustFlagBool(flags["stdin"], "stdin")
	enc := optFlagString(flags["encoding"], "encoding")
	given := 0
	for _, set := range []bool{bits != "", file != "", message != "", fromStdin} {
		if set {
			given++
		}
	}
	if given != 1 {
		return "", errors.New("exactly one of --bits, --file, --message or --stdin is required")
	}
	switch {
	case bits != "":
		return lsb.ParseBits(bits)
	case file != "":
		return payload.FromFile(file)
	case fromStdin:
		text, err := readSecretText(stdin)
		if err != nil {
			return "", err
		}
		return payload.FromText(text, enc)
	}
	return payload.FromText(message, enc)
}

// readSecretText reads a message from stdin. On a terminal the user is
// prompted and the input is not echoed.
func readSecretText(stdin *os.File) (string, error) {
	fd := int(stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "secret message: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("cannot read message: %w", err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("cannot read message: %w", err)
	}
	return strings.TrimSuffix(string(b), "\n"), nil
}

func runRecoverCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	fontPath := mustArg(args, "font")
	change := mustFlagInt(flags["change"], "change")
	c := mustLoadCarrier(fontPath)
	bits, err := glyphsteg.RecoverFrom(c, change, codecOptions(flags)...)
	if err != nil {
		fatalf("%v", err)
	}
	if out := optFlagString(flags["out"], "out"); out != "" {
		if err := payload.ToFile(out, bits); err != nil {
			fatalf("cannot write payload: %v", err)
		}
		pterm.Info.Printf("wrote %d bits to %s\n", bits.Len(), out)
		return
	}
	as, err := flags["as"].GetString()
	if err != nil {
		fatalf("invalid --as flag: %v", err)
	}
	s, err := formatPayload(bits, as, optFlagString(flags["encoding"], "encoding"))
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println(s)
}

// formatPayload renders recovered bits as text, bits or hex octets.
func formatPayload(bits lsb.Bits, as string, enc string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(as)) {
	case "", "text":
		return payload.ToText(bits, enc)
	case "bits":
		return bits.String(), nil
	case "hex":
		return payload.Hex(bits), nil
	}
	return "", fmt.Errorf("unsupported output format %q (expected text|bits|hex)", as)
}
