package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/glyphsteg"
	"github.com/npillmayer/glyphsteg/internal/fontload"
	"github.com/npillmayer/glyphsteg/lsb"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// tracer traces with key 'glyphsteg.tools'
func tracer() tracing.Trace {
	return tracing.Select("glyphsteg.tools")
}

func main() {
	commando.
		SetExecutableName("steg-tools").
		SetVersion("v0.1.0").
		SetDescription("Hide data in the glyph outlines of TrueType fonts, and recover it.")

	withCodecFlags(commando.
		Register("capacity").
		SetDescription("Print the number of bits which may be hidden in one or more fonts.").
		SetShortDescription("carrier capacity").
		AddArgument("fonts...", "TrueType font file paths", "").
		AddFlag("change,c", "bits to change per coordinate (0 lists 1…3)", commando.Int, 0)).
		SetAction(runCapacityCommand)

	withCodecFlags(commando.
		Register("hide").
		SetDescription("Hide a message, a file or a bit string in a TrueType font.").
		SetShortDescription("hide a payload").
		AddArgument("font", "TrueType font file path", "").
		AddArgument("out", "output font file path (.ttf)", "").
		AddFlag("message,m", "text message to hide", commando.String, "-").
		AddFlag("file,f", "file to hide", commando.String, "-").
		AddFlag("bits,b", "bit string to hide, e.g. 0110", commando.String, "-").
		AddFlag("stdin,s", "read the message from standard input, without echo on a terminal", commando.Bool, nil).
		AddFlag("encoding,e", "character encoding of text messages (IANA name)", commando.String, "UTF-8").
		AddFlag("change,c", "bits to change per coordinate", commando.Int, 1).
		AddFlag("verify", "re-read the carrier with independent font parsers", commando.Bool, nil)).
		SetAction(runHideCommand)

	withCodecFlags(commando.
		Register("recover").
		SetDescription("Recover a payload hidden in a TrueType font.").
		SetShortDescription("recover a payload").
		AddArgument("font", "TrueType font file path", "").
		AddFlag("as,a", "output format: text|bits|hex", commando.String, "text").
		AddFlag("encoding,e", "character encoding of text messages (IANA name)", commando.String, "UTF-8").
		AddFlag("out,o", "write the payload to a file instead", commando.String, "-").
		AddFlag("change,c", "bits to change per coordinate", commando.Int, 1)).
		SetAction(runRecoverCommand)

	withTraceFlag(commando.
		Register("inspect").
		SetDescription("Print tables, outline statistics and capacities of a TrueType font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "TrueType font file path", "").
		AddFlag("errors,E", "print non-critical font issues", commando.Bool, nil)).
		SetAction(runInspectCommand)

	withTraceFlag(commando.
		Register("diff").
		SetDescription("Compare rendered glyphs of an original font and a carrier font.").
		SetShortDescription("perceptibility check").
		AddArgument("orig", "original TrueType font file path", "").
		AddArgument("stego", "carrier TrueType font file path", "").
		AddFlag("ppem,p", "render scale in pixels-per-em", commando.Int, 32).
		AddFlag("png", "write glyph comparison to PNG file", commando.String, "-").
		AddFlag("glyph,g", "glyph index for --png (-1 selects the worst glyph)", commando.Int, -1)).
		SetAction(runDiffCommand)

	commando.Parse(nil)
}

// --- Flags -----------------------------------------------------------------

func withTraceFlag(cmd *commando.Command) *commando.Command {
	return cmd.AddFlag("trace,T", "trace level [Debug|Info|Error]", commando.String, "Error")
}

func withCodecFlags(cmd *commando.Command) *commando.Command {
	return withTraceFlag(cmd).
		AddFlag("header,H", "width of the length header in bits", commando.Int, lsb.DefaultHeaderWidth)
}

func codecOptions(flags map[string]commando.FlagValue) []lsb.Option {
	return []lsb.Option{lsb.WithHeaderWidth(mustFlagInt(flags["header"], "header"))}
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

// optFlagString returns the value of a string flag, or "" if it has the
// placeholder value "-".
func optFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	if s = strings.TrimSpace(s); s == "-" {
		return ""
	}
	return s
}

func mustArg(args map[string]commando.ArgValue, name string) string {
	v := strings.TrimSpace(args[name].Value)
	if v == "" {
		fatalf("argument <%s> is required", name)
	}
	return v
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// --- Tracing and output ----------------------------------------------------

func setupTracing(flags map[string]commando.FlagValue) {
	initDisplay()
	level, err := flags["trace"].GetString()
	if err != nil {
		fatalf("invalid --trace flag: %v", err)
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":          "go",
		"trace.glyphsteg":          level,
		"trace.glyphsteg.lsb":      level,
		"trace.glyphsteg.outline":  level,
		"trace.glyphsteg.fontload": level,
		"trace.glyphsteg.payload":  level,
		"trace.glyphsteg.raster":   level,
		"trace.glyphsteg.tools":    level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("error configuring tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Debugf("trace level is %s", level)
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "steg-tools: "+format+"\n", args...)
	os.Exit(1)
}

func mustLoadCarrier(path string) glyphsteg.FontContainer {
	if err := fontload.CheckFileType(path); err != nil {
		fatalf("%v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("cannot read font %s: %v", path, err)
	}
	c, err := glyphsteg.ParseContainer(data)
	if err != nil {
		fatalf("cannot parse font %s: %v", path, err)
	}
	return c
}
