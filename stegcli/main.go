package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/glyphsteg"
	"github.com/npillmayer/glyphsteg/lsb"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'glyphsteg.cli'
func tracer() tracing.Trace {
	return tracing.Select("glyphsteg.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":         "go",
		"trace.glyphsteg.cli":     "Info",
		"trace.glyphsteg":         "Info",
		"trace.glyphsteg.lsb":     "Error",
		"trace.glyphsteg.outline": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load")
	change := flag.Int("change", 1, "Bits to change per coordinate")
	header := flag.Int("header", lsb.DefaultHeaderWidth, "Width of the length header in bits")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)               // will set the correct level later
	pterm.Info.Println("Welcome to Glyph Steganography CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("steg > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, change: *change, header: *header}
	if _, err := intp.codec(); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(2)
	}
	//
	// load font to use, if provided by flag
	if *fontname != "" {
		if err := intp.loadFont(*fontname); err != nil {
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl     *readline.Instance
	font     glyphsteg.FontContainer // font loaded by 'load'
	fontpath string
	carrier  []byte // carrier produced by 'hide', not yet saved
	change   int    // bits per coordinate
	header   int    // width of the length header
}

func (intp *Intp) String() string {
	if intp == nil || intp.font.Font == nil {
		return fmt.Sprintf("( no font, change=%d )", intp.change)
	}
	s := fmt.Sprintf("( font=%s points=%d change=%d", intp.fontpath, intp.font.NumPoints(), intp.change)
	if intp.carrier != nil {
		s += " unsaved carrier"
	}
	return s + " )"
}

func (intp *Intp) codec() (*lsb.Codec, error) {
	return lsb.New(lsb.WithHeaderWidth(intp.header))
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op is a parsed command line: "op[:format] [arg]".
type Op struct {
	code   int
	arg    string
	format string
}

const (
	QUIT int = iota
	HELP
	LOAD
	CHANGE
	CAPACITY
	HIDE
	RECOVER
	SAVE
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"load":     LOAD,
	"change":   CHANGE,
	"capacity": CAPACITY,
	"hide":     HIDE,
	"recover":  RECOVER,
	"save":     SAVE,
}

var opNames = []string{
	"quit",
	"help",
	"load",
	"change",
	"capacity",
	"hide",
	"recover",
	"save",
}

var errUnknownCommand = errors.New("unknown command, try 'help'")

func parseCommand(line string) (*Op, error) {
	word, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	name, format, _ := strings.Cut(word, ":") // e.g. "hide:bits 0110" or "recover:hex"
	code, ok := opMap[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownCommand, name)
	}
	op := &Op{code: code, arg: strings.TrimSpace(arg), format: strings.ToLower(format)}
	tracer().Debugf("parsed command: %s format=%q arg=%q", opNames[code], op.format, op.arg)
	return op, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	LOAD:     loadOp,
	CHANGE:   changeOp,
	CAPACITY: capacityOp,
	HIDE:     hideOp,
	RECOVER:  recoverOp,
	SAVE:     saveOp,
}

func (intp *Intp) execute(op *Op) (err error, stop bool) {
	f, ok := commandFn[op.code]
	if !ok {
		return fmt.Errorf("unknown command code: %d", op.code), false
	}
	return f(intp, op)
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	if intp.carrier != nil {
		pterm.Info.Println("discarding unsaved carrier")
	}
	return nil, true
}
