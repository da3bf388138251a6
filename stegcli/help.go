package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	switch strings.ToLower(topic) {
	case "hide", "recover", "format", "formats":
		pterm.Info.Println("hide / recover")
		pterm.Println(`
	hide[:text] <message>    hide a text message (UTF-8)
	hide:bits <0110…>        hide a bit string
	hide:file <path>         hide the contents of a file
	recover[:text|bits|hex]  recover a payload

	The carrier created by 'hide' is kept in memory until 'save' writes it.
	'recover' reads from this carrier, or from the loaded font if there is none.
	Both use the current bit budget ('change') and header width (flag -header).
	`)
	case "change", "capacity":
		pterm.Info.Println("change / capacity")
		pterm.Println(`
	change [n]      show or set the number of bits changed per coordinate
	capacity [n]    payload capacity of the loaded font, in bits

	Every outline point carries 2×n bits. A length header of 23 bits
	(default) precedes the payload. From n=6 on, changes to glyph shapes
	will probably be visible.
	`)
	default:
		data := [][]string{
			{"Command", "Description"},
			{"load <font.ttf>", "load a TrueType font"},
			{"change [n]", "show or set bits per coordinate"},
			{"capacity [n]", "show payload capacity"},
			{"hide[:format] <arg>", "hide a payload, see 'help hide'"},
			{"recover[:format]", "recover a payload"},
			{"save <out.ttf>", "write the carrier"},
			{"help [topic]", "this help"},
			{"quit", "leave"},
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
}
