package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/glyphsteg/internal/fontload"
	"github.com/npillmayer/glyphsteg/lsb"
	"github.com/npillmayer/glyphsteg/outline"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runInspectCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	fontPath := mustArg(args, "font")
	sf, err := fontload.LoadTrueTypeFont(fontPath)
	if err != nil {
		fatalf("%v", err)
	}
	f, err := outline.Parse(sf.Binary)
	if err != nil {
		fatalf("cannot parse font %s: %v", fontPath, err)
	}
	fmt.Printf("Path: %s\n", fontPath)
	if sf.Fontname != "" {
		fmt.Printf("Name: %s\n", sf.Fontname)
	}
	fmt.Printf("Units per em: %d\n", f.Head.UnitsPerEm)
	locaFormat := "short"
	if f.Head.IndexToLocFormat != 0 {
		locaFormat = "long"
	}
	fmt.Printf("Loca format: %s\n", locaFormat)
	simple, composite, empty := f.GlyphStats()
	fmt.Printf("Glyphs: %d (simple=%d composite=%d empty=%d)\n", f.NumGlyphs(), simple, composite, empty)
	fmt.Printf("Points: %d\n", f.NumPoints())
	bbox := f.Head.BBox()
	fmt.Printf("BBox: (%d,%d)-(%d,%d)\n", bbox.MinX, bbox.MinY, bbox.MaxX, bbox.MaxY)

	tables, err := outline.Tables(sf.Binary)
	if err != nil {
		fatalf("cannot list tables: %v", err)
	}
	data := [][]string{{"Table", "Offset", "Size"}}
	for _, t := range tables {
		data = append(data, []string{t.Tag, fmt.Sprint(t.Offset), fmt.Sprint(t.Size)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	data = [][]string{{"Change", "Capacity", "Note"}}
	for change := 1; change <= lsb.PerceptibleChange; change++ {
		note := ""
		if change >= lsb.PerceptibleChange {
			note = "probably visible"
		}
		data = append(data, []string{fmt.Sprint(change), formatCapacity(lsb.Capacity(f.NumPoints(), change)), note})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	issues := f.Issues()
	fmt.Printf("Issues: %d\n", len(issues))
	if mustFlagBool(flags["errors"], "errors") {
		for _, issue := range issues {
			fmt.Fprintf(os.Stdout, "issue: %s\n", issue.Error())
		}
	}
}
