package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/glyphsteg/internal/fontload"
	"github.com/npillmayer/glyphsteg/internal/raster"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runDiffCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	origPath, stegoPath := mustArg(args, "orig"), mustArg(args, "stego")
	orig, err := fontload.LoadTrueTypeFont(origPath)
	if err != nil {
		fatalf("%v", err)
	}
	stego, err := fontload.LoadTrueTypeFont(stegoPath)
	if err != nil {
		fatalf("%v", err)
	}
	ppem := mustFlagInt(flags["ppem"], "ppem")
	if ppem <= 0 {
		fatalf("--ppem must be > 0")
	}
	report, err := raster.Compare(orig.Binary, stego.Binary, ppem)
	if err != nil {
		fatalf("compare failed: %v", err)
	}
	data := [][]string{
		{"Glyphs", "Differing", "Pixels", "Max. coverage diff", "Worst glyph"},
		{
			fmt.Sprint(report.Glyphs),
			fmt.Sprint(report.Differing),
			fmt.Sprint(report.Pixels),
			fmt.Sprintf("%d/255", report.MaxDiff),
			fmt.Sprint(report.Worst),
		},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if report.Differing == 0 {
		pterm.Info.Printf("no visible difference at %d ppem\n", ppem)
	}

	outPath := optFlagString(flags["png"], "png")
	if outPath == "" {
		return
	}
	gid := mustFlagInt(flags["glyph"], "glyph")
	if gid < 0 {
		gid = max(report.Worst, 0)
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatalf("cannot create output directory: %v", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		fatalf("cannot create output file: %v", err)
	}
	defer f.Close()
	if err := raster.RenderPair(f, orig.Binary, stego.Binary, gid, ppem); err != nil {
		fatalf("render failed: %v", err)
	}
	fmt.Printf("wrote %s (glyph %d)\n", outPath, gid)
}
