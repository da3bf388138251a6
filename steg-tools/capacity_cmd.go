package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/npillmayer/glyphsteg/internal/fontload"
	"github.com/npillmayer/glyphsteg/lsb"
	"github.com/npillmayer/glyphsteg/outline"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
	"golang.org/x/sync/errgroup"
)

// fontCapacity is the capacity of one carrier font for a set of bit budgets.
type fontCapacity struct {
	path     string
	glyphs   int
	points   int
	capacity []int // in bits, one per bit budget
	smallest int   // number of points with a coordinate magnitude < 2
}

func runCapacityCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	paths := splitCSVSpace(args["fonts"].Value)
	if len(paths) == 0 {
		fatalf("at least one font path is required")
	}
	changes := []int{1, 2, 3}
	if c := mustFlagInt(flags["change"], "change"); c > lsb.MaxChange || c < 0 {
		fatalf("--change must be in 0…%d", lsb.MaxChange)
	} else if c > 0 {
		changes = []int{c}
	}
	codec, err := lsb.New(codecOptions(flags)...)
	if err != nil {
		fatalf("%v", err)
	}
	results, err := measureCapacities(context.Background(), codec, paths, changes)
	if err != nil {
		fatalf("%v", err)
	}
	header := []string{"Font", "Glyphs", "Points", "|v|<2"}
	for _, c := range changes {
		header = append(header, fmt.Sprintf("change=%d", c))
	}
	data := [][]string{header}
	for _, r := range results {
		row := []string{r.path, fmt.Sprint(r.glyphs), fmt.Sprint(r.points), fmt.Sprint(r.smallest)}
		for _, bits := range r.capacity {
			row = append(row, formatCapacity(bits))
		}
		data = append(data, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if len(changes) == 1 && changes[0] >= lsb.PerceptibleChange {
		pterm.Warning.Printf("changing %d bits per coordinate will probably be visible\n", changes[0])
	}
}

// measureCapacities parses fonts concurrently and computes their capacities.
// Results are in the order of paths. The first failing font cancels the
// remaining ones.
func measureCapacities(ctx context.Context, codec *lsb.Codec, paths []string, changes []int) ([]fontCapacity, error) {
	results := make([]fontCapacity, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fontload.CheckFileType(path); err != nil {
				return err
			}
			f, err := outline.Load(path)
			if err != nil {
				return err
			}
			r := fontCapacity{
				path:     path,
				glyphs:   f.NumGlyphs(),
				points:   f.NumPoints(),
				capacity: make([]int, len(changes)),
			}
			for j, change := range changes {
				r.capacity[j] = codec.Capacity(r.points, change)
			}
			for _, p := range f.Points() {
				if abs(p.X) < 2 || abs(p.Y) < 2 {
					r.smallest++
				}
			}
			tracer().Debugf("%s: %d points", path, r.points)
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func formatCapacity(bits int) string {
	if bits < 0 {
		return "none"
	}
	return fmt.Sprintf("%d bits (%d bytes)", bits, bits/8)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
