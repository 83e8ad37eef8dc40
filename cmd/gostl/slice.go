package main

import (
	"fmt"
	"os"
	"time"

	"github.com/philipparndt/gostl/pkg/slicer"
	"github.com/philipparndt/gostl/pkg/slicesvg"
	"github.com/philipparndt/gostl/pkg/stl"
	"github.com/philipparndt/gostl/pkg/watcher"
	"github.com/spf13/cobra"
)

var (
	sliceLayerHeight float64
	sliceSVGOut      string
	sliceLayer       int
	sliceWatch       bool
)

var sliceCmd = &cobra.Command{
	Use:   "slice [file]",
	Short: "Slice an STL model into horizontal layer contours",
	Long: `Slice computes, for each horizontal cutting plane spaced layer-height apart,
the closed contours where that plane cuts the model. Pass --svg to also write an
SVG rendering of the result: a single layer with --layer, or an animated file
cycling through every layer otherwise.`,
	Args: cobra.ExactArgs(1),
	Run:  runSlice,
}

func init() {
	rootCmd.AddCommand(sliceCmd)

	sliceCmd.Flags().Float64Var(&sliceLayerHeight, "layer-height", 0.2, "vertical spacing between cutting planes")
	sliceCmd.Flags().StringVar(&sliceSVGOut, "svg", "", "write an SVG rendering to this path")
	sliceCmd.Flags().IntVar(&sliceLayer, "layer", -1, "with --svg, write only this layer index (default: all layers, animated)")
	sliceCmd.Flags().BoolVar(&sliceWatch, "watch", false, "re-slice and re-render whenever the file changes")
}

func runSlice(cmd *cobra.Command, args []string) {
	filename := args[0]

	if err := sliceOnce(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Error slicing file: %v\n", err)
		os.Exit(1)
	}

	if !sliceWatch {
		return
	}

	w, err := watcher.NewFileWatcher(300 * time.Millisecond)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting watcher: %v\n", err)
		os.Exit(1)
	}
	defer w.Close()

	if err := w.Watch([]string{filename}, func(path string) {
		fmt.Printf("\n%s changed, re-slicing...\n", path)
		if err := sliceOnce(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error slicing file: %v\n", err)
		}
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error watching file: %v\n", err)
		os.Exit(1)
	}
	w.Start()

	fmt.Printf("Watching %s for changes (ctrl-c to stop)\n", filename)
	select {}
}

func sliceOnce(filename string) error {
	model, err := stl.Parse(filename)
	if err != nil {
		return fmt.Errorf("parsing STL file: %w", err)
	}

	cfg := slicer.Config{LayerHeight: float32(sliceLayerHeight)}
	mesh, err := slicer.Slice(slicer.FromModel(model), cfg)
	if err != nil {
		return fmt.Errorf("slicing model: %w", err)
	}

	fmt.Println("Slice Result")
	fmt.Println("============")
	fmt.Printf("Layers: %d\n", mesh.ContourCount())
	xlo, xhi := mesh.LimitsX()
	ylo, yhi := mesh.LimitsY()
	fmt.Printf("XY bounds: [%.4f, %.4f] x [%.4f, %.4f]\n", xlo, xhi, ylo, yhi)

	total := 0
	for k := 0; k < mesh.ContourCount(); k++ {
		total += len(mesh.Contour(k).Paths())
	}
	fmt.Printf("Total closed paths: %d\n", total)

	if sliceSVGOut == "" {
		return nil
	}

	if sliceLayer >= 0 {
		if sliceLayer >= mesh.ContourCount() {
			return fmt.Errorf("layer %d out of range (mesh has %d layers)", sliceLayer, mesh.ContourCount())
		}
		if err := slicesvg.WriteLayer(sliceSVGOut, mesh.Contour(sliceLayer)); err != nil {
			return err
		}
		fmt.Printf("Wrote layer %d to %s\n", sliceLayer, sliceSVGOut)
		return nil
	}

	if err := slicesvg.WriteAnimated(sliceSVGOut, mesh); err != nil {
		return err
	}
	fmt.Printf("Wrote animated SVG (%d layers) to %s\n", mesh.ContourCount(), sliceSVGOut)
	return nil
}
