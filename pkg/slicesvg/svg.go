// Package slicesvg renders a slicer.SlicedMesh to SVG, either as a single
// static layer or as one animated file that cycles through every layer.
package slicesvg

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/llgcode/draw2d/draw2dsvg"
	"github.com/pkg/errors"

	"github.com/philipparndt/gostl/pkg/slicer"
)

// Scale maps model units to SVG user units when rendering a single layer.
const Scale = 5.0

// WriteLayer renders one layer's contour to path as a static SVG file: every
// closed path is drawn filled and stroked.
func WriteLayer(path string, contour slicer.Contour) error {
	dest := draw2dsvg.NewSvg()
	gc := draw2dsvg.NewGraphicContext(dest)
	gc.SetFillColor(color.RGBA{R: 0xdd, G: 0xdd, B: 0xff, A: 0xff})
	gc.SetStrokeColor(color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff})
	gc.SetLineWidth(0.3)

	for _, p := range contour.Paths() {
		points := p.Points()
		if len(points) == 0 {
			continue
		}
		gc.MoveTo(float64(points[0].X)*Scale, float64(points[0].Y)*Scale)
		for _, v := range points[1:] {
			gc.LineTo(float64(v.X)*Scale, float64(v.Y)*Scale)
		}
		gc.Close()
		gc.FillStroke()
	}

	if err := draw2dsvg.SaveToSvgFile(path, dest); err != nil {
		return errors.Wrapf(err, "slicesvg: writing layer to %s", path)
	}
	return nil
}

// WriteAnimated renders every layer of mesh into a single SVG file, one
// <g> group per layer, cycling each group's visibility through an <animate>
// element so the whole print plays back as a looping animation. draw2d's
// graphic-context API has no notion of groups or SMIL animation, so this
// writes SVG markup directly; see DESIGN.md for the tradeoff.
func WriteAnimated(path string, mesh slicer.SlicedMesh) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "slicesvg: creating %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := render(w, mesh); err != nil {
		return err
	}
	return w.Flush()
}

func render(w io.Writer, mesh slicer.SlicedMesh) error {
	n := mesh.ContourCount()
	writeHeader(w)
	for layer := 0; layer < n; layer++ {
		writeLayerGroup(w, layer, n, mesh.Contour(layer))
	}
	writeFooter(w)
	return nil
}

func writeHeader(w io.Writer) {
	fmt.Fprintln(w, `<svg xmlns="http://www.w3.org/2000/svg">`)
	fmt.Fprintln(w, `  <rect width="100%" height="100%" fill="white"/>`)
	fmt.Fprintln(w, `  <defs>`)
	fmt.Fprintln(w, `    <marker id="arrowhead" markerWidth="6" markerHeight="6" refX="3" refY="1.5" orient="auto">`)
	fmt.Fprintln(w, `      <polygon points="0 0, 2 1.5, 0 3" fill="black" />`)
	fmt.Fprintln(w, `    </marker>`)
	fmt.Fprintln(w, `  </defs>`)
	fmt.Fprintln(w, `  <g transform="translate(0, 0)">`)
}

func writeFooter(w io.Writer) {
	fmt.Fprintln(w, `  </g>`)
	fmt.Fprintln(w, `</svg>`)
}

func writeLayerGroup(w io.Writer, layer, total int, c slicer.Contour) {
	fmt.Fprintf(w, "    <!-- Layer %d -->\n", layer)
	fmt.Fprintf(w, "    <g id=\"frame%d\">\n", layer)
	fmt.Fprintf(w, "       <text x=\"10\" y=\"10\">Layer %d</text>\n", layer)
	fmt.Fprintln(w, `       <g transform="translate(15, 20) scale(5)">`)
	for _, p := range c.Paths() {
		for _, s := range p.Segments() {
			fmt.Fprintf(w, "        <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"#000\" stroke-width=\"0.5\" marker-end=\"url(#arrowhead)\"/>\n",
				s.Start.X, s.Start.Y, s.End.X, s.End.Y)
			fmt.Fprintf(w, "        <circle cx=\"%g\" cy=\"%g\" r=\"0.5\" />\n", s.Start.X, s.Start.Y)
		}
	}
	fmt.Fprintln(w, `     </g>`)
	fmt.Fprintf(w, "      <animate attributeName=\"visibility\" values=\"%s\" dur=\"5s\" repeatCount=\"indefinite\" />\n", visibilityValues(layer, total))
	fmt.Fprintln(w, `    </g>`)
}

// visibilityValues builds the animate element's keyframe list: "hidden"
// for every layer except the one whose turn it is, in layer order.
func visibilityValues(layer, total int) string {
	values := ""
	for i := 0; i < total; i++ {
		if i > 0 {
			values += "; "
		}
		if i == layer {
			values += "visible"
		} else {
			values += "hidden"
		}
	}
	return values
}
