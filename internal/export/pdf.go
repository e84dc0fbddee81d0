// Package export renders drawings into viewer-friendly formats: a PDF plot
// of the geometry and an XLSX inventory workbook.
package export

import (
	"fmt"
	"math"

	"github.com/signintech/gopdf"

	dxfio "github.com/hailam/dxfio"
)

const (
	pageMargin    = 20.0
	lineWidth     = 0.5
	arcStepDegree = 5.0
)

// RenderPDF plots the drawing's geometry onto a single A4 page, scaled to
// fit the bounding box of that geometry (the header's $EXTMIN/$EXTMAX are
// not consulted), and writes the result to path. Entities with no
// drawable geometry (TEXT, INSERT without resolved blocks) are skipped.
func RenderPDF(drawing *dxfio.Drawing, path string) error {
	minX, minY, maxX, maxY, found := bounds(drawing)
	if !found {
		return fmt.Errorf("drawing has no drawable geometry")
	}

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()
	pdf.SetLineWidth(lineWidth)

	pageW := gopdf.PageSizeA4.W - 2*pageMargin
	pageH := gopdf.PageSizeA4.H - 2*pageMargin
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	scale := math.Min(pageW/spanX, pageH/spanY)

	// drawing Y grows up, page Y grows down
	tx := func(x float64) float64 { return pageMargin + (x-minX)*scale }
	ty := func(y float64) float64 { return pageMargin + pageH - (y-minY)*scale }

	for _, e := range drawing.Entities {
		switch spec := e.Specific.(type) {
		case *dxfio.Line:
			pdf.Line(tx(spec.P1.X), ty(spec.P1.Y), tx(spec.P2.X), ty(spec.P2.Y))
		case *dxfio.Circle:
			drawArc(pdf, tx, ty, spec.Center, spec.Radius, 0, 360)
		case *dxfio.Arc:
			start, end := spec.StartAngle, spec.EndAngle
			if end < start {
				end += 360
			}
			drawArc(pdf, tx, ty, spec.Center, spec.Radius, start, end)
		case *dxfio.Polyline:
			for i := 1; i < len(spec.Vertices); i++ {
				a, b := spec.Vertices[i-1].Location, spec.Vertices[i].Location
				pdf.Line(tx(a.X), ty(a.Y), tx(b.X), ty(b.Y))
			}
		}
	}

	if err := pdf.WritePdf(path); err != nil {
		return fmt.Errorf("failed to write PDF %s: %w", path, err)
	}
	return nil
}

// drawArc approximates an arc with short line segments; gopdf has no
// native arc primitive.
func drawArc(pdf *gopdf.GoPdf, tx, ty func(float64) float64, center dxfio.Point, radius, startDeg, endDeg float64) {
	prevX := center.X + radius*math.Cos(startDeg*math.Pi/180)
	prevY := center.Y + radius*math.Sin(startDeg*math.Pi/180)
	for deg := startDeg + arcStepDegree; deg <= endDeg+arcStepDegree/2; deg += arcStepDegree {
		if deg > endDeg {
			deg = endDeg
		}
		x := center.X + radius*math.Cos(deg*math.Pi/180)
		y := center.Y + radius*math.Sin(deg*math.Pi/180)
		pdf.Line(tx(prevX), ty(prevY), tx(x), ty(y))
		prevX, prevY = x, y
		if deg == endDeg {
			break
		}
	}
}

func bounds(drawing *dxfio.Drawing) (minX, minY, maxX, maxY float64, found bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
		found = true
	}
	for _, e := range drawing.Entities {
		switch spec := e.Specific.(type) {
		case *dxfio.Line:
			grow(spec.P1.X, spec.P1.Y)
			grow(spec.P2.X, spec.P2.Y)
		case *dxfio.Circle:
			grow(spec.Center.X-spec.Radius, spec.Center.Y-spec.Radius)
			grow(spec.Center.X+spec.Radius, spec.Center.Y+spec.Radius)
		case *dxfio.Arc:
			grow(spec.Center.X-spec.Radius, spec.Center.Y-spec.Radius)
			grow(spec.Center.X+spec.Radius, spec.Center.Y+spec.Radius)
		case *dxfio.Polyline:
			for _, v := range spec.Vertices {
				grow(v.Location.X, v.Location.Y)
			}
		}
	}
	return minX, minY, maxX, maxY, found
}
