package server

import (
	"fmt"
	"math"
	"strings"

	"sensitivecancergpt/predictor"
)

const (
	barChartWidth  = 520
	barChartHeight = 260
	barPlotTop     = 16
	barPlotBottom  = 40
	barGap         = 0.3

	donutSize = 260
	donutHole = 0.4
)

var chartPalette = []string{"#636efa", "#ef553b", "#00cc96", "#ab63fa", "#ffa15a", "#19d3f3", "#ff6692", "#b6e880"}

type bar struct {
	Label  string
	Count  int
	X, Y   float64
	W, H   float64
	LabelX float64
	Color  string
}

type barChart struct {
	Width, Height int
	BaselineY     float64
	Max           int
	Bars          []bar
}

// newBarChart lays out one bar per label; heights scale to the largest count.
func newBarChart(counts []predictor.LabelCount) *barChart {
	c := &barChart{Width: barChartWidth, Height: barChartHeight}
	c.BaselineY = float64(barChartHeight - barPlotBottom)
	if len(counts) == 0 {
		return c
	}
	for _, lc := range counts {
		if lc.Count > c.Max {
			c.Max = lc.Count
		}
	}
	plotH := c.BaselineY - barPlotTop
	slot := float64(barChartWidth) / float64(len(counts))
	w := slot * (1 - barGap)
	for i, lc := range counts {
		h := plotH * float64(lc.Count) / float64(c.Max)
		x := slot*float64(i) + (slot-w)/2
		c.Bars = append(c.Bars, bar{
			Label:  lc.Label,
			Count:  lc.Count,
			X:      x,
			Y:      c.BaselineY - h,
			W:      w,
			H:      h,
			LabelX: x + w/2,
			Color:  chartPalette[i%len(chartPalette)],
		})
	}
	return c
}

type slice struct {
	Label   string
	Count   int
	Percent float64
	Path    string
	Color   string
}

type donutChart struct {
	Size   int
	Total  int
	Slices []slice
}

// newDonutChart builds annular sectors clockwise from 12 o'clock.
// hole is the inner radius as a fraction of the outer one.
func newDonutChart(counts []predictor.LabelCount, hole float64) *donutChart {
	c := &donutChart{Size: donutSize}
	for _, lc := range counts {
		c.Total += lc.Count
	}
	if c.Total == 0 {
		return c
	}
	center := float64(donutSize) / 2
	outer := center - 4
	inner := outer * hole
	start := 0.0
	for i, lc := range counts {
		frac := float64(lc.Count) / float64(c.Total)
		end := start + frac*2*math.Pi
		c.Slices = append(c.Slices, slice{
			Label:   lc.Label,
			Count:   lc.Count,
			Percent: math.Round(frac*1000) / 10,
			Path:    sectorPath(center, outer, inner, start, end),
			Color:   chartPalette[i%len(chartPalette)],
		})
		start = end
	}
	return c
}

// sectorPath returns an SVG path for the ring segment between angles a0 and a1.
// A full ring is drawn as two halves since a single arc cannot close on itself.
func sectorPath(center, outer, inner, a0, a1 float64) string {
	if a1-a0 >= 2*math.Pi-1e-9 {
		mid := a0 + math.Pi
		return sectorPath(center, outer, inner, a0, mid) + " " + sectorPath(center, outer, inner, mid, a1)
	}
	large := 0
	if a1-a0 > math.Pi {
		large = 1
	}
	pt := func(r, a float64) string {
		return fmt.Sprintf("%.2f %.2f", center+r*math.Sin(a), center-r*math.Cos(a))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "M %s ", pt(outer, a0))
	fmt.Fprintf(&b, "A %.2f %.2f 0 %d 1 %s ", outer, outer, large, pt(outer, a1))
	fmt.Fprintf(&b, "L %s ", pt(inner, a1))
	fmt.Fprintf(&b, "A %.2f %.2f 0 %d 0 %s Z", inner, inner, large, pt(inner, a0))
	return b.String()
}
