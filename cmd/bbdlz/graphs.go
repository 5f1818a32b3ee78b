package main

import (
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"golang.org/x/exp/slices"
)

// scatterIntMap renders an SVG scatter plot for an int-keyed histogram.
func scatterIntMap(path string, hist map[int]int) error {
	keys := make([]int, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	xvals := make([]float64, 0, len(keys))
	yvals := make([]float64, 0, len(keys))
	for _, k := range keys {
		xvals = append(xvals, float64(k))
		yvals = append(yvals, float64(hist[k]))
	}
	graph := chart.Chart{
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					DotWidth: 3,
				},
				XValues: xvals,
				YValues: yvals,
			},
		},
	}

	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fh.Close()
	return graph.Render(chart.SVG, fh)
}
