package main

import (
	"fmt"
	"math"
	"math/big"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/ritprem/ritprem/wafer"
)

const (
	plotRows     = 20
	defaultWidth = 80
	labelWidth   = 24
)

var (
	plotTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	axisStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= labelWidth+10 {
		return defaultWidth
	}
	return w
}

// renderPlot draws log10(density) against depth as horizontal bars. The
// samples are grouped into at most plotRows bands, each showing its peak.
func renderPlot(samples []wafer.Sample, symbol string, width int) string {
	var b strings.Builder
	b.WriteString(plotTitleStyle.Render("Depth profile: " + symbol))
	b.WriteString("\n\n")

	if len(samples) == 0 {
		b.WriteString(axisStyle.Render("(no grid points)"))
		b.WriteString("\n")
		return b.String()
	}

	bands := bandPeaks(samples, plotRows)
	top := 0.0
	for _, band := range bands {
		top = math.Max(top, band.log)
	}

	barWidth := max(width-labelWidth-2, 1)
	for _, band := range bands {
		n := 0
		if top > 0 {
			n = int(math.Round(band.log / top * float64(barWidth)))
		}
		label := fmt.Sprintf("%7.3f µm %10.3e ", band.depth, band.peak)
		b.WriteString(axisStyle.Render(fmt.Sprintf("%-*s", labelWidth, label)))
		b.WriteString(barStyle.Render(strings.Repeat("█", n)))
		b.WriteString("\n")
	}
	return b.String()
}

type band struct {
	depth float64
	peak  float64
	log   float64
}

func bandPeaks(samples []wafer.Sample, rows int) []band {
	size := (len(samples) + rows - 1) / rows
	var out []band
	for start := 0; start < len(samples); start += size {
		end := min(start+size, len(samples))
		b := band{depth: samples[start].Depth}
		for _, s := range samples[start:end] {
			b.peak = math.Max(b.peak, toFloat(s.Density))
		}
		if b.peak >= 1 {
			b.log = math.Log10(b.peak)
		}
		out = append(out, b)
	}
	return out
}

func toFloat(x *big.Int) float64 {
	if x == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(x).Float64()
	return f
}
