// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"slices"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/hydration-tui/internal/models"
	"github.com/j-veylop/hydration-tui/internal/ui/styles"
)

// sparkChars are the block characters used by sparklines, low to high.
var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	// Ensure minimum dimensions
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.LowerBound(0),
		asciigraph.Caption(caption),
	)
}

// RenderBucketChart plots bucket volumes in liters with the first, middle
// and last labels printed under the x axis.
func RenderBucketChart(buckets []models.Bucket, width, height int, caption string) string {
	if len(buckets) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	empty := true
	for _, b := range buckets {
		if b.TotalMl > 0 {
			empty = false
			break
		}
	}
	if empty {
		return styles.HelpStyle.Render("No drinks recorded in this period")
	}

	if width < 20 {
		width = 20
	}
	chart := RenderLineChart(models.Liters(buckets), width, height, caption)

	return chart + "\n" + axisLabels(buckets, width)
}

// axisLabels spreads the first, middle and last bucket labels across width.
func axisLabels(buckets []models.Bucket, width int) string {
	first := buckets[0].Label
	last := buckets[len(buckets)-1].Label
	if len(buckets) == 1 {
		return styles.HelpStyle.Render(first)
	}
	mid := buckets[len(buckets)/2].Label

	gap := width - len(first) - len(mid) - len(last)
	if gap < 2 {
		return styles.HelpStyle.Render(first + " .. " + last)
	}
	left := gap / 2
	right := gap - left

	return styles.HelpStyle.Render(first + strings.Repeat(" ", left) + mid + strings.Repeat(" ", right) + last)
}

// RenderBucketBars draws one horizontal bar per bucket, scaled to the
// fullest bucket, followed by its volume in liters.
func RenderBucketBars(buckets []models.Bucket, width int) string {
	if len(buckets) == 0 {
		return ""
	}

	labelWidth := 0
	peak := 0.0
	for _, b := range buckets {
		labelWidth = max(labelWidth, len(b.Label))
		peak = max(peak, b.Liters)
	}
	if peak == 0 {
		peak = 1
	}
	// room for the label, the axis and the "  0.00 L" suffix
	barWidth := max(width-labelWidth-10, 10)

	lines := make([]string, len(buckets))
	for i, b := range buckets {
		n := int(b.Liters / peak * float64(barWidth))
		lines[i] = fmt.Sprintf("%*s │%s %.2f L", labelWidth, b.Label, strings.Repeat("█", n), b.Liters)
	}
	return strings.Join(lines, "\n")
}

// RenderSparkline squeezes values into width block characters. Values are
// sampled when there are more of them than columns.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	peak := slices.Max(values)
	if peak <= 0 {
		peak = 1
	}
	top := len(sparkChars) - 1
	step := max(float64(len(values))/float64(width), 1)

	var b strings.Builder
	for col := 0; col < width; col++ {
		i := int(float64(col) * step)
		if i >= len(values) {
			break
		}
		level := int(values[i] / peak * float64(top))
		b.WriteRune(sparkChars[min(max(level, 0), top)])
	}
	return b.String()
}
