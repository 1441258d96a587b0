// ABOUTME: Availability bar widget showing booked versus free units
// ABOUTME: Colors shift as a unit type sells out

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AvailBarConfig holds configuration for the availability bar
type AvailBarConfig struct {
	Width      int
	FreeColor  lipgloss.Color
	LowColor   lipgloss.Color
	FullColor  lipgloss.Color
	EmptyColor lipgloss.Color
}

// DefaultAvailBarConfig returns sensible defaults
func DefaultAvailBarConfig() AvailBarConfig {
	return AvailBarConfig{
		Width:      20,
		FreeColor:  lipgloss.Color("#10B981"), // Green
		LowColor:   lipgloss.Color("#F59E0B"), // Amber
		FullColor:  lipgloss.Color("#EF4444"), // Red
		EmptyColor: lipgloss.Color("#374151"), // Dark gray
	}
}

// AvailBar renders the free share of a unit's capacity. Low stock turns
// amber below a third remaining, red at zero.
func AvailBar(free, capacity int, config AvailBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}
	if capacity < 1 {
		capacity = 1
	}
	if free < 0 {
		free = 0
	}
	if free > capacity {
		free = capacity
	}

	filled := free * config.Width / capacity

	color := config.FreeColor
	if free == 0 {
		color = config.FullColor
	} else if free*3 <= capacity {
		color = config.LowColor
	}

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < config.Width; i++ {
		if i < filled {
			bar.WriteString(lipgloss.NewStyle().Foreground(color).Render("█"))
		} else {
			bar.WriteString(lipgloss.NewStyle().Foreground(config.EmptyColor).Render("░"))
		}
	}
	bar.WriteString("]")
	return bar.String()
}

// AvailBarWithLabel renders the bar with a "free/capacity" label
func AvailBarWithLabel(free, capacity int, config AvailBarConfig) string {
	label := fmt.Sprintf("%d/%d free", free, capacity)

	color := config.FreeColor
	if free == 0 {
		color = config.FullColor
		label = "sold out"
	} else if free*3 <= capacity {
		color = config.LowColor
	}

	styled := lipgloss.NewStyle().Foreground(color).Render(label)
	return fmt.Sprintf("%s %s", AvailBar(free, capacity, config), styled)
}
