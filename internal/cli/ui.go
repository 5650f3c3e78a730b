package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/spacetile/spacetile/pkg/category"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// categoryColors maps file categories to terminal colors. The hues mirror
// the SVG palette so terminal and rendered output stay recognizable.
var categoryColors = map[category.Category]lipgloss.Color{
	category.Images:    lipgloss.Color("78"),  // green
	category.Videos:    lipgloss.Color("75"),  // blue
	category.Audio:     lipgloss.Color("135"), // purple
	category.Documents: lipgloss.Color("221"), // yellow
	category.Code:      lipgloss.Color("80"),  // teal
	category.Archives:  lipgloss.Color("209"), // orange
	category.System:    lipgloss.Color("167"), // red
	category.Other:     lipgloss.Color("245"), // gray
}

// categoryColor returns the terminal color for a category, falling back to
// the Other color for unknown values.
func categoryColor(cat category.Category) lipgloss.Color {
	if c, ok := categoryColors[cat]; ok {
		return c
	}
	return categoryColors[category.Other]
}

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconSwatch  = "■"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// File Output
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Stats Display
// =============================================================================

// printScanStats prints tree statistics on a single line.
func printScanStats(nodeCount, maxDepth int, totalSize int64, cached bool) {
	parts := []string{
		fmt.Sprintf("%d nodes", nodeCount),
		fmt.Sprintf("depth %d", maxDepth),
		humanize.Bytes(uint64(totalSize)),
		cachedLabel(cached),
	}
	printStatsLine(parts)
}

// printLayoutStats prints layout statistics on a single line.
func printLayoutStats(rectCount int, cached bool) {
	printStatsLine([]string{
		fmt.Sprintf("%d tiles", rectCount),
		cachedLabel(cached),
	})
}

func cachedLabel(cached bool) string {
	if cached {
		return styleCached.Render(iconCached)
	}
	return styleComputed.Render(iconFresh)
}

func printStatsLine(parts []string) {
	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// printCategoryLine prints one category's share of the total with a colored
// swatch.
func printCategoryLine(cat category.Category, size, total int64) {
	swatch := lipgloss.NewStyle().Foreground(categoryColor(cat)).Render(iconSwatch)
	name := lipgloss.NewStyle().Foreground(colorGray).Width(10).Render(cat.String())
	value := StyleValue.Render(humanize.Bytes(uint64(size)))

	share := ""
	if total > 0 {
		share = StyleDim.Render(fmt.Sprintf(" (%.0f%%)", 100*float64(size)/float64(total)))
	}
	fmt.Println("  " + swatch + " " + name + " " + value + share)
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Utilities
// =============================================================================

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
