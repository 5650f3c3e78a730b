package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/spacetile/spacetile/pkg/treemap"
)

// viewCommand creates the view command for interactive terminal treemaps.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		noCache     bool
		refresh     bool
		hidden      bool
		timeoutSecs int
	)

	cmd := &cobra.Command{
		Use:   "view <path>",
		Short: "Browse a directory as an interactive terminal treemap",
		Long: `Browse a directory as an interactive terminal treemap.

The view command scans the given path and opens a full-screen treemap where
each tile is a file or folder, sized by disk usage and colored by category.

Keys:
  arrows/hjkl  move selection between tiles
  enter        zoom into the selected folder
  backspace    zoom back out
  q            quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd, args[0], hidden, timeoutSecs, noCache, refresh)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache and rescan")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "include hidden files and directories")
	cmd.Flags().IntVar(&timeoutSecs, "timeout", 0, "scan deadline in seconds (0 uses the configured default)")

	return cmd
}

// runView scans the path and hands the tree to the bubbletea browser.
func (c *CLI) runView(cmd *cobra.Command, root string, hidden bool, timeoutSecs int, noCache, refresh bool) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Scanning %s...", root))
	spinner.Start()

	tree, partial, _, err := runner.ScanWithCacheInfo(ctx, c.scanOptions(root, hidden, timeoutSecs, refresh))
	if err != nil {
		spinner.StopWithError("Scan failed")
		return fmt.Errorf("scan %s: %w", root, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	model := newViewModel(tree, partial)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

// =============================================================================
// viewModel - Bubbletea treemap browser
// =============================================================================

// tile is a laid-out rectangle in terminal cells.
type tile struct {
	node *treemap.Node
	x, y int
	w, h int
}

// viewModel is the bubbletea model for the interactive treemap.
type viewModel struct {
	root    *treemap.Node
	stack   []*treemap.Node // zoom path; the last element is displayed
	tiles   []tile
	cursor  int
	partial bool
	width   int
	height  int
}

func newViewModel(root *treemap.Node, partial bool) viewModel {
	return viewModel{
		root:    root,
		stack:   []*treemap.Node{root},
		partial: partial,
	}
}

// current returns the node whose children fill the screen.
func (m viewModel) current() *treemap.Node {
	return m.stack[len(m.stack)-1]
}

// selected returns the node under the cursor, or nil when nothing is laid out.
func (m viewModel) selected() *treemap.Node {
	if m.cursor < 0 || m.cursor >= len(m.tiles) {
		return nil
	}
	return m.tiles[m.cursor].node
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.moveCursor(-1, 0)
		case "right", "l":
			m.moveCursor(1, 0)
		case "up", "k":
			m.moveCursor(0, -1)
		case "down", "j":
			m.moveCursor(0, 1)
		case "enter":
			m.zoomIn()
		case "backspace", "b":
			m.zoomOut()
		}
	}
	return m, nil
}

// zoomIn descends into the selected directory if it has children of its own.
func (m *viewModel) zoomIn() {
	sel := m.selected()
	if sel == nil || !sel.IsDir() {
		return
	}
	m.stack = append(m.stack, sel)
	m.cursor = 0
	m.relayout()
}

// zoomOut returns to the parent level.
func (m *viewModel) zoomOut() {
	if len(m.stack) <= 1 {
		return
	}
	m.stack = m.stack[:len(m.stack)-1]
	m.cursor = 0
	m.relayout()
}

// moveCursor shifts the selection to the nearest tile whose center lies in
// the requested direction.
func (m *viewModel) moveCursor(dx, dy int) {
	if len(m.tiles) == 0 {
		return
	}
	cur := m.tiles[m.cursor]
	cx := cur.x + cur.w/2
	cy := cur.y + cur.h/2

	best := -1
	bestDist := -1
	for i, t := range m.tiles {
		if i == m.cursor {
			continue
		}
		tx := t.x + t.w/2
		ty := t.y + t.h/2
		if dx > 0 && tx <= cx {
			continue
		}
		if dx < 0 && tx >= cx {
			continue
		}
		if dy > 0 && ty <= cy {
			continue
		}
		if dy < 0 && ty >= cy {
			continue
		}
		dist := abs(tx-cx) + abs(ty-cy)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	if best >= 0 {
		m.cursor = best
	}
}

// relayout squarifies the current node's children into the content area.
func (m *viewModel) relayout() {
	m.tiles = nil

	contentW, contentH := m.contentSize()
	if contentW < 1 || contentH < 1 {
		return
	}

	nodes := m.current().Children
	if len(nodes) == 0 {
		nodes = []*treemap.Node{m.current()}
	}

	placements := treemap.Squarify(nodes, treemap.Rect{W: float64(contentW), H: float64(contentH)})
	for _, p := range placements {
		t := tile{
			node: p.Node,
			x:    int(p.Rect.X),
			y:    int(p.Rect.Y),
			w:    int(p.Rect.W + 0.5),
			h:    int(p.Rect.H + 0.5),
		}
		if t.x+t.w > contentW {
			t.w = contentW - t.x
		}
		if t.y+t.h > contentH {
			t.h = contentH - t.y
		}
		if t.w < 1 || t.h < 1 {
			continue
		}
		m.tiles = append(m.tiles, t)
	}

	if m.cursor >= len(m.tiles) {
		m.cursor = 0
	}
}

// contentSize returns the grid dimensions available for tiles, leaving room
// for the header and help bar.
func (m viewModel) contentSize() (int, int) {
	return m.width, m.height - 3
}

func (m viewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.gridView())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(" ↑↓←→ move · ⏎ zoom in · ⌫ zoom out · q quit"))
	return b.String()
}

// headerView renders the current path, its total size, and the selection.
func (m viewModel) headerView() string {
	cur := m.current()
	line := " " + StyleTitle.Render(cur.Path) +
		StyleDim.Render(" · ") + StyleValue.Render(humanize.Bytes(uint64(cur.Size)))

	if m.partial {
		line += StyleDim.Render(" · ") + StyleWarning.Render("partial scan")
	}

	if sel := m.selected(); sel != nil && sel != cur {
		line += "\n " + StyleDim.Render("selected: ") + StyleHighlight.Render(sel.Name) +
			StyleDim.Render(" · "+humanize.Bytes(uint64(sel.Size))+" · "+sel.Category.String())
	} else {
		line += "\n"
	}
	return line
}

// gridView paints every tile into a rune grid and renders it row by row.
func (m viewModel) gridView() string {
	contentW, contentH := m.contentSize()
	if contentW < 1 || contentH < 1 {
		return ""
	}

	grid := make([][]rune, contentH)
	styles := make([][]lipgloss.Style, contentH)
	for y := range grid {
		grid[y] = make([]rune, contentW)
		styles[y] = make([]lipgloss.Style, contentW)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	for i, t := range m.tiles {
		m.drawTile(grid, styles, t, i == m.cursor, contentW, contentH)
	}

	var lines []string
	for y := 0; y < contentH; y++ {
		var line strings.Builder
		for x := 0; x < contentW; x++ {
			line.WriteString(styles[y][x].Render(string(grid[y][x])))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// drawTile fills one tile's area, border, and label into the grid.
func (m viewModel) drawTile(grid [][]rune, styles [][]lipgloss.Style, t tile, selected bool, gridW, gridH int) {
	fill := lipgloss.NewStyle().Foreground(categoryColor(t.node.Category))
	border := fill
	if selected {
		fill = fill.Bold(true)
		border = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	}

	set := func(x, y int, ch rune, st lipgloss.Style) {
		if x >= 0 && x < gridW && y >= 0 && y < gridH {
			grid[y][x] = ch
			styles[y][x] = st
		}
	}

	for x := t.x; x < t.x+t.w; x++ {
		set(x, t.y, '─', border)
		set(x, t.y+t.h-1, '─', border)
	}
	for y := t.y; y < t.y+t.h; y++ {
		set(t.x, y, '│', border)
		set(t.x+t.w-1, y, '│', border)
	}
	set(t.x, t.y, '┌', border)
	set(t.x+t.w-1, t.y, '┐', border)
	set(t.x, t.y+t.h-1, '└', border)
	set(t.x+t.w-1, t.y+t.h-1, '┘', border)

	if t.w < 5 || t.h < 3 {
		return
	}

	label := t.node.Name
	if t.node.IsDir() {
		label += "/"
	}
	maxLen := t.w - 4
	if len(label) > maxLen {
		label = label[:maxLen]
	}
	for i, ch := range label {
		set(t.x+2+i, t.y+1, ch, fill)
	}

	if t.h > 3 {
		size := humanize.Bytes(uint64(t.node.Size))
		if len(size) > maxLen {
			size = size[:maxLen]
		}
		for i, ch := range size {
			set(t.x+2+i, t.y+2, ch, fill)
		}
	}
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
