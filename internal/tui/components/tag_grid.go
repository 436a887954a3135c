package components

import (
	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/asteroid-belt/dishdeck/internal/tui/theme"
	"github.com/charmbracelet/lipgloss"
)

// FilterChip is one selectable tag in the grid.
type FilterChip struct {
	Label    string
	Value    string
	Category string
}

// TagGrid displays filter tags in a horizontal flow grid with keyboard
// navigation and multi-selection.
type TagGrid struct {
	chips        []FilterChip
	selected     map[string]bool
	cursor       int
	width        int
	height       int
	scrollOffset int // Vertical scroll (in rows)
	focused      bool

	// Calculated layout
	chipWidths []int // Width of each rendered chip
	rowStarts  []int // Index of first chip in each row
}

// NewTagGrid creates a new tag grid component.
func NewTagGrid() *TagGrid {
	return &TagGrid{selected: make(map[string]bool)}
}

// SetCategories replaces the chips with the options of cats, in order.
// Selections whose value is still offered are kept.
func (tg *TagGrid) SetCategories(cats []models.FilterCategory) {
	tg.chips = tg.chips[:0]
	offered := make(map[string]bool)
	for _, cat := range cats {
		for _, opt := range cat.Options {
			if opt.Value == "" || offered[opt.Value] {
				continue
			}
			offered[opt.Value] = true
			tg.chips = append(tg.chips, FilterChip{Label: opt.Label, Value: opt.Value, Category: cat.Name})
		}
	}
	for v := range tg.selected {
		if !offered[v] {
			delete(tg.selected, v)
		}
	}
	tg.cursor = 0
	tg.scrollOffset = 0
	tg.calculateLayout()
}

// SetSize sets the available width and height for rendering.
func (tg *TagGrid) SetSize(width, height int) {
	tg.width = width
	tg.height = height
	tg.calculateLayout()
}

// SetFocused sets the focus state.
func (tg *TagGrid) SetFocused(focused bool) {
	tg.focused = focused
}

// IsFocused returns whether the grid is focused.
func (tg *TagGrid) IsFocused() bool {
	return tg.focused
}

// Cursor returns the chip under the cursor.
func (tg *TagGrid) Cursor() *FilterChip {
	if tg.cursor >= 0 && tg.cursor < len(tg.chips) {
		return &tg.chips[tg.cursor]
	}
	return nil
}

// CursorIndex returns the current cursor index.
func (tg *TagGrid) CursorIndex() int {
	return tg.cursor
}

// ChipCount returns the number of chips.
func (tg *TagGrid) ChipCount() int {
	return len(tg.chips)
}

// Toggle flips the selection of the chip under the cursor.
func (tg *TagGrid) Toggle() {
	c := tg.Cursor()
	if c == nil {
		return
	}
	if tg.selected[c.Value] {
		delete(tg.selected, c.Value)
	} else {
		tg.selected[c.Value] = true
	}
}

// ClearSelection deselects every chip.
func (tg *TagGrid) ClearSelection() {
	clear(tg.selected)
}

// Select replaces the selection with values. Values the grid does not
// offer are ignored.
func (tg *TagGrid) Select(values []string) {
	clear(tg.selected)
	for _, v := range values {
		for _, c := range tg.chips {
			if c.Value == v {
				tg.selected[v] = true
				break
			}
		}
	}
}

// Selected returns the selected values in grid order.
func (tg *TagGrid) Selected() []string {
	var out []string
	for _, c := range tg.chips {
		if tg.selected[c.Value] {
			out = append(out, c.Value)
		}
	}
	return out
}

// calculateLayout computes chip widths and row positions.
func (tg *TagGrid) calculateLayout() {
	if len(tg.chips) == 0 || tg.width == 0 {
		tg.chipWidths = nil
		tg.rowStarts = nil
		return
	}

	tg.chipWidths = make([]int, len(tg.chips))
	tg.rowStarts = []int{0}

	availableWidth := tg.width - 4 // Account for margins
	currentRowWidth := 0
	chipMargin := 1

	for i, chip := range tg.chips {
		// "✓ label" plus padding
		chipWidth := lipgloss.Width(chip.Label) + 2 + 2 + chipMargin
		tg.chipWidths[i] = chipWidth

		if currentRowWidth+chipWidth > availableWidth && currentRowWidth > 0 {
			tg.rowStarts = append(tg.rowStarts, i)
			currentRowWidth = chipWidth
		} else {
			currentRowWidth += chipWidth
		}
	}
}

// selectedRow returns the row index of the cursor.
func (tg *TagGrid) selectedRow() int {
	for row := len(tg.rowStarts) - 1; row >= 0; row-- {
		if tg.cursor >= tg.rowStarts[row] {
			return row
		}
	}
	return 0
}

// rowBounds returns the start and end indices for a row.
func (tg *TagGrid) rowBounds(row int) (start, end int) {
	if row < 0 || row >= len(tg.rowStarts) {
		return 0, 0
	}
	start = tg.rowStarts[row]
	if row+1 < len(tg.rowStarts) {
		end = tg.rowStarts[row+1]
	} else {
		end = len(tg.chips)
	}
	return start, end
}

// MoveLeft moves the cursor left.
func (tg *TagGrid) MoveLeft() {
	if tg.cursor > 0 {
		tg.cursor--
		tg.adjustScroll()
	}
}

// MoveRight moves the cursor right.
func (tg *TagGrid) MoveRight() {
	if tg.cursor < len(tg.chips)-1 {
		tg.cursor++
		tg.adjustScroll()
	}
}

// MoveUp moves the cursor up one row. Returns true if already at the top
// row.
func (tg *TagGrid) MoveUp() bool {
	currentRow := tg.selectedRow()
	if currentRow == 0 {
		return true
	}

	rowStart, _ := tg.rowBounds(currentRow)
	posInRow := tg.cursor - rowStart

	prevRowStart, prevRowEnd := tg.rowBounds(currentRow - 1)
	if posInRow >= prevRowEnd-prevRowStart {
		tg.cursor = prevRowEnd - 1
	} else {
		tg.cursor = prevRowStart + posInRow
	}

	tg.adjustScroll()
	return false
}

// MoveDown moves the cursor down one row.
func (tg *TagGrid) MoveDown() {
	currentRow := tg.selectedRow()
	if currentRow >= len(tg.rowStarts)-1 {
		return
	}

	rowStart, _ := tg.rowBounds(currentRow)
	posInRow := tg.cursor - rowStart

	nextRowStart, nextRowEnd := tg.rowBounds(currentRow + 1)
	if posInRow >= nextRowEnd-nextRowStart {
		tg.cursor = nextRowEnd - 1
	} else {
		tg.cursor = nextRowStart + posInRow
	}

	tg.adjustScroll()
}

// adjustScroll ensures the cursor row is visible.
func (tg *TagGrid) adjustScroll() {
	if tg.height == 0 {
		return
	}

	visibleRows := max(1, tg.height)
	currentRow := tg.selectedRow()

	if currentRow >= tg.scrollOffset+visibleRows {
		tg.scrollOffset = currentRow - visibleRows + 1
	}
	if currentRow < tg.scrollOffset {
		tg.scrollOffset = currentRow
	}
}

// View renders the tag grid.
func (tg *TagGrid) View() string {
	if len(tg.chips) == 0 {
		return lipgloss.NewStyle().
			Foreground(theme.Current.TextMuted).
			Italic(true).
			MarginLeft(2).
			Render("No filters available")
	}

	totalRows := len(tg.rowStarts)
	visibleRows := max(1, tg.height-2)
	startRow := tg.scrollOffset
	endRow := min(startRow+visibleRows, totalRows)

	var rows []string
	for row := startRow; row < endRow; row++ {
		rowStart, rowEnd := tg.rowBounds(row)
		var rowChips []string

		for i := rowStart; i < rowEnd; i++ {
			chip := tg.chips[i]
			mark := "  "
			if tg.selected[chip.Value] {
				mark = "✓ "
			}

			style := lipgloss.NewStyle().
				Background(theme.GetTagColor(chip.Category)).
				Foreground(lipgloss.Color("#000000")).
				Padding(0, 1).
				Margin(0, 1, 0, 0)
			if tg.focused && i == tg.cursor {
				style = style.
					Background(lipgloss.Color("#FFFFFF")).
					Bold(true)
			}
			rowChips = append(rowChips, style.Render(mark+chip.Label))
		}

		rowContent := lipgloss.JoinHorizontal(lipgloss.Top, rowChips...)
		rows = append(rows, lipgloss.NewStyle().MarginLeft(2).Render(rowContent))
	}

	muted := lipgloss.NewStyle().Foreground(theme.Current.TextMuted).MarginLeft(2)
	var result string
	if tg.scrollOffset > 0 {
		result = muted.Render("↑ more filters above") + "\n"
	}
	result += lipgloss.JoinVertical(lipgloss.Left, rows...)
	if endRow < totalRows {
		result += "\n" + muted.Render("↓ more filters below")
	}

	return result
}
