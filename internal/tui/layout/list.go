package layout

// CalculateListHeight computes the number of lines available for rows.
// Returns at least MinHeight.
func CalculateListHeight(terminalHeight int, cfg ListConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateRowWidth computes the width available for row content.
func CalculateRowWidth(terminalWidth int, cfg ListConfig) int {
	width := terminalWidth - cfg.ContentPadding
	if width < cfg.MinWidth {
		return cfg.MinWidth
	}
	return width
}

// CalculateWindow picks the rows to draw when rows have different heights.
// Returns (start, end) where rows[start:end] fit into height lines and
// include the cursor row. The cursor row is always included, even when it
// alone is taller than height.
func CalculateWindow(heights []int, cursor, height int) (start, end int) {
	total := len(heights)
	if total == 0 {
		return 0, 0
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= total {
		cursor = total - 1
	}

	// Grow upwards from the cursor until the window is full
	start = cursor
	used := heights[cursor]
	for start > 0 && used+heights[start-1] <= height {
		start--
		used += heights[start]
	}

	// Fill the remaining space below the cursor
	end = cursor + 1
	for end < total && used+heights[end] <= height {
		used += heights[end]
		end++
	}

	return start, end
}
