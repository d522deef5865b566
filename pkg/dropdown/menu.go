package dropdown

// defaultMaxVisible is the number of item rows shown before the menu scrolls.
const defaultMaxVisible = 6

// Item is one entry of the menu.
type Item struct {
	Key      string
	Label    string
	Disabled bool
}

// window tracks which slice of the items is visible.
type window struct {
	offset     int
	maxVisible int
}

func (w window) visible(total int) int {
	return min(w.maxVisible, total)
}

// reveal scrolls the least amount needed to bring idx into view.
func (w window) reveal(idx, total int) window {
	n := w.visible(total)
	if idx >= 0 && n > 0 {
		if idx < w.offset {
			w.offset = idx
		} else if idx >= w.offset+n {
			w.offset = idx - n + 1
		}
	}
	return w.clamp(total)
}

// scroll moves the window by delta rows.
func (w window) scroll(delta, total int) window {
	w.offset += delta
	return w.clamp(total)
}

func (w window) clamp(total int) window {
	maxOffset := max(0, total-w.visible(total))
	w.offset = clamp(w.offset, 0, maxOffset)
	return w
}

// bounds returns the half-open index range of visible items.
func (w window) bounds(total int) (start, end int) {
	w = w.clamp(total)
	return w.offset, w.offset + w.visible(total)
}

func (w window) moreAbove() bool {
	return w.offset > 0
}

func (w window) moreBelow(total int) bool {
	return w.offset+w.visible(total) < total
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
