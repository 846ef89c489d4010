package layout

// PanelLayout holds calculated dimensions for the history, editor and
// response panels.
type PanelLayout struct {
	Width  int
	Height int

	HistoryWidth  int
	EditorWidth   int
	ResponseWidth int

	// EditorHeight and ResponseHeight differ from ContentHeight only when
	// Stacked is set.
	ContentHeight  int
	EditorHeight   int
	ResponseHeight int

	HistoryVisible bool
	Stacked        bool
}

const (
	titleBarHeight  = 1
	statusBarHeight = 1
	minHistoryWidth = 24
	maxHistoryWidth = 40
	stackBelow      = 90
	historyFrom     = 120
)

// Calculate computes the panel layout from terminal dimensions. Narrow
// terminals stack the editor above the response and hide history.
func Calculate(width, height int, historyVisible bool) PanelLayout {
	l := PanelLayout{
		Width:         width,
		Height:        height,
		ContentHeight: max(height-titleBarHeight-statusBarHeight, 1),
	}

	switch {
	case width < stackBelow:
		l.Stacked = true
		l.EditorWidth = width
		l.ResponseWidth = width
		l.EditorHeight = max(l.ContentHeight*2/5, 1)
		l.ResponseHeight = max(l.ContentHeight-l.EditorHeight, 1)
		return l
	case width >= historyFrom && historyVisible:
		l.HistoryVisible = true
		l.HistoryWidth = clamp(width/5, minHistoryWidth, maxHistoryWidth)
	}

	remaining := width - l.HistoryWidth
	l.EditorWidth = remaining * 2 / 5
	l.ResponseWidth = remaining - l.EditorWidth
	l.EditorHeight = l.ContentHeight
	l.ResponseHeight = l.ContentHeight
	return l
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
