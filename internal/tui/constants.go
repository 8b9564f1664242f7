package tui

import "time"

const (
	// DefaultTerminalWidth is the fallback terminal width when detection fails.
	DefaultTerminalWidth = 80

	// DefaultTerminalHeight is the fallback terminal height when detection fails.
	DefaultTerminalHeight = 24

	// ChartWidthPadding is the chart border and padding.
	ChartWidthPadding = 4

	// ChartBorderLines is the chart border overhead.
	ChartBorderLines = 2

	// ChromeLines is the status bar, legend line and help bar.
	ChromeLines = 3

	// TableMaxRows is the number of visible rows in the row table.
	TableMaxRows = 5

	// TableChromeLines is the row table border, header and footer.
	TableChromeLines = 6

	// MinChartWidth and MinChartHeight keep the chart drawable on tiny terminals.
	MinChartWidth  = 20
	MinChartHeight = 8

	// FrameInterval is the redraw interval while a transition runs.
	FrameInterval = time.Second / 30

	// HoverTolerance is the distance in cells within which the pointer hovers a row.
	HoverTolerance = 1.0
)

// chartLeft and chartTop are the screen cell of the chart canvas origin: the
// status bar, then the chart border and padding.
const (
	chartLeft = 2
	chartTop  = 2
)
