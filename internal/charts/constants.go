package charts

const (
	// TickCount is the approximate number of ticks per measure axis.
	TickCount = 5

	// AxisLabelOffset is how far above the axis top the measure name sits.
	AxisLabelOffset = 9

	// MinMeasures is the fewest measures a parallel-coordinates chart can show.
	MinMeasures = 2
)
