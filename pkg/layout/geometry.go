package layout

import "image"

// Geometry maps the day grid to pixels at scale 1.
type Geometry struct {
	DayWidth   int
	LabelWidth int
	RowHeight  int
	RowGap     int
	Padding    int
	MaxDays    int // day columns drawn at most; bars past it are clipped
}

// DefaultGeometry matches a 32px day column and a 192px label column.
var DefaultGeometry = Geometry{
	DayWidth:   32,
	LabelWidth: 192,
	RowHeight:  24,
	RowGap:     8,
	Padding:    16,
	MaxDays:    366,
}

// WithDefaults fills zero fields from DefaultGeometry.
func (g Geometry) WithDefaults() Geometry {
	if g.DayWidth <= 0 {
		g.DayWidth = DefaultGeometry.DayWidth
	}
	if g.LabelWidth <= 0 {
		g.LabelWidth = DefaultGeometry.LabelWidth
	}
	if g.RowHeight <= 0 {
		g.RowHeight = DefaultGeometry.RowHeight
	}
	if g.RowGap < 0 {
		g.RowGap = DefaultGeometry.RowGap
	}
	if g.Padding < 0 {
		g.Padding = DefaultGeometry.Padding
	}
	if g.MaxDays <= 0 {
		g.MaxDays = DefaultGeometry.MaxDays
	}
	return g
}

func (g Geometry) rowTop(row int) int {
	// row 0 is the date header
	return g.Padding + row*(g.RowHeight+g.RowGap)
}

// spanColumns is one column per header date, widened for bars of inverted
// tasks that end past MaxDate.
func (g Geometry) spanColumns(tl *Timeline) int {
	cols := tl.TotalSpanDays + 1
	for _, bar := range tl.Bars {
		cols = max(cols, max(0, bar.OffsetDays)+max(1, bar.SpanDays))
	}
	return cols
}

// Columns is the number of day columns drawn, at most MaxDays.
func (g Geometry) Columns(tl *Timeline) int {
	cols := g.spanColumns(tl)
	if g.MaxDays > 0 {
		cols = min(cols, g.MaxDays)
	}
	return cols
}

// Clipped reports whether some days of tl fall right of the drawn grid.
func (g Geometry) Clipped(tl *Timeline) bool {
	return g.spanColumns(tl) > g.Columns(tl)
}

// GridWidth is the width of the day grid.
func (g Geometry) GridWidth(tl *Timeline) int {
	return g.Columns(tl) * g.DayWidth
}

// HeaderRect is the cell of header date i.
func (g Geometry) HeaderRect(i int) image.Rectangle {
	x := g.Padding + g.LabelWidth + i*g.DayWidth
	y := g.rowTop(0)
	return image.Rect(x, y, x+g.DayWidth, y+g.RowHeight)
}

// LabelRect is the name cell of bar i.
func (g Geometry) LabelRect(i int) image.Rectangle {
	y := g.rowTop(i + 1)
	return image.Rect(g.Padding, y, g.Padding+g.LabelWidth, y+g.RowHeight)
}

// BarRect is the pixel rectangle of bar i. Bars are at least one day wide,
// never start left of the grid and are clipped to its right edge; a bar
// starting past the grid is empty.
func (g Geometry) BarRect(tl *Timeline, i int) image.Rectangle {
	bar := tl.Bars[i]
	cols := g.Columns(tl)
	from := min(max(0, bar.OffsetDays), cols)
	to := min(max(0, bar.OffsetDays)+max(1, bar.SpanDays), cols)
	left := g.Padding + g.LabelWidth
	y := g.rowTop(i + 1)
	return image.Rect(left+from*g.DayWidth, y, left+to*g.DayWidth, y+g.RowHeight)
}

// LegendTop is the y coordinate of the legend row.
func (g Geometry) LegendTop(tl *Timeline) int {
	return g.rowTop(len(tl.Bars)+1) + g.RowGap
}

// Size is the full chart size, legend included.
func (g Geometry) Size(tl *Timeline) image.Point {
	width := g.Padding*2 + g.LabelWidth + g.GridWidth(tl)
	height := g.LegendTop(tl) + g.RowHeight + g.Padding
	return image.Pt(width, height)
}
