package export

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/harrisonrobin/takt/pkg/layout"
)

// DefaultScale renders the chart at twice its layout size.
const DefaultScale = 2

// maxScaledPixels bounds the scaled bitmap; larger charts get a lower scale.
var maxScaledPixels = 1 << 26

var (
	background = color.RGBA{0xff, 0xff, 0xff, 0xff}
	gridLine   = color.RGBA{0xe5, 0xe7, 0xeb, 0xff}
	textColor  = color.RGBA{0x11, 0x18, 0x27, 0xff}
	barText    = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

var face = basicfont.Face7x13

// Render draws tl into a bitmap: a date header, one labelled bar per task and
// the trade legend. Scale multiplies every dimension; values below 1 are 1,
// and the scale is lowered for charts too large to scale up.
func Render(tl *layout.Timeline, g layout.Geometry, scale int) *image.RGBA {
	g = g.WithDefaults()
	size := g.Size(tl)
	img := image.NewRGBA(image.Rectangle{Max: size})
	fill(img, img.Bounds(), background)

	cols := g.Columns(tl)
	days := tl.Days(cols)
	for i := 0; i < cols; i++ {
		r := g.HeaderRect(i)
		vline(img, r.Min.X, r.Min.Y, g.LegendTop(tl)-g.RowGap, gridLine)
		label := "--"
		switch {
		case i == cols-1 && g.Clipped(tl):
			label = ">>"
		case i < len(days):
			label = days[i].Format("01-02")
		case tl.HasMinDate:
			label = tl.MinDate.AddDate(0, 0, i).Format("01-02")
		}
		centered(img, r, label, textColor)
	}

	for i, bar := range tl.Bars {
		label := g.LabelRect(i)
		text(img, label.Min.X, baseline(label), fit(bar.Task.Name, label.Dx()), textColor)

		r := g.BarRect(tl, i)
		fill(img, r, bar.Color.RGBA())
		centered(img, r, fit(bar.Task.Trade, r.Dx()), barText)
	}

	x := g.Padding
	y := g.LegendTop(tl)
	swatch := g.RowHeight * 2 / 3
	for _, e := range tl.Legend {
		top := y + (g.RowHeight-swatch)/2
		fill(img, image.Rect(x, top, x+swatch, top+swatch), e.Color.RGBA())
		x += swatch + 4
		text(img, x, y+g.RowHeight/2+face.Ascent/2, e.Trade, textColor)
		x += font.MeasureString(face, e.Trade).Ceil() + 16
	}

	for scale > 1 && size.X*scale*size.Y*scale > maxScaledPixels {
		scale--
	}
	if scale <= 1 {
		return img
	}
	scaled := image.NewRGBA(image.Rect(0, 0, size.X*scale, size.Y*scale))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return scaled
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	xdraw.Draw(img, r, image.NewUniform(c), image.Point{}, xdraw.Src)
}

func vline(img *image.RGBA, x, y0, y1 int, c color.Color) {
	for y := y0; y < y1; y++ {
		img.Set(x, y, c)
	}
}

func baseline(r image.Rectangle) int {
	return r.Min.Y + (r.Dy()+face.Ascent)/2
}

func text(img *image.RGBA, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func centered(img *image.RGBA, r image.Rectangle, s string, c color.Color) {
	w := font.MeasureString(face, s).Ceil()
	text(img, r.Min.X+(r.Dx()-w)/2, baseline(r), s, c)
}

// fit truncates s with "..." so it fits in width pixels.
func fit(s string, width int) string {
	if font.MeasureString(face, s).Ceil() <= width {
		return s
	}
	// basicfont is monospaced
	n := width/face.Advance - 3
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if n > len(runes) {
		n = len(runes)
	}
	return string(runes[:n]) + "..."
}
