package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePDF writes a single landscape page whose size in points equals the
// bitmap's pixel size, with img covering the whole page.
func WritePDF(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		return err
	}

	width := float64(img.Bounds().Dx())
	height := float64(img.Bounds().Dy())

	// gofpdf swaps the page size for landscape; pass it pre-swapped so the page
	// comes out exactly width x height. Taller-than-wide charts stay portrait.
	orientation := "L"
	size := gofpdf.SizeType{Wd: height, Ht: width}
	if height > width {
		orientation = "P"
		size = gofpdf.SizeType{Wd: width, Ht: height}
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           size,
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("chart", opts, &buf)
	pdf.ImageOptions("chart", 0, 0, width, height, false, opts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
