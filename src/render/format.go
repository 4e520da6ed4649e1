package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gofpdf "github.com/go-pdf/fpdf"

	"github.com/neal-igolgi/h265-benchmark/src/figure"
)

// Format is an output encoding.
type Format int

const (
	FormatPNG Format = iota
	FormatSVG
	FormatPDF
)

func (f Format) String() string {
	switch f {
	case FormatSVG:
		return "svg"
	case FormatPDF:
		return "pdf"
	default:
		return "png"
	}
}

// FormatFromPath picks the format from the file extension; unknown extensions get PNG.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FormatSVG
	case ".pdf":
		return FormatPDF
	default:
		return FormatPNG
	}
}

// WritePDF renders fig as PNG and places it on a landscape A4 page.
func WritePDF(w io.Writer, fig *figure.Figure, opts Options) error {
	res, err := Render(fig, opts, FormatPNG)
	if err != nil {
		return err
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(fig.Title(), true)
	pdf.SetCreator("vmafplot", true)
	pdf.AddPage()

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	name := fmt.Sprintf("figure-%d", fig.ID)
	pdf.RegisterImageOptionsReader(name, imgOpts, bytes.NewReader(res.Data))

	const margin = 10.0
	pageW, pageH := pdf.GetPageSize()
	availW, availH := pageW-2*margin, pageH-2*margin
	imgW := availW
	imgH := imgW * float64(res.Layout.Height) / float64(res.Layout.Width)
	if imgH > availH {
		imgH = availH
		imgW = imgH * float64(res.Layout.Width) / float64(res.Layout.Height)
	}
	x := (pageW - imgW) / 2
	y := (pageH - imgH) / 2
	pdf.ImageOptions(name, x, y, imgW, imgH, false, imgOpts, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return pdf.Output(w)
}

// Save writes fig to path in the format its extension names.
func Save(path string, fig *figure.Figure, opts Options) error {
	var buf bytes.Buffer
	switch format := FormatFromPath(path); format {
	case FormatPDF:
		if err := WritePDF(&buf, fig, opts); err != nil {
			return err
		}
	default:
		res, err := Render(fig, opts, format)
		if err != nil {
			return err
		}
		buf.Write(res.Data)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
