package storage

import (
	"bytes"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const maxImageDimension = 1600

// ProcessImage decodes an uploaded image, auto-orients it, caps the longest
// side, tiles a translucent watermark over it and re-encodes. PNG input stays
// PNG, everything else becomes JPEG.
func ProcessImage(data []byte, mark string) ([]byte, string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", err
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageDimension || bounds.Dy() > maxImageDimension {
		img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)
	}

	img = applyWatermark(img, mark)

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		format = "jpeg"
	}

	var out bytes.Buffer
	if format == "png" {
		if err := imaging.Encode(&out, img, imaging.PNG); err != nil {
			return nil, "", err
		}
		return out.Bytes(), "image/png", nil
	}
	if err := imaging.Encode(&out, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, "", err
	}
	return out.Bytes(), "image/jpeg", nil
}

// applyWatermark tiles the mark text diagonally across the image at low opacity
func applyWatermark(img image.Image, mark string) image.Image {
	if strings.TrimSpace(mark) == "" {
		return img
	}

	tile := renderMarkTile(mark)
	bounds := img.Bounds()
	out := imaging.Clone(img)

	step := tile.Bounds().Dx() + 80
	row := 0
	for y := 0; y < bounds.Dy(); y += tile.Bounds().Dy() + 120 {
		// stagger alternate rows so the mark survives cropping
		offset := 0
		if row%2 == 1 {
			offset = step / 2
		}
		for x := -offset; x < bounds.Dx(); x += step {
			out = imaging.Overlay(out, tile, image.Pt(x, y), 0.25)
		}
		row++
	}
	return out
}

// renderMarkTile rasterizes the mark text once onto a transparent tile
func renderMarkTile(mark string) *image.NRGBA {
	face := basicfont.Face7x13
	width := font.MeasureString(face, mark).Ceil()
	height := face.Metrics().Height.Ceil()

	tile := image.NewNRGBA(image.Rect(0, 0, width+4, height+4))
	drawer := &font.Drawer{
		Dst:  tile,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
		Face: face,
		Dot:  fixed.P(2, face.Metrics().Ascent.Ceil()+2),
	}
	drawer.DrawString(mark)
	return tile
}
