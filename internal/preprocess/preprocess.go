// Package preprocess normalizes page images before they are sent for recognition.
package preprocess

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// MaxDimension is the largest width or height Normalize lets through.
const MaxDimension = 1200

// Normalize returns a single-channel copy of img whose larger side is at most
// MaxDimension, preserving aspect ratio. A *image.Gray that already fits is
// returned as is, so Normalize(Normalize(x)) == Normalize(x).
func Normalize(img image.Image) image.Image {
	g := toGray(img)
	b := g.Bounds()
	w, h := fit(b.Dx(), b.Dy(), MaxDimension)
	if w == b.Dx() && h == b.Dy() {
		return g
	}
	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), g, b, draw.Src, nil)
	return dst
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// fit scales (w, h) down so neither exceeds limit, rounding to the nearest pixel.
func fit(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		nh := (h*limit + w/2) / w
		if nh < 1 {
			nh = 1
		}
		return limit, nh
	}
	nw := (w*limit + h/2) / h
	if nw < 1 {
		nw = 1
	}
	return nw, limit
}

// Decode reads a jpeg, png or bmp image and reports its format name.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// EncodePNG encodes img losslessly for transmission.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
