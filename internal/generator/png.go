package generator

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/disintegration/imaging"
)

// pngHeaderLen covers the signature and the IHDR chunk, which must come first.
const pngHeaderLen = 8 + 4 + 4 + 13 + 4

// CropToContent trims uniform background borders from img, keeping pad
// pixels around the drawn content. An image without content is returned
// unchanged.
func CropToContent(img image.Image, background color.Color, pad int) image.Image {
	b := img.Bounds()
	br, bg, bb, ba := background.RGBA()

	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if r == br && g == bg && bl == bb && a == ba {
				continue
			}
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)
		}
	}
	if maxX < minX {
		return img
	}

	rect := image.Rect(minX-pad, minY-pad, maxX+1+pad, maxY+1+pad).Intersect(b)
	return imaging.Crop(img, rect)
}

// EncodePNG encodes img as PNG and records dpi in a pHYs chunk.
func EncodePNG(img image.Image, dpi float64) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return withDPI(buf.Bytes(), dpi)
}

// withDPI inserts a pHYs chunk right after IHDR.
func withDPI(data []byte, dpi float64) ([]byte, error) {
	if len(data) < pngHeaderLen || string(data[12:16]) != "IHDR" {
		return nil, errors.New("not a png stream")
	}

	ppm := uint32(math.Round(dpi / 0.0254))
	body := make([]byte, 4+9)
	copy(body, "pHYs")
	binary.BigEndian.PutUint32(body[4:], ppm)
	binary.BigEndian.PutUint32(body[8:], ppm)
	body[12] = 1 // unit: meter

	chunk := make([]byte, 4, 4+len(body)+4)
	binary.BigEndian.PutUint32(chunk, 9)
	chunk = append(chunk, body...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(body))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:pngHeaderLen]...)
	out = append(out, chunk...)
	out = append(out, data[pngHeaderLen:]...)
	return out, nil
}

// SavePNG writes img to path, replacing any existing file.
func SavePNG(img image.Image, path string, dpi float64) error {
	data, err := EncodePNG(img, dpi)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
