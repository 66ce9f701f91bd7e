// Command texload decodes a PNG image and writes it out as a texload
// texture file: a little-endian (width uint32, height uint32) header
// followed by width*height little-endian 0x00RRGGBB texels, ready for
// cmd/rasterdemo's -texture flag. Replaces the teacher's
// tools/font2rgba.go (a one-off hardcoded-path PNG extraction script)
// with a general, CLI-driven loader.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

func main() {
	in := flag.String("in", "", "input PNG path")
	out := flag.String("out", "", "output texture path")
	width := flag.Int("width", 0, "resize to this width (0 = keep source width)")
	height := flag.Int("height", 0, "resize to this height (0 = keep source height)")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "texload: -in and -out are required")
		os.Exit(1)
	}

	img, err := decodePNG(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "texload: %v\n", err)
		os.Exit(1)
	}

	if *width > 0 || *height > 0 {
		img = resize(img, *width, *height)
	}

	if err := writeTexture(*out, img); err != nil {
		fmt.Fprintf(os.Stderr, "texload: %v\n", err)
		os.Exit(1)
	}
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// resize scales img to the requested dimensions, defaulting either
// axis to the source size when 0. Uses x/image/draw's approximate
// bilinear scaler rather than nearest-neighbor, since the rasterizer
// itself samples textures nearest-neighbor at runtime and a softer
// source texture hides seams better under that sampling.
func resize(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if width <= 0 {
		width = b.Dx()
	}
	if height <= 0 {
		height = b.Dy()
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// writeTexture packs img into the 0x00RRGGBB row-major top-left-origin
// format raster.Texture expects, per spec.md §3.
func writeTexture(path string, img image.Image) error {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	var header [8]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(w))
	binary.LittleEndian.PutUint32(header[4:8], uint32(h))
	if _, err := f.Write(header[:]); err != nil {
		return err
	}

	row := make([]byte, 4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			texel := (r>>8)<<16 | (g>>8)<<8 | (bl >> 8)
			binary.LittleEndian.PutUint32(row, texel)
			if _, err := f.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}
