package utils

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// FrameToImage converts a row-major ARGB buffer of the given width into
// an RGBA image.
func FrameToImage(frame []uint32, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height && i < len(frame); i++ {
		c := frame[i]
		img.Pix[i*4] = uint8(c >> 16)
		img.Pix[i*4+1] = uint8(c >> 8)
		img.Pix[i*4+2] = uint8(c)
		img.Pix[i*4+3] = uint8(c >> 24)
	}
	return img
}

// StackScreens places top above bottom in a single image, the way the
// two screens sit on the console.
func StackScreens(top, bottom image.Image) *image.RGBA {
	tb, bb := top.Bounds(), bottom.Bounds()
	w := Max(tb.Dx(), bb.Dx())
	out := image.NewRGBA(image.Rect(0, 0, w, tb.Dy()+bb.Dy()))
	draw.Draw(out, tb.Sub(tb.Min), top, tb.Min, draw.Src)
	draw.Draw(out, image.Rect(0, tb.Dy(), bb.Dx(), tb.Dy()+bb.Dy()), bottom, bb.Min, draw.Src)
	return out
}

// ScaleImage scales img by an integer factor using nearest neighbour.
func ScaleImage(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out
}

// EncodeImage writes img to w as png or bmp.
func EncodeImage(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "png", "":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("unsupported image format %q", format)
}
