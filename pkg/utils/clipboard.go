//go:build !test

package utils

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/sqweek/dialog"
	"golang.design/x/clipboard"
)

func CopyImage(img image.Image) error {
	err := clipboard.Init()
	if err != nil {
		return err
	}

	// encode image to byte slice
	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		return err
	}

	clipboard.Write(clipboard.FmtImage, b.Bytes())
	return nil
}

func SaveImage(img image.Image) error {
	// ask user where to save the image
	filename, err := dialog.File().Filter("PNG Image", "png").Filter("Bitmap", "bmp").Title("Save Image").Save()
	if err != nil {
		return err
	}

	format := "png"
	if strings.HasSuffix(strings.ToLower(filename), ".bmp") {
		format = "bmp"
	} else if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		filename += ".png"
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return EncodeImage(file, img, format)
}
