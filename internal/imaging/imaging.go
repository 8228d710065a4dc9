// Package imaging normalizes uploaded images before they are stored.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// MaxDimension is the maximum width or height for stored images.
const MaxDimension = 1920

// JPEGQuality is the compression quality for JPEG output.
const JPEGQuality = 85

// decoders maps the sniffed MIME types that get re-encoded to their decoder.
var decoders = map[string]func([]byte) (image.Image, error){
	"image/jpeg": func(b []byte) (image.Image, error) { return jpeg.Decode(bytes.NewReader(b)) },
	"image/png":  func(b []byte) (image.Image, error) { return png.Decode(bytes.NewReader(b)) },
	"image/webp": func(b []byte) (image.Image, error) { return webp.Decode(bytes.NewReader(b)) },
}

// Result is a processed image ready to store.
type Result struct {
	Data []byte
	MIME string
	Ext  string
}

// Process validates the image format by sniffing bytes. JPEG, PNG and WebP
// are downscaled to MaxDimension and re-encoded as JPEG. GIF is returned
// unchanged so animations survive.
func Process(data []byte) (*Result, error) {
	detected := http.DetectContentType(data)

	if detected == "image/gif" {
		return &Result{Data: data, MIME: detected, Ext: "gif"}, nil
	}

	decode, ok := decoders[detected]
	if !ok {
		return nil, fmt.Errorf("unsupported image format: %s (JPEG, PNG, WebP and GIF accepted)", detected)
	}

	img, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = downscale(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	return &Result{Data: buf.Bytes(), MIME: "image/jpeg", Ext: "jpg"}, nil
}

// downscale resizes the image so neither dimension exceeds maxDim, keeping
// the aspect ratio. Smaller images are returned as-is.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := maxDim, maxDim
	if w > h {
		newH = max(1, h*maxDim/w)
	} else {
		newW = max(1, w*maxDim/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
