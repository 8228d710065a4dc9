package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func createTestJPEG(w, h int) []byte {
	var buf bytes.Buffer
	jpeg.Encode(&buf, solid(w, h, color.RGBA{255, 0, 0, 255}), &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	var buf bytes.Buffer
	png.Encode(&buf, solid(w, h, color.RGBA{0, 0, 255, 255}))
	return buf.Bytes()
}

func decodedSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestProcessJPEG(t *testing.T) {
	result, err := Process(createTestJPEG(100, 100))
	if err != nil {
		t.Fatalf("Process JPEG: %v", err)
	}
	if result.MIME != "image/jpeg" || result.Ext != "jpg" {
		t.Errorf("expected image/jpeg with .jpg, got %s .%s", result.MIME, result.Ext)
	}
	if len(result.Data) == 0 {
		t.Error("expected non-empty data")
	}
}

func TestProcessPNG(t *testing.T) {
	result, err := Process(createTestPNG(100, 100))
	if err != nil {
		t.Fatalf("Process PNG: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("expected PNG to be re-encoded as JPEG, got %s", result.MIME)
	}
}

func TestProcessDownscale(t *testing.T) {
	result, err := Process(createTestPNG(2400, 1200))
	if err != nil {
		t.Fatalf("Process large image: %v", err)
	}

	w, h := decodedSize(t, result.Data)
	if w != MaxDimension || h != 960 {
		t.Errorf("expected %dx960, got %dx%d", MaxDimension, w, h)
	}
}

func TestProcessSmallImageNotUpscaled(t *testing.T) {
	result, err := Process(createTestJPEG(50, 50))
	if err != nil {
		t.Fatalf("Process small image: %v", err)
	}

	if w, h := decodedSize(t, result.Data); w != 50 || h != 50 {
		t.Errorf("small image should not be resized: got %dx%d", w, h)
	}
}

func TestProcessGIFPassthrough(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 10, 10), color.Palette{color.Black, color.White})
	var buf bytes.Buffer
	if err := gif.Encode(&buf, pal, nil); err != nil {
		t.Fatal(err)
	}

	result, err := Process(buf.Bytes())
	if err != nil {
		t.Fatalf("Process GIF: %v", err)
	}
	if result.MIME != "image/gif" || result.Ext != "gif" {
		t.Errorf("expected image/gif, got %s", result.MIME)
	}
	if !bytes.Equal(result.Data, buf.Bytes()) {
		t.Error("GIF should be stored unchanged")
	}
}

func TestProcessInvalidFormat(t *testing.T) {
	if _, err := Process([]byte("not an image")); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestProcessCorruptJPEG(t *testing.T) {
	data := createTestJPEG(20, 20)
	if _, err := Process(data[:len(data)/3]); err == nil {
		t.Error("expected error for truncated JPEG")
	}
}
