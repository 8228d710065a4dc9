package media

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/erazemk/aradaa/internal/model"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// mp4Header is the start of an ISO BMFF file with an mp4 brand.
var mp4Header = []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom")

func TestPrepareImage(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	up, err := Prepare(testPNG(t), "image/png", "projects", now)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if up.Bucket != model.BucketImages || up.MIME != "image/jpeg" {
		t.Errorf("unexpected upload: bucket=%s mime=%s", up.Bucket, up.MIME)
	}
	if !strings.HasPrefix(up.Path, "projects/1700000000000-") || !strings.HasSuffix(up.Path, ".jpg") {
		t.Errorf("unexpected path %q", up.Path)
	}
}

func TestPrepareDefaultFolder(t *testing.T) {
	up, err := Prepare(testPNG(t), "", " ", time.Now())
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if !strings.HasPrefix(up.Path, DefaultFolder+"/") {
		t.Errorf("expected default folder, got %q", up.Path)
	}
}

func TestPrepareVideo(t *testing.T) {
	up, err := Prepare(mp4Header, "video/mp4", "showreel", time.Now())
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if up.Bucket != model.BucketVideos || up.MIME != "video/mp4" || !strings.HasSuffix(up.Path, ".mp4") {
		t.Errorf("unexpected upload: %+v", up)
	}
	if !bytes.Equal(up.Data, mp4Header) {
		t.Error("videos must be stored unchanged")
	}
}

func TestPrepareRejects(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		declared string
		folder   string
		want     error
	}{
		{"text", []byte("hello world"), "image/png", "hero", ErrUnsupportedType},
		{"spoofed video", []byte("plain text pretending"), "video/mp4", "hero", ErrUnsupportedType},
		{"bad folder", []byte("x"), "", "../etc", ErrInvalidFolder},
		{"nested folder", []byte("x"), "", "a/b", ErrInvalidFolder},
		{"large video", append(append([]byte{}, mp4Header...), make([]byte, MaxVideoSize)...), "video/mp4", "hero", ErrTooLarge},
	}

	for _, tt := range tests {
		_, err := Prepare(tt.data, tt.declared, tt.folder, time.Now())
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestPrepareImageTooLarge(t *testing.T) {
	data := append(testPNG(t), make([]byte, MaxImageSize)...)
	_, err := Prepare(data, "image/png", "hero", time.Now())
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if !strings.Contains(err.Error(), "5.0 MiB") {
		t.Errorf("expected human-readable limit in %q", err.Error())
	}
}

func TestVideoType(t *testing.T) {
	tests := []struct {
		sniffed, declared, want string
		ok                      bool
	}{
		{"video/webm", "", "video/webm", true},
		{"application/ogg", "video/ogg", "video/ogg", true},
		{"application/octet-stream", "video/quicktime; codecs=avc1", "video/quicktime", true},
		{"application/octet-stream", "video/mp4", "", false},
		{"text/plain; charset=utf-8", "video/quicktime", "", false},
	}
	for _, tt := range tests {
		got, ok := videoType(tt.sniffed, tt.declared)
		if got != tt.want || ok != tt.ok {
			t.Errorf("videoType(%q, %q) = %q, %v; want %q, %v", tt.sniffed, tt.declared, got, ok, tt.want, tt.ok)
		}
	}
}
