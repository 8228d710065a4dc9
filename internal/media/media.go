// Package media validates uploads and decides where they are stored.
package media

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/erazemk/aradaa/internal/imaging"
	"github.com/erazemk/aradaa/internal/model"
)

// Size limits per kind of upload.
const (
	MaxImageSize = 5 << 20
	MaxVideoSize = 50 << 20
)

// DefaultFolder is used when the upload names no folder.
const DefaultFolder = "hero"

var (
	// ErrUnsupportedType is returned for files that are neither an accepted
	// image nor an accepted video.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrTooLarge is returned when a file exceeds its kind's size limit.
	ErrTooLarge = errors.New("file too large")

	// ErrInvalidFolder is returned for folder names that are not a single
	// lowercase path segment.
	ErrInvalidFolder = errors.New("invalid folder name")
)

// videoExt maps accepted video types to their file extension.
var videoExt = map[string]string{
	"video/mp4":       "mp4",
	"video/webm":      "webm",
	"video/ogg":       "ogg",
	"video/quicktime": "mov",
}

var folderPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// Upload is a validated file ready to store.
type Upload struct {
	Bucket string
	Path   string
	MIME   string
	Data   []byte
}

// Prepare checks an uploaded file against the upload policy. declared is
// the client's content type and is only trusted for videos the sniffer
// cannot identify. Images are normalized through imaging.Process.
func Prepare(data []byte, declared, folder string, now time.Time) (*Upload, error) {
	folder = strings.TrimSpace(folder)
	if folder == "" {
		folder = DefaultFolder
	}
	if !folderPattern.MatchString(folder) {
		return nil, ErrInvalidFolder
	}

	sniffed := http.DetectContentType(data)

	if strings.HasPrefix(sniffed, "image/") {
		if len(data) > MaxImageSize {
			return nil, fmt.Errorf("%w: images are limited to %s", ErrTooLarge, humanize.IBytes(MaxImageSize))
		}
		img, err := imaging.Process(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedType, err)
		}
		return &Upload{
			Bucket: model.BucketImages,
			Path:   objectPath(folder, img.Ext, now),
			MIME:   img.MIME,
			Data:   img.Data,
		}, nil
	}

	mime, ok := videoType(sniffed, declared)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, sniffed)
	}
	if len(data) > MaxVideoSize {
		return nil, fmt.Errorf("%w: videos are limited to %s", ErrTooLarge, humanize.IBytes(MaxVideoSize))
	}
	return &Upload{
		Bucket: model.BucketVideos,
		Path:   objectPath(folder, videoExt[mime], now),
		MIME:   mime,
		Data:   data,
	}, nil
}

// videoType resolves the stored MIME type of a video upload.
func videoType(sniffed, declared string) (string, bool) {
	if _, ok := videoExt[sniffed]; ok {
		return sniffed, true
	}
	declared = strings.ToLower(strings.TrimSpace(strings.SplitN(declared, ";", 2)[0]))
	switch {
	case sniffed == "application/ogg" && declared == "video/ogg":
		return declared, true
	case sniffed == "application/octet-stream" && declared == "video/quicktime":
		return declared, true
	}
	return "", false
}

func objectPath(folder, ext string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s/%d-%s.%s", folder, now.UnixMilli(), suffix, ext)
}

// Limit returns the request body limit for an upload: the largest file
// accepted plus room for the multipart framing.
func Limit() int64 {
	return MaxVideoSize + 1<<20
}
