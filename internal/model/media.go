package model

import "time"

// Media is an uploaded image or video served from /media/{bucket}/{path}.
type Media struct {
	ID        string    `json:"id"`
	Bucket    string    `json:"bucket"`
	Path      string    `json:"path"`
	MIME      string    `json:"mime"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Media buckets.
const (
	BucketImages = "images"
	BucketVideos = "videos"
)

// URL returns the public URL of the media object.
func (m *Media) URL() string {
	return "/media/" + m.Bucket + "/" + m.Path
}
