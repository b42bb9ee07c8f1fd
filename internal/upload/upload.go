// Package upload abstracts the image/CDN upload client.
package upload

import (
	"context"
	"io"
)

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, name string) (string, error)
}
