package upload

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryUploader implements Uploader against Cloudinary.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

var _ Uploader = (*CloudinaryUploader)(nil)

// NewCloudinaryUploader creates an uploader from a cloudinary:// URL.
// Uploaded assets land in the given folder.
func NewCloudinaryUploader(cloudinaryURL, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: folder}, nil
}

// Upload stores the image and returns its HTTPS URL. The public id is
// derived from the file name plus a nanosecond suffix so repeated uploads
// never collide.
func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, name string) (string, error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	publicID := fmt.Sprintf("%s_%d", base, time.Now().UnixNano())

	truePtr := true
	result, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         u.folder,
		UniqueFilename: &truePtr,
		ResourceType:   "image",
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	url := result.SecureURL
	if url == "" {
		// Cloudinary occasionally returns only the plain URL.
		url = strings.Replace(result.URL, "http://", "https://", 1)
	}
	return url, nil
}
