// Package blobstore stores uploaded binary objects: profile pictures,
// qualification documents and generated PDF reports. Objects live
// under hierarchical keys and are addressed by tokenized download URLs
// so a plain key is never enough to fetch a private object.
package blobstore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

type FileStorage interface {
	// Upload writes the object and returns its key.
	Upload(ctx context.Context, file io.Reader, key string, contentType string) (string, error)

	// Download retrieves the object body.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object. Deleting a missing object is not an
	// error.
	Delete(ctx context.Context, key string) error

	// GetURL produces a URL the object can be fetched from.
	GetURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Exists checks whether the object is present.
	Exists(ctx context.Context, key string) (bool, error)
}

// ProfilePictureKey builds the object key for an employee's picture.
// The random element keeps successive uploads from colliding and acts
// as the access token in the download URL.
func ProfilePictureKey(uid, fileName string) (key, token string) {
	token = uuid.NewString()
	return fmt.Sprintf("profile_pictures/%s/%s_%s%s", uid, uid, token, ext(fileName)), token
}

// QualificationDocumentKey builds the object key for a qualification's
// supporting document.
func QualificationDocumentKey(uid, fileName string) (key, token string) {
	token = uuid.NewString()
	return fmt.Sprintf("qualifications/%s/%s_%s%s", uid, uid, token, ext(fileName)), token
}

// ReportKey builds the object key for a generated PDF report.
func ReportKey(generatedBy, fileName string) string {
	return fmt.Sprintf("reports/%s/%s", generatedBy, fileName)
}

// DownloadURL renders a bucket-scoped, tokenized media URL for key.
func DownloadURL(baseURL, bucket, key, token string) string {
	return fmt.Sprintf("%s/%s/%s?alt=media&token=%s",
		strings.TrimRight(baseURL, "/"), bucket, url.PathEscape(key), token)
}

// ObjectKeyFromURL recovers the object key from a previously issued
// download URL so old objects can be removed when replaced.
func ObjectKeyFromURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse object url: %w", err)
	}
	trimmed := strings.TrimPrefix(parsed.EscapedPath(), "/")
	if trimmed == "" {
		return "", fmt.Errorf("object url %q has no path", rawURL)
	}
	// The escaped key is always the final path segment; anything before
	// it is base path and bucket.
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	key, err := url.PathUnescape(trimmed)
	if err != nil {
		return "", fmt.Errorf("unescape object key: %w", err)
	}
	if key == "" {
		return "", fmt.Errorf("object url %q has no key", rawURL)
	}
	return key, nil
}

// ContentTypeFor maps a file name to a MIME type for the handful of
// formats the portal accepts.
func ContentTypeFor(fileName string) string {
	switch strings.ToLower(ext(fileName)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

func ext(fileName string) string {
	e := path.Ext(fileName)
	if e == "" {
		return ".bin"
	}
	return e
}
