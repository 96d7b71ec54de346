// Package storage holds the asset-upload collaborator. The core treats it as
// opaque: a file goes in, a URL comes out, and that URL becomes a listing's
// image field.
package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// IAssetStorage defines the interface for storing uploaded assets.
type IAssetStorage interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// objectKey builds a unique, sanitized key for an uploaded file. The uuid
// prefix prevents collisions and overwrites between identically named files.
func objectKey(filename string) string {
	base := filepath.Base(filename)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)
	return uuid.NewString() + "_" + base
}
