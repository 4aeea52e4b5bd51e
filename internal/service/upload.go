package service

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/furnico/internal/storage"
	"github.com/Skotchmaster/furnico/internal/transport"
)

const (
	maxImageBytes = 4 << 20
	maxImageFiles = 10
	maxModelBytes = 16 << 20
)

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var modelTypes = map[string]string{
	".glb":  "model/gltf-binary",
	".gltf": "model/gltf+json",
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

type UploadService struct {
	Storage storage.Presigner
}

func (s *UploadService) PresignImages(ctx context.Context, files []transport.UploadFile) ([]storage.PresignedUpload, error) {
	if len(files) == 0 || len(files) > maxImageFiles {
		return nil, fmt.Errorf("%w: between 1 and %d images per request", ErrValidation, maxImageFiles)
	}
	for _, f := range files {
		if !imageTypes[strings.ToLower(f.ContentType)] {
			return nil, fmt.Errorf("%w: %s: unsupported image type %q", ErrValidation, f.Filename, f.ContentType)
		}
		if f.Size <= 0 || f.Size > maxImageBytes {
			return nil, fmt.Errorf("%w: %s: images must be at most 4MB", ErrValidation, f.Filename)
		}
	}
	return s.presign(ctx, "products/images", files, func(f transport.UploadFile) string {
		return strings.ToLower(f.ContentType)
	})
}

func (s *UploadService) PresignModel(ctx context.Context, files []transport.UploadFile) ([]storage.PresignedUpload, error) {
	if len(files) != 1 {
		return nil, fmt.Errorf("%w: exactly one 3D model per request", ErrValidation)
	}
	f := files[0]
	if _, ok := modelTypes[strings.ToLower(path.Ext(f.Filename))]; !ok {
		return nil, fmt.Errorf("%w: %s: 3D models must be .glb or .gltf", ErrValidation, f.Filename)
	}
	if f.Size <= 0 || f.Size > maxModelBytes {
		return nil, fmt.Errorf("%w: %s: 3D models must be at most 16MB", ErrValidation, f.Filename)
	}
	return s.presign(ctx, "products/models", files, func(f transport.UploadFile) string {
		return modelTypes[strings.ToLower(path.Ext(f.Filename))]
	})
}

func (s *UploadService) presign(ctx context.Context, prefix string, files []transport.UploadFile, contentType func(transport.UploadFile) string) ([]storage.PresignedUpload, error) {
	if s.Storage == nil {
		return nil, fmt.Errorf("%w: object storage", ErrNotConfigured)
	}
	out := make([]storage.PresignedUpload, 0, len(files))
	for _, f := range files {
		key := fmt.Sprintf("%s/%s-%s", prefix, uuid.NewString(), SanitizeFilename(f.Filename))
		up, err := s.Storage.PresignPut(ctx, key, contentType(f), f.Size)
		if err != nil {
			return nil, err
		}
		out = append(out, *up)
	}
	return out, nil
}

func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeName.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		return "file"
	}
	if len(name) > 100 {
		ext := path.Ext(name)
		if len(ext) > 20 {
			ext = ""
		}
		name = name[:100-len(ext)] + ext
	}
	return name
}
