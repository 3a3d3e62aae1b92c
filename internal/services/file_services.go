package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/apperr"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/logging"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/storage"

	"github.com/google/uuid"
)

var allowedImageExtensions = []string{"jpeg", "jpg", "png", "gif"}

type FileService struct {
	Store   storage.FileStore
	HostAPI string
	Log     logging.Logger
}

func NewFileService(store storage.FileStore, hostAPI string, log logging.Logger) *FileService {
	return &FileService{Store: store, HostAPI: strings.TrimRight(hostAPI, "/"), Log: log.With("component", "files")}
}

// imageExtension takes the subtype of an image/* mime type, e.g. "png".
func imageExtension(contentType string) (string, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}
	parts := strings.SplitN(mediaType, "/", 2)
	if len(parts) != 2 || parts[0] != "image" {
		return "", false
	}
	return parts[1], slices.Contains(allowedImageExtensions, parts[1])
}

// UploadProductImage stores r under a fresh uuid name and returns its public URL.
func (s *FileService) UploadProductImage(ctx context.Context, contentType string, r io.Reader) (string, error) {
	ext, ok := imageExtension(contentType)
	if !ok {
		return "", apperr.BadRequest("make sure that the file is an image")
	}
	name := fmt.Sprintf("%s.%s", uuid.New().String(), ext)
	if err := s.Store.Save(ctx, name, contentType, r); err != nil {
		s.Log.Error(ctx, "store upload", "name", name, "err", err)
		return "", apperr.Internal(err)
	}
	return s.HostAPI + "/files/product/" + name, nil
}

// ProductImage opens a stored image. The caller closes the reader.
func (s *FileService) ProductImage(ctx context.Context, name string) (io.ReadCloser, string, error) {
	rc, err := s.Store.Open(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, "", apperr.BadRequest(fmt.Sprintf("no product found with image %s", name))
		}
		s.Log.Error(ctx, "open upload", "name", name, "err", err)
		return nil, "", apperr.Internal(err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return rc, contentType, nil
}
