package usecase

import (
	"context"
	"io"

	"storeapi/internal/domain/entity"
)

// UploadImageInput is a single uploaded file.
type UploadImageInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UploadUsecase stores images that posts can reference by URL.
type UploadUsecase interface {
	UploadImage(ctx context.Context, user *entity.User, input UploadImageInput) (string, error)
	OpenImage(ctx context.Context, key string) (io.ReadCloser, string, error)
}
