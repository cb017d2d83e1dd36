package impl

import (
	"context"
	"io"
	"strings"
	"testing"

	"storeapi/internal/domain/entity"
	domainerrors "storeapi/internal/domain/errors"
	mockService "storeapi/internal/mocks/service"
	"storeapi/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadService_UploadImage(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{ID: 1}

	t.Run("image accepted", func(t *testing.T) {
		store := mockService.NewMockImageStore(t)
		svc := NewUploadService(store, newDiscardLogger())
		store.On("Put", ctx, "cat.png", "image/png", []byte("data")).Return("http://cdn/images/x.png", nil)

		url, err := svc.UploadImage(ctx, user, usecase.UploadImageInput{
			Filename:    "cat.png",
			ContentType: "image/png; charset=binary",
			Data:        []byte("data"),
		})
		require.NoError(t, err)
		assert.Equal(t, "http://cdn/images/x.png", url)
	})

	t.Run("non image rejected", func(t *testing.T) {
		store := mockService.NewMockImageStore(t)
		svc := NewUploadService(store, newDiscardLogger())

		_, err := svc.UploadImage(ctx, user, usecase.UploadImageInput{
			Filename:    "notes.txt",
			ContentType: "text/plain",
			Data:        []byte("data"),
		})
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})

	t.Run("empty rejected", func(t *testing.T) {
		store := mockService.NewMockImageStore(t)
		svc := NewUploadService(store, newDiscardLogger())

		_, err := svc.UploadImage(ctx, user, usecase.UploadImageInput{Filename: "a.png", ContentType: "image/png"})
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestUploadService_OpenImage(t *testing.T) {
	ctx := context.Background()
	store := mockService.NewMockImageStore(t)
	svc := NewUploadService(store, newDiscardLogger())

	store.On("Open", ctx, "images/x.png").Return(io.NopCloser(strings.NewReader("png")), "image/png", nil)

	reader, contentType, err := svc.OpenImage(ctx, "images/x.png")
	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, "image/png", contentType)
}
