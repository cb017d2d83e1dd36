package impl

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"strings"

	deliverycontext "storeapi/internal/delivery/context"
	"storeapi/internal/domain/entity"
	domainerrors "storeapi/internal/domain/errors"
	"storeapi/internal/domain/service"
	"storeapi/internal/usecase"
	"storeapi/internal/util"

	"github.com/pkg/errors"
)

// uploadService implements the UploadUsecase interface.
type uploadService struct {
	store  service.ImageStore
	logger *slog.Logger
}

// NewUploadService is the constructor for uploadService.
func NewUploadService(store service.ImageStore, logger *slog.Logger) usecase.UploadUsecase {
	return &uploadService{
		store:  store,
		logger: logger,
	}
}

// UploadImage stores an image/* file and returns its URL.
func (srv *uploadService) UploadImage(ctx context.Context, user *entity.User, input usecase.UploadImageInput) (string, error) {
	mediaType, _, err := mime.ParseMediaType(input.ContentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return "", domainerrors.ErrValidationFailed.WithMessage("only image uploads are accepted")
	}

	if len(input.Data) == 0 {
		return "", domainerrors.ErrValidationFailed.WithMessage("uploaded file is empty")
	}

	url, err := srv.store.Put(ctx, input.Filename, mediaType, input.Data)
	if err != nil {
		return "", errors.Wrap(err, "failed to store uploaded image")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Image uploaded",
		slog.Int64("user_id", user.ID),
		slog.String("size", util.FormatBytes(int64(len(input.Data)))),
	)

	return url, nil
}

// OpenImage streams a previously uploaded image.
func (srv *uploadService) OpenImage(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return srv.store.Open(ctx, key)
}
