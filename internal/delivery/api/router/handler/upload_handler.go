package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"storeapi/internal/delivery/api/response"
	domainerrors "storeapi/internal/domain/errors"
	"storeapi/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// uploadFormField is the multipart field carrying the file.
const uploadFormField = "file"

// UploadHandlerParams holds dependencies for UploadHandler, injected by Fx.
type UploadHandlerParams struct {
	fx.In

	UploadUC usecase.UploadUsecase
	Logger   *slog.Logger
}

// UploadHandler accepts image uploads and serves them back.
type UploadHandler struct {
	uploadUC usecase.UploadUsecase
	logger   *slog.Logger
}

// NewUploadHandler is the constructor for UploadHandler
func NewUploadHandler(params UploadHandlerParams) *UploadHandler {
	return &UploadHandler{
		uploadUC: params.UploadUC,
		logger:   params.Logger,
	}
}

// UploadResponse tells the client where the file can be fetched.
type UploadResponse struct {
	Detail  string `json:"detail"`
	FileURL string `json:"file_url"`
}

// Upload handles POST /upload.
func (h *UploadHandler) Upload(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile(uploadFormField)
	if err != nil {
		return domainerrors.ErrValidationFailed.WithMessage("multipart field 'file' is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return errors.Wrap(err, "failed to read uploaded file")
	}

	contentType := fileHeader.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.uploadUC.UploadImage(c.Request().Context(), user, usecase.UploadImageInput{
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, UploadResponse{
		Detail:  fileHeader.Filename + " uploaded successfully",
		FileURL: url,
	})
}

// Serve handles GET /uploads/* by streaming the stored object.
func (h *UploadHandler) Serve(c echo.Context) error {
	key := c.Param("*")
	if key == "" || strings.Contains(key, "..") {
		return domainerrors.ErrNotFound.WithMessage("file not found")
	}

	reader, contentType, err := h.uploadUC.OpenImage(c.Request().Context(), key)
	if err != nil {
		return errors.WithStack(err)
	}
	defer reader.Close()

	return c.Stream(http.StatusOK, contentType, reader)
}
