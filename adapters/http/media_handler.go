package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mediaUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/media"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

const maxUploadBytes = 10 << 20

type MediaHandler struct {
	uploadMediaUC *mediaUC.UploadMediaUseCase
	logger        logger.Logger
}

func NewMediaHandler(uploadUC *mediaUC.UploadMediaUseCase, log logger.Logger) *MediaHandler {
	return &MediaHandler{uploadMediaUC: uploadUC, logger: log}
}

func (h *MediaHandler) UploadMedia(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.Error(apperror.NewInvalidInput("file exceeds 10MB", nil))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return
	}
	defer file.Close()

	out, err := h.uploadMediaUC.Execute(c.Request.Context(), mediaUC.UploadMediaInput{File: file})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, out)
}
