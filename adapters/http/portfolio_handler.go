package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-builder/internal/application/usecase/ingest"
	portfolioUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/metrics"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type PortfolioHandler struct {
	generateContentUC   *ingest.GenerateContentUseCase
	generatePortfolioUC *ingest.GeneratePortfolioUseCase
	importResumeUC      *ingest.ImportResumeUseCase
	getPortfolioUC      *portfolioUC.GetPortfolioUseCase
	logger              logger.Logger
}

func NewPortfolioHandler(
	generateContentUC *ingest.GenerateContentUseCase,
	generatePortfolioUC *ingest.GeneratePortfolioUseCase,
	importResumeUC *ingest.ImportResumeUseCase,
	getPortfolioUC *portfolioUC.GetPortfolioUseCase,
	log logger.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		generateContentUC:   generateContentUC,
		generatePortfolioUC: generatePortfolioUC,
		importResumeUC:      importResumeUC,
		getPortfolioUC:      getPortfolioUC,
		logger:              log,
	}
}

type resumeRequest struct {
	ResumeText string `json:"resume_text" binding:"required"`
}

func (h *PortfolioHandler) GenerateContent(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("'resume_text' is required", err))
		return
	}

	content, err := h.generateContentUC.Execute(c.Request.Context(), ingest.GenerateContentInput{ResumeText: req.ResumeText})
	metrics.ObserveIngestion("content", err)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, content)
}

func (h *PortfolioHandler) GeneratePortfolio(c *gin.Context) {
	var req ingest.GeneratePortfolioInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("body is not a valid portfolio document", err))
		return
	}

	out, err := h.generatePortfolioUC.Execute(c.Request.Context(), req)
	metrics.ObserveIngestion("portfolio", err)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PortfolioHandler) ImportResume(c *gin.Context) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("'resume_text' is required", err))
		return
	}

	out, err := h.importResumeUC.Execute(c.Request.Context(), req.ResumeText)
	metrics.ObserveIngestion("import", err)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PortfolioHandler) GetPublicPortfolio(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("ownerID"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("ownerID must be a UUID", err))
		return
	}

	p, err := h.getPortfolioUC.Execute(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToPortfolioDTO(p))
}
