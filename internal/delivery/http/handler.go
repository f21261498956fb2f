package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/grocerlens/backend/internal/domain"
	"github.com/sirupsen/logrus"
)

// SearchUsecase is the search pipeline as seen by the HTTP layer
type SearchUsecase interface {
	Search(ctx context.Context, prompt string) *domain.SearchResponse
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searchService SearchUsecase
	logger        *logrus.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(searchService SearchUsecase, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		searchService: searchService,
		logger:        logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Search handles POST /api/search. The prompt is trimmed and must be
// non-empty; the pipeline itself never fails.
func (h *Handler) Search(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.WithError(err).WithField("request_id", c.GetString(requestIDKey)).Debug("Rejected malformed search body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	prompt, err := ValidatePrompt(req.Prompt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required."})
		return
	}

	if h.searchService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search is not available"})
		return
	}

	// Fetches run to their own timeouts even if the client goes away
	ctx := context.WithoutCancel(c.Request.Context())

	c.JSON(http.StatusOK, h.searchService.Search(ctx, prompt))
}

// ValidatePrompt trims prompt and rejects empty input
func ValidatePrompt(prompt string) (string, error) {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return "", domain.ErrEmptyPrompt
	}
	return trimmed, nil
}
