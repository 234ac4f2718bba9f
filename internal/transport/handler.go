// Package transport exposes the scoring engine over HTTP.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/config"
	apperrors "github.com/superdoc-dev/superdoc-visual-benchmarks/internal/errors"
	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/logger"
	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/scoring"
	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/storage"
	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

// ScoreRequest carries parallel lists of page render URLs. Page i of the
// candidate is compared against page i of the reference.
type ScoreRequest struct {
	ReferenceURLs []string `json:"reference_urls" binding:"required"`
	CandidateURLs []string `json:"candidate_urls" binding:"required"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func validateImageURL(imageURL string) error {
	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return apperrors.NewValidationError("invalid URL format", err)
	}
	if parsedURL.Host == "" {
		return apperrors.NewValidationError("URL must have a valid host", nil)
	}
	return nil
}

func validateScoreRequest(req *ScoreRequest) error {
	if len(req.ReferenceURLs) == 0 {
		return apperrors.NewValidationError("reference_urls must not be empty", nil)
	}
	if len(req.ReferenceURLs) != len(req.CandidateURLs) {
		return apperrors.NewValidationError(
			fmt.Sprintf("page count mismatch: %d reference vs %d candidate",
				len(req.ReferenceURLs), len(req.CandidateURLs)), nil)
	}
	for _, u := range req.ReferenceURLs {
		if err := validateImageURL(u); err != nil {
			return err
		}
	}
	for _, u := range req.CandidateURLs {
		if err := validateImageURL(u); err != nil {
			return err
		}
	}
	return nil
}

// NewHandler wires the scoring routes.
func NewHandler(fetcher storage.ImageFetcher, scoreCfg scoring.Config, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)
	r.POST("/score", scoreDocument(fetcher, scoreCfg, cfg))

	return r
}

func scoreDocument(f storage.ImageFetcher, scoreCfg scoring.Config, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Processing score request")

		var req ScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		if err := validateScoreRequest(&req); err != nil {
			respondError(c, apperrors.GetStatusCode(err), "invalid score request", err)
			return
		}

		refs, err := fetchAll(ctx, f, req.ReferenceURLs)
		if err != nil {
			fetchErr := wrapFetchError(err)
			respondError(c, fetchErr.StatusCode, "failed to fetch reference pages", fetchErr)
			return
		}
		cands, err := fetchAll(ctx, f, req.CandidateURLs)
		if err != nil {
			fetchErr := wrapFetchError(err)
			respondError(c, fetchErr.StatusCode, "failed to fetch candidate pages", fetchErr)
			return
		}

		doc, err := scoring.ScoreDocumentImages(refs, cands, scoreCfg, cfg.Workers)
		if err != nil {
			procErr := apperrors.NewProcessingError("scoring failed", err)
			respondError(c, procErr.StatusCode, "scoring failed", procErr)
			return
		}

		logger.WithFields(logrus.Fields{
			"pages":              doc.PageCount,
			"overall_score":      doc.OverallScore,
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Score request completed")

		c.JSON(http.StatusOK, doc)
	}
}

// fetchAll downloads every page render concurrently, preserving order.
func fetchAll(ctx context.Context, f storage.ImageFetcher, urls []string) ([]*imaging.RGB, error) {
	images := make([]*imaging.RGB, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			img, err := f.FetchImage(gctx, u)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", u, err)
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func wrapFetchError(err error) *apperrors.AppError {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewNetworkError("image fetch timeout", err)
	}
	return apperrors.NewNetworkError("failed to fetch image", err)
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	if code := apperrors.GetStatusCode(err); code != http.StatusInternalServerError {
		return code
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
