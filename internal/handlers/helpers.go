package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "budgetboard/internal/errors"
	"budgetboard/internal/logger"
	"budgetboard/internal/models"
)

// ErrorResponse represents a JSON error body in API documentation.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// MessageResponse represents a simple message body in API documentation.
type MessageResponse struct {
	Message string `json:"message"`
}

// pathMonth returns the month path parameter, validated against the twelve
// month names. Returns ErrMonthNotFound for anything else so an unknown
// month behaves the same whether it is malformed or simply absent.
func pathMonth(c *gin.Context) (string, error) {
	month := c.Param("month")
	if !models.IsMonthName(month) {
		return "", apperrors.ErrMonthNotFound
	}
	return month, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
