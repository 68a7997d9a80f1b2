package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/fxql_service/internal/apperrors"
	"github.com/SscSPs/fxql_service/internal/dto"
	"github.com/SscSPs/fxql_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

func respond(c *gin.Context, status int, code, message string, data any) {
	c.JSON(status, dto.Response{
		Success: true,
		Message: message,
		Code:    code,
		Data:    data,
	})
}

// respondError maps a service error onto a status code and the error envelope.
// A submission with failed pairs is always a server error, whatever the cause
// of each pair; data is attached only in that case.
func respondError(c *gin.Context, err error, data any) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if pairs := apperrors.FailedPairs(err); len(pairs) > 0 {
		logger.Error("Failed to persist FXQL pairs", slog.String("error", err.Error()), slog.Any("failed_pairs", pairs))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Message:     "Error processing FXQL pairs: " + strings.Join(pairs, ", "),
			Code:        dto.CodeInternal,
			FailedPairs: pairs,
			Data:        data,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Rejected request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error(), Code: dto.CodeBadRequest})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error(), Code: dto.CodeNotFound})
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Unknown Error Occured", Code: dto.CodeInternal})
	}
}
