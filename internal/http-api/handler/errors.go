package handler

import (
	"errors"
	"net/http"
	"strings"

	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// respondServiceError maps the service failure taxonomy onto HTTP statuses:
// validation 400, forbidden 403, not found 404, conflict 409, anything
// unrecognised 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrWrongCode):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrUnknownUsername),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrGenreNotFound),
		errors.Is(err, service.ErrTitleNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrIdentityTaken),
		errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrTitleExists),
		errors.Is(err, service.ErrReviewExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrReservedUsername),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrYearInFuture),
		errors.Is(err, service.ErrYearNegative):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		zap.L().Error("unhandled service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// respondBindingError turns validator failures into a field-keyed body.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
