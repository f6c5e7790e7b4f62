package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/notification"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response, attaching any notifications the
// operation produced for the current request
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data).WithNotifications(h.drainNotifications(c)))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data).WithNotifications(h.drainNotifications(c)))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message))
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}

// HandleError converts domain and transport errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponse(domainErr.Code, domainErr.Message).
			WithNotifications(h.drainNotifications(c)))
		return
	}

	c.JSON(http.StatusBadGateway, dto.NewErrorResponse(dto.ErrCodeRemoteUnavailable, "Cart operation failed").
		WithNotifications(h.drainNotifications(c)))
}

// BindError translates request binding failures, expanding validator field
// errors into per-field details
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		details := make([]dto.ValidationDetail, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			details = append(details, dto.ValidationDetail{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Message: fe.Error(),
			})
		}
		resp := dto.NewErrorResponse(dto.ErrCodeValidation, "Request validation failed")
		resp.Data = details
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	h.BadRequest(c, err.Error())
}

// drainNotifications empties the per-request notification collector
func (h *BaseHandler) drainNotifications(c *gin.Context) []cart.Notification {
	collector, ok := notification.CollectorFromContext(c.Request.Context())
	if !ok {
		return nil
	}
	return collector.Drain()
}
