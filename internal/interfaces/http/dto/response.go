package dto

import "github.com/storefront/backend/internal/domain/cart"

// Response represents a standard API response. Notifications are the
// transient announcements the web client renders as toasts; they ride on
// the envelope of the request that produced them
type Response struct {
	Success       bool                `json:"success"`
	Data          any                 `json:"data,omitempty"`
	Error         *ErrorInfo          `json:"error,omitempty"`
	Notifications []cart.Notification `json:"notifications,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// WithNotifications attaches notifications to a response
func (r Response) WithNotifications(notifications []cart.Notification) Response {
	r.Notifications = notifications
	return r
}
