package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	apperrors "loomhouse/internal/errors"
	"loomhouse/internal/middleware"
	"loomhouse/internal/services"
	"loomhouse/internal/session"
	"loomhouse/internal/uuid"
)

// getSession returns the authenticated admin's session from the request
// context. Returns ErrUnauthorized if not present.
func getSession(c *gin.Context) (*session.Session, error) {
	s, ok := session.FromContext(c.Request.Context())
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	return s, nil
}

// parsePathID reads a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
//
//nolint:unparam // param is generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// bindError maps a binding failure to an INVALID_INPUT response.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes err in the standard error envelope.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

// recordAudit logs an admin mutation. The entry outlives a cancelled
// request and failures never reach the client.
func recordAudit(c *gin.Context, svc services.AuditServicer, action, resourceType, resourceID string, changes map[string]interface{}) {
	s, ok := session.FromContext(c.Request.Context())
	if !ok {
		return
	}
	svc.Log(context.WithoutCancel(c.Request.Context()), s.UserID, action, resourceType, resourceID, c.ClientIP(), changes)
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
