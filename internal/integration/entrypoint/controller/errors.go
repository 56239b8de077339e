// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
	"github.com/pocket-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/pocket-ledger/backend/internal/integration/entrypoint/middleware"
)

// handleError maps domain errors to HTTP responses.
func handleError(ctx *gin.Context, err error) {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		ctx.JSON(getStatusCodeForLedgerError(ledgerErr), dto.ErrorResponse{
			Error: ledgerErr.Message,
			Code:  string(ledgerErr.Code),
		})
		return
	}

	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(getStatusCodeForAuthError(authErr.Code), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	slog.Error("request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForLedgerError maps ledger error classes to HTTP status codes.
func getStatusCodeForLedgerError(err *domainerror.LedgerError) int {
	switch {
	case err.IsValidation():
		return http.StatusBadRequest
	case err.IsNotFound():
		return http.StatusNotFound
	case err.IsConflict():
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForAuthError maps auth error codes to HTTP status codes.
func getStatusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeUsernameExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidUsername,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeWrongPassword:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// invalidRequest replies with a 400 for a malformed body, path or query.
func invalidRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(domainerror.ErrCodeInvalidRequest),
	})
}

// authenticatedUser returns the caller's id or replies with a 401.
func authenticatedUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a uuid path parameter or replies with a 400.
func pathUUID(ctx *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		invalidRequest(ctx, "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// queryUUID parses an optional uuid query parameter. A missing parameter
// yields uuid.Nil.
func queryUUID(ctx *gin.Context, name, label string) (uuid.UUID, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		invalidRequest(ctx, "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}
