package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocket-ledger/backend/internal/application/usecase/auth"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
	"github.com/pocket-ledger/backend/internal/integration/entrypoint/dto"
)

// UserController handles account management endpoints.
type UserController struct {
	updateProfileUseCase  *auth.UpdateProfileUseCase
	changePasswordUseCase *auth.ChangePasswordUseCase
	deleteAccountUseCase  *auth.DeleteAccountUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	updateProfileUseCase *auth.UpdateProfileUseCase,
	changePasswordUseCase *auth.ChangePasswordUseCase,
	deleteAccountUseCase *auth.DeleteAccountUseCase,
) *UserController {
	return &UserController{
		updateProfileUseCase:  updateProfileUseCase,
		changePasswordUseCase: changePasswordUseCase,
		deleteAccountUseCase:  deleteAccountUseCase,
	}
}

// UpdateProfile handles PATCH /users/me requests. The response carries a new
// token because the username is part of the claims.
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	output, err := c.updateProfileUseCase.Execute(ctx.Request.Context(), auth.UpdateProfileInput{
		UserID:   userID,
		Name:     req.Name,
		Username: req.Username,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAuthResponse(output.AccessToken, output.User))
}

// ChangePassword handles PUT /users/me/password requests.
func (c *UserController) ChangePassword(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	err := c.changePasswordUseCase.Execute(ctx.Request.Context(), auth.ChangePasswordInput{
		UserID:      userID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Password updated",
	})
}

// DeleteAccount handles DELETE /users/me requests.
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	if err := c.deleteAccountUseCase.Execute(ctx.Request.Context(), auth.DeleteAccountInput{UserID: userID}); err != nil {
		handleError(ctx, err)
		return
	}

	// Return 204 No Content on successful deletion
	ctx.Status(http.StatusNoContent)
}
