package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocket-ledger/backend/internal/application/usecase/facts"
	"github.com/pocket-ledger/backend/internal/integration/entrypoint/dto"
)

// FactsController exposes the whole fact set of the caller.
type FactsController struct {
	loadUseCase  *facts.LoadFactsUseCase
	clearUseCase *facts.ClearDataUseCase
}

// NewFactsController creates a new facts controller instance.
func NewFactsController(loadUseCase *facts.LoadFactsUseCase, clearUseCase *facts.ClearDataUseCase) *FactsController {
	return &FactsController{
		loadUseCase:  loadUseCase,
		clearUseCase: clearUseCase,
	}
}

// Load handles GET /facts requests.
func (c *FactsController) Load(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	snapshot, err := c.loadUseCase.Execute(ctx.Request.Context(), facts.LoadFactsInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFactsResponse(snapshot))
}

// ClearMonths handles DELETE /facts/months requests. Categories, platforms,
// portfolios and semesters are kept.
func (c *FactsController) ClearMonths(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	if err := c.clearUseCase.Execute(ctx.Request.Context(), facts.ClearDataInput{UserID: userID}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
