package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocket-ledger/backend/internal/application/usecase/semester"
	"github.com/pocket-ledger/backend/internal/integration/entrypoint/dto"
)

// SemesterController handles semester endpoints.
type SemesterController struct {
	listUseCase   *semester.ListSemestersUseCase
	createUseCase *semester.CreateSemesterUseCase
	deleteUseCase *semester.DeleteSemesterUseCase
}

// NewSemesterController creates a new semester controller instance.
func NewSemesterController(
	listUseCase *semester.ListSemestersUseCase,
	createUseCase *semester.CreateSemesterUseCase,
	deleteUseCase *semester.DeleteSemesterUseCase,
) *SemesterController {
	return &SemesterController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /semesters requests.
func (c *SemesterController) List(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), semester.ListSemestersInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSemesterListResponse(output.Semesters))
}

// Create handles POST /semesters requests.
func (c *SemesterController) Create(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateSemesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidRequest(ctx, "Invalid request body")
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), semester.CreateSemesterInput{
		UserID:     userID,
		Name:       req.Name,
		StartMonth: req.StartMonth,
		EndMonth:   req.EndMonth,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSemesterResponse(output.Semester))
}

// Delete handles DELETE /semesters/:id?active=<id> requests. The response
// names the semester the client should show next.
func (c *SemesterController) Delete(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	semesterID, ok := pathUUID(ctx, "id", "semester")
	if !ok {
		return
	}
	activeID, ok := queryUUID(ctx, "active", "semester")
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), semester.DeleteSemesterInput{
		UserID:     userID,
		SemesterID: semesterID,
		ActiveID:   activeID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteSemesterResponse{
		Active: dto.ToSemesterResponse(output.Active),
	})
}
