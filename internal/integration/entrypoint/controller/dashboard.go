package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocket-ledger/backend/internal/application/usecase/dashboard"
	"github.com/pocket-ledger/backend/internal/application/usecase/export"
	"github.com/pocket-ledger/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles the semester dashboard and workbook export.
type DashboardController struct {
	dashboardUseCase *dashboard.GetDashboardUseCase
	exportUseCase    *export.ExportSemesterUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	dashboardUseCase *dashboard.GetDashboardUseCase,
	exportUseCase *export.ExportSemesterUseCase,
) *DashboardController {
	return &DashboardController{
		dashboardUseCase: dashboardUseCase,
		exportUseCase:    exportUseCase,
	}
}

// Get handles GET /dashboard?semester_id=<id> requests. Without an id the
// first semester is summarized.
func (c *DashboardController) Get(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	semesterID, ok := queryUUID(ctx, "semester_id", "semester")
	if !ok {
		return
	}

	view, err := c.dashboardUseCase.Execute(ctx.Request.Context(), dashboard.GetDashboardInput{
		UserID:     userID,
		SemesterID: semesterID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(view))
}

// Export handles GET /export?semester_id=<id> requests and streams the
// semester workbook as an attachment.
func (c *DashboardController) Export(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	semesterID, ok := queryUUID(ctx, "semester_id", "semester")
	if !ok {
		return
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), export.ExportSemesterInput{
		UserID:     userID,
		SemesterID: semesterID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.FileName))
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}
