package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocket-ledger/backend/internal/application/usecase/bucket"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	"github.com/pocket-ledger/backend/internal/integration/entrypoint/dto"
)

// BucketController handles saving platform and portfolio endpoints. Each
// handler is bound to a bucket kind when the route is registered.
type BucketController struct {
	createUseCase   *bucket.CreateBucketUseCase
	deleteUseCase   *bucket.DeleteBucketUseCase
	getMonthUseCase *bucket.GetBucketMonthUseCase
	saveUseCase     *bucket.SaveAmountsUseCase
	getGridUseCase  *bucket.GetBucketGridUseCase
	saveGridUseCase *bucket.SaveBucketGridUseCase
}

// NewBucketController creates a new bucket controller instance.
func NewBucketController(
	createUseCase *bucket.CreateBucketUseCase,
	deleteUseCase *bucket.DeleteBucketUseCase,
	getMonthUseCase *bucket.GetBucketMonthUseCase,
	saveUseCase *bucket.SaveAmountsUseCase,
	getGridUseCase *bucket.GetBucketGridUseCase,
	saveGridUseCase *bucket.SaveBucketGridUseCase,
) *BucketController {
	return &BucketController{
		createUseCase:   createUseCase,
		deleteUseCase:   deleteUseCase,
		getMonthUseCase: getMonthUseCase,
		saveUseCase:     saveUseCase,
		getGridUseCase:  getGridUseCase,
		saveGridUseCase: saveGridUseCase,
	}
}

// Create handles POST /platforms and POST /portfolios requests.
func (c *BucketController) Create(kind entity.BucketKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := authenticatedUser(ctx)
		if !ok {
			return
		}

		var req dto.CreateBucketRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			invalidRequest(ctx, "Invalid request body")
			return
		}

		output, err := c.createUseCase.Execute(ctx.Request.Context(), bucket.CreateBucketInput{
			UserID: userID,
			Kind:   kind,
			Name:   req.Name,
		})
		if err != nil {
			handleError(ctx, err)
			return
		}

		ctx.JSON(http.StatusCreated, dto.ToBucketResponse(output.Bucket))
	}
}

// Delete handles DELETE /platforms/:id and DELETE /portfolios/:id requests.
func (c *BucketController) Delete(kind entity.BucketKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := authenticatedUser(ctx)
		if !ok {
			return
		}
		bucketID, ok := pathUUID(ctx, "id", string(kind))
		if !ok {
			return
		}

		err := c.deleteUseCase.Execute(ctx.Request.Context(), bucket.DeleteBucketInput{
			UserID:   userID,
			Kind:     kind,
			BucketID: bucketID,
		})
		if err != nil {
			handleError(ctx, err)
			return
		}

		ctx.Status(http.StatusNoContent)
	}
}

// GetMonth handles GET /months/:month/savings and /months/:month/investments requests.
func (c *BucketController) GetMonth(kind entity.BucketKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := authenticatedUser(ctx)
		if !ok {
			return
		}

		table, err := c.getMonthUseCase.Execute(ctx.Request.Context(), bucket.GetBucketMonthInput{
			UserID: userID,
			Kind:   kind,
			Month:  ctx.Param("month"),
		})
		if err != nil {
			handleError(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, dto.ToBucketTableResponse(table))
	}
}

// SaveMonth handles PUT /months/:month/savings and /months/:month/investments
// requests. The whole batch is rejected when any amount is invalid.
func (c *BucketController) SaveMonth(kind entity.BucketKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := authenticatedUser(ctx)
		if !ok {
			return
		}

		var req dto.SaveAmountsRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			invalidRequest(ctx, "Invalid request body")
			return
		}
		cells, err := req.Cells()
		if err != nil {
			invalidRequest(ctx, "Invalid "+string(kind)+" ID format")
			return
		}

		output, err := c.saveUseCase.Execute(ctx.Request.Context(), bucket.SaveAmountsInput{
			UserID:  userID,
			Kind:    kind,
			Month:   ctx.Param("month"),
			Amounts: cells,
		})
		if err != nil {
			handleError(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, dto.SaveAmountsResponse{
			Table:  dto.ToBucketTableResponse(&output.Table),
			Totals: dto.ToMonthTotalsResponse(output.Totals),
		})
	}
}

// GetGrid handles GET /savings and GET /investments requests with an
// optional semester_id query parameter.
func (c *BucketController) GetGrid(kind entity.BucketKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := authenticatedUser(ctx)
		if !ok {
			return
		}
		semesterID, ok := queryUUID(ctx, "semester_id", "semester")
		if !ok {
			return
		}

		grid, err := c.getGridUseCase.Execute(ctx.Request.Context(), bucket.GetBucketGridInput{
			UserID:     userID,
			Kind:       kind,
			SemesterID: semesterID,
		})
		if err != nil {
			handleError(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, dto.ToBucketGridResponse(grid))
	}
}

// SaveGrid handles PUT /savings and PUT /investments requests. Every month
// must fall inside the semester, and nothing is stored when any cell is
// invalid.
func (c *BucketController) SaveGrid(kind entity.BucketKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := authenticatedUser(ctx)
		if !ok {
			return
		}
		semesterID, ok := queryUUID(ctx, "semester_id", "semester")
		if !ok {
			return
		}

		var req dto.SaveBucketGridRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			invalidRequest(ctx, "Invalid request body")
			return
		}
		cells, err := req.Grid()
		if err != nil {
			invalidRequest(ctx, "Invalid "+string(kind)+" ID format")
			return
		}

		grid, err := c.saveGridUseCase.Execute(ctx.Request.Context(), bucket.SaveBucketGridInput{
			UserID:     userID,
			Kind:       kind,
			SemesterID: semesterID,
			Grid:       cells,
		})
		if err != nil {
			handleError(ctx, err)
			return
		}

		ctx.JSON(http.StatusOK, dto.ToBucketGridResponse(grid))
	}
}
