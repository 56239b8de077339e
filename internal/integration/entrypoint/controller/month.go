package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/usecase/budget"
	"github.com/pocket-ledger/backend/internal/application/usecase/expense"
	"github.com/pocket-ledger/backend/internal/application/usecase/income"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
	"github.com/pocket-ledger/backend/internal/integration/entrypoint/dto"
)

// MonthController handles the per-month pages: income, expenses and budgets,
// plus month navigation.
type MonthController struct {
	addIncomeUseCase      *income.AddIncomeUseCase
	deleteIncomeUseCase   *income.DeleteIncomeUseCase
	getIncomeUseCase      *income.GetIncomeMonthUseCase
	setExpenseUseCase     *expense.SetExpenseCellUseCase
	getExpenseUseCase     *expense.GetExpenseMonthUseCase
	saveBudgetsUseCase    *budget.SaveBudgetsUseCase
	getBudgetMonthUseCase *budget.GetBudgetMonthUseCase
}

// NewMonthController creates a new month controller instance.
func NewMonthController(
	addIncomeUseCase *income.AddIncomeUseCase,
	deleteIncomeUseCase *income.DeleteIncomeUseCase,
	getIncomeUseCase *income.GetIncomeMonthUseCase,
	setExpenseUseCase *expense.SetExpenseCellUseCase,
	getExpenseUseCase *expense.GetExpenseMonthUseCase,
	saveBudgetsUseCase *budget.SaveBudgetsUseCase,
	getBudgetMonthUseCase *budget.GetBudgetMonthUseCase,
) *MonthController {
	return &MonthController{
		addIncomeUseCase:      addIncomeUseCase,
		deleteIncomeUseCase:   deleteIncomeUseCase,
		getIncomeUseCase:      getIncomeUseCase,
		setExpenseUseCase:     setExpenseUseCase,
		getExpenseUseCase:     getExpenseUseCase,
		saveBudgetsUseCase:    saveBudgetsUseCase,
		getBudgetMonthUseCase: getBudgetMonthUseCase,
	}
}

// Navigate handles GET /months/:month?shift=n requests. It returns the month
// n months away from :month together with its neighbours.
func (c *MonthController) Navigate(ctx *gin.Context) {
	month, err := entity.ParseMonth(ctx.Param("month"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	if raw := ctx.Query("shift"); raw != "" {
		delta, err := strconv.Atoi(raw)
		if err != nil {
			invalidRequest(ctx, "shift must be an integer")
			return
		}
		month, err = month.ShiftWithin(delta)
		if err != nil {
			handleError(ctx, domainerror.NewLedgerError(domainerror.ErrCodeInvalidMonth, "shifted month is out of range", domainerror.ErrInvalidMonth))
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.ToMonthResponse(month))
}

// GetIncome handles GET /months/:month/income requests.
func (c *MonthController) GetIncome(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	list, err := c.getIncomeUseCase.Execute(ctx.Request.Context(), income.GetIncomeMonthInput{
		UserID: userID,
		Month:  ctx.Param("month"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToIncomeListResponse(list))
}

// AddIncome handles POST /months/:month/income requests.
func (c *MonthController) AddIncome(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var req dto.AddIncomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidRequest(ctx, "Invalid request body")
		return
	}

	output, err := c.addIncomeUseCase.Execute(ctx.Request.Context(), income.AddIncomeInput{
		UserID: userID,
		Month:  ctx.Param("month"),
		Name:   req.Name,
		Amount: *req.Amount,
		Date:   req.Date,
		Note:   req.Note,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AddIncomeResponse{
		Entry:  dto.ToIncomeEntryResponse(output.Entry),
		Totals: dto.ToMonthTotalsResponse(output.Totals),
	})
}

// DeleteIncome handles DELETE /income/:id requests. Unknown ids are a no-op.
func (c *MonthController) DeleteIncome(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	incomeID, ok := pathUUID(ctx, "id", "income")
	if !ok {
		return
	}

	err := c.deleteIncomeUseCase.Execute(ctx.Request.Context(), income.DeleteIncomeInput{
		UserID:   userID,
		IncomeID: incomeID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetExpenses handles GET /months/:month/expenses requests.
func (c *MonthController) GetExpenses(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	matrix, err := c.getExpenseUseCase.Execute(ctx.Request.Context(), expense.GetExpenseMonthInput{
		UserID: userID,
		Month:  ctx.Param("month"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseMatrixResponse(matrix))
}

// SetExpense handles PUT /months/:month/expenses requests. Writing the same
// cell twice replaces the earlier amount.
func (c *MonthController) SetExpense(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var req dto.SetExpenseCellRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidRequest(ctx, "Invalid request body")
		return
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		invalidRequest(ctx, "Invalid category ID format")
		return
	}

	output, err := c.setExpenseUseCase.Execute(ctx.Request.Context(), expense.SetExpenseCellInput{
		UserID:     userID,
		Month:      ctx.Param("month"),
		CategoryID: categoryID,
		Period:     req.Period,
		Amount:     *req.Amount,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SetExpenseCellResponse{
		CategoryTotal: output.CategoryTotal,
		PeriodTotal:   output.PeriodTotal,
		Totals:        dto.ToMonthTotalsResponse(output.Totals),
	})
}

// GetBudgets handles GET /months/:month/budgets requests.
func (c *MonthController) GetBudgets(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	view, err := c.getBudgetMonthUseCase.Execute(ctx.Request.Context(), budget.GetBudgetMonthInput{
		UserID: userID,
		Month:  ctx.Param("month"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetViewResponse(view))
}

// SaveBudgets handles PUT /months/:month/budgets requests. The whole batch is
// rejected when any amount is invalid.
func (c *MonthController) SaveBudgets(ctx *gin.Context) {
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
		invalidRequest(ctx, "Invalid category ID format")
		return
	}

	view, err := c.saveBudgetsUseCase.Execute(ctx.Request.Context(), budget.SaveBudgetsInput{
		UserID:  userID,
		Month:   ctx.Param("month"),
		Amounts: cells,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetViewResponse(view))
}
