package dto

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocket-ledger/backend/internal/domain/entity"
	"github.com/pocket-ledger/backend/internal/domain/service"
	"github.com/pocket-ledger/backend/internal/domain/valueobject"
)

// dateLayout is the wire format of income dates.
const dateLayout = "2006-01-02"

// AddIncomeRequest represents the request body for adding an income entry.
type AddIncomeRequest struct {
	Name   string           `json:"name" binding:"required,max=100"`
	Amount *decimal.Decimal `json:"amount" binding:"required"`
	Date   string           `json:"date" binding:"required"`
	Note   string           `json:"note" binding:"max=255"`
}

// SetExpenseCellRequest represents the request body for writing one expense cell.
type SetExpenseCellRequest struct {
	CategoryID string           `json:"category_id" binding:"required"`
	Period     int              `json:"period"`
	Amount     *decimal.Decimal `json:"amount" binding:"required"`
}

// SaveAmountsRequest represents a batch of budget, saving or investment cells
// keyed by category, platform or portfolio id.
type SaveAmountsRequest struct {
	Amounts map[string]decimal.Decimal `json:"amounts" binding:"required"`
}

// Cells parses the batch keys into ids.
func (r SaveAmountsRequest) Cells() (entity.AmountCells, error) {
	cells := make(entity.AmountCells, len(r.Amounts))
	for key, amount := range r.Amounts {
		id, err := uuid.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", key, err)
		}
		cells[id] = amount
	}
	return cells, nil
}

// MonthTotalsResponse represents the derived totals of a month or a range of months.
type MonthTotalsResponse struct {
	Month      string          `json:"month,omitempty"`
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Balance    decimal.Decimal `json:"balance"`
	Saving     decimal.Decimal `json:"saving"`
	Investment decimal.Decimal `json:"investment"`
}

// IncomeEntryResponse represents one income line item.
type IncomeEntryResponse struct {
	ID     string          `json:"id"`
	Month  string          `json:"month"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
	Note   string          `json:"note"`
}

// IncomeListResponse represents the income page of a month.
type IncomeListResponse struct {
	Month   string                `json:"month"`
	Entries []IncomeEntryResponse `json:"entries"`
	Total   decimal.Decimal       `json:"total"`
}

// AddIncomeResponse carries the stored entry and the refreshed month totals.
type AddIncomeResponse struct {
	Entry  IncomeEntryResponse `json:"entry"`
	Totals MonthTotalsResponse `json:"totals"`
}

// PeriodResponse describes one of the fixed day ranges of a month.
type PeriodResponse struct {
	ID       int    `json:"id"`
	Label    string `json:"label"`
	StartDay int    `json:"start_day"`
	EndDay   int    `json:"end_day"`
}

// ExpenseRowResponse is one category row of the expense matrix.
type ExpenseRowResponse struct {
	Category CategoryResponse  `json:"category"`
	Cells    []decimal.Decimal `json:"cells"`
	Total    decimal.Decimal   `json:"total"`
}

// ExpenseMatrixResponse represents the expense page of a month.
type ExpenseMatrixResponse struct {
	Month        string               `json:"month"`
	Periods      []PeriodResponse     `json:"periods"`
	Rows         []ExpenseRowResponse `json:"rows"`
	PeriodTotals []decimal.Decimal    `json:"period_totals"`
	Total        decimal.Decimal      `json:"total"`
	Income       decimal.Decimal      `json:"income"`
	Balance      decimal.Decimal      `json:"balance"`
}

// SetExpenseCellResponse carries the totals affected by an expense write.
type SetExpenseCellResponse struct {
	CategoryTotal decimal.Decimal     `json:"category_total"`
	PeriodTotal   decimal.Decimal     `json:"period_total"`
	Totals        MonthTotalsResponse `json:"totals"`
}

// BudgetRowResponse compares a category ceiling with its realized expense.
type BudgetRowResponse struct {
	Category  CategoryResponse `json:"category"`
	Budget    *decimal.Decimal `json:"budget"`
	Expense   decimal.Decimal  `json:"expense"`
	Deviation decimal.Decimal  `json:"deviation"`
	Percent   *int64           `json:"percent"`
	Status    string           `json:"status"`
}

// BudgetViewResponse represents the budget page of a month.
type BudgetViewResponse struct {
	Month        string              `json:"month"`
	Rows         []BudgetRowResponse `json:"rows"`
	TotalBudget  decimal.Decimal     `json:"total_budget"`
	TotalExpense decimal.Decimal     `json:"total_expense"`
}

// BucketRowResponse is the amount stored for one platform or portfolio.
type BucketRowResponse struct {
	Bucket BucketResponse  `json:"bucket"`
	Amount decimal.Decimal `json:"amount"`
}

// BucketTableResponse represents the saving or investment page of a month.
type BucketTableResponse struct {
	Month string              `json:"month"`
	Kind  string              `json:"kind"`
	Rows  []BucketRowResponse `json:"rows"`
	Total decimal.Decimal     `json:"total"`
}

// SaveAmountsResponse carries the refreshed table and month totals.
type SaveAmountsResponse struct {
	Table  BucketTableResponse `json:"table"`
	Totals MonthTotalsResponse `json:"totals"`
}

// MonthResponse describes a month and its neighbours for navigation.
type MonthResponse struct {
	Month string `json:"month"`
	Label string `json:"label"`
	// Prev and Next are empty at the ends of the supported range.
	Prev string `json:"prev"`
	Next string `json:"next"`
}

// ToMonthTotalsResponse converts month totals.
func ToMonthTotalsResponse(t service.MonthTotals) MonthTotalsResponse {
	return MonthTotalsResponse{
		Month:      t.Month.String(),
		Income:     t.Income,
		Expense:    t.Expense,
		Balance:    t.Balance,
		Saving:     t.Saving,
		Investment: t.Investment,
	}
}

// ToIncomeEntryResponse converts an income entry.
func ToIncomeEntryResponse(e entity.IncomeEntry) IncomeEntryResponse {
	return IncomeEntryResponse{
		ID:     e.ID.String(),
		Month:  e.Month.String(),
		Name:   e.Name,
		Amount: e.Amount,
		Date:   e.Date.Format(dateLayout),
		Note:   e.Note,
	}
}

// ToIncomeListResponse converts the income page view.
func ToIncomeListResponse(l *service.IncomeList) IncomeListResponse {
	entries := make([]IncomeEntryResponse, 0, len(l.Entries))
	for _, e := range l.Entries {
		entries = append(entries, ToIncomeEntryResponse(e))
	}
	return IncomeListResponse{
		Month:   l.Month.String(),
		Entries: entries,
		Total:   l.Total,
	}
}

// ToExpenseMatrixResponse converts the expense page view.
func ToExpenseMatrixResponse(m *service.ExpenseMatrix) ExpenseMatrixResponse {
	periods := make([]PeriodResponse, 0, len(m.Periods))
	for _, p := range m.Periods {
		periods = append(periods, PeriodResponse{
			ID:       int(p.ID),
			Label:    p.Label,
			StartDay: p.StartDay,
			EndDay:   p.EndDay,
		})
	}
	rows := make([]ExpenseRowResponse, 0, len(m.Rows))
	for _, r := range m.Rows {
		rows = append(rows, ExpenseRowResponse{
			Category: ToCategoryResponse(r.Category),
			Cells:    append([]decimal.Decimal(nil), r.Cells[:]...),
			Total:    r.Total,
		})
	}
	return ExpenseMatrixResponse{
		Month:        m.Month.String(),
		Periods:      periods,
		Rows:         rows,
		PeriodTotals: append([]decimal.Decimal(nil), m.PeriodTotals[:]...),
		Total:        m.Total,
		Income:       m.Income,
		Balance:      m.Balance,
	}
}

// ToBudgetViewResponse converts the budget page view.
func ToBudgetViewResponse(v *service.BudgetView) BudgetViewResponse {
	rows := make([]BudgetRowResponse, 0, len(v.Rows))
	for _, r := range v.Rows {
		row := BudgetRowResponse{
			Category:  ToCategoryResponse(r.Category),
			Expense:   r.Expense,
			Deviation: r.Deviation,
			Percent:   r.Percent,
			Status:    string(r.Status),
		}
		if r.HasBudget {
			budget := r.Budget
			row.Budget = &budget
		}
		rows = append(rows, row)
	}
	return BudgetViewResponse{
		Month:        v.Month.String(),
		Rows:         rows,
		TotalBudget:  v.TotalBudget,
		TotalExpense: v.TotalExpense,
	}
}

// ToBucketTableResponse converts a saving or investment page view.
func ToBucketTableResponse(t *service.BucketTable) BucketTableResponse {
	rows := make([]BucketRowResponse, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, BucketRowResponse{
			Bucket: ToBucketResponse(r.Bucket),
			Amount: r.Amount,
		})
	}
	return BucketTableResponse{
		Month: t.Month.String(),
		Kind:  string(t.Kind),
		Rows:  rows,
		Total: t.Total,
	}
}

// ToMonthResponse describes k for month navigation.
func ToMonthResponse(k valueobject.MonthKey) MonthResponse {
	prev, _ := k.ShiftWithin(-1)
	next, _ := k.ShiftWithin(1)
	return MonthResponse{
		Month: k.String(),
		Label: k.Label(),
		Prev:  prev.String(),
		Next:  next.String(),
	}
}
