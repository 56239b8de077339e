package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pocket-ledger/backend/internal/domain/entity"
	"github.com/pocket-ledger/backend/internal/domain/service"
)

// DashboardResponse represents the semester dashboard.
type DashboardResponse struct {
	Semester SemesterResponse    `json:"semester"`
	Totals   MonthTotalsResponse `json:"totals"`
	Bars     []BarPointResponse  `json:"bars"`
	Pie      []PieSliceResponse  `json:"pie"`
	Recap    RecapResponse       `json:"recap"`
}

// BarPointResponse is one month of the income vs expense chart.
type BarPointResponse struct {
	Month   string          `json:"month"`
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// PieSliceResponse is one category of the semester expense chart.
type PieSliceResponse struct {
	CategoryID string          `json:"category_id"`
	Label      string          `json:"label"`
	Amount     decimal.Decimal `json:"amount"`
}

// RecapRowResponse is one month of the semester recap table.
type RecapRowResponse struct {
	MonthTotalsResponse
	Label string `json:"label"`
}

// RecapResponse represents the semester recap table and its total row.
type RecapResponse struct {
	Rows  []RecapRowResponse  `json:"rows"`
	Total MonthTotalsResponse `json:"total"`
}

// FactsResponse is the full snapshot of a user's recorded facts.
type FactsResponse struct {
	Categories []CategoryResponse             `json:"categories"`
	Platforms  []BucketResponse               `json:"platforms"`
	Portfolios []BucketResponse               `json:"portfolios"`
	Semesters  []SemesterResponse             `json:"semesters"`
	Months     map[string]MonthRecordResponse `json:"months"`
}

// MonthRecordResponse holds the raw facts of one month. Cell maps are keyed
// by category, platform or portfolio id; expense cells are further keyed by
// period id.
type MonthRecordResponse struct {
	Income      []IncomeEntryResponse              `json:"income"`
	Expenses    map[string]map[int]decimal.Decimal `json:"expenses"`
	Budget      map[string]decimal.Decimal         `json:"budget"`
	Savings     map[string]decimal.Decimal         `json:"savings"`
	Investments map[string]decimal.Decimal         `json:"investments"`
}

// ToDashboardResponse converts the dashboard view.
func ToDashboardResponse(d *service.Dashboard) DashboardResponse {
	bars := make([]BarPointResponse, 0, len(d.Bars))
	for _, b := range d.Bars {
		bars = append(bars, BarPointResponse{
			Month:   b.Month.String(),
			Label:   b.Label,
			Income:  b.Income,
			Expense: b.Expense,
		})
	}
	pie := make([]PieSliceResponse, 0, len(d.Pie))
	for _, p := range d.Pie {
		pie = append(pie, PieSliceResponse{
			CategoryID: p.Category.ID.String(),
			Label:      p.Label,
			Amount:     p.Amount,
		})
	}
	return DashboardResponse{
		Semester: ToSemesterResponse(d.Semester),
		Totals:   ToMonthTotalsResponse(d.Totals),
		Bars:     bars,
		Pie:      pie,
		Recap:    ToRecapResponse(d.Recap),
	}
}

// ToRecapResponse converts a semester recap.
func ToRecapResponse(r service.SemesterRecap) RecapResponse {
	rows := make([]RecapRowResponse, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, RecapRowResponse{
			MonthTotalsResponse: ToMonthTotalsResponse(row.MonthTotals),
			Label:               row.Label,
		})
	}
	total := ToMonthTotalsResponse(r.Total)
	total.Month = ""
	return RecapResponse{Rows: rows, Total: total}
}

// ToFactsResponse converts a full fact snapshot.
func ToFactsResponse(f *entity.FactStore) FactsResponse {
	semesters := make([]SemesterResponse, 0, len(f.Semesters))
	for _, s := range f.Semesters {
		semesters = append(semesters, ToSemesterResponse(s))
	}
	months := make(map[string]MonthRecordResponse, len(f.Months))
	for _, k := range f.MonthKeys() {
		months[k.String()] = toMonthRecordResponse(f.Month(k))
	}
	return FactsResponse{
		Categories: ToCategoryListResponse(f.Categories).Categories,
		Platforms:  ToBucketResponses(f.Platforms),
		Portfolios: ToBucketResponses(f.Portfolios),
		Semesters:  semesters,
		Months:     months,
	}
}

func toMonthRecordResponse(rec *entity.MonthRecord) MonthRecordResponse {
	income := make([]IncomeEntryResponse, 0, len(rec.Income))
	for _, e := range rec.Income {
		income = append(income, ToIncomeEntryResponse(e))
	}

	expenses := make(map[string]map[int]decimal.Decimal, len(rec.Expenses))
	for cat, cells := range rec.Expenses {
		out := make(map[int]decimal.Decimal, len(cells))
		for period, amount := range cells {
			out[int(period)] = amount
		}
		expenses[cat.String()] = out
	}
	return MonthRecordResponse{
		Income:      income,
		Expenses:    expenses,
		Budget:      amountMap(rec.Budget),
		Savings:     amountMap(rec.Savings),
		Investments: amountMap(rec.Investments),
	}
}

func amountMap(cells entity.AmountCells) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(cells))
	for id, amount := range cells {
		out[id.String()] = amount
	}
	return out
}
