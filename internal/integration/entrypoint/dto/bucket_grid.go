package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pocket-ledger/backend/internal/domain/entity"
	"github.com/pocket-ledger/backend/internal/domain/service"
)

// SaveBucketGridRequest carries saving or investment cells for several
// months of a semester: month ("YYYY-MM") to bucket id to amount.
type SaveBucketGridRequest struct {
	Months map[string]map[string]decimal.Decimal `json:"months" binding:"required"`
}

// Grid parses the bucket ids of every month.
func (r SaveBucketGridRequest) Grid() (map[string]entity.AmountCells, error) {
	grid := make(map[string]entity.AmountCells, len(r.Months))
	for month, amounts := range r.Months {
		cells, err := SaveAmountsRequest{Amounts: amounts}.Cells()
		if err != nil {
			return nil, err
		}
		grid[month] = cells
	}
	return grid, nil
}

// BucketGridRowResponse is one platform or portfolio across the semester.
type BucketGridRowResponse struct {
	Bucket BucketResponse    `json:"bucket"`
	Cells  []decimal.Decimal `json:"cells"`
	Total  decimal.Decimal   `json:"total"`
}

// BucketGridResponse represents the semester saving or investment grid.
// Cells and month totals follow the order of Months.
type BucketGridResponse struct {
	Semester    SemesterResponse        `json:"semester"`
	Kind        string                  `json:"kind"`
	Months      []string                `json:"months"`
	Rows        []BucketGridRowResponse `json:"rows"`
	MonthTotals []decimal.Decimal       `json:"month_totals"`
	Total       decimal.Decimal         `json:"total"`
}

// ToBucketGridResponse converts a semester grid.
func ToBucketGridResponse(m *service.BucketMatrix) BucketGridResponse {
	months := make([]string, 0, len(m.Months))
	for _, k := range m.Months {
		months = append(months, k.String())
	}
	rows := make([]BucketGridRowResponse, 0, len(m.Rows))
	for _, r := range m.Rows {
		rows = append(rows, BucketGridRowResponse{
			Bucket: ToBucketResponse(r.Bucket),
			Cells:  r.Cells,
			Total:  r.Total,
		})
	}
	return BucketGridResponse{
		Semester:    ToSemesterResponse(m.Semester),
		Kind:        string(m.Kind),
		Months:      months,
		Rows:        rows,
		MonthTotals: m.MonthTotals,
		Total:       m.Total,
	}
}
