package service

import (
	"strings"

	"github.com/pocket-ledger/backend/internal/domain/entity"
)

// MonthSheet is everything exported for one month of a semester.
type MonthSheet struct {
	Totals      MonthTotals
	Title       string
	Expenses    ExpenseMatrix
	Savings     BucketTable
	Investments BucketTable
	Income      IncomeList
}

// Workbook is the export projection of a semester: one sheet per month
// followed by the recap and the semester saving and investment grids.
type Workbook struct {
	FileName    string
	Months      []MonthSheet
	Recap       SemesterRecap
	Savings     BucketMatrix
	Investments BucketMatrix
}

// Workbook projects sem into export-ready structures.
func (a *Aggregator) Workbook(sem entity.Semester) Workbook {
	months := sem.Months()
	sheets := make([]MonthSheet, 0, len(months))
	for _, k := range months {
		sheets = append(sheets, MonthSheet{
			Totals:      a.MonthTotals(k),
			Title:       strings.ToUpper(k.Label()),
			Expenses:    a.ExpenseMatrix(k),
			Savings:     a.BucketTable(k, entity.BucketKindPlatform),
			Investments: a.BucketTable(k, entity.BucketKindPortfolio),
			Income:      a.IncomeList(k),
		})
	}
	return Workbook{
		FileName:    WorkbookFileName(sem.Name),
		Months:      sheets,
		Recap:       a.SemesterRecap(sem),
		Savings:     a.BucketMatrix(sem, entity.BucketKindPlatform),
		Investments: a.BucketMatrix(sem, entity.BucketKindPortfolio),
	}
}

// WorkbookFileName turns a semester name into an xlsx file name, replacing
// runs of whitespace with underscores.
func WorkbookFileName(semesterName string) string {
	name := strings.Join(strings.Fields(semesterName), "_")
	if name == "" {
		name = "semester"
	}
	return name + ".xlsx"
}
