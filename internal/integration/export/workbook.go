// Package export renders semester workbooks as xlsx files.
package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/pocket-ledger/backend/internal/application/adapter"
	"github.com/pocket-ledger/backend/internal/domain/service"
)

// ContentTypeXLSX is the MIME type of the generated workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	maxSheetNameLength = 31
	defaultSheet       = "Sheet1"
	amountFormat       = "#,##0.00"
	dateLayout         = "2006-01-02"
)

// invalidSheetChars are rejected by Excel in sheet names.
var invalidSheetChars = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")")

// xlsxExporter implements adapter.WorkbookExporter with excelize.
type xlsxExporter struct{}

// NewXLSXExporter creates a new workbook exporter.
func NewXLSXExporter() adapter.WorkbookExporter {
	return &xlsxExporter{}
}

// ContentType returns the xlsx MIME type.
func (e *xlsxExporter) ContentType() string {
	return ContentTypeXLSX
}

// Write renders one sheet per month followed by the recap sheet, which also
// carries the semester saving and investment grids.
func (e *xlsxExporter) Write(w io.Writer, wb service.Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	used := make(map[string]bool)
	first := true
	addSheet := func(name string) (string, error) {
		name = uniqueSheetName(name, used)
		if first {
			first = false
			return name, f.SetSheetName(defaultSheet, name)
		}
		_, err := f.NewSheet(name)
		return name, err
	}

	for _, month := range wb.Months {
		name, err := addSheet(month.Title)
		if err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", month.Title, err)
		}
		if err := writeMonthSheet(&sheetWriter{f: f, sheet: name, styles: styles}, month); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", name, err)
		}
	}

	recapName, err := addSheet(wb.Recap.Semester.Name)
	if err != nil {
		return fmt.Errorf("failed to create recap sheet: %w", err)
	}
	if err := writeRecapSheet(&sheetWriter{f: f, sheet: recapName, styles: styles}, wb); err != nil {
		return fmt.Errorf("failed to write recap sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// uniqueSheetName sanitizes name, limits it to 31 characters and appends a
// counter when it collides with a sheet already in used.
func uniqueSheetName(name string, used map[string]bool) string {
	base := strings.TrimSpace(invalidSheetChars.Replace(name))
	base = strings.Trim(base, "'")
	if base == "" {
		base = "Recap"
	}
	base = truncateRunes(base, maxSheetNameLength)

	candidate := base
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncateRunes(base, maxSheetNameLength-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:limit]))
}

type sheetStyles struct {
	title  int
	header int
	amount int
	total  int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var (
		s   sheetStyles
		err error
	)
	format := amountFormat
	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E2E8F0"}},
	}); err != nil {
		return s, err
	}
	if s.amount, err = f.NewStyle(&excelize.Style{CustomNumFmt: &format}); err != nil {
		return s, err
	}
	if s.total, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &format}); err != nil {
		return s, err
	}
	return s, nil
}

// sheetWriter appends rows to one sheet.
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	styles sheetStyles
	row    int
	err    error
}

func (w *sheetWriter) cell(col int) string {
	name, _ := excelize.CoordinatesToCellName(col, w.row)
	return name
}

// line writes values into the next row and applies style to it.
func (w *sheetWriter) line(style int, values ...interface{}) {
	if w.err != nil {
		return
	}
	w.row++
	for i, v := range values {
		if d, ok := v.(decimal.Decimal); ok {
			v = d.InexactFloat64()
		}
		if err := w.f.SetCellValue(w.sheet, w.cell(i+1), v); err != nil {
			w.err = err
			return
		}
	}
	if style != 0 && len(values) > 0 {
		w.err = w.f.SetCellStyle(w.sheet, w.cell(1), w.cell(len(values)), style)
	}
}

// amounts writes a label followed by amounts, styling only the amount cells.
func (w *sheetWriter) amounts(total bool, label string, values ...decimal.Decimal) {
	row := make([]interface{}, 0, len(values)+1)
	row = append(row, label)
	for _, v := range values {
		row = append(row, v)
	}
	style := w.styles.amount
	if total {
		style = w.styles.total
	}
	w.line(0, row...)
	if w.err == nil && len(values) > 0 {
		w.err = w.f.SetCellStyle(w.sheet, w.cell(2), w.cell(len(values)+1), style)
	}
}

func (w *sheetWriter) blank() {
	w.row++
}

func writeMonthSheet(w *sheetWriter, m service.MonthSheet) error {
	w.line(w.styles.title, m.Title)
	w.blank()
	w.amounts(false, "Income", m.Totals.Income)
	w.amounts(false, "Expense", m.Totals.Expense)
	w.amounts(true, "Balance", m.Totals.Balance)
	w.amounts(false, "Saving", m.Totals.Saving)
	w.amounts(false, "Investment", m.Totals.Investment)

	w.blank()
	header := []interface{}{"Category"}
	for _, p := range m.Expenses.Periods {
		header = append(header, p.Label)
	}
	header = append(header, "Total")
	w.line(w.styles.header, header...)
	for _, r := range m.Expenses.Rows {
		values := append(r.Cells[:], r.Total)
		w.amounts(false, r.Category.DisplayName(), values...)
	}
	w.amounts(true, "Total", append(m.Expenses.PeriodTotals[:], m.Expenses.Total)...)

	writeBucketTable(w, "Saving Platform", m.Savings)
	writeBucketTable(w, "Portfolio", m.Investments)

	w.blank()
	w.line(w.styles.header, "Date", "Income", "Amount", "Note")
	for _, e := range m.Income.Entries {
		w.line(0, e.Date.Format(dateLayout), e.Name, e.Amount, e.Note)
		if w.err == nil {
			w.err = w.f.SetCellStyle(w.sheet, w.cell(3), w.cell(3), w.styles.amount)
		}
	}
	w.line(w.styles.total, "Total", "", m.Income.Total)

	if w.err != nil {
		return w.err
	}
	return w.f.SetColWidth(w.sheet, "A", "A", 24)
}

func writeBucketTable(w *sheetWriter, heading string, t service.BucketTable) {
	w.blank()
	w.line(w.styles.header, heading, "Amount")
	for _, r := range t.Rows {
		w.amounts(false, r.Bucket.Name, r.Amount)
	}
	w.amounts(true, "Total", t.Total)
}

func writeRecapSheet(w *sheetWriter, wb service.Workbook) error {
	recap := wb.Recap
	w.line(w.styles.title, strings.ToUpper(recap.Semester.Name))
	w.blank()
	w.line(w.styles.header, "Month", "Income", "Expense", "Balance", "Saving", "Investment")
	for _, r := range recap.Rows {
		w.amounts(false, r.Label, r.Income, r.Expense, r.Balance, r.Saving, r.Investment)
	}
	t := recap.Total
	w.amounts(true, "Total", t.Income, t.Expense, t.Balance, t.Saving, t.Investment)

	writeBucketMatrix(w, "Saving Platform", wb.Savings)
	writeBucketMatrix(w, "Portfolio", wb.Investments)

	if w.err != nil {
		return w.err
	}
	return w.f.SetColWidth(w.sheet, "A", "A", 20)
}

func writeBucketMatrix(w *sheetWriter, heading string, m service.BucketMatrix) {
	w.blank()
	header := []interface{}{heading}
	for _, k := range m.Months {
		header = append(header, k.ShortName())
	}
	header = append(header, "Total")
	w.line(w.styles.header, header...)
	for _, r := range m.Rows {
		w.amounts(false, r.Bucket.Name, append(append([]decimal.Decimal{}, r.Cells...), r.Total)...)
	}
	w.amounts(true, "Total", append(append([]decimal.Decimal{}, m.MonthTotals...), m.Total)...)
}
