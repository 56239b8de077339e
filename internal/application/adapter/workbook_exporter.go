// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"io"

	"github.com/pocket-ledger/backend/internal/domain/service"
)

// WorkbookExporter renders a semester workbook projection as a spreadsheet.
type WorkbookExporter interface {
	// Write encodes the workbook to w.
	Write(w io.Writer, wb service.Workbook) error

	// ContentType is the MIME type of the encoded workbook.
	ContentType() string
}
