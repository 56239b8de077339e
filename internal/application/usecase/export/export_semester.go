// Package export contains spreadsheet export use cases.
package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/adapter"
	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
	"github.com/pocket-ledger/backend/internal/domain/service"
)

// ExportSemesterInput selects the semester to export. A nil SemesterID
// exports the first semester.
type ExportSemesterInput struct {
	UserID     uuid.UUID
	SemesterID uuid.UUID
}

// ExportSemesterOutput is the encoded workbook.
type ExportSemesterOutput struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportSemesterUseCase renders a semester workbook.
type ExportSemesterUseCase struct {
	sessions *session.Store
	exporter adapter.WorkbookExporter
}

// NewExportSemesterUseCase creates a new ExportSemesterUseCase instance.
func NewExportSemesterUseCase(sessions *session.Store, exporter adapter.WorkbookExporter) *ExportSemesterUseCase {
	return &ExportSemesterUseCase{
		sessions: sessions,
		exporter: exporter,
	}
}

// Execute builds the workbook projection under the read lock and encodes it
// afterwards.
func (uc *ExportSemesterUseCase) Execute(ctx context.Context, input ExportSemesterInput) (*ExportSemesterOutput, error) {
	var wb service.Workbook
	err := uc.sessions.Read(ctx, input.UserID, func(facts *entity.FactStore) error {
		sem, ok := facts.ActiveSemester(input.SemesterID)
		if !ok {
			return domainerror.NewLedgerError(domainerror.ErrCodeNoSemesters, "no semester to export", domainerror.ErrNoSemesters)
		}
		wb = service.NewAggregator(facts).Workbook(sem)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := uc.exporter.Write(&buf, wb); err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}

	return &ExportSemesterOutput{
		FileName:    wb.FileName,
		ContentType: uc.exporter.ContentType(),
		Content:     buf.Bytes(),
	}, nil
}
