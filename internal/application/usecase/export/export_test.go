package export

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
	"github.com/pocket-ledger/backend/internal/domain/service"
)

type stubFactRepository struct {
	facts *entity.FactStore
}

func (r *stubFactRepository) Load(context.Context, uuid.UUID) (*entity.FactStore, error) {
	return r.facts.Clone(), nil
}

func (r *stubFactRepository) Apply(context.Context, uuid.UUID, entity.Operation) error { return nil }

func (r *stubFactRepository) DeleteAll(context.Context, uuid.UUID) error { return nil }

// sheetListExporter writes one line per sheet title.
type sheetListExporter struct {
	err error
}

func (e sheetListExporter) Write(w io.Writer, wb service.Workbook) error {
	if e.err != nil {
		return e.err
	}
	for _, m := range wb.Months {
		if _, err := io.WriteString(w, m.Title+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func (sheetListExporter) ContentType() string { return "text/plain" }

func TestExportSemester(t *testing.T) {
	userID := uuid.New()
	facts := entity.BootstrapFactStore(userID, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	sessions := session.NewStore(&stubFactRepository{facts: facts}, nil, session.Config{})
	ctx := context.Background()

	out, err := NewExportSemesterUseCase(sessions, sheetListExporter{}).Execute(ctx, ExportSemesterInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.FileName != "Semester_1.xlsx" {
		t.Errorf("unexpected file name %q", out.FileName)
	}
	if out.ContentType != "text/plain" {
		t.Errorf("unexpected content type %q", out.ContentType)
	}
	expected := "JUNE 2025\nJULY 2025\nAUGUST 2025\nSEPTEMBER 2025\nOCTOBER 2025\nNOVEMBER 2025\n"
	if string(out.Content) != expected {
		t.Errorf("unexpected content %q", out.Content)
	}

	_, err = NewExportSemesterUseCase(sessions, sheetListExporter{err: errors.New("disk full")}).Execute(ctx, ExportSemesterInput{UserID: userID})
	if err == nil {
		t.Error("expected encoder failure to surface")
	}
}

func TestExportSemester_NoSemesters(t *testing.T) {
	userID := uuid.New()
	sessions := session.NewStore(&stubFactRepository{facts: entity.NewFactStore(userID)}, nil, session.Config{})

	_, err := NewExportSemesterUseCase(sessions, sheetListExporter{}).Execute(context.Background(), ExportSemesterInput{UserID: userID})
	if !errors.Is(err, domainerror.ErrNoSemesters) {
		t.Errorf("expected ErrNoSemesters, got %v", err)
	}
}
