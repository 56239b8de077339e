// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pocket-ledger/backend/internal/application/adapter"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	"github.com/pocket-ledger/backend/internal/domain/valueobject"
	"github.com/pocket-ledger/backend/internal/integration/persistence/model"
)

// amountTables lists the tables holding budget, saving and investment cells.
var amountTables = []string{model.BudgetsTable, model.SavingsTable, model.InvestmentsTable}

// factRepository implements the adapter.FactRepository interface.
type factRepository struct {
	db *gorm.DB
}

// NewFactRepository creates a new fact repository instance.
func NewFactRepository(db *gorm.DB) adapter.FactRepository {
	return &factRepository{
		db: db,
	}
}

// Load reads every fact owned by userID.
func (r *factRepository) Load(ctx context.Context, userID uuid.UUID) (*entity.FactStore, error) {
	facts := entity.NewFactStore(userID)
	db := r.db.WithContext(ctx)

	var categories []model.CategoryModel
	if err := db.Where("user_id = ?", userID).Order("sort_order ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	for _, m := range categories {
		facts.Categories = append(facts.Categories, m.ToEntity())
	}

	var buckets []model.BucketModel
	if err := db.Where("user_id = ?", userID).Order("sort_order ASC").Find(&buckets).Error; err != nil {
		return nil, fmt.Errorf("failed to load buckets: %w", err)
	}
	for _, m := range buckets {
		b := m.ToEntity()
		if b.Kind == entity.BucketKindPortfolio {
			facts.Portfolios = append(facts.Portfolios, b)
		} else {
			facts.Platforms = append(facts.Platforms, b)
		}
	}

	var semesters []model.SemesterModel
	if err := db.Where("user_id = ?", userID).Order("start_month ASC").Find(&semesters).Error; err != nil {
		return nil, fmt.Errorf("failed to load semesters: %w", err)
	}
	for _, m := range semesters {
		facts.Semesters = append(facts.Semesters, m.ToEntity())
	}

	month := func(k string) *entity.MonthRecord {
		key := valueobject.MonthKey(k)
		rec, ok := facts.Months[key]
		if !ok {
			rec = entity.NewMonthRecord(key)
			facts.Months[key] = rec
		}
		return rec
	}

	var income []model.IncomeModel
	if err := db.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&income).Error; err != nil {
		return nil, fmt.Errorf("failed to load income: %w", err)
	}
	for _, m := range income {
		rec := month(m.Month)
		rec.Income = append(rec.Income, m.ToEntity())
	}

	var expenses []model.ExpenseCellModel
	if err := db.Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	for _, m := range expenses {
		rec := month(m.Month)
		cells, ok := rec.Expenses[m.CategoryID]
		if !ok {
			cells = make(map[valueobject.PeriodID]decimal.Decimal)
			rec.Expenses[m.CategoryID] = cells
		}
		cells[valueobject.PeriodID(m.Period)] = m.Amount
	}

	for _, table := range amountTables {
		var cells []model.AmountCellModel
		if err := db.Table(table).Where("user_id = ?", userID).Find(&cells).Error; err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", table, err)
		}
		for _, m := range cells {
			rec := month(m.Month)
			switch table {
			case model.SavingsTable:
				rec.Savings[m.RefID] = m.Amount
			case model.InvestmentsTable:
				rec.Investments[m.RefID] = m.Amount
			default:
				rec.Budget[m.RefID] = m.Amount
			}
		}
	}

	return facts, nil
}

// Apply persists a single operation inside a transaction.
func (r *factRepository) Apply(ctx context.Context, userID uuid.UUID, op entity.Operation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applyOperation(tx, userID, op)
	})
}

// createFacts writes a freshly initialized fact set inside tx.
func createFacts(tx *gorm.DB, facts *entity.FactStore) error {
	for _, c := range facts.Categories {
		if err := tx.Create(model.CategoryFromEntity(c)).Error; err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
	}
	for _, kind := range []entity.BucketKind{entity.BucketKindPlatform, entity.BucketKindPortfolio} {
		for _, b := range facts.Buckets(kind) {
			if err := tx.Create(model.BucketFromEntity(b)).Error; err != nil {
				return fmt.Errorf("failed to create bucket: %w", err)
			}
		}
	}
	for _, s := range facts.Semesters {
		if err := tx.Create(model.SemesterFromEntity(s)).Error; err != nil {
			return fmt.Errorf("failed to create semester: %w", err)
		}
	}
	return nil
}

// DeleteAll removes every fact owned by userID.
func (r *factRepository) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearMonths(tx, userID); err != nil {
			return err
		}
		for _, m := range []interface{}{&model.CategoryModel{}, &model.BucketModel{}, &model.SemesterModel{}} {
			if err := tx.Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to delete facts: %w", err)
			}
		}
		return nil
	})
}

func applyOperation(tx *gorm.DB, userID uuid.UUID, op entity.Operation) error {
	now := time.Now().UTC()

	switch o := op.(type) {
	case entity.IncomeAdded:
		return tx.Create(model.IncomeFromEntity(userID, o.Entry)).Error

	case entity.IncomeDeleted:
		return tx.Where("id = ? AND user_id = ?", o.ID, userID).Delete(&model.IncomeModel{}).Error

	case entity.ExpenseCellSet:
		cell := model.ExpenseCellModel{
			UserID:     userID,
			Month:      string(o.Month),
			CategoryID: o.CategoryID,
			Period:     int(o.Period),
			Amount:     o.Amount,
			UpdatedAt:  now,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}, {Name: "category_id"}, {Name: "period"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).Create(&cell).Error

	case entity.AmountsSet:
		if len(o.Amounts) == 0 {
			return nil
		}
		cells := make([]model.AmountCellModel, 0, len(o.Amounts))
		for id, amount := range o.Amounts {
			cells = append(cells, model.AmountCellModel{
				UserID:    userID,
				Month:     string(o.Month),
				RefID:     id,
				Amount:    amount,
				UpdatedAt: now,
			})
		}
		return tx.Table(model.AmountTable(o.Target)).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}, {Name: "ref_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).Create(&cells).Error

	case entity.AmountsBatchSet:
		for _, set := range o.Sets {
			if err := applyOperation(tx, userID, set); err != nil {
				return err
			}
		}
		return nil

	case entity.CategoryAdded:
		return tx.Create(model.CategoryFromEntity(o.Category)).Error

	case entity.CategoryDeleted:
		if err := tx.Where("id = ? AND user_id = ?", o.ID, userID).Delete(&model.CategoryModel{}).Error; err != nil {
			return err
		}
		if !o.Cascade {
			return nil
		}
		if err := tx.Where("user_id = ? AND category_id = ?", userID, o.ID).Delete(&model.ExpenseCellModel{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND ref_id = ?", userID, o.ID).Delete(&model.BudgetModel{}).Error

	case entity.BucketAdded:
		return tx.Create(model.BucketFromEntity(o.Bucket)).Error

	case entity.BucketDeleted:
		if err := tx.Where("id = ? AND user_id = ?", o.ID, userID).Delete(&model.BucketModel{}).Error; err != nil {
			return err
		}
		if !o.Cascade {
			return nil
		}
		target := entity.TargetSavings
		if o.BucketKind == entity.BucketKindPortfolio {
			target = entity.TargetInvestment
		}
		return tx.Table(model.AmountTable(target)).
			Where("user_id = ? AND ref_id = ?", userID, o.ID).
			Delete(&model.AmountCellModel{}).Error

	case entity.SemesterAdded:
		return tx.Create(model.SemesterFromEntity(o.Semester)).Error

	case entity.SemesterDeleted:
		return tx.Where("id = ? AND user_id = ?", o.ID, userID).Delete(&model.SemesterModel{}).Error

	case entity.DataCleared:
		return clearMonths(tx, userID)

	default:
		return fmt.Errorf("unsupported operation %q", op.Kind())
	}
}

func clearMonths(tx *gorm.DB, userID uuid.UUID) error {
	if err := tx.Where("user_id = ?", userID).Delete(&model.IncomeModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	if err := tx.Where("user_id = ?", userID).Delete(&model.ExpenseCellModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete expenses: %w", err)
	}
	for _, table := range amountTables {
		if err := tx.Table(table).Where("user_id = ?", userID).Delete(&model.AmountCellModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete %s: %w", table, err)
		}
	}
	return nil
}
