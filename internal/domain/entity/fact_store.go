package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
	"github.com/pocket-ledger/backend/internal/domain/valueobject"
)

// FactStore is the in-memory view of everything one user has recorded.
// Every mutating method validates its input first and leaves the store
// untouched when validation fails. The returned Operation describes the
// change for persistence; a nil Operation means nothing changed.
//
// A FactStore is not safe for concurrent use. Callers serialize access per
// user.
type FactStore struct {
	UserID     uuid.UUID
	Categories []Category
	Platforms  []Bucket
	Portfolios []Bucket
	Semesters  []Semester
	Months     map[valueobject.MonthKey]*MonthRecord
}

// NewFactStore returns an empty store for userID.
func NewFactStore(userID uuid.UUID) *FactStore {
	return &FactStore{
		UserID:     userID,
		Categories: []Category{},
		Platforms:  []Bucket{},
		Portfolios: []Bucket{},
		Semesters:  []Semester{},
		Months:     map[valueobject.MonthKey]*MonthRecord{},
	}
}

// Month returns the record for k, or nil if nothing was recorded that month.
// It never creates a record.
func (s *FactStore) Month(k valueobject.MonthKey) *MonthRecord {
	return s.Months[k]
}

// MonthKeys returns the keys of all existing month records in order.
func (s *FactStore) MonthKeys() []valueobject.MonthKey {
	keys := make([]valueobject.MonthKey, 0, len(s.Months))
	for k := range s.Months {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Buckets returns the platform or portfolio list for kind.
func (s *FactStore) Buckets(kind BucketKind) []Bucket {
	if kind == BucketKindPortfolio {
		return s.Portfolios
	}
	return s.Platforms
}

// ActiveSemester resolves the semester a view should use: the one with id
// when it exists, otherwise the first semester. ok is false when the user
// has no semesters.
func (s *FactStore) ActiveSemester(id uuid.UUID) (Semester, bool) {
	if len(s.Semesters) == 0 {
		return Semester{}, false
	}
	for _, sem := range s.Semesters {
		if sem.ID == id {
			return sem, true
		}
	}
	return s.Semesters[0], true
}

// Clone returns a deep copy of the store.
func (s *FactStore) Clone() *FactStore {
	c := &FactStore{
		UserID:     s.UserID,
		Categories: append([]Category{}, s.Categories...),
		Platforms:  append([]Bucket{}, s.Platforms...),
		Portfolios: append([]Bucket{}, s.Portfolios...),
		Semesters:  append([]Semester{}, s.Semesters...),
		Months:     make(map[valueobject.MonthKey]*MonthRecord, len(s.Months)),
	}
	for k, m := range s.Months {
		c.Months[k] = m.Clone()
	}
	return c
}

// AddIncome appends an income entry to month. Name must be non-blank, amount
// strictly positive and date set.
func (s *FactStore) AddIncome(month valueobject.MonthKey, name string, amount decimal.Decimal, date time.Time, note string) (IncomeAdded, error) {
	if err := validateMonth(month); err != nil {
		return IncomeAdded{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return IncomeAdded{}, domainerror.NewLedgerError(domainerror.ErrCodeMissingName, "income name is required", domainerror.ErrMissingName)
	}
	if !amount.IsPositive() {
		return IncomeAdded{}, domainerror.NewLedgerError(domainerror.ErrCodeNonPositiveAmount, "income amount must be greater than zero", domainerror.ErrNonPositiveAmount)
	}
	if date.IsZero() {
		return IncomeAdded{}, domainerror.NewLedgerError(domainerror.ErrCodeInvalidDate, "income date is required", domainerror.ErrInvalidDate)
	}

	entry := IncomeEntry{
		ID:        uuid.New(),
		Month:     month,
		Name:      name,
		Amount:    amount,
		Date:      date,
		Note:      strings.TrimSpace(note),
		CreatedAt: time.Now().UTC(),
	}
	rec := s.monthForWrite(month)
	rec.Income = append(rec.Income, entry)
	return IncomeAdded{Entry: entry}, nil
}

// DeleteIncome removes an income entry from whichever month holds it.
// Deleting an unknown id is a no-op.
func (s *FactStore) DeleteIncome(id uuid.UUID) Operation {
	for _, rec := range s.Months {
		if rec.removeIncome(id) {
			return IncomeDeleted{ID: id}
		}
	}
	return nil
}

// SetExpenseCell upserts the amount for (month, category, period). The
// category is not required to exist; cells of unknown categories are
// simply never aggregated.
func (s *FactStore) SetExpenseCell(month valueobject.MonthKey, categoryID uuid.UUID, period valueobject.PeriodID, amount decimal.Decimal) (ExpenseCellSet, error) {
	if err := validateMonth(month); err != nil {
		return ExpenseCellSet{}, err
	}
	if !period.Valid() {
		return ExpenseCellSet{}, domainerror.NewLedgerError(domainerror.ErrCodeInvalidPeriod, "period must be between 1 and 5", domainerror.ErrInvalidPeriod)
	}
	if amount.IsNegative() {
		return ExpenseCellSet{}, domainerror.NewLedgerError(domainerror.ErrCodeNegativeAmount, "expense amount must not be negative", domainerror.ErrNegativeAmount)
	}

	s.monthForWrite(month).setExpense(categoryID, period, amount)
	return ExpenseCellSet{Month: month, CategoryID: categoryID, Period: period, Amount: amount}, nil
}

// SetBudgets upserts a batch of budget ceilings for month.
func (s *FactStore) SetBudgets(month valueobject.MonthKey, amounts AmountCells) (AmountsSet, error) {
	return s.setAmounts(TargetBudget, month, amounts)
}

// SetSavings upserts a batch of saving cells for month.
func (s *FactStore) SetSavings(month valueobject.MonthKey, amounts AmountCells) (AmountsSet, error) {
	return s.setAmounts(TargetSavings, month, amounts)
}

// SetInvestments upserts a batch of investment cells for month.
func (s *FactStore) SetInvestments(month valueobject.MonthKey, amounts AmountCells) (AmountsSet, error) {
	return s.setAmounts(TargetInvestment, month, amounts)
}

// SetBucketGrid upserts saving (platform) or investment (portfolio) cells
// for several months at once. Every month and amount is validated before any
// is applied. Months with an empty batch are skipped.
func (s *FactStore) SetBucketGrid(kind BucketKind, grid map[valueobject.MonthKey]AmountCells) (AmountsBatchSet, error) {
	target := TargetSavings
	if kind == BucketKindPortfolio {
		target = TargetInvestment
	}
	months := make([]valueobject.MonthKey, 0, len(grid))
	for month, amounts := range grid {
		if err := validateMonth(month); err != nil {
			return AmountsBatchSet{}, err
		}
		for _, v := range amounts {
			if v.IsNegative() {
				return AmountsBatchSet{}, domainerror.NewLedgerError(domainerror.ErrCodeNegativeAmount, string(target)+" amounts must not be negative", domainerror.ErrNegativeAmount)
			}
		}
		if len(amounts) > 0 {
			months = append(months, month)
		}
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Ordinal() < months[j].Ordinal() })

	batch := AmountsBatchSet{Target: target, Sets: make([]AmountsSet, 0, len(months))}
	for _, month := range months {
		set, err := s.setAmounts(target, month, grid[month])
		if err != nil {
			return AmountsBatchSet{}, err
		}
		batch.Sets = append(batch.Sets, set)
	}
	return batch, nil
}

// setAmounts validates every item before applying any, so a batch is
// applied completely or not at all. An empty batch leaves the month untouched.
func (s *FactStore) setAmounts(target AmountTarget, month valueobject.MonthKey, amounts AmountCells) (AmountsSet, error) {
	if err := validateMonth(month); err != nil {
		return AmountsSet{}, err
	}
	for _, v := range amounts {
		if v.IsNegative() {
			return AmountsSet{}, domainerror.NewLedgerError(domainerror.ErrCodeNegativeAmount, string(target)+" amounts must not be negative", domainerror.ErrNegativeAmount)
		}
	}
	if len(amounts) == 0 {
		return AmountsSet{Target: target, Month: month, Amounts: AmountCells{}}, nil
	}

	rec := s.monthForWrite(month)
	dst := rec.Budget
	switch target {
	case TargetSavings:
		dst = rec.Savings
	case TargetInvestment:
		dst = rec.Investments
	}
	applied := make(AmountCells, len(amounts))
	for id, v := range amounts {
		dst[id] = v
		applied[id] = v
	}
	return AmountsSet{Target: target, Month: month, Amounts: applied}, nil
}

// AddCategory creates a category at the end of the list.
func (s *FactStore) AddCategory(emoji, name string) (CategoryAdded, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CategoryAdded{}, domainerror.NewLedgerError(domainerror.ErrCodeMissingName, "category name is required", domainerror.ErrMissingName)
	}
	next := 0
	for _, c := range s.Categories {
		if c.Name == name {
			return CategoryAdded{}, domainerror.NewLedgerError(domainerror.ErrCodeDuplicateName, "a category with this name already exists", domainerror.ErrDuplicateName)
		}
		if c.SortOrder >= next {
			next = c.SortOrder + 1
		}
	}

	c := NewCategory(s.UserID, strings.TrimSpace(emoji), name, next)
	s.Categories = append(s.Categories, c)
	return CategoryAdded{Category: c}, nil
}

// DeleteCategory removes a category. With OrphanPolicyCascade its expense
// cells and budget ceilings are removed from every month as well.
func (s *FactStore) DeleteCategory(id uuid.UUID, policy OrphanPolicy) Operation {
	idx := -1
	for i, c := range s.Categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	s.Categories = append(s.Categories[:idx], s.Categories[idx+1:]...)

	cascade := policy == OrphanPolicyCascade
	if cascade {
		for _, rec := range s.Months {
			delete(rec.Expenses, id)
			delete(rec.Budget, id)
		}
	}
	return CategoryDeleted{ID: id, Cascade: cascade}
}

// AddBucket creates a saving platform or portfolio at the end of its list.
func (s *FactStore) AddBucket(kind BucketKind, name string) (BucketAdded, error) {
	if !kind.Valid() {
		return BucketAdded{}, domainerror.NewLedgerError(domainerror.ErrCodeInvalidRequest, "unknown bucket kind", nil)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return BucketAdded{}, domainerror.NewLedgerError(domainerror.ErrCodeMissingName, string(kind)+" name is required", domainerror.ErrMissingName)
	}
	list := s.Buckets(kind)
	next := 0
	for _, b := range list {
		if b.Name == name {
			return BucketAdded{}, domainerror.NewLedgerError(domainerror.ErrCodeDuplicateName, "a "+string(kind)+" with this name already exists", domainerror.ErrDuplicateName)
		}
		if b.SortOrder >= next {
			next = b.SortOrder + 1
		}
	}

	b := NewBucket(s.UserID, kind, name, next)
	s.setBuckets(kind, append(list, b))
	return BucketAdded{Bucket: b}, nil
}

// DeleteBucket removes a platform or portfolio, scrubbing its cells when the
// policy cascades.
func (s *FactStore) DeleteBucket(kind BucketKind, id uuid.UUID, policy OrphanPolicy) Operation {
	list := s.Buckets(kind)
	idx := -1
	for i, b := range list {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	s.setBuckets(kind, append(list[:idx], list[idx+1:]...))

	cascade := policy == OrphanPolicyCascade
	if cascade {
		for _, rec := range s.Months {
			if kind == BucketKindPortfolio {
				delete(rec.Investments, id)
			} else {
				delete(rec.Savings, id)
			}
		}
	}
	return BucketDeleted{BucketKind: kind, ID: id, Cascade: cascade}
}

// AddSemester creates a semester covering start..end inclusive.
func (s *FactStore) AddSemester(name string, start, end valueobject.MonthKey) (SemesterAdded, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SemesterAdded{}, domainerror.NewLedgerError(domainerror.ErrCodeMissingName, "semester name is required", domainerror.ErrMissingName)
	}
	if err := validateMonth(start); err != nil {
		return SemesterAdded{}, err
	}
	if err := validateMonth(end); err != nil {
		return SemesterAdded{}, err
	}
	if start.After(end) {
		return SemesterAdded{}, domainerror.NewLedgerError(domainerror.ErrCodeInvalidSemesterRange, "semester start month must not be after end month", domainerror.ErrInvalidSemesterRange)
	}

	sem := NewSemester(s.UserID, name, start, end)
	s.Semesters = append(s.Semesters, sem)
	s.sortSemesters()
	return SemesterAdded{Semester: sem}, nil
}

// DeleteSemester removes a semester. The last remaining semester cannot be
// deleted; an unknown id is a no-op.
func (s *FactStore) DeleteSemester(id uuid.UUID) (Operation, error) {
	idx := -1
	for i, sem := range s.Semesters {
		if sem.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}
	if len(s.Semesters) <= 1 {
		return nil, domainerror.NewLedgerError(domainerror.ErrCodeLastSemester, "at least one semester must remain", domainerror.ErrLastSemester)
	}
	s.Semesters = append(s.Semesters[:idx], s.Semesters[idx+1:]...)
	return SemesterDeleted{ID: id}, nil
}

// ClearAllData drops every month record. Categories, buckets and semesters
// are kept.
func (s *FactStore) ClearAllData() DataCleared {
	s.Months = map[valueobject.MonthKey]*MonthRecord{}
	return DataCleared{}
}

func (s *FactStore) monthForWrite(k valueobject.MonthKey) *MonthRecord {
	rec, ok := s.Months[k]
	if !ok {
		rec = NewMonthRecord(k)
		s.Months[k] = rec
	}
	return rec
}

func (s *FactStore) setBuckets(kind BucketKind, list []Bucket) {
	if kind == BucketKindPortfolio {
		s.Portfolios = list
		return
	}
	s.Platforms = list
}

func (s *FactStore) sortSemesters() {
	sort.SliceStable(s.Semesters, func(i, j int) bool {
		return s.Semesters[i].StartMonth < s.Semesters[j].StartMonth
	})
}

// SortLists orders every list the way views present them: categories and
// buckets by sort order, semesters by start month.
func (s *FactStore) SortLists() {
	sort.SliceStable(s.Categories, func(i, j int) bool { return s.Categories[i].SortOrder < s.Categories[j].SortOrder })
	sort.SliceStable(s.Platforms, func(i, j int) bool { return s.Platforms[i].SortOrder < s.Platforms[j].SortOrder })
	sort.SliceStable(s.Portfolios, func(i, j int) bool { return s.Portfolios[i].SortOrder < s.Portfolios[j].SortOrder })
	s.sortSemesters()
}

// ParseMonth parses a YYYY-MM string, reporting a LedgerError when malformed.
func ParseMonth(s string) (valueobject.MonthKey, error) {
	k := valueobject.MonthKey(s)
	if err := validateMonth(k); err != nil {
		return "", err
	}
	return k, nil
}

func validateMonth(k valueobject.MonthKey) error {
	if _, err := valueobject.ParseMonthKey(string(k)); err != nil {
		return domainerror.NewLedgerError(domainerror.ErrCodeInvalidMonth, "month must use the YYYY-MM format", domainerror.ErrInvalidMonth)
	}
	return nil
}
