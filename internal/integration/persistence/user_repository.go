package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pocket-ledger/backend/internal/application/adapter"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
	"github.com/pocket-ledger/backend/internal/integration/persistence/model"
)

// userRepository stores accounts. Usernames are kept lower-cased and the
// unique index on them is the final arbiter of duplicates.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{db: db}
}

// CreateWithFacts inserts the account and its initial facts in one
// transaction, so a failed bootstrap leaves no account behind.
func (r *userRepository) CreateWithFacts(ctx context.Context, user *entity.User, facts *entity.FactStore) error {
	if facts.UserID != user.ID {
		return fmt.Errorf("facts belong to %s, not to user %s", facts.UserID, user.ID)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := insertUser(tx, user); err != nil {
			return err
		}
		return createFacts(tx, facts)
	})
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(r.db.WithContext(ctx).Where("username = ?", normalizeUsername(username)))
}

// Update stores the changed profile. Renaming onto a taken username fails
// with domainerror.ErrUsernameAlreadyExists.
func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	m := model.FromEntity(user)
	m.Username = normalizeUsername(m.Username)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return translateUserError(err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.UserModel{}, "id = ?", id).Error
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("username = ?", normalizeUsername(username)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) findOne(query *gorm.DB) (*entity.User, error) {
	var m model.UserModel
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUserNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

func insertUser(tx *gorm.DB, user *entity.User) error {
	m := model.FromEntity(user)
	m.Username = normalizeUsername(m.Username)
	if err := tx.Create(m).Error; err != nil {
		return translateUserError(err)
	}
	return nil
}

// translateUserError maps a unique index violation on users to the domain
// sentinel. It relies on gorm.Config.TranslateError being enabled.
func translateUserError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerror.ErrUsernameAlreadyExists
	}
	return err
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
