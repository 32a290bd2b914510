package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/atlas_derslik/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *GormRepo) FindActiveByIdentifier(ctx context.Context, identifier string) (*models.Account, error) {
	var acc models.Account
	err := r.DB.WithContext(ctx).
		Where("identifier = ? AND active = ?", NormalizeIdentifier(identifier), true).
		First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find account by identifier: %w", err)
	}
	return &acc, nil
}

func (r *GormRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var acc models.Account
	err := r.DB.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return &acc, nil
}

// FindRoleProfile returns ErrNotFound when the role has no sub-record or none was created.
func (r *GormRepo) FindRoleProfile(ctx context.Context, accountID uuid.UUID, role string) (*models.RoleProfile, error) {
	db := r.DB.WithContext(ctx)
	var err error
	profile := &models.RoleProfile{}

	switch role {
	case models.RoleStudent:
		var p models.StudentProfile
		if err = db.Where("account_id = ?", accountID).First(&p).Error; err == nil {
			profile.Student = &p
		}
	case models.RoleTeacher:
		var p models.TeacherProfile
		if err = db.Where("account_id = ?", accountID).First(&p).Error; err == nil {
			profile.Teacher = &p
		}
	default:
		return nil, ErrNotFound
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find role profile: %w", err)
	}
	return profile, nil
}

func identifierExists(db *gorm.DB, identifier string) (bool, error) {
	var count int64
	if err := db.Model(&models.Account{}).
		Where("identifier = ?", NormalizeIdentifier(identifier)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateAccount stores acc and its role sub-record in one transaction, so a
// failing sub-record insert never leaves an orphaned account behind.
func (r *GormRepo) CreateAccount(ctx context.Context, acc *models.Account, profile *models.RoleProfile) error {
	acc.Identifier = NormalizeIdentifier(acc.Identifier)

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := identifierExists(tx, acc.Identifier)
		if err != nil {
			return fmt.Errorf("check identifier: %w", err)
		}
		if exists {
			return ErrAlreadyExists
		}

		if err := tx.Create(acc).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyExists
			}
			return fmt.Errorf("create account: %w", err)
		}

		if profile.Empty() {
			return nil
		}
		if p := profile.Student; p != nil {
			p.AccountID = acc.ID
			if err := tx.Create(p).Error; err != nil {
				return fmt.Errorf("create student profile: %w", err)
			}
		}
		if p := profile.Teacher; p != nil {
			p.AccountID = acc.ID
			if err := tx.Create(p).Error; err != nil {
				return fmt.Errorf("create teacher profile: %w", err)
			}
		}
		return nil
	})
}

func (r *GormRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return fmt.Errorf("set active: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
