package profile

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	CreateIfAbsent(ctx context.Context, p *Profile) (*Profile, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateIfAbsent inserts p unless a profile with the same user_id exists, then returns the stored row.
func (r *repository) CreateIfAbsent(ctx context.Context, p *Profile) (*Profile, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(p).Error
	if err != nil {
		return nil, err
	}
	return r.FindByUserID(ctx, p.UserID)
}
