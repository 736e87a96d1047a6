package member

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindByProfileAndServer(ctx context.Context, profileID, serverID string) (*Member, error)
	FindByID(ctx context.Context, id string) (*Member, error)
	FindInServer(ctx context.Context, id, serverID string) (*Member, error)
	ServerOwnerID(ctx context.Context, serverID string) (string, error)
	UpdateRole(ctx context.Context, id string, role Role) error
	Delete(ctx context.Context, id string) error
	ListByServer(ctx context.Context, serverID string) ([]*Member, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByProfileAndServer(ctx context.Context, profileID, serverID string) (*Member, error) {
	var m Member
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("profile_id = ? AND server_id = ?", profileID, serverID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Member, error) {
	var m Member
	err := r.db.WithContext(ctx).Preload("Profile").Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindInServer(ctx context.Context, id, serverID string) (*Member, error) {
	var m Member
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("id = ? AND server_id = ?", id, serverID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) ServerOwnerID(ctx context.Context, serverID string) (string, error) {
	var ownerID string
	res := r.db.WithContext(ctx).
		Table("servers").
		Select("profile_id").
		Where("id = ?", serverID).
		Limit(1).
		Scan(&ownerID)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", gorm.ErrRecordNotFound
	}
	return ownerID, nil
}

func (r *repository) UpdateRole(ctx context.Context, id string, role Role) error {
	return r.db.WithContext(ctx).Model(&Member{}).Where("id = ?", id).Update("role", role).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Member{}).Error
}

func (r *repository) ListByServer(ctx context.Context, serverID string) ([]*Member, error) {
	var members []*Member
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("server_id = ?", serverID).
		Order("role ASC").
		Find(&members).Error
	return members, err
}
