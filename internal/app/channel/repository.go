package channel

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, ch *Channel) error
	FindInServer(ctx context.Context, id, serverID string) (*Channel, error)
	Update(ctx context.Context, id, name string, typ Type) error
	Delete(ctx context.Context, id string) error
	ListByServer(ctx context.Context, serverID string) ([]*Channel, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, ch *Channel) error {
	return r.db.WithContext(ctx).Create(ch).Error
}

func (r *repository) FindInServer(ctx context.Context, id, serverID string) (*Channel, error) {
	var ch Channel
	err := r.db.WithContext(ctx).Where("id = ? AND server_id = ?", id, serverID).First(&ch).Error
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *repository) Update(ctx context.Context, id, name string, typ Type) error {
	return r.db.WithContext(ctx).
		Model(&Channel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "type": typ}).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Channel{}).Error
}

func (r *repository) ListByServer(ctx context.Context, serverID string) ([]*Channel, error) {
	var channels []*Channel
	err := r.db.WithContext(ctx).
		Where("server_id = ?", serverID).
		Order("created_at ASC").
		Find(&channels).Error
	return channels, err
}
