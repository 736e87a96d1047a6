package server

import (
	"context"

	"discord-backend/internal/app/member"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Create inserts the server together with its channels and members.
	Create(ctx context.Context, srv *Server) error
	ListForProfile(ctx context.Context, profileID string) ([]*Server, error)
	FirstForProfile(ctx context.Context, profileID string) (*Server, error)
	FindByID(ctx context.Context, id string) (*Server, error)
	FindWithDetails(ctx context.Context, id string) (*Server, error)
	FindByInviteCode(ctx context.Context, code string) (*Server, error)
	MemberRole(ctx context.Context, serverID, profileID string) (member.Role, error)
	Update(ctx context.Context, id, name, imageURL string) error
	UpdateInviteCode(ctx context.Context, id, code string) error
	AddMember(ctx context.Context, m *member.Member) error
	RemoveMember(ctx context.Context, serverID, profileID string) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, srv *Server) error {
	return r.db.WithContext(ctx).Create(srv).Error
}

func (r *repository) forProfile(ctx context.Context, profileID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Joins("JOIN members ON members.server_id = servers.id").
		Where("members.profile_id = ?", profileID).
		Order("servers.created_at ASC")
}

func (r *repository) ListForProfile(ctx context.Context, profileID string) ([]*Server, error) {
	var servers []*Server
	err := r.forProfile(ctx, profileID).Find(&servers).Error
	return servers, err
}

func (r *repository) FirstForProfile(ctx context.Context, profileID string) (*Server, error) {
	var srv Server
	err := r.forProfile(ctx, profileID).First(&srv).Error
	if err != nil {
		return nil, err
	}
	return &srv, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Server, error) {
	var srv Server
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&srv).Error
	if err != nil {
		return nil, err
	}
	return &srv, nil
}

func (r *repository) FindWithDetails(ctx context.Context, id string) (*Server, error) {
	var srv Server
	err := r.db.WithContext(ctx).
		Preload("Channels", func(db *gorm.DB) *gorm.DB { return db.Order("channels.created_at ASC") }).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("members.role ASC") }).
		Preload("Members.Profile").
		Where("id = ?", id).
		First(&srv).Error
	if err != nil {
		return nil, err
	}
	return &srv, nil
}

func (r *repository) FindByInviteCode(ctx context.Context, code string) (*Server, error) {
	var srv Server
	err := r.db.WithContext(ctx).Where("invite_code = ?", code).First(&srv).Error
	if err != nil {
		return nil, err
	}
	return &srv, nil
}

func (r *repository) MemberRole(ctx context.Context, serverID, profileID string) (member.Role, error) {
	var m member.Member
	err := r.db.WithContext(ctx).
		Select("role").
		Where("server_id = ? AND profile_id = ?", serverID, profileID).
		First(&m).Error
	return m.Role, err
}

func (r *repository) Update(ctx context.Context, id, name, imageURL string) error {
	return r.db.WithContext(ctx).
		Model(&Server{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "image_url": imageURL}).Error
}

func (r *repository) UpdateInviteCode(ctx context.Context, id, code string) error {
	return r.db.WithContext(ctx).Model(&Server{}).Where("id = ?", id).Update("invite_code", code).Error
}

func (r *repository) AddMember(ctx context.Context, m *member.Member) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "server_id"}},
			DoNothing: true,
		}).
		Create(m).Error
}

func (r *repository) RemoveMember(ctx context.Context, serverID, profileID string) error {
	return r.db.WithContext(ctx).
		Where("server_id = ? AND profile_id = ?", serverID, profileID).
		Delete(&member.Member{}).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&Server{ID: id}).Error
}
