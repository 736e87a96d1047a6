package seeder

import (
	"discord-backend/internal/app/channel"
	"discord-backend/internal/app/member"
	"discord-backend/internal/app/profile"
	"discord-backend/internal/app/server"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DemoUserID is the auth subject of the seeded profile. Sign a session for it with
// `discord-cli session-token --user demo-user`.
const DemoUserID = "demo-user"

type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger,
	}
}

func (s *Seeder) Seed() error {
	s.logger.Info("Running database seeders...")

	if err := s.seedDemoServer(); err != nil {
		return err
	}

	s.logger.Info("Database seeders completed successfully")
	return nil
}

func (s *Seeder) seedDemoServer() error {
	var count int64
	if err := s.db.Model(&profile.Profile{}).Where("user_id = ?", DemoUserID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("Demo profile already exists, skipping seed")
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		owner := profile.Profile{UserID: DemoUserID, Name: "Demo User", Email: "demo@example.com"}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}

		srv := server.Server{
			Name:       "Demo Server",
			InviteCode: uuid.NewString(),
			ProfileID:  owner.ID,
			Channels: []channel.Channel{
				{Name: channel.GeneralName, Type: channel.TypeText, ProfileID: owner.ID},
				{Name: "lounge", Type: channel.TypeAudio, ProfileID: owner.ID},
				{Name: "standup", Type: channel.TypeVideo, ProfileID: owner.ID},
			},
			Members: []member.Member{
				{ProfileID: owner.ID, Role: member.RoleAdmin},
			},
		}
		if err := tx.Create(&srv).Error; err != nil {
			return err
		}

		s.logger.Info("Seeded demo server",
			zap.String("server_id", srv.ID),
			zap.String("invite_code", srv.InviteCode),
			zap.Int("channels", len(srv.Channels)),
		)
		return nil
	})
}
