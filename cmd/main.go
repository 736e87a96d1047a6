package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"discord-backend/internal/app/profile"
	"discord-backend/internal/config"
	"discord-backend/internal/db"
	"discord-backend/internal/db/seeder"
	"discord-backend/internal/middleware"
	"discord-backend/internal/providers/livekit"
	"discord-backend/internal/utils"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer logger.Sync()

	utils.LoadEnv(logger)

	cfg := config.LoadConfig()

	cliApp := &cli.App{
		Name:  "discord-cli",
		Usage: "maintenance tasks for the discord backend",
		Commands: []*cli.Command{
			migrateCommand(&cfg, logger),
			seedCommand(&cfg, logger),
			sessionTokenCommand(&cfg),
			livekitTokenCommand(&cfg),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		logger.Fatal("Command failed", zap.Error(err))
	}
}

func migrateCommand(cfg *config.Config, logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create or update database tables",
		Action: func(*cli.Context) error {
			conn, err := db.Connect(cfg, logger)
			if err != nil {
				return err
			}
			return db.Migrate(conn, logger)
		},
	}
}

func seedCommand(cfg *config.Config, logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "insert the demo profile and server",
		Action: func(*cli.Context) error {
			conn, err := db.Connect(cfg, logger)
			if err != nil {
				return err
			}
			if err := db.Migrate(conn, logger); err != nil {
				return err
			}
			return seeder.NewSeeder(conn, logger).Seed()
		},
	}
}

func sessionTokenCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "session-token",
		Usage: "sign a session token accepted by the API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Value: seeder.DemoUserID, Usage: "auth subject"},
			&cli.StringFlag{Name: "name", Value: "Demo User"},
			&cli.StringFlag{Name: "email"},
			&cli.StringFlag{Name: "image"},
			&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour},
		},
		Action: func(c *cli.Context) error {
			if cfg.AuthJWTSecret == "" {
				return fmt.Errorf("AUTH_JWT_SECRET is not set")
			}
			token, err := middleware.SignSessionToken(cfg.AuthJWTSecret, profile.Identity{
				UserID:   c.String("user"),
				Name:     c.String("name"),
				Email:    c.String("email"),
				ImageURL: c.String("image"),
			}, c.Duration("ttl"))
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
}

func livekitTokenCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "livekit-token",
		Usage: "mint a LiveKit join token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "room", Required: true},
			&cli.StringFlag{Name: "identity", Required: true},
		},
		Action: func(c *cli.Context) error {
			provider := livekit.NewProvider(cfg)
			if !provider.Configured() {
				return fmt.Errorf("LiveKit is not configured")
			}
			token, err := provider.Issue(c.String("room"), c.String("identity"))
			if err != nil {
				return err
			}
			fmt.Printf("url:   %s\ntoken: %s\n", provider.URL(), token)
			return nil
		},
	}
}
