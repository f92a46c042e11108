// Command seed populates the database with a demo account, campaign, and
// contacts for local development.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/smsforge/campaign-service/internal/auth"
	"github.com/smsforge/campaign-service/internal/config"
	"github.com/smsforge/campaign-service/internal/db"
	"github.com/smsforge/campaign-service/internal/models"
	"github.com/smsforge/campaign-service/internal/repository"
)

const (
	seedEmail    = "demo@example.com"
	seedPassword = "Password1"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	database, err := db.New(cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := repository.NewUserRepository(database.DB)
	campaignRepo := repository.NewCampaignRepository(database.DB)
	contactRepo := repository.NewContactRepository(database.DB)

	passwordHash, err := auth.HashPassword(seedPassword)
	if err != nil {
		logger.Error("failed to hash password", slog.String("error", err.Error()))
		os.Exit(1)
	}

	apiKey, err := auth.GenerateAPIKey()
	if err != nil {
		logger.Error("failed to generate API key", slog.String("error", err.Error()))
		os.Exit(1)
	}

	user := &models.User{
		Email:        seedEmail,
		PasswordHash: passwordHash,
		APIKey:       apiKey,
	}
	if err := userRepo.CreateWithAccount(ctx, user); err != nil {
		logger.Error("failed to seed user", slog.String("error", err.Error()))
		os.Exit(1)
	}

	campaign := &models.Campaign{
		AccountID:   user.AccountID,
		Name:        "Spring Sale",
		Message:     "Hi {first_name} {last_name}, our spring sale is on! Reply STOP to opt out.",
		PhoneNumber: "+15550100001",
	}
	if err := campaignRepo.Create(ctx, campaign); err != nil {
		logger.Error("failed to seed campaign", slog.String("error", err.Error()))
		os.Exit(1)
	}

	contacts := []*models.Contact{
		{CampaignID: campaign.ID, PhoneNumber: "+254712345001", FirstName: "Alice", LastName: "Mwangi", CanSend: true},
		{CampaignID: campaign.ID, PhoneNumber: "+254712345002", FirstName: "Bob", LastName: "Otieno", CanSend: true},
		{CampaignID: campaign.ID, PhoneNumber: "+254712345003", FirstName: "Carol", LastName: "Wanjiru", CanSend: false},
	}
	for _, contact := range contacts {
		if err := contactRepo.Create(ctx, contact); err != nil {
			logger.Error("failed to seed contact",
				slog.String("phone", contact.PhoneNumber),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	logger.Info("seed complete",
		slog.String("email", seedEmail),
		slog.String("api_key", apiKey),
		slog.Int64("campaign_id", campaign.ID),
		slog.Int("contacts", len(contacts)),
	)
}
