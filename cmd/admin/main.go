package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/account"
	"fintrack/internal/domain/asset"
	"fintrack/internal/domain/category"
	"fintrack/internal/domain/user"
	"fintrack/internal/infrastructure/postgres"
	"fintrack/internal/shared/auth"
	"fintrack/internal/shared/config"
)

const usage = `FinTrack Admin CLI - Management commands for the FinTrack API

Usage:
  admin <command> [options]

Commands:
  seed-demo     Create a demo user with sample accounts, categories, and assets
  issue-token   Issue a JWT for an existing user

Examples:
  # Seed the demo account
  admin seed-demo --email=demo@fintrack.dev --password=demo-password

  # Issue a 30-day token for support access
  admin issue-token --email=demo@fintrack.dev --lifetime=720h
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "seed-demo":
		runSeedDemo(os.Args[2:])
	case "issue-token":
		runIssueToken(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func connect() (*config.Config, *postgres.DB) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	return cfg, db
}

func runSeedDemo(args []string) {
	fs := flag.NewFlagSet("seed-demo", flag.ExitOnError)
	email := fs.String("email", "demo@fintrack.dev", "Email for the demo user")
	password := fs.String("password", "", "Password for the demo user (required)")
	fs.Parse(args)

	if *password == "" {
		log.Fatal("--password is required")
	}

	_, db := connect()
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	userRepo := postgres.NewUserRepository(db)

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	u, err := userRepo.Create(ctx, user.CreateUserParams{Email: *email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			log.Fatalf("User %s already exists", *email)
		}
		log.Fatalf("Failed to create user: %v", err)
	}
	log.Printf("Created user %s (id %d)", u.Email, u.ID)

	if err := seedSampleData(ctx, db, u.ID); err != nil {
		log.Fatalf("Failed to seed sample data: %v", err)
	}

	log.Println("Demo data seeded")
}

// seedSampleData creates a starter set of accounts, categories, and an asset
// hierarchy so the demo dashboard has something to show.
func seedSampleData(ctx context.Context, db *postgres.DB, userID int64) error {
	accountRepo := postgres.NewAccountRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	assetRepo := postgres.NewAssetRepository(db)

	if _, err := accountRepo.Create(ctx, account.CreateParams{
		UserID:         userID,
		Name:           "Checking",
		AccountType:    "Checking",
		InitialBalance: decimal.NewFromInt(2500),
	}); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	for _, c := range []struct {
		name string
		typ  string
	}{
		{"Salary", category.TypeIncome},
		{"Groceries", category.TypeExpense},
		{"Rent", category.TypeExpense},
	} {
		if _, err := categoryRepo.Create(ctx, category.CreateParams{
			UserID: userID,
			Name:   c.name,
			Type:   c.typ,
		}); err != nil {
			return fmt.Errorf("failed to create category %s: %w", c.name, err)
		}
	}

	group, err := assetRepo.CreateGroup(ctx, asset.CreateGroupParams{UserID: userID, Name: "Investments"})
	if err != nil {
		return fmt.Errorf("failed to create asset group: %w", err)
	}

	item, err := assetRepo.CreateItem(ctx, asset.CreateItemParams{
		GroupID: group.ID,
		Name:    "Brokerage",
	})
	if err != nil {
		return fmt.Errorf("failed to create asset item: %w", err)
	}

	month := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.UTC)
	if _, err := assetRepo.UpsertValuation(ctx, item.ID, month, decimal.NewFromInt(10000)); err != nil {
		return fmt.Errorf("failed to create valuation: %w", err)
	}

	return nil
}

func runIssueToken(args []string) {
	fs := flag.NewFlagSet("issue-token", flag.ExitOnError)
	email := fs.String("email", "", "Email of the user to issue a token for (required)")
	lifetimeStr := fs.String("lifetime", "168h", "Token lifetime (e.g., 24h, 720h)")
	fs.Parse(args)

	if *email == "" {
		log.Fatal("--email is required")
	}

	lifetime, err := time.ParseDuration(*lifetimeStr)
	if err != nil {
		log.Fatalf("Invalid --lifetime: %v", err)
	}

	cfg, db := connect()
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := postgres.NewUserRepository(db)

	u, err := userRepo.GetByEmail(ctx, *email)
	if err != nil {
		log.Fatalf("Failed to look up user %s: %v", *email, err)
	}

	jwt := auth.NewJWT(cfg.JWT.Secret)
	token, err := jwt.GenerateWithLifetime(u.ID, u.Email, lifetime)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Println(token)
}
