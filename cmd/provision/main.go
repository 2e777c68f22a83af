package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/camposur/reservas-backend/internal/auth"
	"github.com/camposur/reservas-backend/pkg/config"
	"github.com/camposur/reservas-backend/pkg/db"
	"github.com/camposur/reservas-backend/pkg/logger"
	"github.com/camposur/reservas-backend/pkg/security"
)

// provision creates administrator accounts from the command line. It is the
// usual way the first administrator gets seeded in a fresh environment.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "provision"})

	_ = godotenv.Load()

	username := flag.String("username", "", "administrator username")
	email := flag.String("email", "", "administrator email")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	phone := flag.String("phone", "", "phone number (optional)")
	password := flag.String("password", "", "password (falls back to the legacy default when empty)")
	flag.Parse()

	if *username == "" || *email == "" {
		fmt.Fprintln(os.Stderr, "missing -username or -email")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "provision",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	svc, err := auth.NewProvisionService(auth.ProvisionServiceParams{
		DB:     dbClient,
		Hasher: security.NewHasher(cfg.Password),
	})
	if err != nil {
		logg.Error(ctx, "failed to create provision service", err)
		os.Exit(1)
	}

	req := auth.ProvisionAdminRequest{
		Username:  *username,
		Email:     *email,
		FirstName: *firstName,
		LastName:  *lastName,
		Password:  *password,
	}
	if *phone != "" {
		req.Phone = phone
	}

	result, err := svc.ProvisionAdmin(ctx, req)
	if err != nil {
		logg.Error(ctx, "failed to provision administrator", err)
		os.Exit(1)
	}

	fmt.Printf("administrator %s created (%s)\n", result.User.Username, result.User.Email)
	if result.DefaultPassword {
		fmt.Fprintln(os.Stderr, "WARNING: account uses the default password; change it on first login")
	}
}
