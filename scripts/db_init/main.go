package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	dbfs "github.com/garnizeh/jobly/db"
	"github.com/garnizeh/jobly/internal/config"
	"github.com/garnizeh/jobly/internal/db"
	"github.com/garnizeh/jobly/internal/repository/sqlrepo"
	"github.com/garnizeh/jobly/pkg/models"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	seed := flag.Bool("seed", false, "Load demo companies and jobs")
	adminUser := flag.String("admin-username", "", "Create an admin user with this username")
	adminPass := flag.String("admin-password", "", "Password for the admin user")
	adminEmail := flag.String("admin-email", "admin@jobly.local", "Email for the admin user")
	flag.Parse()

	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, db.Options{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		ConnectAttempts: cfg.Database.ConnectAttempts,
		ConnectDelay:    cfg.Database.ConnectDelay,
	}, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Files); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	if *seed {
		if err := db.Seed(ctx, database, dbfs.Files); err != nil {
			fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Demo data loaded.")
	}

	if *adminUser != "" {
		if *adminPass == "" {
			fmt.Fprintln(os.Stderr, "-admin-password is required with -admin-username")
			os.Exit(1)
		}
		repo := sqlrepo.New(database, nil, cfg.BcryptCost)
		u, err := repo.Register(ctx, &models.User{
			Username:  *adminUser,
			Password:  *adminPass,
			FirstName: "Admin",
			LastName:  "User",
			Email:     *adminEmail,
			IsAdmin:   true,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Admin user error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Admin user %q created.\n", u.Username)
	}

	fmt.Println("Database initialized successfully.")
}
