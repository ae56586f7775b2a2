// Command seed populates a data directory with demo users and posts.
package main

import (
	"flag"
	"log"

	"memebin/internal/config"
	"memebin/internal/seed"
)

func main() {
	users := flag.Int("users", 5, "number of demo users to create")
	posts := flag.Int("posts", 20, "number of demo posts to create")
	password := flag.String("password", "memebin", "password assigned to every demo account")
	clean := flag.Bool("clean", false, "wipe the data directory before seeding")
	dataDir := flag.String("data", "", "data directory (defaults to the configured DATA_DIR)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	if *users <= 0 {
		log.Fatal("at least one user is required")
	}

	if err := seed.Run(cfg, seed.Options{
		NumUsers:    *users,
		NumPosts:    *posts,
		Password:    *password,
		ShouldClean: *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
