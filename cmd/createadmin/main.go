// Command createadmin bootstraps the first admin account.  Public
// registration only ever creates regular users, so a fresh deployment
// runs this once before the admin-only endpoints become usable.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/roamly/tour-booking-api/internal/config"
	"github.com/roamly/tour-booking-api/internal/database"
	"github.com/roamly/tour-booking-api/internal/model"
	"github.com/roamly/tour-booking-api/internal/repository"
)

// adminStore is the slice of the user repository the bootstrap needs.
type adminStore interface {
	Create(ctx context.Context, name, email, password, role string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

func main() {
	name := flag.String("name", "Admin", "display name for the admin account")
	email := flag.String("email", "", "email for the admin account (required)")
	password := flag.String("password", "", "password for the admin account (required, at least 6 chars)")
	flag.Parse()

	if *email == "" || len(*password) < 6 {
		fmt.Fprintln(os.Stderr, "usage: createadmin -email admin@example.com -password <at least 6 chars> [-name Admin]")
		os.Exit(2)
	}

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, created, err := ensureAdmin(ctx, repository.NewUserRepo(db), *name, *email, *password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}
	if !created {
		log.Printf("account %s already exists (id=%d); nothing to do", *email, id)
		return
	}
	log.Printf("admin %s created (id=%d); change the password after first login", *email, id)
}

// ensureAdmin creates an admin account unless one already exists
// under the given email, which makes the command safe to rerun on
// every deployment.
func ensureAdmin(ctx context.Context, users adminStore, name, email, password string, cost int) (uint64, bool, error) {
	u, err := users.GetByEmail(ctx, email)
	if err == nil {
		return u.ID, false, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return 0, false, err
	}
	id, err := users.Create(ctx, name, email, password, model.RoleAdmin, cost)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
