// dbtool runs one-off database maintenance commands:
//
//	dbtool create-default-users
//	dbtool create-user -u <username> -p <password> -r <ADMIN|USER>
//	dbtool delete-all-orders
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/you/orderq/internal/auth"
	"github.com/you/orderq/internal/config"
	"github.com/you/orderq/internal/domain"
	"github.com/you/orderq/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()
	db, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	store := storage.New(db)

	switch os.Args[1] {
	case "create-default-users":
		createDefaultUsers(ctx, store, cfg)
	case "create-user":
		createUser(ctx, store, os.Args[2:])
	case "delete-all-orders":
		n, err := store.DeleteAllOrders(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("deleted %d orders\n", n)
	default:
		usage()
	}
}

func createDefaultUsers(ctx context.Context, store *storage.Store, cfg config.Config) {
	accounts := []struct {
		username, password string
		role               domain.UserRole
	}{
		{cfg.DefaultAdminUsername, cfg.DefaultAdminPassword, domain.RoleAdmin},
		{cfg.DefaultUserUsername, cfg.DefaultUserPassword, domain.RoleUser},
	}
	for _, a := range accounts {
		if a.password == "" {
			log.Fatalf("no password configured for %q", a.username)
		}
		addUser(ctx, store, a.username, a.password, a.role)
	}
}

func createUser(ctx context.Context, store *storage.Store, args []string) {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	role := fs.String("r", string(domain.RoleUser), "role (ADMIN or USER)")
	_ = fs.Parse(args)

	if *username == "" || *password == "" {
		fs.Usage()
		os.Exit(2)
	}
	r := domain.UserRole(*role)
	if r != domain.RoleAdmin && r != domain.RoleUser {
		log.Fatalf("unknown role %q", *role)
	}
	addUser(ctx, store, *username, *password, r)
}

func addUser(ctx context.Context, store *storage.Store, username, password string, role domain.UserRole) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal(err)
	}
	if err := store.CreateUser(ctx, &domain.User{Username: username, Password: hash, Role: role}); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("user %s (%s) ready\n", username, role)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: dbtool <create-default-users|create-user|delete-all-orders> [flags]")
	os.Exit(2)
}
