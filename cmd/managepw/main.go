package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/lumora-ai/chatbot-admin/internal/app"
	"github.com/lumora-ai/chatbot-admin/internal/config"
	"github.com/lumora-ai/chatbot-admin/internal/credstore"
	"github.com/lumora-ai/chatbot-admin/internal/logging"
	"github.com/lumora-ai/chatbot-admin/internal/security"
)

// managepw inspects and repairs stored admin passwords. Without flags it
// reports each account's hash status; -migrate rewrites any plaintext
// password as a hash, and -set replaces one account's password.
func main() {
	migrate := flag.Bool("migrate", false, "hash any plaintext passwords in place")
	dryRun := flag.Bool("dry-run", false, "report what -migrate would change without writing")
	setUser := flag.String("set", "", "username whose password to replace")
	newPassword := flag.String("password", "", "new password for -set")
	flag.Parse()

	cfg, errLoad := config.Load()
	if errLoad != nil {
		log.Fatalf("load config: %v", errLoad)
	}
	logging.Setup(logging.Options{Level: cfg.LogLevel})

	components := app.Build(cfg)
	ctx := context.Background()

	if *setUser != "" {
		if *newPassword == "" {
			log.Fatal("-set requires -password")
		}
		if errSet := setPassword(ctx, components.Credentials, cfg.AuthKey, *setUser, *newPassword); errSet != nil {
			log.Fatalf("set password: %v", errSet)
		}
		fmt.Printf("password updated for %s\n", *setUser)
		return
	}

	changed, errRun := migratePasswords(ctx, components.Credentials, cfg.AuthKey, *migrate && !*dryRun)
	if errRun != nil {
		log.Fatalf("migrate: %v", errRun)
	}
	if !*migrate {
		return
	}
	if *dryRun {
		fmt.Printf("%d account(s) would be migrated\n", changed)
		return
	}
	fmt.Printf("%d account(s) migrated\n", changed)
}

// migratePasswords reports hash status for every account and, when write is
// set, replaces plaintext passwords with hashes.
func migratePasswords(ctx context.Context, creds *credstore.Gateway, authKey string, write bool) (int, error) {
	rows, errList := creds.List(ctx)
	if errList != nil {
		return 0, errList
	}

	changed := 0
	for i := range rows {
		cred := &rows[i]
		if security.LooksHashed(cred.Password) {
			fmt.Fprintf(os.Stdout, "%-24s hashed\n", cred.Username)
			continue
		}
		fmt.Fprintf(os.Stdout, "%-24s PLAINTEXT\n", cred.Username)
		changed++
		if !write {
			continue
		}
		hash, errHash := security.HashPassword(cred.Password, authKey)
		if errHash != nil {
			return changed, fmt.Errorf("hash %s: %w", cred.Username, errHash)
		}
		cred.Password = hash
		if errSave := creds.Save(ctx, cred); errSave != nil {
			return changed, fmt.Errorf("save %s: %w", cred.Username, errSave)
		}
	}
	return changed, nil
}

// setPassword replaces one account's password with a fresh hash.
func setPassword(ctx context.Context, creds *credstore.Gateway, authKey, username, password string) error {
	cred, errFind := creds.FindByUsername(ctx, username)
	if errFind != nil {
		return errFind
	}
	hash, errHash := security.HashPassword(password, authKey)
	if errHash != nil {
		return errHash
	}
	cred.Password = hash
	return creds.Save(ctx, cred)
}
