package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/model"
	"github.com/quillpress/quillpress/internal/repository"
)

// Bootstraps a user and a session token for local development and
// testing. The plaintext token is printed exactly once; only its hash is
// stored.

type output struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	SessionID   string `json:"session_id"`
	Token       string `json:"token"`
	TokenPrefix string `json:"token_prefix"`
	ExpiresAt   string `json:"expires_at"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "alice@prisma.io", "User email")
		name        = flag.String("name", "Alice", "User display name")
		env         = flag.String("env", auth.EnvTest, "Token environment: live or test")
		ttl         = flag.Duration("ttl", 30*24*time.Hour, "Session lifetime")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	if *env != auth.EnvLive && *env != auth.EnvTest {
		fmt.Fprintln(os.Stderr, "invalid env; use live or test")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	user, err := repo.GetOrCreateUser(ctx, &model.User{
		ID:    ulid.Make().String(),
		Email: *email,
		Name:  *name,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "ensure user:", err)
		os.Exit(1)
	}

	generated, err := auth.GenerateSessionToken(*env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generate session token:", err)
		os.Exit(1)
	}

	now := time.Now().UTC()
	session := &model.Session{
		ID:          ulid.Make().String(),
		TokenPrefix: generated.Prefix,
		TokenHash:   generated.Hash,
		UserEmail:   user.Email,
		ExpiresAt:   now.Add(*ttl),
		CreatedAt:   now,
	}

	if err := repo.CreateSession(ctx, session); err != nil {
		fmt.Fprintln(os.Stderr, "create session:", err)
		os.Exit(1)
	}

	out := output{
		UserID:      user.ID,
		Email:       user.Email,
		SessionID:   session.ID,
		Token:       generated.Plaintext,
		TokenPrefix: session.TokenPrefix,
		ExpiresAt:   session.ExpiresAt.Format(time.RFC3339),
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.Token)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
