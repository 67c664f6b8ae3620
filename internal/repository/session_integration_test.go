//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quillpress/quillpress/internal/testutil"
)

// ============================================================================
// User & Session Repository Integration Tests
// ============================================================================

func TestIntegrationUserRepository_CreateAndGet(t *testing.T) {
	ctx, repo := newSessionTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("create"), "Creator")

	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	retrieved, err := repo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if retrieved.Name != "Creator" {
		t.Errorf("Name = %q, want Creator", retrieved.Name)
	}
}

func TestIntegrationUserRepository_DuplicateEmail(t *testing.T) {
	ctx, repo := newSessionTestEnv(t)

	email := testutil.UniqueEmail("dup")
	first := testutil.NewTestUser(t, email, "First")
	second := testutil.NewTestUser(t, email, "Second")

	if err := repo.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser (first) failed: %v", err)
	}

	err := repo.CreateUser(ctx, second)
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("Expected ErrEmailExists, got: %v", err)
	}
}

func TestIntegrationUserRepository_GetOrCreate(t *testing.T) {
	ctx, repo := newSessionTestEnv(t)

	email := testutil.UniqueEmail("getorcreate")
	user := testutil.NewTestUser(t, email, "Idempotent")

	created, err := repo.GetOrCreateUser(ctx, user)
	if err != nil {
		t.Fatalf("GetOrCreateUser (create) failed: %v", err)
	}

	again := testutil.NewTestUser(t, email, "Different name")
	fetched, err := repo.GetOrCreateUser(ctx, again)
	if err != nil {
		t.Fatalf("GetOrCreateUser (fetch) failed: %v", err)
	}

	if fetched.ID != created.ID {
		t.Errorf("second call created a new user: %q vs %q", fetched.ID, created.ID)
	}
	if fetched.Name != "Idempotent" {
		t.Errorf("Name = %q, want the original record's name", fetched.Name)
	}
}

func TestIntegrationSessionRepository_CreateAndLookup(t *testing.T) {
	ctx, repo := newSessionTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("session"), "Holder")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	session := testutil.NewTestSession(t, user.Email)
	if err := repo.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	sessions, err := repo.GetSessionsByPrefix(ctx, session.TokenPrefix)
	if err != nil {
		t.Fatalf("GetSessionsByPrefix failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	if sessions[0].UserEmail != user.Email {
		t.Errorf("UserEmail = %q, want %q", sessions[0].UserEmail, user.Email)
	}
}

func TestIntegrationSessionRepository_DeleteExpired(t *testing.T) {
	ctx, repo := newSessionTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("expiry"), "Holder")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	expired := testutil.NewTestSession(t, user.Email)
	expired.ExpiresAt = time.Now().Add(-time.Hour)
	live := testutil.NewTestSession(t, user.Email)
	live.TokenPrefix = "def456"

	if err := repo.CreateSession(ctx, expired); err != nil {
		t.Fatalf("CreateSession (expired) failed: %v", err)
	}
	if err := repo.CreateSession(ctx, live); err != nil {
		t.Fatalf("CreateSession (live) failed: %v", err)
	}

	removed, err := repo.DeleteExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	remaining, err := repo.GetSessionsByPrefix(ctx, live.TokenPrefix)
	if err != nil {
		t.Fatalf("GetSessionsByPrefix failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Errorf("live sessions = %d, want 1", len(remaining))
	}
}

// ============================================================================
// Test Environment Setup
// ============================================================================

func newSessionTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetUsersSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset users schema: %v", err)
	}

	if err := testutil.ResetSessionsSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset sessions schema: %v", err)
	}

	return ctx, repo
}
