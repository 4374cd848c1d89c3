package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mweber/cadence/internal/config"
	errs "github.com/mweber/cadence/internal/errors"
	"github.com/mweber/cadence/internal/models"
	"github.com/mweber/cadence/internal/storage/sqlite"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &Context{
		Store:  store,
		Config: &config.Config{Timezone: "UTC"},
	}
}

func TestResolveUser(t *testing.T) {
	ctx := newTestContext(t)

	alice := models.User{ID: "u1", Username: "alice", CreatedAt: time.Now().UTC()}
	if err := ctx.Store.AddUser(alice); err != nil {
		t.Fatalf("failed to add user: %v", err)
	}

	t.Run("override flag wins", func(t *testing.T) {
		ctx.Config.DefaultUser = "nobody"
		user, err := ctx.ResolveUser("alice")
		if err != nil {
			t.Fatalf("ResolveUser() error = %v", err)
		}
		if user.ID != "u1" {
			t.Errorf("ResolveUser() ID = %q, want u1", user.ID)
		}
	})

	t.Run("falls back to default_user", func(t *testing.T) {
		ctx.Config.DefaultUser = "alice"
		user, err := ctx.ResolveUser("")
		if err != nil {
			t.Fatalf("ResolveUser() error = %v", err)
		}
		if user.Username != "alice" {
			t.Errorf("ResolveUser() username = %q, want alice", user.Username)
		}
	})

	t.Run("no user selected", func(t *testing.T) {
		ctx.Config.DefaultUser = ""
		_, err := ctx.ResolveUser("")
		if !errs.IsValidation(err) {
			t.Errorf("ResolveUser() error = %v, want validation error", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := ctx.ResolveUser("bob")
		if !errs.IsNotFound(err) {
			t.Errorf("ResolveUser() error = %v, want not-found error", err)
		}
	})
}

func TestResolveDay(t *testing.T) {
	ctx := newTestContext(t)

	t.Run("explicit date", func(t *testing.T) {
		day, err := ctx.ResolveDay("2026-03-14")
		if err != nil {
			t.Fatalf("ResolveDay() error = %v", err)
		}
		if day != "2026-03-14" {
			t.Errorf("ResolveDay() = %q, want 2026-03-14", day)
		}
	})

	t.Run("empty date is today", func(t *testing.T) {
		day, err := ctx.ResolveDay("")
		if err != nil {
			t.Fatalf("ResolveDay() error = %v", err)
		}
		want := time.Now().UTC().Format("2006-01-02")
		if day != want {
			t.Errorf("ResolveDay() = %q, want %q", day, want)
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		if _, err := ctx.ResolveDay("14/03/2026"); !errs.IsValidation(err) {
			t.Errorf("ResolveDay() error = %v, want validation error", err)
		}
	})
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{0, "0%"},
		{0.5, "50%"},
		{0.333, "33%"},
		{1, "100%"},
	}

	for _, tt := range tests {
		if got := FormatRate(tt.rate); got != tt.want {
			t.Errorf("FormatRate(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}
