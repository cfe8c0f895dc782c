package postgres

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestMigrateURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@h:5432/db":   "pgx5://u:p@h:5432/db",
		"postgresql://u:p@h:5432/db": "pgx5://u:p@h:5432/db",
		"pgx5://u:p@h/db":            "pgx5://u:p@h/db",
		"postgres:/missing-slash":    "postgres:/missing-slash",
	}
	for in, want := range tests {
		if got := migrateURL(in); got != want {
			t.Fatalf("migrateURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRunMigrations_MissingSource(t *testing.T) {
	err := RunMigrations("postgres://u:p@127.0.0.1:1/db", t.TempDir()+"/does-not-exist", zerolog.Nop())
	if err == nil {
		t.Fatalf("expected an error for a missing migrations directory")
	}
}
