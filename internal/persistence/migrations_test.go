package persistence

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func TestListMigrationFilesSortedSQLOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_catalog.sql", "001_init.sql", "notes.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "archive"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := listMigrationFiles(dir)
	if err != nil {
		t.Fatalf("listMigrationFiles: %v", err)
	}
	want := []string{"001_init.sql", "002_catalog.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("files = %v, want %v", got, want)
	}
}

func TestListMigrationFilesMissingDir(t *testing.T) {
	if _, err := listMigrationFiles(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("missing directory must be an error")
	}
}

func TestPendingMigrationsSkipsApplied(t *testing.T) {
	files := []string{"001_init.sql", "002_catalog.sql", "003_indexes.sql"}

	tests := []struct {
		name    string
		applied map[string]bool
		want    []string
	}{
		{
			name:    "fresh database runs everything",
			applied: map[string]bool{},
			want:    files,
		},
		{
			name:    "restart against migrated database is a no-op",
			applied: map[string]bool{"001_init.sql": true, "002_catalog.sql": true, "003_indexes.sql": true},
			want:    []string{},
		},
		{
			name:    "only new files run",
			applied: map[string]bool{"001_init.sql": true, "002_catalog.sql": true},
			want:    []string{"003_indexes.sql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pendingMigrations(files, tt.applied)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("pending = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunMigrationsWithoutPoolIsSkipped(t *testing.T) {
	if err := RunMigrations(context.Background(), nil, zap.NewNop()); err != nil {
		t.Errorf("RunMigrations without pool: %v", err)
	}
}
