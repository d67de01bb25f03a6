package migrations

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestVersionFromFilename(t *testing.T) {
	tests := map[string]string{
		"001_init.sql":          "001",
		"002_add_index_foo.sql": "002",
		"003.sql":               "003",
	}
	for in, want := range tests {
		if got := VersionFromFilename(in); got != want {
			t.Errorf("VersionFromFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestListMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o700); err != nil {
		t.Fatal(err)
	}

	got, err := ListMigrationFiles(dir)
	if err != nil {
		t.Fatalf("ListMigrationFiles: %v", err)
	}
	want := []string{"001_a.sql", "002_b.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestListMigrationFilesMissingDir(t *testing.T) {
	if _, err := ListMigrationFiles(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error")
	}
}

func TestRepositoryMigrationsParse(t *testing.T) {
	files, err := ListMigrationFiles(filepath.Join("..", "..", "..", "migrations"))
	if err != nil {
		t.Fatalf("ListMigrationFiles: %v", err)
	}
	if len(files) == 0 || files[0] != "001_init.sql" {
		t.Fatalf("unexpected migrations %v", files)
	}
}
