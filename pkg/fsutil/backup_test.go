package fsutil_test

import (
	"context"
	"os"
	"testing"

	"github.com/yaklabco/linewidth/pkg/fsutil"
)

func TestBackupConfigPathFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  fsutil.BackupConfig
		want string
	}{
		{name: "default suffix", cfg: fsutil.BackupConfig{}, want: "/src/main.go.linewidth.bak"},
		{name: "custom suffix", cfg: fsutil.BackupConfig{Suffix: ".orig"}, want: "/src/main.go.orig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.cfg.PathFor("/src/main.go"); got != tt.want {
				t.Errorf("PathFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := fsutil.BackupConfig{Enabled: true}

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "a\n", 0o644)
		created, err := fsutil.CreateBackup(ctx, path, fsutil.BackupConfig{})
		if err != nil || created {
			t.Fatalf("CreateBackup() = %v, %v; want false, nil", created, err)
		}
	})

	t.Run("keeps the first backup", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "first\n", 0o644)

		created, err := fsutil.CreateBackup(ctx, path, cfg)
		if err != nil || !created {
			t.Fatalf("CreateBackup() = %v, %v; want true, nil", created, err)
		}

		if err := os.WriteFile(path, []byte("second\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		created, err = fsutil.CreateBackup(ctx, path, cfg)
		if err != nil || created {
			t.Fatalf("second CreateBackup() = %v, %v; want false, nil", created, err)
		}

		got, err := os.ReadFile(cfg.PathFor(path))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "first\n" {
			t.Errorf("backup = %q, want %q", got, "first\n")
		}
	})
}

func TestRestoreBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := fsutil.BackupConfig{Enabled: true}

	t.Run("no backup", func(t *testing.T) {
		t.Parallel()

		restored, err := fsutil.RestoreBackup(ctx, writeFile(t, "a\n", 0o644), cfg)
		if err != nil || restored {
			t.Fatalf("RestoreBackup() = %v, %v; want false, nil", restored, err)
		}
	})

	t.Run("restores and removes", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "original\n", 0o644)
		if _, err := fsutil.CreateBackup(ctx, path, cfg); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("annotated\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		restored, err := fsutil.RestoreBackup(ctx, path, cfg)
		if err != nil || !restored {
			t.Fatalf("RestoreBackup() = %v, %v; want true, nil", restored, err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "original\n" {
			t.Errorf("content = %q", got)
		}
		if _, err := os.Stat(cfg.PathFor(path)); !os.IsNotExist(err) {
			t.Errorf("backup still present: %v", err)
		}
	})
}
