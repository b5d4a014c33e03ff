package migration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/credito/backend/internal/infrastructure/schema"
)

const (
	upPlaceholder   = "-- Write your UP migration SQL here"
	downPlaceholder = "-- Write your DOWN migration SQL here"
	versionWidth    = 6
)

// MigrationFile represents a migration file pair
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	UpPath      string
	DownPath    string
}

// CreateOptions fills a new migration pair. Empty SQL leaves a placeholder.
type CreateOptions struct {
	Description string
	UpSQL       string
	DownSQL     string
}

// CreateMigration writes the next numbered migration pair into migrationsDir.
func CreateMigration(migrationsDir, name string, opts CreateOptions) (*MigrationFile, error) {
	base := sanitizeName(name)
	if base == "" {
		return nil, errors.New("migration name must contain letters or digits")
	}
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	next, err := nextVersion(migrationsDir)
	if err != nil {
		return nil, err
	}
	version := fmt.Sprintf("%0*d", versionWidth, next)
	fileBase := version + "_" + base

	mf := &MigrationFile{
		Version:     version,
		Name:        name,
		Description: opts.Description,
		UpPath:      filepath.Join(migrationsDir, fileBase+".up.sql"),
		DownPath:    filepath.Join(migrationsDir, fileBase+".down.sql"),
	}

	up := renderMigration(name, opts.Description, opts.UpSQL, upPlaceholder)
	if err := writeNew(mf.UpPath, up); err != nil {
		return nil, fmt.Errorf("failed to create up migration: %w", err)
	}
	down := renderMigration(name+" (Rollback)", opts.Description, opts.DownSQL, downPlaceholder)
	if err := writeNew(mf.DownPath, down); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("failed to create down migration: %w", err)
	}
	return mf, nil
}

// GenerateSchemaMigration writes a migration pair that creates and drops the
// whole registry on Postgres.
func GenerateSchemaMigration(migrationsDir, name string, registry *schema.Registry) (*MigrationFile, error) {
	return CreateMigration(migrationsDir, name, CreateOptions{
		Description: "Generated from the schema registry (postgres)",
		UpSQL:       schema.Script(registry.DDL(schema.Postgres)),
		DownSQL:     schema.Script(registry.DropDDL(schema.Postgres)),
	})
}

func renderMigration(title, description, body, placeholder string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "-- Migration: %s\n", title)
	if description != "" {
		fmt.Fprintf(&sb, "-- %s\n", description)
	}
	sb.WriteString("\n")
	if body == "" {
		body = placeholder + "\n"
	}
	sb.WriteString(body)
	return sb.String()
}

// writeNew refuses to overwrite an existing migration.
func writeNew(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return f.Close()
}

// nextVersion returns one past the highest numeric prefix in dir.
func nextVersion(dir string) (uint64, error) {
	names, err := ListMigrations(dir)
	if err != nil {
		return 0, err
	}
	var highest uint64
	for _, n := range names {
		prefix, _, _ := strings.Cut(n, "_")
		v, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			continue
		}
		if v > highest {
			highest = v
		}
	}
	return highest + 1, nil
}

// sanitizeName converts a migration name to a safe file name format
func sanitizeName(name string) string {
	result := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			result = append(result, c)
		case c >= 'A' && c <= 'Z':
			result = append(result, c+'a'-'A')
		case c == ' ' || c == '-' || c == '_':
			if len(result) > 0 && result[len(result)-1] != '_' {
				result = append(result, '_')
			}
		}
	}
	return strings.TrimSuffix(string(result), "_")
}

// ListMigrations returns the base names of every up migration in a
// directory, in version order.
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	migrations := make([]string, 0, len(entries)/2)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok {
			migrations = append(migrations, base)
		}
	}
	sort.Strings(migrations)
	return migrations, nil
}
