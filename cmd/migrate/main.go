package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/credito/backend/internal/infrastructure/config"
	"github.com/credito/backend/internal/infrastructure/logger"
	"github.com/credito/backend/internal/infrastructure/migration"
	"github.com/credito/backend/internal/infrastructure/persistence"
	"github.com/credito/backend/internal/infrastructure/schema"
	"github.com/credito/backend/migrations"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	var (
		migrationsPath string
		logLevel       string
		envFile        string
		embedded       bool
	)

	flag.StringVar(&migrationsPath, "path", "", "Path to migrations directory (default: migration.path from config)")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides log.level")
	flag.StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before the configuration")
	flag.BoolVar(&embedded, "embedded", false, "Use the migrations compiled into the binary instead of -path")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	// ddl needs neither configuration nor a database
	if command == "ddl" {
		dialect := "postgres"
		if len(args) > 1 {
			dialect = args[1]
		}
		if err := printDDL(os.Stdout, dialect); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := loadEnvFile(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", envFile, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log, err := logger.FromSettings(cfg.App.Env, cfg.Log.Level, "", "stdout")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if migrationsPath == "" {
		migrationsPath = cfg.Migration.Path
	}
	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		log.Fatal("Failed to get absolute path", zap.Error(err))
	}
	migrationsPath = absPath

	// Every run gets a correlation id; entries written through ctx carry it.
	ctx, _ := logger.WithRequestID(logger.WithContext(context.Background(), log), "")

	logger.L(ctx).Info("Migration CLI started",
		zap.String("command", command),
		zap.String("migrations_path", migrationsPath),
		zap.Bool("embedded", embedded),
	)

	// Commands that work on files only
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate create <name> [description]")
		}
		opts := migration.CreateOptions{}
		if len(args) > 2 {
			opts.Description = args[2]
		}
		mf, err := migration.CreateMigration(migrationsPath, args[1], opts)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		logCreated(log, mf)
		return

	case "generate":
		name := "initial schema"
		if len(args) > 1 {
			name = args[1]
		}
		mf, err := migration.GenerateSchemaMigration(migrationsPath, name, schema.Default())
		if err != nil {
			log.Fatal("Failed to generate migration", zap.Error(err))
		}
		logCreated(log, mf)
		return

	case "list":
		names, err := listMigrations(migrationsPath, embedded)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		if len(names) == 0 {
			log.Info("No migrations found")
			return
		}
		log.Info("Available migrations", zap.Int("count", len(names)))
		for _, n := range names {
			fmt.Println("  -", n)
		}
		return

	case "verify":
		dbCfg := cfg.Database
		dbCfg.VerifySchema = false
		db, err := persistence.NewDatabase(&dbCfg, schema.Default(), log)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		if err := db.VerifySchema(ctx); err != nil {
			log.Fatal("Schema verification failed", zap.Error(err))
		}
		logger.L(ctx).Info("Database matches the schema registry",
			zap.Int("tables", len(db.Registry.TableNames())),
		)
		return
	}

	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatal("Migrations run against postgres only; use 'migrate ddl sqlite' for SQLite",
			zap.String("driver", cfg.Database.Driver))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	var m *migration.Migrator
	if embedded {
		m, err = migration.NewFromFS(db, migrations.FS, log)
	} else {
		m, err = migration.New(db, migrationsPath, log)
	}
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("Migration down failed", zap.Error(err))
		}

	case "step":
		if len(args) < 2 {
			log.Fatal("Step count required. Usage: migrate step <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", zap.String("value", args[1]))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("Migration step failed", zap.Error(err))
		}

	case "goto":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate goto <version>")
		}
		version, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		if err := m.GoTo(uint(version)); err != nil {
			log.Fatal("Migration goto failed", zap.Error(err))
		}

	case "version":
		status, err := m.Status()
		if err != nil {
			log.Fatal("Failed to get version", zap.Error(err))
		}
		if !status.Applied {
			log.Info("No migrations applied")
		} else {
			log.Info("Current migration version",
				zap.Uint("version", status.Version),
				zap.Bool("dirty", status.Dirty),
			)
		}

	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		log.Warn("Forcing migration version - use with caution!")
		if err := m.Force(version); err != nil {
			log.Fatal("Force version failed", zap.Error(err))
		}

	case "drop":
		if cfg.IsProduction() {
			log.Fatal("Drop is disabled in production")
		}
		if !hasConfirm(args[1:]) {
			log.Fatal("Drop cancelled. Use 'migrate drop -confirm' to confirm.")
		}
		if err := m.Drop(); err != nil {
			log.Fatal("Drop failed", zap.Error(err))
		}

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// printDDL writes the registry schema for a dialect as one SQL script.
func printDDL(w io.Writer, dialectName string) error {
	dialect, err := schema.ParseDialect(dialectName)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, schema.Script(schema.Default().DDL(dialect)))
	return err
}

// loadEnvFile loads a dotenv file if present. Variables already set in the
// environment win.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func listMigrations(dir string, embedded bool) ([]string, error) {
	if !embedded {
		return migration.ListMigrations(dir)
	}
	entries, err := fs.Glob(migrations.FS, "*.up.sql")
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e[:len(e)-len(".up.sql")]
	}
	return names, nil
}

func hasConfirm(args []string) bool {
	for _, arg := range args {
		if arg == "-confirm" || arg == "--confirm" {
			return true
		}
	}
	return false
}

func logCreated(log *zap.Logger, mf *migration.MigrationFile) {
	log.Info("Migration created successfully",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath),
	)
}

func printUsage() {
	fmt.Println(`Credito Database Migration Tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  goto <version>        Migrate to a specific version
  version               Show current migration version
  force <version>       Force set migration version (use with caution)
  drop -confirm         Drop all database objects (DANGEROUS, not in production)
  create <name> [desc]  Create the next numbered migration file pair
  generate [name]       Write a migration creating the whole schema registry
  list                  List available migrations
  verify                Check the configured database against the schema registry
  ddl [postgres|sqlite] Print the registry DDL for a dialect

Flags:
  -path string          Path to migrations directory (default: migration.path)
  -embedded             Use the migrations compiled into the binary
  -env-file string      Dotenv file loaded before the configuration (default: .env)
  -log-level string     Log level: debug, info, warn, error

Environment Variables:
  CREDITO_DATABASE_HOST, CREDITO_DATABASE_PORT, CREDITO_DATABASE_USER,
  CREDITO_DATABASE_PASSWORD, CREDITO_DATABASE_DBNAME, CREDITO_DATABASE_SSLMODE,
  CREDITO_DATABASE_DRIVER, CREDITO_DATABASE_SQLITE_PATH

Examples:
  # Apply all pending migrations
  migrate up

  # Roll back the last migration
  migrate step -1

  # Create a new migration
  migrate create add_dni_index "Index clients by document"

  # Print the SQLite schema
  migrate ddl sqlite`)
}
