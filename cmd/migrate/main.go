package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/ejarriada/Fanaticos/internal/application/identity"
	invapp "github.com/ejarriada/Fanaticos/internal/application/inventory"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/cache"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/config"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/migration"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/persistence"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

// env is what a command runs against. cfg is nil for filesystem-only
// commands.
type env struct {
	log            *zap.Logger
	cfg            *config.Config
	migrationsPath string
	args           []string
}

type command struct {
	usage    string
	summary  string
	minArgs  int
	database bool
	run      func(e *env) error
}

var commands = map[string]command{
	"up": {
		usage: "up", summary: "Apply all pending migrations", database: true,
		run: withMigrator(func(_ *env, m *migration.Migrator) error { return m.Up() }),
	},
	"down": {
		usage: "down", summary: "Roll back all migrations", database: true,
		run: withMigrator(func(_ *env, m *migration.Migrator) error { return m.Down() }),
	},
	"step": {
		usage: "step <n>", summary: "Apply n migrations (positive=up, negative=down)", minArgs: 1, database: true,
		run: withMigrator(func(e *env, m *migration.Migrator) error {
			n, err := strconv.Atoi(e.args[0])
			if err != nil {
				return fmt.Errorf("invalid step count %q", e.args[0])
			}
			return m.Steps(n)
		}),
	},
	"goto": {
		usage: "goto <version>", summary: "Migrate to a specific version", minArgs: 1, database: true,
		run: withMigrator(func(e *env, m *migration.Migrator) error {
			version, err := strconv.ParseUint(e.args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid version %q", e.args[0])
			}
			return m.GoTo(uint(version))
		}),
	},
	"version": {
		usage: "version", summary: "Show current migration version", database: true,
		run: withMigrator(func(e *env, m *migration.Migrator) error {
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			if version == 0 {
				e.log.Info("No migrations applied")
				return nil
			}
			e.log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
			return nil
		}),
	},
	"force": {
		usage: "force <version>", summary: "Force set migration version", minArgs: 1, database: true,
		run: withMigrator(func(e *env, m *migration.Migrator) error {
			version, err := strconv.Atoi(e.args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q", e.args[0])
			}
			e.log.Warn("Forcing migration version", zap.Int("version", version))
			return m.Force(version)
		}),
	},
	"create": {
		usage: "create <name> [desc]", summary: "Create a new migration file pair", minArgs: 1,
		run: func(e *env) error {
			description := ""
			if len(e.args) > 1 {
				description = e.args[1]
			}
			mf, err := migration.CreateMigration(e.migrationsPath, e.args[0], description, time.Now())
			if err != nil {
				return err
			}
			e.log.Info("Migration created",
				zap.String("version", mf.Version),
				zap.String("up_file", mf.UpPath),
				zap.String("down_file", mf.DownPath))
			return nil
		},
	},
	"list": {
		usage: "list", summary: "List available migrations",
		run: func(e *env) error {
			files, err := migration.ListMigrations(e.migrationsPath)
			if err != nil {
				return err
			}
			e.log.Info("Available migrations", zap.Int("count", len(files)))
			for _, f := range files {
				fmt.Println("  -", f)
			}
			return nil
		},
	},
	"seed-tenant": {
		usage: "seed-tenant <name>", summary: "Create a tenant and its factory location", minArgs: 1, database: true,
		run: seedTenant,
	},
}

func main() {
	var migrationsPath, logLevel string
	flag.StringVar(&migrationsPath, "path", "", "Path to migrations directory (default: ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	cmd, ok := commands[args[0]]
	if !ok || len(args)-1 < cmd.minArgs {
		printUsage()
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	e := &env{log: log, args: args[1:]}
	if e.migrationsPath, err = resolveMigrationsPath(migrationsPath); err != nil {
		log.Fatal("Failed to resolve migrations path", zap.Error(err))
	}
	if cmd.database {
		if e.cfg, err = config.Load(); err != nil {
			log.Fatal("Failed to load configuration", zap.Error(err))
		}
	}

	log.Info("Migration CLI started", zap.String("command", args[0]), zap.String("migrations_path", e.migrationsPath))
	if err := cmd.run(e); err != nil {
		log.Fatal("Command failed", zap.String("command", args[0]), zap.Error(err))
	}
}

// withMigrator opens the configured database and hands a migrator to fn
func withMigrator(fn func(*env, *migration.Migrator) error) func(*env) error {
	return func(e *env) error {
		db, err := sql.Open("postgres", e.cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}

		m, err := migration.New(db, e.migrationsPath, e.log)
		if err != nil {
			return err
		}
		defer m.Close()
		return fn(e, m)
	}
}

// seedTenant creates a tenant and its factory location on a migrated
// database
func seedTenant(e *env) error {
	ctx := context.Background()
	database, err := persistence.NewDatabase(ctx, e.cfg.Database, e.cfg.Telemetry.DBSlowQueryThresh, e.log)
	if err != nil {
		return err
	}
	defer database.Close()

	scope := persistence.NewGormTransactionScope(database.DB)
	tenants := identity.NewTenantService(scope, cache.NewInMemoryTenantCache(e.cfg.Business.TenantCacheTTL), e.log)
	tenant, err := tenants.Create(ctx, identity.CreateTenantRequest{Name: e.args[0]})
	if err != nil {
		return err
	}

	stock := invapp.NewStockService(scope, invapp.NewStockLedger(e.cfg.Business.FactoryLocalName))
	factory, err := stock.FactoryLocal(ctx, tenant.ID)
	if err != nil {
		return errors.Join(fmt.Errorf("tenant %s created without factory location", tenant.ID), err)
	}
	e.log.Info("Tenant seeded",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("name", tenant.Name),
		zap.String("factory_local", factory.Name))
	return nil
}

// resolveMigrationsPath picks ./migrations, then the directory two levels
// above the executable, and returns an absolute path
func resolveMigrationsPath(path string) (string, error) {
	if path == "" {
		path = defaultMigrationsPath
		if _, err := os.Stat(defaultMigrationsPath); err != nil {
			if execPath, err := os.Executable(); err == nil {
				candidate := filepath.Join(filepath.Dir(execPath), "..", "..", defaultMigrationsPath)
				if _, err := os.Stat(candidate); err == nil {
					path = candidate
				}
			}
		}
	}
	return filepath.Abs(path)
}

func printUsage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Fanaticos database tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  migrate [flags] <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	for _, name := range names {
		fmt.Printf("  %-22s %s\n", commands[name].usage, commands[name].summary)
	}
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Database commands read FANATICOS_DATABASE_* from the environment.")
}
