package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/logging"
)

var logger = logging.NewJSON(logging.LevelInfo)

var defaultMigrationDirs = []string{"./db/migrations", "/app/db/migrations"}

type command struct {
	args string
	run  func(m *migrate.Migrate, args []string) error
}

var commands = map[string]command{
	"up": {run: func(m *migrate.Migrate, _ []string) error {
		return ignoreNoChange(m.Up(), "migrations applied")
	}},
	"down": {args: "[steps]", run: func(m *migrate.Migrate, args []string) error {
		steps, err := parseSteps(args)
		if err != nil {
			return err
		}
		return ignoreNoChange(m.Steps(-steps), "migrations rolled back", "steps", steps)
	}},
	"goto": {args: "<version>", run: func(m *migrate.Migrate, args []string) error {
		target, err := parseTarget(args)
		if err != nil {
			return err
		}
		return ignoreNoChange(m.Migrate(target), "migrated", "version", target)
	}},
	"force": {args: "<version>", run: func(m *migrate.Migrate, args []string) error {
		version, err := parseVersion(args)
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("forced version", "version", version)
		return nil
	}},
	"version": {run: func(m *migrate.Migrate, _ []string) error {
		version, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			fmt.Println("version: none\ndirty: false")
		case err != nil:
			return fmt.Errorf("read version: %w", err)
		default:
			fmt.Printf("version: %d\ndirty: %t\n", version, dirty)
		}
		return nil
	}},
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
	}
	name := strings.ToLower(strings.TrimSpace(os.Args[1]))
	if name == "migrate" {
		name = "goto"
	}
	cmd, ok := commands[name]
	if !ok {
		usage()
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		fatal("DB_URL is required")
	}
	if envBool("DB_DISABLE_PREPARED_BINARY_RESULT") {
		dbURL = withBinaryResultFlag(dbURL)
	}

	dir, err := findMigrationsDir(os.Getenv("MIGRATIONS_DIR"), os.Getenv("MIGRATIONS_PATH"))
	if err != nil {
		fatal("resolve migrations dir", "error", err)
	}
	sourceURL := "file://" + filepath.ToSlash(dir)

	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		fatal("create migrator", "source", sourceURL, "error", err)
	}

	runErr := cmd.run(m, os.Args[2:])
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		logger.Warn("close migrator", "source_error", srcErr, "db_error", dbErr)
	}
	if runErr != nil {
		fatal("migration "+name+" failed", "error", runErr)
	}
	_ = logger.Sync()
}

func fatal(msg string, args ...any) {
	logger.Error(msg, args...)
	_ = logger.Sync()
	os.Exit(1)
}

func ignoreNoChange(err error, done string, args ...any) error {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("no migration changes")
	case err != nil:
		return err
	default:
		logger.Info(done, args...)
	}
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || steps <= 0 {
		return 0, fmt.Errorf("down steps must be a positive integer, got %q", args[0])
	}
	return steps, nil
}

func parseVersion(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("missing version argument")
	}
	v, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, strconv.IntSize)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("version must be a non-negative integer, got %q", args[0])
	}
	return int(v), nil
}

func parseTarget(args []string) (uint, error) {
	if len(args) == 0 {
		return 0, errors.New("missing target version argument")
	}
	v, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", args[0], err)
	}
	return uint(v), nil
}

// findMigrationsDir returns the first existing directory among the explicit
// overrides and the default locations.
func findMigrationsDir(overrides ...string) (string, error) {
	for _, candidate := range append(overrides, defaultMigrationDirs...) {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", errors.New("migration directory not found; set MIGRATIONS_DIR")
}

func withBinaryResultFlag(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return raw
	}
	q := u.Query()
	if !q.Has("disable_prepared_binary_result") {
		q.Set("disable_prepared_binary_result", "yes")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}

func usage() {
	bin := filepath.Base(os.Args[0])
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(os.Stderr, "usage: %s <command> [args]\n\ncommands:\n", bin)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s %s %s\n", bin, name, commands[name].args)
	}
	os.Exit(2)
}
