package db

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"moodtracker/internal/mood"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Backend string

const (
	Postgres Backend = "postgres"
	SQLite   Backend = "sqlite"
	Mongo    Backend = "mongo"
)

// Detect picks the storage backend from the connection string scheme.
func Detect(dsn string) (Backend, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return Postgres, nil
	case strings.HasPrefix(dsn, "sqlite://"), strings.HasPrefix(dsn, "file:"):
		return SQLite, nil
	case strings.HasPrefix(dsn, "mongodb://"), strings.HasPrefix(dsn, "mongodb+srv://"):
		return Mongo, nil
	default:
		return "", fmt.Errorf("unsupported database url scheme: %q", redact(dsn))
	}
}

// Open connects to the backend named by dsn and prepares its schema.
// mongoDB is the database name used when dsn is a MongoDB url.
func Open(ctx context.Context, dsn, mongoDB string) (mood.Repo, error) {
	backend, err := Detect(dsn)
	if err != nil {
		return nil, err
	}
	slog.Info("opening storage", "backend", backend, "url", redact(dsn))

	if backend == Mongo {
		return openMongo(ctx, dsn, mongoDB)
	}

	gdb, err := Connect(backend, dsn)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrateAndIndexes(gdb); err != nil {
		return nil, err
	}
	return &mood.GormRepo{DB: gdb}, nil
}

func Connect(backend Backend, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch backend {
	case Postgres:
		dialector = postgres.Open(dsn)
	case SQLite:
		dialector = sqlite.Open(strings.TrimPrefix(dsn, "sqlite://"))
	default:
		return nil, fmt.Errorf("backend %s is not a sql backend", backend)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", backend, err)
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&mood.Entry{}); err != nil {
		return err
	}

	// stats groups by mood_type
	stmts := []string{
		`create index if not exists idx_mood_entries_mood_type on mood_entries(mood_type);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}
	return nil
}

func openMongo(ctx context.Context, dsn, database string) (mood.Repo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(dsn))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	repo, err := mood.NewMongoRepo(connectCtx, client.Database(database))
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return repo, nil
}

// redact hides the password of a url for logging.
func redact(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "<unparseable>"
	}
	return u.Redacted()
}
