package mood

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repo is the persistence surface shared by the SQL and Mongo backends.
// List and Walk yield entries newest date first.
type Repo interface {
	ExistsForDate(ctx context.Context, date string) (bool, error)
	Insert(ctx context.Context, e *Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	Update(ctx context.Context, id string, c Changes) (*Entry, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Entry, error)
	Walk(ctx context.Context, fn func(*Entry) error) error
	Count(ctx context.Context) (int64, error)
	CountByMood(ctx context.Context) ([]MoodCount, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// GormRepo stores entries in PostgreSQL or SQLite.
type GormRepo struct {
	DB *gorm.DB
}

var byDateDesc = clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true}

func (r *GormRepo) ExistsForDate(ctx context.Context, date string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&Entry{}).
		Where(clause.Eq{Column: clause.Column{Name: "date"}, Value: date}).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepo) Insert(ctx context.Context, e *Entry) error {
	if err := r.DB.WithContext(ctx).Create(e).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateDate
		}
		return err
	}
	return nil
}

func (r *GormRepo) Get(ctx context.Context, id string) (*Entry, error) {
	var e Entry
	if err := r.DB.WithContext(ctx).Where("id = ?", id).Take(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *GormRepo) Update(ctx context.Context, id string, c Changes) (*Entry, error) {
	res := r.DB.WithContext(ctx).Model(&Entry{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"mood_type": c.MoodType,
			"emoji":     c.Emoji,
			"notes":     c.Notes,
			"timestamp": c.Timestamp,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *GormRepo) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&Entry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) List(ctx context.Context) ([]Entry, error) {
	out := []Entry{}
	if err := r.DB.WithContext(ctx).Order(byDateDesc).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) Walk(ctx context.Context, fn func(*Entry) error) error {
	rows, err := r.DB.WithContext(ctx).Model(&Entry{}).Order(byDateDesc).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e Entry
		if err := r.DB.ScanRows(rows, &e); err != nil {
			return fmt.Errorf("scan mood entry: %w", err)
		}
		if err := fn(&e); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *GormRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&Entry{}).Count(&n).Error
	return n, err
}

func (r *GormRepo) CountByMood(ctx context.Context) ([]MoodCount, error) {
	out := []MoodCount{}
	err := r.DB.WithContext(ctx).Model(&Entry{}).
		Select("mood_type, count(*) as count").
		Group("mood_type").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *GormRepo) Close(context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// isUniqueViolation covers both translated gorm errors and raw pgx errors
// from a *gorm.DB opened without TranslateError.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
