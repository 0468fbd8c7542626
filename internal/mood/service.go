package mood

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	Repo Repo

	// Now is the clock used for entry timestamps; time.Now when nil.
	Now func() time.Time
}

type CreateInput struct {
	Date     string
	MoodType string
	Emoji    string
	Notes    string
}

type UpdateInput struct {
	MoodType string
	Emoji    string
	Notes    string
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) now() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	// millisecond precision survives every backend unchanged
	return now().UTC().Truncate(time.Millisecond)
}

// Create stores a new entry for in.Date. The date check and the insert are
// separate round trips; the unique index on date catches the losing writer
// of a concurrent create.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Entry, error) {
	date, err := NormalizeDate(in.Date)
	if err != nil {
		return nil, err
	}

	exists, err := s.Repo.ExistsForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("check date %s: %w", date, err)
	}
	if exists {
		return nil, ErrDuplicateDate
	}

	e := &Entry{
		ID:        uuid.NewString(),
		Date:      date,
		MoodType:  in.MoodType,
		Emoji:     in.Emoji,
		Notes:     in.Notes,
		Timestamp: s.now(),
	}
	if err := s.Repo.Insert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.Repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Entry, error) {
	return s.Repo.Get(ctx, id)
}

// Update overwrites the mutable fields and refreshes the timestamp.
// ID and Date never change.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Entry, error) {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.Repo.Update(ctx, id, Changes{
		MoodType:  in.MoodType,
		Emoji:     in.Emoji,
		Notes:     in.Notes,
		Timestamp: s.now(),
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *Service) Ping(ctx context.Context) error {
	return s.Repo.Ping(ctx)
}
