package mood

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&Entry{}))

	repo := &GormRepo{DB: gdb}
	t.Cleanup(func() { _ = repo.Close(context.Background()) })
	return repo
}

// clock hands out increasing instants one minute apart.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newTestService(t *testing.T) (*Service, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)}
	svc := NewService(newTestRepo(t))
	svc.Now = c.Now
	return svc, c
}

func TestService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, CreateInput{Date: "2024-01-01", MoodType: "happy", Emoji: "😊"})
	require.NoError(t, err)

	_, err = uuid.Parse(created.ID)
	require.NoError(t, err, "id should be a uuid")
	assert.Equal(t, "2024-01-01", created.Date)
	assert.Equal(t, "", created.Notes)
	assert.Equal(t, time.Date(2024, 1, 1, 8, 1, 0, 0, time.UTC), created.Timestamp)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "happy", got.MoodType)
	assert.Equal(t, "😊", got.Emoji)
	assert.True(t, created.Timestamp.Equal(got.Timestamp))
}

func TestService_CreateDuplicateDate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	first, err := svc.Create(ctx, CreateInput{Date: "2024-02-10", MoodType: "sad", Emoji: "😔", Notes: "rain"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{Date: "2024-02-10", MoodType: "happy", Emoji: "😊"})
	require.ErrorIs(t, err, ErrDuplicateDate)

	got, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "sad", got.MoodType)
	assert.Equal(t, "rain", got.Notes)

	n, err := svc.Repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestGormRepo_InsertTranslatesUniqueViolation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	// bypasses the existence check, like a concurrent writer would
	require.NoError(t, repo.Insert(ctx, &Entry{ID: uuid.NewString(), Date: "2024-03-03", MoodType: "tired", Emoji: "😴", Timestamp: time.Now()}))
	err := repo.Insert(ctx, &Entry{ID: uuid.NewString(), Date: "2024-03-03", MoodType: "angry", Emoji: "😤", Timestamp: time.Now()})
	assert.ErrorIs(t, err, ErrDuplicateDate)
}

func TestService_GetMissing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, CreateInput{Date: "2024-04-01", MoodType: "neutral", Emoji: "😐", Notes: "meh"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateInput{MoodType: "excited", Emoji: "🤩"})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Date, updated.Date)
	assert.Equal(t, "excited", updated.MoodType)
	assert.Equal(t, "🤩", updated.Emoji)
	assert.Equal(t, "", updated.Notes)
	assert.True(t, updated.Timestamp.After(created.Timestamp))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "excited", got.MoodType)
	assert.Equal(t, "", got.Notes)
}

func TestService_UpdateMissing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), "nope", UpdateInput{MoodType: "happy", Emoji: "😊"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, CreateInput{Date: "2024-05-05", MoodType: "content", Emoji: "😌"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// the date is free again
	_, err = svc.Create(ctx, CreateInput{Date: "2024-05-05", MoodType: "happy", Emoji: "😊"})
	assert.NoError(t, err)
}

func TestService_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	for _, d := range []string{"2024-01-15", "2023-12-31", "2024-03-01", "2024-01-02"} {
		_, err := svc.Create(ctx, CreateInput{Date: d, MoodType: "happy", Emoji: "😊"})
		require.NoError(t, err)
	}

	got, err = svc.List(ctx)
	require.NoError(t, err)

	dates := make([]string, 0, len(got))
	for _, e := range got {
		dates = append(dates, e.Date)
	}
	assert.Equal(t, []string{"2024-03-01", "2024-01-15", "2024-01-02", "2023-12-31"}, dates)
}

type failingRepo struct {
	Repo
	err error
}

func (f failingRepo) ExistsForDate(context.Context, string) (bool, error) { return false, f.err }

func TestService_CreateWrapsStorageError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(failingRepo{err: boom})

	_, err := svc.Create(context.Background(), CreateInput{Date: "2024-01-01", MoodType: "happy", Emoji: "😊"})
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrDuplicateDate)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2024-01-02", want: "2024-01-02"},
		{in: "2024-1-2", want: "2024-01-02"},
		{in: "2024-12-31", want: "2024-12-31"},
		{in: "01/02/2024", wantErr: true},
		{in: "2024-02-30", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeDate(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_CreateNormalizesDate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	e, err := svc.Create(ctx, CreateInput{Date: "2024-3-7", MoodType: "content", Emoji: "😌"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-07", e.Date)

	_, err = svc.Create(ctx, CreateInput{Date: "2024-03-07", MoodType: "sad", Emoji: "😔"})
	require.ErrorIs(t, err, ErrDuplicateDate)
}
