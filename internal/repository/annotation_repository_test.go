package repository

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/evjourney-backend-go/internal/annotation"
	"github.com/jengzang/evjourney-backend-go/internal/database"
	"github.com/jengzang/evjourney-backend-go/internal/models"
)

func newSQLiteRepository(t *testing.T) *AnnotationRepository {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "annotations.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewAnnotationRepository(db)
}

func TestAnnotationRepository_RoundTrip(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, "fp1", []byte("first")))
	require.NoError(t, repo.Set(ctx, "fp1", []byte("second")))
	require.NoError(t, repo.Set(ctx, "fp2", []byte("other")))

	got, ok, err := repo.Get(ctx, "fp1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("second"), got)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"fp1": []byte("second"), "fp2": []byte("other")}, all)
}

func TestAnnotationRepository_BacksStoreAcrossRestarts(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()

	first := annotation.NewStore(repo)
	require.NoError(t, first.Load(ctx))
	_, err := first.Set(ctx, "abc", models.TripAnnotation{Notes: "commute", Tags: []string{"work"}})
	require.NoError(t, err)

	second := annotation.NewStore(repo)
	require.NoError(t, second.Load(ctx))
	got := second.Get("abc")
	assert.Equal(t, "commute", got.Notes)
	assert.Equal(t, []string{"work"}, got.Tags)
	assert.Equal(t, []string{"work"}, second.AllTags())
}

func TestAnnotationRepository_Errors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAnnotationRepository(db)
	ctx := context.Background()
	boom := errors.New("disk I/O error")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM trip_annotations")).
		WithArgs("fp").
		WillReturnError(boom)
	_, _, err = repo.Get(ctx, "fp")
	assert.ErrorIs(t, err, boom)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO trip_annotations")).
		WithArgs("fp", []byte("x")).
		WillReturnError(boom)
	err = repo.Set(ctx, "fp", []byte("x"))
	assert.ErrorIs(t, err, boom)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT fingerprint, payload FROM trip_annotations")).
		WillReturnRows(sqlmock.NewRows([]string{"fingerprint", "payload"}).
			AddRow("fp", []byte("x")).
			RowError(0, boom))
	_, err = repo.All(ctx)
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}
