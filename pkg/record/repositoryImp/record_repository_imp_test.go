package repositoryImp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiku/entities"
	"kiku/pkg/apperrors"
	"kiku/pkg/record/repository"
	"kiku/pkg/testutil"
)

func TestListWindowIsHalfOpenInBusinessZone(t *testing.T) {
	r := New(testutil.NewDB(t))
	ctx := context.Background()
	tokyo := testutil.Tokyo()

	for _, rec := range []entities.WorkRecord{
		// 2026-02-26 23:30 JST is still the 26th
		{Date: time.Date(2026, 2, 26, 23, 30, 0, 0, tokyo), WorkName: "灌水", GreenhouseName: "①-S"},
		{Date: time.Date(2026, 2, 27, 0, 0, 0, 0, tokyo), WorkName: "灌水", GreenhouseName: "①-S"},
		{Date: time.Date(2026, 2, 27, 18, 0, 0, 0, tokyo), WorkName: "農薬散布", GreenhouseName: "①-N", Note: "②ローテ"},
		{Date: time.Date(2026, 2, 28, 0, 0, 0, 0, tokyo), WorkName: "灌水", GreenhouseName: "①-S"},
	} {
		rec := rec
		require.NoError(t, r.Create(ctx, &rec))
	}

	from := testutil.Date(2026, 2, 27)
	to := from.AddDate(0, 0, 1)
	got, err := r.List(ctx, repository.RecordFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "灌水", got[0].WorkName)
	assert.Equal(t, "農薬散布", got[1].WorkName)

	got, err = r.List(ctx, repository.RecordFilter{NoteContains: "②"})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = r.List(ctx, repository.RecordFilter{WorkName: "灌水"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestPhotoURLAndDelete(t *testing.T) {
	r := New(testutil.NewDB(t))
	ctx := context.Background()

	rec := &entities.WorkRecord{Date: testutil.Date(2026, 3, 1), WorkName: "定植", GreenhouseName: "②"}
	require.NoError(t, r.Create(ctx, rec))
	require.NoError(t, r.SetPhotoURL(ctx, rec.RecordID, "/uploads/202603/a.jpg"))

	got, err := r.FindByID(ctx, rec.RecordID)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/202603/a.jpg", got.PhotoURL)

	assert.ErrorIs(t, r.SetPhotoURL(ctx, 999, "x"), apperrors.ErrNotFound)
	require.NoError(t, r.Delete(ctx, rec.RecordID))
	assert.ErrorIs(t, r.Delete(ctx, rec.RecordID), apperrors.ErrNotFound)
	_, err = r.FindByID(ctx, rec.RecordID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
