package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/keepnotes/keep-note-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) domain.NoteRepository {
	t.Helper()

	db, err := NewDBEngineWithConfig(DatabaseConfig{
		Type:         "sqlite",
		Path:         filepath.Join(t.TempDir(), "db.sqlite3"),
		AutoMigrate:  true,
		MaxIdleConns: 2,
		MaxOpenConns: 2,
	}, nil)
	require.NoError(t, err)

	return NewNoteRepository(New(db))
}

func TestPutAndGetByUuidRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	note := domain.NewNote()
	note.Title = "Milk"
	note.Content = json.RawMessage(`{"blocks":[{"type":"paragraph","text":"buy milk"}]}`)
	note.Color = domain.ColorTeal
	note.Labels = []string{"shopping", "todo"}

	saved, err := repo.Put(ctx, note)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	got, err := repo.GetByUuid(ctx, note.Uuid)
	require.NoError(t, err)
	assert.Equal(t, note.Uuid, got.Uuid)
	assert.Equal(t, "Milk", got.Title)
	assert.JSONEq(t, string(note.Content), string(got.Content))
	assert.Equal(t, domain.ColorTeal, got.Color)
	assert.Equal(t, []string{"shopping", "todo"}, got.Labels)
	assert.False(t, got.IsPinned)
	assert.False(t, got.IsArchived)
}

func TestPutOverwritesByUuid(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	note := domain.NewNote()
	note.Title = "first"
	saved, err := repo.Put(ctx, note)
	require.NoError(t, err)

	saved.Title = "second"
	saved.IsPinned = true
	_, err = repo.Put(ctx, saved)
	require.NoError(t, err)

	got, err := repo.GetByUuid(ctx, note.Uuid)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Title)
	assert.True(t, got.IsPinned)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetByUuidNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetByUuid(context.Background(), "missing-uuid")
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	note := domain.NewNote()
	_, err := repo.Put(ctx, note)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, note.Uuid))
	// 重复删除不报错且不影响集合
	require.NoError(t, repo.Delete(ctx, note.Uuid))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestSearchMatchesSerializedContent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	match := domain.NewNote()
	match.Title = "groceries"
	match.Content = json.RawMessage(`{"blocks":[{"type":"paragraph","text":"buy Milk tomorrow"}]}`)
	_, err := repo.Put(ctx, match)
	require.NoError(t, err)

	other := domain.NewNote()
	other.Title = "workout plan"
	_, err = repo.Put(ctx, other)
	require.NoError(t, err)

	got, err := repo.Search(ctx, "milk")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, match.Uuid, got[0].Uuid)

	// 空查询返回全部
	all, err := repo.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFilterCombinesPredicates(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	pinned := domain.NewNote()
	pinned.Title = "pinned"
	pinned.IsPinned = true
	_, err := repo.Put(ctx, pinned)
	require.NoError(t, err)

	archived := domain.NewNote()
	archived.Title = "archived"
	archived.IsArchived = true
	archived.Color = domain.ColorRed
	_, err = repo.Put(ctx, archived)
	require.NoError(t, err)

	isPinned := true
	got, err := repo.Filter(ctx, domain.FilterOptions{IsPinned: &isPinned})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pinned", got[0].Title)

	isArchived := true
	got, err = repo.Filter(ctx, domain.FilterOptions{IsArchived: &isArchived, Color: domain.ColorRed})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "archived", got[0].Title)

	got, err = repo.Filter(ctx, domain.FilterOptions{IsArchived: &isArchived, Color: domain.ColorBlue})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClearRemovesEverything(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Put(ctx, domain.NewNote())
		require.NoError(t, err)
	}

	require.NoError(t, repo.Clear(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestPutConcurrentSameUuid(t *testing.T) {
	// 单连接池串行化写入，验证 upsert 本身不依赖先查后写
	db, err := NewDBEngineWithConfig(DatabaseConfig{
		Type:         "sqlite",
		Path:         filepath.Join(t.TempDir(), "db.sqlite3"),
		AutoMigrate:  true,
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}, nil)
	require.NoError(t, err)
	repo := NewNoteRepository(New(db))
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			note := domain.NewNote()
			note.Uuid = "shared-uuid"
			note.Title = fmt.Sprintf("writer-%d", i)
			_, err := repo.Put(ctx, note)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	// 后写者胜，没有任何一方收到唯一索引冲突
	for err := range errs {
		assert.NoError(t, err)
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetByUuid(ctx, "shared-uuid")
	require.NoError(t, err)
	assert.Contains(t, got.Title, "writer-")
}
