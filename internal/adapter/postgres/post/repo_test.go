package post_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/modulearn/backend/internal/adapter/postgres"
	"github.com/modulearn/backend/internal/adapter/postgres/post"
	"github.com/modulearn/backend/internal/adapter/postgres/testhelper"
	"github.com/modulearn/backend/internal/domain"
)

func newRepo(t *testing.T) (*post.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return post.New(postgres.NewDB(pool)), pool
}

func assertIsDomainError(t *testing.T, err error, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error wrapping %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error wrapping %v, got: %v", target, err)
	}
}

// ---------------------------------------------------------------------------
// Create / List
// ---------------------------------------------------------------------------

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)

	got, err := repo.Create(ctx, &domain.Post{
		Title:      "Hello",
		Content:    "Body",
		Category:   domain.PostCategoryCommunity,
		AuthorID:   author.ID,
		AuthorName: "Writer",
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.ID == 0 {
		t.Error("expected a generated id")
	}
	if got.ViewCount != 0 {
		t.Errorf("new posts start at 0 views, got %d", got.ViewCount)
	}
	if got.AuthorName != "Writer" {
		t.Errorf("AuthorName mismatch: got %q", got.AuthorName)
	}
}

func TestRepo_Create_UnknownAuthor(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.Create(context.Background(), &domain.Post{
		Title:    "Orphan",
		Content:  "Body",
		Category: domain.PostCategoryCommunity,
		AuthorID: 999999999,
	})
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_ListByCategory_NewestFirstAndFiltered(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	first := testhelper.SeedPost(t, pool, author.ID, domain.PostCategoryCommunity)
	second := testhelper.SeedPost(t, pool, author.ID, domain.PostCategoryCommunity)
	notice := testhelper.SeedPost(t, pool, author.ID, domain.PostCategoryNotice)

	got, err := repo.ListByCategory(ctx, domain.PostCategoryCommunity)
	if err != nil {
		t.Fatalf("ListByCategory: unexpected error: %v", err)
	}

	var sawFirst, sawSecond bool
	firstIdx, secondIdx := -1, -1
	for i, p := range got {
		if p.Category != domain.PostCategoryCommunity {
			t.Errorf("foreign category leaked into listing: %+v", p)
		}
		if p.ID == notice.ID {
			t.Error("notice post leaked into community listing")
		}
		if p.ID == first.ID {
			sawFirst = true
			firstIdx = i
		}
		if p.ID == second.ID {
			sawSecond = true
			secondIdx = i
		}
	}
	if !sawFirst || !sawSecond {
		t.Fatal("seeded posts missing from listing")
	}
	if secondIdx > firstIdx {
		t.Errorf("newest post must come first: second at %d, first at %d", secondIdx, firstIdx)
	}
}

// postExists reads row existence directly, bypassing the repository so the
// checks stay independent of the view counter.
func postExists(t *testing.T, pool *pgxpool.Pool, id int64) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		t.Fatalf("check post existence: %v", err)
	}
	return exists
}

// ---------------------------------------------------------------------------
// Get / view counting
// ---------------------------------------------------------------------------

func TestRepo_FetchAndCountView_IncrementsByOne(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	seeded := testhelper.SeedPost(t, pool, author.ID, domain.PostCategoryCommunity)

	got, err := repo.FetchAndCountView(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("FetchAndCountView: unexpected error: %v", err)
	}
	if got.ViewCount != 1 {
		t.Errorf("first view should report count 1, got %d", got.ViewCount)
	}

	got, err = repo.FetchAndCountView(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("second FetchAndCountView: %v", err)
	}
	if got.ViewCount != 2 {
		t.Errorf("second view should report count 2, got %d", got.ViewCount)
	}
}

func TestRepo_FetchAndCountView_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.FetchAndCountView(context.Background(), 999999999)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

// Concurrent views must each count exactly once.
func TestRepo_FetchAndCountView_Concurrent(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	seeded := testhelper.SeedPost(t, pool, author.ID, domain.PostCategoryCommunity)

	const viewers = 10
	errs := make([]error, viewers)

	var wg sync.WaitGroup
	for i := 0; i < viewers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.FetchAndCountView(ctx, seeded.ID)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("viewer %d: %v", i, err)
		}
	}

	var count int64
	if err := pool.QueryRow(ctx, `SELECT view_count FROM posts WHERE id = $1`, seeded.ID).Scan(&count); err != nil {
		t.Fatalf("read view_count: %v", err)
	}
	if count != viewers {
		t.Fatalf("expected view_count %d, got %d", viewers, count)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestRepo_DeleteOwned_RemovesOwnPost(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	seeded := testhelper.SeedPost(t, pool, author.ID, domain.PostCategoryCommunity)

	if err := repo.DeleteOwned(ctx, seeded.ID, author.ID); err != nil {
		t.Fatalf("DeleteOwned: unexpected error: %v", err)
	}

	if postExists(t, pool, seeded.ID) {
		t.Error("post must be gone after the author deletes it")
	}
}

func TestRepo_DeleteOwned_ForeignPostIsNoOp(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)
	seeded := testhelper.SeedPost(t, pool, author.ID, domain.PostCategoryCommunity)

	if err := repo.DeleteOwned(ctx, seeded.ID, other.ID); err != nil {
		t.Fatalf("DeleteOwned on foreign post must not error: %v", err)
	}

	if !postExists(t, pool, seeded.ID) {
		t.Error("foreign delete must leave the post intact")
	}
}

func TestRepo_DeleteOwned_MissingIsNoOp(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	author := testhelper.SeedUser(t, pool)
	if err := repo.DeleteOwned(context.Background(), 999999999, author.ID); err != nil {
		t.Fatalf("DeleteOwned on missing id must not error: %v", err)
	}
}

func TestRepo_DeleteAny_IgnoresOwnership(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	seeded := testhelper.SeedPost(t, pool, author.ID, domain.PostCategoryNotice)

	if err := repo.DeleteAny(ctx, seeded.ID); err != nil {
		t.Fatalf("DeleteAny: unexpected error: %v", err)
	}

	if postExists(t, pool, seeded.ID) {
		t.Error("admin delete must remove the post regardless of author")
	}
}

// ---------------------------------------------------------------------------
// Degraded mode (no database configured)
// ---------------------------------------------------------------------------

func TestRepo_DegradedMode(t *testing.T) {
	t.Parallel()
	repo := post.New(postgres.NewDB(nil))
	ctx := context.Background()

	list, err := repo.ListByCategory(ctx, domain.PostCategoryNotice)
	if err != nil {
		t.Fatalf("degraded list must not error: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("degraded list must be empty non-nil, got %v", list)
	}

	_, err = repo.FetchAndCountView(ctx, 1)
	assertIsDomainError(t, err, domain.ErrNotFound)

	_, err = repo.Create(ctx, &domain.Post{Title: "x", Content: "y", Category: domain.PostCategoryCommunity, AuthorID: 1})
	assertIsDomainError(t, err, domain.ErrUnavailable)

	err = repo.DeleteOwned(ctx, 1, 1)
	assertIsDomainError(t, err, domain.ErrUnavailable)

	err = repo.DeleteAny(ctx, 1)
	assertIsDomainError(t, err, domain.ErrUnavailable)
}
