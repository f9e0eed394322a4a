package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kutuphane/locallibrary/internal/models"
	"github.com/kutuphane/locallibrary/internal/repository"
	"github.com/kutuphane/locallibrary/internal/testutil"
)

func setupBookRepo(t *testing.T) (*repository.BookRepository, *testutil.TestDatabase) {
	t.Helper()

	db := testutil.SetupTestDatabase(t)
	t.Cleanup(func() { db.Teardown(t) })
	testutil.CleanDatabase(t, db.DB)

	return repository.NewBookRepository(db.DB), db
}

func TestBookRepository_GetByIDPreloadsRelations(t *testing.T) {
	repo, db := setupBookRepo(t)

	author := testutil.CreateTestAuthor("Patrick", "Rothfuss")
	genre := testutil.CreateTestGenre("Fantasy")
	require.NoError(t, db.DB.Create(author).Error)
	require.NoError(t, db.DB.Create(genre).Error)

	book := testutil.CreateTestBook("The Name of the Wind", "9781473211896", author.ID)
	book.Genres = []models.Genre{*genre}
	require.NoError(t, repo.Create(book))

	got, err := repo.GetByID(book.ID)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Rothfuss", got.Author.FamilyName)
	require.Len(t, got.Genres, 1)
	assert.Equal(t, "Fantasy", got.Genres[0].Name)
}

func TestBookRepository_GetByIDMissing(t *testing.T) {
	repo, _ := setupBookRepo(t)

	got, err := repo.GetByID("no-such-id")

	require.NoError(t, err, "A missing record is not an error")
	assert.Nil(t, got)
}

func TestBookRepository_GetByGenreID(t *testing.T) {
	repo, db := setupBookRepo(t)

	author := testutil.CreateTestAuthor("Jim", "Jones")
	fantasy := testutil.CreateTestGenre("Fantasy")
	scifi := testutil.CreateTestGenre("Science Fiction")
	require.NoError(t, db.DB.Create(author).Error)
	require.NoError(t, db.DB.Create(fantasy).Error)
	require.NoError(t, db.DB.Create(scifi).Error)

	tagged := testutil.CreateTestBook("Test Book 1", "ISBN111111", author.ID)
	tagged.Genres = []models.Genre{*fantasy, *scifi}
	require.NoError(t, repo.Create(tagged))

	untagged := testutil.CreateTestBook("Test Book 2", "ISBN222222", author.ID)
	require.NoError(t, repo.Create(untagged))

	books, err := repo.GetByGenreID(fantasy.ID)

	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Test Book 1", books[0].Title)
}

func TestBookRepository_UpdateReplacesGenres(t *testing.T) {
	repo, db := setupBookRepo(t)

	author := testutil.CreateTestAuthor("Jim", "Jones")
	fantasy := testutil.CreateTestGenre("Fantasy")
	scifi := testutil.CreateTestGenre("Science Fiction")
	require.NoError(t, db.DB.Create(author).Error)
	require.NoError(t, db.DB.Create(fantasy).Error)
	require.NoError(t, db.DB.Create(scifi).Error)

	book := testutil.CreateTestBook("Test Book 1", "ISBN111111", author.ID)
	book.Genres = []models.Genre{*fantasy}
	require.NoError(t, repo.Create(book))

	book.Title = "Test Book 1 (revised)"
	book.Genres = []models.Genre{*scifi}
	require.NoError(t, repo.Update(book))

	got, err := repo.GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Book 1 (revised)", got.Title)
	require.Len(t, got.Genres, 1, "Update should replace the genre set, not append to it")
	assert.Equal(t, "Science Fiction", got.Genres[0].Name)
}

func TestBookRepository_UpdateWithNoGenresClearsThem(t *testing.T) {
	repo, db := setupBookRepo(t)

	author := testutil.CreateTestAuthor("Jim", "Jones")
	fantasy := testutil.CreateTestGenre("Fantasy")
	require.NoError(t, db.DB.Create(author).Error)
	require.NoError(t, db.DB.Create(fantasy).Error)

	book := testutil.CreateTestBook("Test Book 1", "ISBN111111", author.ID)
	book.Genres = []models.Genre{*fantasy}
	require.NoError(t, repo.Create(book))

	book.Genres = nil
	require.NoError(t, repo.Update(book))

	got, err := repo.GetByID(book.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Genres)
}

func TestBookRepository_DeleteRemovesJoinRows(t *testing.T) {
	repo, db := setupBookRepo(t)

	author := testutil.CreateTestAuthor("Jim", "Jones")
	fantasy := testutil.CreateTestGenre("Fantasy")
	require.NoError(t, db.DB.Create(author).Error)
	require.NoError(t, db.DB.Create(fantasy).Error)

	book := testutil.CreateTestBook("Test Book 1", "ISBN111111", author.ID)
	book.Genres = []models.Genre{*fantasy}
	require.NoError(t, repo.Create(book))

	require.NoError(t, repo.Delete(book.ID))

	got, err := repo.GetByID(book.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	var joinRows int64
	db.DB.Table("book_genres").Count(&joinRows)
	assert.Zero(t, joinRows, "Deleting a book should clear its join rows")

	genre, err := repository.NewGenreRepository(db.DB).GetByID(fantasy.ID)
	require.NoError(t, err)
	assert.NotNil(t, genre, "The genre itself must survive the book's deletion")
}
