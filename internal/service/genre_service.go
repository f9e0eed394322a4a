package service

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kutuphane/locallibrary/internal/audit"
	"github.com/kutuphane/locallibrary/internal/models"
	"github.com/kutuphane/locallibrary/internal/repository"
	"github.com/kutuphane/locallibrary/internal/validator"
	"github.com/kutuphane/locallibrary/pkg/logger"
)

type GenreService struct {
	genreRepo *repository.GenreRepository
	bookRepo  *repository.BookRepository
	trail     *audit.Trail
}

func NewGenreService(genreRepo *repository.GenreRepository, bookRepo *repository.BookRepository, trail *audit.Trail) *GenreService {
	return &GenreService{
		genreRepo: genreRepo,
		bookRepo:  bookRepo,
		trail:     trail,
	}
}

// GenreInput holds the raw form fields of the genre create/update form.
type GenreInput struct {
	Name string
}

func (in *GenreInput) validate() *validator.Validator {
	v := validator.New()
	v.Check(in.Name != "", "name", "Genre name required")
	if in.Name != "" {
		v.Check(len(in.Name) >= 3 && len(in.Name) <= 100, "name", "Genre name must be between 3 and 100 characters long.")
	}
	return v
}

func (s *GenreService) List() ([]models.Genre, error) {
	return s.genreRepo.GetAll()
}

// Detail returns a genre and the books tagged with it.
func (s *GenreService) Detail(id string) (*models.Genre, []models.Book, error) {
	genre, err := s.genreRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if genre == nil {
		return nil, nil, ErrNotFound
	}

	books, err := s.bookRepo.GetByGenreID(id)
	if err != nil {
		return nil, nil, err
	}

	return genre, books, nil
}

// Create inserts a new genre unless one with the exact same name
// already exists, in which case the existing record is returned with
// existing=true and nothing is inserted.
func (s *GenreService) Create(actor string, in GenreInput) (genre *models.Genre, existing bool, v *validator.Validator, err error) {
	if v := in.validate(); !v.Valid() {
		return nil, false, v, nil
	}

	found, err := s.genreRepo.GetByName(in.Name)
	if err != nil {
		return nil, false, nil, err
	}
	if found != nil {
		logger.Log.Info("Genre already exists, redirecting to it",
			zap.String("genre_id", found.ID),
			zap.String("name", in.Name),
		)
		return found, true, nil, nil
	}

	genre = &models.Genre{
		ID:   uuid.NewString(),
		Name: in.Name,
	}

	if err := s.genreRepo.Create(genre); err != nil {
		logger.Log.Error("Failed to create genre",
			zap.String("name", in.Name),
			zap.Error(err),
		)
		return nil, false, nil, err
	}

	s.record(actor, "create", genre.ID)

	return genre, false, nil, nil
}

// Update validates the form input and replaces the stored record.
func (s *GenreService) Update(actor, id string, in GenreInput) (*models.Genre, *validator.Validator, error) {
	genre, err := s.genreRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if genre == nil {
		return nil, nil, ErrNotFound
	}

	if v := in.validate(); !v.Valid() {
		return nil, v, nil
	}

	genre.Name = in.Name

	if err := s.genreRepo.Update(genre); err != nil {
		logger.Log.Error("Failed to update genre",
			zap.String("genre_id", id),
			zap.Error(err),
		)
		return nil, nil, err
	}

	s.record(actor, "update", id)

	return genre, nil, nil
}

// GenreDeleteResult is the outcome of a delete submission.
type GenreDeleteResult struct {
	Deleted bool
	Genre   *models.Genre
	// Books are the dependents blocking deletion when Deleted is false.
	Books []models.Book
}

// ConfirmDelete loads the genre and its dependent books for the
// confirmation page.
func (s *GenreService) ConfirmDelete(id string) (*models.Genre, []models.Book, error) {
	return s.Detail(id)
}

// Delete re-reads the dependents and only removes the genre when no
// book is tagged with it anymore.
func (s *GenreService) Delete(actor, id string) (*GenreDeleteResult, error) {
	genre, err := s.genreRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return &GenreDeleteResult{Deleted: true}, nil
	}

	books, err := s.bookRepo.GetByGenreID(id)
	if err != nil {
		return nil, err
	}
	if len(books) > 0 {
		logger.Log.Warn("Genre delete blocked by dependent books",
			zap.String("genre_id", id),
			zap.Int("book_count", len(books)),
		)
		return &GenreDeleteResult{Genre: genre, Books: books}, nil
	}

	if err := s.genreRepo.Delete(id); err != nil {
		return nil, err
	}

	s.record(actor, "delete", id)

	return &GenreDeleteResult{Deleted: true, Genre: genre}, nil
}

func (s *GenreService) record(actor, operation, id string) {
	if s.trail == nil {
		return
	}
	if err := s.trail.Record(audit.Entry{
		Actor:     actor,
		Operation: operation,
		Entity:    "genre",
		EntityID:  id,
	}); err != nil {
		logger.Log.Error("Failed to record audit entry", zap.Error(err))
	}
}
