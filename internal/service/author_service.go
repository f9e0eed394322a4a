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

type AuthorService struct {
	authorRepo *repository.AuthorRepository
	bookRepo   *repository.BookRepository
	trail      *audit.Trail
}

func NewAuthorService(authorRepo *repository.AuthorRepository, bookRepo *repository.BookRepository, trail *audit.Trail) *AuthorService {
	return &AuthorService{
		authorRepo: authorRepo,
		bookRepo:   bookRepo,
		trail:      trail,
	}
}

// AuthorInput holds the raw form fields of the author create/update forms.
type AuthorInput struct {
	FirstName   string
	FamilyName  string
	DateOfBirth string
	DateOfDeath string
}

func (in *AuthorInput) validate() *validator.Validator {
	v := validator.New()
	v.Check(in.FirstName != "", "first_name", "First name must be specified.")
	v.Check(in.FamilyName != "", "family_name", "Family name must be specified.")
	if in.FamilyName != "" {
		v.Check(validator.Matches(in.FamilyName, validator.AlphaRX), "family_name", "Family name must be alphanumeric text.")
	}
	v.Check(validator.ValidDate(in.DateOfBirth), "date_of_birth", "Invalid date")
	v.Check(validator.ValidDate(in.DateOfDeath), "date_of_death", "Invalid date")
	return v
}

func (s *AuthorService) List() ([]models.Author, error) {
	return s.authorRepo.GetAll()
}

// Detail returns an author and the books referencing them.
func (s *AuthorService) Detail(id string) (*models.Author, []models.Book, error) {
	author, err := s.authorRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if author == nil {
		return nil, nil, ErrNotFound
	}

	books, err := s.bookRepo.GetByAuthorID(id)
	if err != nil {
		return nil, nil, err
	}

	return author, books, nil
}

// Create validates the form input and inserts a new author. A non-nil
// Validator return means validation failed and nothing was stored.
func (s *AuthorService) Create(actor string, in AuthorInput) (*models.Author, *validator.Validator, error) {
	if v := in.validate(); !v.Valid() {
		return nil, v, nil
	}

	author := &models.Author{
		ID:          uuid.NewString(),
		FirstName:   in.FirstName,
		FamilyName:  in.FamilyName,
		DateOfBirth: validator.ParseDate(in.DateOfBirth),
		DateOfDeath: validator.ParseDate(in.DateOfDeath),
	}

	if err := s.authorRepo.Create(author); err != nil {
		logger.Log.Error("Failed to create author",
			zap.String("family_name", in.FamilyName),
			zap.Error(err),
		)
		return nil, nil, err
	}

	s.record(actor, "create", author.ID)

	logger.Log.Info("Author created",
		zap.String("author_id", author.ID),
		zap.String("actor", actor),
	)

	return author, nil, nil
}

// Update validates the form input and replaces the stored record.
func (s *AuthorService) Update(actor, id string, in AuthorInput) (*models.Author, *validator.Validator, error) {
	author, err := s.authorRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if author == nil {
		return nil, nil, ErrNotFound
	}

	if v := in.validate(); !v.Valid() {
		return nil, v, nil
	}

	author.FirstName = in.FirstName
	author.FamilyName = in.FamilyName
	author.DateOfBirth = validator.ParseDate(in.DateOfBirth)
	author.DateOfDeath = validator.ParseDate(in.DateOfDeath)

	if err := s.authorRepo.Update(author); err != nil {
		logger.Log.Error("Failed to update author",
			zap.String("author_id", id),
			zap.Error(err),
		)
		return nil, nil, err
	}

	s.record(actor, "update", id)

	return author, nil, nil
}

// AuthorDeleteResult is the outcome of a delete submission.
type AuthorDeleteResult struct {
	// Deleted is true when the author is gone, whether this request
	// removed it or it was already absent.
	Deleted bool
	Author  *models.Author
	// Books are the dependents blocking deletion when Deleted is false.
	Books []models.Book
}

// ConfirmDelete loads the author and their dependent books for the
// confirmation page.
func (s *AuthorService) ConfirmDelete(id string) (*models.Author, []models.Book, error) {
	return s.Detail(id)
}

// Delete re-reads the dependents and only removes the author when none
// remain. The dependent count is never taken from the client.
func (s *AuthorService) Delete(actor, id string) (*AuthorDeleteResult, error) {
	author, err := s.authorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if author == nil {
		// Already gone; a repeated submission is a no-op
		return &AuthorDeleteResult{Deleted: true}, nil
	}

	books, err := s.bookRepo.GetByAuthorID(id)
	if err != nil {
		return nil, err
	}
	if len(books) > 0 {
		logger.Log.Warn("Author delete blocked by dependent books",
			zap.String("author_id", id),
			zap.Int("book_count", len(books)),
		)
		return &AuthorDeleteResult{Author: author, Books: books}, nil
	}

	if err := s.authorRepo.Delete(id); err != nil {
		return nil, err
	}

	s.record(actor, "delete", id)

	logger.Log.Info("Author deleted",
		zap.String("author_id", id),
		zap.String("actor", actor),
	)

	return &AuthorDeleteResult{Deleted: true, Author: author}, nil
}

func (s *AuthorService) record(actor, operation, id string) {
	if s.trail == nil {
		return
	}
	if err := s.trail.Record(audit.Entry{
		Actor:     actor,
		Operation: operation,
		Entity:    "author",
		EntityID:  id,
	}); err != nil {
		logger.Log.Error("Failed to record audit entry", zap.Error(err))
	}
}
