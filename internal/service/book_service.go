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

type BookService struct {
	bookRepo     *repository.BookRepository
	authorRepo   *repository.AuthorRepository
	genreRepo    *repository.GenreRepository
	instanceRepo *repository.BookInstanceRepository
	trail        *audit.Trail
}

func NewBookService(
	bookRepo *repository.BookRepository,
	authorRepo *repository.AuthorRepository,
	genreRepo *repository.GenreRepository,
	instanceRepo *repository.BookInstanceRepository,
	trail *audit.Trail,
) *BookService {
	return &BookService{
		bookRepo:     bookRepo,
		authorRepo:   authorRepo,
		genreRepo:    genreRepo,
		instanceRepo: instanceRepo,
		trail:        trail,
	}
}

// BookInput holds the raw form fields of the book create/update forms.
type BookInput struct {
	Title    string
	Summary  string
	ISBN     string
	AuthorID string
	GenreIDs []string
}

func (in *BookInput) validate() *validator.Validator {
	v := validator.New()
	v.Check(in.Title != "", "title", "Title must not be empty")
	v.Check(in.Summary != "", "summary", "Summary must not be empty")
	v.Check(in.ISBN != "", "isbn", "ISBN must not be empty")
	v.Check(in.AuthorID != "", "author", "Author must not be empty")
	return v
}

func (s *BookService) List() ([]models.Book, error) {
	return s.bookRepo.GetAll()
}

// Detail returns a book and its copies.
func (s *BookService) Detail(id string) (*models.Book, []models.BookInstance, error) {
	book, err := s.bookRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if book == nil {
		return nil, nil, ErrNotFound
	}

	instances, err := s.instanceRepo.GetByBookID(id)
	if err != nil {
		return nil, nil, err
	}

	return book, instances, nil
}

// FormChoices returns the selector lists for the book form, fetched
// fresh per request.
func (s *BookService) FormChoices() ([]models.Author, []models.Genre, error) {
	authors, err := s.authorRepo.GetAll()
	if err != nil {
		return nil, nil, err
	}
	genres, err := s.genreRepo.GetAll()
	if err != nil {
		return nil, nil, err
	}
	return authors, genres, nil
}

// resolveReferences checks the referential fields against the store.
// The author reference must resolve; integrity is enforced here, not
// by the store.
func (s *BookService) resolveReferences(in BookInput, v *validator.Validator) ([]models.Genre, error) {
	author, err := s.authorRepo.GetByID(in.AuthorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		v.AddError("author", "Author must be an existing author")
	}

	var genres []models.Genre
	for _, genreID := range in.GenreIDs {
		genre, err := s.genreRepo.GetByID(genreID)
		if err != nil {
			return nil, err
		}
		if genre == nil {
			v.AddError("genre", "Unknown genre selected")
			continue
		}
		genres = append(genres, *genre)
	}

	return genres, nil
}

// Create validates the form input, resolves the references and inserts
// a new book.
func (s *BookService) Create(actor string, in BookInput) (*models.Book, *validator.Validator, error) {
	v := in.validate()
	if !v.Valid() {
		return nil, v, nil
	}

	genres, err := s.resolveReferences(in, v)
	if err != nil {
		return nil, nil, err
	}
	if !v.Valid() {
		return nil, v, nil
	}

	book := &models.Book{
		ID:       uuid.NewString(),
		Title:    in.Title,
		Summary:  in.Summary,
		ISBN:     in.ISBN,
		AuthorID: in.AuthorID,
		Genres:   genres,
	}

	if err := s.bookRepo.Create(book); err != nil {
		logger.Log.Error("Failed to create book",
			zap.String("title", in.Title),
			zap.Error(err),
		)
		return nil, nil, err
	}

	s.record(actor, "create", book.ID)

	logger.Log.Info("Book created",
		zap.String("book_id", book.ID),
		zap.String("actor", actor),
	)

	return book, nil, nil
}

// Update validates the form input and replaces the stored record and
// its genre associations.
func (s *BookService) Update(actor, id string, in BookInput) (*models.Book, *validator.Validator, error) {
	book, err := s.bookRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if book == nil {
		return nil, nil, ErrNotFound
	}

	v := in.validate()
	if !v.Valid() {
		return nil, v, nil
	}

	genres, err := s.resolveReferences(in, v)
	if err != nil {
		return nil, nil, err
	}
	if !v.Valid() {
		return nil, v, nil
	}

	book.Title = in.Title
	book.Summary = in.Summary
	book.ISBN = in.ISBN
	book.AuthorID = in.AuthorID
	book.Genres = genres

	if err := s.bookRepo.Update(book); err != nil {
		logger.Log.Error("Failed to update book",
			zap.String("book_id", id),
			zap.Error(err),
		)
		return nil, nil, err
	}

	s.record(actor, "update", id)

	return book, nil, nil
}

// BookDeleteResult is the outcome of a delete submission.
type BookDeleteResult struct {
	Deleted bool
	Book    *models.Book
	// Instances are the dependents blocking deletion when Deleted is false.
	Instances []models.BookInstance
}

// ConfirmDelete loads the book and its dependent copies for the
// confirmation page.
func (s *BookService) ConfirmDelete(id string) (*models.Book, []models.BookInstance, error) {
	return s.Detail(id)
}

// Delete re-reads the dependents and only removes the book when no
// copy of it remains.
func (s *BookService) Delete(actor, id string) (*BookDeleteResult, error) {
	book, err := s.bookRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return &BookDeleteResult{Deleted: true}, nil
	}

	instances, err := s.instanceRepo.GetByBookID(id)
	if err != nil {
		return nil, err
	}
	if len(instances) > 0 {
		logger.Log.Warn("Book delete blocked by dependent copies",
			zap.String("book_id", id),
			zap.Int("instance_count", len(instances)),
		)
		return &BookDeleteResult{Book: book, Instances: instances}, nil
	}

	if err := s.bookRepo.Delete(id); err != nil {
		return nil, err
	}

	s.record(actor, "delete", id)

	return &BookDeleteResult{Deleted: true, Book: book}, nil
}

func (s *BookService) record(actor, operation, id string) {
	if s.trail == nil {
		return
	}
	if err := s.trail.Record(audit.Entry{
		Actor:     actor,
		Operation: operation,
		Entity:    "book",
		EntityID:  id,
	}); err != nil {
		logger.Log.Error("Failed to record audit entry", zap.Error(err))
	}
}
