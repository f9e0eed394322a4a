package repository

import (
	"errors"

	"github.com/kutuphane/locallibrary/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Create(book *models.Book) error {
	return r.db.Create(book).Error
}

func (r *BookRepository) GetByID(id string) (*models.Book, error) {
	var book models.Book
	err := r.db.
		Preload("Author").
		Preload("Genres").
		Where("id = ?", id).
		First(&book).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &book, nil
}

func (r *BookRepository) GetAll() ([]models.Book, error) {
	var books []models.Book
	err := r.db.
		Preload("Author").
		Order("title ASC").
		Find(&books).Error

	return books, err
}

// GetByAuthorID returns the books referencing an author. The delete
// guard calls this fresh on every confirmation and submission.
func (r *BookRepository) GetByAuthorID(authorID string) ([]models.Book, error) {
	var books []models.Book
	err := r.db.
		Where("author_id = ?", authorID).
		Order("title ASC").
		Find(&books).Error

	return books, err
}

// GetByGenreID returns the books tagged with a genre.
func (r *BookRepository) GetByGenreID(genreID string) ([]models.Book, error) {
	var books []models.Book
	err := r.db.
		Joins("JOIN book_genres ON book_genres.book_id = books.id").
		Where("book_genres.genre_id = ?", genreID).
		Order("title ASC").
		Find(&books).Error

	return books, err
}

// Update replaces the record and its genre associations.
func (r *BookRepository) Update(book *models.Book) error {
	if err := r.db.Omit("Genres").Save(book).Error; err != nil {
		return err
	}
	return r.db.Model(book).Association("Genres").Replace(book.Genres)
}

// Delete removes a book and its genre join rows.
func (r *BookRepository) Delete(id string) error {
	return r.db.Select(clause.Associations).Delete(&models.Book{ID: id}).Error
}

func (r *BookRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Book{}).Count(&count).Error
	return count, err
}
