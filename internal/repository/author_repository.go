package repository

import (
	"errors"

	"github.com/kutuphane/locallibrary/internal/models"
	"gorm.io/gorm"
)

type AuthorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) *AuthorRepository {
	return &AuthorRepository{db: db}
}

func (r *AuthorRepository) Create(author *models.Author) error {
	return r.db.Create(author).Error
}

func (r *AuthorRepository) GetByID(id string) (*models.Author, error) {
	var author models.Author
	err := r.db.Where("id = ?", id).First(&author).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &author, nil
}

func (r *AuthorRepository) GetAll() ([]models.Author, error) {
	var authors []models.Author
	err := r.db.Order("family_name ASC").Find(&authors).Error
	if err != nil {
		return nil, err
	}
	return authors, nil
}

// Update replaces the stored record with the given one by identifier.
func (r *AuthorRepository) Update(author *models.Author) error {
	return r.db.Save(author).Error
}

// Delete removes an author. Deleting an id that is already gone is not
// an error.
func (r *AuthorRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Author{}).Error
}

func (r *AuthorRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Author{}).Count(&count).Error
	return count, err
}
