package repository

import (
	"errors"

	"github.com/kutuphane/locallibrary/internal/models"
	"gorm.io/gorm"
)

type BookInstanceRepository struct {
	db *gorm.DB
}

func NewBookInstanceRepository(db *gorm.DB) *BookInstanceRepository {
	return &BookInstanceRepository{db: db}
}

func (r *BookInstanceRepository) Create(instance *models.BookInstance) error {
	return r.db.Create(instance).Error
}

func (r *BookInstanceRepository) GetByID(id string) (*models.BookInstance, error) {
	var instance models.BookInstance
	err := r.db.
		Preload("Book").
		Where("id = ?", id).
		First(&instance).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &instance, nil
}

func (r *BookInstanceRepository) GetAll() ([]models.BookInstance, error) {
	var instances []models.BookInstance
	err := r.db.
		Preload("Book").
		Order("imprint ASC").
		Find(&instances).Error

	return instances, err
}

// GetByBookID returns the copies referencing a book.
func (r *BookInstanceRepository) GetByBookID(bookID string) ([]models.BookInstance, error) {
	var instances []models.BookInstance
	err := r.db.
		Where("book_id = ?", bookID).
		Order("imprint ASC").
		Find(&instances).Error

	return instances, err
}

func (r *BookInstanceRepository) Update(instance *models.BookInstance) error {
	return r.db.Save(instance).Error
}

func (r *BookInstanceRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.BookInstance{}).Error
}

func (r *BookInstanceRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.BookInstance{}).Count(&count).Error
	return count, err
}

// CountByStatus counts copies in one loan state.
func (r *BookInstanceRepository) CountByStatus(status models.InstanceStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.BookInstance{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
