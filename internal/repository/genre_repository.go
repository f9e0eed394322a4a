package repository

import (
	"errors"

	"github.com/kutuphane/locallibrary/internal/models"
	"gorm.io/gorm"
)

type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

func (r *GenreRepository) Create(genre *models.Genre) error {
	return r.db.Create(genre).Error
}

func (r *GenreRepository) GetByID(id string) (*models.Genre, error) {
	var genre models.Genre
	err := r.db.Where("id = ?", id).First(&genre).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &genre, nil
}

// GetByName does a case-sensitive exact match and returns the first hit.
func (r *GenreRepository) GetByName(name string) (*models.Genre, error) {
	var genre models.Genre
	err := r.db.Where("name = ?", name).Order("created_at ASC").First(&genre).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &genre, nil
}

func (r *GenreRepository) GetAll() ([]models.Genre, error) {
	var genres []models.Genre
	err := r.db.Order("name ASC").Find(&genres).Error
	if err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *GenreRepository) Update(genre *models.Genre) error {
	return r.db.Save(genre).Error
}

func (r *GenreRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Genre{}).Error
}

func (r *GenreRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Genre{}).Count(&count).Error
	return count, err
}
