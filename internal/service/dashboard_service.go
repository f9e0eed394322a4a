package service

import (
	"github.com/kutuphane/locallibrary/internal/models"
	"github.com/kutuphane/locallibrary/internal/repository"
)

// DashboardCounts holds the record counts shown on the catalog home page.
type DashboardCounts struct {
	Books              int64 `json:"book_count"`
	Instances          int64 `json:"book_instance_count"`
	AvailableInstances int64 `json:"book_instance_available_count"`
	Authors            int64 `json:"author_count"`
	Genres             int64 `json:"genre_count"`
}

type DashboardService struct {
	bookRepo     *repository.BookRepository
	instanceRepo *repository.BookInstanceRepository
	authorRepo   *repository.AuthorRepository
	genreRepo    *repository.GenreRepository
}

func NewDashboardService(
	bookRepo *repository.BookRepository,
	instanceRepo *repository.BookInstanceRepository,
	authorRepo *repository.AuthorRepository,
	genreRepo *repository.GenreRepository,
) *DashboardService {
	return &DashboardService{
		bookRepo:     bookRepo,
		instanceRepo: instanceRepo,
		authorRepo:   authorRepo,
		genreRepo:    genreRepo,
	}
}

func (s *DashboardService) Counts() (*DashboardCounts, error) {
	counts := &DashboardCounts{}
	var err error

	if counts.Books, err = s.bookRepo.Count(); err != nil {
		return nil, err
	}
	if counts.Instances, err = s.instanceRepo.Count(); err != nil {
		return nil, err
	}
	if counts.AvailableInstances, err = s.instanceRepo.CountByStatus(models.StatusAvailable); err != nil {
		return nil, err
	}
	if counts.Authors, err = s.authorRepo.Count(); err != nil {
		return nil, err
	}
	if counts.Genres, err = s.genreRepo.Count(); err != nil {
		return nil, err
	}

	return counts, nil
}
