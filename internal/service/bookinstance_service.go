package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kutuphane/locallibrary/internal/audit"
	"github.com/kutuphane/locallibrary/internal/models"
	"github.com/kutuphane/locallibrary/internal/repository"
	"github.com/kutuphane/locallibrary/internal/validator"
	"github.com/kutuphane/locallibrary/pkg/logger"
)

type BookInstanceService struct {
	instanceRepo *repository.BookInstanceRepository
	bookRepo     *repository.BookRepository
	trail        *audit.Trail
}

func NewBookInstanceService(instanceRepo *repository.BookInstanceRepository, bookRepo *repository.BookRepository, trail *audit.Trail) *BookInstanceService {
	return &BookInstanceService{
		instanceRepo: instanceRepo,
		bookRepo:     bookRepo,
		trail:        trail,
	}
}

// BookInstanceInput holds the raw form fields of the copy create/update forms.
type BookInstanceInput struct {
	BookID  string
	Imprint string
	Status  string
	DueBack string
}

func (in *BookInstanceInput) validate() *validator.Validator {
	v := validator.New()
	v.Check(in.BookID != "", "book", "Book must be specified")
	v.Check(in.Imprint != "", "imprint", "Imprint must be specified")
	if in.Status != "" {
		v.Check(validator.In(in.Status,
			string(models.StatusAvailable),
			string(models.StatusMaintenance),
			string(models.StatusLoaned),
			string(models.StatusReserved),
		), "status", "Invalid status")
	}
	v.Check(validator.ValidDate(in.DueBack), "due_back", "Invalid date")
	return v
}

// status defaults to Maintenance, due_back to now
func (in *BookInstanceInput) toModel() *models.BookInstance {
	status := models.StatusMaintenance
	if in.Status != "" {
		status = models.InstanceStatus(in.Status)
	}

	dueBack := time.Now()
	if parsed := validator.ParseDate(in.DueBack); parsed != nil {
		dueBack = *parsed
	}

	return &models.BookInstance{
		BookID:  in.BookID,
		Imprint: in.Imprint,
		Status:  status,
		DueBack: dueBack,
	}
}

func (s *BookInstanceService) List() ([]models.BookInstance, error) {
	return s.instanceRepo.GetAll()
}

func (s *BookInstanceService) Detail(id string) (*models.BookInstance, error) {
	instance, err := s.instanceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, ErrNotFound
	}
	return instance, nil
}

// FormChoices returns the book selector list, fetched fresh per request.
func (s *BookInstanceService) FormChoices() ([]models.Book, error) {
	return s.bookRepo.GetAll()
}

// Create validates the form input and inserts a new copy. The book
// reference must resolve to an existing record.
func (s *BookInstanceService) Create(actor string, in BookInstanceInput) (*models.BookInstance, *validator.Validator, error) {
	v := in.validate()
	if !v.Valid() {
		return nil, v, nil
	}

	book, err := s.bookRepo.GetByID(in.BookID)
	if err != nil {
		return nil, nil, err
	}
	if book == nil {
		v.AddError("book", "Book must be an existing book")
		return nil, v, nil
	}

	instance := in.toModel()
	instance.ID = uuid.NewString()

	if err := s.instanceRepo.Create(instance); err != nil {
		logger.Log.Error("Failed to create book instance",
			zap.String("book_id", in.BookID),
			zap.Error(err),
		)
		return nil, nil, err
	}

	s.record(actor, "create", instance.ID)

	return instance, nil, nil
}

// Update validates the form input and replaces the stored record.
func (s *BookInstanceService) Update(actor, id string, in BookInstanceInput) (*models.BookInstance, *validator.Validator, error) {
	instance, err := s.instanceRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if instance == nil {
		return nil, nil, ErrNotFound
	}

	v := in.validate()
	if !v.Valid() {
		return nil, v, nil
	}

	book, err := s.bookRepo.GetByID(in.BookID)
	if err != nil {
		return nil, nil, err
	}
	if book == nil {
		v.AddError("book", "Book must be an existing book")
		return nil, v, nil
	}

	fresh := in.toModel()
	instance.BookID = fresh.BookID
	instance.Imprint = fresh.Imprint
	instance.Status = fresh.Status
	instance.DueBack = fresh.DueBack
	instance.Book = models.Book{}

	if err := s.instanceRepo.Update(instance); err != nil {
		logger.Log.Error("Failed to update book instance",
			zap.String("instance_id", id),
			zap.Error(err),
		)
		return nil, nil, err
	}

	s.record(actor, "update", id)

	return instance, nil, nil
}

// BookInstanceDeleteResult is the outcome of a delete submission.
// Copies are leaf records, so deletion is never blocked.
type BookInstanceDeleteResult struct {
	Deleted  bool
	Instance *models.BookInstance
}

// ConfirmDelete loads the copy for the confirmation page.
func (s *BookInstanceService) ConfirmDelete(id string) (*models.BookInstance, error) {
	return s.Detail(id)
}

// Delete removes the copy. Deleting an id that is already gone is a no-op.
func (s *BookInstanceService) Delete(actor, id string) (*BookInstanceDeleteResult, error) {
	instance, err := s.instanceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return &BookInstanceDeleteResult{Deleted: true}, nil
	}

	if err := s.instanceRepo.Delete(id); err != nil {
		return nil, err
	}

	s.record(actor, "delete", id)

	return &BookInstanceDeleteResult{Deleted: true, Instance: instance}, nil
}

func (s *BookInstanceService) record(actor, operation, id string) {
	if s.trail == nil {
		return
	}
	if err := s.trail.Record(audit.Entry{
		Actor:     actor,
		Operation: operation,
		Entity:    "bookinstance",
		EntityID:  id,
	}); err != nil {
		logger.Log.Error("Failed to record audit entry", zap.Error(err))
	}
}
