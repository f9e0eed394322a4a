package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/kutuphane/locallibrary/internal/models"
	"github.com/kutuphane/locallibrary/internal/utils"
)

// CreateTestUser creates a user fixture with a real salted hash.
func CreateTestUser(username, email, password string, role models.Role) (*models.User, error) {
	salt, hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:       uuid.NewString(),
		Username: username,
		Fullname: username + " Fullname",
		Email:    email,
		Role:     role,
		Salt:     salt,
		Hash:     hash,
	}, nil
}

// DefaultTestUser returns a read-only account fixture.
func DefaultTestUser() (*models.User, error) {
	return CreateTestUser("testuser", "test@example.com", "Test1234", models.RoleUser)
}

// DefaultAdminUser returns an admin account fixture.
func DefaultAdminUser() (*models.User, error) {
	return CreateTestUser("admin", "admin@example.com", "Admin1234", models.RoleAdmin)
}

// CreateTestAuthor creates an author fixture.
func CreateTestAuthor(firstName, familyName string) *models.Author {
	return &models.Author{
		ID:         uuid.NewString(),
		FirstName:  firstName,
		FamilyName: familyName,
	}
}

// CreateTestGenre creates a genre fixture.
func CreateTestGenre(name string) *models.Genre {
	return &models.Genre{
		ID:   uuid.NewString(),
		Name: name,
	}
}

// CreateTestBook creates a book fixture referencing an author.
func CreateTestBook(title, isbn, authorID string) *models.Book {
	return &models.Book{
		ID:       uuid.NewString(),
		Title:    title,
		Summary:  "Summary of " + title,
		ISBN:     isbn,
		AuthorID: authorID,
	}
}

// CreateTestInstance creates a copy fixture referencing a book.
func CreateTestInstance(bookID, imprint string) *models.BookInstance {
	return &models.BookInstance{
		ID:      uuid.NewString(),
		BookID:  bookID,
		Imprint: imprint,
		Status:  models.StatusMaintenance,
		DueBack: time.Now(),
	}
}
