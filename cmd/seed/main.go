package main

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/kutuphane/locallibrary/internal/config"
	"github.com/kutuphane/locallibrary/internal/database"
	"github.com/kutuphane/locallibrary/internal/models"
	"github.com/kutuphane/locallibrary/internal/utils"
)

// Seeds the catalog with sample records and bootstraps the admin account
// named by ADMIN_USERNAME, ADMIN_EMAIL and ADMIN_PASSWORD.
func main() {
	cfg := config.Load()
	database.Connect(cfg)
	database.Migrate()

	seedAdmin()
	seedCatalog()

	log.Println("Seeding complete")
}

func seedAdmin() {
	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminUsername == "" || adminEmail == "" || adminPassword == "" {
		log.Println("Skipping admin bootstrap: ADMIN_USERNAME, ADMIN_EMAIL and ADMIN_PASSWORD not all set")
		return
	}

	var existing models.User
	if err := database.DB.Where("username = ?", adminUsername).First(&existing).Error; err == nil {
		log.Println("Admin user already exists:", existing.Username)
		return
	}

	salt, hash, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}

	admin := models.User{
		ID:       uuid.NewString(),
		Username: adminUsername,
		Fullname: adminUsername,
		Email:    adminEmail,
		Role:     models.RoleAdmin,
		Salt:     salt,
		Hash:     hash,
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}
	log.Println("Created admin user:", admin.Username)
}

func seedCatalog() {
	var count int64
	database.DB.Model(&models.Book{}).Count(&count)
	if count > 0 {
		log.Println("Skipping catalog seed: books already present")
		return
	}

	genres := []*models.Genre{
		newGenre("Fantasy"),
		newGenre("Science Fiction"),
		newGenre("French Poetry"),
	}
	for _, g := range genres {
		mustCreate(g)
	}

	authors := []*models.Author{
		newAuthor("Patrick", "Rothfuss", date(1973, 6, 6), nil),
		newAuthor("Ben", "Bova", date(1932, 11, 8), nil),
		newAuthor("Isaac", "Asimov", date(1920, 1, 2), date(1992, 4, 6)),
		newAuthor("Bob", "Billings", nil, nil),
		newAuthor("Jim", "Jones", date(1971, 12, 16), nil),
	}
	for _, a := range authors {
		mustCreate(a)
	}

	books := []*models.Book{
		newBook(
			"The Name of the Wind (The Kingkiller Chronicle, #1)",
			"I have stolen princesses back from sleeping barrow kings. I burned down the town of Trebon. I have spent the night with Felurian and left with both my sanity and my life.",
			"9781473211896",
			authors[0], genres[0],
		),
		newBook(
			"The Wise Man's Fear (The Kingkiller Chronicle, #2)",
			"Picking up the tale of Kvothe Kingkiller once again, we follow him into exile, into political intrigue, courtship, adventure, love and magic.",
			"9788401352836",
			authors[0], genres[0],
		),
		newBook(
			"The Slow Regard of Silent Things (Kingkiller Chronicle)",
			"Deep below the University, there is a dark place. Few people know of it: a broken web of ancient passageways and abandoned rooms.",
			"9780756411336",
			authors[0], genres[0],
		),
		newBook(
			"Apes and Angels",
			"Humankind headed out to the stars not for conquest, nor exploration, nor even for curiosity. Humans went to the stars in a desperate crusade to save intelligent life wherever they found it.",
			"9780765379528",
			authors[1], genres[1],
		),
		newBook(
			"Death Wave",
			"In Ben Bova's previous novel New Earth, Jordan Kell led the first human mission beyond the solar system. They discovered the ruins of an ancient alien civilization.",
			"9780765379504",
			authors[1], genres[1],
		),
	}
	for _, b := range books {
		mustCreate(b)
	}

	instances := []*models.BookInstance{
		newInstance(books[0], "London Gollancz, 2014.", models.StatusAvailable),
		newInstance(books[1], " Gollancz, 2011.", models.StatusLoaned),
		newInstance(books[2], " Gollancz, 2015.", models.StatusMaintenance),
		newInstance(books[3], "New York Tom Doherty Associates, 2016.", models.StatusAvailable),
		newInstance(books[3], "New York Tom Doherty Associates, 2016.", models.StatusAvailable),
		newInstance(books[4], "New York, NY Tom Doherty Associates, LLC, 2015.", models.StatusAvailable),
		newInstance(books[4], "New York, NY Tom Doherty Associates, LLC, 2015.", models.StatusMaintenance),
		newInstance(books[4], "New York, NY Tom Doherty Associates, LLC, 2015.", models.StatusLoaned),
	}
	for _, i := range instances {
		mustCreate(i)
	}

	log.Printf("Seeded %d genres, %d authors, %d books, %d copies",
		len(genres), len(authors), len(books), len(instances))
}

func newGenre(name string) *models.Genre {
	return &models.Genre{ID: uuid.NewString(), Name: name}
}

func newAuthor(first, family string, born, died *time.Time) *models.Author {
	return &models.Author{
		ID:          uuid.NewString(),
		FirstName:   first,
		FamilyName:  family,
		DateOfBirth: born,
		DateOfDeath: died,
	}
}

func newBook(title, summary, isbn string, author *models.Author, genre *models.Genre) *models.Book {
	return &models.Book{
		ID:       uuid.NewString(),
		Title:    title,
		Summary:  summary,
		ISBN:     isbn,
		AuthorID: author.ID,
		Genres:   []models.Genre{*genre},
	}
}

func newInstance(book *models.Book, imprint string, status models.InstanceStatus) *models.BookInstance {
	return &models.BookInstance{
		ID:      uuid.NewString(),
		BookID:  book.ID,
		Imprint: imprint,
		Status:  status,
		DueBack: time.Now().AddDate(0, 0, 21),
	}
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func mustCreate(value any) {
	if err := database.DB.Create(value).Error; err != nil {
		log.Fatal("Seed insert failed:", err)
	}
}
