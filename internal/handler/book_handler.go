package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kutuphane/locallibrary/internal/service"
	"github.com/kutuphane/locallibrary/internal/session"
)

type BookHandler struct {
	books    *service.BookService
	sessions *session.Manager
}

func NewBookHandler(books *service.BookService, sessions *session.Manager) *BookHandler {
	return &BookHandler{
		books:    books,
		sessions: sessions,
	}
}

// List renders the book list view model.
// GET /catalog/books
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.books.List()
	if err != nil {
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":     "Book List",
		"book_list": books,
	})
}

// Detail renders a book and its copies.
// GET /catalog/book/:id
func (h *BookHandler) Detail(c *gin.Context) {
	book, instances, err := h.books.Detail(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":          "Book Detail",
		"book":           book,
		"book_instances": instances,
	})
}

// CreateGet renders the empty book form with the selector lists.
// GET /catalog/book/create
func (h *BookHandler) CreateGet(c *gin.Context) {
	authors, genres, err := h.books.FormChoices()
	if err != nil {
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   "Create Book",
		"authors": authors,
		"genres":  genres,
	})
}

func bookInputFromForm(c *gin.Context) service.BookInput {
	return service.BookInput{
		Title:    c.PostForm("title"),
		Summary:  c.PostForm("summary"),
		ISBN:     c.PostForm("isbn"),
		AuthorID: c.PostForm("author"),
		GenreIDs: c.PostFormArray("genre"),
	}
}

// CreatePost validates and stores a new book. Validation failures
// re-render the form with the entered values and the selector lists.
// POST /catalog/book/create
func (h *BookHandler) CreatePost(c *gin.Context) {
	in := bookInputFromForm(c)
	actor := h.sessions.Username(c.Request.Context())

	book, v, err := h.books.Create(actor, in)
	if err != nil {
		renderServerError(c, err)
		return
	}
	if v != nil {
		authors, genres, err := h.books.FormChoices()
		if err != nil {
			renderServerError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"title":   "Create Book",
			"book":    in,
			"authors": authors,
			"genres":  genres,
			"errors":  v.Errors,
		})
		return
	}

	c.Redirect(http.StatusFound, book.URL())
}

// UpdateGet renders the form pre-filled with the stored record and the
// selector lists.
// GET /catalog/book/:id/update
func (h *BookHandler) UpdateGet(c *gin.Context) {
	book, _, err := h.books.Detail(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	authors, genres, err := h.books.FormChoices()
	if err != nil {
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   "Update Book",
		"book":    book,
		"authors": authors,
		"genres":  genres,
	})
}

// UpdatePost validates and replaces the stored record.
// POST /catalog/book/:id/update
func (h *BookHandler) UpdatePost(c *gin.Context) {
	in := bookInputFromForm(c)
	actor := h.sessions.Username(c.Request.Context())

	book, v, err := h.books.Update(actor, c.Param("id"), in)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}
	if v != nil {
		authors, genres, err := h.books.FormChoices()
		if err != nil {
			renderServerError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"title":   "Update Book",
			"book":    in,
			"authors": authors,
			"genres":  genres,
			"errors":  v.Errors,
		})
		return
	}

	c.Redirect(http.StatusFound, book.URL())
}

// DeleteGet renders the confirmation page with the dependent copies.
// GET /catalog/book/:id/delete
func (h *BookHandler) DeleteGet(c *gin.Context) {
	book, instances, err := h.books.ConfirmDelete(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":          "Delete Book",
		"book":           book,
		"book_instances": instances,
	})
}

// DeletePost deletes the book unless copies still reference it.
// POST /catalog/book/:id/delete
func (h *BookHandler) DeletePost(c *gin.Context) {
	actor := h.sessions.Username(c.Request.Context())

	result, err := h.books.Delete(actor, c.Param("id"))
	if err != nil {
		renderServerError(c, err)
		return
	}

	if !result.Deleted {
		c.JSON(http.StatusOK, gin.H{
			"title":          "Delete Book",
			"book":           result.Book,
			"book_instances": result.Instances,
		})
		return
	}

	c.Redirect(http.StatusFound, "/catalog/books")
}
