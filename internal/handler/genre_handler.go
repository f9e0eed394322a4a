package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kutuphane/locallibrary/internal/service"
	"github.com/kutuphane/locallibrary/internal/session"
)

type GenreHandler struct {
	genres   *service.GenreService
	sessions *session.Manager
}

func NewGenreHandler(genres *service.GenreService, sessions *session.Manager) *GenreHandler {
	return &GenreHandler{
		genres:   genres,
		sessions: sessions,
	}
}

// List renders the genre list view model.
// GET /catalog/genres
func (h *GenreHandler) List(c *gin.Context) {
	genres, err := h.genres.List()
	if err != nil {
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":      "Genre List",
		"genre_list": genres,
	})
}

// Detail renders a genre and the books tagged with it.
// GET /catalog/genre/:id
func (h *GenreHandler) Detail(c *gin.Context) {
	genre, books, err := h.genres.Detail(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":       "Genre Detail",
		"genre":       genre,
		"genre_books": books,
	})
}

// CreateGet renders the empty genre form.
// GET /catalog/genre/create
func (h *GenreHandler) CreateGet(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title": "Create Genre",
	})
}

// CreatePost validates and stores a new genre. Creating a genre whose
// name already exists redirects to the existing record instead.
// POST /catalog/genre/create
func (h *GenreHandler) CreatePost(c *gin.Context) {
	in := service.GenreInput{Name: c.PostForm("name")}
	actor := h.sessions.Username(c.Request.Context())

	genre, _, v, err := h.genres.Create(actor, in)
	if err != nil {
		renderServerError(c, err)
		return
	}
	if v != nil {
		c.JSON(http.StatusOK, gin.H{
			"title":  "Create Genre",
			"genre":  in,
			"errors": v.Errors,
		})
		return
	}

	c.Redirect(http.StatusFound, genre.URL())
}

// UpdateGet renders the form pre-filled with the stored record.
// GET /catalog/genre/:id/update
func (h *GenreHandler) UpdateGet(c *gin.Context) {
	genre, _, err := h.genres.Detail(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title": "Update Genre",
		"genre": genre,
	})
}

// UpdatePost validates and replaces the stored record.
// POST /catalog/genre/:id/update
func (h *GenreHandler) UpdatePost(c *gin.Context) {
	in := service.GenreInput{Name: c.PostForm("name")}
	actor := h.sessions.Username(c.Request.Context())

	genre, v, err := h.genres.Update(actor, c.Param("id"), in)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}
	if v != nil {
		c.JSON(http.StatusOK, gin.H{
			"title":  "Update Genre",
			"genre":  in,
			"errors": v.Errors,
		})
		return
	}

	c.Redirect(http.StatusFound, genre.URL())
}

// DeleteGet renders the confirmation page with the dependent books.
// GET /catalog/genre/:id/delete
func (h *GenreHandler) DeleteGet(c *gin.Context) {
	genre, books, err := h.genres.ConfirmDelete(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":       "Delete Genre",
		"genre":       genre,
		"genre_books": books,
	})
}

// DeletePost deletes the genre unless books are still tagged with it.
// POST /catalog/genre/:id/delete
func (h *GenreHandler) DeletePost(c *gin.Context) {
	actor := h.sessions.Username(c.Request.Context())

	result, err := h.genres.Delete(actor, c.Param("id"))
	if err != nil {
		renderServerError(c, err)
		return
	}

	if !result.Deleted {
		c.JSON(http.StatusOK, gin.H{
			"title":       "Delete Genre",
			"genre":       result.Genre,
			"genre_books": result.Books,
		})
		return
	}

	c.Redirect(http.StatusFound, "/catalog/genres")
}
