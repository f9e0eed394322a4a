package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kutuphane/locallibrary/internal/service"
	"github.com/kutuphane/locallibrary/internal/session"
)

type AuthorHandler struct {
	authors  *service.AuthorService
	sessions *session.Manager
}

func NewAuthorHandler(authors *service.AuthorService, sessions *session.Manager) *AuthorHandler {
	return &AuthorHandler{
		authors:  authors,
		sessions: sessions,
	}
}

// List renders the author list view model.
// GET /catalog/authors
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.authors.List()
	if err != nil {
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":       "Author List",
		"author_list": authors,
	})
}

// Detail renders an author and their books.
// GET /catalog/author/:id
func (h *AuthorHandler) Detail(c *gin.Context) {
	author, books, err := h.authors.Detail(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":        "Author Detail",
		"author":       author,
		"author_books": books,
	})
}

// CreateGet renders the empty author form.
// GET /catalog/author/create
func (h *AuthorHandler) CreateGet(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title": "Create Author",
	})
}

func authorInputFromForm(c *gin.Context) service.AuthorInput {
	return service.AuthorInput{
		FirstName:   c.PostForm("first_name"),
		FamilyName:  c.PostForm("family_name"),
		DateOfBirth: c.PostForm("date_of_birth"),
		DateOfDeath: c.PostForm("date_of_death"),
	}
}

// CreatePost validates and stores a new author. Validation failures
// re-render the form with the entered values echoed back.
// POST /catalog/author/create
func (h *AuthorHandler) CreatePost(c *gin.Context) {
	in := authorInputFromForm(c)
	actor := h.sessions.Username(c.Request.Context())

	author, v, err := h.authors.Create(actor, in)
	if err != nil {
		renderServerError(c, err)
		return
	}
	if v != nil {
		c.JSON(http.StatusOK, gin.H{
			"title":  "Create Author",
			"author": in,
			"errors": v.Errors,
		})
		return
	}

	c.Redirect(http.StatusFound, author.URL())
}

// UpdateGet renders the form pre-filled with the stored record.
// GET /catalog/author/:id/update
func (h *AuthorHandler) UpdateGet(c *gin.Context) {
	author, _, err := h.authors.Detail(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":  "Update Author",
		"author": author,
	})
}

// UpdatePost validates and replaces the stored record.
// POST /catalog/author/:id/update
func (h *AuthorHandler) UpdatePost(c *gin.Context) {
	in := authorInputFromForm(c)
	actor := h.sessions.Username(c.Request.Context())

	author, v, err := h.authors.Update(actor, c.Param("id"), in)
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
			"title":  "Update Author",
			"author": in,
			"errors": v.Errors,
		})
		return
	}

	c.Redirect(http.StatusFound, author.URL())
}

// DeleteGet renders the confirmation page with the dependent books.
// GET /catalog/author/:id/delete
func (h *AuthorHandler) DeleteGet(c *gin.Context) {
	author, books, err := h.authors.ConfirmDelete(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":        "Delete Author",
		"author":       author,
		"author_books": books,
	})
}

// DeletePost deletes the author unless books still reference them, in
// which case the confirmation view is rendered again unchanged.
// POST /catalog/author/:id/delete
func (h *AuthorHandler) DeletePost(c *gin.Context) {
	actor := h.sessions.Username(c.Request.Context())

	result, err := h.authors.Delete(actor, c.Param("id"))
	if err != nil {
		renderServerError(c, err)
		return
	}

	if !result.Deleted {
		c.JSON(http.StatusOK, gin.H{
			"title":        "Delete Author",
			"author":       result.Author,
			"author_books": result.Books,
		})
		return
	}

	c.Redirect(http.StatusFound, "/catalog/authors")
}
