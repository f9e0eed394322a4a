package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kutuphane/locallibrary/internal/models"
	"github.com/kutuphane/locallibrary/internal/service"
	"github.com/kutuphane/locallibrary/internal/session"
)

type BookInstanceHandler struct {
	instances *service.BookInstanceService
	sessions  *session.Manager
}

func NewBookInstanceHandler(instances *service.BookInstanceService, sessions *session.Manager) *BookInstanceHandler {
	return &BookInstanceHandler{
		instances: instances,
		sessions:  sessions,
	}
}

// List renders the copy list view model.
// GET /catalog/bookinstances
func (h *BookInstanceHandler) List(c *gin.Context) {
	instances, err := h.instances.List()
	if err != nil {
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":             "Book Instance List",
		"bookinstance_list": instances,
	})
}

// Detail renders a single copy.
// GET /catalog/bookinstance/:id
func (h *BookInstanceHandler) Detail(c *gin.Context) {
	instance, err := h.instances.Detail(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":        "Book Instance Detail",
		"bookinstance": instance,
	})
}

// CreateGet renders the empty copy form with the book selector.
// GET /catalog/bookinstance/create
func (h *BookInstanceHandler) CreateGet(c *gin.Context) {
	books, err := h.instances.FormChoices()
	if err != nil {
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":       "Create BookInstance",
		"book_list":   books,
		"status_list": models.InstanceStatuses,
	})
}

func instanceInputFromForm(c *gin.Context) service.BookInstanceInput {
	return service.BookInstanceInput{
		BookID:  c.PostForm("book"),
		Imprint: c.PostForm("imprint"),
		Status:  c.PostForm("status"),
		DueBack: c.PostForm("due_back"),
	}
}

// CreatePost validates and stores a new copy.
// POST /catalog/bookinstance/create
func (h *BookInstanceHandler) CreatePost(c *gin.Context) {
	in := instanceInputFromForm(c)
	actor := h.sessions.Username(c.Request.Context())

	instance, v, err := h.instances.Create(actor, in)
	if err != nil {
		renderServerError(c, err)
		return
	}
	if v != nil {
		books, err := h.instances.FormChoices()
		if err != nil {
			renderServerError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"title":        "Create BookInstance",
			"bookinstance": in,
			"book_list":    books,
			"status_list":  models.InstanceStatuses,
			"errors":       v.Errors,
		})
		return
	}

	c.Redirect(http.StatusFound, instance.URL())
}

// UpdateGet renders the form pre-filled with the stored record.
// GET /catalog/bookinstance/:id/update
func (h *BookInstanceHandler) UpdateGet(c *gin.Context) {
	instance, err := h.instances.Detail(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	books, err := h.instances.FormChoices()
	if err != nil {
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":        "Update BookInstance",
		"bookinstance": instance,
		"book_list":    books,
		"status_list":  models.InstanceStatuses,
	})
}

// UpdatePost validates and replaces the stored record.
// POST /catalog/bookinstance/:id/update
func (h *BookInstanceHandler) UpdatePost(c *gin.Context) {
	in := instanceInputFromForm(c)
	actor := h.sessions.Username(c.Request.Context())

	instance, v, err := h.instances.Update(actor, c.Param("id"), in)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}
	if v != nil {
		books, err := h.instances.FormChoices()
		if err != nil {
			renderServerError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"title":        "Update BookInstance",
			"bookinstance": in,
			"book_list":    books,
			"status_list":  models.InstanceStatuses,
			"errors":       v.Errors,
		})
		return
	}

	c.Redirect(http.StatusFound, instance.URL())
}

// DeleteGet renders the confirmation page. Copies are leaf records, so
// there are no dependents to list.
// GET /catalog/bookinstance/:id/delete
func (h *BookInstanceHandler) DeleteGet(c *gin.Context) {
	instance, err := h.instances.ConfirmDelete(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":        "Delete BookInstance",
		"bookinstance": instance,
	})
}

// DeletePost deletes the copy unconditionally.
// POST /catalog/bookinstance/:id/delete
func (h *BookInstanceHandler) DeletePost(c *gin.Context) {
	actor := h.sessions.Username(c.Request.Context())

	if _, err := h.instances.Delete(actor, c.Param("id")); err != nil {
		renderServerError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/catalog/bookinstances")
}
