package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quotes-api/internal/domains/author/model"
	"quotes-api/internal/domains/author/service"
	"quotes-api/internal/shared/apperror"
	"quotes-api/internal/shared/response"
	"quotes-api/internal/shared/utils"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.InvalidBody(err))
		return
	}

	a, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Entity(c, http.StatusCreated, "author", a.ToResponse(),
		fmt.Sprintf("Author with id %d was created.", a.ID))
}

// ════════════════════════════════════════════════════════════════
// READ: GET /authors?sort_by=name&order=desc
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) List(c *gin.Context) {
	h.list(c, false)
}

// ListDeleted - GET /authors/deleted
func (h *AuthorHandler) ListDeleted(c *gin.Context) {
	h.list(c, true)
}

func (h *AuthorHandler) list(c *gin.Context, deleted bool) {
	filter, err := model.NewAuthorFilter(c.Query("sort_by"), c.Query("order"), deleted)
	if err != nil {
		_ = c.Error(err)
		return
	}

	authors, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, model.ToResponses(authors))
}

// GetByID - GET /authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, a.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /authors/:id  (only keys present in the body)
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.InvalidBody(err))
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, a.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /authors/:id[?permanent=true]
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	permanent := false
	if raw := c.Query("permanent"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			_ = c.Error(apperror.InvalidRequest("permanent must be true or false"))
			return
		}
		permanent = v
	}

	if err := h.service.Delete(c.Request.Context(), id, permanent); err != nil {
		_ = c.Error(err)
		return
	}

	if permanent {
		response.Message(c, http.StatusOK, fmt.Sprintf("Author with id %d was permanently deleted.", id))
		return
	}
	response.Message(c, http.StatusOK, fmt.Sprintf("Author with id %d was deleted.", id))
}

// Restore - POST /authors/:id/restore
func (h *AuthorHandler) Restore(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	a, err := h.service.Restore(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Entity(c, http.StatusOK, "author", a.ToResponse(),
		fmt.Sprintf("Author with id %d was restored.", a.ID))
}

func parseID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, ok := utils.ParseID(raw)
	if !ok {
		_ = c.Error(apperror.InvalidID(raw))
	}
	return id, ok
}
