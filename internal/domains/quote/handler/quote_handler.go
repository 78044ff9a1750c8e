package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quotes-api/internal/domains/quote/model"
	"quotes-api/internal/domains/quote/service"
	"quotes-api/internal/shared/apperror"
	"quotes-api/internal/shared/response"
	"quotes-api/internal/shared/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type QuoteHandler struct {
	service service.ServiceInterface
}

func NewQuoteHandler(svc service.ServiceInterface) *QuoteHandler {
	return &QuoteHandler{service: svc}
}

// ════════════════════════════════════════════════════════════════
// READ
// ════════════════════════════════════════════════════════════════

// List - GET /quotes?sort_by=rating&order=desc
func (h *QuoteHandler) List(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	quotes, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, model.ToResponses(quotes))
}

// ListByAuthor - GET /authors/:id/quotes
func (h *QuoteHandler) ListByAuthor(c *gin.Context) {
	authorID, ok := parseID(c)
	if !ok {
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	quotes, err := h.service.ListByAuthor(c.Request.Context(), authorID, filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, model.ToResponses(quotes))
}

// Filter - GET /quotes/filter?author=twain
func (h *QuoteHandler) Filter(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	quotes, err := h.service.FilterByAuthorName(c.Request.Context(), c.Query("author"), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, model.ToResponses(quotes))
}

// GetByID - GET /quotes/:id
func (h *QuoteHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	q, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, q.ToResponse())
}

// Count - GET /quotes/count
func (h *QuoteHandler) Count(c *gin.Context) {
	n, err := h.service.Count(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Count(c, n)
}

// Random - GET /quotes/random
func (h *QuoteHandler) Random(c *gin.Context) {
	q, err := h.service.Random(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, q.ToResponse())
}

// Export - GET /quotes/export
func (h *QuoteHandler) Export(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	f, err := h.service.ExportToExcel(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close export workbook")
		}
	}()

	buf, err := f.WriteToBuffer()
	if err != nil {
		_ = c.Error(fmt.Errorf("failed to write export: %w", err))
		return
	}

	filename := fmt.Sprintf("quotes_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ════════════════════════════════════════════════════════════════
// CREATE
// ════════════════════════════════════════════════════════════════

// Create - POST /quotes
func (h *QuoteHandler) Create(c *gin.Context) {
	var req model.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.InvalidBody(err))
		return
	}

	q, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respondCreated(c, q)
}

// CreateForAuthor - POST /authors/:id/quotes
func (h *QuoteHandler) CreateForAuthor(c *gin.Context) {
	authorID, ok := parseID(c)
	if !ok {
		return
	}

	var req model.CreateAuthorQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.InvalidBody(err))
		return
	}

	q, err := h.service.CreateForAuthor(c.Request.Context(), authorID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	respondCreated(c, q)
}

// ════════════════════════════════════════════════════════════════
// UPDATE
// ════════════════════════════════════════════════════════════════

// Update - PUT /quotes/:id
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.InvalidBody(err))
		return
	}

	q, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, q.ToResponse())
}

// IncreaseRating - PATCH /quotes/:id/increase_rating
func (h *QuoteHandler) IncreaseRating(c *gin.Context) {
	h.adjustRating(c, h.service.IncreaseRating)
}

// DecreaseRating - PATCH /quotes/:id/decrease_rating
func (h *QuoteHandler) DecreaseRating(c *gin.Context) {
	h.adjustRating(c, h.service.DecreaseRating)
}

func (h *QuoteHandler) adjustRating(c *gin.Context, adjust func(ctx context.Context, id int64) (*model.Quote, error)) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	q, err := adjust(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, q.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /quotes/:id
// ════════════════════════════════════════════════════════════════

func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	response.Message(c, http.StatusOK, fmt.Sprintf("Quote with id %d was deleted.", id))
}

func respondCreated(c *gin.Context, q *model.Quote) {
	response.Entity(c, http.StatusCreated, "quote", q.ToResponse(),
		fmt.Sprintf("Quote with id %d was created.", q.ID))
}

func parseFilter(c *gin.Context) (model.QuoteFilter, bool) {
	filter, err := model.NewQuoteFilter(c.Query("sort_by"), c.Query("order"))
	if err != nil {
		_ = c.Error(err)
		return model.QuoteFilter{}, false
	}
	return filter, true
}

func parseID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, ok := utils.ParseID(raw)
	if !ok {
		_ = c.Error(apperror.InvalidID(raw))
	}
	return id, ok
}
