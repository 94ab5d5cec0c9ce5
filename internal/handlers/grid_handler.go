package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"listing-builder-service/internal/grid"
	"listing-builder-service/internal/models"
	"listing-builder-service/internal/session"
)

// GridHandler exposes the row-grid operations of an authoring session.
type GridHandler struct {
	sessions *SessionsHandler
	store    session.Store
	logger   *logrus.Entry
}

func NewGridHandler(sessions *SessionsHandler, store session.Store, logger *logrus.Logger) *GridHandler {
	return &GridHandler{
		sessions: sessions,
		store:    store,
		logger:   logger.WithField("component", "grid"),
	}
}

// Materialize re-seeds the row grid from the session's descriptors. This is a
// destructive reset: prior edits are discarded, because a row whose identity
// changed underneath it cannot keep its edits meaningfully.
// POST /api/v1/sessions/:id/rows/materialize
func (h *GridHandler) Materialize(c *gin.Context) {
	sess, ok := h.sessions.loadSession(c)
	if !ok {
		return
	}

	var req models.MaterializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.VariantType != models.VariantTypeSingle && req.VariantType != models.VariantTypeMulti {
		badRequest(c, "VALIDATION_ERROR", "variantType must be 'single' or 'multi'")
		return
	}

	sess.VariantType = req.VariantType
	sess.Rows = grid.Materialize(req.VariantType, sess.Descriptors)
	sess.Focused = nil

	h.save(c, sess)
}

// UpdateCell sets one field on one row and runs derived recomputation.
// PUT /api/v1/sessions/:id/rows/:index
func (h *GridHandler) UpdateCell(c *gin.Context) {
	sess, ok := h.sessions.loadSession(c)
	if !ok {
		return
	}
	index, ok := h.rowIndex(c)
	if !ok {
		return
	}

	var req models.UpdateCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := grid.UpdateCell(sess.Rows, index, req.Field, req.Value); err != nil {
		badRequest(c, "CELL_UPDATE_REJECTED", err.Error())
		return
	}

	h.save(c, sess)
}

// AddRow appends one blank row.
// POST /api/v1/sessions/:id/rows
func (h *GridHandler) AddRow(c *gin.Context) {
	sess, ok := h.sessions.loadSession(c)
	if !ok {
		return
	}
	sess.Rows = grid.AddRow(sess.Rows)
	h.save(c, sess)
}

// DuplicateRow appends a copy of a row with its unique fields cleared.
// POST /api/v1/sessions/:id/rows/:index/duplicate
func (h *GridHandler) DuplicateRow(c *gin.Context) {
	sess, ok := h.sessions.loadSession(c)
	if !ok {
		return
	}
	index, ok := h.rowIndex(c)
	if !ok {
		return
	}

	rows, err := grid.DuplicateRow(sess.Rows, index)
	if err != nil {
		badRequest(c, "INVALID_ROW", err.Error())
		return
	}
	sess.Rows = rows
	h.save(c, sess)
}

// RemoveRow deletes a row. Removing the last remaining row is a no-op: at
// least one row always exists.
// DELETE /api/v1/sessions/:id/rows/:index
func (h *GridHandler) RemoveRow(c *gin.Context) {
	sess, ok := h.sessions.loadSession(c)
	if !ok {
		return
	}
	index, ok := h.rowIndex(c)
	if !ok {
		return
	}

	rows, removed := grid.RemoveRow(sess.Rows, index)
	sess.Rows = rows
	if !removed {
		c.JSON(http.StatusOK, models.SuccessResponse{
			Success: true,
			Data:    sess.Rows,
			Message: strPtr("Row not removed: at least one row must remain"),
		})
		return
	}
	h.save(c, sess)
}

// FillDown copies a cell's value into the immediately following row.
// POST /api/v1/sessions/:id/rows/fill-down
func (h *GridHandler) FillDown(c *gin.Context) {
	h.fill(c, grid.FillDown)
}

// FillAllBelow copies a cell's value into every row strictly below it.
// POST /api/v1/sessions/:id/rows/fill-all-below
func (h *GridHandler) FillAllBelow(c *gin.Context) {
	h.fill(c, grid.FillAllBelow)
}

func (h *GridHandler) fill(c *gin.Context, op func([]models.ListingRow, int, string)) {
	sess, ok := h.sessions.loadSession(c)
	if !ok {
		return
	}

	var req models.FillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}

	// Default to the focused cell: the fill affordances are gated on focus.
	rowIndex, columnKey := -1, req.ColumnKey
	if req.RowIndex != nil {
		rowIndex = *req.RowIndex
	} else if sess.Focused != nil {
		rowIndex = sess.Focused.RowIndex
	}
	if columnKey == "" && sess.Focused != nil {
		columnKey = sess.Focused.ColumnKey
	}
	if rowIndex < 0 || columnKey == "" {
		badRequest(c, "NO_TARGET_CELL", "No cell addressed and no cell focused")
		return
	}

	op(sess.Rows, rowIndex, columnKey)
	h.save(c, sess)
}

func (h *GridHandler) rowIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, "INVALID_ROW", "Invalid row index")
		return 0, false
	}
	return index, true
}

func (h *GridHandler) save(c *gin.Context, sess *models.Session) {
	if err := h.store.Put(c.Request.Context(), sess); err != nil {
		h.logger.WithError(err).Error("Failed to persist grid change")
		internalError(c, "SESSION_SAVE_FAILED", "Failed to save session")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: sess.Rows})
}

func strPtr(s string) *string {
	return &s
}
