package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"listing-builder-service/internal/catalog"
	"listing-builder-service/internal/clients"
	"listing-builder-service/internal/grid"
	"listing-builder-service/internal/middleware"
	"listing-builder-service/internal/models"
	"listing-builder-service/internal/selector"
	"listing-builder-service/internal/session"
)

type SessionsHandler struct {
	store           session.Store
	loader          *catalog.Loader
	listingsClient  *clients.ListingsClient
	listingNoPrefix string
	logger          *logrus.Entry
}

func NewSessionsHandler(store session.Store, loader *catalog.Loader, listingsClient *clients.ListingsClient, listingNoPrefix string, logger *logrus.Logger) *SessionsHandler {
	return &SessionsHandler{
		store:           store,
		loader:          loader,
		listingsClient:  listingsClient,
		listingNoPrefix: listingNoPrefix,
		logger:          logger.WithField("component", "sessions"),
	}
}

// CreateSession starts an authoring session. The facet catalog and the global
// storage list are fetched once here and snapshotted into the session.
// POST /api/v1/sessions
func (h *SessionsHandler) CreateSession(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.VariantType != models.VariantTypeSingle && req.VariantType != models.VariantTypeMulti {
		badRequest(c, "VALIDATION_ERROR", "variantType must be 'single' or 'multi'")
		return
	}

	entries, storages := h.loader.Load(c.Request.Context(), tenantID)

	now := time.Now()
	sess := &models.Session{
		ID:             uuid.New(),
		TenantID:       tenantID,
		VariantType:    req.VariantType,
		Catalog:        entries,
		StorageCatalog: storages,
		Rows:           grid.Materialize(req.VariantType, nil),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.store.Put(c.Request.Context(), sess); err != nil {
		h.logger.WithError(err).Error("Failed to persist new session")
		internalError(c, "SESSION_SAVE_FAILED", "Failed to create session")
		return
	}

	c.JSON(http.StatusCreated, models.SessionResponse{Success: true, Data: sess})
}

// GetSession returns the full session snapshot.
// GET /api/v1/sessions/:id
func (h *SessionsHandler) GetSession(c *gin.Context) {
	sess, ok := h.loadSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.SessionResponse{Success: true, Data: sess})
}

// DeleteSession discards a session.
// DELETE /api/v1/sessions/:id
func (h *SessionsHandler) DeleteSession(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "INVALID_ID", "Invalid session ID")
		return
	}
	if err := h.store.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.logger.WithError(err).Error("Failed to delete session")
		internalError(c, "SESSION_DELETE_FAILED", "Failed to delete session")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// SetModels replaces the model selection; storages and colors are cleared.
// PUT /api/v1/sessions/:id/selection/models
func (h *SessionsHandler) SetModels(c *gin.Context) {
	h.updateSelection(c, func(sel *selector.Selector, values []string) {
		sel.SetModels(values)
	})
}

// SetStorages replaces the storage selection; colors are cleared.
// PUT /api/v1/sessions/:id/selection/storages
func (h *SessionsHandler) SetStorages(c *gin.Context) {
	h.updateSelection(c, func(sel *selector.Selector, values []string) {
		sel.SetStorages(values)
	})
}

// SetColors replaces the color selection.
// PUT /api/v1/sessions/:id/selection/colors
func (h *SessionsHandler) SetColors(c *gin.Context) {
	h.updateSelection(c, func(sel *selector.Selector, values []string) {
		sel.SetColors(values)
	})
}

func (h *SessionsHandler) updateSelection(c *gin.Context, apply func(*selector.Selector, []string)) {
	sess, ok := h.loadSession(c)
	if !ok {
		return
	}

	var req models.SetSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}

	sel := selector.New(sess.Catalog, sess.StorageCatalog, sess.Selection)
	apply(sel, req.Values)

	sess.Selection = sel.Selection()
	sess.Descriptors = sel.Descriptors()

	if err := h.store.Put(c.Request.Context(), sess); err != nil {
		h.logger.WithError(err).Error("Failed to persist selection change")
		internalError(c, "SESSION_SAVE_FAILED", "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, models.SelectorOptionsResponse{
		Success:        true,
		StorageOptions: sel.StorageOptions(),
		ColorOptions:   sel.ColorOptions(),
		Descriptors:    sess.Descriptors,
	})
}

// GetOptions reports the currently derived options and descriptors.
// GET /api/v1/sessions/:id/options
func (h *SessionsHandler) GetOptions(c *gin.Context) {
	sess, ok := h.loadSession(c)
	if !ok {
		return
	}
	sel := selector.New(sess.Catalog, sess.StorageCatalog, sess.Selection)
	c.JSON(http.StatusOK, models.SelectorOptionsResponse{
		Success:        true,
		StorageOptions: sel.StorageOptions(),
		ColorOptions:   sel.ColorOptions(),
		Descriptors:    sel.Descriptors(),
	})
}

// SetFocus sets or clears the focused cell.
// PUT /api/v1/sessions/:id/focus
func (h *SessionsHandler) SetFocus(c *gin.Context) {
	sess, ok := h.loadSession(c)
	if !ok {
		return
	}

	var req models.FocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}

	sess.Focused = req.Focused
	if err := h.store.Put(c.Request.Context(), sess); err != nil {
		internalError(c, "SESSION_SAVE_FAILED", "Failed to save session")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// Submit runs the advisory required-field sweep. Without force it reports the
// violations and stops; with force (or a clean sweep) listing numbers are
// assigned and the batch goes to the listings collaborator in one call.
// POST /api/v1/sessions/:id/submit
func (h *SessionsHandler) Submit(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)

	sess, ok := h.loadSession(c)
	if !ok {
		return
	}

	var req models.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}

	violations := grid.Validate(sess.Rows)
	if len(violations) > 0 && !req.Force {
		c.JSON(http.StatusOK, models.SubmitResponse{
			Success:    true,
			Submitted:  false,
			Violations: violations,
		})
		return
	}

	grid.AssignListingNumbers(sess.Rows, h.listingNoPrefix, time.Now())
	if err := h.store.Put(c.Request.Context(), sess); err != nil {
		h.logger.WithError(err).Error("Failed to persist listing numbers before submit")
		internalError(c, "SESSION_SAVE_FAILED", "Failed to save session")
		return
	}

	result, err := h.listingsClient.BulkCreate(c.Request.Context(), tenantID, userID, sess.Rows)
	if err != nil {
		h.logger.WithError(err).Error("Bulk create failed")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "BULK_CREATE_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SubmitResponse{
		Success:    true,
		Submitted:  true,
		Violations: violations,
		Result:     result,
	})
}

// loadSession resolves the :id session for the request tenant, writing the
// error response itself when the session cannot be served.
func (h *SessionsHandler) loadSession(c *gin.Context) (*models.Session, bool) {
	tenantID := middleware.GetTenantID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "INVALID_ID", "Invalid session ID")
		return nil, false
	}

	sess, err := h.store.Get(c.Request.Context(), tenantID, id)
	if errors.Is(err, session.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "SESSION_NOT_FOUND", Message: "Session not found or expired"},
		})
		return nil, false
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load session")
		internalError(c, "SESSION_LOAD_FAILED", "Failed to load session")
		return nil, false
	}
	return sess, true
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Error:   models.Error{Code: code, Message: message},
	})
}

func internalError(c *gin.Context, code, message string) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Error:   models.Error{Code: code, Message: message},
	})
}
