package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"listing-builder-service/internal/middleware"
	"listing-builder-service/internal/models"
	"listing-builder-service/internal/repository"
	"listing-builder-service/internal/session"
)

// DraftsHandler saves authoring sessions as named drafts and restores them
// into fresh sessions later. Sessions expire; drafts do not.
type DraftsHandler struct {
	repo            *repository.DraftsRepository
	store           session.Store
	defaultPageSize int
	maxPageSize     int
	logger          *logrus.Entry
}

func NewDraftsHandler(repo *repository.DraftsRepository, store session.Store, defaultPageSize, maxPageSize int, logger *logrus.Logger) *DraftsHandler {
	return &DraftsHandler{
		repo:            repo,
		store:           store,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		logger:          logger.WithField("component", "drafts"),
	}
}

// SaveDraft snapshots a live session under a name.
// POST /api/v1/drafts
func (h *DraftsHandler) SaveDraft(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)

	var req models.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "VALIDATION_ERROR", err.Error())
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		badRequest(c, "INVALID_ID", "Invalid session ID")
		return
	}

	sess, err := h.store.Get(c.Request.Context(), tenantID, sessionID)
	if errors.Is(err, session.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "SESSION_NOT_FOUND", Message: "Session not found or expired"},
		})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load session for draft")
		internalError(c, "SESSION_LOAD_FAILED", "Failed to load session")
		return
	}

	draft, err := h.repo.Create(tenantID, req.Name, userID, sess)
	if err != nil {
		h.logger.WithError(err).Error("Failed to save draft")
		internalError(c, "DRAFT_SAVE_FAILED", "Failed to save draft")
		return
	}

	c.JSON(http.StatusCreated, models.DraftResponse{Success: true, Data: draft})
}

// ListDrafts returns a page of the tenant's drafts, newest first.
// GET /api/v1/drafts
func (h *DraftsHandler) ListDrafts(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(h.defaultPageSize)))
	if limit < 1 {
		limit = h.defaultPageSize
	}
	if limit > h.maxPageSize {
		limit = h.maxPageSize
	}

	drafts, total, err := h.repo.List(tenantID, page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list drafts")
		internalError(c, "DRAFT_LIST_FAILED", "Failed to list drafts")
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	c.JSON(http.StatusOK, models.DraftListResponse{
		Success: true,
		Data:    drafts,
		Pagination: &models.PaginationInfo{
			Page:        page,
			Limit:       limit,
			Total:       total,
			TotalPages:  totalPages,
			HasNext:     page < totalPages,
			HasPrevious: page > 1,
		},
	})
}

// GetDraft returns one draft with its payload.
// GET /api/v1/drafts/:id
func (h *DraftsHandler) GetDraft(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	draft, ok := h.loadDraft(c, tenantID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.DraftResponse{Success: true, Data: draft})
}

// RestoreDraft starts a fresh session from a draft's snapshot. The restored
// session gets a new ID and a new expiry; the draft stays untouched.
// POST /api/v1/drafts/:id/restore
func (h *DraftsHandler) RestoreDraft(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	draft, ok := h.loadDraft(c, tenantID)
	if !ok {
		return
	}

	sess, err := h.repo.RestoreSession(draft)
	if err != nil {
		h.logger.WithError(err).Error("Failed to decode draft payload")
		internalError(c, "DRAFT_RESTORE_FAILED", "Failed to restore draft")
		return
	}

	now := time.Now()
	sess.ID = uuid.New()
	sess.TenantID = tenantID
	sess.CreatedAt = now
	sess.UpdatedAt = now

	if err := h.store.Put(c.Request.Context(), sess); err != nil {
		h.logger.WithError(err).Error("Failed to persist restored session")
		internalError(c, "SESSION_SAVE_FAILED", "Failed to restore draft")
		return
	}

	c.JSON(http.StatusCreated, models.SessionResponse{Success: true, Data: sess})
}

// DeleteDraft removes a draft.
// DELETE /api/v1/drafts/:id
func (h *DraftsHandler) DeleteDraft(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "INVALID_ID", "Invalid draft ID")
		return
	}

	err = h.repo.Delete(tenantID, id)
	if errors.Is(err, repository.ErrDraftNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DRAFT_NOT_FOUND", Message: "Draft not found"},
		})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete draft")
		internalError(c, "DRAFT_DELETE_FAILED", "Failed to delete draft")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

func (h *DraftsHandler) loadDraft(c *gin.Context, tenantID string) (*models.Draft, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "INVALID_ID", "Invalid draft ID")
		return nil, false
	}

	draft, err := h.repo.GetByID(tenantID, id)
	if errors.Is(err, repository.ErrDraftNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DRAFT_NOT_FOUND", Message: "Draft not found"},
		})
		return nil, false
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load draft")
		internalError(c, "DRAFT_LOAD_FAILED", "Failed to load draft")
		return nil, false
	}
	return draft, true
}
