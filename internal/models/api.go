package models

// Error is the wire-level error detail shared by all endpoints.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Success bool  `json:"success"`
	Error   Error `json:"error"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}

type PaginationInfo struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// CreateSessionRequest starts an authoring session.
type CreateSessionRequest struct {
	VariantType VariantType `json:"variantType" binding:"required"`
}

// SessionResponse wraps a full session snapshot.
type SessionResponse struct {
	Success bool     `json:"success"`
	Data    *Session `json:"data"`
	Message *string  `json:"message,omitempty"`
}

// SetSelectionRequest replaces one of the three selection sets.
type SetSelectionRequest struct {
	Values []string `json:"values"`
}

// SelectorOptionsResponse reports the derived options and the current
// cartesian product for a session.
type SelectorOptionsResponse struct {
	Success        bool                `json:"success"`
	StorageOptions []Option            `json:"storageOptions"`
	ColorOptions   []Option            `json:"colorOptions"`
	Descriptors    []VariantDescriptor `json:"descriptors"`
}

// UpdateCellRequest sets one field on one row.
type UpdateCellRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// FillRequest addresses a cell for fill-down / fill-all-below. When RowIndex
// or ColumnKey is omitted the session's focused cell is used.
type FillRequest struct {
	RowIndex  *int   `json:"rowIndex,omitempty"`
	ColumnKey string `json:"columnKey,omitempty"`
}

// FocusRequest sets or clears the focused cell.
type FocusRequest struct {
	Focused *FocusedCell `json:"focused"`
}

// MaterializeRequest re-seeds the row grid. Switching variant type or
// re-materializing is a destructive reset of all prior edits.
type MaterializeRequest struct {
	VariantType VariantType `json:"variantType" binding:"required"`
}

// SubmitRequest finalizes the grid. The validation sweep is advisory: with
// Force set the batch is submitted even when violations exist.
type SubmitRequest struct {
	Force bool `json:"force"`
}

// SubmitResponse reports the sweep outcome and, when submitted, the
// collaborator's result.
type SubmitResponse struct {
	Success    bool              `json:"success"`
	Submitted  bool              `json:"submitted"`
	Violations []string          `json:"violations,omitempty"`
	Result     *BulkCreateResult `json:"result,omitempty"`
}

// BulkCreateResult is the listings collaborator's response, relayed as-is.
type BulkCreateResult struct {
	Success      bool     `json:"success"`
	TotalCount   int      `json:"totalCount"`
	SuccessCount int      `json:"successCount"`
	FailedCount  int      `json:"failedCount"`
	Errors       []Error  `json:"errors,omitempty"`
	CreatedIDs   []string `json:"createdIds,omitempty"`
}

// SaveDraftRequest saves the current session under a name.
type SaveDraftRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Name      string `json:"name" binding:"required"`
}

type DraftResponse struct {
	Success bool    `json:"success"`
	Data    *Draft  `json:"data"`
	Message *string `json:"message,omitempty"`
}

type DraftListResponse struct {
	Success    bool            `json:"success"`
	Data       []Draft         `json:"data"`
	Pagination *PaginationInfo `json:"pagination"`
}
