package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/kelime/internal/database/words"
	"github.com/mrlokans/kelime/internal/http/middleware"
	"github.com/mrlokans/kelime/internal/logging"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // machine-readable error code
}

// ChangeResponse reports the outcome of a mutation on a single word.
type ChangeResponse struct {
	Message string `json:"message"`
	Changes int64  `json:"changes"`
}

// CreatedResponse is returned when a word was added.
type CreatedResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

// Error codes carried in ErrorResponse.Code.
const (
	CodeValidation         = "validation_error"
	CodeDuplicateWord      = "duplicate_word"
	CodeNotFound           = "not_found"
	CodeStorageUnavailable = "storage_unavailable"
)

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: CodeValidation})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: CodeNotFound})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, log *logging.Logger, err error, context string) {
	if log != nil {
		log.Error("Internal error", "context", context, "error", err, "request_id", c.GetString(middleware.ContextKeyRequestID))
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: CodeStorageUnavailable})
}

// respondStoreError maps a word store error onto its HTTP status class.
func respondStoreError(c *gin.Context, log *logging.Logger, err error, context string) {
	switch {
	case errors.Is(err, words.ErrInvalidWord):
		respondBadRequest(c, err.Error())
	case errors.Is(err, words.ErrDuplicateWord):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "word already exists", Code: CodeDuplicateWord})
	case errors.Is(err, words.ErrNotFound):
		respondNotFound(c, "word")
	default:
		respondInternalError(c, log, err, context)
	}
}

// --- Success Response Helpers ---

func respondChange(c *gin.Context, message string, changes int64) {
	c.JSON(http.StatusOK, ChangeResponse{Message: message, Changes: changes})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseBoolQuery reads an optional boolean query parameter. A missing
// parameter yields false; anything strconv.ParseBool rejects is a 400.
func parseBoolQuery(c *gin.Context, paramName string) (bool, bool) {
	raw := c.Query(paramName)
	if raw == "" {
		return false, true
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		respondBadRequest(c, paramName+" must be a boolean")
		return false, false
	}
	return value, true
}
