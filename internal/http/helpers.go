package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avaldes/biblioteca/internal/auth"
	"github.com/avaldes/biblioteca/internal/database"
	"github.com/avaldes/biblioteca/internal/flows"
)

// GetUserID extracts the authenticated user's ID from the Gin context.
// Returns the empty string when auth is disabled or no user is authenticated.
func GetUserID(c *gin.Context) string {
	return auth.GetUserID(c)
}

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondValidationErrors sends a 400 response carrying the field-keyed
// validation messages. Nothing was written to the store.
func respondValidationErrors(c *gin.Context, errs any) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation failed",
		Code:    "invalid_form",
		Details: errs,
	})
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Flow Result Handling ---

// respondSaveResult translates a flow outcome to the wire: field errors as
// 400, a rejected concurrent save as 409, a missing update target as 404,
// any other store error as 500 with its message preserved, and the saved
// record as 201 (insert) or 200 (update). The client refetches its list
// after a success; no delta is returned.
func respondSaveResult[T any](c *gin.Context, id string, res flows.Result[T]) {
	switch {
	case res.Invalid != nil:
		respondValidationErrors(c, res.Invalid)
	case errors.Is(res.Err, flows.ErrSaveInFlight):
		c.JSON(http.StatusConflict, ErrorResponse{Error: res.Err.Error(), Code: "save_in_flight"})
	case database.IsNotFound(res.Err):
		respondNotFound(c, "record")
	case res.Err != nil:
		log.Printf("Save failed: %v", res.Err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: res.Err.Error()})
	case id == "":
		respondCreated(c, res.Record)
	default:
		c.JSON(http.StatusOK, res.Record)
	}
}

// respondDeleteResult translates a confirmed-delete outcome to the wire.
func respondDeleteResult(c *gin.Context, err error) {
	switch {
	case errors.Is(err, flows.ErrNotConfirmed):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "confirmation_required"})
	case err != nil:
		respondInternalError(c, err, "delete")
	default:
		respondSuccess(c, "deleted")
	}
}

// confirmed reports whether the request carries the explicit confirmation
// every destructive endpoint requires.
func confirmed(c *gin.Context) bool {
	return c.Query("confirm") == "true"
}
