package utils

import (
	"errors"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError translates service sentinel errors into the API envelope.
// Not-found and access-denied share one 404 message on public paths so an
// unpublished slug is indistinguishable from a missing one.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrContentNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrTagNotFound),
		errors.Is(err, ErrEventNotFound),
		errors.Is(err, ErrPlanNotFound),
		errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Not found")

	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")

	case errors.Is(err, ErrSlugTaken),
		errors.Is(err, ErrSlugImmutable),
		errors.Is(err, ErrContentReferenced),
		errors.Is(err, ErrContentNotForSale),
		errors.Is(err, ErrAlreadyPurchased),
		errors.Is(err, ErrAlreadySubscribed),
		errors.Is(err, ErrNotSubscribed),
		errors.Is(err, ErrAlreadyRSVPed),
		errors.Is(err, ErrNothingToSend):
		RespondError(c, http.StatusConflict, err.Error())

	case errors.Is(err, ErrEventFull):
		RespondError(c, http.StatusConflict, "Event is at capacity")

	case errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrUsernameTaken):
		RespondError(c, http.StatusConflict, err.Error())

	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrInvalidToken):
		RespondError(c, http.StatusBadRequest, "Invalid or expired token")

	case errors.Is(err, ErrDatabaseError), errors.Is(err, ErrMailSendFailed):
		log.Printf("Upstream error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")

	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
