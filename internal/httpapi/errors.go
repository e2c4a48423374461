package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kocory1/AllFamilyAI/internal/apperr"
)

// statusFor maps an apperr.Kind to the status code §7 assigns it.
// InvalidInput never reaches the core in practice (binding rejects a
// malformed body first), but a use case can still surface it when a DTO
// passes binding yet fails a domain invariant (e.g. an empty family id
// hidden behind a non-empty string check elsewhere), so it is mapped
// here too.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.InvalidInput:
		return http.StatusUnprocessableEntity
	case apperr.NotFound:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as the uniform error body, classifying it via
// apperr when possible and falling back to 500 for anything unclassified
// (a transport error a port returned unwrapped, for instance).
func respondError(c *gin.Context, err error) {
	kind, ok := apperr.KindOf(err)
	status := http.StatusInternalServerError
	if ok {
		status = statusFor(kind)
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}
