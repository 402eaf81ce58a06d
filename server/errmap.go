package server

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/Luismorlan/tweetmux/model"
	Logger "github.com/Luismorlan/tweetmux/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// ErrorResponse is what a registered failure mode renders to: an HTTP
// status plus the symbolic type and human message of the error envelope.
type ErrorResponse struct {
	Status  int
	Type    string
	Message string
}

var (
	registryMu sync.RWMutex

	// errorRegistry maps each domain failure mode to its response. Callers
	// may register additional kinds at runtime; lookup is by exact kind.
	errorRegistry = map[model.ErrorKind]ErrorResponse{
		model.ErrKindImageValidation: {
			Status:  http.StatusBadRequest,
			Type:    "ImageValidationError",
			Message: "Failed attempt to upload a photo",
		},
		model.ErrKindSelfFollow: {
			Status:  http.StatusBadRequest,
			Type:    "SelfFollowingValidationError",
			Message: "It is impossible to subscribe to yourself",
		},
		model.ErrKindSelfUnfollow: {
			Status:  http.StatusBadRequest,
			Type:    "SelfUnFollowingValidationError",
			Message: "It is impossible to unsubscribe to yourself",
		},
		model.ErrKindUserNotFound:  idValidationResponse,
		model.ErrKindTweetNotFound: idValidationResponse,
		model.ErrKindMediaNotFound: idValidationResponse,
		model.ErrKindLikeNotFound: {
			Status:  http.StatusBadRequest,
			Type:    "LikeValidationError",
			Message: "Nothing to delete",
		},
	}
)

var idValidationResponse = ErrorResponse{
	Status:  http.StatusBadRequest,
	Type:    "IDValidationError",
	Message: "The provided id could not be found",
}

// RegisterError adds or replaces the response for a domain error kind.
func RegisterError(kind model.ErrorKind, resp ErrorResponse) {
	registryMu.Lock()
	defer registryMu.Unlock()
	errorRegistry[kind] = resp
}

func lookupError(kind model.ErrorKind) (ErrorResponse, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	resp, ok := errorRegistry[kind]
	return resp, ok
}

// ErrorBoundary is the single translation layer between failures and HTTP
// responses. It renders errors recorded by handlers and converts panics
// into the generic 500 envelope; the real error detail stays in server
// logs only.
func ErrorBoundary() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				Logger.Log.Error("panic while handling request: ", r)
				renderGenericError(c, fmt.Errorf("%v", r))
			}
		}()
		c.Next()
		if len(c.Errors) > 0 {
			RenderError(c, c.Errors.Last().Err)
		}
	}
}

// RenderError writes the error envelope for err.
func RenderError(c *gin.Context, err error) {
	Logger.Log.WithError(err).Warn("request failed")

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		if resp, ok := lookupError(domainErr.Kind); ok {
			c.JSON(resp.Status, gin.H{
				"result":        false,
				"error_type":    resp.Type,
				"error_message": resp.Message,
			})
			return
		}
	}

	if model.IsUniqueViolation(err) {
		c.JSON(http.StatusBadRequest, gin.H{
			"result":        false,
			"error_type":    "UniqueDataError",
			"error_message": "the transferred data is already exists",
		})
		return
	}

	renderGenericError(c, err)
}

func renderGenericError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"result":        false,
		"error_type":    fmt.Sprintf("%T", errors.Cause(err)),
		"error_message": "Something went wrong on the server side",
	})
}

// RenderValidationError is the response for malformed input: bad JSON,
// missing fields, non-positive path ids, missing upload.
func RenderValidationError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"result":        false,
		"error_type":    "Request Validation Error",
		"error_message": "Invalid input was sent. Please review the API documentation for correct input formats.",
	})
}
