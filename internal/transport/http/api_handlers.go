package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/relaychat/relaychat-server/internal/proto"
	"github.com/relaychat/relaychat-server/internal/service/profiles"
	"github.com/relaychat/relaychat-server/internal/store"
)

// APIHandlers provides HTTP handlers for the profile REST endpoints.
type APIHandlers struct {
	profiles *profiles.Service
	log      *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(svc *profiles.Service, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		profiles: svc,
		log:      logger,
	}
}

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// UpdateRequest represents the profile update request body. Avatar stays raw
// so that "absent" and "explicitly null" can be told apart.
type UpdateRequest struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Avatar json.RawMessage `json:"avatar"`
}

// UserResponse is the success envelope for register and update.
type UserResponse struct {
	OK   bool       `json:"ok"`
	User proto.User `json:"user"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Register handles profile registration.
// POST /register
func (h *APIHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid register request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.profiles.Register(req.Name, req.Avatar)
	if err != nil {
		if errors.Is(err, profiles.ErrNameRequired) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name required"})
			return
		}
		h.log.Error().Err(err).Msg("failed to register profile")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, UserResponse{OK: true, User: userFromProfile(user)})
}

// Update handles partial profile updates.
// POST /update
func (h *APIHandlers) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid update request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	avatar, perr := parseAvatar(req.Avatar)
	if perr != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.profiles.Update(req.ID, req.Name, avatar)
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		h.log.Error().Err(err).Str("user_id", req.ID).Msg("failed to update profile")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, UserResponse{OK: true, User: userFromProfile(user)})
}

// ListUsers returns all registered profiles.
// GET /users
func (h *APIHandlers) ListUsers(c *gin.Context) {
	users := lo.Map(h.profiles.List(), func(p store.Profile, _ int) proto.User {
		return userFromProfile(p)
	})
	c.JSON(http.StatusOK, users)
}

// parseAvatar maps the raw avatar field to the service's tri-state argument:
// nil for absent, pointer to "" for JSON null (clear), pointer to the value
// otherwise.
func parseAvatar(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if string(raw) == "null" {
		empty := ""
		return &empty, nil
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
