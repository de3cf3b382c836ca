package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/fala-hotels/fala-api/internal/middleware"
	"github.com/fala-hotels/fala-api/internal/pkg/errorhandler"
	"github.com/fala-hotels/fala-api/internal/pkg/identity"
	"github.com/fala-hotels/fala-api/internal/pkg/response"
)

// IdentityClient is the subset of the identity provider client the session
// endpoints need.
type IdentityClient interface {
	LoginURL(redirectURI, state string) string
	LogoutURL(redirectURI string) string
	RefreshToken(ctx context.Context, refreshToken string) (*identity.TokenSet, error)
	LoadUserProfile(ctx context.Context, accessToken string) (*identity.UserProfile, error)
}

// SessionCleaner drops per-user cached state when a session ends.
type SessionCleaner interface {
	Invalidate(ctx context.Context, userID uuid.UUID)
}

type Handler struct {
	identity    IdentityClient
	cache       SessionCleaner
	frontendURL string
}

func NewHandler(client IdentityClient, cache SessionCleaner, frontendURL string) *Handler {
	return &Handler{identity: client, cache: cache, frontendURL: frontendURL}
}

// LoginURL returns the identity provider's interactive login URL. The actual
// credential exchange happens on the provider, never here.
func (h *Handler) LoginURL(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	redirectURI := r.URL.Query().Get("redirectUri")
	if redirectURI == "" {
		redirectURI = h.frontendURL + "/auth/callback"
	}

	response.OK(w, map[string]string{
		"loginUrl": h.identity.LoginURL(redirectURI, state),
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh exchanges a refresh token for a fresh token set.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.RefreshToken == "" {
		response.BadRequest(w, "refreshToken is required")
		return
	}

	tokens, err := h.identity.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, identity.ErrExpiredToken) || errors.Is(err, identity.ErrInvalidToken) {
			response.Unauthorized(w, "Session expired. Please sign in again.")
			return
		}
		errorhandler.LogExternalServiceError(r.Context(), "identity", "token refresh", err)
		errorhandler.HandleError(r.Context(), w, http.StatusBadGateway, errorhandler.UserMessage(http.StatusBadGateway), err)
		return
	}

	response.OK(w, tokens)
}

// Me returns the signed-in user's profile from the identity provider.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetAccessToken(r.Context())
	if token == "" {
		response.Unauthorized(w, errorhandler.UserMessage(http.StatusUnauthorized))
		return
	}

	profile, err := h.identity.LoadUserProfile(r.Context(), token)
	if err != nil {
		if errors.Is(err, identity.ErrExpiredToken) {
			response.Unauthorized(w, "Session expired. Please sign in again.")
			return
		}
		errorhandler.LogExternalServiceError(r.Context(), "identity", "userinfo", err)
		errorhandler.HandleError(r.Context(), w, http.StatusBadGateway, errorhandler.UserMessage(http.StatusBadGateway), err)
		return
	}

	response.OK(w, profile)
}

// Logout ends the session on this side: cached per-user state is dropped and
// the client gets the provider's logout URL to finish the front-channel flow.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, errorhandler.UserMessage(http.StatusUnauthorized))
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(r.Context(), userID)
	}

	response.OK(w, map[string]string{
		"logoutUrl": h.identity.LogoutURL(h.frontendURL),
	})
}
