package middlewares

import (
	"exchange-frontend/internal/models"
)

//go:generate mockgen -source=oauth_provider.go -destination=../mocks/oauth.go -package=mocks

// OAuthProvider starts and completes the external OAuth login detour. The
// provider endpoints themselves are opaque to this service.
type OAuthProvider interface {
	// StartLogin stores state/nonce/verifier in the session and returns the
	// authorization URL to hand the browser to.
	StartLogin(ctx *AppContext) (string, error)
	// HandleCallback validates the callback and returns the authenticated
	// user plus the token this service uses against the platform API.
	HandleCallback(ctx *AppContext) (*models.User, string, error)
}
