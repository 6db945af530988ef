package middlewares

import (
	"net/http"

	"exchange-frontend/internal/models"
)

//go:generate mockgen -source=session_provider.go -destination=../mocks/session.go -package=mocks

type SessionProvider interface {
	SetUser(ctx *AppContext, user *models.User)
	GetUser(ctx *AppContext) (user *models.User, ok bool)
	ClearUser(ctx *AppContext)
	SetBackendToken(ctx *AppContext, token string)
	GetBackendToken(ctx *AppContext) string
	IntentKey(ctx *AppContext) string
	SetOauthState(ctx *AppContext, state string)
	GetOauthState(ctx *AppContext) string
	ClearOauthState(ctx *AppContext)
	SetOauthNonce(ctx *AppContext, nonce string)
	GetOauthNonce(ctx *AppContext) string
	ClearOauthNonce(ctx *AppContext)
	SetOauthCodeVerifier(ctx *AppContext, verifier string)
	GetOauthCodeVerifier(ctx *AppContext) string
	ClearOauthCodeVerifier(ctx *AppContext)
	IsAuthenticated(ctx *AppContext) bool
	Destroy(ctx *AppContext) error

	LoadAndSave(next http.Handler) http.Handler
}
