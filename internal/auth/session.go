package auth

import (
	"context"
	"encoding/gob"
	"fmt"
	"log/slog"
	"net/http"

	"exchange-frontend/internal/config"
	"exchange-frontend/internal/middlewares"
	"exchange-frontend/internal/models"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type SessionManager struct {
	*scs.SessionManager
}

func NewSessionManager(logger *slog.Logger, cfg *config.Config) (*SessionManager, error) {
	gob.Register(&models.User{})
	sessionManager := scs.New()

	switch cfg.Sessions.Store {
	case "memory":
		sessionManager.Store = memstore.New()
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Address,
			Username:     cfg.Redis.Username,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.SessionIndex,
			MinIdleConns: 2,
		})

		ctx := context.Background()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}

		sessionManager.Store = goredisstore.New(client)
	default:
		return nil, fmt.Errorf("unsupported session store: %s", cfg.Sessions.Store)
	}

	sessionManager.Lifetime = cfg.Sessions.FixedTimeout

	sessionManager.Cookie.Name = cfg.Sessions.Name
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Sessions.Secure
	sessionManager.Cookie.Path = "/"

	return &SessionManager{SessionManager: sessionManager}, nil
}

func (s *SessionManager) LoadAndSave(next http.Handler) http.Handler {
	return s.SessionManager.LoadAndSave(next)
}

func (s *SessionManager) SetUser(ctx *middlewares.AppContext, user *models.User) {
	s.Put(ctx, string(SessionKeyUserData), user)
}

func (s *SessionManager) GetUser(ctx *middlewares.AppContext) (user *models.User, ok bool) {
	data := s.Get(ctx, string(SessionKeyUserData))
	if data == nil {
		return nil, false
	}

	if user, ok := data.(*models.User); ok {
		return user, true
	}

	return nil, false
}

func (s *SessionManager) ClearUser(ctx *middlewares.AppContext) {
	s.Remove(ctx, string(SessionKeyUserData))
}

func (s *SessionManager) SetBackendToken(ctx *middlewares.AppContext, token string) {
	s.Put(ctx, string(SessionKeyBackendToken), token)
}

func (s *SessionManager) GetBackendToken(ctx *middlewares.AppContext) string {
	return s.GetString(ctx, string(SessionKeyBackendToken))
}

// IntentKey returns the stable key the redirect intent slot is stored under
// for this session, creating one on first use. The key lives in the session
// so it survives the round trip to the OAuth provider.
func (s *SessionManager) IntentKey(ctx *middlewares.AppContext) string {
	if key := s.GetString(ctx, string(SessionKeyIntentKey)); key != "" {
		return key
	}

	key := uuid.New().String()
	s.Put(ctx, string(SessionKeyIntentKey), key)

	return key
}

func (s *SessionManager) SetOauthState(ctx *middlewares.AppContext, state string) {
	s.Put(ctx, string(SessionKeyOauthState), state)
}

func (s *SessionManager) GetOauthState(ctx *middlewares.AppContext) string {
	return s.GetString(ctx, string(SessionKeyOauthState))
}

func (s *SessionManager) ClearOauthState(ctx *middlewares.AppContext) {
	s.Remove(ctx, string(SessionKeyOauthState))
}

func (s *SessionManager) SetOauthNonce(ctx *middlewares.AppContext, nonce string) {
	s.Put(ctx, string(SessionKeyOauthNonce), nonce)
}

func (s *SessionManager) GetOauthNonce(ctx *middlewares.AppContext) string {
	return s.GetString(ctx, string(SessionKeyOauthNonce))
}

func (s *SessionManager) ClearOauthNonce(ctx *middlewares.AppContext) {
	s.Remove(ctx, string(SessionKeyOauthNonce))
}

func (s *SessionManager) SetOauthCodeVerifier(ctx *middlewares.AppContext, verifier string) {
	s.Put(ctx, string(SessionKeyOauthCodeVerifier), verifier)
}

func (s *SessionManager) GetOauthCodeVerifier(ctx *middlewares.AppContext) string {
	return s.GetString(ctx, string(SessionKeyOauthCodeVerifier))
}

func (s *SessionManager) ClearOauthCodeVerifier(ctx *middlewares.AppContext) {
	s.Remove(ctx, string(SessionKeyOauthCodeVerifier))
}

func (s *SessionManager) IsAuthenticated(ctx *middlewares.AppContext) bool {
	_, ok := s.GetUser(ctx)
	return ok
}

func (s *SessionManager) Destroy(ctx *middlewares.AppContext) error {
	return s.SessionManager.Destroy(ctx.Request.Context())
}
