package auth

import (
	"exchange-frontend/internal/models"

	"github.com/coreos/go-oidc/v3/oidc"
)

// extractUserClaims maps ID token claims onto the platform user record. The
// issuer mirrors the platform's user fields into custom claims so the
// frontend does not need a second identity fetch right after login.
func extractUserClaims(idToken *oidc.IDToken) (*models.User, string, error) {
	var claims struct {
		Nonce               string `json:"nonce"`
		UserID              int64  `json:"user_id"`
		Email               string `json:"email"`
		Nickname            string `json:"nickname"`
		PreferredUsername   string `json:"preferred_username"`
		VerifiedSchoolEmail bool   `json:"verified_school_email"`
		SchoolEmail         string `json:"school_email"`
	}

	if err := idToken.Claims(&claims); err != nil {
		return nil, "", err
	}

	nickname := claims.Nickname
	if nickname == "" {
		nickname = claims.PreferredUsername
	}

	user := &models.User{
		ID:                  claims.UserID,
		Email:               claims.Email,
		Nickname:            nickname,
		LoginType:           models.LoginTypeOAuth,
		VerifiedSchoolEmail: claims.VerifiedSchoolEmail,
		SchoolEmail:         claims.SchoolEmail,
	}

	return user, claims.Nonce, nil
}
