package auth

type SessionKey string

var (
	SessionKeyUserData          SessionKey = "user_data"
	SessionKeyBackendToken      SessionKey = "backend_token"
	SessionKeyIntentKey         SessionKey = "intent_key"
	SessionKeyOauthState        SessionKey = "oauth_state"
	SessionKeyOauthNonce        SessionKey = "oauth_nonce"
	SessionKeyOauthCodeVerifier SessionKey = "oauth_code_verifier"
)
