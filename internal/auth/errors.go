package auth

// OAuthError carries both a log message and the URL the browser should be
// redirected to when the login detour fails.
type OAuthError struct {
	RedirectURL string
	Message     string
}

func (e *OAuthError) Error() string {
	return e.Message
}
