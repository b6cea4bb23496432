package internal

const (
	COOKIE_SESSION_NAME  = "rotom_session"
	COOKIE_REDIRECT_NAME = "rotom_redirect"
)
