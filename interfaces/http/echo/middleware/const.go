package middleware

const (
	SessionCookie     = "Session"
	RequestSessionKey = "requestSession"
	TokenKey          = "requestToken"
	Authorization     = "Authorization"
	BearerPrefix      = "Bearer "
)
