package enums

// Keys of the persisted session entries. Each one is stored as an
// individual opaque string.
const (
	SessionKeyToken     = "token"
	SessionKeyUserID    = "userId"
	SessionKeyEmail     = "email"
	SessionKeyFirstName = "firstName"
	SessionKeyLastName  = "lastName"
)

type SessionBackend string

const (
	SessionBackendFile   SessionBackend = "file"
	SessionBackendRedis  SessionBackend = "redis"
	SessionBackendMemory SessionBackend = "memory"
)
