package contextkeys

type contextKey string

const (
	AuthContextKey contextKey = "AuthContext"
)
