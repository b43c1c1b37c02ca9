package globals

// JwtSecret is set once from config in main before the server starts.
var JwtSecret []byte

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const UsernameKey ContextKey = "username"
