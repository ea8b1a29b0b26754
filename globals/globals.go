package globals

import "context"

// JwtSecret is set from configuration at startup, before the server
// accepts requests.
var JwtSecret = []byte("change_me_in_env")

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

var Ctx = context.Background()
