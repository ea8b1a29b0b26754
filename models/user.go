package models

// Roles carried in the JWT. Every self-registered account starts as a
// socio (club member); admins are promoted directly in the store.
const (
	RoleSocio = "socio"
	RoleAdmin = "admin"
)

type User struct {
	UserID   string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Phone    string `json:"phone" bson:"phone"`
	Password string `json:"-" bson:"password"` // bcrypt hash, never serialized out
	Role     string `json:"role" bson:"role"`
}
