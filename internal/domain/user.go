package domain

// UserRole represents the role of a dashboard user.
type UserRole string

const (
	UserRoleManager    UserRole = "Manager"
	UserRoleDispatcher UserRole = "Dispatcher"
)

// User represents a dashboard user. Users are records for attribution and
// role display; this service performs no authentication.
type User struct {
	ID    string
	Name  string
	Email string
	Role  UserRole
}
