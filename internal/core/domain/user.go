package domain

// Role is the authorization role carried by a token.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDoctor    Role = "doctor"
	RoleFrontDesk Role = "secretariat"
	RolePatient   Role = "patient"

	// RoleService is the fixed role of tokens minted by the appointments
	// service for calls into the identity service.
	RoleService Role = "appointments-service"
)

// UserRoles lists the roles a user account may hold.
var UserRoles = []Role{RoleAdmin, RoleDoctor, RoleFrontDesk, RolePatient}

// IsUserRole reports whether r can be assigned to a user account.
func (r Role) IsUserRole() bool {
	for _, ur := range UserRoles {
		if r == ur {
			return true
		}
	}
	return false
}

// User is an account that can log in.
type User struct {
	ID       int64  `json:"id_usuario"`
	Username string `json:"username"`
	Password string `json:"-"`
	Role     Role   `json:"rol"`
}

// Actor is the authenticated caller of a request.
//
// UserID is set for user tokens only. ProxiedRole is set for service tokens
// only and may be empty when the service acts on its own behalf.
type Actor struct {
	Role        Role
	UserID      int64
	ProxiedRole Role
}

// IsService reports whether the actor authenticated with a service token.
func (a Actor) IsService() bool {
	return a.Role == RoleService
}

// ActsAs reports whether the actor is a service token proxying role r.
func (a Actor) ActsAs(r Role) bool {
	return a.IsService() && a.ProxiedRole == r
}
