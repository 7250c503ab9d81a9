package domain

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type UserStatus int

const (
	UserStatusInactive UserStatus = 0
	UserStatusActive   UserStatus = 1
)

type User struct {
	ID       int32      `json:"id"`
	Name     string     `json:"name"`
	Surname  string     `json:"surname"`
	Email    string     `json:"email"`
	Password string     `json:"-"`
	Role     Role       `json:"role"`
	Status   UserStatus `json:"status"`
}

// DisplayName is the "name surname" form stamped onto records.
func (u *User) DisplayName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}

// Actor identifies the authenticated caller of a core operation.
// Passed by value; services never reach back into the request context.
type Actor struct {
	UserID      int32
	DisplayName string
	Role        Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
