package user

// Roles
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// User is a roster entry. The roster is seeded from fixtures and is
// immutable at runtime; Password is a plaintext login handle match and
// must never leave this package un-redacted.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

func (u User) IsStudent() bool {
	return u.Role == RoleStudent
}

// Redact returns the user's public profile, password stripped.
func (u User) Redact() Session {
	return Session{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
		Email:    u.Email,
	}
}

// Session is the redacted profile of the currently authenticated user,
// persisted under its own namespace, separate from the roster.
type Session struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

func (s Session) IsTeacher() bool {
	return s.Role == RoleTeacher
}

func (s Session) IsStudent() bool {
	return s.Role == RoleStudent
}
