package authapi

// Role is a back-office access level as assigned by the backend.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one the backend hands out.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is the summary of the signed-in account as returned by the
// backend. The backend copy is authoritative; anything held locally is
// a cache that must be revalidated after a token refresh.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role"`
}

// TokenPair is a bearer access token with the refresh token used to
// mint its successor. ExpiresIn is the access token lifetime in
// seconds, relative to the moment the backend issued it.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
