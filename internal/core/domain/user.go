package domain

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Where the identity's role was taken from.
const (
	RoleSourceProfile   = "profile"
	RoleSourceTokenHint = "token_hint"
)

// Identity is the authenticated user's profile plus role, as validated
// against the backend's current-user endpoint.
type Identity struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	Role       string `json:"role"`
	RoleSource string `json:"role_source"`
}

// IsAdmin reports whether the identity carries the admin role. It only gates
// which client routes are offered; the backend enforces authorization.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// ValidRole reports whether role is one the storefront understands.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleCustomer
}

// Profile is the backend's current-user payload.
type Profile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Role    string `json:"role,omitempty"`
}

// Customer is the admin view of a registered account.
type Customer = Profile

// Session is a point-in-time copy of the session state.
type Session struct {
	Token    string    `json:"-"`
	Identity *Identity `json:"identity,omitempty"`
}

// IsAuthenticated is true only when both token and identity are present.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.Identity != nil
}
