package handler

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"     validate:"required"`
}

// updateUserRequest is a partial patch: nil means the field is absent and
// stays unchanged, which is distinct from an explicit zero value.
type updateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
	Active   *bool   `json:"active"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// userResponse is the public projection of an account. The credential
// digest never appears here.
type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

type userListResponse struct {
	Users []userResponse `json:"users"`
}

type messageResponse struct {
	Message string `json:"message"`
}
