package handler

// errorResponse documents the error envelope rendered by the HTTP error
// handler; it exists here for the swagger annotations only.
type errorResponse struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

// --- Request / Response types ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Lastname string `json:"lastname" validate:"required"`
	Email    string `json:"email"    validate:"required,email,endswith=@acme.com"`
	Password string `json:"password" validate:"required,min=12"`
}

type changePassRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=12"`
}

type changePassResponse struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

type changeRoleRequest struct {
	User      string `json:"user"      validate:"required,email"`
	Role      string `json:"role"      validate:"required"`
	Operation string `json:"operation" validate:"required"`
}

type changeAccessRequest struct {
	User      string `json:"user"      validate:"required,email"`
	Operation string `json:"operation" validate:"required"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type deleteUserResponse struct {
	User   string `json:"user"`
	Status string `json:"status"`
}
