package model

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Name     string `json:"name" binding:"omitempty,max=128"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User   PublicUser `json:"user"`
	Access string     `json:"access"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}

// AuthUser is the identity the access guard resolves from a bearer token and
// attaches to the request context.
type AuthUser struct {
	ID    int64
	Email string
}
