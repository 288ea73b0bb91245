package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"contrasenia" validate:"required"`
}

// LoginResponse salida con el par de tokens y el usuario.
type LoginResponse struct {
	Token   string       `json:"token"`
	Refresh string       `json:"refresh"`
	Usuario UserResponse `json:"usuario"`
}

// TokenPairResponse salida de /auth/refresh.
type TokenPairResponse struct {
	Token   string `json:"token"`
	Refresh string `json:"refresh"`
}
