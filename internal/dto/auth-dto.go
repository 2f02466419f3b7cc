package dto

type LoginDTO struct {
	Username string `json:"username" form:"username" validate:"required,notblank"`
	Password string `json:"password" form:"password" validate:"required"`
}

// AuthContext - кто выполняет запрос. Создаётся один раз на запрос из сессии.
type AuthContext struct {
	UserID uint64 `json:"user_id"`
	Role   string `json:"role"`
}

type LoginResponseDTO struct {
	User       UserDTO `json:"user"`
	RedirectTo string  `json:"redirect_to"`
}
