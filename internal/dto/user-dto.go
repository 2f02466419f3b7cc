package dto

type CreateUserDTO struct {
	Name     string `json:"name"     form:"name"     validate:"required,notblank,max=100"`
	Username string `json:"username" form:"username" validate:"required,notblank,max=50"`
	Password string `json:"password" form:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"     form:"role"     validate:"required,user_role"`
}

type UserDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}
