package models

// User is an usuario of the platform. Senha always holds a bcrypt hash.
type User struct {
	ID       uint   `json:"usuarioId" gorm:"column:usuario_id;primaryKey;autoIncrement"`
	Nome     string `json:"nome" gorm:"column:nome;size:100;not null"`
	Email    string `json:"email" gorm:"column:email;size:100;not null;uniqueIndex:uk_usuario_email"`
	Senha    string `json:"-" gorm:"column:senha;size:100;not null"`
	Telefone string `json:"telefone" gorm:"column:telefone;size:20"`
}

func (User) TableName() string {
	return "usuario"
}

type UserInput struct {
	Nome     *string `json:"nome" binding:"omitempty,notblank,max=100" create:"required"`
	Email    *string `json:"email" binding:"omitempty,email,max=100" create:"required"`
	Senha    *string `json:"senha" binding:"omitempty,min=6,max=100" create:"required"`
	Telefone *string `json:"telefone" binding:"omitempty,phone,max=20"`
}

// UserResponse never carries the password.
type UserResponse struct {
	UsuarioID uint   `json:"usuarioId"`
	Nome      string `json:"nome"`
	Email     string `json:"email"`
	Telefone  string `json:"telefone,omitempty"`
}

func (r UserResponse) ResourceID() uint { return r.UsuarioID }

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		UsuarioID: u.ID,
		Nome:      u.Nome,
		Email:     u.Email,
		Telefone:  u.Telefone,
	}
}

type LoginInput struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	ExpiraEm int64  `json:"expiraEm"`
}
