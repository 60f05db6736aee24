package dto

type CrearClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2"`
	Documento *string `json:"documento" validate:"omitempty,min=6"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
}

type ActualizarClienteRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,min=2"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Telefono *string `json:"telefono"`
}

type ClienteFilter struct {
	Nombre string `form:"nombre"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ClienteResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Documento *string `json:"documento,omitempty"`
	Email     *string `json:"email,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Activo    bool    `json:"activo"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
