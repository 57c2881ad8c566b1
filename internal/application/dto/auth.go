package dto

// LoginRequest credenciales de entrada.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UsuarioResponse vista pública del asesor autenticado; nunca incluye el hash.
type UsuarioResponse struct {
	ID                     int64  `json:"id"`
	Username               string `json:"username"`
	Rol                    string `json:"rol"`
	Nombres                string `json:"nombres"`
	Apellidos              string `json:"apellidos"`
	RequiereCambioPassword bool   `json:"requiere_cambio_password"`
}

// LoginResponse token emitido y datos del usuario.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}
