package auth

import "time"

// Usuario es la vista pública del asesor autenticado; nunca incluye el hash.
type Usuario struct {
	ID                     int64
	Username               string
	Rol                    string
	Nombres                string
	Apellidos              string
	RequiereCambioPassword bool
}

// Sesion representa la sesión efímera del proceso. Existe a lo sumo una a la
// vez; se crea en Login y se destruye en Logout o al terminar el proceso.
type Sesion struct {
	ID         string
	Usuario    Usuario
	IniciadaEn time.Time
}
