package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los backends JSON y SQL
// deben producir exactamente estos mismos errores para que la capa de UI
// sea agnóstica al backend.
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrValidacion       = errors.New("entrada inválida")
	ErrCredenciales     = errors.New("usuario o contraseña inválidos")
	ErrSesionNoIniciada = errors.New("sesión no iniciada")
	ErrPermisos         = errors.New("permisos insuficientes")
	ErrPoliticaPassword = errors.New("la contraseña no cumple la política")
	ErrUsernameExiste   = errors.New("el username ya está registrado")
	ErrCURPExiste       = errors.New("la CURP ya está registrada")
	ErrBackend          = errors.New("error del backend de persistencia")
)
