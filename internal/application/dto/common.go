// Package dto define los contratos JSON de la API HTTP, separados de las
// entidades de dominio.
package dto

// ErrorResponse cuerpo estándar de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageResponse envoltura estándar de listados paginados.
type PageResponse[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Pagina int `json:"pagina"`
	Tamano int `json:"tamano"`
}
