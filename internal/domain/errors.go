package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a 400 / 404 / 500 con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")

	// ErrAsset indica que un recurso del PDF (fuente o logo) no se pudo leer.
	ErrAsset = errors.New("recurso de renderizado no disponible")
	// ErrRender indica que la generación del documento falló; nunca se entrega un PDF parcial.
	ErrRender = errors.New("falló la generación del documento")
)
