package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrLastItem         = errors.New("la factura debe conservar al menos una línea")
	ErrUnsupportedAsset = errors.New("el archivo no es una imagen soportada")
	ErrExportInProgress = errors.New("ya hay una exportación en curso")
)
