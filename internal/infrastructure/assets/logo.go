// Package assets implementa la ingesta del logo del emisor: valida que el
// archivo subido sea realmente una imagen y lo convierte a un data-URL
// embebible. El resto del sistema guarda esa representación sin interpretar
// sus bytes.
package assets

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/jhoicas/Facturador-api/internal/domain"
)

var mimeByFormat = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
}

// IngestLogo valida que data decodifique como png, jpeg o gif y devuelve el
// data-URL correspondiente. Cualquier otro contenido (o una imagen truncada
// que no decodifica) produce domain.ErrUnsupportedAsset: la acción se rechaza
// y el estado del documento no cambia.
func IngestLogo(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: archivo vacío", domain.ErrUnsupportedAsset)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnsupportedAsset, err)
	}
	mime, ok := mimeByFormat[format]
	if !ok {
		return "", fmt.Errorf("%w: formato %s", domain.ErrUnsupportedAsset, format)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
