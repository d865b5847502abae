package entity

// CompanyProfile datos del emisor. Todos los campos son texto libre;
// los valores vacíos son válidos y se muestran como placeholders al renderizar.
type CompanyProfile struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Logo    string // data-URL (base64) producido por la ingesta de logo; vacío = sin logo
}

// ClientProfile datos del receptor de la factura.
type ClientProfile struct {
	Name    string
	Address string
	Phone   string
	Email   string
}
