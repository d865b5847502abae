package http

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/internal/application/document"
	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/billing"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/assets"
	"github.com/jhoicas/Facturador-api/pkg/logger"
)

// DocumentHandler maneja las peticiones HTTP del documento de factura.
type DocumentHandler struct {
	uc  *document.UseCase
	log *logger.Logger
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *document.UseCase, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{uc: uc, log: log}
}

// Get devuelve el estado completo del documento con los totales derivados.
// GET /api/document
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.documentResponse())
}

// SetCompany godoc
// @Summary      Reemplazar el perfil del emisor
// @Tags         document
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProfileRequest  true  "name, address, phone, email"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/document/company [put]
func (h *DocumentHandler) SetCompany(c *fiber.Ctx) error {
	var in dto.ProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	h.uc.SetCompanyInfo(entity.CompanyProfile{
		Name: in.Name, Address: in.Address, Phone: in.Phone, Email: in.Email,
	})
	return c.JSON(h.documentResponse())
}

// SetClient reemplaza el perfil del receptor.
// PUT /api/document/client
func (h *DocumentHandler) SetClient(c *fiber.Ctx) error {
	var in dto.ProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	h.uc.SetClientInfo(entity.ClientProfile{
		Name: in.Name, Address: in.Address, Phone: in.Phone, Email: in.Email,
	})
	return c.JSON(h.documentResponse())
}

// SetInvoice reemplaza los metadatos de la factura.
// PUT /api/document/invoice
func (h *DocumentHandler) SetInvoice(c *fiber.Ctx) error {
	var in dto.InvoiceMetaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	h.uc.SetInvoiceData(entity.InvoiceMeta{
		Number: in.Number, Date: in.Date, DueDate: in.DueDate,
		Notes: in.Notes, Terms: in.Terms,
	})
	return c.JSON(h.documentResponse())
}

// PatchCompany actualiza un solo campo del emisor.
// PATCH /api/document/company
func (h *DocumentHandler) PatchCompany(c *fiber.Ctx) error {
	return h.patchField(c, h.uc.UpdateCompanyField)
}

// PatchClient actualiza un solo campo del receptor.
// PATCH /api/document/client
func (h *DocumentHandler) PatchClient(c *fiber.Ctx) error {
	return h.patchField(c, h.uc.UpdateClientField)
}

// PatchInvoice actualiza un solo metadato de la factura.
// PATCH /api/document/invoice
func (h *DocumentHandler) PatchInvoice(c *fiber.Ctx) error {
	return h.patchField(c, h.uc.UpdateInvoiceField)
}

func (h *DocumentHandler) patchField(c *fiber.Ctx, apply func(field, value string) error) error {
	var in dto.FieldUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := apply(in.Field, in.Value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(h.documentResponse())
}

// AddItem godoc
// @Summary      Agregar una línea en blanco
// @Tags         items
// @Produce      json
// @Success      201  {object}  dto.DocumentResponse
// @Router       /api/document/items [post]
func (h *DocumentHandler) AddItem(c *fiber.Ctx) error {
	h.uc.AddItem()
	return c.Status(fiber.StatusCreated).JSON(h.documentResponse())
}

// UpdateItem actualiza un campo de una línea. Los valores numéricos inválidos
// se coaccionan en el dominio (cantidad → 1, montos → 0), nunca son error.
// PATCH /api/document/items/:id
func (h *DocumentHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id numérico requerido"})
	}
	var in dto.FieldUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateItem(id, in.Field, in.Value); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "línea no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(h.documentResponse())
}

// RemoveItem godoc
// @Summary      Eliminar una línea
// @Tags         items
// @Produce      json
// @Param        id   path      int  true  "ID de la línea"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "la última línea no se puede eliminar"
// @Router       /api/document/items/{id} [delete]
func (h *DocumentHandler) RemoveItem(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id numérico requerido"})
	}
	if err := h.uc.RemoveItem(id); err != nil {
		if errors.Is(err, domain.ErrLastItem) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LAST_ITEM", Message: "la factura debe conservar al menos una línea"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "línea no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(h.documentResponse())
}

// UploadLogo ingiere el logo del emisor desde un multipart form.
// Un archivo que no es imagen se rechaza con 415 y el estado no cambia.
// POST /api/document/logo
func (h *DocumentHandler) UploadLogo(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se espera un archivo en el campo 'logo'"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}

	dataURL, err := assets.IngestLogo(data)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedAsset) {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_ASSET", Message: "el archivo no es una imagen soportada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	h.uc.SetLogo(dataURL)
	return c.JSON(h.documentResponse())
}

// RemoveLogo elimina el logo del emisor.
// DELETE /api/document/logo
func (h *DocumentHandler) RemoveLogo(c *fiber.Ctx) error {
	h.uc.ClearLogo()
	return c.JSON(h.documentResponse())
}

// Reset godoc
// @Summary      Restablecer el documento a los valores por defecto
// @Tags         document
// @Produce      json
// @Success      200  {object}  dto.DocumentResponse
// @Router       /api/document/reset [post]
func (h *DocumentHandler) Reset(c *fiber.Ctx) error {
	h.uc.Reset()
	return c.JSON(h.documentResponse())
}

// ExportPDF genera y descarga el PDF del documento actual.
// Una exportación en vuelo rechaza la siguiente con 409.
// GET /api/document/export/pdf
func (h *DocumentHandler) ExportPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.ExportPDF(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrExportInProgress) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EXPORT_IN_PROGRESS", Message: "ya hay una exportación en curso"})
		}
		h.log.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("exportación fallida")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: "no se pudo generar el PDF"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// documentResponse arma la respuesta completa: estado + totales recalculados
// en esta lectura (el motor de cálculo no cachea).
func (h *DocumentHandler) documentResponse() dto.DocumentResponse {
	doc := h.uc.Document()

	items := make([]dto.LineItemResponse, 0, len(doc.Items))
	for _, it := range doc.Items {
		items = append(items, dto.LineItemResponse{
			ID:        it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			TaxRate:   it.TaxRate,
			Total:     billing.ItemTotal(it).StringFixed(2),
		})
	}
	subtotal, totalTax, grandTotal := h.uc.Totals()

	return dto.DocumentResponse{
		Company: dto.CompanyResponse{
			Name:    doc.CompanyInfo.Name,
			Address: doc.CompanyInfo.Address,
			Phone:   doc.CompanyInfo.Phone,
			Email:   doc.CompanyInfo.Email,
			HasLogo: doc.CompanyInfo.Logo != "",
		},
		Client: dto.ClientResponse{
			Name:    doc.ClientInfo.Name,
			Address: doc.ClientInfo.Address,
			Phone:   doc.ClientInfo.Phone,
			Email:   doc.ClientInfo.Email,
		},
		Invoice: dto.InvoiceMetaResponse{
			Number:  doc.InvoiceData.Number,
			Date:    doc.InvoiceData.Date,
			DueDate: doc.InvoiceData.DueDate,
			Notes:   doc.InvoiceData.Notes,
			Terms:   doc.InvoiceData.Terms,
		},
		Items:  items,
		Totals: dto.TotalsResponse{Subtotal: subtotal, TotalTax: totalTax, GrandTotal: grandTotal},
	}
}
