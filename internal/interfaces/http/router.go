package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/internal/application/document"
	"github.com/jhoicas/Facturador-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DocumentUC *document.UseCase
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestID())

	doc := api.Group("/document")
	h := NewDocumentHandler(deps.DocumentUC, deps.Log)

	doc.Get("/", h.Get)
	doc.Post("/reset", h.Reset)

	doc.Put("/company", h.SetCompany)
	doc.Patch("/company", h.PatchCompany)
	doc.Put("/client", h.SetClient)
	doc.Patch("/client", h.PatchClient)
	doc.Put("/invoice", h.SetInvoice)
	doc.Patch("/invoice", h.PatchInvoice)

	doc.Post("/items", h.AddItem)
	doc.Patch("/items/:id", h.UpdateItem)
	doc.Delete("/items/:id", h.RemoveItem)

	doc.Post("/logo", h.UploadLogo)
	doc.Delete("/logo", h.RemoveLogo)

	doc.Get("/export/pdf", h.ExportPDF)
}
