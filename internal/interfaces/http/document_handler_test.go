package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/document"
	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Facturador-api/internal/interfaces/http"
	"github.com/jhoicas/Facturador-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	state *entity.DocumentState
}

func (m *memStore) Save(s *entity.DocumentState) error   { m.state = s; return nil }
func (m *memStore) Load() (*entity.DocumentState, error) { return m.state, nil }
func (m *memStore) Clear() error                         { m.state = nil; return nil }

type stubGenerator struct{}

func (stubGenerator) Generate(_ context.Context, _ *document.RenderSnapshot) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

// buildTestApp construye una app Fiber con el coordinador sobre un store en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	uc := document.New(&memStore{}, stubGenerator{}, logger.Nop())
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{DocumentUC: uc, Log: logger.Nop()})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeDocument(t *testing.T, resp *http.Response) dto.DocumentResponse {
	t.Helper()
	defer resp.Body.Close()
	var out dto.DocumentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Documento
// ──────────────────────────────────────────────────────────────────────────────

func TestGetDocument_Defaults(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/document/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	doc := decodeDocument(t, resp)
	assert.Equal(t, "INV-001", doc.Invoice.Number)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, int64(1), doc.Items[0].Quantity)
	assert.Equal(t, "0.00", doc.Totals.GrandTotal)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestPutCompany_ActualizaYDevuelveEstado(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, fiber.MethodPut, "/api/document/company", dto.ProfileRequest{
		Name: "Acme S.A.S.", Email: "ventas@acme.co",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	doc := decodeDocument(t, resp)
	assert.Equal(t, "Acme S.A.S.", doc.Company.Name)
	assert.Equal(t, "ventas@acme.co", doc.Company.Email)
}

func TestPatchInvoice_CampoDesconocido(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, fiber.MethodPatch, "/api/document/invoice", dto.FieldUpdateRequest{
		Field: "moneda", Value: "COP",
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_AgregarActualizarEliminar(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/document/items", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	doc := decodeDocument(t, resp)
	require.Len(t, doc.Items, 2)

	resp = doJSON(t, app, fiber.MethodPatch, "/api/document/items/2", dto.FieldUpdateRequest{
		Field: "price", Value: "100",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	doc = decodeDocument(t, resp)
	assert.Equal(t, "118.00", doc.Items[1].Total, "100 + 18% de impuesto por defecto")

	resp = doJSON(t, app, fiber.MethodDelete, "/api/document/items/1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	doc = decodeDocument(t, resp)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, int64(2), doc.Items[0].ID)
}

// TestItems_CoercionViaAPI una cantidad no numérica llega al dominio y se
// coacciona a 1: nunca es un error HTTP.
func TestItems_CoercionViaAPI(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, fiber.MethodPatch, "/api/document/items/1", dto.FieldUpdateRequest{
		Field: "quantity", Value: "abc",
	})

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	doc := decodeDocument(t, resp)
	assert.Equal(t, int64(1), doc.Items[0].Quantity)
}

func TestItems_EliminarUltimaLinea(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, fiber.MethodDelete, "/api/document/items/1", nil)

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestItems_EliminarIDInexistente(t *testing.T) {
	app := buildTestApp(t)
	doJSON(t, app, fiber.MethodPost, "/api/document/items", nil)

	resp := doJSON(t, app, fiber.MethodDelete, "/api/document/items/99", nil)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Logo, reset y exportación
// ──────────────────────────────────────────────────────────────────────────────

func multipartLogo(t *testing.T, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("logo", "logo.png")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadLogo_PNG(t *testing.T) {
	app := buildTestApp(t)
	body, contentType := multipartLogo(t, testPNG(t))

	req := httptest.NewRequest(fiber.MethodPost, "/api/document/logo", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	doc := decodeDocument(t, resp)
	assert.True(t, doc.Company.HasLogo)
}

func TestUploadLogo_NoImagen(t *testing.T) {
	app := buildTestApp(t)
	body, contentType := multipartLogo(t, []byte("esto es texto plano"))

	req := httptest.NewRequest(fiber.MethodPost, "/api/document/logo", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode,
		"un archivo que no es imagen se rechaza y el estado no cambia")

	get := doJSON(t, app, fiber.MethodGet, "/api/document/", nil)
	assert.False(t, decodeDocument(t, get).Company.HasLogo)
}

func TestReset_VuelveADefaults(t *testing.T) {
	app := buildTestApp(t)
	doJSON(t, app, fiber.MethodPut, "/api/document/company", dto.ProfileRequest{Name: "Acme"})
	doJSON(t, app, fiber.MethodPost, "/api/document/items", nil)

	resp := doJSON(t, app, fiber.MethodPost, "/api/document/reset", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	doc := decodeDocument(t, resp)
	assert.Empty(t, doc.Company.Name)
	assert.Equal(t, "INV-001", doc.Invoice.Number)
	assert.Len(t, doc.Items, 1)
}

func TestExportPDF_Descarga(t *testing.T) {
	app := buildTestApp(t)
	doJSON(t, app, fiber.MethodPatch, "/api/document/invoice", dto.FieldUpdateRequest{
		Field: "number", Value: "INV-042",
	})

	resp := doJSON(t, app, fiber.MethodGet, "/api/document/export/pdf", nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `filename="Invoice-INV-042.pdf"`)

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
}
