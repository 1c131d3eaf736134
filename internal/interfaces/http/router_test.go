package http_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/energy-billing/internal/application/billing"
	"github.com/jhoicas/energy-billing/internal/application/catalog"
	"github.com/jhoicas/energy-billing/internal/application/dto"
	"github.com/jhoicas/energy-billing/internal/application/importer"
	"github.com/jhoicas/energy-billing/internal/infrastructure/memory"
	"github.com/jhoicas/energy-billing/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/energy-billing/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/energy-billing/pkg/jwt"
	"github.com/jhoicas/energy-billing/pkg/logger"
)

const (
	metersCSV = "meterId,cups,address,postalCode,city\n" +
		"MTR001,,Calle Mayor 1,28001,Madrid\n" +
		"MTR002,,Avenida Diagonal 100,08019,Barcelona\n"
	contractsCSV = "contractId,meterId,customerId,fullName,nif,email,contractType,startDate,endDate,billingCycle,flatMonthlyFee,includedKwh,overagePricePerKwh,fixedPricePerKwh,taxRate,iban\n" +
		"CONT001,MTR001,C1,Ana García,1Z,a@x.es,FIXED,2024-01-01,,MONTHLY,,,,0.19,0.21,ES9121000418450200051332\n" +
		"CONT002,MTR002,C2,Jordi Puig,2X,j@x.es,FLAT,2024-01-01,,MONTHLY,45.00,200,,,0.21,\n"
	readingsCSV = "meterId,date,hour,kwh,quality\n" +
		"MTR001,2024-03-01,0,60.000,REAL\n" +
		"MTR001,2024-03-02,0,40.000,ESTIMATED\n" +
		"MTR002,2024-03-10,5,250.000,\n"
)

type testServer struct {
	app   *fiber.App
	store *memory.Store
}

func newTestServer(t *testing.T, secret string) *testServer {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	run := billing.NewRunBillingUseCase(store.Contracts(), store.Invoices(), store.Readings(), log,
		billing.WithClock(func() time.Time { return time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC) }))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		RunBilling: run,
		Invoices:   billing.NewInvoiceQueryUseCase(store.Invoices()),
		PDF:        billing.NewPDFUseCase(store.Invoices(), store.Contracts(), store.Meters(), pdf.NewInvoiceRenderer("test")),
		Catalog:    catalog.NewUseCase(store.Meters(), store.Contracts(), store.Readings()),
		Importer:   importer.New(store, importer.EncodingUTF8),
		JWTSecret:  secret,
		Log:        log,
	})
	return &testServer{app: app, store: store}
}

func (s *testServer) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *testServer) upload(t *testing.T, path, content, auth string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "data.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return s.do(t, req)
}

func (s *testServer) seed(t *testing.T, auth string) {
	t.Helper()
	for _, step := range []struct{ path, content string }{
		{"/api/meters/import", metersCSV},
		{"/api/contracts/import", contractsCSV},
		{"/api/readings/import", readingsCSV},
	} {
		resp := s.upload(t, step.path, step.content, auth)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, step.path)
	}
}

func TestAPI_ImportarFacturarYConsultar(t *testing.T) {
	s := newTestServer(t, "")
	s.seed(t, "")

	resp := s.do(t, httptest.NewRequest(http.MethodPost, "/api/billing/run?period=2024-03", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var run dto.BillingRunResponse
	decodeBody(t, resp, &run)

	assert.Equal(t, "2024-03", run.Period)
	assert.Equal(t, 1, run.Generated)
	require.Len(t, run.Invoices, 1)
	require.Len(t, run.Failures, 1)
	assert.Equal(t, "CONT002", run.Failures[0].ContractID)
	assert.Equal(t, "MISSING_TARIFF_FIELD", run.Failures[0].Code)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/api/invoices/"+run.Invoices[0], nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var inv dto.InvoiceResponse
	decodeBody(t, resp, &inv)
	assert.Equal(t, "CONT001", inv.ContractID)
	assert.Equal(t, "100.000", inv.TotalQuantity)
	assert.Equal(t, "19.00", inv.Subtotal)
	assert.Equal(t, "3.99", inv.Tax)
	assert.Equal(t, "22.99", inv.Total)
	assert.Equal(t, "Ana García", inv.CustomerFullName)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/api/invoices?period=2024-03", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []dto.InvoiceResponse
	decodeBody(t, resp, &list)
	assert.Len(t, list, 1)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/api/invoices/"+run.Invoices[0]+"/pdf", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "invoice-"+run.Invoices[0]+".pdf")

	// Segunda ejecución: nada nuevo.
	resp = s.do(t, httptest.NewRequest(http.MethodPost, "/api/billing/run?period=2024-03", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &run)
	assert.Equal(t, 0, run.Generated)
	assert.Equal(t, []string{"CONT001"}, run.Skipped)
}

func TestAPI_PeriodoInvalido_400(t *testing.T) {
	s := newTestServer(t, "")
	resp := s.do(t, httptest.NewRequest(http.MethodPost, "/api/billing/run?period=2024-13", nil))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "INVALID_PERIOD", body.Code)
}

func TestAPI_FacturaInexistente_404(t *testing.T) {
	s := newTestServer(t, "")
	for _, path := range []string{"/api/invoices/nope", "/api/invoices/nope/pdf", "/api/meters/nope", "/api/contracts/nope"} {
		resp := s.do(t, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
	}
}

func TestAPI_Catalogo(t *testing.T) {
	s := newTestServer(t, "")
	s.seed(t, "")

	resp := s.do(t, httptest.NewRequest(http.MethodGet, "/api/meters", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var meters []dto.MeterResponse
	decodeBody(t, resp, &meters)
	assert.Len(t, meters, 2)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/api/contracts?meter_id=MTR002", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var contracts []dto.ContractResponse
	decodeBody(t, resp, &contracts)
	require.Len(t, contracts, 1)
	assert.Nil(t, contracts[0].OveragePricePerKwh)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/api/readings?meter_id=MTR001&from=2024-03-01&to=2024-03-31", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var readings dto.ReadingsResponse
	decodeBody(t, resp, &readings)
	assert.Equal(t, "100.000", readings.TotalKwh)
	assert.Len(t, readings.Readings, 2)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/api/readings?meter_id=MTR001&from=marzo&to=2024-03-31", nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ImportSinFichero_400(t *testing.T) {
	s := newTestServer(t, "")
	req := httptest.NewRequest(http.MethodPost, "/api/meters/import", strings.NewReader("meterId\n"))
	req.Header.Set("Content-Type", "text/csv")
	resp := s.do(t, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ConSecreto_EscrituraRequiereOperador(t *testing.T) {
	s := newTestServer(t, testJWTSecret)

	resp := s.do(t, httptest.NewRequest(http.MethodPost, "/api/billing/run?period=2024-03", nil))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = s.upload(t, "/api/meters/import", metersCSV, tokenForRole(t, "viewer"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = s.upload(t, "/api/meters/import", metersCSV, tokenForRole(t, pkgjwt.RoleOperator))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var res dto.ImportResult
	decodeBody(t, resp, &res)
	assert.Equal(t, 2, res.Inserted)

	// Las lecturas siguen siendo públicas.
	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/api/meters", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	ok, err := s.store.Meters().Exists(context.Background(), "MTR001")
	require.NoError(t, err)
	assert.True(t, ok)
}
