package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// buildTestApp construye la aplicación completa sobre una base SQLite temporal.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "inventory.db"), logger.Nop())
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(context.Background(), db))
	t.Cleanup(func() { _ = sqlite.Close(db) })

	productRepo := sqlite.NewProductRepository(db)
	ledger := inventory.NewLedgerUseCase(
		sqlite.NewTxRunner(db), productRepo, sqlite.NewStockHistoryRepository(db), logger.Nop(),
	)
	return apphttp.NewApp("test", apphttp.RouterDeps{
		Ledger:        ledger,
		Replenishment: inventory.NewReplenishmentUseCase(productRepo),
		Ping:          func(ctx context.Context) error { return sqlite.Ping(ctx, db) },
	})
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func createProduct(t *testing.T, app *fiber.App, body string) dto.ProductResponse {
	t.Helper()
	resp, raw := doJSON(t, app, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var out dto.ProductResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func decodeError(t *testing.T, raw []byte) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	resp, raw := doJSON(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(apphttp.RequestIDHeader), "cada respuesta lleva request id")
	assert.Contains(t, string(raw), `"status":"ok"`)
}

func TestHealth_AlmacenamientoCaido(t *testing.T) {
	app := apphttp.NewApp("test", apphttp.RouterDeps{
		Ping: func(context.Context) error { return errors.New("database is locked") },
	})
	resp, _ := doJSON(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCreateProduct_ValoresPorDefecto(t *testing.T) {
	app := buildTestApp(t)

	out := createProduct(t, app, `{"name":"Paper Towels","category":"Household","current_stock":"3","price":2.5}`)
	assert.Greater(t, out.ID, int64(0))
	assert.Equal(t, 3, out.CurrentStock)
	assert.Equal(t, 1, out.MinStock, "min_stock por defecto")
	assert.Equal(t, "normal", out.StockStatus)
	assert.Equal(t, "2.5", out.Price.String())
}

func TestCreateProduct_Invalido(t *testing.T) {
	app := buildTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/products", `{"name":"","category":"Household"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, raw).Code)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/products", `{"name":"x","category":"y","current_stock":-2}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw = doJSON(t, app, http.MethodPost, "/api/products", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
}

func TestCreateProduct_ValoresMalFormados(t *testing.T) {
	app := buildTestApp(t)

	for _, body := range []string{
		`{"name":"X","category":"Y","current_stock":"abc"}`,
		`{"name":"X","category":"Y","price":"zz"}`,
		`{"name":"X","category":"Y","min_stock":2.9}`,
	} {
		resp, raw := doJSON(t, app, http.MethodPost, "/api/products", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		assert.Equal(t, "VALIDATION", decodeError(t, raw).Code, body)
	}

	_, raw := doJSON(t, app, http.MethodGet, "/api/products", "")
	var list dto.ProductListResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Zero(t, list.Total, "ninguna petición rechazada crea productos")
}

func TestProducts_GetExistsUpdateDelete(t *testing.T) {
	app := buildTestApp(t)
	p := createProduct(t, app, `{"name":"Sal","category":"Despensa","current_stock":2,"min_stock":2}`)
	path := "/api/products/" + itoa(p.ID)

	resp, raw := doJSON(t, app, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got dto.ProductResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "low_stock", got.StockStatus)

	resp, _ = doJSON(t, app, http.MethodHead, path, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodHead, "/api/products/999", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = doJSON(t, app, http.MethodPut, path, `{"name":"Sal marina","current_stock":50}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Sal marina", got.Name)
	assert.Equal(t, 2, got.CurrentStock, "PUT no modifica el stock")

	resp, raw = doJSON(t, app, http.MethodPut, path, `{"category":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))

	resp, raw = doJSON(t, app, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var del dto.DeleteProductResponse
	require.NoError(t, json.Unmarshal(raw, &del))
	assert.Equal(t, "Sal marina", del.ProductName)

	resp, raw = doJSON(t, app, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, raw).Code)

	resp, _ = doJSON(t, app, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/products/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListProducts_FiltroPorEstado(t *testing.T) {
	app := buildTestApp(t)
	createProduct(t, app, `{"name":"Arroz","category":"Despensa","current_stock":5}`)
	createProduct(t, app, `{"name":"Huevos","category":"Despensa","current_stock":0}`)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ProductListResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, "Arroz", list.Items[0].Name)

	_, raw = doJSON(t, app, http.MethodGet, "/api/products?status=out_of_stock", "")
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Huevos", list.Items[0].Name)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/products?status=raro", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListProducts_FiltrosCombinados(t *testing.T) {
	app := buildTestApp(t)
	createProduct(t, app, `{"name":"Champú","brand":"Pantene","category":"Aseo","current_stock":0}`)
	createProduct(t, app, `{"name":"Jabón","brand":"Protex","category":"Aseo","current_stock":4}`)
	createProduct(t, app, `{"name":"Leche","brand":"Colanta","category":"Lácteos","current_stock":2,"expiry_date":"2001-01-01"}`)

	list := func(query string) dto.ProductListResponse {
		t.Helper()
		resp, raw := doJSON(t, app, http.MethodGet, "/api/products"+query, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
		var out dto.ProductListResponse
		require.NoError(t, json.Unmarshal(raw, &out))
		return out
	}

	got := list("?q=pantene")
	require.Equal(t, 1, got.Total)
	assert.Equal(t, "Champú", got.Items[0].Name)

	got = list("?category=Aseo")
	assert.Equal(t, 2, got.Total)

	got = list("?category=Aseo&status=normal")
	require.Equal(t, 1, got.Total)
	assert.Equal(t, "Jabón", got.Items[0].Name)

	got = list("?expired=true")
	require.Equal(t, 1, got.Total)
	assert.Equal(t, "Leche", got.Items[0].Name)
	assert.True(t, got.Items[0].Expired)

	got = list("?q=zzz")
	assert.Zero(t, got.Total)
	assert.Equal(t, "1 producto(s) vencido(s): Leche", got.Warning, "el aviso cubre todo el inventario")
}

func TestMovements_CompraYStockNegativo(t *testing.T) {
	app := buildTestApp(t)
	p := createProduct(t, app, `{"name":"Paper Towels","category":"Household","current_stock":3,"min_stock":2,"price":2.5}`)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/inventory/movements",
		`{"product_id":`+itoa(p.ID)+`,"operation_type":"purchase","quantity_change":5,"stock_after":8}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var res dto.StockChangeResponse
	require.NoError(t, json.Unmarshal(raw, &res))
	assert.Equal(t, 3, res.OldStock)
	assert.Equal(t, 8, res.NewStock)

	resp, raw = doJSON(t, app, http.MethodPost, "/api/inventory/movements",
		`{"product_id":`+itoa(p.ID)+`,"operation_type":"use","quantity_change":-10,"stock_after":-2}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", decodeError(t, raw).Code)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/inventory/movements",
		`{"product_id":999,"operation_type":"use","quantity_change":-1,"stock_after":0}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/inventory/movements",
		`{"product_id":`+itoa(p.ID)+`,"operation_type":"regalo","quantity_change":1,"stock_after":9}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, raw = doJSON(t, app, http.MethodGet, "/api/products/"+itoa(p.ID)+"/history", "")
	var history []dto.HistoryEntryResponse
	require.NoError(t, json.Unmarshal(raw, &history))
	require.Len(t, history, 1)
	assert.Equal(t, 5, history[0].QuantityChange)
	assert.Equal(t, "Paper Towels", history[0].ProductName)

	_, raw = doJSON(t, app, http.MethodGet, "/api/products/"+itoa(p.ID)+"/statistics", "")
	var st dto.StatisticsResponse
	require.NoError(t, json.Unmarshal(raw, &st))
	assert.Equal(t, 1, st.PurchaseCount)
	assert.Equal(t, 5, st.TotalPurchased)
}

func TestOperations_ConsumoSeRecortaEnCero(t *testing.T) {
	app := buildTestApp(t)
	p := createProduct(t, app, `{"name":"Leche","category":"Lácteos","current_stock":2}`)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/inventory/operations",
		`{"product_id":`+itoa(p.ID)+`,"operation":"use","quantity":5,"memo":"desayuno"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var res dto.StockChangeResponse
	require.NoError(t, json.Unmarshal(raw, &res))
	assert.Equal(t, 0, res.NewStock)
	assert.Equal(t, -5, res.QuantityChange)
	assert.Equal(t, "quedará sin stock", res.Warning)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/inventory/operations",
		`{"product_id":`+itoa(p.ID)+`,"operation":"use","quantity":-1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, raw = doJSON(t, app, http.MethodGet, "/api/inventory/replenishment", "")
	var list []dto.ReplenishmentSuggestionDTO
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].SuggestedOrderQty)
}

func TestStatistics_SinHistorial(t *testing.T) {
	app := buildTestApp(t)
	p := createProduct(t, app, `{"name":"Té","category":"Despensa"}`)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/products/"+itoa(p.ID)+"/statistics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"product_id":`+itoa(p.ID)+`,"total_operations":0,"purchase_count":0,"use_count":0,
		"adjust_count":0,"total_purchased":0,"total_used":0,"first_operation":null,"last_operation":null}`, string(raw))

	resp, raw = doJSON(t, app, http.MethodGet, "/api/products/"+itoa(p.ID)+"/history", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))

	resp, _ = doJSON(t, app, http.MethodGet, "/api/products/999/statistics", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInventoryHistory_FiltroYLimite(t *testing.T) {
	app := buildTestApp(t)
	a := createProduct(t, app, `{"name":"A","category":"c"}`)
	b := createProduct(t, app, `{"name":"B","category":"c"}`)
	for _, id := range []int64{a.ID, a.ID, b.ID} {
		resp, raw := doJSON(t, app, http.MethodPost, "/api/inventory/operations",
			`{"product_id":`+itoa(id)+`,"operation":"purchase","quantity":1}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	}

	var history []dto.HistoryEntryResponse
	_, raw := doJSON(t, app, http.MethodGet, "/api/inventory/history", "")
	require.NoError(t, json.Unmarshal(raw, &history))
	assert.Len(t, history, 3)
	assert.Equal(t, "B", history[0].ProductName)

	_, raw = doJSON(t, app, http.MethodGet, "/api/inventory/history?product_id="+itoa(a.ID)+"&limit=1", "")
	require.NoError(t, json.Unmarshal(raw, &history))
	require.Len(t, history, 1)
	assert.Equal(t, 2, history[0].StockAfter)
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestDocs_SwaggerUI(t *testing.T) {
	app := apphttp.NewApp("test", apphttp.RouterDeps{DocsFile: filepath.Join("..", "..", "..", "docs", "swagger.json")})
	resp, raw := doJSON(t, app, http.MethodGet, "/docs", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "swagger")
}
