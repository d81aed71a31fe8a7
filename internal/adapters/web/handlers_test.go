package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	webAdapter "warehouse-backend/internal/adapters/web"
	"warehouse-backend/internal/app"
	"warehouse-backend/internal/core"
)

const testSecret = "test-secret"

// stubApp embeds the interface so each test only overrides the methods the
// route under test actually calls; anything else panics loudly.
type stubApp struct {
	app.ApplicationService

	products     []core.Product
	importedRows []app.ProductImportRow
	setStockReq  *app.SetLocationStockRequest
	user         *core.User
	registerErr  error
	authErr      error
}

func (s *stubApp) ListProducts(context.Context) ([]core.Product, error) {
	return s.products, nil
}

func (s *stubApp) ImportProducts(_ context.Context, rows []app.ProductImportRow) error {
	s.importedRows = rows
	return nil
}

func (s *stubApp) RegisterUser(context.Context, app.RegisterRequest) (*core.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.user, nil
}

func (s *stubApp) AuthenticateUser(context.Context, string, string) (*core.User, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	return s.user, nil
}

func (s *stubApp) SetLocationStock(_ context.Context, req app.SetLocationStockRequest, _ string) error {
	s.setStockReq = &req
	return nil
}

func (s *stubApp) Chat(_ context.Context, message string) (string, error) {
	return "echo: " + message, nil
}

func newTestServer(t *testing.T, svc app.ApplicationService) *httptest.Server {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	server := httptest.NewServer(webAdapter.NewHandler(svc, "", testSecret, log))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any, headers map[string]string) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("request build failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return res
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, &stubApp{})

	res, err := http.Get(server.URL + "/api/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", res.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestLogin_IssuesTokenAndRole(t *testing.T) {
	svc := &stubApp{user: &core.User{ID: 1, Username: "alice", Role: "admin"}}
	server := newTestServer(t, svc)

	res := postJSON(t, server.URL+"/api/login", map[string]string{
		"username": "alice", "password": "pw",
	}, nil)
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Token == "" {
		t.Error("expected a token")
	}
	if body.Role != "admin" {
		t.Errorf("expected role admin, got %q", body.Role)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := &stubApp{authErr: app.ErrInvalidCredentials}
	server := newTestServer(t, svc)

	res := postJSON(t, server.URL+"/api/login", map[string]string{
		"username": "alice", "password": "wrong",
	}, nil)
	defer res.Body.Close()

	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Error != "Invalid credentials" || body.Code != "UNAUTHORIZED" {
		t.Errorf("unexpected error body: %+v", body)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := &stubApp{registerErr: core.ErrConflict}
	server := newTestServer(t, svc)

	res := postJSON(t, server.URL+"/api/register", map[string]string{
		"username": "alice", "password": "pw",
	}, nil)
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Error != "Username already exists" {
		t.Errorf("unexpected message: %q", body.Error)
	}
}

func TestRegister_MissingPasswordFailsValidation(t *testing.T) {
	server := newTestServer(t, &stubApp{})

	res := postJSON(t, server.URL+"/api/register", map[string]string{
		"username": "alice",
	}, nil)
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", res.StatusCode)
	}
}

func loginToken(t *testing.T, server *httptest.Server) string {
	t.Helper()
	res := postJSON(t, server.URL+"/api/login", map[string]string{
		"username": "alice", "password": "pw",
	}, nil)
	defer res.Body.Close()
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return body.Token
}

func TestAdminRoute_RequiresToken(t *testing.T) {
	server := newTestServer(t, &stubApp{})

	req, _ := http.NewRequest(http.MethodPut, server.URL+"/api/inventory-by-location",
		strings.NewReader(`{"product_id":1,"location_id":1,"quantity":5}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", res.StatusCode)
	}
}

func TestAdminRoute_RejectsNonAdminRole(t *testing.T) {
	svc := &stubApp{user: &core.User{ID: 2, Username: "bob", Role: "user"}}
	server := newTestServer(t, svc)
	token := loginToken(t, server)

	req, _ := http.NewRequest(http.MethodPut, server.URL+"/api/inventory-by-location",
		strings.NewReader(`{"product_id":1,"location_id":1,"quantity":5}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for role user, got %d", res.StatusCode)
	}
}

func TestAdminRoute_AcceptsAdminToken(t *testing.T) {
	svc := &stubApp{user: &core.User{ID: 1, Username: "alice", Role: "admin"}}
	server := newTestServer(t, svc)
	token := loginToken(t, server)

	req, _ := http.NewRequest(http.MethodPut, server.URL+"/api/inventory-by-location",
		strings.NewReader(`{"product_id":1,"location_id":2,"quantity":5}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if svc.setStockReq == nil || svc.setStockReq.LocationID != 2 {
		t.Errorf("expected SetLocationStock call, got %+v", svc.setStockReq)
	}
}

func TestAdminRoute_RejectsTamperedToken(t *testing.T) {
	svc := &stubApp{user: &core.User{ID: 1, Username: "alice", Role: "admin"}}
	server := newTestServer(t, svc)
	token := loginToken(t, server)

	// Flip a character in the signature segment.
	tampered := token[:len(token)-2] + "xx"
	req, _ := http.NewRequest(http.MethodPut, server.URL+"/api/inventory-by-location",
		strings.NewReader(`{"product_id":1,"location_id":1,"quantity":5}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tampered)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for tampered token, got %d", res.StatusCode)
	}
}

func TestAdminRoute_RejectsExpiredToken(t *testing.T) {
	svc := &stubApp{user: &core.User{ID: 1, Username: "alice", Role: "admin"}}
	server := newTestServer(t, svc)

	claims := jwt.MapClaims{
		"id": 1, "username": "alice", "role": "admin",
		"iat": time.Now().Add(-48 * time.Hour).Unix(),
		"exp": time.Now().Add(-24 * time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	req, _ := http.NewRequest(http.MethodPut, server.URL+"/api/inventory-by-location",
		strings.NewReader(`{"product_id":1,"location_id":1,"quantity":5}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+expired)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %d", res.StatusCode)
	}
	if svc.setStockReq != nil {
		t.Error("handler must not run on an expired token")
	}
}

func TestExportProductsCSV(t *testing.T) {
	svc := &stubApp{products: []core.Product{
		{ID: 1, Name: "Widget A", Quantity: 50},
		{ID: 2, Name: "Widget, B", Quantity: 3},
	}}
	server := newTestServer(t, svc)

	res, err := http.Get(server.URL + "/api/products/export")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	if got := res.Header.Get("Content-Type"); got != "text/csv" {
		t.Errorf("expected text/csv, got %q", got)
	}
	if got := res.Header.Get("Content-Disposition"); !strings.Contains(got, "products.csv") {
		t.Errorf("expected attachment filename, got %q", got)
	}

	raw, _ := io.ReadAll(res.Body)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if lines[0] != "id,name,quantity" {
		t.Errorf("unexpected header row: %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	// A comma in the name must be quoted.
	if lines[2] != `2,"Widget, B",3` {
		t.Errorf("unexpected quoted row: %q", lines[2])
	}
}

func TestImportProductsCSV(t *testing.T) {
	svc := &stubApp{}
	server := newTestServer(t, svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "products.csv")
	if err != nil {
		t.Fatalf("form file failed: %v", err)
	}
	fw.Write([]byte("id,name,quantity\n1,Widget A,50\n0,New Item,7\n"))
	mw.Close()

	res, err := http.Post(server.URL+"/api/products/import", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 200, got %d: %s", res.StatusCode, raw)
	}
	if len(svc.importedRows) != 2 {
		t.Fatalf("expected 2 imported rows, got %d", len(svc.importedRows))
	}
	if svc.importedRows[0].Name != "Widget A" || svc.importedRows[0].Quantity != 50 {
		t.Errorf("unexpected first row: %+v", svc.importedRows[0])
	}
	if svc.importedRows[1].ID != 0 {
		t.Errorf("expected id 0 for new row, got %d", svc.importedRows[1].ID)
	}
}

func TestImportProductsCSV_SkipsMalformedRows(t *testing.T) {
	svc := &stubApp{}
	server := newTestServer(t, svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "products.csv")
	// A bad quantity and a short row are dropped; valid rows still import.
	fw.Write([]byte("id,name,quantity\n1,Widget A,lots\n2,Widget B\n3,Widget C,12\n"))
	mw.Close()

	res, err := http.Post(server.URL+"/api/products/import", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 200, got %d: %s", res.StatusCode, raw)
	}
	if len(svc.importedRows) != 1 {
		t.Fatalf("expected 1 imported row, got %d", len(svc.importedRows))
	}
	if svc.importedRows[0].ID != 3 || svc.importedRows[0].Quantity != 12 {
		t.Errorf("unexpected imported row: %+v", svc.importedRows[0])
	}
}

func TestChat(t *testing.T) {
	server := newTestServer(t, &stubApp{})

	res := postJSON(t, server.URL+"/api/chat", map[string]string{"message": "help"}, nil)
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var body struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Reply != "echo: help" {
		t.Errorf("unexpected reply: %q", body.Reply)
	}
}

func TestErrorEnvelopeCarriesRequestID(t *testing.T) {
	server := newTestServer(t, &stubApp{})

	res := postJSON(t, server.URL+"/api/products", map[string]any{"quantity": 3}, nil)
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", res.StatusCode)
	}
	var body struct {
		Error     string `json:"error"`
		Code      string `json:"code"`
		RequestID string `json:"request_id"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Code != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %q", body.Code)
	}
	if body.RequestID == "" {
		t.Error("expected a request id in the error envelope")
	}
}
