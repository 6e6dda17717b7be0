package pricing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func postQuote(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	_, engine := gin.CreateTestContext(rec)
	engine.POST("/quote", NewHandler().Quote)

	req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	return rec
}

func TestQuoteReturnsBreakdown(t *testing.T) {
	rec := postQuote(t, `{"propertyType":"apartment","surfaceArea":120}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var quote Quote
	if err := json.Unmarshal(rec.Body.Bytes(), &quote); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if quote.TotalAmount != 285 {
		t.Errorf("total = %d, want 285", quote.TotalAmount)
	}
}

func TestQuoteZeroSurfaceAreaGetsCalculatorMessage(t *testing.T) {
	rec := postQuote(t, `{"propertyType":"apartment","surfaceArea":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(body.Error, "surface area") {
		t.Errorf("error = %q, want the surface area validation message", body.Error)
	}
}

func TestQuoteMissingPropertyTypeRejected(t *testing.T) {
	rec := postQuote(t, `{"surfaceArea":120}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error != "propertyType is required" {
		t.Errorf("error = %q", body.Error)
	}
}
