package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agbru/fibsci/internal/config"
	"github.com/agbru/fibsci/internal/fibonacci"
	"github.com/agbru/fibsci/internal/notation"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	cfg := config.AppConfig{
		Port:            8080,
		Timeout:         time.Minute,
		Threshold:       4096,
		SciThresholdExp: notation.DefaultThresholdExp,
	}
	opts = append([]Option{WithLogger(newTestLogger())}, opts...)
	return NewServer(fibonacci.GlobalFactory(), cfg, opts...)
}

func doCalculate(t *testing.T, s *Server, target string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req := httptest.NewRequest("GET", target, http.NoBody)
	rec := httptest.NewRecorder()
	s.handleCalculate(rec, req)

	var resp Response
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON response: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, resp
}

func TestHandleCalculate_SmallValue(t *testing.T) {
	s := newTestServer(t)

	rec, resp := doCalculate(t, s, "/calculate?n=10")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if resp.Result != "55" {
		t.Errorf("result = %q, want %q", resp.Result, "55")
	}
	if resp.Algorithm != "doubling" {
		t.Errorf("algorithm = %q, want %q", resp.Algorithm, "doubling")
	}
	if resp.Digits != 2 {
		t.Errorf("digits = %d, want 2", resp.Digits)
	}
}

func TestHandleCalculate_ScientificNotation(t *testing.T) {
	s := newTestServer(t)

	rec, resp := doCalculate(t, s, "/calculate?n=1000")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if resp.Result != "4.3466e+208" {
		t.Errorf("result = %q, want %q", resp.Result, "4.3466e+208")
	}
	if resp.Digits != 209 {
		t.Errorf("digits = %d, want 209", resp.Digits)
	}
}

func TestHandleCalculate_LastDigits(t *testing.T) {
	s := newTestServer(t)

	rec, resp := doCalculate(t, s, "/calculate?n=1000&digits=5")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if resp.LastDigits != "28875" {
		t.Errorf("last_digits = %q, want %q", resp.LastDigits, "28875")
	}
	if resp.Algorithm != "doubling-mod" {
		t.Errorf("algorithm = %q, want %q", resp.Algorithm, "doubling-mod")
	}
}

func TestHandleCalculate_BadRequests(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		target string
	}{
		{"Missing n", "/calculate"},
		{"Negative n", "/calculate?n=-5"},
		{"Non-numeric n", "/calculate?n=abc"},
		{"Unknown algorithm", "/calculate?n=10&algo=unknown"},
		{"Invalid digits", "/calculate?n=10&digits=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := doCalculate(t, s, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d\n%s", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
		})
	}
}

func TestHandleCalculate_MaxNExceeded(t *testing.T) {
	s := newTestServer(t, WithMaxN(100))

	rec, _ := doCalculate(t, s, "/calculate?n=101")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "maximum allowed") {
		t.Errorf("expected limit message, got: %s", rec.Body.String())
	}
}

func TestHandleCalculate_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("POST", "/calculate?n=10", http.NoBody)
	rec := httptest.NewRecorder()
	s.handleCalculate(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rec := httptest.NewRecorder()
	s.handleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("expected healthy status, got: %s", rec.Body.String())
	}
}

func TestHandleAlgorithms(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/algorithms", http.NoBody)
	rec := httptest.NewRecorder()
	s.handleAlgorithms(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "doubling") {
		t.Errorf("expected doubling in algorithm list, got: %s", rec.Body.String())
	}
}
