package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/electroquick/pkg/errors"
)

type quantityBody struct {
	ProductID string `json:"product_id" validate:"required,productid"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=99"`
}

func TestDecodeJSONBody(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr bool
		field   string
	}{
		{name: "valid", body: `{"product_id":"p1","quantity":2}`},
		{name: "unknown field", body: `{"product_id":"p1","extra":true}`, wantErr: true},
		{name: "malformed", body: `{"product_id":`, wantErr: true},
		{name: "missing required", body: `{"quantity":2}`, wantErr: true, field: "product_id"},
		{name: "too many", body: `{"product_id":"p1","quantity":100}`, wantErr: true, field: "quantity"},
		{name: "bad product id", body: `{"product_id":"../etc/passwd"}`, wantErr: true, field: "product_id"},
		{name: "empty body", body: ``, wantErr: true},
		{name: "trailing document", body: `{"product_id":"p1"}{"product_id":"p2"}`, wantErr: true},
		{name: "oversized", body: `{"product_id":"p1","pad":"` + strings.Repeat("x", MaxBodyBytes) + `"}`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var dest quantityBody
			err := DecodeJSONBody(httptest.NewRecorder(), req, &dest)
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if tc.field != "" {
				details, ok := typed.Details().(map[string]string)
				if !ok || details[tc.field] == "" {
					t.Fatalf("expected details for %s, got %#v", tc.field, typed.Details())
				}
			}
		})
	}
}

func TestFieldMessagesNameCartLimits(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"p1","quantity":100}`))
	var dest quantityBody
	typed := pkgerrors.As(DecodeJSONBody(httptest.NewRecorder(), req, &dest))
	if typed == nil {
		t.Fatal("expected validation error")
	}
	details := typed.Details().(map[string]string)
	if details["quantity"] != "cannot exceed 99 units per line" {
		t.Fatalf("unexpected quantity message %q", details["quantity"])
	}
}

func TestParseQueryFloat(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?min_price=12.5&bad=abc", nil)

	v, err := ParseQueryFloat(req, "min_price")
	if err != nil || v == nil || *v != 12.5 {
		t.Fatalf("unexpected parse result %v %v", v, err)
	}
	if v, err := ParseQueryFloat(req, "missing"); err != nil || v != nil {
		t.Fatalf("expected nil for missing param, got %v %v", v, err)
	}
	if _, err := ParseQueryFloat(req, "bad"); err == nil {
		t.Fatal("expected error for non numeric value")
	}
}
