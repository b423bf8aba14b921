package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/vitrine-shop/go-backend/pkg/e"
)

func TestNormalizePrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"5", "5.00"},
		{"12.5", "12.50"},
		{"19.999", "20.00"},
		{"3,50", "3.50"},
		{"0", "0.00"},
		{"0,1", "0.10"},
		{"  7.25  ", "7.25"},
		{"100", "100.00"},
		{"2,999", "3.00"},
		{"2000000000", "2000000000.00"},
		{"999999999999.995", "1000000000000.00"},
	}

	for _, tc := range cases {
		got, err := NormalizePrice(tc.in)
		if err != nil {
			t.Fatalf("NormalizePrice(%q): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizePrice(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePriceRejects(t *testing.T) {
	cases := []string{
		"",
		"abc",
		"1.2.3",
		"1,2,3",
		"1.2,3",
		"1,2.3",
		"-5",
		"-0.01",
		"5.",
		".5",
		",5",
		"5 usd",
		"1e3",
		"+5",
	}

	for _, in := range cases {
		if _, err := NormalizePrice(in); !errors.Is(err, e.ErrInvalidPrice) {
			t.Fatalf("NormalizePrice(%q): expected ErrInvalidPrice, got %v", in, err)
		}
	}
}

func TestValidateCreate(t *testing.T) {
	product, err := ValidateCreate(CreateInput{Name: "Lamp", Price: "12.5", Image: "http://x/y.png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Name != "Lamp" || product.Price != "12.50" || product.Image != "http://x/y.png" {
		t.Fatalf("unexpected product: %+v", product)
	}
	if product.ID != "" {
		t.Fatalf("id must be assigned by the store, got %q", product.ID)
	}
}

func TestValidateCreateMissingFields(t *testing.T) {
	cases := []struct {
		in      CreateInput
		missing []string
	}{
		{CreateInput{Price: "1", Image: "http://x"}, []string{"name"}},
		{CreateInput{Name: "A", Image: "http://x"}, []string{"price"}},
		{CreateInput{Name: "A", Price: "1"}, []string{"image"}},
		{CreateInput{}, []string{"name", "price", "image"}},
		{CreateInput{Name: "   ", Price: "1", Image: "http://x"}, []string{"name"}},
	}

	for _, tc := range cases {
		_, err := ValidateCreate(tc.in)
		if !errors.Is(err, e.ErrMissingFields) {
			t.Fatalf("ValidateCreate(%+v): expected ErrMissingFields, got %v", tc.in, err)
		}
		for _, field := range tc.missing {
			if !strings.Contains(err.Error(), field) {
				t.Fatalf("error %q must name the missing field %q", err.Error(), field)
			}
		}
	}
}

func TestValidateCreateInvalidPrice(t *testing.T) {
	_, err := ValidateCreate(CreateInput{Name: "A", Price: "1.2.3", Image: "http://x"})
	if !errors.Is(err, e.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestValidateUpdateNormalizesPrice(t *testing.T) {
	price := "19.999"
	out, err := ValidateUpdate(UpdateInput{Price: &price})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Price == nil || *out.Price != "20.00" {
		t.Fatalf("expected normalized price 20.00, got %+v", out.Price)
	}
	if out.Name != nil || out.Image != nil {
		t.Fatalf("untouched fields must stay nil: %+v", out)
	}
}

func TestValidateUpdateRejectsEmptyProvidedField(t *testing.T) {
	empty := ""
	if _, err := ValidateUpdate(UpdateInput{Name: &empty}); !errors.Is(err, e.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields for empty name, got %v", err)
	}
	if _, err := ValidateUpdate(UpdateInput{Image: &empty}); !errors.Is(err, e.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields for empty image, got %v", err)
	}
}

func TestValidateUpdateEmptyPatch(t *testing.T) {
	out, err := ValidateUpdate(UpdateInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != nil || out.Price != nil || out.Image != nil {
		t.Fatalf("expected empty patch, got %+v", out)
	}
}
