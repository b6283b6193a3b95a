package chat_test

import (
	"testing"

	"dante_properties/internal/chat"
	"dante_properties/internal/domain"
)

func TestExtract_NoPatterns(t *testing.T) {
	for _, text := range []string{
		"",
		"gracias por la ayuda",
		"qué documentación necesito para escriturar",
		"me gustaría vivir en serio",
	} {
		f := chat.Extract(text)
		if !f.Empty() {
			t.Fatalf("expected empty FilterSet for %q, got %s", text, f.String())
		}
	}
}

func TestExtract_NeighborhoodSubstring(t *testing.T) {
	cases := map[string]string{
		"busco algo en palermo por favor": "Palermo",
		"PALERMO me interesa":             "Palermo",
		"vivo cerca de villa crespo":      "Villa Crespo",
		// Gazetteer order wins, not text order.
		"zona recoleta o belgrano": "Belgrano",
	}
	for text, want := range cases {
		f := chat.Extract(text)
		if f.Neighborhood == nil || *f.Neighborhood != want {
			t.Fatalf("%q: expected neighborhood %q, got %v", text, want, f.Neighborhood)
		}
	}
}

func TestExtract_TypeAndOperation(t *testing.T) {
	f := chat.Extract("departamento en alquiler")
	if f.Type == nil || *f.Type != "departamento" {
		t.Fatalf("expected tipo departamento, got %v", f.Type)
	}
	if f.Operation == nil || *f.Operation != "alquiler" {
		t.Fatalf("expected operacion alquiler, got %v", f.Operation)
	}

	// First vocabulary entry wins: "casaquinta" contains "casa".
	f = chat.Extract("quiero una casaquinta")
	if f.Type == nil || *f.Type != "casa" {
		t.Fatalf("expected vocabulary-order match casa, got %v", f.Type)
	}
}

func TestExtract_MaxPrice(t *testing.T) {
	cases := map[string]float64{
		"hasta $150.000 usd":        150000,
		"máximo 90.000":             90000,
		"menos de 200.000 dólares":  200000,
		"algo de $120.000 usd":      120000,
		"precio tope 100.000 pesos": 100000,
	}
	for text, want := range cases {
		f := chat.Extract(text)
		if f.MaxPrice == nil || *f.MaxPrice != want {
			t.Fatalf("%q: expected max price %v, got %v", text, want, f.MaxPrice)
		}
	}

	// Dots-only capture fails to parse; the extractor moves on instead of
	// aborting, and with no other pattern matching the key stays absent.
	f := chat.Extract("hasta $...")
	if f.MaxPrice != nil {
		t.Fatalf("expected no max price, got %v", *f.MaxPrice)
	}
}

func TestExtract_MinPriceRoomsSqm(t *testing.T) {
	f := chat.Extract("desde 50.000, 3 ambientes y 80 m2")
	if f.MinPrice == nil || *f.MinPrice != 50000 {
		t.Fatalf("expected min price 50000, got %v", f.MinPrice)
	}
	if f.MinRooms == nil || *f.MinRooms != 3 {
		t.Fatalf("expected 3 rooms, got %v", f.MinRooms)
	}
	if f.MinSqm == nil || *f.MinSqm != 80 {
		t.Fatalf("expected 80 sqm, got %v", f.MinSqm)
	}

	f = chat.Extract("100 metros como mínimo")
	if f.MinSqm == nil || *f.MinSqm != 100 {
		t.Fatalf("expected 100 sqm, got %v", f.MinSqm)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	text := "departamento en venta en palermo hasta $150.000 usd"
	a := chat.Extract(text)
	b := chat.Extract(text)
	if a.CacheKey() != b.CacheKey() {
		t.Fatalf("extraction not deterministic: %s vs %s", a.CacheKey(), b.CacheKey())
	}
	want := domain.FilterSet{}
	if a.CacheKey() == want.CacheKey() {
		t.Fatalf("expected non-empty extraction for %q", text)
	}
}
