package chat_test

import (
	"strings"
	"testing"

	"dante_properties/internal/chat"
	"dante_properties/internal/domain"
)

func prop(tipo, barrio, ope string, price float64) domain.Property {
	return domain.Property{
		ExternalID:   "x",
		Title:        "t",
		Neighborhood: barrio,
		Price:        price,
		Rooms:        2,
		SquareMeters: 50,
		Operation:    ope,
		Type:         tipo,
	}
}

func TestBuildPrompt_WithResults(t *testing.T) {
	records := []domain.Property{
		prop("casa", "Palermo", "venta", 100000),
		prop("departamento", "Boedo", "alquiler", 90000),
	}
	p := chat.BuildPrompt("casa en palermo", records, true, domain.FilterSet{}, "web", "")

	if !strings.Contains(p, "ENCONTRÉ 2 PROPIEDADES") {
		t.Fatalf("missing count confirmation: %q", p)
	}
	if !strings.Contains(p, "NO las listes") {
		t.Fatalf("missing no-enumeration instruction: %q", p)
	}
	if !strings.Contains(p, "profesional y cálido") {
		t.Fatalf("web channel should use the full tone: %q", p)
	}
	if !strings.Contains(p, "Boedo, Palermo") {
		t.Fatalf("missing neighborhood context: %q", p)
	}
}

func TestBuildPrompt_WhatsappTone(t *testing.T) {
	records := []domain.Property{prop("ph", "Almagro", "venta", 80000)}
	p := chat.BuildPrompt("ph", records, true, domain.FilterSet{}, "whatsapp", "")
	if !strings.Contains(p, "breve y directo") {
		t.Fatalf("whatsapp channel should use the terse tone: %q", p)
	}
}

func TestBuildPrompt_EmptyResults(t *testing.T) {
	barrio := "Pilar"
	f := domain.FilterSet{Neighborhood: &barrio}
	p := chat.BuildPrompt("casa en pilar", []domain.Property{}, true, f, "web", "")

	if !strings.Contains(p, "NO SE ENCONTRARON PROPIEDADES") {
		t.Fatalf("missing no-results statement: %q", p)
	}
	if !strings.Contains(p, "barrio=Pilar") {
		t.Fatalf("active filters should be included for context: %q", p)
	}
}

func TestBuildPrompt_NoSearch(t *testing.T) {
	extra := "Barrios disponibles: Palermo, Boedo."
	p := chat.BuildPrompt("qué me recomendás?", nil, false, domain.FilterSet{}, "web", extra)

	if !strings.Contains(p, "consulta general o conversacional") {
		t.Fatalf("missing general branch: %q", p)
	}
	if !strings.Contains(p, extra) {
		t.Fatalf("ambient context should be appended: %q", p)
	}
	if strings.Contains(p, "ENCONTRÉ") || strings.Contains(p, "NO SE ENCONTRARON") {
		t.Fatalf("branches must be mutually exclusive: %q", p)
	}
}
