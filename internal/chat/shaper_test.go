package chat_test

import (
	"strings"
	"testing"

	"dante_properties/internal/chat"
)

func TestShape_StripsNumberedListing(t *testing.T) {
	in := "1. Casa en Palermo 🏠\n2. PH en Boedo 🏠\n\n¡Mirá las opciones!"
	out := chat.Shape(in, 2)

	if strings.Contains(out, "Casa en Palermo") || strings.Contains(out, "PH en Boedo") {
		t.Fatalf("listing lines survived shaping: %q", out)
	}
	if !strings.HasPrefix(out, "¡Mirá las opciones!") {
		t.Fatalf("expected surviving text first, got %q", out)
	}
}

func TestShape_DropsDetailEmojiLinesOutsideBlocks(t *testing.T) {
	in := "Encontré varias propiedades interesantes.\n📍 Av. Siempre Viva 123\nTe las muestro abajo."
	out := chat.Shape(in, 3)
	if strings.Contains(out, "Siempre Viva") {
		t.Fatalf("detail line survived: %q", out)
	}
	if !strings.Contains(out, "Encontré varias propiedades") {
		t.Fatalf("normal text dropped: %q", out)
	}
}

func TestShape_DegenerateResultSynthesized(t *testing.T) {
	in := "1. Casa 🏠\n2. PH 🏠"
	out := chat.Shape(in, 2)
	want := "✅ Encontré 2 propiedades que coinciden con tu búsqueda. Te las muestro abajo:"
	if out != want {
		t.Fatalf("expected synthesized confirmation, got %q", out)
	}
}

func TestShape_AppendsSuffixWhenNoMention(t *testing.T) {
	in := "¡Excelente elección! Hay varias opciones en esa zona para vos."
	out := chat.Shape(in, 4)
	if !strings.Contains(out, "Encontré 4 propiedades") {
		t.Fatalf("expected pointer to result cards, got %q", out)
	}
}

func TestShape_LeavesMentioningTextAlone(t *testing.T) {
	in := "Encontré varias propiedades que coinciden con tu búsqueda. Mirá las tarjetas de abajo."
	out := chat.Shape(in, 5)
	if out != in {
		t.Fatalf("expected text unchanged, got %q", out)
	}
}

func TestShape_ToleratesPlainText(t *testing.T) {
	// No emoji, no lists; the heuristic must not mangle ordinary prose.
	in := "Tenemos muchas propiedades en venta en esa zona, fijate en las tarjetas."
	if out := chat.Shape(in, 1); out != in {
		t.Fatalf("plain text changed: %q", out)
	}
}
