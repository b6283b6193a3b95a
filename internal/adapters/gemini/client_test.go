package gemini_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dante_properties/internal/adapters/gemini"
)

type scriptedBackend struct {
	text  string
	err   error
	calls int
}

func (b *scriptedBackend) Generate(ctx context.Context, prompt string) (string, error) {
	b.calls++
	return b.text, b.err
}

func gw(backends ...gemini.Backend) *gemini.Gateway {
	return gemini.NewWithBackends(backends, time.Second, 100)
}

func TestComplete_FirstKeyWins(t *testing.T) {
	a := &scriptedBackend{text: "Hola, tengo opciones para vos."}
	b := &scriptedBackend{text: "never"}

	got := gw(a, b).Complete(context.Background(), "busco casa")
	if got != "Hola, tengo opciones para vos." {
		t.Fatalf("got %q", got)
	}
	if a.calls != 1 || b.calls != 0 {
		t.Fatalf("calls = %d/%d, rotation should stop at first success", a.calls, b.calls)
	}
}

func TestComplete_RotatesOnErrorAndEmpty(t *testing.T) {
	a := &scriptedBackend{err: errors.New("googleapi: Error 429: rate limit")}
	b := &scriptedBackend{text: "   "}
	c := &scriptedBackend{text: "Respuesta de la tercera clave"}

	got := gw(a, b, c).Complete(context.Background(), "busco casa")
	if got != "Respuesta de la tercera clave" {
		t.Fatalf("got %q", got)
	}
	if a.calls != 1 || b.calls != 1 || c.calls != 1 {
		t.Fatalf("calls = %d/%d/%d, each key gets exactly one attempt", a.calls, b.calls, c.calls)
	}
}

func TestComplete_AllKeysFailFallsBack(t *testing.T) {
	a := &scriptedBackend{err: errors.New("API_KEY_INVALID")}
	b := &scriptedBackend{err: errors.New("quota exceeded")}

	got := gw(a, b).Complete(context.Background(), "busco casa")
	if got != gemini.Fallback {
		t.Fatalf("expected the static fallback, got %q", got)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("calls = %d/%d", a.calls, b.calls)
	}
}

func TestComplete_NoKeysFallsBack(t *testing.T) {
	if got := gw().Complete(context.Background(), "hola"); got != gemini.Fallback {
		t.Fatalf("got %q", got)
	}
}
