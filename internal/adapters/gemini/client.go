// internal/adapters/gemini/client.go
package gemini

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"dante_properties/internal/adapters/observability"
)

// Fallback is returned whenever no generation attempt produced text. The
// caller never sees an error from this package.
const Fallback = "🤖 **Dante Propiedades**\n\n" +
	"¡Hola! La aplicación está funcionando pero hay un problema temporal con el servicio de IA.\n\n" +
	"**Sistema disponible:**\n" +
	"✅ Búsqueda de propiedades\n" +
	"✅ Filtros por barrio, precio, tipo\n" +
	"✅ Base de datos cargada\n\n" +
	"⚠️ **El modo conversacional IA está temporalmente desactivado.**\n\n" +
	"**Cómo usar:**\n" +
	"1. Escribí tu búsqueda (ej: \"departamento en palermo\")\n" +
	"2. La app encontrará propiedades relevantes\n" +
	"3. Usá los filtros para refinar resultados\n\n" +
	"🏠 **¡La búsqueda de propiedades funciona perfectamente!**"

// Backend is one credential's view of the model API.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Gateway rotates through backends in order. Key order is the priority
// order; a key that errors or returns empty text passes the turn to the
// next one.
type Gateway struct {
	backends []Backend
	timeout  time.Duration
	rl       *rate.Limiter
}

// New builds one genai-backed Backend per non-blank key. An empty key set
// is not an error; Complete just answers with Fallback.
func New(ctx context.Context, keys []string, model string, timeout time.Duration, rps int) (*Gateway, error) {
	if model == "" {
		model = "gemini-2.0-flash-001"
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if rps <= 0 {
		rps = 5
	}

	var backends []Backend
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: k})
		if err != nil {
			return nil, err
		}
		backends = append(backends, &genaiBackend{client: client, model: model})
	}
	if len(backends) == 0 {
		log.Warn().Msg("no gemini keys configured, chat will answer with the static fallback")
	}
	return NewWithBackends(backends, timeout, rps), nil
}

func NewWithBackends(backends []Backend, timeout time.Duration, rps int) *Gateway {
	if rps <= 0 {
		rps = 5
	}
	return &Gateway{
		backends: backends,
		timeout:  timeout,
		rl:       rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// Complete tries each backend exactly once, in order, and never fails:
// when every attempt errors or comes back empty it returns Fallback.
func (g *Gateway) Complete(ctx context.Context, prompt string) string {
	if len(g.backends) == 0 {
		return Fallback
	}
	if err := g.rl.Wait(ctx); err != nil {
		return Fallback
	}

	for i, b := range g.backends {
		actx, cancel := context.WithTimeout(ctx, g.timeout)
		start := time.Now()
		text, err := b.Generate(actx, prompt)
		cancel()

		if err != nil {
			observability.ObserveExternal("gemini", "generate", 500, time.Since(start))
			log.Warn().
				Int("key", i+1).
				Int("keys", len(g.backends)).
				Str("reason", classify(err)).
				Err(err).
				Msg("gemini attempt failed, rotating")
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			observability.ObserveExternal("gemini", "generate", 204, time.Since(start))
			log.Warn().Int("key", i+1).Msg("gemini returned empty text, rotating")
			continue
		}
		observability.ObserveExternal("gemini", "generate", 200, time.Since(start))
		return text
	}

	log.Warn().Int("keys", len(g.backends)).Msg("all gemini keys failed, using static fallback")
	return Fallback
}

type genaiBackend struct {
	client *genai.Client
	model  string
}

func (b *genaiBackend) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		MaxOutputTokens: 1000,
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// classify buckets an attempt failure for the logs only; every failure is
// handled the same way (rotate).
func classify(err error) string {
	msg := err.Error()
	low := strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "429"):
		return "rate_limit"
	case strings.Contains(msg, "401"), strings.Contains(msg, "API_KEY_INVALID"),
		strings.Contains(msg, "PermissionDenied"):
		return "invalid_key"
	case strings.Contains(low, "quota"):
		return "quota"
	case strings.Contains(msg, "500"), strings.Contains(msg, "503"):
		return "server"
	case strings.Contains(low, "network"), strings.Contains(low, "connection"):
		return "network"
	}
	return "other"
}
