package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"dante_properties/internal/domain"
	"dante_properties/internal/shared"
)

// Searcher is the slice of the search service the orchestrator needs.
type Searcher interface {
	Search(ctx context.Context, f domain.FilterSet) ([]domain.Property, error)
}

// Collector receives business counters. Injected rather than global so the
// orchestrator stays testable and processes can scope their own tallies.
type Collector interface {
	IncSearch()
	IncLLMCall()
}

// greetingTokens short-circuit the LLM on a first-turn greeting: the most
// common opening turn should not cost an API call, and the front end has
// its own welcome card.
var greetingTokens = []string{"hola", "hi", "hello", "buenas", "empezar", "inicio", "ayuda"}

const WelcomeMessage = `¡Hola! 👋 Soy tu asistente de Dante Propiedades.

Te ayudo a encontrar la propiedad ideal. Podés:
• Usar los filtros a la izquierda para búsquedas específicas
• Contarme directamente qué estás buscando
• Preguntarme sobre propiedades que veas

¿En qué tipo de propiedad estás interesado hoy?`

const historyTurns = 5

type Request struct {
	Message string
	Channel string
	Filters domain.FilterSet
	// HasContext is true when the caller supplied previous conversation
	// context, i.e. this is not the first turn.
	HasContext bool
}

type Reply struct {
	Text            string
	SearchPerformed bool
	ResultCount     *int
	Records         []domain.Property
}

// Orchestrator sequences the chat pipeline: extract -> merge -> search ->
// prompt -> LLM -> shape -> log.
type Orchestrator struct {
	search Searcher
	convo  domain.ConversationLog
	llm    domain.Completer
	stats  Collector
}

func NewOrchestrator(s Searcher, convo domain.ConversationLog, llm domain.Completer, stats Collector) *Orchestrator {
	return &Orchestrator{search: s, convo: convo, llm: llm, stats: stats}
}

// Handle runs one chat turn. It never returns an error: store failures
// degrade to empty results, LLM failures surface as the gateway's fallback
// text, and a lost log append must never fail the user-visible response.
func (o *Orchestrator) Handle(ctx context.Context, req Request) Reply {
	start := time.Now()
	textLower := strings.ToLower(strings.TrimSpace(req.Message))

	detected := Extract(textLower)
	filters := req.Filters.Merge(detected)

	log.Debug().
		Str("channel", req.Channel).
		Str("detected", detected.String()).
		Str("merged", filters.String()).
		Msg("chat filters")

	var records []domain.Property
	searched := false
	if !filters.Empty() {
		searched = true
		o.stats.IncSearch()
		rs, err := o.search.Search(ctx, filters)
		if err != nil {
			// Keep the chat flow alive on a store outage.
			log.Error().Err(err).Msg("property search failed, continuing with empty results")
			rs = nil
		}
		if rs == nil {
			rs = []domain.Property{}
		}
		records = rs
	}

	var answer string
	if isGreeting(textLower) && !req.HasContext {
		answer = WelcomeMessage
	} else {
		prompt := BuildPrompt(req.Message, records, searched, filters, req.Channel, o.ambientContext(ctx, req.Channel))
		o.stats.IncLLMCall()
		answer = o.llm.Complete(ctx, prompt)
		if searched && len(records) > 0 {
			answer = Shape(answer, len(records))
		}
	}

	turn := domain.ConversationTurn{
		Channel:         req.Channel,
		UserMessage:     req.Message,
		BotResponse:     answer,
		ResponseSeconds: time.Since(start).Seconds(),
		SearchPerformed: searched,
		ResultCount:     len(records),
	}
	// Detached context: a caller disconnect must not lose the audit entry.
	if err := o.convo.Append(context.WithoutCancel(ctx), turn); err != nil {
		log.Warn().Err(err).Msg("conversation log append failed")
	}

	reply := Reply{Text: answer, SearchPerformed: searched}
	if searched {
		n := len(records)
		reply.ResultCount = &n
		reply.Records = records
	}
	return reply
}

func isGreeting(textLower string) bool {
	for _, tok := range greetingTokens {
		if strings.Contains(textLower, tok) {
			return true
		}
	}
	return false
}

// ambientContext assembles the style hint, the advertised vocabulary and
// recent history for the general-conversation prompt branch.
func (o *Orchestrator) ambientContext(ctx context.Context, channel string) string {
	style := "Respondé de forma explicativa, profesional y cálida como si fuera una consulta web."
	if channel == "whatsapp" {
		style = "Respondé de forma breve, directa y cálida como si fuera un mensaje de WhatsApp."
	}

	vocab := fmt.Sprintf(
		"Barrios disponibles: %s.\nTipos de propiedad: %s.\nOperaciones disponibles: %s.",
		strings.Join(shared.Neighborhoods, ", "),
		strings.Join(shared.PropertyTypes, ", "),
		strings.Join(shared.Operations, ", "),
	)

	var hist strings.Builder
	if exchanges, err := o.convo.Recent(ctx, channel, historyTurns); err == nil && len(exchanges) > 0 {
		hist.WriteString("\nHistorial reciente:\n")
		for _, e := range exchanges {
			fmt.Fprintf(&hist, "- Usuario: %s\n- Asistente: %s\n", e.UserMessage, e.BotResponse)
		}
	}

	return style + "\n" + vocab + hist.String()
}
