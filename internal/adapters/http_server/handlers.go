// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"dante_properties/internal/adapters/observability"
	"dante_properties/internal/app"
	"dante_properties/internal/chat"
	"dante_properties/internal/domain"
	"dante_properties/internal/shared"
)

type Handlers struct {
	Chat     *chat.Orchestrator
	Search   *app.SearchService
	Contacts *app.ContactService
	Stats    *observability.Collector
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/api/chat", h.chat)
	s.mux.Get("/api/properties", h.listProperties)
	s.mux.Get("/api/properties/search", h.listProperties)
	s.mux.Get("/api/filters", h.filters)
	s.mux.Post("/api/contact", h.contact)
	s.mux.Get("/api/status", h.status)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// ---- chat ----

type chatRequest struct {
	Message string            `json:"message"`
	Channel string            `json:"channel"`
	Filters *domain.FilterSet `json:"filters"`
	// the frontend sends an opaque context object; only presence matters
	Context json.RawMessage `json:"contexto_anterior"`
}

func (r chatRequest) hasContext() bool {
	s := strings.TrimSpace(string(r.Context))
	return s != "" && s != "null" && s != "{}" && s != "false"
}

type chatResponse struct {
	Response        string         `json:"response"`
	ResultsCount    *int           `json:"results_count,omitempty"`
	SearchPerformed bool           `json:"search_performed"`
	Properties      []propertyJSON `json:"propiedades,omitempty"`
}

func (h *Handlers) chat(w http.ResponseWriter, r *http.Request) {
	h.Stats.IncRequest()

	// the chat pipeline must never take the whole process down
	defer func() {
		if rec := recover(); rec != nil {
			h.Stats.IncFailure()
			log.Error().Interface("panic", rec).Msg("chat handler panicked")
			writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "Ocurrió un error procesando tu consulta.")
		}
	}()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Stats.IncFailure()
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be valid JSON")
		return
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		h.Stats.IncFailure()
		writeProblem(w, http.StatusBadRequest, "Invalid Message", "El mensaje no puede estar vacío")
		return
	}
	if len(msg) > 1000 {
		h.Stats.IncFailure()
		writeProblem(w, http.StatusBadRequest, "Invalid Message", "El mensaje supera los 1000 caracteres")
		return
	}

	var explicit domain.FilterSet
	if req.Filters != nil {
		explicit = *req.Filters
	}
	reply := h.Chat.Handle(r.Context(), chat.Request{
		Message:    msg,
		Channel:    strings.TrimSpace(req.Channel),
		Filters:    explicit,
		HasContext: req.hasContext(),
	})
	h.Stats.IncSuccess()

	writeJSON(w, http.StatusOK, chatResponse{
		Response:        reply.Text,
		ResultsCount:    reply.ResultCount,
		SearchPerformed: reply.SearchPerformed,
		Properties:      toPropertyJSON(reply.Records),
	})
}

// ---- catalog ----

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.FilterSet{
		Neighborhood: qStr(q.Get("neighborhood")),
		Operation:    qStr(q.Get("operacion")),
		Type:         qStr(q.Get("tipo")),
		MinPrice:     qFloat(q.Get("min_price")),
		MaxPrice:     qFloat(q.Get("max_price")),
		MinRooms:     qInt(q.Get("min_rooms")),
		MinSqm:       qFloat(q.Get("min_sqm")),
		MaxSqm:       qFloat(q.Get("max_sqm")),
	}

	limit := 20
	if ls := q.Get("limit"); ls != "" {
		if l, err := strconv.Atoi(ls); err == nil && l > 0 && l <= 200 {
			limit = l
		}
	}

	results, err := h.Search.Search(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("property search failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "no se pudo ejecutar la búsqueda")
		return
	}
	total := len(results)
	if total > limit {
		results = results[:limit]
	}

	out := map[string]any{
		"total":      total,
		"properties": toPropertyJSON(results),
		"filters":    f,
	}
	etag, body := calcETagAndBody(out)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write properties body")
	}
}

func (h *Handlers) filters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"operaciones": shared.Operations,
		"tipos":       shared.PropertyTypes,
		"barrios":     shared.Neighborhoods,
	})
}

// ---- contact ----

type contactRequest struct {
	CorrelationID string  `json:"timestamp"`
	Name          string  `json:"nombre"`
	Email         *string `json:"email"`
	Phone         *string `json:"telefono"`
	Notes         *string `json:"notas"`
	Status        string  `json:"estado"`
}

func (h *Handlers) contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be valid JSON")
		return
	}

	ip := remoteIP(r)
	ua := r.UserAgent()
	c := domain.Contact{
		CorrelationID: req.CorrelationID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Notes:         req.Notes,
		Status:        req.Status,
		RemoteIP:      &ip,
		UserAgent:     &ua,
	}

	id, err := h.Contacts.Submit(r.Context(), c)
	if err != nil {
		if err == domain.ErrValidation {
			writeProblem(w, http.StatusBadRequest, "Invalid Contact", "el nombre es obligatorio")
			return
		}
		log.Error().Err(err).Msg("contact upsert failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "no se pudo guardar el contacto")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "correlation_id": id})
}

// ---- status ----

func (h *Handlers) status(w http.ResponseWriter, r *http.Request) {
	s := h.Stats.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "activo",
		"uptime_seconds":     h.Stats.Uptime().Seconds(),
		"consultas_totales":  s.Requests,
		"consultas_exitosas": s.Successes,
		"consultas_fallidas": s.Failures,
		"llamadas_ia":        s.LLMCalls,
		"busquedas":          s.Searches,
	})
}

// ---- query param helpers ----

func qStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// invalid numbers are ignored rather than rejected
func qFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func qInt(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// ---- DTO ----

// propertyJSON keeps the wire names the frontend already speaks.
type propertyJSON struct {
	ExternalID       string   `json:"id_temporal"`
	Title            string   `json:"titulo"`
	Neighborhood     string   `json:"barrio"`
	Price            float64  `json:"precio"`
	Rooms            int      `json:"ambientes"`
	SquareMeters     float64  `json:"metros_cuadrados"`
	Description      string   `json:"descripcion"`
	Operation        string   `json:"operacion"`
	Type             string   `json:"tipo"`
	Address          *string  `json:"direccion,omitempty"`
	Age              *int     `json:"antiguedad,omitempty"`
	Condition        *string  `json:"estado,omitempty"`
	Orientation      *string  `json:"orientacion,omitempty"`
	Expenses         *float64 `json:"expensas,omitempty"`
	Garage           *string  `json:"cochera,omitempty"`
	Balcony          *string  `json:"balcon,omitempty"`
	Pool             *string  `json:"pileta,omitempty"`
	PetsAllowed      *string  `json:"acepta_mascotas,omitempty"`
	AirConditioning  *string  `json:"aire_acondicionado,omitempty"`
	Photos           []string `json:"fotos,omitempty"`
	Videos           []string `json:"videos,omitempty"`
	Documents        []string `json:"documentos,omitempty"`
	Currency         *string  `json:"moneda_precio,omitempty"`
	ExpensesCurrency *string  `json:"moneda_expensas,omitempty"`
	ProcessedAt      *string  `json:"fecha_procesamiento,omitempty"`
}

func toPropertyJSON(in []domain.Property) []propertyJSON {
	if len(in) == 0 {
		return nil
	}
	out := make([]propertyJSON, 0, len(in))
	for _, p := range in {
		j := propertyJSON{
			ExternalID:       p.ExternalID,
			Title:            p.Title,
			Neighborhood:     p.Neighborhood,
			Price:            p.Price,
			Rooms:            p.Rooms,
			SquareMeters:     p.SquareMeters,
			Description:      p.Description,
			Operation:        p.Operation,
			Type:             p.Type,
			Address:          p.Address,
			Age:              p.Age,
			Condition:        p.Condition,
			Orientation:      p.Orientation,
			Expenses:         p.Expenses,
			Garage:           p.Garage,
			Balcony:          p.Balcony,
			Pool:             p.Pool,
			PetsAllowed:      p.PetsAllowed,
			AirConditioning:  p.AirConditioning,
			Photos:           p.Photos,
			Videos:           p.Videos,
			Documents:        p.Documents,
			Currency:         p.Currency,
			ExpensesCurrency: p.ExpensesCurrency,
		}
		if p.ProcessedAt != nil {
			ts := p.ProcessedAt.Format(time.RFC3339)
			j.ProcessedAt = &ts
		}
		out = append(out, j)
	}
	return out
}
