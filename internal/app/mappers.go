package app

import (
	"strconv"
	"strings"
	"time"

	"dante_properties/internal/domain"
)

/********** alias registry (single source of truth) **********/

// The catalog feed is scraped JSON; field names drift between feed
// versions, so every attribute has an ordered alias list.
var propertyAliases = map[string][]string{
	"external_id":       {"id_temporal", "external_id", "id"},
	"title":             {"titulo", "title"},
	"neighborhood":      {"barrio", "neighborhood", "zona"},
	"description":       {"descripcion", "description"},
	"operation":         {"operacion", "operation"},
	"type":              {"tipo", "type", "property_type"},
	"address":           {"direccion", "address"},
	"condition":         {"estado", "condition"},
	"orientation":       {"orientacion", "orientation"},
	"currency":          {"moneda_precio", "moneda", "currency"},
	"expenses_currency": {"moneda_expensas", "expenses_currency"},
	"garage":            {"cochera", "garage"},
	"balcony":           {"balcon", "balcony"},
	"pool":              {"pileta", "pool"},
	"pets":              {"acepta_mascotas", "mascotas", "pets_allowed"},
	"air":               {"aire_acondicionado", "aire", "air_conditioning"},
	"processed_at":      {"fecha_procesamiento", "processed_at"},
}

// mapFeedProperty builds a domain.Property from one raw feed entry.
// Missing attributes stay zero/nil; Validate decides whether the record is
// usable.
func mapFeedProperty(m map[string]any) domain.Property {
	p := domain.Property{
		ExternalID:   aliasStr(m, "external_id"),
		Title:        aliasStr(m, "title"),
		Neighborhood: aliasStr(m, "neighborhood"),
		Description:  aliasStr(m, "description"),
		Operation:    strings.ToLower(aliasStr(m, "operation")),
		Type:         strings.ToLower(aliasStr(m, "type")),
	}

	if f := getFloatFlexible(m, "precio", "price"); f != nil {
		p.Price = *f
	}
	if n := getIntFlexible(m, "ambientes", "rooms"); n != nil {
		p.Rooms = *n
	}
	if f := getFloatFlexible(m, "metros_cuadrados", "m2", "sqm"); f != nil {
		p.SquareMeters = *f
	}

	p.Currency = ptrStr(aliasStr(m, "currency"))
	p.Address = ptrStr(aliasStr(m, "address"))
	p.Condition = ptrStr(aliasStr(m, "condition"))
	p.Orientation = ptrStr(aliasStr(m, "orientation"))
	p.Age = getIntFlexible(m, "antiguedad", "age")
	p.Expenses = getFloatFlexible(m, "expensas", "expenses")
	p.ExpensesCurrency = ptrStr(aliasStr(m, "expenses_currency"))

	p.Garage = triState(aliasStr(m, "garage"))
	p.Balcony = triState(aliasStr(m, "balcony"))
	p.Pool = triState(aliasStr(m, "pool"))
	p.PetsAllowed = triState(aliasStr(m, "pets"))
	p.AirConditioning = triState(aliasStr(m, "air"))

	p.Photos = strList(m, "fotos", "photos")
	p.Videos = strList(m, "videos")
	p.Documents = strList(m, "documentos", "documents")

	if ts := parseFeedTime(aliasStr(m, "processed_at")); ts != nil {
		p.ProcessedAt = ts
	}
	return p
}

/********** tiny helpers **********/

func aliasStr(m map[string]any, key string) string {
	for _, k := range propertyAliases[key] {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func ptrStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// getFloatFlexible: number from several keys (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, keys ...string) *float64 {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func getIntFlexible(m map[string]any, keys ...string) *int {
	if f := getFloatFlexible(m, keys...); f != nil {
		n := int(*f)
		return &n
	}
	return nil
}

// triState normalizes an amenity flag to "si"/"no", or nil for unknown.
func triState(s string) *string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "si", "sí", "yes", "true", "1":
		v := "si"
		return &v
	case "no", "false", "0":
		v := "no"
		return &v
	}
	return nil
}

func strList(m map[string]any, keys ...string) []string {
	for _, k := range keys {
		raw, ok := m[k].([]any)
		if !ok {
			continue
		}
		var out []string
		for _, e := range raw {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func parseFeedTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
