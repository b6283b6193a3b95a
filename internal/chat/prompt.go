package chat

import (
	"fmt"
	"sort"
	"strings"

	"dante_properties/internal/domain"
)

// BuildPrompt formats the single instruction string sent to the LLM. It is
// pure string construction with three mutually exclusive branches: matches
// found, search with no matches, and no search at all. It never touches the
// network.
func BuildPrompt(userText string, records []domain.Property, searched bool, f domain.FilterSet, channel, extra string) string {
	tone := "profesional y cálido"
	if channel == "whatsapp" {
		tone = "breve y directo"
	}

	switch {
	case searched && len(records) > 0:
		return matchesPrompt(userText, records, tone)
	case searched:
		return noMatchesPrompt(userText, f)
	default:
		return generalPrompt(userText, tone, extra)
	}
}

// matchesPrompt instructs the model to confirm a count without enumerating:
// the caller renders the records as visual cards, so any listing in the text
// would duplicate them.
func matchesPrompt(userText string, records []domain.Property, tone string) string {
	tipos := distinct(records, func(p domain.Property) string { return title(p.Type) })
	barrios := distinct(records, func(p domain.Property) string { return p.Neighborhood })
	operaciones := distinct(records, func(p domain.Property) string { return title(p.Operation) })

	n := len(records)
	return fmt.Sprintf(
		"El usuario busca: '%s'\n\n"+
			"ENCONTRÉ %d PROPIEDADES que coinciden. "+
			"**IMPORTANTE: Las propiedades se muestran en TARJETAS VISUALES en la interfaz - NO las listes en el texto.**\n\n"+
			"INFORMACIÓN PARA CONTEXTO (NO mostrar al usuario):\n"+
			"- Total propiedades: %d\n"+
			"- Tipos: %s\n"+
			"- Barrios: %s\n"+
			"- Operaciones: %s\n\n"+
			"INSTRUCCIONES ESPECÍFICAS:\n"+
			"1. Da un mensaje BREVE confirmando que encontraste propiedades\n"+
			"2. NO listes las propiedades individualmente\n"+
			"3. NO uses números (1., 2., 3.) ni detalles específicos\n"+
			"4. NO uses emojis de propiedades (🏠, 📍, 💰, 🏢, 📐) en el texto\n"+
			"5. Puedes mencionar patrones generales (ej: 'propiedades en venta', 'varios barrios')\n"+
			"6. Invita al usuario a ver las propiedades en las tarjetas visuales\n"+
			"7. Ofrece ayuda para refinar o preguntar sobre propiedades específicas\n"+
			"8. Mantén un tono %s\n\n"+
			"¡RESPONDE SOLO CON UN MENSAJE BREVE SIN LISTAR PROPIEDADES!",
		userText, n, n,
		orDefault(tipos, "Varios"),
		orDefault(barrios, "Varias zonas"),
		orDefault(operaciones, "Varias"),
		tone,
	)
}

func noMatchesPrompt(userText string, f domain.FilterSet) string {
	return fmt.Sprintf(
		"El usuario busca: '%s'\n\n"+
			"NO SE ENCONTRARON PROPIEDADES con los filtros actuales.\n\n"+
			"INSTRUCCIONES:\n"+
			"1. Informa amablemente que no hay resultados\n"+
			"2. Sugiere ajustar filtros o ampliar la búsqueda\n"+
			"3. Pregunta por preferencias más específicas\n"+
			"4. Ofrece ayuda para refinar la búsqueda\n"+
			"5. Mantén un tono positivo y útil\n\n"+
			"Filtros aplicados: %s\n\n"+
			"Ejemplo: 'No encontré propiedades con esos filtros. ¿Querés probar con otros barrios o precios?'",
		userText, f.String(),
	)
}

func generalPrompt(userText, tone, extra string) string {
	return fmt.Sprintf(
		"El usuario dice: '%s'\n\n"+
			"Esta es una consulta general o conversacional.\n\n"+
			"INSTRUCCIONES:\n"+
			"1. Responde de manera natural y útil\n"+
			"2. Si es sobre tipos de propiedades, sugiere usar los filtros\n"+
			"3. Si es una pregunta específica, responde concisamente\n"+
			"4. Invita a realizar una búsqueda si es apropiado\n"+
			"5. Mantén un tono %s\n\n"+
			"%s",
		userText, tone, extra,
	)
}

func distinct(records []domain.Property, pick func(domain.Property) string) string {
	seen := map[string]bool{}
	var vals []string
	for _, p := range records {
		v := pick(p)
		if v != "" && !seen[v] {
			seen[v] = true
			vals = append(vals, v)
		}
	}
	sort.Strings(vals)
	return strings.Join(vals, ", ")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
