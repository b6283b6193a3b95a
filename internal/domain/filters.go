package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FilterSet is a partial set of property-search constraints. A nil field
// means "unconstrained"; no field ever carries a sentinel value.
type FilterSet struct {
	Neighborhood *string  `json:"neighborhood,omitempty"`
	Operation    *string  `json:"operacion,omitempty"`
	Type         *string  `json:"tipo,omitempty"`
	MinPrice     *float64 `json:"min_price,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	MinRooms     *int     `json:"min_rooms,omitempty"`
	MinSqm       *float64 `json:"min_sqm,omitempty"`
	MaxSqm       *float64 `json:"max_sqm,omitempty"`
}

func (f FilterSet) Empty() bool {
	return f.Neighborhood == nil && f.Operation == nil && f.Type == nil &&
		f.MinPrice == nil && f.MaxPrice == nil && f.MinRooms == nil &&
		f.MinSqm == nil && f.MaxSqm == nil
}

// Merge fills gaps in f from detected: a key already set in f always wins,
// detected values only land on keys f left unconstrained.
func (f FilterSet) Merge(detected FilterSet) FilterSet {
	out := f
	if out.Neighborhood == nil {
		out.Neighborhood = detected.Neighborhood
	}
	if out.Operation == nil {
		out.Operation = detected.Operation
	}
	if out.Type == nil {
		out.Type = detected.Type
	}
	if out.MinPrice == nil {
		out.MinPrice = detected.MinPrice
	}
	if out.MaxPrice == nil {
		out.MaxPrice = detected.MaxPrice
	}
	if out.MinRooms == nil {
		out.MinRooms = detected.MinRooms
	}
	if out.MinSqm == nil {
		out.MinSqm = detected.MinSqm
	}
	if out.MaxSqm == nil {
		out.MaxSqm = detected.MaxSqm
	}
	return out
}

// CacheKey is a stable serialization used to key the search result cache.
func (f FilterSet) CacheKey() string {
	var b strings.Builder
	add := func(k, v string) {
		if v != "" {
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(v)
			b.WriteByte(';')
		}
	}
	if f.Neighborhood != nil {
		add("barrio", strings.ToLower(*f.Neighborhood))
	}
	if f.Operation != nil {
		add("ope", strings.ToLower(*f.Operation))
	}
	if f.Type != nil {
		add("tipo", strings.ToLower(*f.Type))
	}
	if f.MinPrice != nil {
		add("minp", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		add("maxp", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.MinRooms != nil {
		add("amb", strconv.Itoa(*f.MinRooms))
	}
	if f.MinSqm != nil {
		add("minm", strconv.FormatFloat(*f.MinSqm, 'f', -1, 64))
	}
	if f.MaxSqm != nil {
		add("maxm", strconv.FormatFloat(*f.MaxSqm, 'f', -1, 64))
	}
	if b.Len() == 0 {
		return "all"
	}
	return b.String()
}

// String renders the active constraints for prompts and logs.
func (f FilterSet) String() string {
	var parts []string
	if f.Neighborhood != nil {
		parts = append(parts, "barrio="+*f.Neighborhood)
	}
	if f.Operation != nil {
		parts = append(parts, "operacion="+*f.Operation)
	}
	if f.Type != nil {
		parts = append(parts, "tipo="+*f.Type)
	}
	if f.MinPrice != nil {
		parts = append(parts, fmt.Sprintf("precio>=%.0f", *f.MinPrice))
	}
	if f.MaxPrice != nil {
		parts = append(parts, fmt.Sprintf("precio<=%.0f", *f.MaxPrice))
	}
	if f.MinRooms != nil {
		parts = append(parts, fmt.Sprintf("ambientes>=%d", *f.MinRooms))
	}
	if f.MinSqm != nil {
		parts = append(parts, fmt.Sprintf("m2>=%.0f", *f.MinSqm))
	}
	if f.MaxSqm != nil {
		parts = append(parts, fmt.Sprintf("m2<=%.0f", *f.MaxSqm))
	}
	if len(parts) == 0 {
		return "sin filtros"
	}
	return strings.Join(parts, ", ")
}
