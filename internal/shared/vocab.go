package shared

// Static filter vocabulary. The /api/filters endpoint and the chat
// extractor's gazetteer both read these lists, which keeps the advertised
// enumerations and the detection vocabulary in sync.

// Neighborhoods known to the catalog, in gazetteer order: the extractor
// takes the first entry found in the text.
var Neighborhoods = []string{
	"Parque Avellaneda",
	"Boedo",
	"Microcentro",
	"Pilar",
	"Colegiales",
	"Palermo",
	"Belgrano",
	"Recoleta",
	"Almagro",
	"Villa Crespo",
	"San Isidro",
	"Vicente Lopez",
}

var Operations = []string{
	"venta",
	"alquiler",
}

var PropertyTypes = []string{
	"casa",
	"terreno",
	"departamento",
	"oficina",
	"ph",
	"casaquinta",
}
