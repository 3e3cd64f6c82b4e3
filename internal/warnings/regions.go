package warnings

import "strings"

// Regions maps county names to Met Éireann warning region codes.
var Regions = map[string]string{
	"Ireland":   "EI0",
	"Carlow":    "EI01",
	"Cavan":     "EI02",
	"Clare":     "EI03",
	"Cork":      "EI04",
	"Donegal":   "EI06",
	"Dublin":    "EI07",
	"Galway":    "EI10",
	"Kerry":     "EI11",
	"Kildare":   "EI12",
	"Kilkenny":  "EI13",
	"Leitrim":   "EI14",
	"Laois":     "EI15",
	"Limerick":  "EI16",
	"Longford":  "EI18",
	"Louth":     "EI19",
	"Mayo":      "EI20",
	"Meath":     "EI21",
	"Monaghan":  "EI22",
	"Offaly":    "EI23",
	"Roscommon": "EI24",
	"Sligo":     "EI25",
	"Tipperary": "EI26",
	"Waterford": "EI27",
	"Westmeath": "EI29",
	"Wexford":   "EI30",
	"Wicklow":   "EI31",
}

// ResolveRegion accepts a county name or a region code, case-insensitively,
// and returns the region code.
func ResolveRegion(nameOrCode string) (string, bool) {
	s := strings.TrimSpace(nameOrCode)
	for name, code := range Regions {
		if strings.EqualFold(name, s) || strings.EqualFold(code, s) {
			return code, true
		}
	}
	return "", false
}
