package flight

import "strings"

// ICAO airline designators mapped to their IATA code
var airlines = map[string]string{
	"ACI": "SB",
	"ANZ": "NZ",
	"JST": "JQ",
	"QFA": "QF",
	"QJE": "QF",
	"QLK": "QF",
	"RXA": "ZL",
	"VOZ": "VA",
}

// IcaoToIataFlight rewrites the airline prefix of a flight number when it is known
func IcaoToIataFlight(icaoFlight string) string {
	if len(icaoFlight) < 3 {
		return icaoFlight
	}
	iata, ok := airlines[strings.ToUpper(icaoFlight[:3])]
	if !ok {
		return icaoFlight
	}
	return iata + icaoFlight[3:]
}
