package analytics

import (
	"strings"

	"job-tracker-api/internal/domain/model"
)

const unknownPlace = "Unknown"

var stateAbbr = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR", "california": "CA",
	"colorado": "CO", "connecticut": "CT", "delaware": "DE", "florida": "FL", "georgia": "GA",
	"hawaii": "HI", "idaho": "ID", "illinois": "IL", "indiana": "IN", "iowa": "IA",
	"kansas": "KS", "kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS", "missouri": "MO",
	"montana": "MT", "nebraska": "NE", "nevada": "NV", "new hampshire": "NH", "new jersey": "NJ",
	"new mexico": "NM", "new york": "NY", "north carolina": "NC", "north dakota": "ND", "ohio": "OH",
	"oklahoma": "OK", "oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT", "vermont": "VT",
	"virginia": "VA", "washington": "WA", "west virginia": "WV", "wisconsin": "WI", "wyoming": "WY",
}

// StateAbbreviation maps a US state name to its postal code. Unrecognised
// names fall back to their first two characters upper-cased; shorter inputs
// are returned unchanged.
func StateAbbreviation(state string) string {
	if abbr, ok := stateAbbr[strings.ToLower(strings.TrimSpace(state))]; ok {
		return abbr
	}
	r := []rune(state)
	if len(r) < 2 {
		return state
	}
	return strings.ToUpper(string(r[:2]))
}

// LocationKey renders "City, ST" with "Unknown" standing in for missing parts.
func LocationKey(loc model.Location) string {
	city, state := strings.TrimSpace(loc.City), strings.TrimSpace(loc.State)
	if city == "" {
		city = unknownPlace
	}
	if state == "" {
		state = unknownPlace
	}
	return city + ", " + StateAbbreviation(state)
}
