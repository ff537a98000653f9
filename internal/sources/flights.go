package sources

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/dossierlab/dossier/pkg/config"
	"github.com/dossierlab/dossier/pkg/logging"
	"github.com/dossierlab/dossier/pkg/types"
)

// flightYearRe extracts a 4-digit year from a raw flight date string.
var flightYearRe = regexp.MustCompile(`(19|20)\d{2}`)

// LoadFlights loads the flight log CSV. Returns nil when the file does
// not exist. Output is sorted ascending by the raw date string.
func LoadFlights(cfg config.Config) []types.Flight {
	path := cfg.FlightsFile()
	if _, err := os.Stat(path); err != nil {
		logging.Warn().Str("path", path).Msg("flights.csv not found")
		return nil
	}

	rows, err := readCSV(path)
	if err != nil {
		logging.Err(err).Str("path", path).Msg("Error reading flights.csv")
		return []types.Flight{}
	}
	logging.Info().Int("records", len(rows)).Msg("Processing flight logs")

	flights := []types.Flight{}
	for _, row := range rows {
		date := row.Str("flight_date")
		depCode := row.Str("departure_airport_code")
		depName := row.Str("departure_airport")
		arrCode := row.Str("arrival_airport_code")
		arrName := row.Str("arrival_airport")

		year := ""
		if date != "" {
			year = flightYearRe.FindString(date)
		}

		// Passengers may arrive bracketed or quoted; keep the raw
		// delimited string, splitting happens only in co-occurrence.
		passengers := strings.Trim(strings.TrimSpace(row.Str("passenger_names")), `[]"'`)

		flights = append(flights, types.Flight{
			Date:          date,
			Year:          year,
			Departure:     airportDisplay(depName, depCode),
			DepartureCode: depCode,
			Arrival:       airportDisplay(arrName, arrCode),
			ArrivalCode:   arrCode,
			Aircraft:      row.Str("aircraft_tail_number", "aircraft_id"),
			Pilot:         row.Str("pilot_name", "pilot"),
			Passengers:    passengers,
		})
	}

	sort.SliceStable(flights, func(i, j int) bool {
		return flights[i].Date < flights[j].Date
	})
	logging.Info().Int("flights", len(flights)).Msg("Processed flight records")
	return flights
}

// airportDisplay composes the "Name (CODE)" display string, degrading
// to whichever part is present.
func airportDisplay(name, code string) string {
	switch {
	case name != "" && code != "":
		return name + " (" + code + ")"
	case name != "":
		return name
	default:
		return code
	}
}
