package graph

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dossierlab/dossier/pkg/stats"
	"github.com/dossierlab/dossier/pkg/types"
)

// passengerDelims splits a raw passenger string on any run of the
// delimiters seen across source exports.
var passengerDelims = regexp.MustCompile(`[,;/&]+`)

var passengerCaser = cases.Title(language.English)

// pair is an unordered passenger pair, stored with A < B.
type pair struct {
	A, B string
}

// Passengers tokenizes a flight's raw passenger string: split on
// delimiters, trim, drop tokens of length <= 2, title-case the rest.
func Passengers(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, tok := range passengerDelims.Split(raw, -1) {
		tok = strings.TrimSpace(tok)
		if len(tok) > 2 {
			out = append(out, passengerCaser.String(tok))
		}
	}
	return out
}

// CoOccurrence infers co-passenger edges from flights: every unordered
// pair of distinct passengers on the same flight increments a counter,
// and the top max pairs by count (ties in first-seen order) become
// edges of type "co-passenger". It also returns every participant of a
// counted pair, in first-seen order, so the assembler can add stub
// nodes — participants are collected during counting, before the top-N
// cut, matching the original behavior.
func CoOccurrence(flights []types.Flight, max int) ([]types.Relationship, []string) {
	counts := stats.NewCounter[pair]()
	var participants []string
	seen := make(map[string]bool)

	for _, flight := range flights {
		pax := Passengers(flight.Passengers)
		for i, p1 := range pax {
			for _, p2 := range pax[i+1:] {
				if p1 == p2 {
					continue
				}
				key := pair{A: p1, B: p2}
				if key.B < key.A {
					key.A, key.B = key.B, key.A
				}
				counts.Add(key)
				for _, p := range []string{p1, p2} {
					if !seen[p] {
						seen[p] = true
						participants = append(participants, p)
					}
				}
			}
		}
	}

	links := []types.Relationship{}
	for _, entry := range counts.MostCommon(max) {
		links = append(links, types.Relationship{
			Source: entry.Key.A,
			Target: entry.Key.B,
			Type:   "co-passenger",
			Weight: entry.Count,
		})
	}
	return links, participants
}
