package stats

import (
	"math"
	"regexp"
	"sort"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dossierlab/dossier/pkg/config"
	"github.com/dossierlab/dossier/pkg/types"
)

// FreqTable is an insertion-ordered name→count table. Ordered maps
// keep top-N order intact through JSON marshaling, which also keeps
// the summary output byte-stable across runs.
type FreqTable = *orderedmap.OrderedMap[string, int]

// yearRe extracts a 4-digit year from free-text dates.
var yearRe = regexp.MustCompile(`(19|20)\d{2}`)

// FlightRank is one entry of the top-by-flights ranking.
type FlightRank struct {
	Name    string `json:"name"`
	Flights int    `json:"flights"`
}

// ConnectionRank is one entry of the top-by-connections ranking.
type ConnectionRank struct {
	Name        string `json:"name"`
	Connections int    `json:"connections"`
}

// Route is one counted departure/arrival pair.
type Route struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

// PersonsStats summarizes the merged persons list.
type PersonsStats struct {
	Nationalities    FreqTable        `json:"nationalities"`
	Categories       FreqTable        `json:"categories"`
	InBlackBook      int              `json:"in_black_book"`
	TopByFlights     []FlightRank     `json:"top_by_flights"`
	TopByConnections []ConnectionRank `json:"top_by_connections"`
}

// FlightStats summarizes the flight log.
type FlightStats struct {
	ByYear        FreqTable `json:"by_year"`
	TopDepartures FreqTable `json:"top_departures"`
	TopArrivals   FreqTable `json:"top_arrivals"`
	TopRoutes     []Route   `json:"top_routes"`
	AircraftTypes FreqTable `json:"aircraft_types"`
}

// DocumentStats summarizes the document metadata.
type DocumentStats struct {
	TopTags                FreqTable `json:"top_tags"`
	TopPowerMentions       FreqTable `json:"top_power_mentions"`
	TopAgencies            FreqTable `json:"top_agencies"`
	LeadTypes              FreqTable `json:"lead_types"`
	ImportanceDistribution FreqTable `json:"importance_distribution"`
	AvgImportance          float64   `json:"avg_importance"`
}

// EmailStats summarizes the email metadata.
type EmailStats struct {
	TopSenders    FreqTable `json:"top_senders"`
	TopRecipients FreqTable `json:"top_recipients"`
	ByYear        FreqTable `json:"by_year"`
}

// Summary is the aggregate statistics document written for the
// dashboard. Sections for absent sources are omitted.
type Summary struct {
	TotalPersons   int                `json:"total_persons"`
	TotalFlights   int                `json:"total_flights"`
	TotalDocuments int                `json:"total_documents"`
	TotalEmails    int                `json:"total_emails"`
	TotalImages    int                `json:"total_images"`
	DataSources    config.DataSources `json:"data_sources"`
	PersonsStats   *PersonsStats      `json:"persons_stats,omitempty"`
	FlightStats    *FlightStats       `json:"flight_stats,omitempty"`
	DocumentStats  *DocumentStats     `json:"document_stats,omitempty"`
	EmailStats     *EmailStats        `json:"email_stats,omitempty"`
}

// Summarize computes the full summary over the merged datasets. It is
// a pure function of its inputs; a missing field contributes to no
// bucket rather than defaulting to a magic value.
func Summarize(persons []types.Person, flights []types.Flight, docs []types.Document, emails []types.Email, totalImages int, cfg config.Config) *Summary {
	summary := &Summary{
		TotalPersons:   len(persons),
		TotalFlights:   len(flights),
		TotalDocuments: len(docs),
		TotalEmails:    len(emails),
		TotalImages:    totalImages,
		DataSources:    cfg.DataSources,
	}

	if len(persons) > 0 {
		summary.PersonsStats = personsStats(persons, cfg.Tops)
	}
	if len(flights) > 0 {
		summary.FlightStats = flightStats(flights, cfg.Tops)
	}
	if len(docs) > 0 {
		summary.DocumentStats = documentStats(docs, cfg.Tops)
	}
	if len(emails) > 0 {
		summary.EmailStats = emailStats(emails, cfg.Tops)
	}
	return summary
}

func personsStats(persons []types.Person, tops config.Tops) *PersonsStats {
	nationalities := NewCounter[string]()
	categories := NewCounter[string]()
	blackBook := 0
	for _, p := range persons {
		if p.Nationality != "" {
			nationalities.Add(p.Nationality)
		}
		categories.Add(categoryOf(p))
		if p.InBlackBook {
			blackBook++
		}
	}

	byFlights := make([]types.Person, len(persons))
	copy(byFlights, persons)
	sort.SliceStable(byFlights, func(i, j int) bool {
		return byFlights[i].Flights > byFlights[j].Flights
	})
	if len(byFlights) > tops.Flights {
		byFlights = byFlights[:tops.Flights]
	}
	topByFlights := []FlightRank{}
	for _, p := range byFlights {
		if p.Flights > 0 {
			topByFlights = append(topByFlights, FlightRank{Name: p.Name, Flights: p.Flights})
		}
	}

	byConnections := make([]types.Person, len(persons))
	copy(byConnections, persons)
	sort.SliceStable(byConnections, func(i, j int) bool {
		return byConnections[i].Connections > byConnections[j].Connections
	})
	if len(byConnections) > tops.Connections {
		byConnections = byConnections[:tops.Connections]
	}
	topByConnections := []ConnectionRank{}
	for _, p := range byConnections {
		topByConnections = append(topByConnections, ConnectionRank{Name: p.Name, Connections: p.Connections})
	}

	return &PersonsStats{
		Nationalities:    tableTop(nationalities, tops.Nationalities),
		Categories:       tableTop(categories, tops.Categories),
		InBlackBook:      blackBook,
		TopByFlights:     topByFlights,
		TopByConnections: topByConnections,
	}
}

func flightStats(flights []types.Flight, tops config.Tops) *FlightStats {
	years := NewCounter[string]()
	departures := NewCounter[string]()
	arrivals := NewCounter[string]()
	aircraft := NewCounter[string]()
	routes := NewCounter[Route]()

	for _, f := range flights {
		if f.Year != "" {
			years.Add(f.Year)
		}
		if f.Departure != "" {
			departures.Add(f.Departure)
		}
		if f.Arrival != "" {
			arrivals.Add(f.Arrival)
		}
		if f.Aircraft != "" {
			aircraft.Add(f.Aircraft)
		}
		if f.Departure != "" && f.Arrival != "" {
			routes.Add(Route{From: f.Departure, To: f.Arrival})
		}
	}

	topRoutes := []Route{}
	for _, entry := range routes.MostCommon(tops.Routes) {
		topRoutes = append(topRoutes, Route{From: entry.Key.From, To: entry.Key.To, Count: entry.Count})
	}

	return &FlightStats{
		ByYear:        tableSorted(years),
		TopDepartures: tableTop(departures, tops.Departures),
		TopArrivals:   tableTop(arrivals, tops.Arrivals),
		TopRoutes:     topRoutes,
		AircraftTypes: tableTop(aircraft, tops.Aircraft),
	}
}

func documentStats(docs []types.Document, tops config.Tops) *DocumentStats {
	tags := NewCounter[string]()
	power := NewCounter[string]()
	agencies := NewCounter[string]()
	leads := NewCounter[string]()
	importance := NewCounter[string]()
	total := 0

	for _, doc := range docs {
		for _, t := range doc.Tags {
			tags.Add(t)
		}
		for _, p := range doc.PowerMentions {
			power.Add(p)
		}
		for _, a := range doc.AgencyInvolvement {
			agencies.Add(a)
		}
		for _, l := range doc.LeadTypes {
			leads.Add(l)
		}
		importance.Add(ImportanceBucket(doc.ImportanceScore))
		total += doc.ImportanceScore
	}

	avg := float64(total) / float64(max(len(docs), 1))

	return &DocumentStats{
		TopTags:                tableTop(tags, tops.Tags),
		TopPowerMentions:       tableTop(power, tops.PowerMentions),
		TopAgencies:            tableTop(agencies, tops.Agencies),
		LeadTypes:              tableTop(leads, tops.LeadTypes),
		ImportanceDistribution: tableSorted(importance),
		AvgImportance:          math.Round(avg*10) / 10,
	}
}

func emailStats(emails []types.Email, tops config.Tops) *EmailStats {
	senders := NewCounter[string]()
	recipients := NewCounter[string]()
	years := NewCounter[string]()

	for _, e := range emails {
		if e.From != "" {
			senders.Add(e.From)
		}
		if e.To != "" {
			recipients.Add(e.To)
		}
		if year := yearRe.FindString(e.Date); year != "" {
			years.Add(year)
		}
	}

	return &EmailStats{
		TopSenders:    tableTop(senders, tops.Senders),
		TopRecipients: tableTop(recipients, tops.Recipients),
		ByYear:        tableSorted(years),
	}
}

// ImportanceBucket maps a score into its width-10 histogram bucket,
// e.g. 47 -> "40-49".
func ImportanceBucket(score int) string {
	low := (score / 10) * 10
	return strconv.Itoa(low) + "-" + strconv.Itoa(low+9)
}

// categoryOf picks the category bucket for a person, falling back to
// the entity type and then "Unknown".
func categoryOf(p types.Person) string {
	if p.Category != "" {
		return p.Category
	}
	if p.EntityType != "" {
		return p.EntityType
	}
	return "Unknown"
}

// tableTop builds an ordered table of the counter's top n entries.
func tableTop(c *Counter[string], n int) FreqTable {
	table := orderedmap.New[string, int]()
	for _, entry := range c.MostCommon(n) {
		table.Set(entry.Key, entry.Count)
	}
	return table
}

// tableSorted builds an ordered table of all entries sorted by key.
func tableSorted(c *Counter[string]) FreqTable {
	keys := make([]string, 0, c.Len())
	for _, entry := range c.MostCommon(0) {
		keys = append(keys, entry.Key)
	}
	sort.Strings(keys)
	table := orderedmap.New[string, int]()
	for _, key := range keys {
		table.Set(key, c.Get(key))
	}
	return table
}
