package types

// Flight is one normalized flight log row. Passengers stays a raw
// delimited string; it is only split where co-occurrence is computed.
type Flight struct {
	Date          string `json:"date"`
	Year          string `json:"year"`
	Departure     string `json:"departure"`
	DepartureCode string `json:"departure_code"`
	Arrival       string `json:"arrival"`
	ArrivalCode   string `json:"arrival_code"`
	Aircraft      string `json:"aircraft"`
	Pilot         string `json:"pilot"`
	Passengers    string `json:"passengers"`
}

// Relationship is one typed edge between two entity names. The pair is
// stored ordered as it arrived but is directionless for counting.
// Weight is at least 1 when the source value fails to parse.
type Relationship struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
	Weight int    `json:"weight"`
}

// Document is one normalized document metadata record. A record with
// neither filename nor headline is unusable and never reaches this
// type.
type Document struct {
	Filename          string   `json:"filename"`
	Headline          string   `json:"headline"`
	ImportanceScore   int      `json:"importance_score"`
	Reason            string   `json:"reason"`
	Tags              []string `json:"tags"`
	PowerMentions     []string `json:"power_mentions"`
	AgencyInvolvement []string `json:"agency_involvement"`
	LeadTypes         []string `json:"lead_types"`
	KeyInsights       []string `json:"key_insights"`
}

// Email is one normalized email metadata record. Kept only when it has
// a sender or a recipient.
type Email struct {
	Date    string `json:"date"`
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Slug    string `json:"slug"`
}
