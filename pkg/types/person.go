// Package types defines the canonical record types produced by the
// dossier pipeline. Source files arrive with arbitrary, inconsistent
// column sets; everything downstream of normalization speaks these
// types only.
package types

// ImageRef points at one image file associated with a person. Entries
// are owned by the image index; persons carry copies, not shared
// references.
type ImageRef struct {
	Path      string `json:"path"`
	Filename  string `json:"filename"`
	Category  string `json:"category"`
	SizeBytes int64  `json:"size_bytes"`
}

// Person is the canonical merged representation of one individual or
// organization. Name is the merge key (case-insensitive). Counts are
// never negative; parse failures default to zero.
//
// Connections is derived, not authoritative: it mixes relationship
// incidence counts with supplementary self-reported counts under a
// take-the-max rule. Treat it as advisory.
type Person struct {
	Name            string     `json:"name"`
	EntityType      string     `json:"entity_type"`
	RoleDescription string     `json:"role_description"`
	Bio             string     `json:"bio,omitempty"`
	Flights         int        `json:"flights"`
	Documents       int        `json:"documents"`
	Emails          int        `json:"emails"`
	Connections     int        `json:"connections"`
	InBlackBook     bool       `json:"in_black_book"`
	Nationality     string     `json:"nationality"`
	Category        string     `json:"category"`
	Slug            string     `json:"slug"`
	Images          []ImageRef `json:"images"`
}
