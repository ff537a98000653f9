package types

// Node is one graph node for visualization. Stub nodes, added only
// because an edge references them, carry zero counters and a group
// label identifying their origin ("Relationship" or
// "Flight Passenger").
type Node struct {
	ID          string     `json:"id"`
	Group       string     `json:"group"`
	Flights     int        `json:"flights"`
	Documents   int        `json:"documents"`
	Connections int        `json:"connections"`
	InBlackBook bool       `json:"in_black_book"`
	Nationality string     `json:"nationality,omitempty"`
	Images      []ImageRef `json:"images,omitempty"`
}

// Network is the size-bounded node/link graph written for the
// dashboard. Nodes keep insertion order so repeated runs over the same
// inputs serialize identically.
type Network struct {
	Nodes []*Node        `json:"nodes"`
	Links []Relationship `json:"links"`
}
