package images

import "strings"

// victimNames flags a person as a victim when any of these appear in
// the lowercased name.
var victimNames = []string{
	"virginia giuffre",
	"virginia roberts",
	"chauntae davies",
	"johanna sjoberg",
	"sarah ransome",
	"alicia arden",
	"maria farmer",
	"annie farmer",
	"carolyn",
	"jane doe",
}

// victimKeywords flags a person as a victim when the bio mentions them.
var victimKeywords = []string{"victim", "accuser", "trafficked", "survivor", "abuse"}

// IsVictim reports whether a person should be classified under the
// victims image category rather than persons.
func IsVictim(name, category, bio string) bool {
	nameLower := strings.ToLower(name)
	for _, v := range victimNames {
		if strings.Contains(nameLower, v) {
			return true
		}
	}
	bioLower := strings.ToLower(bio)
	for _, kw := range victimKeywords {
		if strings.Contains(bioLower, kw) {
			return true
		}
	}
	switch strings.ToLower(category) {
	case "victim", "accuser", "survivor":
		return true
	}
	return false
}
