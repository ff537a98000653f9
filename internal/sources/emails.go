package sources

import (
	"os"
	"sort"

	"github.com/dossierlab/dossier/pkg/config"
	"github.com/dossierlab/dossier/pkg/logging"
	"github.com/dossierlab/dossier/pkg/types"
)

// LoadEmails loads the email metadata CSV. Returns nil when the file
// does not exist. Records with neither sender nor recipient are
// dropped. Output is sorted ascending by date string.
func LoadEmails(cfg config.Config) []types.Email {
	path := cfg.EmailsFile()
	if _, err := os.Stat(path); err != nil {
		logging.Warn().Str("path", path).Msg("emails.csv not found")
		return nil
	}

	rows, err := readCSV(path)
	if err != nil {
		logging.Err(err).Str("path", path).Msg("Error reading emails.csv")
		return []types.Email{}
	}
	logging.Info().Int("records", len(rows)).Msg("Processing emails")

	emails := []types.Email{}
	for _, row := range rows {
		email := types.Email{
			Date:    row.Str("date"),
			From:    row.Str("from"),
			To:      row.Str("to"),
			Subject: row.Str("subject"),
			Slug:    row.Str("slug"),
		}
		if email.From == "" && email.To == "" {
			continue
		}
		emails = append(emails, email)
	}

	sort.SliceStable(emails, func(i, j int) bool {
		return emails[i].Date < emails[j].Date
	})
	logging.Info().Int("emails", len(emails)).Msg("Processed emails")
	return emails
}
