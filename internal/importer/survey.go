package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/clubops/rosterd/internal/domain/model"
)

// Survey export columns treated as structured contact fields. Every other
// column is carried verbatim in the player's survey map.
const (
	colFirstName   = "first name"
	colSurname     = "surname"
	colEmail       = "email"
	colMobile      = "mobile number"
	colSubmittedAt = "submitted at"
)

// surveyResponse is one respondent's parsed row.
type surveyResponse struct {
	name        string
	email       string
	mobile      string
	submittedAt string
	answers     map[string]string
}

// parseSurvey reads the survey CSV keyed by normalised respondent name.
// When a respondent submitted more than once the latest submission wins.
func parseSurvey(r io.Reader) (map[string]surveyResponse, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read survey csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("survey csv is empty")
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.TrimSpace(col)
	}

	out := make(map[string]surveyResponse)
	for _, rec := range records[1:] {
		resp := surveyResponse{answers: make(map[string]string)}
		var first, last string
		for i, col := range header {
			if i >= len(rec) {
				break
			}
			val := strings.TrimSpace(rec[i])
			switch strings.ToLower(col) {
			case colFirstName:
				first = val
			case colSurname:
				last = val
			case colEmail:
				resp.email = val
			case colMobile:
				resp.mobile = digitsOnly(val)
			case colSubmittedAt:
				resp.submittedAt = val
			default:
				if val != "" {
					resp.answers[col] = val
				}
			}
		}
		resp.name = strings.TrimSpace(first + " " + last)
		if resp.name == "" {
			continue
		}
		key := Normalize(resp.name)
		// Submission timestamps from the form are ISO-8601, so string
		// comparison orders them.
		if prev, ok := out[key]; ok && prev.submittedAt > resp.submittedAt {
			continue
		}
		out[key] = resp
	}
	return out, nil
}

// applySurvey copies a respondent's contact fields and answers onto a player.
func applySurvey(p *model.Player, resp surveyResponse) {
	p.Email = resp.email
	p.Mobile = resp.mobile
	p.SubmittedAt = resp.submittedAt
	if len(resp.answers) > 0 {
		p.Survey = resp.answers
	}
}

// Normalize produces the merge key for a player name: lower-cased, letters
// and digits only, so "Sam O'Brien " and "sam obrien" collide on purpose.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
