package course

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// ExportCSV renders one line per roster row: raw category values, the current
// percent to one decimal, and the letter grade. Unavailable categories are
// marked rather than silently zeroed.
func ExportCSV(rows []RosterRow) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Student", "Email"}
	for _, cat := range Categories {
		header = append(header, string(cat))
	}
	header = append(header, "Current %", "Letter Grade")
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, r := range rows {
		rec := []string{r.FullName, r.Email}
		for _, cat := range Categories {
			if unavailable(r, cat) {
				rec = append(rec, "unavailable")
				continue
			}
			s := r.Scores[cat]
			rec = append(rec, fmt.Sprintf("%.1f/%.0f", s.Earned, s.Possible))
		}
		rec = append(rec,
			strconv.FormatFloat(r.Aggregate.CurrentPercent, 'f', 1, 64),
			r.Aggregate.LetterGrade)
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func unavailable(r RosterRow, cat Category) bool {
	for _, u := range r.Unavailable {
		if u == cat {
			return true
		}
	}
	return false
}
