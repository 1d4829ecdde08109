package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/citelab/cvet/pkg/trust"
)

const citationFieldCount = 5

// ongoingAge marks sources with no fixed publication date; they are
// treated as current.
const ongoingAge = "ongoing"

// ReadCitationsCSV loads citation records from a CSV file with the
// columns: Category, URL, Domain, Age, Trust_Description. A leading
// title row and the header row are skipped. An Age value of
// "Ongoing" maps to 0.
func ReadCitationsCSV(path string) ([]*trust.Citation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open citation file %s: %w", path, err)
	}
	defer file.Close()

	return parseCitations(file)
}

func parseCitations(r io.Reader) ([]*trust.Citation, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	list := make([]*trust.Citation, 0)
	line := 0

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read citation row %d: %w", line+1, err)
		}
		line++

		// title row ("public_citation_sources" etc.)
		if len(rec) < citationFieldCount {
			continue
		}
		// header row
		if strings.EqualFold(strings.TrimSpace(rec[0]), "category") {
			continue
		}

		age, err := parseAge(rec[3])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		list = append(list, &trust.Citation{
			Category:         strings.TrimSpace(rec[0]),
			URL:              strings.TrimSpace(rec[1]),
			Domain:           strings.ToLower(strings.TrimSpace(rec[2])),
			AgeDays:          age,
			TrustDescription: strings.TrimSpace(rec[4]),
		})
	}

	if len(list) == 0 {
		return nil, fmt.Errorf("no citation records found")
	}

	return list, nil
}

func parseAge(v string) (int, error) {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, ongoingAge) {
		return 0, nil
	}
	age, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid age value %q: %w", v, err)
	}
	return age, nil
}
