package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/savings-projector/internal/domain"
)

// CSVTimelineExporter writes one row per scenario and plan year. Scenarios projected
// without a timeline contribute no rows.
type CSVTimelineExporter struct{}

func (c CSVTimelineExporter) Name() string { return "timeline-csv" }

func (c CSVTimelineExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "Age", "EndMonth", "NominalPrincipal", "RealPrincipal", "CumulativeContributed", "ExtrasInYear"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		for _, yr := range sc.Timeline {
			row := []string{
				sc.Name,
				intToString(yr.Year),
				intToString(yr.Age),
				intToString(yr.EndMonth),
				fixed2(yr.NominalPrincipal),
				fixed2(yr.RealPrincipal),
				fixed2(yr.CumulativeContrib),
				fixed2(yr.ExtrasAppliedInYear),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
