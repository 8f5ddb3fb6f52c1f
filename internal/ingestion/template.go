package ingestion

import (
	"bytes"
	"encoding/csv"
	"time"
)

// Template renders the downloadable upload template: the required header
// plus two filled-in example rows so users can see the expected formats.
func Template(now time.Time) []byte {
	today := now.Format(dateLayout)
	rows := [][]string{
		RequiredColumns,
		{
			"0123456789", "EMP001", "john.doe@example.com", "John Doe",
			"Engineering", "Software Engineer", "5000000",
			now.AddDate(0, 0, -365).Format(dateLayout), today,
			"Full Time", "50000", "10000", "0",
		},
		{
			"9876543210", "CON001", "jane.smith@example.com", "Jane Smith",
			"Finance", "Consultant", "4000000",
			now.AddDate(0, 0, -180).Format(dateLayout), today,
			"Contract", "25000", "5000", "0",
		},
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	// Writes to a bytes.Buffer cannot fail.
	_ = writer.WriteAll(rows)
	return buf.Bytes()
}
