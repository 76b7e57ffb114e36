package export

import (
	"fmt"
	"time"
)

// ArchiveFileName returns export-<topic>-<ISO-date>.zip.
func ArchiveFileName(topic string, at time.Time) string {
	return fmt.Sprintf("export-%s-%s.zip", topic, at.UTC().Format("2006-01-02"))
}

// CsvFileName returns export-<topic>-<ISO-datetime>.csv. Colons are not
// filesystem-safe, so the time-of-day segments are dash separated.
func CsvFileName(topic string, at time.Time) string {
	return fmt.Sprintf("export-%s-%s.csv", topic, at.UTC().Format("2006-01-02T15-04-05"))
}
