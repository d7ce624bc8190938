package export

import (
	"regexp"
	"time"
)

// Export is one downloaded file.
type Export struct {
	ReportURL   string
	WidgetID    string
	Slug        string
	Format      string
	Filename    string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}

// Content types by export format.
const (
	ContentTypeCSV  = "text/csv"
	ContentTypeJSON = "application/json"
	ContentTypeZip  = "application/zip"
)

var nonWord = regexp.MustCompile(`\W`)

// SanitizeFilename strips every non-word character, as the report server expects.
func SanitizeFilename(name string) string {
	return nonWord.ReplaceAllString(name, "")
}

// ContentTypeFor maps an export format to its content type.
func ContentTypeFor(format string) string {
	switch format {
	case "csv":
		return ContentTypeCSV
	case "json":
		return ContentTypeJSON
	case "zip":
		return ContentTypeZip
	default:
		return "application/octet-stream"
	}
}
