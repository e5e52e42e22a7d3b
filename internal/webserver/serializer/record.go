package serializer

import (
	"fmt"
	"strings"
	"time"

	"github.com/ventoux/fileintake/internal/model"
)

var units = []string{"Bytes", "KB", "MB", "GB", "TB", "PB"}

// FormatSize renders a byte count in the largest unit that keeps the value
// below 1024, clamped at PB, with two decimals.
func FormatSize(bytes int64) string {
	size := float64(bytes)
	unit := 0

	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	return fmt.Sprintf("%.2f %s", size, units[unit])
}

// FormatUploadDate renders a stored ISO-8601 upload date as `DD.MM.YYYY at HH:MM`.
func FormatUploadDate(date string) string {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		// Stored dates may lack an offset.
		t, err = time.Parse("2006-01-02T15:04:05", date)
	}
	if err != nil {
		return date
	}

	return t.Format("02.01.2006 at 15:04")
}

// TextRecords returns the text serialized form of the given models,
// one line per record under a fixed header line.
func TextRecords(records []*model.UploadRecord) string {
	sl := make([]string, 0, len(records)+1)
	sl = append(sl, "Query results: ")

	for _, record := range records {
		sl = append(sl, fmt.Sprintf("- %s with size %s and uploaded on %s",
			record.FileName,
			FormatSize(record.FileSize),
			FormatUploadDate(record.UploadDate),
		))
	}

	return strings.Join(sl, "\n")
}

// Records returns the serialized form of the given models.
func Records(records []*model.UploadRecord) []map[string]interface{} {
	sl := make([]map[string]interface{}, 0, len(records))

	for _, record := range records {
		sl = append(sl, Record(record))
	}

	return sl
}

// Record returns the serialized form of the given model.
func Record(record *model.UploadRecord) map[string]interface{} {
	return map[string]interface{}{
		"file_extension": record.FileExtension,
		"upload_date":    record.UploadDate,
		"file_size":      record.FileSize,
		"file_name":      record.FileName,
	}
}
