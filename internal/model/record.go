package model

import (
	"fmt"
	"strings"
)

// An UploadRecord stores the metadata of an accepted upload.
// Records are create-once and never updated afterwards.
type UploadRecord struct {
	Base `json:",inline" storm:"inline"`

	FileExtension string `json:"file_extension" storm:"index"`
	UploadDate    string `json:"upload_date"    storm:"index"`
	FileSize      int64  `json:"file_size"`
	FileName      string `json:"file_name"`
}

// RecordID builds the deterministic identifier of an upload record so that a
// redelivered creation event overwrites the existing entry instead of
// duplicating it.
func RecordID(extension, name string) string {
	return fmt.Sprintf("%s:%s", extension, name)
}

// Category classifies an object key by its name suffix, lower-cased.
// A key without a dot is classified by the whole key.
func Category(key string) string {
	if i := strings.LastIndex(key, "."); i >= 0 {
		return strings.ToLower(key[i+1:])
	}
	return strings.ToLower(key)
}
