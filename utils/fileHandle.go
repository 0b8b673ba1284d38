package utils

import (
	"mime/multipart"
	"path/filepath"
	"strings"
)

// IsPDF accepts uploads declared as application/pdf or named *.pdf.
func IsPDF(file *multipart.FileHeader) bool {
	if file == nil {
		return false
	}
	if strings.HasPrefix(strings.ToLower(file.Header.Get("Content-Type")), "application/pdf") {
		return true
	}
	return strings.EqualFold(filepath.Ext(file.Filename), ".pdf")
}
