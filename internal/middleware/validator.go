package middleware

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

// allowedExtensions are the upload types the extractor recognizes.
var allowedExtensions = map[string]bool{
	".txt":  true,
	".pdf":  true,
	".docx": true,
}

// ValidateFilename checks the upload filename: extension allowlist plus
// dangerous character screening.
func ValidateFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return fmt.Errorf("file type %s not supported (allowed: .txt, .pdf, .docx)", ext)
	}

	// Block path traversal and shell metacharacters
	dangerous := []string{"../", "..", "/", "\\", "$(", "`", "&", "|", ";", "\n", "\r", "\x00"}
	base := strings.TrimSuffix(name, ext)
	for _, d := range dangerous {
		if strings.Contains(base, d) {
			return fmt.Errorf("invalid characters in filename")
		}
	}

	if len(name) > 255 {
		return fmt.Errorf("filename too long (max 255 chars)")
	}
	return nil
}

// ValidateDocumentID validates document ID format (UUID)
func ValidateDocumentID(id string) error {
	if id == "" {
		return fmt.Errorf("document ID cannot be empty")
	}

	pattern := `^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`
	matched, _ := regexp.MatchString(pattern, strings.ToLower(id))
	if !matched {
		return fmt.Errorf("invalid document ID format")
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
