package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFilename(t *testing.T) {
	assert.NoError(t, ValidateFilename("notes.txt"))
	assert.NoError(t, ValidateFilename("Q3 Report.PDF"))

	assert.Error(t, ValidateFilename(""))
	assert.Error(t, ValidateFilename("script.sh"))
	assert.Error(t, ValidateFilename("../etc/passwd.txt"))
	assert.Error(t, ValidateFilename("a;rm -rf.txt"))
}

func TestValidateDocumentID(t *testing.T) {
	assert.NoError(t, ValidateDocumentID("7b0e7cc2-08ef-4f74-b0f8-4f0aa2a2a001"))
	assert.Error(t, ValidateDocumentID(""))
	assert.Error(t, ValidateDocumentID("not-a-uuid"))
	assert.Error(t, ValidateDocumentID("7b0e7cc2-08ef-4f74-b0f8"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello\x00  "))
	assert.Equal(t, "a b", SanitizeString("a\x01 b"))
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 20, ValidateLimit(0))
	assert.Equal(t, 20, ValidateLimit(-5))
	assert.Equal(t, 7, ValidateLimit(7))
	assert.Equal(t, 100, ValidateLimit(500))
}
