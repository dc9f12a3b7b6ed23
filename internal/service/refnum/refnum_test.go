package refnum

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{8}$`)

	n := Generate("ORD")
	assert.Regexp(t, pattern, n)
	assert.Contains(t, n, time.Now().Format("20060102"))

	assert.Regexp(t, regexp.MustCompile(`^PAY-\d{8}-[0-9A-F]{8}$`), Generate("PAY"))
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		n := Generate("ORD")
		_, dup := seen[n]
		assert.False(t, dup, n)
		seen[n] = struct{}{}
	}
}
