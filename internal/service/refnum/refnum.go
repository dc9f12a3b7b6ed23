package refnum

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generate returns a display-friendly unique reference number such as
// "ORD-20250827-1A2B3C4D". The random suffix keeps numbers unguessable so
// they cannot be enumerated.
func Generate(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]

	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), suffix)
}
