package services

import (
	"fmt"

	"github.com/buena/portfolio-service/internal/constants"
)

// FormatPropertyNumber renders a sequence value as the human-legible business
// key, e.g. 7 -> "BT-000007". Values beyond six digits keep all their digits.
func FormatPropertyNumber(seq int64) string {
	return fmt.Sprintf("%s%0*d", constants.PropertyNumberPrefix, constants.PropertyNumberWidth, seq)
}
