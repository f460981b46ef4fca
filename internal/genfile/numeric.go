package genfile

import (
	"strconv"
	"strings"

	"github.com/jdlsoft/it3t-filing/internal/models"
)

// parseMoney strictly parses a captured monetary value. Absent values (empty
// or the legacy "None" markers) count as zero; anything else must parse as a
// float or generation fails with a NumericError.
func parseMoney(field, value string) (float64, error) {
	v := strings.TrimSpace(models.Sanitize(value))
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &NumericError{Field: field, Value: value}
	}
	return f, nil
}

// truncate drops the fractional part toward zero. The legacy output relies on
// truncation, not rounding: 16.9 renders as 16.
func truncate(f float64) int64 {
	return int64(f)
}

// formatTruncated renders a float sum as the integer the layout wants.
func formatTruncated(f float64) string {
	return strconv.FormatInt(truncate(f), 10)
}
