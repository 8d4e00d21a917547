package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// maxMinutes is the largest duration kept. Larger finite values are clamped
// to it so every coerced value stays exactly representable as a float.
const maxMinutes = 1 << 53

// Minutes is a study duration that never fails to decode. Rows coming from
// storage or a client dump may carry nulls, strings or garbage; all of those
// read as 0 so aggregation can run over dirty data.
type Minutes int

// Int returns the minutes as a non-negative int.
func (m Minutes) Int() int {
	if m < 0 {
		return 0
	}
	return int(m)
}

func (m *Minutes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			*m = 0
			return nil
		}
		*m = coerceMinutesText(text)
		return nil
	}

	*m = coerceMinutesText(string(data))
	return nil
}

func (m *Minutes) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*m = coerceMinutesFloat(float64(v))
	case int32:
		*m = coerceMinutesFloat(float64(v))
	case float64:
		*m = coerceMinutesFloat(v)
	case string:
		*m = coerceMinutesText(v)
	case []byte:
		*m = coerceMinutesText(string(v))
	default:
		*m = 0
	}
	return nil
}

func (m Minutes) Value() (driver.Value, error) {
	return int64(m.Int()), nil
}

func coerceMinutesText(text string) Minutes {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}
	return coerceMinutesFloat(f)
}

func coerceMinutesFloat(f float64) Minutes {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return Minutes(math.Min(math.Trunc(f), maxMinutes))
}
