package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Reading is the latest set of water-quality measurements.
type Reading struct {
	TDS       float64 `json:"tds"`       // ppm
	PH        float64 `json:"ph"`        // pH units
	Turbidity float64 `json:"turbidity"` // NTU
}

// SensorPayload mirrors the remote sensor document. Every field is optional.
type SensorPayload struct {
	TDS             float64 `json:"TDS"`
	PH              float64 `json:"pH"`
	Turbidity       float64 `json:"Turbidity"`
	TDSStatus       string  `json:"TDS_Status,omitempty"`
	PHStatus        string  `json:"pH_Status,omitempty"`
	TurbidityStatus string  `json:"Turbidity_Status,omitempty"`
	DrinkStatus     string  `json:"Drink_Status,omitempty"`
}

// Reading extracts the numeric part of the payload.
func (p SensorPayload) Reading() Reading {
	return Reading{TDS: p.TDS, PH: p.PH, Turbidity: p.Turbidity}
}

// UnmarshalJSON accepts numbers or numeric strings. Anything else, including
// "nan" and infinities from a failed sensor read, decodes to 0.
func (p *SensorPayload) UnmarshalJSON(b []byte) error {
	m, err := decodeObject(b)
	if err != nil {
		return err
	}
	*p = SensorPayload{
		TDS:             toFloat(m["TDS"]),
		PH:              toFloat(m["pH"]),
		Turbidity:       toFloat(m["Turbidity"]),
		TDSStatus:       toString(m["TDS_Status"]),
		PHStatus:        toString(m["pH_Status"]),
		TurbidityStatus: toString(m["Turbidity_Status"]),
		DrinkStatus:     toString(m["Drink_Status"]),
	}
	return nil
}

// decodeObject keeps numbers as json.Number so out-of-range values do not
// fail the whole document.
func decodeObject(b []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// parseNumber reads a JSON number or numeric string. Values beyond the
// float64 range come back as +/-Inf; NaN is passed through for the caller.
func parseNumber(v any) (float64, bool) {
	var s string
	switch x := v.(type) {
	case float64:
		return x, true
	case json.Number:
		s = x.String()
	case string:
		s = strings.TrimSpace(x)
	default:
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// toFloat coerces v to a finite float; everything else is 0.
func toFloat(v any) float64 {
	f, ok := parseNumber(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
