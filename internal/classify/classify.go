// Package classify maps raw water-quality measurements to safety tags.
package classify

import (
	"strings"

	"sanisip/internal/models"
)

// Tags emitted by the classifiers.
const (
	TagUnsafe  = "UNSAFE"
	TagLow     = "Low"
	TagSafe    = "Safe"
	TagIdeal   = "Ideal"
	TagNeutral = "Neutral"
	TagTurbid  = "Turbid"
	TagSlight  = "Slight"
	TagClear   = "Clear"
)

// Safe-range thresholds, matching the sensor firmware.
const (
	TDSMinPPM     = 100.0
	TDSMaxPPM     = 550.0
	TDSLowPPM     = 200.0
	PHMin         = 6.0
	PHMax         = 8.0
	PHIdealMin    = 6.5
	PHIdealMax    = 7.5
	TurbidMaxNTU  = 1.0
	TurbidSlightN = 0.5
)

// Result is a classification outcome with its display classes.
type Result struct {
	Tag           string `json:"tag"`
	StyleClass    string `json:"style_class"`
	BarStyleClass string `json:"bar_style_class"`
}

func severe(tag string) Result  { return Result{Tag: tag, StyleClass: "t-warn", BarStyleClass: "b-warn"} }
func neutral(tag string) Result { return Result{Tag: tag, StyleClass: "t-neutral", BarStyleClass: "b-neutral"} }
func safe(tag string) Result    { return Result{Tag: tag, StyleClass: "t-safe", BarStyleClass: "b-safe"} }

// Severe reports whether r is the unsafe outcome of its classifier.
func (r Result) Severe() bool {
	return r.StyleClass == "t-warn"
}

// TDS classifies total dissolved solids in ppm.
func TDS(v float64) Result {
	return TDSWithStatus(v, "")
}

// TDSWithStatus classifies TDS, letting a non-empty external status decide safety.
func TDSWithStatus(v float64, status string) Result {
	if unsafe(status, v < TDSMinPPM || v > TDSMaxPPM) {
		return severe(TagUnsafe)
	}
	if v <= TDSLowPPM {
		return neutral(TagLow)
	}
	return safe(TagSafe)
}

// PH classifies acidity.
func PH(v float64) Result {
	return PHWithStatus(v, "")
}

// PHWithStatus classifies pH, letting a non-empty external status decide safety.
func PHWithStatus(v float64, status string) Result {
	if unsafe(status, v < PHMin || v > PHMax) {
		return severe(TagUnsafe)
	}
	if v >= PHIdealMin && v <= PHIdealMax {
		return safe(TagIdeal)
	}
	return neutral(TagNeutral)
}

// Turbidity classifies turbidity in NTU.
func Turbidity(v float64) Result {
	return TurbidityWithStatus(v, "")
}

// TurbidityWithStatus classifies turbidity, letting a non-empty external status decide safety.
func TurbidityWithStatus(v float64, status string) Result {
	if unsafe(status, v > TurbidMaxNTU) {
		return severe(TagTurbid)
	}
	if v > TurbidSlightN {
		return neutral(TagSlight)
	}
	return safe(TagClear)
}

// Set holds the three per-measurement results and the overall verdict.
type Set struct {
	TDS       Result `json:"tds"`
	PH        Result `json:"ph"`
	Turbidity Result `json:"turbidity"`
	Drinkable bool   `json:"drinkable"`
}

// Payload classifies a full sensor document. Any severe measurement or an
// unsafe aggregate status makes the water undrinkable.
func Payload(p models.SensorPayload) Set {
	s := Set{
		TDS:       TDSWithStatus(p.TDS, p.TDSStatus),
		PH:        PHWithStatus(p.PH, p.PHStatus),
		Turbidity: TurbidityWithStatus(p.Turbidity, p.TurbidityStatus),
	}
	s.Drinkable = !(IsUnsafeStatus(p.DrinkStatus) || s.TDS.Severe() || s.PH.Severe() || s.Turbidity.Severe())
	return s
}

// IsUnsafeStatus reports whether an external status string flags a hazard.
func IsUnsafeStatus(status string) bool {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "UNSAFE", "NOT SAFE", "NOT_SAFE":
		return true
	}
	return false
}

// unsafe prefers the external status when present, else the local threshold.
func unsafe(status string, outOfRange bool) bool {
	if strings.TrimSpace(status) != "" {
		return IsUnsafeStatus(status)
	}
	return outOfRange
}
