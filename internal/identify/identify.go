// Package identify implements metal identification from manual test values.
// It owns the input collector that applies defaults and bounds to submitted
// values, the rule-based classifier, the optional image preview, and the
// HTTP handler that exposes them as JSON.
package identify

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SparkResult is the observed outcome of a grinder spark test.
type SparkResult string

const (
	LongSparks  SparkResult = "Long Sparks"
	ShortSparks SparkResult = "Short Sparks"
	NoSparks    SparkResult = "No Sparks"
)

// SparkResults lists the spark test choices in display order.
var SparkResults = []SparkResult{LongSparks, ShortSparks, NoSparks}

// Key returns the short form accepted by the collector ("long", "short", "none").
func (s SparkResult) Key() string {
	switch s {
	case LongSparks:
		return "long"
	case ShortSparks:
		return "short"
	case NoSparks:
		return "none"
	}
	return ""
}

// Metal is a human-readable classification outcome.
type Metal string

const (
	IronOrSteel            Metal = "Likely Iron or Steel"
	MagneticStainlessSteel Metal = "Possibly Magnetic Stainless Steel"
	Copper                 Metal = "Likely Copper"
	BrassOrBronze          Metal = "Likely Brass or Bronze"
	Aluminum               Metal = "Likely Aluminum"
	Uncertain              Metal = "Metal type uncertain. Further testing required."
	Unknown                Metal = "Unknown metal. Please check your inputs."
)

// Metals lists every outcome Classify can produce, fallback last.
var Metals = []Metal{
	IronOrSteel,
	MagneticStainlessSteel,
	Copper,
	BrassOrBronze,
	Aluminum,
	Uncertain,
	Unknown,
}

// Input holds the six scalar test values for one sample.
// Spark and Scratch are collected and validated but do not affect Classify.
type Input struct {
	Weight   float64     `json:"weight"`
	Volume   float64     `json:"volume"`
	Color    string      `json:"color"`
	Spark    SparkResult `json:"spark"`
	Scratch  int         `json:"scratch"`
	Magnetic bool        `json:"magnetic"`
}

// Identification is the transient result of one identify request.
// ID correlates log lines with responses; nothing is stored.
type Identification struct {
	ID           uuid.UUID `json:"id"`
	Input        Input     `json:"input"`
	Metal        Metal     `json:"metal"`
	Density      float64   `json:"density"`
	IdentifiedAt time.Time `json:"identified_at"`
}

// DensityText renders the density with two decimals and its unit, e.g. "10.00 g/cc".
func (i Identification) DensityText() string {
	return FormatDensity(i.Density)
}

// FormatDensity renders d in g/cc with two decimals.
func FormatDensity(d float64) string {
	return fmt.Sprintf("%.2f g/cc", d)
}

// Options describes the collector's defaults and accepted ranges.
type Options struct {
	Defaults     Input         `json:"defaults"`
	SparkResults []SparkResult `json:"spark_results"`
	WeightMin    float64       `json:"weight_min"`
	VolumeMin    float64       `json:"volume_min"`
	ScratchMin   int           `json:"scratch_min"`
	ScratchMax   int           `json:"scratch_max"`
	Metals       []Metal       `json:"metals"`
	ImageFormats []string      `json:"image_formats"`
}
