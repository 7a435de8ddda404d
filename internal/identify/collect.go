package identify

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Collector defaults and bounds.
const (
	DefaultWeight  = 100.0
	DefaultVolume  = 10.0
	DefaultColor   = "silver"
	DefaultSpark   = LongSparks
	DefaultScratch = 5

	MinWeight  = 0.0
	MinVolume  = 0.1
	MinScratch = 1
	MaxScratch = 10
)

// Form and JSON field names.
const (
	FieldWeight   = "weight"
	FieldVolume   = "volume"
	FieldColor    = "color"
	FieldSpark    = "spark"
	FieldScratch  = "scratch"
	FieldMagnetic = "magnetic"
	FieldImage    = "image"
)

// Defaults returns the Input a blank form produces.
func Defaults() Input {
	return Input{
		Weight:  DefaultWeight,
		Volume:  DefaultVolume,
		Color:   DefaultColor,
		Spark:   DefaultSpark,
		Scratch: DefaultScratch,
	}
}

// Request is the JSON body accepted by the identify endpoint.
// Omitted fields take their defaults.
type Request struct {
	Weight   *float64 `json:"weight,omitempty"`
	Volume   *float64 `json:"volume,omitempty"`
	Color    *string  `json:"color,omitempty"`
	Spark    *string  `json:"spark,omitempty"`
	Scratch  *int     `json:"scratch,omitempty"`
	Magnetic *bool    `json:"magnetic,omitempty"`
}

// Input applies defaults and bounds to the request.
// It returns a *ValidationError listing every rejected field.
func (r Request) Input() (Input, error) {
	c := newCollector()

	if r.Weight != nil {
		c.setWeight(*r.Weight)
	}
	if r.Volume != nil {
		c.setVolume(*r.Volume)
	}
	if r.Color != nil {
		c.setColor(*r.Color)
	}
	if r.Spark != nil {
		c.parseSpark(*r.Spark)
	}
	if r.Scratch != nil {
		c.setScratch(*r.Scratch)
	}
	if r.Magnetic != nil {
		c.in.Magnetic = *r.Magnetic
	}

	return c.result()
}

// FromForm collects an Input from submitted form values. Blank or missing
// fields take their defaults; an absent magnetic checkbox means false.
// It returns a *ValidationError listing every rejected field.
func FromForm(values url.Values) (Input, error) {
	c := newCollector()

	if v := strings.TrimSpace(values.Get(FieldWeight)); v != "" {
		if f, ok := c.parseFloat(FieldWeight, v); ok {
			c.setWeight(f)
		}
	}
	if v := strings.TrimSpace(values.Get(FieldVolume)); v != "" {
		if f, ok := c.parseFloat(FieldVolume, v); ok {
			c.setVolume(f)
		}
	}
	c.setColor(values.Get(FieldColor))
	if v := strings.TrimSpace(values.Get(FieldSpark)); v != "" {
		c.parseSpark(v)
	}
	if v := strings.TrimSpace(values.Get(FieldScratch)); v != "" {
		if n, err := strconv.Atoi(v); err != nil {
			c.fail(FieldScratch, "must be a whole number")
		} else {
			c.setScratch(n)
		}
	}
	if v := strings.TrimSpace(values.Get(FieldMagnetic)); v != "" {
		if b, ok := ParseCheckbox(v); ok {
			c.in.Magnetic = b
		} else {
			c.fail(FieldMagnetic, "must be a boolean")
		}
	}

	return c.result()
}

// ParseSpark resolves a display label ("Long Sparks") or key ("long"),
// ignoring case and surrounding space.
func ParseSpark(s string) (SparkResult, error) {
	s = strings.TrimSpace(s)
	for _, sr := range SparkResults {
		if strings.EqualFold(s, string(sr)) || strings.EqualFold(s, sr.Key()) {
			return sr, nil
		}
	}
	return "", fmt.Errorf("unknown spark result %q", s)
}

type collector struct {
	in     Input
	fields map[string]string
}

func newCollector() *collector {
	return &collector{
		in:     Defaults(),
		fields: make(map[string]string),
	}
}

func (c *collector) fail(field, msg string) {
	if _, exists := c.fields[field]; !exists {
		c.fields[field] = msg
	}
}

func (c *collector) result() (Input, error) {
	if len(c.fields) > 0 {
		return c.in, &ValidationError{fields: c.fields}
	}
	return c.in, nil
}

func (c *collector) parseFloat(field, v string) (float64, bool) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.fail(field, "must be a number")
		return 0, false
	}
	return f, true
}

func (c *collector) setWeight(w float64) {
	switch {
	case math.IsNaN(w) || math.IsInf(w, 0):
		c.fail(FieldWeight, "must be a finite number")
	case w < MinWeight:
		c.fail(FieldWeight, "must not be negative")
	default:
		c.in.Weight = w
	}
}

func (c *collector) setVolume(v float64) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		c.fail(FieldVolume, "must be a finite number")
	case v < MinVolume:
		c.fail(FieldVolume, fmt.Sprintf("must be at least %g", MinVolume))
	default:
		c.in.Volume = v
	}
}

func (c *collector) setColor(s string) {
	if s = strings.TrimSpace(s); s != "" {
		c.in.Color = s
	}
}

func (c *collector) parseSpark(s string) {
	sr, err := ParseSpark(s)
	if err != nil {
		c.fail(FieldSpark, "must be one of Long Sparks, Short Sparks, No Sparks")
		return
	}
	c.in.Spark = sr
}

func (c *collector) setScratch(n int) {
	if n < MinScratch || n > MaxScratch {
		c.fail(FieldScratch, fmt.Sprintf("must be between %d and %d", MinScratch, MaxScratch))
		return
	}
	c.in.Scratch = n
}

// ParseCheckbox reads a checkbox or boolean value: "on"/"yes"/"off"/"no"
// (any case) or anything strconv.ParseBool accepts. ok is false otherwise.
func ParseCheckbox(v string) (value, ok bool) {
	switch strings.ToLower(v) {
	case "on", "yes":
		return true, true
	case "off", "no":
		return false, true
	}
	b, err := strconv.ParseBool(v)
	return b, err == nil
}
