package app

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/JaimeStill/metalid/internal/identify"
)

// page is the data behind the identify view.
type page struct {
	AppTitle    string
	Values      values
	Errors      map[string]string
	Sparks      []identify.SparkResult
	VolumeMin   float64
	ScratchMin  int
	ScratchMax  int
	Accept      string
	Result      *identify.Identification
	Preview     *identify.Preview
	ImageNotice string
	Notice      string
}

// values holds the form fields as they are redisplayed.
type values struct {
	Weight   string
	Volume   string
	Color    string
	Spark    string
	Scratch  string
	Magnetic bool
}

func (a *app) page(v values) *page {
	accept := make([]string, len(identify.ImageFormats))
	for i, f := range identify.ImageFormats {
		accept[i] = "." + f
	}

	return &page{
		AppTitle:   a.title,
		Values:     v,
		Sparks:     identify.SparkResults,
		VolumeMin:  identify.MinVolume,
		ScratchMin: identify.MinScratch,
		ScratchMax: identify.MaxScratch,
		Accept:     strings.Join(accept, ","),
	}
}

func valuesFromInput(in identify.Input) values {
	return values{
		Weight:   strconv.FormatFloat(in.Weight, 'f', 1, 64),
		Volume:   strconv.FormatFloat(in.Volume, 'f', 1, 64),
		Color:    in.Color,
		Spark:    string(in.Spark),
		Scratch:  strconv.Itoa(in.Scratch),
		Magnetic: in.Magnetic,
	}
}

// valuesFromForm echoes the submitted fields, keeping defaults for blanks.
// Spark is normalized to its label so the matching option stays selected.
func valuesFromForm(r *http.Request) values {
	v := valuesFromInput(identify.Defaults())

	get := func(field string) string {
		return strings.TrimSpace(r.PostFormValue(field))
	}

	if s := get(identify.FieldWeight); s != "" {
		v.Weight = s
	}
	if s := get(identify.FieldVolume); s != "" {
		v.Volume = s
	}
	if s := get(identify.FieldColor); s != "" {
		v.Color = s
	}
	if s := get(identify.FieldSpark); s != "" {
		if spark, err := identify.ParseSpark(s); err == nil {
			v.Spark = string(spark)
		}
	}
	if s := get(identify.FieldScratch); s != "" {
		v.Scratch = s
	}
	if s := get(identify.FieldMagnetic); s != "" {
		v.Magnetic, _ = identify.ParseCheckbox(s)
	}

	return v
}
