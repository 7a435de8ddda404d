package identify

import "github.com/JaimeStill/metalid/pkg/openapi"

func enum[T ~string](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func inputProperties() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		FieldWeight: {
			Type: "number", Description: "Sample weight in grams",
			Default: DefaultWeight, Minimum: openapi.Float(MinWeight),
		},
		FieldVolume: {
			Type: "number", Description: "Sample volume in cubic centimeters",
			Default: DefaultVolume, Minimum: openapi.Float(MinVolume),
		},
		FieldColor: {
			Type: "string", Description: "Predominant color, e.g. silver, red, yellow",
			Default: DefaultColor,
		},
		FieldSpark: {
			Type: "string", Description: "Spark test result label or key (long, short, none)",
			Default: string(DefaultSpark), Enum: enum(SparkResults),
		},
		FieldScratch: {
			Type: "integer", Description: "Scratch test rating, 1 = soft, 10 = very hard",
			Default: DefaultScratch, Minimum: openapi.Float(MinScratch), Maximum: openapi.Float(MaxScratch),
		},
		FieldMagnetic: {
			Type: "boolean", Description: "Whether a magnet attracts the sample",
			Default: false,
		},
	}
}

// Schemas returns the OpenAPI component schemas for identify types.
func Schemas() map[string]*openapi.Schema {
	upload := inputProperties()
	upload[FieldImage] = &openapi.Schema{
		Type: "string", Format: "binary",
		Description: "Optional jpg, jpeg or png image. Re-displayed only; it does not affect the result.",
	}

	return map[string]*openapi.Schema{
		"IdentifyRequest": {
			Type:        "object",
			Description: "All fields are optional; omitted fields take their defaults.",
			Properties:  inputProperties(),
		},
		"UploadRequest": {
			Type:       "object",
			Properties: upload,
		},
		"Input": {
			Type:       "object",
			Properties: inputProperties(),
			Required:   []string{FieldWeight, FieldVolume, FieldColor, FieldSpark, FieldScratch, FieldMagnetic},
		},
		"Identification": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":            {Type: "string", Format: "uuid"},
				"input":         openapi.SchemaRef("Input"),
				"metal":         {Type: "string", Enum: enum(Metals)},
				"density":       {Type: "number", Description: "Weight divided by volume in g/cc; 0 when volume is not positive"},
				"identified_at": {Type: "string", Format: "date-time"},
			},
		},
		"Preview": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"filename":     {Type: "string"},
				"format":       {Type: "string", Enum: []any{"jpeg", "png"}},
				"content_type": {Type: "string"},
				"width":        {Type: "integer"},
				"height":       {Type: "integer"},
				"size":         {Type: "integer", Description: "Size in bytes"},
				"data_url":     {Type: "string", Description: "Original image bytes as a data URL"},
			},
		},
		"UploadResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"identification": openapi.SchemaRef("Identification"),
				"preview":        openapi.SchemaRef("Preview"),
			},
		},
		"Options": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"defaults":      openapi.SchemaRef("Input"),
				"spark_results": {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"weight_min":    {Type: "number"},
				"volume_min":    {Type: "number"},
				"scratch_min":   {Type: "integer"},
				"scratch_max":   {Type: "integer"},
				"metals":        {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"image_formats": {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
	}
}

var identifyOp = &openapi.Operation{
	OperationID: "identifySample",
	Summary:     "Identify a metal sample",
	Description: "Classifies the sample from density, magnetism and color. Spark and scratch results are accepted but do not affect the outcome.",
	RequestBody: openapi.Body(openapi.MediaJSON, "IdentifyRequest", false),
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Identification result", "Identification"),
		400: openapi.ResponseRef("BadRequest"),
		422: openapi.ResponseRef("UnprocessableEntity"),
	},
}

var uploadOp = &openapi.Operation{
	OperationID: "identifyUpload",
	Summary:     "Identify a metal sample from a form upload",
	Description: "Accepts the same fields as multipart form data plus an optional image that is echoed back as a preview.",
	RequestBody: openapi.Body(openapi.MediaMultipart, "UploadRequest", true),
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Identification result and image preview", "UploadResponse"),
		400: openapi.ResponseRef("BadRequest"),
		413: openapi.ResponseRef("PayloadTooLarge"),
		415: openapi.ResponseRef("UnsupportedMediaType"),
		422: openapi.ResponseRef("UnprocessableEntity"),
	},
}

var optionsOp = &openapi.Operation{
	OperationID: "identifyOptions",
	Summary:     "Describe collector defaults and accepted ranges",
	Responses: map[int]*openapi.Response{
		200: openapi.ResponseJSON("Collector options", "Options"),
	},
}
