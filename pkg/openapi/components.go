package openapi

import "maps"

func errorBody(description string, withFields bool) *Response {
	props := map[string]*Schema{
		"error": {Type: "string", Description: "Error message"},
	}
	if withFields {
		props["fields"] = &Schema{
			Type:        "object",
			Description: "Per-field validation messages keyed by field name",
		}
	}
	return &Response{
		Description: description,
		Content:     content(MediaJSON, &Schema{Type: "object", Properties: props}),
	}
}

// NewComponents creates Components with the shared error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{},
		Responses: map[string]*Response{
			"BadRequest":           errorBody("Malformed request", false),
			"UnprocessableEntity":  errorBody("One or more fields failed validation", true),
			"PayloadTooLarge":      errorBody("Request body exceeds the upload limit", false),
			"UnsupportedMediaType": errorBody("Uploaded image is not jpg, jpeg or png", false),
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
