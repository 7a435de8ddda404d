package api

import "github.com/JaimeStill/metalid/internal/identify"

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Identify identify.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Identify: identify.New(runtime.Logger),
	}
}
