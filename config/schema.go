package config

import (
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/colordropper/surface"
)

var resolvedSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	s, err := Schema()
	if err != nil {
		return nil, err
	}

	rs, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve config schema: %w", err)
	}

	return rs, nil
})

// Schema returns the JSON Schema of [File]. Every key is optional and
// unknown keys are rejected.
func Schema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[File](nil)
	if err != nil {
		return nil, fmt.Errorf("generate config schema: %w", err)
	}

	s.Title = "colordropper configuration"
	dropRequired(s)

	minimum(s, 1, "picker", "maxPixelCount")
	minimum(s, 0, "picker", "strokeSize")
	minimum(s, 0, "picker", "separatorSize")
	minimum(s, 1, "picker", "lensDiameter")
	minimum(s, 0, "picker", "label", "padding")
	minimum(s, 0, "picker", "label", "height")
	minimum(s, 0, "picker", "label", "radius")
	minimum(s, 1, "picker", "label", "fontSize")
	minimum(s, 1, "terminal", "maxPixelCount")
	minimum(s, 0, "terminal", "strokeSize")
	minimum(s, 1, "terminal", "lensDiameter")
	minimum(s, 1, "background", "squareSize")
	minimum(s, 1, "render", "fps")

	if p := property(s, "render", "interpolator"); p != nil {
		for _, name := range surface.Interpolators() {
			p.Enum = append(p.Enum, name)
		}
	}

	return s, nil
}

func dropRequired(s *jsonschema.Schema) {
	if s == nil {
		return
	}

	s.Required = nil
	for _, p := range s.Properties {
		dropRequired(p)
	}
}

func property(s *jsonschema.Schema, path ...string) *jsonschema.Schema {
	for _, name := range path {
		if s == nil {
			return nil
		}

		s = s.Properties[name]
	}

	return s
}

func minimum(s *jsonschema.Schema, v float64, path ...string) {
	if p := property(s, path...); p != nil {
		p.Minimum = jsonschema.Ptr(v)
	}
}
