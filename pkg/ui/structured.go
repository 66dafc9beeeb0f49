package ui

import (
	"io"

	"github.com/arthur-debert/brewadopt/pkg/catalog"
	"github.com/arthur-debert/brewadopt/pkg/discovery"
	"github.com/arthur-debert/brewadopt/pkg/errors"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// structuredRenderer writes results as JSON or YAML documents for machine
// consumption. Both formats share the same tags on the result types.
type structuredRenderer struct {
	encode func(v interface{}) error
}

func newJSONRenderer(w io.Writer) *structuredRenderer {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &structuredRenderer{encode: enc.Encode}
}

func newYAMLRenderer(w io.Writer) *structuredRenderer {
	return &structuredRenderer{encode: func(v interface{}) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}}
}

type errorPayload struct {
	Code    errors.ErrorCode       `json:"code" yaml:"code"`
	Message string                 `json:"message" yaml:"message"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

func (r *structuredRenderer) RenderDiscovery(result *discovery.Result) error {
	return r.encode(result)
}

func (r *structuredRenderer) RenderCacheInfo(info *catalog.Info) error {
	return r.encode(info)
}

func (r *structuredRenderer) RenderError(err error) error {
	return r.encode(map[string]errorPayload{
		"error": {
			Code:    errors.GetErrorCode(err),
			Message: err.Error(),
			Details: errors.GetErrorDetails(err),
		},
	})
}

func (r *structuredRenderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}
