package jsonbundle

import (
	"encoding/json"
	"fmt"

	"casespine/internal/ports"
)

type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "json" }

func (e *Exporter) Encode(b ports.ExportBundle) ([]byte, error) {
	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json bundle: %w", err)
	}
	return append(out, '\n'), nil
}
