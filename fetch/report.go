package fetch

import (
	"io"

	"github.com/indigo-web/rawfetch/internal/http1"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

// Report describes a single download.
type Report struct {
	Host        string `json:"host"`
	Port        uint16 `json:"port"`
	Path        string `json:"path"`
	Output      string `json:"output,omitempty"`
	HeaderBytes int    `json:"header_bytes"`
	BodyBytes   int64  `json:"body_bytes"`
	Reads       int    `json:"reads"`
	// Boundary is set if the end of the header block was met (and thereby stripped.)
	Boundary bool `json:"boundary"`
	// Cached is set if nothing was downloaded because the output already existed.
	Cached bool `json:"cached"`
}

// WriteJSON writes the report as a single line of JSON.
func (r Report) WriteJSON(w io.Writer) error {
	return jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w).Encode(r)
}

func (r *Report) apply(stats http1.Stats) {
	r.HeaderBytes = stats.HeaderBytes
	r.BodyBytes = stats.BodyBytes
	r.Reads = stats.Reads
	r.Boundary = stats.Boundary
}

func (r Report) fields() []zap.Field {
	return []zap.Field{
		zap.String("host", r.Host),
		zap.Uint16("port", r.Port),
		zap.String("path", r.Path),
		zap.String("output", r.Output),
		zap.Int("header_bytes", r.HeaderBytes),
		zap.Int64("body_bytes", r.BodyBytes),
		zap.Int("reads", r.Reads),
	}
}
