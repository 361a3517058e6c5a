package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OpEncode   = "encode"
	OpDecode   = "decode"
	OpValidate = "validate"

	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	codecMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sip2ctl",
			Subsystem: "codec",
			Name:      "messages_total",
			Help:      "Messages processed by the field codec.",
		},
		[]string{"op", "schema", "result"},
	)
	validationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sip2ctl",
			Subsystem: "validation",
			Name:      "errors_total",
			Help:      "Field validation errors by schema, field and key.",
		},
		[]string{"schema", "field", "key"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(codecMessages, validationErrors)
	})
}

func RecordCodecMessage(op, schema, result string) {
	RegisterMetrics()
	codecMessages.WithLabelValues(op, schema, result).Inc()
}

func RecordValidationError(schema, field, key string) {
	RegisterMetrics()
	validationErrors.WithLabelValues(schema, field, key).Inc()
}

// CodecMessages returns the codec counter for one label set.
func CodecMessages(op, schema, result string) prometheus.Counter {
	RegisterMetrics()
	return codecMessages.WithLabelValues(op, schema, result)
}

// ValidationErrors returns the validation error counter for one label set.
func ValidationErrors(schema, field, key string) prometheus.Counter {
	RegisterMetrics()
	return validationErrors.WithLabelValues(schema, field, key)
}
