package loop

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/ghostline/recorder/internal/loop"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
