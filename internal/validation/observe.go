package validation

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/trossworks/trossd/internal/config"
	"github.com/trossworks/trossd/internal/logger"
	"github.com/trossworks/trossd/internal/metrics"
)

// Observability for the validators. All three calls are fire-and-forget:
// they never alter control flow and never fail.

// logFailure records a rejected parameter at Warn and bumps the failure
// counter.
func logFailure(ctx context.Context, validator, field string, value any, reason string) {
	metrics.ValidationFailuresTotal.WithLabelValues(validator, field).Inc()
	logger.FromContext(ctx).Warn("validation failed",
		zap.String("validator", validator),
		zap.String("field", field),
		zap.String("value", stringify(value)),
		zap.String("reason", reason),
	)
}

// logCoercion records a type coercion at Info. Only active in local/dev
// environments; a no-op in prod and tests.
func logCoercion(ctx context.Context, field string, original, coerced any) {
	if !devEnv() {
		return
	}
	logger.FromContext(ctx).Info("type coerced",
		zap.String("field", field),
		zap.String("original", stringify(original)),
		zap.String("original_type", fmt.Sprintf("%T", original)),
		zap.String("coerced", stringify(coerced)),
		zap.String("coerced_type", fmt.Sprintf("%T", coerced)),
	)
}

// logSuccess records a passed validator at Debug.
func logSuccess(ctx context.Context, validator, field string) {
	metrics.ValidationRequestsTotal.WithLabelValues(validator).Inc()
	logger.FromContext(ctx).Debug("validation passed",
		zap.String("validator", validator),
		zap.String("field", field),
	)
}

func devEnv() bool {
	switch config.GetEnv() {
	case "local", "dev", "docker":
		return true
	default:
		return false
	}
}

// stringify renders a logged value; non-strings go through JSON so the log
// line stays structured.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
