package correlator

import (
	"fmt"

	"github.com/yairfalse/sagescan/pkg/record"
)

// endpointStatusMap is the fixed classification of platform-reported
// endpoint status strings. It mirrors the platform's deployment
// lifecycle; no transitions are modeled.
var endpointStatusMap = map[string]record.DeploymentStatus{
	"OutOfService":   record.StatusOutOfService,
	"Creating":       record.StatusCreating,
	"Updating":       record.StatusUpdating,
	"SystemUpdating": record.StatusUpdating,
	"RollingBack":    record.StatusRollingBack,
	"InService":      record.StatusInService,
	"Deleting":       record.StatusDeleting,
	"Failed":         record.StatusFailed,
	"Unknown":        record.StatusUnknown,
}

// endpointStatus maps a raw status string to the canonical enum.
// An unmapped string is recoverable: one warning, UNKNOWN fallback.
func (c *Correlator) endpointStatus(name, arn, raw string) record.DeploymentStatus {
	if raw == "" {
		raw = "Unknown"
	}

	status, ok := endpointStatusMap[raw]
	if !ok {
		c.report.ReportWarning(arn, fmt.Sprintf("unknown status for %s (%s): %s", name, arn, raw))
		c.logger.Warn().
			Str("endpoint", name).
			Str("arn", arn).
			Str("status", raw).
			Msg("unmapped endpoint status")
		return record.StatusUnknown
	}

	return status
}
