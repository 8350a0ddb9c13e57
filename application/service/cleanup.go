package service

import (
	"context"

	"github.com/brightlabs/sitesync/domain/index"
)

// cleanupStale deletes prior live copies of the logical document from the
// remote index. Every stale ref lands in the summary exactly once: deleted
// or failed. Nothing here is fatal to the run; a copy that survives a failed
// delete is retried by the next run.
func (o *Orchestrator) cleanupStale(ctx context.Context) index.CleanupSummary {
	var summary index.CleanupSummary

	refs, err := o.client.ListIndexFiles(ctx, o.listLimit)
	if err != nil {
		o.logger.Warn("stale cleanup skipped: list failed", "error", err.Error())
		return summary
	}

	for _, ref := range refs {
		ref = ref.WithFilename(o.client.ResolveFilename(ctx, ref))
		if !index.IsStaleLiveCopy(ref.Filename(), o.marker) {
			continue
		}
		if err := o.client.DeleteIndexMembership(ctx, ref); err != nil {
			o.logger.Warn("stale copy delete failed",
				"membership_id", ref.MembershipID(),
				"filename", ref.Filename(),
				"error", err.Error())
			summary.RecordFailed(ref, err)
			continue
		}
		summary.RecordDeleted(ref)
	}

	o.logger.Info("stale cleanup finished",
		"scanned", len(refs),
		"deleted", summary.DeletedCount(),
		"failed", summary.FailedCount())
	return summary
}
