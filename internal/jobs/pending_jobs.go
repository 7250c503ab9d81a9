package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"shedstock-backend/internal/logger"
)

type pendingWithdrawal struct {
	RecordID    int32
	ItemName    string
	Category    string
	TakenBy     string
	WithdrawnAt time.Time
	Outstanding int32
	Place       string
}

// NotifyPendingWithdrawals reports withdrawals that have stayed
// unsettled past the configured threshold. Each qualifying record is
// reported at most once per threshold window: a record only qualifies
// again once its last notification is itself older than the threshold.
func (jr *JobRunner) NotifyPendingWithdrawals() {
	jr.runWithRecovery("NotifyPendingWithdrawals", func() {
		ctx := context.Background()
		now := jr.now()
		threshold := now.AddDate(0, 0, -jr.config.Notifier.ThresholdDays)

		query := `
			SELECT r.id, i.name, i.category, COALESCE(NULLIF(r.taken_by, ''), r.user_name),
			       r.date, COALESCE(r.amount_outstanding, 0), r.place
			FROM stock_records r
			JOIN items i ON r.item_id = i.id
			WHERE r.action = 'WITHDRAWAL'
			  AND r.settled = FALSE
			  AND r.date < $1
			  AND (r.last_notified IS NULL OR r.last_notified < $1)
			ORDER BY r.date ASC
		`

		rows, err := jr.db.QueryContext(ctx, query, threshold)
		if err != nil {
			logger.Error("Failed to query pending withdrawals", "error", err)
			return
		}
		defer rows.Close()

		var pending []pendingWithdrawal
		for rows.Next() {
			var p pendingWithdrawal
			if err := rows.Scan(&p.RecordID, &p.ItemName, &p.Category, &p.TakenBy,
				&p.WithdrawnAt, &p.Outstanding, &p.Place); err != nil {
				logger.Error("Failed to scan pending withdrawal", "error", err)
				continue
			}
			pending = append(pending, p)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating pending withdrawals", "error", err)
			return
		}

		if len(pending) == 0 {
			logger.Info("No pending withdrawals to notify")
			return
		}

		body := jr.buildPendingEmailBody(pending, now)
		if err := jr.emailSvc.SendPendingItemsNotification(ctx, jr.config.Notifier.AdminEmail, body, len(pending)); err != nil {
			// Leave last_notified untouched so the next tick retries.
			logger.Error("Failed to send pending items notification",
				"count", len(pending), "error", err)
			return
		}

		ids := make([]int32, len(pending))
		for i, p := range pending {
			ids[i] = p.RecordID
		}
		_, err = jr.db.ExecContext(ctx,
			`UPDATE stock_records SET last_notified = $1 WHERE id = ANY($2)`,
			now, pq.Array(ids))
		if err != nil {
			logger.Error("Failed to stamp last notification date", "error", err)
			return
		}

		logger.Info("Pending items notification sent", "count", len(pending))
	})
}

func (jr *JobRunner) buildPendingEmailBody(pending []pendingWithdrawal, now time.Time) string {
	var b strings.Builder
	b.WriteString("The following items have been pending for too long:\n\n")
	for _, p := range pending {
		place := p.Place
		if place == "" {
			place = "not specified"
		}
		daysPending := int(now.Sub(p.WithdrawnAt).Hours() / 24)
		fmt.Fprintf(&b, "Item: %s\nCategory: %s\nTaken by: %s\nWithdrawn on: %s\nDays pending: %d\nQuantity: %d\nPlace: %s\n",
			p.ItemName, p.Category, p.TakenBy, p.WithdrawnAt.Format("02/01/2006 15:04"), daysPending, p.Outstanding, place)
		b.WriteString("----------------------------------------\n")
	}
	return b.String()
}
