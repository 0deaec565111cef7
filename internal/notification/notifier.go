package notification

import (
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/logs"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/submission"
)

var client = resty.New().SetTimeout(5 * time.Second)

// SubmissionReviewed prévient le collaborateur de notification qu'une
// décision de revue est tombée. Tir-et-oubli : un échec est journalisé et
// n'affecte jamais la transaction de cycle de vie déjà commise.
func SubmissionReviewed(sub *submission.Submission, decision string) {
	webhookURL := os.Getenv("NOTIFY_WEBHOOK_URL")
	if webhookURL == "" {
		return
	}

	payload := map[string]interface{}{
		"event":         "submission." + decision,
		"submission_id": sub.ID,
		"author_id":     sub.AuthorID,
		"title":         sub.Title,
		"post_type":     sub.PostType,
	}
	if decision == "rejected" {
		payload["rejection_reason"] = sub.RejectionReason
		payload["can_move_to_draft"] = sub.CanMoveToDraft
	}

	go func() {
		resp, err := client.R().SetBody(payload).Post(webhookURL)
		if err != nil || resp.IsError() {
			fields := map[string]interface{}{"submissionID": sub.ID, "decision": decision}
			if err != nil {
				fields["error"] = err.Error()
			} else {
				fields["status"] = resp.StatusCode()
			}
			logs.LogJSON("WARN", "Notification webhook failed", fields)
		}
	}()
}
