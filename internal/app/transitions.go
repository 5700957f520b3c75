package app

import "campushire/internal/domain/application"

// transitionCause records what triggered a status change; it selects the
// notification behavior in applyTransition.
type transitionCause string

const (
	causeReview   transitionCause = "review"
	causeSchedule transitionCause = "schedule"
	causeFeedback transitionCause = "feedback"
	causeWithdraw transitionCause = "withdraw"
)

var allowedTransitions = map[application.Status][]application.Status{
	application.StatusPending: {
		application.StatusShortlisted,
		application.StatusInterviewScheduled,
		application.StatusRejected,
		application.StatusWithdrawn,
	},
	application.StatusShortlisted: {
		application.StatusInterviewScheduled,
		application.StatusRejected,
		application.StatusWithdrawn,
	},
	application.StatusInterviewScheduled: {
		application.StatusSelected,
		application.StatusRejected,
		application.StatusWithdrawn,
	},
}

// isAllowedTransition implements the application status machine. Terminal
// statuses have no outgoing edges; a same-status transition is permitted so
// that repeated scheduling rounds and note updates pass through.
func isAllowedTransition(from, to application.Status) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func statusMessage(status application.Status) string {
	switch status {
	case application.StatusShortlisted:
		return "Good news! You have been shortlisted."
	case application.StatusSelected:
		return "Congratulations! You have been selected."
	case application.StatusRejected:
		return "We regret to inform you that your application was not successful."
	default:
		return "Your application status has been updated to " + string(status) + "."
	}
}
