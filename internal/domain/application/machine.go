package application

// legalTransitions is the full status graph. Resubmission is the only way
// back from rejected to pending and keeps the application identity; approved
// and withdrawn are terminal.
var legalTransitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusWithdrawn},
	StatusRejected: {StatusPending, StatusWithdrawn},
}

func CanTransition(from, to Status) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// checkTransition validates a review decision, including the comment rule:
// rejection requires a comment, every other target status clears it.
func checkTransition(from, to Status, comment string) error {
	if !CanTransition(from, to) {
		return ErrInvalidTransition
	}
	if to == StatusRejected && comment == "" {
		return ErrCommentRequired
	}
	return nil
}

// listRank orders the review queue: open applications first, approved in the
// middle, withdrawn at the bottom. Ties break on ascending application id.
func listRank(status Status) int {
	switch status {
	case StatusPending, StatusRejected:
		return 0
	case StatusApproved:
		return 1
	default:
		return 2
	}
}
