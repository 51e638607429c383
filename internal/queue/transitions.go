package queue

import "github.com/vogiaan1904/branchqueue/internal/models"

type Action string

const (
	ActionCall   Action = "call"
	ActionRecall Action = "recall"
	ActionFinish Action = "finish"
)

// transitionMap lists, per action, the statuses it may be applied from
// and the status it leads to. Terminal statuses appear nowhere as a source.
var transitionMap = map[Action]struct {
	from []models.TicketStatus
	to   models.TicketStatus
}{
	ActionCall:   {from: []models.TicketStatus{models.TicketStatusWaiting}, to: models.TicketStatusCalled},
	ActionRecall: {from: []models.TicketStatus{models.TicketStatusCalled}, to: models.TicketStatusCalled},
	ActionFinish: {from: []models.TicketStatus{models.TicketStatusWaiting, models.TicketStatusCalled}, to: models.TicketStatusFinished},
}

// ValidTransition returns the resulting status when action is allowed
// from status.
func ValidTransition(status models.TicketStatus, action Action) (models.TicketStatus, bool) {
	t, ok := transitionMap[action]
	if !ok {
		return "", false
	}
	for _, s := range t.from {
		if s == status {
			return t.to, true
		}
	}
	return "", false
}
