package kafka

const (
	TopicTicketIssued   = "queue.ticket.issued"
	TopicTicketCalled   = "queue.ticket.called"
	TopicTicketRecalled = "queue.ticket.recalled"
	TopicTicketFinished = "queue.ticket.finished"

	TopicKioskTicketRequested   = "kiosk.ticket.requested"
	TopicCounterCallRequested   = "counter.call.requested"
	TopicCounterRecallRequested = "counter.recall.requested"
	TopicCounterFinishRequested = "counter.finish.requested"
)
