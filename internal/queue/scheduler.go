package queue

import (
	"sort"

	"github.com/vogiaan1904/branchqueue/internal/models"
)

// historySize is the number of tickets shown after the current call.
const historySize = 4

// SelectNext returns the WAITING ticket that should be called next.
// Priority tickets come first, then the oldest createdAt, then creation
// order. An empty departmentID matches every department.
func SelectNext(tickets []*models.Ticket, departmentID string) *models.Ticket {
	var best *models.Ticket
	for _, t := range tickets {
		if !matchesWaiting(t, departmentID) {
			continue
		}
		if best == nil || schedulesBefore(t, best) {
			best = t
		}
	}
	return best
}

func matchesWaiting(t *models.Ticket, departmentID string) bool {
	if !t.IsWaiting() {
		return false
	}
	return departmentID == "" || t.DepartmentID == departmentID
}

// schedulesBefore is strict, so equal keys keep creation order.
func schedulesBefore(a, b *models.Ticket) bool {
	if a.IsPriority != b.IsPriority {
		return a.IsPriority
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// Waiting returns WAITING tickets in the order they would be called.
func Waiting(tickets []*models.Ticket, departmentID string) []*models.Ticket {
	var out []*models.Ticket
	for _, t := range tickets {
		if matchesWaiting(t, departmentID) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return schedulesBefore(out[i], out[j])
	})
	return out
}

func CountWaiting(tickets []*models.Ticket) int {
	n := 0
	for _, t := range tickets {
		if t.IsWaiting() {
			n++
		}
	}
	return n
}

// LastCalled returns the CALLED ticket with the latest calledAt. Equal
// timestamps resolve to the greatest ticket id.
func LastCalled(tickets []*models.Ticket) *models.Ticket {
	var last *models.Ticket
	for _, t := range tickets {
		if !t.IsCalled() || t.CalledAt == nil {
			continue
		}
		if last == nil || calledAfter(t, last) {
			last = t
		}
	}
	return last
}

func calledAfter(a, b *models.Ticket) bool {
	if !a.CalledAt.Equal(*b.CalledAt) {
		return a.CalledAt.After(*b.CalledAt)
	}
	return a.ID > b.ID
}

// RecentlyCalled returns the 2nd to 5th most recently called tickets
// among those CALLED or FINISHED.
func RecentlyCalled(tickets []*models.Ticket) []*models.Ticket {
	var called []*models.Ticket
	for _, t := range tickets {
		if t.CalledAt == nil {
			continue
		}
		if t.Status == models.TicketStatusCalled || t.Status == models.TicketStatusFinished {
			called = append(called, t)
		}
	}
	if len(called) <= 1 {
		return nil
	}

	sort.SliceStable(called, func(i, j int) bool {
		return calledAfter(called[i], called[j])
	})

	end := 1 + historySize
	if end > len(called) {
		end = len(called)
	}
	return called[1:end]
}
