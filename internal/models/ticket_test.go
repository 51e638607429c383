package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTicketCloneDoesNotAliasCalledAt(t *testing.T) {
	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	orig := &Ticket{ID: "t1", Status: TicketStatusCalled, CalledAt: &at}

	c := orig.Clone()
	*c.CalledAt = at.Add(time.Hour)

	assert.Equal(t, at, *orig.CalledAt)
	assert.Nil(t, (*Ticket)(nil).Clone())
}

func TestTicketIsTerminal(t *testing.T) {
	for status, want := range map[TicketStatus]bool{
		TicketStatusWaiting:  false,
		TicketStatusCalled:   false,
		TicketStatusFinished: true,
		TicketStatusCanceled: true,
	} {
		tk := Ticket{Status: status}
		assert.Equal(t, want, tk.IsTerminal(), status)
	}
}

func TestMediaDisplayDuration(t *testing.T) {
	m := MarketingMedia{Duration: 30}
	assert.Equal(t, 30*time.Second, m.DisplayDuration())
	assert.False(t, MediaType("GIF").Valid())
}
