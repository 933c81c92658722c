package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTicketNumber(t *testing.T) {
	tests := []struct {
		number int
		want   string
	}{
		{1, "0001"},
		{42, "0042"},
		{999, "0999"},
		{1000, "1000"},
		{12345, "12345"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTicketNumber(tt.number))
	}
}

func TestTicketChannelName(t *testing.T) {
	assert.Equal(t, "ticket-0001", TicketChannelName(1))
	assert.Equal(t, "ticket-0317", TicketChannelName(317))
}
