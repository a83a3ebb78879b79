package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		name    string
		from    JobStatus
		to      JobStatus
		allowed bool
	}{
		{"new lead can be scheduled", StatusNewLead, StatusScheduled, true},
		{"new lead can be claimed", StatusNewLead, StatusInProgress, true},
		{"new lead can be lost", StatusNewLead, StatusLeadLost, true},
		{"new lead cannot skip to QC", StatusNewLead, StatusPendingQC, false},
		{"new lead cannot skip to active", StatusNewLead, StatusActive, false},
		{"re-scheduling is allowed", StatusScheduled, StatusScheduled, true},
		{"scheduled can be claimed", StatusScheduled, StatusInProgress, true},
		{"claimed can be released", StatusInProgress, StatusScheduled, true},
		{"claimed moves to QC", StatusInProgress, StatusPendingQC, true},
		{"claimed cannot jump to configured", StatusInProgress, StatusConfigured, false},
		{"QC moves to configured", StatusPendingQC, StatusConfigured, true},
		{"QC can be lost", StatusPendingQC, StatusLeadLost, true},
		{"QC cannot go backwards", StatusPendingQC, StatusInProgress, false},
		{"configured moves to active", StatusConfigured, StatusActive, true},
		{"active is terminal", StatusActive, StatusConfigured, false},
		{"active cannot be lost", StatusActive, StatusLeadLost, false},
		{"lost is terminal", StatusLeadLost, StatusNewLead, false},
		{"lost stays lost", StatusLeadLost, StatusLeadLost, false},
		{"unknown status has no transitions", JobStatus("BOGUS"), StatusScheduled, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to))
		})
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, Terminal(StatusActive))
	assert.True(t, Terminal(StatusLeadLost))
	assert.False(t, Terminal(StatusNewLead))
	assert.False(t, Terminal(StatusConfigured))
}
