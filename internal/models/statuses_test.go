package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_AllowedEdges(t *testing.T) {
	allowed := []struct {
		from HireStatus
		to   HireStatus
	}{
		{HireStatusPending, HireStatusInProgress},
		{HireStatusPending, HireStatusRejected},
		{HireStatusPending, HireStatusCancelled},
		{HireStatusInProgress, HireStatusWaitingClientApproval},
		{HireStatusInProgress, HireStatusCompleted},
		{HireStatusInProgress, HireStatusCancelled},
		{HireStatusWaitingClientApproval, HireStatusCompleted},
		{HireStatusWaitingClientApproval, HireStatusInProgress},
		{HireStatusWaitingClientApproval, HireStatusCancelled},
	}

	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s должен быть разрешен", tc.from, tc.to)
	}
}

func TestCanTransition_ForbiddenJumps(t *testing.T) {
	forbidden := []struct {
		from HireStatus
		to   HireStatus
	}{
		{HireStatusPending, HireStatusCompleted},
		{HireStatusPending, HireStatusWaitingClientApproval},
		{HireStatusRejected, HireStatusInProgress},
		{HireStatusCancelled, HireStatusPending},
		{HireStatusCompleted, HireStatusInProgress},
		{HireStatusCompleted, HireStatusCompleted},
		{HireStatusInProgress, HireStatusPending},
		{HireStatusInProgress, HireStatusRejected},
	}

	for _, tc := range forbidden {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s должен быть запрещен", tc.from, tc.to)
	}
}

func TestTerminalStatusesHaveNoOutgoingEdges(t *testing.T) {
	all := []HireStatus{
		HireStatusPending, HireStatusInProgress, HireStatusWaitingClientApproval,
		HireStatusCompleted, HireStatusRejected, HireStatusCancelled,
	}

	for _, from := range all {
		if !from.IsTerminal() {
			continue
		}
		for _, to := range all {
			assert.False(t, CanTransition(from, to), "терминальный %s не должен иметь переходов", from)
		}
	}
}
