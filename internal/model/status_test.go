package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/awscbba/registry-frontend-sub000/internal/model"
)

func TestProjectStatusTransitions(t *testing.T) {
	allowed := map[model.ProjectStatus][]model.ProjectStatus{
		model.ProjectPending:   {model.ProjectActive, model.ProjectCancelled},
		model.ProjectActive:    {model.ProjectOngoing, model.ProjectCompleted, model.ProjectCancelled},
		model.ProjectOngoing:   {model.ProjectActive, model.ProjectCompleted, model.ProjectCancelled},
		model.ProjectCompleted: {model.ProjectActive},
		model.ProjectCancelled: {model.ProjectActive},
	}

	all := []model.ProjectStatus{
		model.ProjectPending, model.ProjectActive, model.ProjectOngoing,
		model.ProjectCompleted, model.ProjectCancelled,
	}

	for from, targets := range allowed {
		permitted := make(map[model.ProjectStatus]bool)
		for _, to := range targets {
			permitted[to] = true
			require.True(t, from.CanTransition(to), "%s -> %s should be allowed", from, to)
		}
		for _, to := range all {
			if !permitted[to] {
				require.False(t, from.CanTransition(to), "%s -> %s should be rejected", from, to)
			}
		}
	}
}

func TestProjectStatusNothingTerminal(t *testing.T) {
	// Every status, including cancelled and completed, has a way out.
	all := []model.ProjectStatus{
		model.ProjectPending, model.ProjectActive, model.ProjectOngoing,
		model.ProjectCompleted, model.ProjectCancelled,
	}
	for _, s := range all {
		require.NotEmpty(t, s.AllowedTransitions(), "%s should not be terminal", s)
	}
}

func TestProjectStatusValid(t *testing.T) {
	require.True(t, model.ProjectOngoing.Valid())
	require.False(t, model.ProjectStatus("archived").Valid())
}

func TestProjectAvailableSlots(t *testing.T) {
	p := model.Project{MaxParticipants: 10, SubscriptionCount: 7}
	require.Equal(t, 3, p.AvailableSlots())

	uncapped := model.Project{SubscriptionCount: 7}
	require.Equal(t, 0, uncapped.AvailableSlots())

	over := model.Project{MaxParticipants: 5, SubscriptionCount: 8}
	require.Equal(t, 0, over.AvailableSlots())
}

func TestPersonFullName(t *testing.T) {
	require.Equal(t, "Ana Quispe", model.Person{FirstName: "Ana", LastName: "Quispe"}.FullName())
	require.Equal(t, "Ana", model.Person{FirstName: "Ana"}.FullName())
	require.Equal(t, "Quispe", model.Person{LastName: "Quispe"}.FullName())
}
