package model

type ProjectStatus string

const (
	ProjectPending   ProjectStatus = "pending"
	ProjectActive    ProjectStatus = "active"
	ProjectOngoing   ProjectStatus = "ongoing"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPending, ProjectActive, ProjectOngoing, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

// projectTransitions is the full adjacency table for project status changes.
// Note that "cancelled" and "completed" can both return to "active", so no
// project status is truly terminal.
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectPending:   {ProjectActive, ProjectCancelled},
	ProjectActive:    {ProjectOngoing, ProjectCompleted, ProjectCancelled},
	ProjectOngoing:   {ProjectActive, ProjectCompleted, ProjectCancelled},
	ProjectCompleted: {ProjectActive},
	ProjectCancelled: {ProjectActive},
}

// CanTransition reports whether a project may move from one status to another.
func (s ProjectStatus) CanTransition(to ProjectStatus) bool {
	for _, allowed := range projectTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from s in one step.
func (s ProjectStatus) AllowedTransitions() []ProjectStatus {
	out := make([]ProjectStatus, len(projectTransitions[s]))
	copy(out, projectTransitions[s])
	return out
}

type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionPending, SubscriptionActive, SubscriptionCancelled:
		return true
	}
	return false
}
