package model

import "time"

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code,omitempty"`
}

type Person struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone,omitempty"`
	DateOfBirth string   `json:"date_of_birth,omitempty"`
	Address     Address  `json:"address"`
	IsAdmin     bool     `json:"is_admin"`
	Roles       []string `json:"roles,omitempty"`
}

func (p Person) EntityID() string { return p.ID }

func (p Person) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

type Project struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Description       string        `json:"description,omitempty"`
	Status            ProjectStatus `json:"status"`
	MaxParticipants   int           `json:"max_participants,omitempty"`
	StartDate         time.Time     `json:"start_date"`
	EndDate           time.Time     `json:"end_date,omitempty"`
	CreatedBy         string        `json:"created_by,omitempty"`
	SubscriptionCount int           `json:"subscription_count"`
}

func (p Project) EntityID() string { return p.ID }

// AvailableSlots is only meaningful when a participant cap is set.
func (p Project) AvailableSlots() int {
	if p.MaxParticipants <= 0 {
		return 0
	}
	slots := p.MaxParticipants - p.SubscriptionCount
	if slots < 0 {
		return 0
	}
	return slots
}

type Subscription struct {
	ID           string             `json:"id"`
	PersonID     string             `json:"person_id"`
	ProjectID    string             `json:"project_id"`
	Status       SubscriptionStatus `json:"status"`
	SubscribedAt time.Time          `json:"subscribed_at"`
	Notes        string             `json:"notes,omitempty"`
}

// Subscriber is a Subscription joined with its owning Person for display.
type Subscriber struct {
	Subscription
	Person Person `json:"person"`
}

type DashboardSummary struct {
	TotalPeople        int       `json:"total_people"`
	TotalProjects      int       `json:"total_projects"`
	TotalSubscriptions int       `json:"total_subscriptions"`
	GeneratedAt        time.Time `json:"generated_at"`
}
