package domain

import "time"

// ListView is the flattened listing row for a user.
type ListView struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Active    bool   `json:"active"`
}

// DetailView adds audit metadata to the listing fields.
type DetailView struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
}

// Stats is the active-account count tuple.
type Stats struct {
	ActiveUsersCount int64 `json:"activeUsersCount"`
}

func (u User) ToListView() ListView {
	return ListView{
		ID:        u.ID.Hex(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
	}
}

func (u User) ToDetailView() DetailView {
	return DetailView{
		ID:        u.ID.Hex(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		CreatedBy: u.CreatedBy,
		UpdatedBy: u.UpdatedBy,
	}
}

func ToListViews(users []User) []ListView {
	out := make([]ListView, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToListView())
	}
	return out
}
