package domain

import "time"

// ListView is the flattened listing row for a project.
type ListView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Visibility  Visibility `json:"visibility"`
	Type        Type       `json:"type"`
	AvatarURL   string     `json:"avatarUrl,omitempty"`
	OwnerID     string     `json:"ownerId"`
	MemberCount int        `json:"memberCount"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// DetailView adds the membership sets and audit metadata.
type DetailView struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Status         Status     `json:"status"`
	Visibility     Visibility `json:"visibility"`
	Type           Type       `json:"type"`
	AvatarURL      string     `json:"avatarUrl,omitempty"`
	OwnerID        string     `json:"ownerId"`
	MemberIDs      []string   `json:"memberIds"`
	InvitedUserIDs []string   `json:"invitedUserIds"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	CreatedBy      string     `json:"createdBy,omitempty"`
	UpdatedBy      string     `json:"updatedBy,omitempty"`
}

// Stats is the per-owner count tuple. Archived projects count toward the
// total but have no dedicated slot.
type Stats struct {
	TotalProjects     int64 `json:"totalProjects"`
	ActiveProjects    int64 `json:"activeProjects"`
	DraftProjects     int64 `json:"draftProjects"`
	CompletedProjects int64 `json:"completedProjects"`
}

func (p Project) ToListView() ListView {
	return ListView{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		Visibility:  p.Visibility,
		Type:        p.Type,
		AvatarURL:   p.AvatarURL,
		OwnerID:     p.OwnerID,
		MemberCount: len(p.MemberIDs),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (p Project) ToDetailView() DetailView {
	memberIDs := p.MemberIDs
	if memberIDs == nil {
		memberIDs = []string{}
	}
	invitedIDs := p.InvitedUserIDs
	if invitedIDs == nil {
		invitedIDs = []string{}
	}
	return DetailView{
		ID:             p.ID.Hex(),
		Name:           p.Name,
		Description:    p.Description,
		Status:         p.Status,
		Visibility:     p.Visibility,
		Type:           p.Type,
		AvatarURL:      p.AvatarURL,
		OwnerID:        p.OwnerID,
		MemberIDs:      memberIDs,
		InvitedUserIDs: invitedIDs,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		CreatedBy:      p.CreatedBy,
		UpdatedBy:      p.UpdatedBy,
	}
}

func ToListViews(projects []Project) []ListView {
	out := make([]ListView, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ToListView())
	}
	return out
}
