package domain

import "time"

// View is the wire shape of an invitation.
type View struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	InviterID string    `json:"inviterId"`
	InviteeID string    `json:"inviteeId"`
	Status    Status    `json:"status"`
	Message   string    `json:"message,omitempty"`
	SentAt    time.Time `json:"sentAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Stats counts a project's invitations per outcome. Pending invitations past
// their deadline are reported as expired even before the sweep flips them.
type Stats struct {
	TotalInvitations    int64 `json:"totalInvitations"`
	PendingInvitations  int64 `json:"pendingInvitations"`
	AcceptedInvitations int64 `json:"acceptedInvitations"`
	RejectedInvitations int64 `json:"rejectedInvitations"`
	ExpiredInvitations  int64 `json:"expiredInvitations"`
}

func (i Invitation) ToView() View {
	return View{
		ID:        i.ID.Hex(),
		ProjectID: i.ProjectID,
		InviterID: i.InviterID,
		InviteeID: i.InviteeID,
		Status:    i.Status,
		Message:   i.Message,
		SentAt:    i.SentAt,
		ExpiresAt: i.ExpiresAt,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func ToViews(invitations []Invitation) []View {
	out := make([]View, 0, len(invitations))
	for _, inv := range invitations {
		out = append(out, inv.ToView())
	}
	return out
}
