package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus(" active ")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, status)

	_, err = ParseStatus("SUSPENDED")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("service_desk")
	require.NoError(t, err)
	assert.Equal(t, TypeServiceDesk, typ)

	_, err = ParseType("")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestMembershipHelpers(t *testing.T) {
	p := Project{}

	p.AddInvited("u1")
	p.AddInvited("u1")
	assert.Equal(t, []string{"u1"}, p.InvitedUserIDs)
	assert.True(t, p.IsInvited("u1"))

	p.AddMember("u1")
	p.RemoveInvited("u1")
	assert.True(t, p.HasMember("u1"))
	assert.False(t, p.IsInvited("u1"))
}

func TestDetailViewNilSlicesBecomeEmpty(t *testing.T) {
	view := Project{}.ToDetailView()
	assert.NotNil(t, view.MemberIDs)
	assert.NotNil(t, view.InvitedUserIDs)
	assert.Empty(t, view.MemberIDs)
}
