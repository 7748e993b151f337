package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/noreyni/webhook-api/internal/invitation/domain"
)

func (s *Server) invite(c *gin.Context) {
	var req domain.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errMalformedBody)
		return
	}
	if len(req.InviteeIDs) == 0 {
		AbortWithError(c, errMissingInvitees)
		return
	}
	actor, err := actorID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	views, err := s.invitations.Invite(c.Request.Context(), req, actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, views)
}

func (s *Server) listProjectInvitations(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	views, err := s.invitations.ListByProject(c.Request.Context(), c.Param("projectId"), actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, views)
}

func (s *Server) listMyInvitations(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	views, err := s.invitations.ListMine(c.Request.Context(), actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, views)
}

func (s *Server) respondInvitation(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var view domain.View
	switch strings.ToLower(queryTrimmed(c, "action")) {
	case "accept":
		view, err = s.invitations.Accept(c.Request.Context(), c.Param("id"), actor)
	case "reject":
		view, err = s.invitations.Reject(c.Request.Context(), c.Param("id"), actor)
	default:
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, view)
}

func (s *Server) invitationStats(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	stats, err := s.invitations.Stats(c.Request.Context(), c.Param("projectId"), actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, stats)
}

func (s *Server) sweepExpiredInvitations(c *gin.Context) {
	flipped, err := s.invitations.SweepExpired(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, gin.H{"expired": flipped})
}

func (s *Server) purgeExpiredInvitations(c *gin.Context) {
	purged, err := s.invitations.PurgeExpired(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": purged})
}
