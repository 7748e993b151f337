package server

import (
	"github.com/gin-gonic/gin"
	"github.com/noreyni/webhook-api/internal/user/domain"
)

func (s *Server) listUsers(c *gin.Context) {
	page, err := bindPaging(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	views, meta, err := s.users.List(c.Request.Context(), page)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondPage(c, views, meta)
}

func (s *Server) getUser(c *gin.Context) {
	view, err := s.users.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, view)
}

func (s *Server) createUser(c *gin.Context) {
	var req domain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errMalformedBody)
		return
	}
	actor, err := actorID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	view, err := s.users.Create(c.Request.Context(), req, actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, view)
}

func (s *Server) updateUser(c *gin.Context) {
	var req domain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, errMalformedBody)
		return
	}
	actor, err := actorID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	view, err := s.users.Update(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, view)
}

func (s *Server) deleteUser(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.users.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
		AbortWithError(c, err)
		return
	}
	respondMessage(c, "user deleted")
}

func (s *Server) checkUserEmail(c *gin.Context) {
	email := queryTrimmed(c, "email")
	if email == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	taken, err := s.users.ExistsByEmail(c.Request.Context(), email)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, gin.H{"available": !taken})
}

func (s *Server) userStats(c *gin.Context) {
	stats, err := s.users.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, stats)
}
