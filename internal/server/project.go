package server

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/noreyni/webhook-api/internal/project/domain"
)

func (s *Server) searchProjects(c *gin.Context) {
	page, err := bindPaging(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	req := domain.SearchRequest{
		Name:          queryTrimmed(c, "name"),
		Status:        queryTrimmed(c, "status"),
		Visibility:    queryTrimmed(c, "visibility"),
		Type:          queryTrimmed(c, "type"),
		OwnerID:       queryTrimmed(c, "ownerId"),
		Page:          page,
		SortBy:        queryTrimmed(c, "sortBy"),
		SortDirection: queryTrimmed(c, "sortDirection"),
	}

	views, meta, err := s.projects.Search(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondPage(c, views, meta)
}

func (s *Server) getProject(c *gin.Context) {
	view, err := s.projects.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, view)
}

func (s *Server) createProject(c *gin.Context) {
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

	view, err := s.projects.Create(c.Request.Context(), req, actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, view)
}

func (s *Server) updateProject(c *gin.Context) {
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

	view, err := s.projects.Update(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, view)
}

func (s *Server) changeProjectStatus(c *gin.Context) {
	status := queryTrimmed(c, "status")
	if status == "" {
		AbortWithError(c, errMissingStatus)
		return
	}
	actor, err := actorID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	view, err := s.projects.ChangeStatus(c.Request.Context(), c.Param("id"), status, actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, view)
}

func (s *Server) deleteProject(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.projects.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
		AbortWithError(c, err)
		return
	}
	respondMessage(c, "project deleted")
}

func (s *Server) checkProjectName(c *gin.Context) {
	name := queryTrimmed(c, "name")
	if name == "" {
		AbortWithError(c, errMissingName)
		return
	}
	taken, err := s.projects.ExistsByName(c.Request.Context(), name)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, gin.H{"available": !taken})
}

func (s *Server) listProjectsByOwner(c *gin.Context) {
	views, err := s.projects.FindByOwner(c.Request.Context(), c.Param("ownerId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, views)
}

func (s *Server) listRecentProjectsByOwner(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	views, err := s.projects.FindRecentByOwner(c.Request.Context(), c.Param("ownerId"), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, views)
}

func (s *Server) listMyProjects(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	views, err := s.projects.FindByOwner(c.Request.Context(), actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, views)
}

func (s *Server) listAccessibleProjects(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	views, err := s.projects.FindAccessible(c.Request.Context(), actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, views)
}

func (s *Server) projectStatsByOwner(c *gin.Context) {
	stats, err := s.projects.Stats(c.Request.Context(), c.Param("ownerId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, stats)
}

func (s *Server) myProjectStats(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	stats, err := s.projects.Stats(c.Request.Context(), actor)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, stats)
}
