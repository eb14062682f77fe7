package ui

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nomen/app"
	"nomen/domain/core"
)

// respondError maps domain errors onto HTTP status codes. Configuration
// errors are the caller's fault; degeneracy and insufficient data are
// properties of the dataset, not the request shape.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound), errors.Is(err, core.ErrTermSetNotFound), errors.Is(err, core.ErrUnknownDomain):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case core.IsConfigurationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case core.IsInsufficientDataError(err), core.IsDegeneracyError(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func limitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		return 0
	}
	return limit
}

func (s *Server) handleListDomains(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"domains": s.profiles.Domains()})
}

func (s *Server) handleGetProfile(c *gin.Context) {
	domain, err := core.ParseDomainID(c.Param("domain"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prof, err := s.profiles.Get(domain)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prof)
}

func (s *Server) handleScore(c *gin.Context) {
	var req app.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := s.scoring.ScoreEntity(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleScoreBatch(c *gin.Context) {
	var req app.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := s.scoring.ScoreBatch(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleListResults(c *gin.Context) {
	domain, err := core.ParseDomainID(c.Param("domain"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	results, err := s.scoring.ListResults(c.Request.Context(), domain, limitParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) handleDetect(c *gin.Context) {
	var req app.DetectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := s.detection.RunDetection(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleListTermVersions(c *gin.Context) {
	domain, err := core.ParseDomainID(c.Param("domain"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	versions, err := s.detection.ListVersions(c.Request.Context(), domain)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"versions": versions})
}

func (s *Server) handleGetTermSet(c *gin.Context) {
	set, err := s.detection.GetTermSet(c.Request.Context(), core.TermSetID(c.Param("version")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

func (s *Server) handleValidate(c *gin.Context) {
	var req app.ValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	report, err := s.validation.RunValidation(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleGetReport(c *gin.Context) {
	report, err := s.validation.GetReport(c.Request.Context(), core.ReportID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleListReports(c *gin.Context) {
	domain, err := core.ParseDomainID(c.Param("domain"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reports, err := s.validation.ListReports(c.Request.Context(), domain, limitParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}
