package iohttp

import (
	"context"
	"errors"
	"net/http"

	app "github.com/ecoglobe/biosync/pkg"
	"github.com/ecoglobe/biosync/pkg/cluster"
	"github.com/ecoglobe/biosync/pkg/geo"
	"github.com/ecoglobe/biosync/pkg/lifecycle"
	"github.com/ecoglobe/biosync/pkg/species"
	"github.com/ecoglobe/biosync/pkg/store"
	"github.com/gin-gonic/gin"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": app.Version,
	})
}

// country reads and checks the country code of a request.
func country(c *gin.Context) (string, bool) {
	code := cluster.NormCountry(c.Param("country"))
	if _, ok := geo.Lookup(code); !ok {
		badRequest(c, "unknown country code "+code)
		return "", false
	}
	return code, true
}

func (s *Server) listClusters(c *gin.Context) {
	res, err := s.cls.List(c.Request.Context())
	if err != nil {
		reqLog(c, s.log).Error("Cannot list clusters", "error", err)
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) getCluster(c *gin.Context) {
	code, ok := country(c)
	if !ok {
		return
	}
	res, err := s.cls.GetByCountry(c.Request.Context(), code)
	if errors.Is(err, store.ErrNotFound) {
		notFound(c, "no cluster for "+code)
		return
	}
	if err != nil {
		reqLog(c, s.log).Error("Cannot read cluster", "country", code, "error", err)
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, res)
}

// refreshCluster syncs the country from its last update mark and
// returns the new aggregate.
func (s *Server) refreshCluster(c *gin.Context) {
	code, ok := country(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	in := lifecycle.SyncInput{Country: code}
	cl, err := s.cls.GetByCountry(ctx, code)
	switch {
	case err == nil:
		in.ClusterID = cl.ID
		in.LastUpdatedAt = cl.UpdatedAt
	case !errors.Is(err, store.ErrNotFound):
		reqLog(c, s.log).Error("Cannot read cluster", "country", code, "error", err)
		internalError(c)
		return
	}

	res, err := s.snc.Sync(ctx, in)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) recomputeCluster(c *gin.Context) {
	code, ok := country(c)
	if !ok {
		return
	}
	res, err := s.snc.Recompute(c.Request.Context(), code)
	if err != nil {
		reqLog(c, s.log).Error("Cannot recompute cluster", "country", code, "error", err)
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, res)
}

// findSpecies accepts a species ID or an external taxon id.
func (s *Server) findSpecies(
	ctx context.Context,
	id string,
) (species.Species, error) {
	res, err := s.spp.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return s.spp.GetByTaxonID(ctx, id)
	}
	return res, err
}

func (s *Server) getSpecies(c *gin.Context) {
	id := c.Param("id")
	res, err := s.findSpecies(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		notFound(c, "no species "+id)
		return
	}
	if err != nil {
		reqLog(c, s.log).Error("Cannot read species", "id", id, "error", err)
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) enrichSpecies(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()
	sp, err := s.findSpecies(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		notFound(c, "no species "+id)
		return
	}
	if err != nil {
		reqLog(c, s.log).Error("Cannot read species", "id", id, "error", err)
		internalError(c)
		return
	}

	res, err := s.enr.Enrich(ctx, sp.ID)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, res)
}
