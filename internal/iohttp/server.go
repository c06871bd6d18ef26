// Package iohttp serves the sync pipeline over HTTP with gin.
package iohttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ecoglobe/biosync/internal/iologger"
	"github.com/ecoglobe/biosync/pkg/config"
	"github.com/ecoglobe/biosync/pkg/lifecycle"
	"github.com/ecoglobe/biosync/pkg/store"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP API of biosync.
type Server struct {
	cfg    *config.Config
	snc    lifecycle.Syncer
	enr    lifecycle.Enricher
	spp    store.SpeciesStore
	cls    store.ClusterStore
	router *gin.Engine
	log    *slog.Logger
}

// New creates a Server and its routes.
func New(
	cfg *config.Config,
	snc lifecycle.Syncer,
	enr lifecycle.Enricher,
	spp store.SpeciesStore,
	cls store.ClusterStore,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	res := &Server{
		cfg:    cfg,
		snc:    snc,
		enr:    enr,
		spp:    spp,
		cls:    cls,
		router: gin.New(),
		log:    iologger.Component("http"),
	}
	res.routes()
	return res
}

func (s *Server) routes() {
	r := s.router
	r.Use(requestID(s.log), logger(s.log), recovery(s.log))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.GET("/health", s.health)

	clusters := v1.Group("/clusters")
	clusters.GET("", s.listClusters)
	clusters.GET("/:country", s.getCluster)
	clusters.POST("/:country/refresh", s.refreshCluster)
	clusters.POST("/:country/recompute", s.recomputeCluster)

	spp := v1.Group("/species")
	spp.GET("/:id", s.getSpecies)
	spp.POST("/:id/enrich", s.enrichSpecies)
}

// Handler returns the router of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves requests until the context is canceled, then shuts the
// server down and waits for started enrichment tasks.
func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Server.Port
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server started", "port", port)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- ServerStartError(port, err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutCtx)

	s.snc.Wait()
	s.log.Info("HTTP server stopped")
	return err
}
