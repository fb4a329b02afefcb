/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package server assembles the relgraphd HTTP service: one GraphQL endpoint per entity family,
// health check and Prometheus metrics behind a gorilla/mux router.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/botobag/relgraph/blog"
	"github.com/botobag/relgraph/concurrent"
	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/graphql/handler"
	"github.com/botobag/relgraph/internal/config"
	"github.com/botobag/relgraph/internal/log"
	"github.com/botobag/relgraph/library"
	"github.com/botobag/relgraph/store"
)

// Server serves the GraphQL endpoints of both families.
type Server struct {
	config  *config.Config
	metrics *Metrics
	handler http.Handler
	server  *http.Server

	library *library.Library
	blog    *blog.Blog

	// One mutation worker per endpoint
	mutationRunners []*concurrent.SerialExecutor

	// Stores checked by the health check, by endpoint name
	dbs []endpointDB
}

type endpointDB struct {
	endpoint string
	db       *store.DB
}

// New builds a Server from config. Each enabled family gets a fresh store.
func New(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	s := &Server{
		config:  cfg,
		metrics: NewMetrics(),
	}

	router := mux.NewRouter()
	router.Use(requestIDMiddleware, accessLogMiddleware, recoveryMiddleware())

	if !cfg.Library.Disabled {
		db := store.NewDB()
		lib, err := library.New(db, library.Options{UseIndex: cfg.Library.UseIndex})
		if err != nil {
			return nil, errors.Wrap(err, "create library")
		}
		schema, err := library.Schema(lib)
		if err != nil {
			return nil, errors.Wrap(err, "create library schema")
		}
		if err := s.mountGraphQL(router, "library", cfg.Library.Path, schema, db); err != nil {
			return nil, err
		}
		s.library = lib
	}

	if !cfg.Blog.Disabled {
		db := store.NewDB()
		b, err := blog.New(db, blog.Options{UseIndex: cfg.Blog.UseIndex})
		if err != nil {
			return nil, errors.Wrap(err, "create blog")
		}
		schema, err := blog.Schema(b)
		if err != nil {
			return nil, errors.Wrap(err, "create blog schema")
		}
		if err := s.mountGraphQL(router, "blog", cfg.Blog.Path, schema, db); err != nil {
			return nil, err
		}
		s.blog = b
	}

	if len(cfg.MetricsPath) > 0 {
		router.Handle(cfg.MetricsPath, promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})).
			Methods(http.MethodGet)
	}

	router.HandleFunc(config.HealthPath, s.serveHealth).Methods(http.MethodGet)

	// CORS wraps the router so that preflight requests reach it before route matching.
	s.handler = router
	if len(cfg.CORSOrigins) > 0 {
		s.handler = corsMiddleware(cfg.CORSOrigins)(router)
	}

	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// serveHealth reports 503 if the owner index of any store disagrees with its tables.
func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, entry := range s.dbs {
		if err := entry.db.Verify(); err != nil {
			log.WithError(err).WithField("endpoint", entry.endpoint).Error("store verification failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, "%s: %s\n", entry.endpoint, err)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

func (s *Server) mountGraphQL(router *mux.Router, endpoint, path string, schema *graphql.Schema, db *store.DB) error {
	runner := concurrent.NewSerialExecutor(s.config.MutationQueueSize)
	s.mutationRunners = append(s.mutationRunners, runner)

	h, err := handler.New(schema,
		handler.MaxBodySize(s.config.MaxBodySize),
		handler.OperationCacheSize(s.config.OperationCacheSize),
		handler.MutationRunner(runner),
		handler.WithObserver(s.metrics.Observer(endpoint)),
	)
	if err != nil {
		return errors.Wrapf(err, "create %s handler", endpoint)
	}

	s.metrics.WatchDB(endpoint, db)
	s.dbs = append(s.dbs, endpointDB{endpoint, db})
	router.Handle(path, h).Methods(http.MethodGet, http.MethodPost)

	log.WithFields(log.Fields{
		"endpoint": endpoint,
		"path":     path,
	}).Info("mounted GraphQL endpoint")
	return nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Library returns the library family or nil if it is disabled.
func (s *Server) Library() *library.Library {
	return s.library
}

// Blog returns the blog family or nil if it is disabled.
func (s *Server) Blog() *blog.Blog {
	return s.blog
}

// Serve accepts connections on listener until Shutdown is called. It returns immediately if
// Shutdown was called before.
func (s *Server) Serve(listener net.Listener) error {
	log.WithField("addr", listener.Addr().String()).Info("relgraph server started")
	if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "serve")
	}
	return nil
}

// ListenAndServe listens on the configured address and serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.config.ListenAddr)
	}
	return s.Serve(listener)
}

// Shutdown stops accepting requests, waits for in-flight requests and stops mutation workers.
func (s *Server) Shutdown(ctx context.Context) error {
	var result error
	if err := s.server.Shutdown(ctx); err != nil {
		result = errors.Wrap(err, "shutdown http server")
	}

	for _, runner := range s.mutationRunners {
		terminated, err := runner.Shutdown()
		if err != nil {
			continue
		}
		select {
		case <-terminated:
		case <-ctx.Done():
			if result == nil {
				result = errors.Wrap(ctx.Err(), "wait for mutation worker")
			}
		}
	}

	log.Info("relgraph server stopped")
	return result
}
