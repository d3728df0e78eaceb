package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/appgraph/pkg/apps"
	"github.com/matzehuels/appgraph/pkg/buildinfo"
	"github.com/matzehuels/appgraph/pkg/errors"
	"github.com/matzehuels/appgraph/pkg/pipeline"
	"github.com/matzehuels/appgraph/pkg/store"
)

// CacheHeader reports whether a layout came from the cache.
const CacheHeader = "X-Appgraph-Cache"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": "appgraph",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleLayoutRecords(w http.ResponseWriter, r *http.Request) {
	result, err := s.layoutBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeLayout(w, http.StatusOK, result)
}

func (s *Server) handleLayoutSource(w http.ResponseWriter, r *http.Request) {
	if s.source == nil {
		writeError(w, r, errors.New(errors.ErrCodeUnsupported, "no record source configured"))
		return
	}
	opts := s.options(r)
	result, err := s.runner.Execute(r.Context(), s.source, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeLayout(w, http.StatusOK, result)
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	result, err := s.layoutBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	snap, err := s.store.Save(r.Context(), result.Layout)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.logger.Info("saved snapshot", "id", snap.ID, "nodes", len(snap.Layout.Nodes))
	w.Header().Set("Location", "/layouts/"+snap.ID)
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := store.ValidateID(id); err != nil {
		writeError(w, r, err)
		return
	}
	snap, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a positive integer, got %q", v))
			return
		}
		limit = n
	}
	snaps, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if snaps == nil {
		snaps = []store.Snapshot{}
	}
	writeJSON(w, http.StatusOK, snaps)
}

// layoutBody decodes the posted records and runs the pipeline on them.
func (s *Server) layoutBody(r *http.Request) (*pipeline.Result, error) {
	records, err := apps.ReadJSON(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, err
	}
	return s.runner.LayoutRecords(r.Context(), records, s.options(r))
}

// options overlays query parameters on the server defaults.
func (s *Server) options(r *http.Request) pipeline.Options {
	opts := s.defaults
	q := r.URL.Query()
	if v := q.Get("direction"); v != "" {
		opts.Direction = v
	}
	if v := q.Get("ids"); v != "" {
		opts.IDStrategy = v
	}
	if v, err := strconv.ParseBool(q.Get("refresh")); err == nil {
		opts.Refresh = v
	}
	return opts
}

func writeLayout(w http.ResponseWriter, status int, result *pipeline.Result) {
	if result.CacheHit {
		w.Header().Set(CacheHeader, "hit")
	} else {
		w.Header().Set(CacheHeader, "miss")
	}
	writeJSON(w, status, result.Layout)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
