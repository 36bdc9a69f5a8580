// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davetashner/seen/internal/classify"
	"github.com/davetashner/seen/internal/config"
	"github.com/davetashner/seen/internal/dedup"
	"github.com/davetashner/seen/internal/similarity"
)

// ClassifyRequest is the body of POST /v1/classify.
type ClassifyRequest struct {
	Text     string `json:"text"`
	OriginID string `json:"origin_id"`
	Site     string `json:"site"`
}

// ClassifyResponse is returned by POST /v1/classify. Error is set when the
// verdict is valid but the store could not be saved.
type ClassifyResponse struct {
	Verdict   string `json:"verdict"`
	Action    string `json:"action"`
	Processed bool   `json:"processed"`
	TooShort  bool   `json:"too_short"`
	Error     string `json:"error,omitempty"`
}

// SettingsBody is the settings representation for GET and PATCH
// /v1/settings. In a PATCH, omitted fields are left unchanged.
type SettingsBody struct {
	Retention  *string `json:"retention,omitempty"`
	Scope      *string `json:"scope,omitempty"`
	Similarity *string `json:"similarity,omitempty"`
	MinLength  *int    `json:"min_length,omitempty"`
}

// ScopeStatsBody is one entry of GET /v1/stats.
type ScopeStatsBody struct {
	Scope   string    `json:"scope"`
	Records int       `json:"records"`
	Oldest  time.Time `json:"oldest"`
	Newest  time.Time `json:"newest"`
}

// StatsBody is returned by GET /v1/stats.
type StatsBody struct {
	Records int              `json:"records"`
	Scopes  []ScopeStatsBody `json:"scopes"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := classify.WithSite(c.Request.Context(), req.Site)
	out, err := s.classifier.Classify(ctx, req.Text, req.OriginID)
	resp := ClassifyResponse{
		Verdict:   string(out.Verdict),
		Action:    string(out.Action),
		Processed: out.Processed,
		TooShort:  out.TooShort,
	}
	if err != nil {
		slog.Warn("classify persisted with error", "site", req.Site, "error", err)
		resp.Error = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, settingsBody(s.classifier.Settings()))
}

func (s *Server) patchSettings(c *gin.Context) {
	var body SettingsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var opts classify.Options
	if body.Retention != nil {
		d, err := config.ParseDuration(*body.Retention)
		if err != nil || d <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid retention: " + *body.Retention})
			return
		}
		opts.Retention = &d
	}
	if body.Scope != nil {
		p := dedup.ScopePolicy(*body.Scope)
		opts.Scope = &p
	}
	if body.Similarity != nil {
		m := similarity.Mode(*body.Similarity)
		opts.Similarity = &m
	}
	opts.MinLength = body.MinLength

	c.JSON(http.StatusOK, settingsBody(s.classifier.Configure(opts)))
}

func (s *Server) prune(c *gin.Context) {
	removed, err := s.classifier.Prune(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "removed": removed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (s *Server) reset(c *gin.Context) {
	if err := s.classifier.ResetAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) stats(c *gin.Context) {
	st := s.classifier.Stats()
	body := StatsBody{Records: st.Records, Scopes: make([]ScopeStatsBody, 0, len(st.Scopes))}
	for _, sc := range st.Scopes {
		body.Scopes = append(body.Scopes, ScopeStatsBody(sc))
	}
	c.JSON(http.StatusOK, body)
}

func settingsBody(st dedup.Settings) SettingsBody {
	retention := st.Retention.String()
	scope := string(st.Scope)
	mode := string(st.Similarity)
	minLength := st.MinLength
	return SettingsBody{
		Retention:  &retention,
		Scope:      &scope,
		Similarity: &mode,
		MinLength:  &minLength,
	}
}
