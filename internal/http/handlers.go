package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cashdrawer/internal/drawer"
	"cashdrawer/internal/log"
	"cashdrawer/internal/services"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

// handleReady reports whether the page can be served
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]interface{})

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	checks["sessions"] = map[string]interface{}{
		"active": s.drawer.ActiveSessions(),
		"status": "ok",
	}
	checks["rate_limiter"] = map[string]interface{}{
		"active_clients": s.limiter.ActiveClients(),
		"status":         "ok",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := s.drawer.Page(r.Context(), sessionID(r))

	body, err := s.render(templatePart{"index.html", newPageView(view)})
	if err != nil {
		s.renderFailed(w, r, "index.html", err)
		return
	}

	setSessionCookie(w, r, view.SessionID, s.opts.SessionTTL)
	NewHTMXResponse().BodyHTML(string(body)).Write(w)
}

// handleQuantity stores one denomination count. The response replaces the
// row subtotal and refreshes totals and status out of band.
func (s *Server) handleQuantity(w http.ResponseWriter, r *http.Request) {
	p, fail := ParseBodyOrFail(r)
	if fail != nil {
		fail.Write(w)
		return
	}
	value, err := ParseDenomination(p)
	if err != nil {
		BadRequestError("Mệnh giá không hợp lệ").Write(w)
		return
	}
	raw := p.Get("quantity")

	view, err := s.drawer.UpdateQuantity(r.Context(), sessionID(r), value, raw)
	if errors.Is(err, services.ErrUnknownDenomination) {
		BadRequestError("Mệnh giá không hợp lệ").Write(w)
		return
	}
	if err != nil {
		log.NewStructuredLogger(log.FromContext(r.Context())).
			LogError(r.Context(), "Quantity update failed", err, log.ComponentDrawer, log.OpSetQuantity, log.NewFields())
		InternalServerError("Lỗi máy chủ").Write(w)
		return
	}

	setSessionCookie(w, r, view.SessionID, s.opts.SessionTTL)
	if p.IsJSON() {
		s.writeSummary(w, view)
		return
	}
	if view.NewSession {
		s.writeDrawer(w, r, view)
		return
	}

	row := newRowView(*view.Changed)
	parts := []templatePart{{"subtotal", row}}
	if echoQuantity(raw, view.Changed.Quantity) {
		row.OOB = true
		parts = append(parts, templatePart{"quantity", row})
	}
	parts = append(parts,
		templatePart{"totals", newTotalsView(view.Result, true)},
		templatePart{"status", newStatusView(view.Result, true)},
	)

	body, err := s.render(parts...)
	if err != nil {
		s.renderFailed(w, r, "subtotal", err)
		return
	}
	NewHTMXResponse().
		TriggerDrawerUpdated(int64(view.Result.CountedTotal), string(view.Result.Status)).
		BodyHTML(string(body)).
		Write(w)
}

// handleTarget stores the register amount. The grouped value goes back
// through an HX-Trigger event so the page script can keep the caret in place.
func (s *Server) handleTarget(w http.ResponseWriter, r *http.Request) {
	p, fail := ParseBodyOrFail(r)
	if fail != nil {
		fail.Write(w)
		return
	}

	view := s.drawer.UpdateTarget(r.Context(), sessionID(r), p.Get("register_amount"))

	setSessionCookie(w, r, view.SessionID, s.opts.SessionTTL)
	if p.IsJSON() {
		s.writeSummary(w, view)
		return
	}
	if view.NewSession {
		s.writeDrawer(w, r, view)
		return
	}

	body, err := s.render(templatePart{"status", newStatusView(view.Result, true)})
	if err != nil {
		s.renderFailed(w, r, "status", err)
		return
	}
	NewHTMXResponse().
		TriggerTargetFormatted(view.TargetDisplay).
		TriggerDrawerUpdated(int64(view.Result.CountedTotal), string(view.Result.Status)).
		BodyHTML(string(body)).
		Write(w)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	view := s.drawer.Reset(r.Context(), sessionID(r))

	setSessionCookie(w, r, view.SessionID, s.opts.SessionTTL)
	body, err := s.render(templatePart{"drawer", newPageView(view)})
	if err != nil {
		s.renderFailed(w, r, "drawer", err)
		return
	}
	NewHTMXResponse().
		TriggerDrawerReset().
		TriggerDrawerUpdated(0, string(view.Result.Status)).
		BodyHTML(string(body)).
		Write(w)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	view := s.drawer.Page(r.Context(), sessionID(r))
	setSessionCookie(w, r, view.SessionID, s.opts.SessionTTL)
	s.writeSummary(w, view)
}

type summaryResponse struct {
	SessionID string `json:"session_id"`
	drawer.Summary
}

func (s *Server) writeSummary(w http.ResponseWriter, view services.DrawerView) {
	NewHTMXResponse().
		JSON(summaryResponse{SessionID: view.SessionID, Summary: view.Snapshot().Summary()}).
		Write(w)
}

// writeDrawer answers a fragment request whose session had expired: the
// whole drawer is redrawn so the page matches the fresh engine.
func (s *Server) writeDrawer(w http.ResponseWriter, r *http.Request, view services.DrawerView) {
	body, err := s.render(templatePart{"drawer", newPageView(view)})
	if err != nil {
		s.renderFailed(w, r, "drawer", err)
		return
	}
	NewHTMXResponse().
		Retarget("#drawer", "outerHTML").
		TriggerDrawerUpdated(int64(view.Result.CountedTotal), string(view.Result.Status)).
		BodyHTML(string(body)).
		Write(w)
}

func (s *Server) renderFailed(w http.ResponseWriter, r *http.Request, name string, err error) {
	log.NewStructuredLogger(log.FromContext(r.Context())).
		LogError(r.Context(), "Template execution failed", err, log.ComponentTemplate, log.OpRender,
			log.LogFields{log.FieldTemplate: name})
	InternalServerError("Không thể hiển thị trang").Write(w)
}

// echoQuantity reports whether the stored quantity differs from what the
// cashier typed, so the input must be overwritten (e.g. "-5" becomes 0).
func echoQuantity(raw string, stored int64) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	return raw != strconv.FormatInt(stored, 10)
}
