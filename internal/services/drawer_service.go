package services

import (
	"context"
	"errors"
	"fmt"

	"cashdrawer/internal/core"
	"cashdrawer/internal/drawer"
	"cashdrawer/internal/log"
	"cashdrawer/internal/metrics"
	"cashdrawer/internal/session"
)

// ErrUnknownDenomination is returned when a quantity targets a value outside the catalog.
var ErrUnknownDenomination = errors.New("unknown denomination")

// DrawerView is what the presentation layer renders after an operation.
type DrawerView struct {
	SessionID string
	// NewSession is set when the request carried no live session and one was started.
	NewSession    bool
	Rows          []drawer.Row
	Result        core.ReconciliationResult
	TargetDisplay string
	// Changed is the row touched by UpdateQuantity, nil otherwise.
	Changed *drawer.Row
}

// Snapshot rebuilds the engine snapshot the view was made from.
func (v DrawerView) Snapshot() drawer.Snapshot {
	return drawer.Snapshot{Rows: v.Rows, Result: v.Result, TargetDisplay: v.TargetDisplay}
}

// DrawerService orchestrates session lookup, engine operations, metrics and logging
type DrawerService struct {
	store   *session.Store
	metrics *metrics.Metrics
	logger  *log.Logger
	events  *log.StructuredLogger
}

// NewDrawerService wires the service. m and logger may be nil.
func NewDrawerService(store *session.Store, m *metrics.Metrics, logger *log.Logger) *DrawerService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentDrawer)
	return &DrawerService{
		store:   store,
		metrics: m,
		logger:  logger,
		events:  log.NewStructuredLogger(logger),
	}
}

// Page returns the current drawer for sid, starting a session when needed.
func (s *DrawerService) Page(ctx context.Context, sid string) DrawerView {
	sess, created := s.session(ctx, sid)
	var view DrawerView
	sess.Do(func(e *drawer.Engine) {
		view = newView(sess.ID, created, e.Snapshot())
	})
	return view
}

// UpdateQuantity stores raw as the count for value and returns the refreshed view.
func (s *DrawerService) UpdateQuantity(ctx context.Context, sid string, value core.Amount, raw string) (DrawerView, error) {
	d, ok := core.LookupDenomination(value)
	if !ok {
		return DrawerView{}, fmt.Errorf("%w: %d", ErrUnknownDenomination, value)
	}

	sess, created := s.session(ctx, sid)
	var view DrawerView
	sess.Do(func(e *drawer.Engine) {
		subtotal, quantity := e.SetQuantity(d.Value, raw)
		view = newView(sess.ID, created, e.Snapshot())
		view.Changed = &drawer.Row{Denomination: d, Quantity: quantity, Subtotal: subtotal}
	})

	s.metrics.IncQuantityUpdate(int64(d.Value))
	s.record(ctx, sess.ID, log.OpSetQuantity, view.Result,
		log.NewFields().WithQuantity(int64(d.Value), view.Changed.Quantity))
	return view, nil
}

// UpdateTarget stores the register amount typed as raw.
func (s *DrawerService) UpdateTarget(ctx context.Context, sid, raw string) DrawerView {
	sess, created := s.session(ctx, sid)
	var view DrawerView
	sess.Do(func(e *drawer.Engine) {
		e.SetTargetRaw(raw)
		view = newView(sess.ID, created, e.Snapshot())
	})

	s.metrics.IncTargetUpdate()
	fields := log.NewFields()
	if view.Result.HasTarget {
		fields[log.FieldTarget] = int64(view.Result.Target)
	}
	s.record(ctx, sess.ID, log.OpSetTarget, view.Result, fields)
	return view
}

// Reset clears every count and the register amount.
func (s *DrawerService) Reset(ctx context.Context, sid string) DrawerView {
	sess, created := s.session(ctx, sid)
	var view DrawerView
	sess.Do(func(e *drawer.Engine) {
		e.Reset()
		view = newView(sess.ID, created, e.Snapshot())
	})

	s.metrics.IncReset()
	s.record(ctx, sess.ID, log.OpReset, view.Result, log.NewFields())
	return view
}

// End forgets a session.
func (s *DrawerService) End(ctx context.Context, sid string) {
	if sid == "" {
		return
	}
	s.store.Delete(sid)
	s.logger.DebugContext(ctx, "Session ended", log.FieldSessionID, sid)
}

func (s *DrawerService) session(ctx context.Context, sid string) (*session.Session, bool) {
	sess, created := s.store.GetOrCreate(sid)
	if created {
		s.logger.InfoContext(ctx, "Session started",
			log.FieldSessionID, sess.ID,
			"replaced", sid != "",
			"active", s.store.Size())
	}
	return sess, created
}

func (s *DrawerService) record(ctx context.Context, sid, op string, res core.ReconciliationResult, fields log.LogFields) {
	s.metrics.IncReconciliation(string(res.Status))
	s.events.LogDrawerUpdated(ctx, sid, op, fields.WithReconciliation(
		int64(res.CountedTotal), res.TotalNotes, string(res.Status), int64(res.Difference)))
}

func newView(sid string, created bool, snap drawer.Snapshot) DrawerView {
	return DrawerView{
		SessionID:     sid,
		NewSession:    created,
		Rows:          snap.Rows,
		Result:        snap.Result,
		TargetDisplay: snap.TargetDisplay,
	}
}

// ActiveSessions reports how many drawers are held in memory.
func (s *DrawerService) ActiveSessions() int {
	return s.store.Size()
}
