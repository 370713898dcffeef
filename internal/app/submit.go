package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/randomtoy/spreads-go/internal/domain"
	"github.com/randomtoy/spreads-go/internal/ports"
)

const adPlacementReading = "reading_wait"

// RequestReading submits the session's spread to the readings service and
// polls it to completion. Creation is idempotent: a session that already
// holds a reading id skips straight to polling, so a previous attempt that
// ended with ErrStillPreparing resumes where it left off.
func (o *Orchestrator) RequestReading(ctx context.Context, id uuid.UUID) (domain.ReadingResult, error) {
	s, ok := o.Session(id)
	if !ok {
		return domain.ReadingResult{}, fmt.Errorf("request reading: %w", domain.ErrUnknownSession)
	}
	view := s.Snapshot()
	if len(view.Cards) != view.Schema.CardCount || len(view.Cards) == 0 {
		return domain.ReadingResult{}, fmt.Errorf("request reading: %w", domain.ErrCardsNotDrawn)
	}

	readingID := view.ReadingID
	if readingID == "" {
		created, err := o.createReading(ctx, view)
		if err != nil {
			return domain.ReadingResult{}, err
		}
		readingID = created.ID
		s.BindReading(created.ID, created.Status)
	}

	// Best-effort monetization while the reading is prepared; one attempt per
	// submission, never allowed to affect the poll outcome.
	o.showAd(ctx, view)

	return o.pollReading(ctx, s, readingID)
}

// createReading builds the wire record and submits it. Card name mapping must
// succeed for every card; a mapping failure aborts before any network call.
func (o *Orchestrator) createReading(ctx context.Context, view domain.SessionView) (ports.CreateReadingResponse, error) {
	entries := make([]ports.ReadingCardEntry, len(view.Cards))
	labels := positionLabels(view.Schema)
	for i, c := range view.Cards {
		code, err := domain.CardCode(c.CardName)
		if err != nil {
			return ports.CreateReadingResponse{}, fmt.Errorf("request reading: %w", err)
		}
		entries[i] = ports.ReadingCardEntry{
			PositionIndex: c.PositionID,
			CardCode:      code,
			Reversed:      c.Reversed,
			PositionLabel: labels[c.PositionID],
			CardName:      c.CardName,
		}
	}

	req := ports.CreateReadingRequest{
		Type:        "spread",
		SpreadID:    view.Schema.ID,
		SpreadTitle: view.Schema.Title,
		DeckID:      view.Schema.DeckType,
		DeckTitle:   view.Schema.DeckType,
		Question:    strings.TrimSpace(view.Question),
		Locale:      o.locale,
		Cards:       entries,
	}

	created, err := o.readings.CreateReading(ctx, req)
	if err != nil {
		return ports.CreateReadingResponse{}, fmt.Errorf("request reading: create: %w", err)
	}
	o.logger.Info("reading created",
		"session_id", view.ID, "reading_id", created.ID, "status", created.Status)
	return created, nil
}

// pollReading fetches the reading on a fixed interval until it is ready or
// errored, escalating through the long-wait flag to the hard timeout. The
// hard timeout is recoverable: the reading id stays bound and a later call
// resumes polling.
func (o *Orchestrator) pollReading(ctx context.Context, s *domain.Session, readingID string) (domain.ReadingResult, error) {
	start := o.clock.Now()
	for {
		r, err := o.readings.GetReading(ctx, readingID)
		if err != nil {
			return domain.ReadingResult{}, fmt.Errorf("request reading: poll: %w", err)
		}
		s.SetBackendStatus(r.Status)

		switch {
		case r.Status == domain.ReadingReady && r.OutputPayload != nil:
			return o.finishReading(ctx, s, readingID)
		case r.Status == domain.ReadingError:
			msg := r.Error
			if msg == "" {
				msg = "reading failed"
			}
			return domain.ReadingResult{}, fmt.Errorf("request reading: %w: %s", domain.ErrReadingFailed, msg)
		}

		elapsed := o.clock.Now().Sub(start)
		if elapsed >= o.timings.HardTimeout {
			s.SetLongWait(true)
			return domain.ReadingResult{}, fmt.Errorf("request reading: %w", domain.ErrStillPreparing)
		}
		if elapsed >= o.timings.LongWait {
			s.SetLongWait(true)
		}

		if err := o.clock.Sleep(ctx, o.timings.PollInterval); err != nil {
			return domain.ReadingResult{}, fmt.Errorf("request reading: %w", err)
		}
	}
}

// finishReading fetches the full view, hands the result to the session and
// records it in the history store.
func (o *Orchestrator) finishReading(ctx context.Context, s *domain.Session, readingID string) (domain.ReadingResult, error) {
	v, err := o.readings.ViewReading(ctx, readingID)
	if err != nil {
		return domain.ReadingResult{}, fmt.Errorf("request reading: view: %w", err)
	}
	if v.OutputPayload == nil {
		return domain.ReadingResult{}, fmt.Errorf("request reading: %w: ready without payload", domain.ErrReadingFailed)
	}

	result := domain.ReadingResult{
		ReadingID:   readingID,
		Summary:     v.OutputPayload.Summary,
		GeneratedAt: v.OutputPayload.GeneratedAt,
		Positions:   make([]domain.PositionReading, len(v.OutputPayload.Positions)),
		EnergySpent: v.EnergySpent,
		Balance:     v.Balance,
	}
	for i, p := range v.OutputPayload.Positions {
		result.Positions[i] = domain.PositionReading{
			PositionIndex: p.PositionIndex,
			Title:         p.Title,
			ShortText:     p.ShortText,
			FullText:      p.FullText,
		}
	}

	s.SetLongWait(false)
	s.SetResult(result)

	view := s.Snapshot()
	rec := ports.ReadingRecord{
		SessionID: view.ID.String(),
		ReadingID: readingID,
		SpreadID:  view.Schema.ID,
		DeckID:    view.Schema.DeckType,
		Question:  view.Question,
		Summary:   result.Summary,
		CreatedAt: o.clock.Now(),
	}
	if err := o.history.SaveReading(ctx, rec); err != nil {
		o.logger.Warn("history save failed", "session_id", view.ID, "error", err)
	}

	return result, nil
}

func (o *Orchestrator) showAd(ctx context.Context, view domain.SessionView) {
	opts := ports.AdOptions{Placement: adPlacementReading, SessionID: view.ID.String()}
	res, err := o.ads.Show(ctx, opts)
	if err != nil {
		o.logger.Warn("ad show failed", "session_id", view.ID, "error", err)
		return
	}
	o.logger.Debug("ad shown", "session_id", view.ID, "ok", res.OK)
}

func positionLabels(schema domain.SpreadSchema) map[int]string {
	labels := make(map[int]string, len(schema.Positions))
	for _, p := range schema.Positions {
		labels[p.ID] = p.Label
	}
	return labels
}
