package store

import (
	"context"
	"fmt"

	"github.com/abhisek/adaptiq/ent"
	"github.com/abhisek/adaptiq/ent/attemptevent"
	"github.com/abhisek/adaptiq/ent/sessionevent"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, ts, err := r.stamp(ctx)
	if err != nil {
		return err
	}
	_, err = r.client.SessionEvent.Create().
		SetSequence(seqNum).
		SetTimestamp(ts).
		SetSessionID(data.SessionID).
		SetAction(data.Action).
		SetSubject(data.Subject).
		SetPolicy(data.Policy).
		SetTargetCount(data.TargetCount).
		SetBudgetSecs(data.BudgetSecs).
		SetStartLevel(data.StartLevel).
		SetAnswered(data.Answered).
		SetCorrectAnswers(data.Correct).
		SetFinalLevel(data.FinalLevel).
		SetEndReason(data.EndReason).
		SetDurationSecs(data.DurationSecs).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAttemptEvent(ctx context.Context, data AttemptEventData) error {
	seqNum, ts, err := r.stamp(ctx)
	if err != nil {
		return err
	}
	_, err = r.client.AttemptEvent.Create().
		SetSequence(seqNum).
		SetTimestamp(ts).
		SetSessionID(data.SessionID).
		SetNumber(data.Number).
		SetQuestionID(data.QuestionID).
		SetTopic(data.Topic).
		SetLevel(data.Level).
		SetStage(data.Stage).
		SetChosen(data.Chosen).
		SetCorrectOption(data.CorrectOption).
		SetCorrect(data.Correct).
		SetTimeMs(data.TimeMs).
		SetLevelAfter(data.LevelAfter).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error) {
	preds := rangePredicates(opts,
		sessionevent.SequenceGT, sessionevent.SequenceLT,
		sessionevent.TimestampGTE, sessionevent.TimestampLTE)
	q := r.client.SessionEvent.Query().
		Where(append(preds, sessionevent.ActionEQ(ActionStart))...).
		Order(ent.Desc(sessionevent.FieldSequence))
	if opts.Limit > 0 {
		q.Limit(opts.Limit)
	}

	starts, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}

	out := make([]SessionRecord, 0, len(starts))
	for _, e := range starts {
		s := SessionRecord{
			SessionID:   e.SessionID,
			StartedAt:   e.Timestamp,
			Subject:     e.Subject,
			Policy:      e.Policy,
			TargetCount: e.TargetCount,
			BudgetSecs:  e.BudgetSecs,
			StartLevel:  e.StartLevel,
		}
		if err := r.fillSessionEnd(ctx, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// fillSessionEnd copies the latest end event of s, if there is one.
func (r *eventRepo) fillSessionEnd(ctx context.Context, s *SessionRecord) error {
	e, err := r.client.SessionEvent.Query().
		Where(
			sessionevent.SessionID(s.SessionID),
			sessionevent.ActionEQ(ActionEnd),
		).
		Order(ent.Desc(sessionevent.FieldSequence)).
		First(ctx)
	if ent.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("query session end: %w", err)
	}
	s.Ended = true
	s.EndedAt = e.Timestamp
	s.Answered = e.Answered
	s.Correct = e.CorrectAnswers
	s.FinalLevel = e.FinalLevel
	s.EndReason = e.EndReason
	s.DurationSecs = e.DurationSecs
	return nil
}

func (r *eventRepo) ResolveSessionID(ctx context.Context, prefix string) (string, error) {
	starts, err := r.client.SessionEvent.Query().
		Where(
			sessionevent.SessionIDHasPrefix(prefix),
			sessionevent.ActionEQ(ActionStart),
		).
		Limit(2).
		All(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve session: %w", err)
	}
	switch len(starts) {
	case 0:
		return "", fmt.Errorf("session %q: %w", prefix, ErrNotFound)
	case 1:
		return starts[0].SessionID, nil
	default:
		return "", fmt.Errorf("session %q: %w", prefix, ErrAmbiguous)
	}
}

func (r *eventRepo) SessionAttempts(ctx context.Context, sessionID string) ([]AttemptRecord, error) {
	rows, err := r.client.AttemptEvent.Query().
		Where(attemptevent.SessionID(sessionID)).
		Order(ent.Asc(attemptevent.FieldSequence)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}

	out := make([]AttemptRecord, 0, len(rows))
	for _, e := range rows {
		out = append(out, AttemptRecord{
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
			AttemptEventData: AttemptEventData{
				SessionID:     e.SessionID,
				Number:        e.Number,
				QuestionID:    e.QuestionID,
				Topic:         e.Topic,
				Level:         e.Level,
				Stage:         e.Stage,
				Chosen:        e.Chosen,
				CorrectOption: e.CorrectOption,
				Correct:       e.Correct,
				TimeMs:        e.TimeMs,
				LevelAfter:    e.LevelAfter,
			},
		})
	}
	return out, nil
}
