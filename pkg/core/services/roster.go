package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/tox-oncall/pkg/core/blackout"
	"github.com/jakechorley/tox-oncall/pkg/core/model"
	"github.com/jakechorley/tox-oncall/pkg/db"
)

// RosterEntry is a fellow together with the number of blackout records held for them
type RosterEntry struct {
	Fellow         db.Fellow
	DutyShifts     int
	OffDayRequests int
}

// AddFellow validates and stores a new fellow
func AddFellow(ctx context.Context, database db.RosterStore, logger *zap.Logger, name string, tier model.Tier) (*db.Fellow, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("fellow name must not be empty")
	}
	if !tier.IsValid() {
		return nil, fmt.Errorf("invalid tier %q: expected %q or %q", tier, model.TierFirstYear, model.TierSecondYear)
	}

	logger.Debug("Adding fellow", zap.String("name", name), zap.String("tier", string(tier)))

	existing, err := database.GetFellows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fellows: %w", err)
	}
	if _, found := findFellow(existing, name); found {
		return nil, fmt.Errorf("fellow %q already exists", name)
	}

	fellow := &db.Fellow{
		ID:   uuid.New().String(),
		Name: name,
		Tier: string(tier),
	}
	if err := database.InsertFellow(ctx, fellow); err != nil {
		return nil, fmt.Errorf("failed to insert fellow: %w", err)
	}

	logger.Info("Fellow added", zap.String("id", fellow.ID), zap.String("name", fellow.Name))
	return fellow, nil
}

// AddBlackout validates and stores a duty shift or off-day request for an existing fellow.
// The ID field of the given record is ignored and replaced.
func AddBlackout(ctx context.Context, database db.RosterStore, logger *zap.Logger, record db.Blackout) (*db.Blackout, error) {
	if err := validateBlackout(record); err != nil {
		return nil, err
	}

	logger.Debug("Adding blackout",
		zap.String("fellow", record.Fellow),
		zap.String("kind", record.Kind),
		zap.String("start", record.Start),
		zap.String("end", record.End))

	fellows, err := database.GetFellows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fellows: %w", err)
	}
	if _, found := findFellow(fellows, record.Fellow); !found {
		return nil, fmt.Errorf("unknown fellow %q", record.Fellow)
	}

	record.ID = uuid.New().String()
	if err := database.InsertBlackout(ctx, &record); err != nil {
		return nil, fmt.Errorf("failed to insert blackout: %w", err)
	}

	logger.Info("Blackout added",
		zap.String("id", record.ID),
		zap.String("fellow", record.Fellow),
		zap.String("kind", record.Kind))
	return &record, nil
}

// ListRoster returns every fellow with their blackout counts, first-year fellows first
func ListRoster(ctx context.Context, source db.RosterReader, logger *zap.Logger) ([]RosterEntry, error) {
	logger.Debug("Fetching fellows")
	fellows, err := source.GetFellows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fellows: %w", err)
	}

	logger.Debug("Fetching blackouts")
	blackouts, err := source.GetBlackouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blackouts: %w", err)
	}

	entries := make([]RosterEntry, 0, len(fellows))
	index := make(map[string]int, len(fellows))
	for _, tier := range []model.Tier{model.TierFirstYear, model.TierSecondYear} {
		for _, f := range fellows {
			if f.Tier != string(tier) {
				continue
			}
			index[f.Name] = len(entries)
			entries = append(entries, RosterEntry{Fellow: f})
		}
	}

	for _, b := range blackouts {
		i, ok := index[b.Fellow]
		if !ok {
			logger.Warn("Blackout references unknown fellow", zap.String("id", b.ID), zap.String("fellow", b.Fellow))
			continue
		}
		switch b.Kind {
		case db.BlackoutKindDuty:
			entries[i].DutyShifts++
		case db.BlackoutKindOffDay:
			entries[i].OffDayRequests++
		}
	}

	logger.Debug("Roster listed", zap.Int("fellows", len(entries)), zap.Int("blackouts", len(blackouts)))
	return entries, nil
}

func validateBlackout(record db.Blackout) error {
	if strings.TrimSpace(record.Fellow) == "" {
		return fmt.Errorf("fellow must not be empty")
	}

	switch record.Kind {
	case db.BlackoutKindDuty, db.BlackoutKindOffDay:
	default:
		return fmt.Errorf("unknown blackout kind %q", record.Kind)
	}

	start, end, err := parseRecordRange(record)
	if err != nil {
		return err
	}
	if !end.IsZero() && end.Before(start) {
		return fmt.Errorf("end date %s is before start date %s", record.End, record.Start)
	}

	if record.Kind == db.BlackoutKindOffDay {
		if record.StartTime != "" || record.RRule != "" {
			return fmt.Errorf("off-day requests do not take a start time or recurrence rule")
		}
		return nil
	}

	if record.StartTime != "" {
		if _, err := blackout.ParseStartTime(record.StartTime); err != nil {
			return err
		}
	}
	if record.RRule != "" {
		if _, err := rrule.StrToRRule(record.RRule); err != nil {
			return fmt.Errorf("invalid rrule %q: %w", record.RRule, err)
		}
	}
	return nil
}

func findFellow(fellows []db.Fellow, name string) (db.Fellow, bool) {
	for _, f := range fellows {
		if f.Name == name {
			return f, true
		}
	}
	return db.Fellow{}, false
}
