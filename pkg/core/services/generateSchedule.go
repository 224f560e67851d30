package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/tox-oncall/pkg/core/blackout"
	"github.com/jakechorley/tox-oncall/pkg/core/model"
	"github.com/jakechorley/tox-oncall/pkg/core/scheduler"
	"github.com/jakechorley/tox-oncall/pkg/db"
)

// GenerateScheduleParams selects the month and optional inputs for a run
type GenerateScheduleParams struct {
	Year  int
	Month time.Month

	// ClinicDate in YYYY-MM-DD; empty means the first Thursday of the month
	ClinicDate string

	// Seed makes the run reproducible; nil draws a fresh seed
	Seed *uint64
}

// GapReport explains why a date received no fellow
type GapReport struct {
	Date time.Time

	// Unavailable maps each blacked-out fellow to the reasons for the blackout
	Unavailable map[string][]blackout.Reason

	// AtQuota lists fellows who were free but had already reached their pool quota
	AtQuota []string
}

// GenerateScheduleResult contains the generated schedule and the context needed to present it
type GenerateScheduleResult struct {
	RunID      string
	Seed       uint64
	MonthStart time.Time
	MonthEnd   time.Time
	Roster     model.Roster
	Outcome    *scheduler.Outcome
	GapReports []GapReport
}

// GenerateSchedule loads the roster and blackouts, validates them, and runs the assignment engine.
// All precondition failures are reported before any random draw is made.
func GenerateSchedule(
	ctx context.Context,
	source db.RosterReader,
	logger *zap.Logger,
	params GenerateScheduleParams,
) (*GenerateScheduleResult, error) {
	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))

	logger.Info("Generating schedule",
		zap.Int("year", params.Year),
		zap.String("month", params.Month.String()))

	if params.Month < time.January || params.Month > time.December {
		return nil, fmt.Errorf("month must be between 1 and 12, got %d", params.Month)
	}

	// Step 1: Load and validate roster
	logger.Debug("Fetching fellows")
	fellows, err := source.GetFellows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fellows: %w", err)
	}
	logger.Debug("Found fellows", zap.Int("count", len(fellows)))

	roster, err := buildRoster(fellows)
	if err != nil {
		return nil, err
	}

	// Step 2: Resolve the date universe and clinic date
	monthStart, monthEnd := scheduler.MonthBounds(params.Year, params.Month)

	clinicDate := firstWeekday(monthStart, time.Thursday)
	if params.ClinicDate != "" {
		clinicDate, err = model.ParseDate(params.ClinicDate)
		if err != nil {
			return nil, fmt.Errorf("invalid clinic date: %w", err)
		}
	}

	// Step 3: Load blackouts and merge them per fellow
	logger.Debug("Fetching blackouts")
	records, err := source.GetBlackouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blackouts: %w", err)
	}
	logger.Debug("Found blackouts", zap.Int("count", len(records)))

	builder, err := buildBlackouts(records, roster, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	blackouts := builder.Blackouts()

	// Step 4: Run the engine
	seed := rand.Uint64()
	if params.Seed != nil {
		seed = *params.Seed
	}
	logger.Info("Running assignment engine",
		zap.Uint64("seed", seed),
		zap.Int("first_year", len(roster.FirstYear)),
		zap.Int("second_year", len(roster.SecondYear)),
		zap.String("clinic_date", clinicDate.Format(model.DateLayout)))

	outcome, err := scheduler.Generate(scheduler.Input{
		Roster:     roster,
		MonthStart: monthStart,
		MonthEnd:   monthEnd,
		Blackouts:  blackouts,
		ClinicDate: clinicDate,
	}, scheduler.NewRand(seed))
	if err != nil {
		logger.Error("Schedule generation failed", zap.Error(err))
		return nil, fmt.Errorf("schedule generation failed: %w", err)
	}

	logger.Debug("Quotas computed",
		zap.Any("weekday_quotas", outcome.WeekdayQuotas),
		zap.Any("weekend_quotas", outcome.WeekendQuotas))

	if weekdayTotal := outcome.WeekdayQuotas.Total(); weekdayTotal < len(outcome.Pool.Weekdays) {
		logger.Warn("Weekday quotas cannot cover every weekday",
			zap.Int("quota_total", weekdayTotal),
			zap.Int("weekdays", len(outcome.Pool.Weekdays)))
	}

	gapReports := explainGaps(outcome, roster, blackouts, builder)
	for _, gap := range gapReports {
		logger.Warn("Coverage gap",
			zap.String("date", gap.Date.Format(model.DateLayout)),
			zap.Int("unavailable", len(gap.Unavailable)),
			zap.Strings("at_quota", gap.AtQuota))
	}

	if outcome.ClinicCoverage.Assigned {
		logger.Info("Clinic day covered",
			zap.String("date", outcome.ClinicCoverage.Date.Format(model.DateLayout)),
			zap.String("fellow", outcome.ClinicCoverage.Fellow))
	} else {
		logger.Warn("No fellow assigned for clinic day",
			zap.String("date", outcome.ClinicCoverage.Date.Format(model.DateLayout)))
	}

	logger.Info("Schedule generated",
		zap.Int("assigned", len(outcome.Schedule)),
		zap.Int("days", len(outcome.Pool.All)),
		zap.Int("gaps", len(outcome.Gaps)))

	return &GenerateScheduleResult{
		RunID:      runID,
		Seed:       seed,
		MonthStart: monthStart,
		MonthEnd:   monthEnd,
		Roster:     roster,
		Outcome:    outcome,
		GapReports: gapReports,
	}, nil
}

// buildRoster converts stored fellows to a tiered roster and enforces the roster preconditions
func buildRoster(fellows []db.Fellow) (model.Roster, error) {
	modelFellows := make([]model.Fellow, len(fellows))
	for i, f := range fellows {
		modelFellows[i] = model.Fellow{Name: strings.TrimSpace(f.Name), Tier: model.Tier(f.Tier)}
	}

	roster, err := model.NewRoster(modelFellows)
	if err != nil {
		return model.Roster{}, fmt.Errorf("invalid roster: %w", err)
	}

	if dups := roster.Duplicates(); len(dups) > 0 {
		return model.Roster{}, fmt.Errorf("invalid roster: duplicate fellows %v", dups)
	}

	if len(roster.FirstYear) == 0 || len(roster.SecondYear) == 0 {
		return model.Roster{}, fmt.Errorf("please enter both first-year and second-year fellows: %w", scheduler.ErrInvalidRoster)
	}

	return roster, nil
}

// buildBlackouts expands stored blackout records into a builder.
// Duty shifts without a start time are treated as starting at 07:00.
func buildBlackouts(records []db.Blackout, roster model.Roster, monthStart, monthEnd time.Time) (*blackout.Builder, error) {
	builder := blackout.NewBuilder(monthStart, monthEnd)

	for _, rec := range records {
		if _, ok := roster.TierOf(rec.Fellow); !ok {
			return nil, fmt.Errorf("blackout %s references unknown fellow %q", rec.ID, rec.Fellow)
		}

		start, end, err := parseRecordRange(rec)
		if err != nil {
			return nil, err
		}

		switch rec.Kind {
		case db.BlackoutKindDuty:
			startTime := blackout.DefaultDutyStartTime
			if rec.StartTime != "" {
				startTime, err = blackout.ParseStartTime(rec.StartTime)
				if err != nil {
					return nil, fmt.Errorf("blackout %s: %w", rec.ID, err)
				}
			}
			err = builder.AddDutyShift(blackout.DutyShift{
				Fellow:     rec.Fellow,
				Start:      start,
				End:        end,
				StartTime:  startTime,
				Recurrence: rec.RRule,
			})
		case db.BlackoutKindOffDay:
			err = builder.AddOffDays(blackout.OffDays{Fellow: rec.Fellow, Start: start, End: end})
		default:
			err = fmt.Errorf("unknown blackout kind %q", rec.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("blackout %s: %w", rec.ID, err)
		}
	}

	return builder, nil
}

func parseRecordRange(rec db.Blackout) (time.Time, time.Time, error) {
	start, err := model.ParseDate(rec.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("blackout %s: %w", rec.ID, err)
	}

	var end time.Time
	if rec.End != "" {
		end, err = model.ParseDate(rec.End)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("blackout %s: %w", rec.ID, err)
		}
	}

	return start, end, nil
}

// explainGaps reports, for every unfilled date, which fellows were blacked out and which were at quota
func explainGaps(outcome *scheduler.Outcome, roster model.Roster, blackouts model.Blackouts, builder *blackout.Builder) []GapReport {
	reports := make([]GapReport, 0, len(outcome.Gaps))

	for _, gap := range outcome.Gaps {
		report := GapReport{
			Date:        gap,
			Unavailable: make(map[string][]blackout.Reason),
		}
		for _, fellow := range roster.All() {
			if blackouts.IsBlackedOut(fellow, gap) {
				report.Unavailable[fellow] = builder.Explain(fellow, gap)
				continue
			}
			report.AtQuota = append(report.AtQuota, fellow)
		}
		slices.Sort(report.AtQuota)
		reports = append(reports, report)
	}

	return reports
}

// firstWeekday returns the first date on or after from that falls on the given weekday
func firstWeekday(from time.Time, weekday time.Weekday) time.Time {
	offset := (int(weekday) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, offset)
}
