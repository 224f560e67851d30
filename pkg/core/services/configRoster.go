package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/jakechorley/tox-oncall/internal/config"
	"github.com/jakechorley/tox-oncall/pkg/core/model"
	"github.com/jakechorley/tox-oncall/pkg/db"
)

// ConfigRoster serves the roster and blackouts declared in the config file as a db.RosterReader
type ConfigRoster struct {
	cfg *config.Config
}

// NewConfigRoster wraps a loaded config
func NewConfigRoster(cfg *config.Config) *ConfigRoster {
	return &ConfigRoster{cfg: cfg}
}

// GetFellows returns first-year fellows then second-year fellows, in config order.
// IDs are derived from the name so they are stable between runs.
func (c *ConfigRoster) GetFellows(ctx context.Context) ([]db.Fellow, error) {
	fellows := make([]db.Fellow, 0, len(c.cfg.FirstYearFellows)+len(c.cfg.SecondYearFellows))
	for _, name := range c.cfg.FirstYearFellows {
		fellows = append(fellows, configFellow(name, model.TierFirstYear))
	}
	for _, name := range c.cfg.SecondYearFellows {
		fellows = append(fellows, configFellow(name, model.TierSecondYear))
	}
	return fellows, nil
}

// GetBlackouts returns duty shifts followed by off-day requests
func (c *ConfigRoster) GetBlackouts(ctx context.Context) ([]db.Blackout, error) {
	blackouts := make([]db.Blackout, 0, len(c.cfg.DutyShifts)+len(c.cfg.OffDays))
	for _, shift := range c.cfg.DutyShifts {
		blackouts = append(blackouts, db.Blackout{
			ID:        uuid.New().String(),
			Fellow:    shift.Fellow,
			Kind:      db.BlackoutKindDuty,
			Start:     shift.Start,
			End:       shift.End,
			StartTime: shift.StartTime,
			RRule:     shift.RRule,
		})
	}
	for _, off := range c.cfg.OffDays {
		blackouts = append(blackouts, db.Blackout{
			ID:     uuid.New().String(),
			Fellow: off.Fellow,
			Kind:   db.BlackoutKindOffDay,
			Start:  off.Start,
			End:    off.End,
		})
	}
	return blackouts, nil
}

func configFellow(name string, tier model.Tier) db.Fellow {
	return db.Fellow{
		ID:   uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String(),
		Name: name,
		Tier: string(tier),
	}
}
