package dao

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/gdb/model"
)

// SaveRegistration appends one server registration attempt to the audit
// trail.
func (d *Dao) SaveRegistration(ctx context.Context, reg *model.ServerRegistration) error {
	if err := d.DB.WithContext(ctx).
		Table(model.ServerRegistrationTableName()).
		Create(reg).Error; err != nil {
		return errors.Wrap(err, "failed on save server registration")
	}
	return nil
}

// ListRegistrations returns the audit records for one wallet address, newest
// first.
func (d *Dao) ListRegistrations(ctx context.Context, userAddress string) ([]model.ServerRegistration, error) {
	var regs []model.ServerRegistration
	if err := d.DB.WithContext(ctx).
		Table(model.ServerRegistrationTableName()).
		Where("user_address = ?", userAddress).
		Order("create_time desc").
		Find(&regs).Error; err != nil {
		return nil, errors.Wrap(err, "failed on list server registrations")
	}
	return regs, nil
}
