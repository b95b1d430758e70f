package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pratik-jagdale/AgentDashBackend/src/service/session"
)

func TestListRegistrationAuditRequiresSession(t *testing.T) {
	svcCtx, _ := newMintTestCtx(t)

	_, err := ListRegistrationAudit(context.Background(), svcCtx)
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)
}
