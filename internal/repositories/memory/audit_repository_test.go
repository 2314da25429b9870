package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/finpulse/finpulse_ledger/internal/core/domain"
	portsrepo "github.com/finpulse/finpulse_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRepository_ListNewestFirstWithFilters(t *testing.T) {
	repo := NewAuditRepository()
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		action := domain.ActionJournalPost
		if i%2 == 1 {
			action = domain.ActionAccountCreate
		}
		require.NoError(t, repo.SaveAuditEvent(ctx, domain.AuditEvent{
			EventID:  fmt.Sprintf("e-%d", i),
			Action:   action,
			EntityID: fmt.Sprintf("x-%d", i%2),
			At:       start.Add(time.Duration(i) * time.Hour),
		}))
	}

	all, err := repo.ListAuditEvents(ctx, portsrepo.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "e-4", all[0].EventID)

	posts, err := repo.ListAuditEvents(ctx, portsrepo.AuditFilter{Action: domain.ActionJournalPost})
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	page, err := repo.ListAuditEvents(ctx, portsrepo.AuditFilter{EntityID: "x-0", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "e-2", page[0].EventID)

	recent, err := repo.ListAuditEvents(ctx, portsrepo.AuditFilter{Since: start.Add(3 * time.Hour)})
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}
