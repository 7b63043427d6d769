package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/statuspulse/monitoring-system/internal/core/domain"
	"github.com/statuspulse/monitoring-system/internal/core/ports"
)

// RepairReport summarises a role backfill pass.
type RepairReport struct {
	Checked  int
	Repaired int
	// RepairedIDs lists the accounts whose role was reset to the default.
	RepairedIDs []string
}

// RepairRoles is a one-shot maintenance pass over the whole account set:
// any account whose stored role is empty or outside the closed set is
// corrected to the default viewer role. It is idempotent and runs outside
// the live request path; normal reads and updates never default a role.
func RepairRoles(ctx context.Context, repo ports.UserRepository, log zerolog.Logger) (*RepairReport, error) {
	users, err := repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &RepairReport{Checked: len(users)}
	for _, user := range users {
		if user.Role.Valid() {
			log.Debug().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("role ok")
			continue
		}

		old := user.Role
		user.Role = domain.DefaultRole
		if err := repo.Update(ctx, user); err != nil {
			return report, err
		}

		report.Repaired++
		report.RepairedIDs = append(report.RepairedIDs, user.ID)
		log.Info().
			Str("user_id", user.ID).
			Str("username", user.Username).
			Str("old_role", string(old)).
			Str("new_role", string(domain.DefaultRole)).
			Msg("role repaired")
	}

	return report, nil
}
