// Package contracts handles player contract negotiation: the 70%-of-UVF
// salary floor, signing bonus settlement, and early termination. Staff
// contracts are not handled: ProposeContract looks up and signs players
// only. It sits alongside marketplace as a thin transactional
// layer over the store gateway (spec §3 Contract, §6 proposeContract/
// cancelContract).
package contracts

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/domeball/core/internal/coreerr"
	"github.com/domeball/core/internal/models"
	"github.com/domeball/core/internal/progression"
	"github.com/domeball/core/internal/store"
)

type Service struct {
	gateway *store.Gateway
}

func New(gateway *store.Gateway) *Service {
	return &Service{gateway: gateway}
}

// Outcome classifies the result of a proposed offer: accepted outright and
// signed, or countered at the floor salary (nothing signed, returned with
// the below-floor error). Any other refusal is returned as an error with
// an empty Outcome.
type Outcome string

const (
	OutcomeAccepted Outcome = "ACCEPTED"
	OutcomeCountered Outcome = "COUNTERED"
)

// ProposeContract evaluates a salary offer against the player's Universal
// Value Formula floor. An offer at or above the floor is accepted and
// signed immediately, debiting the signing bonus; an offer below floor is
// rejected with the floor salary returned as a counter offer rather than
// silently adjusted (coreerr.ContractBelowFloor is a validation error,
// never a state change).
func (s *Service) ProposeContract(ctx context.Context, teamID, playerID string, salary, bonus int64, years int) (Outcome, int64, error) {
	p, err := s.gateway.GetPlayer(ctx, playerID)
	if err != nil {
		return "", 0, err
	}
	uvf := progression.PlayerUVF(*p)
	if err := progression.ValidateOffer(uvf, salary); err != nil {
		return OutcomeCountered, progression.MinimumOfferFloor(uvf), err
	}
	if years < 1 || years > 3 {
		return "", 0, coreerr.InvalidRoster("contract term must be 1 to 3 seasons")
	}

	c := models.Contract{
		ID: uuid.NewString(), TeamID: teamID, CounterpartyID: playerID,
		CounterpartyKind: models.CounterpartyPlayer, AnnualSalary: salary,
		RemainingSeasons: years, SigningBonus: bonus,
	}
	err = s.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if bonus > 0 {
			if err := s.gateway.CreditTeamTx(ctx, tx, teamID, -bonus, 0, models.LedgerSigningBonus, c.ID); err != nil {
				return err
			}
		}
		return s.gateway.CreateContractTx(ctx, tx, c)
	})
	if err != nil {
		return "", 0, err
	}
	return OutcomeAccepted, salary, nil
}

// CancelContract terminates a contract before its term expires. No
// buyout is modeled: the remaining-seasons obligation simply ends, the
// same as the roster losing the player outright.
func (s *Service) CancelContract(ctx context.Context, contractID string) error {
	return s.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.gateway.DeleteContractTx(ctx, tx, contractID)
	})
}
