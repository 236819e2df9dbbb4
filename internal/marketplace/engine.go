// Package marketplace implements the escrowed auction engine (C6): listing
// creation, bidding with anti-snipe extensions, buy-now settlement, and
// expiry sweeps. Every state transition for a given listing is serialized
// by the store gateway's row lock, and a bidder's balance change is
// transactionally coupled to the listing update so double-spend is
// impossible (spec §4.6).
package marketplace

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/domeball/core/internal/coreerr"
	"github.com/domeball/core/internal/metrics"
	"github.com/domeball/core/internal/models"
	"github.com/domeball/core/internal/store"
)

type Engine struct {
	gateway *store.Gateway
}

func New(gateway *store.Gateway) *Engine {
	return &Engine{gateway: gateway}
}

// List creates a new ACTIVE listing, charging the non-refundable listing
// fee up front.
func (e *Engine) List(ctx context.Context, sellerTeamID, playerID string, startBid int64, buyNow *int64, duration time.Duration, phase models.Phase) (*models.MarketplaceListing, error) {
	if phase == models.PhaseOffseason && buyNow == nil {
		return nil, coreerr.InvalidRoster("offseason listings must specify a buy-now price")
	}

	count, err := e.gateway.CountActiveListings(ctx, sellerTeamID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxActiveListingsPerSeller {
		return nil, coreerr.InvalidRoster("seller has reached the active listing cap")
	}

	fee := models.ListingFee(startBid, buyNow)
	now := time.Now().UTC()
	listing := models.MarketplaceListing{
		ID: uuid.NewString(), SellerTeamID: sellerTeamID, PlayerID: playerID,
		StartBid: startBid, BuyNow: buyNow, CurrentBid: startBid,
		OriginalExpiry: now.Add(duration), Expiry: now.Add(duration),
		Status: models.ListingActive, CreatedAt: now,
	}

	err = e.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := e.gateway.CreditTeamTx(ctx, tx, sellerTeamID, -fee, 0, models.LedgerListingFee, listing.ID); err != nil {
			return err
		}
		return e.gateway.CreateListingTx(ctx, tx, listing)
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordListingCreated(string(phase))
	return &listing, nil
}

// Bid places a new high bid on a listing, reserving the bidder's credits
// and releasing the previous high bidder's escrow, all inside one
// transaction. Applies the anti-snipe extension when within the window.
func (e *Engine) Bid(ctx context.Context, listingID, bidderTeamID string, amount int64) error {
	err := e.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		listing, err := e.gateway.GetListingForUpdate(ctx, tx, listingID)
		if err != nil {
			return err
		}
		if listing.Status != models.ListingActive {
			return coreerr.AuctionClosed(listingID)
		}
		if amount < models.MinimumNextBid(listing.CurrentBid) {
			return coreerr.BidTooLow(listing.CurrentBid, amount)
		}

		var finances models.TeamFinances
		row := tx.QueryRowContext(ctx, `SELECT credits FROM team_finances WHERE team_id = ? FOR UPDATE`, bidderTeamID)
		if err := row.Scan(&finances.Credits); err != nil {
			if err == sql.ErrNoRows {
				return coreerr.TeamNotFound(bidderTeamID)
			}
			return err
		}
		if finances.Credits < amount {
			return coreerr.InsufficientCredits(finances.Credits, amount)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE team_finances SET credits = credits - ?, escrow_credits = escrow_credits + ? WHERE team_id = ?`,
			amount, amount, bidderTeamID); err != nil {
			return err
		}
		if err := e.gateway.AppendLedgerTx(ctx, tx, models.LedgerEntry{
			ID: uuid.NewString(), TeamID: bidderTeamID, Type: models.LedgerBidReserve,
			DeltaCredits: -amount, Reference: listingID, CreatedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}

		if listing.CurrentBidderID != nil {
			prevBidder := *listing.CurrentBidderID
			prevAmount := listing.CurrentBid
			if _, err := tx.ExecContext(ctx, `
				UPDATE team_finances SET credits = credits + ?, escrow_credits = escrow_credits - ? WHERE team_id = ?`,
				prevAmount, prevAmount, prevBidder); err != nil {
				return err
			}
			if err := e.gateway.AppendLedgerTx(ctx, tx, models.LedgerEntry{
				ID: uuid.NewString(), TeamID: prevBidder, Type: models.LedgerBidRelease,
				DeltaCredits: prevAmount, Reference: listingID, CreatedAt: time.Now().UTC(),
			}); err != nil {
				return err
			}
		}

		listing.CurrentBid = amount
		listing.CurrentBidderID = &bidderTeamID

		timeRemaining := time.Until(listing.Expiry)
		if timeRemaining <= models.AntiSnipeWindowSeconds*time.Second && listing.ExtensionsUsed < models.MaxAuctionExtensions {
			listing.Expiry = listing.Expiry.Add(models.AntiSnipeExtensionSeconds * time.Second)
			listing.ExtensionsUsed++
		}

		return e.gateway.UpdateListingBidTx(ctx, tx, *listing)
	})
	if err != nil {
		metrics.RecordBidAttempt("rejected")
		return err
	}
	metrics.RecordBidAttempt("accepted")
	return nil
}

// BuyNow settles a listing immediately at its buy-now price, refunding any
// other escrowed bidder atomically.
func (e *Engine) BuyNow(ctx context.Context, listingID, bidderTeamID string) error {
	err := e.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		listing, err := e.gateway.GetListingForUpdate(ctx, tx, listingID)
		if err != nil {
			return err
		}
		if listing.Status != models.ListingActive {
			return coreerr.AuctionClosed(listingID)
		}
		if listing.BuyNow == nil {
			return coreerr.InvalidRoster("listing has no buy-now price")
		}
		finalPrice := *listing.BuyNow

		var credits int64
		row := tx.QueryRowContext(ctx, `SELECT credits FROM team_finances WHERE team_id = ? FOR UPDATE`, bidderTeamID)
		if err := row.Scan(&credits); err != nil {
			if err == sql.ErrNoRows {
				return coreerr.TeamNotFound(bidderTeamID)
			}
			return err
		}
		if credits < finalPrice {
			return coreerr.InsufficientCredits(credits, finalPrice)
		}

		if listing.CurrentBidderID != nil {
			prevBidder := *listing.CurrentBidderID
			prevAmount := listing.CurrentBid
			if _, err := tx.ExecContext(ctx, `
				UPDATE team_finances SET credits = credits + ?, escrow_credits = escrow_credits - ? WHERE team_id = ?`,
				prevAmount, prevAmount, prevBidder); err != nil {
				return err
			}
			if err := e.gateway.AppendLedgerTx(ctx, tx, models.LedgerEntry{
				ID: uuid.NewString(), TeamID: prevBidder, Type: models.LedgerBidRelease,
				DeltaCredits: prevAmount, Reference: listingID, CreatedAt: time.Now().UTC(),
			}); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE team_finances SET credits = credits - ?, escrow_credits = escrow_credits + ? WHERE team_id = ?`,
			finalPrice, finalPrice, bidderTeamID); err != nil {
			return err
		}
		if err := e.gateway.AppendLedgerTx(ctx, tx, models.LedgerEntry{
			ID: uuid.NewString(), TeamID: bidderTeamID, Type: models.LedgerBidReserve,
			DeltaCredits: -finalPrice, Reference: listingID, CreatedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}

		return e.settleSaleTx(ctx, tx, listing, bidderTeamID, finalPrice)
	})
	if err != nil {
		metrics.RecordBidAttempt("rejected")
		return err
	}
	metrics.RecordBidAttempt("accepted")
	metrics.RecordSettlement("sold")
	return nil
}

// settleSaleTx applies the final ownership transfer, market tax, seller
// proceeds, and listing close for an agreed finalPrice.
func (e *Engine) settleSaleTx(ctx context.Context, tx *sql.Tx, listing *models.MarketplaceListing, buyerTeamID string, finalPrice int64) error {
	if _, err := tx.ExecContext(ctx, `
		UPDATE team_finances SET escrow_credits = escrow_credits - ? WHERE team_id = ?`,
		finalPrice, buyerTeamID); err != nil {
		return err
	}

	tax := models.MarketTax(finalPrice)
	netProceeds := finalPrice - tax

	if err := e.gateway.CreditTeamTx(ctx, tx, listing.SellerTeamID, netProceeds, 0, models.LedgerAuctionSale, listing.ID); err != nil {
		return err
	}
	if err := e.gateway.AppendLedgerTx(ctx, tx, models.LedgerEntry{
		ID: uuid.NewString(), TeamID: listing.SellerTeamID, Type: models.LedgerMarketTax,
		DeltaCredits: -tax, Reference: listing.ID, CreatedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}

	if err := e.gateway.TransferPlayerOwnershipTx(ctx, tx, listing.PlayerID, buyerTeamID); err != nil {
		return err
	}
	return e.gateway.SetListingStatusTx(ctx, tx, listing.ID, models.ListingSold)
}

// CancelListing withdraws a listing before it closes, refusing once a bid
// has been placed: the high bidder's escrow is a commitment the seller
// can no longer unilaterally undo (spec §4.6).
func (e *Engine) CancelListing(ctx context.Context, listingID, sellerTeamID string) error {
	return e.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		listing, err := e.gateway.GetListingForUpdate(ctx, tx, listingID)
		if err != nil {
			return err
		}
		if listing.SellerTeamID != sellerTeamID {
			return coreerr.ListingNotFound(listingID)
		}
		if listing.Status != models.ListingActive {
			return coreerr.AuctionClosed(listingID)
		}
		if listing.CurrentBidderID != nil {
			return coreerr.InvalidRoster("listing already has a bid and cannot be cancelled")
		}
		return e.gateway.SetListingStatusTx(ctx, tx, listing.ID, models.ListingCancelled)
	})
}

// SettleExpired processes every ACTIVE listing whose expiry has passed:
// sells to the high bidder if one exists, else marks EXPIRED (spec §4.6).
// Invoked by the season automation engine on a short cadence.
func (e *Engine) SettleExpired(ctx context.Context, asOf time.Time) (settled, expired int, err error) {
	listings, err := e.gateway.ListExpiredActiveListings(ctx, asOf)
	if err != nil {
		return 0, 0, err
	}

	for _, listing := range listings {
		l := listing
		txErr := e.gateway.WithTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
			locked, err := e.gateway.GetListingForUpdate(ctx, tx, l.ID)
			if err != nil {
				return err
			}
			if locked.Status != models.ListingActive {
				return nil // already settled by a concurrent sweep: idempotent no-op
			}
			if locked.CurrentBidderID == nil {
				return e.gateway.SetListingStatusTx(ctx, tx, locked.ID, models.ListingExpired)
			}
			return e.settleSaleTx(ctx, tx, locked, *locked.CurrentBidderID, locked.CurrentBid)
		})
		if txErr != nil {
			err = txErr
			continue
		}
		if l.CurrentBidderID != nil {
			settled++
			metrics.RecordSettlement("sold")
		} else {
			expired++
			metrics.RecordSettlement("expired")
		}
	}
	return settled, expired, err
}
