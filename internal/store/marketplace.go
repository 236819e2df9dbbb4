package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/domeball/core/internal/coreerr"
	"github.com/domeball/core/internal/models"
)

const listingColumns = `id, seller_team_id, player_id, start_bid, buy_now, current_bid,
		       current_bidder_id, original_expiry, expiry, extensions_used, status, created_at`

func scanListing(scan func(dest ...interface{}) error) (models.MarketplaceListing, error) {
	var l models.MarketplaceListing
	err := scan(&l.ID, &l.SellerTeamID, &l.PlayerID, &l.StartBid, &l.BuyNow, &l.CurrentBid,
		&l.CurrentBidderID, &l.OriginalExpiry, &l.Expiry, &l.ExtensionsUsed, &l.Status, &l.CreatedAt)
	return l, err
}

// GetListingForUpdate locks a listing row for the duration of the caller's
// transaction, serializing concurrent bids on the same listing (spec §8
// scenario 6).
func (g *Gateway) GetListingForUpdate(ctx context.Context, tx *sql.Tx, listingID string) (*models.MarketplaceListing, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM marketplace_listings WHERE id = ? FOR UPDATE`, listingID)
	l, err := scanListing(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, coreerr.ListingNotFound(listingID)
		}
		return nil, err
	}
	return &l, nil
}

// CountActiveListings supports the MaxActiveListingsPerSeller invariant.
func (g *Gateway) CountActiveListings(ctx context.Context, sellerTeamID string) (int, error) {
	var n int
	err := g.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM marketplace_listings WHERE seller_team_id = ? AND status = ?`,
		sellerTeamID, models.ListingActive).Scan(&n)
	return n, err
}

// CreateListing inserts a new ACTIVE listing.
func (g *Gateway) CreateListing(ctx context.Context, l models.MarketplaceListing) error {
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO marketplace_listings (`+listingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.SellerTeamID, l.PlayerID, l.StartBid, l.BuyNow, l.CurrentBid,
		l.CurrentBidderID, l.OriginalExpiry, l.Expiry, l.ExtensionsUsed, l.Status, l.CreatedAt)
	return err
}

// CreateListingTx inserts a new ACTIVE listing inside the caller's
// transaction, so it can be coupled to the seller's listing-fee debit.
func (g *Gateway) CreateListingTx(ctx context.Context, tx *sql.Tx, l models.MarketplaceListing) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO marketplace_listings (`+listingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.SellerTeamID, l.PlayerID, l.StartBid, l.BuyNow, l.CurrentBid,
		l.CurrentBidderID, l.OriginalExpiry, l.Expiry, l.ExtensionsUsed, l.Status, l.CreatedAt)
	return err
}

// UpdateListingBidTx records a new high bid and the anti-snipe extension it
// may trigger, inside the caller's transaction.
func (g *Gateway) UpdateListingBidTx(ctx context.Context, tx *sql.Tx, l models.MarketplaceListing) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE marketplace_listings
		SET current_bid = ?, current_bidder_id = ?, expiry = ?, extensions_used = ?
		WHERE id = ?`,
		l.CurrentBid, l.CurrentBidderID, l.Expiry, l.ExtensionsUsed, l.ID)
	return err
}

// SetListingStatusTx transitions a listing's status (SOLD/EXPIRED/CANCELLED).
func (g *Gateway) SetListingStatusTx(ctx context.Context, tx *sql.Tx, listingID string, status models.ListingStatus) error {
	_, err := tx.ExecContext(ctx, `UPDATE marketplace_listings SET status = ? WHERE id = ?`, status, listingID)
	return err
}

// ListExpiredActiveListings returns ACTIVE listings whose expiry has passed,
// the input to C6's settleExpired cadence.
func (g *Gateway) ListExpiredActiveListings(ctx context.Context, asOf time.Time) ([]models.MarketplaceListing, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT `+listingColumns+` FROM marketplace_listings WHERE status = ? AND expiry <= ?`,
		models.ListingActive, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MarketplaceListing
	for rows.Next() {
		l, err := scanListing(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListActiveListings returns every ACTIVE listing, the backing query for
// the marketplace browse endpoint.
func (g *Gateway) ListActiveListings(ctx context.Context) ([]models.MarketplaceListing, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT `+listingColumns+` FROM marketplace_listings WHERE status = ? ORDER BY expiry ASC`,
		models.ListingActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MarketplaceListing
	for rows.Next() {
		l, err := scanListing(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// TransferPlayerOwnershipTx reassigns a player's team_id, used on auction
// settlement.
func (g *Gateway) TransferPlayerOwnershipTx(ctx context.Context, tx *sql.Tx, playerID, newTeamID string) error {
	_, err := tx.ExecContext(ctx, `UPDATE players SET team_id = ? WHERE id = ?`, newTeamID, playerID)
	return err
}
