package models

import "time"

// MarketplaceListing is an escrowed auction on one player.
// Invariant: all bids <= the bidder's available (non-escrowed) credits at
// bid time; a bidder's bid is reflected atomically in their escrowCredits.
type MarketplaceListing struct {
	ID               string        `db:"id"`
	SellerTeamID     string        `db:"seller_team_id"`
	PlayerID         string        `db:"player_id"`
	StartBid         int64         `db:"start_bid"`
	BuyNow           *int64        `db:"buy_now"`
	CurrentBid       int64         `db:"current_bid"`
	CurrentBidderID  *string       `db:"current_bidder_id"`
	OriginalExpiry   time.Time     `db:"original_expiry"`
	Expiry           time.Time     `db:"expiry"`
	ExtensionsUsed   int           `db:"extensions_used"` // [0,5]
	Status           ListingStatus `db:"status"`
	CreatedAt        time.Time     `db:"created_at"`
}

const (
	MaxActiveListingsPerSeller = 3
	MaxAuctionExtensions       = 5
	ListingFeePercent          = 0.03
	MarketTaxPercent           = 0.05
	AntiSnipeWindowSeconds     = 60
	AntiSnipeExtensionSeconds  = 60
	MinimumBidIncrementPercent = 0.02 // minimum raise over current bid
)

// MinimumNextBid returns the smallest amount that would be accepted as the
// next bid above currentBid.
func MinimumNextBid(currentBid int64) int64 {
	increment := int64(float64(currentBid) * MinimumBidIncrementPercent)
	if increment < 1 {
		increment = 1
	}
	return currentBid + increment
}

// TeamFinances is a team's virtual-currency balance sheet.
// Invariant: Credits >= 0 (negative balances are permitted only by direct
// salary debits at rollover, see spec §4.8/§8 scenario 5, and even then the
// field itself is allowed to go negative -- callers must not assume
// Credits>=0 holds universally, only that EscrowCredits never exceeds what
// was actually committed).
type TeamFinances struct {
	TeamID        string `db:"team_id"`
	Credits       int64  `db:"credits"`
	Gems          int32  `db:"gems"`
	EscrowCredits int64  `db:"escrow_credits"`
	EscrowGems    int32  `db:"escrow_gems"`
}

// ListingFee is the non-refundable fee charged at listing time: 3% of
// buy-now if present, else 3% of start bid.
func ListingFee(startBid int64, buyNow *int64) int64 {
	base := startBid
	if buyNow != nil {
		base = *buyNow
	}
	return int64(float64(base) * ListingFeePercent)
}

// MarketTax is the 5% cut taken from a settled sale before crediting the seller.
func MarketTax(finalPrice int64) int64 {
	return int64(float64(finalPrice) * MarketTaxPercent)
}
