// Package coreerr defines the typed error taxonomy used across every
// component: validation, conflict, insufficient-resource, not-found,
// invariant-violation, and stall/recovery kinds (spec §7). Callers
// type-switch or errors.As on these instead of matching error strings.
package coreerr

import "fmt"

// Kind classifies an error for propagation-policy purposes: whether C2
// retries it, whether C8 re-runs the step, whether it surfaces to a caller
// untouched.
type Kind string

const (
	KindValidation  Kind = "VALIDATION"
	KindConflict    Kind = "CONFLICT"
	KindResource    Kind = "INSUFFICIENT_RESOURCE"
	KindNotFound    Kind = "NOT_FOUND"
	KindInvariant   Kind = "INVARIANT_VIOLATION"
	KindStall       Kind = "STALL_RECOVERY"
)

// Error is the common shape for every taxonomy member. Code is a stable,
// machine-matchable name (e.g. "BID_TOO_LOW"); Kind governs propagation.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.Err }

func newErr(kind Kind, code, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validation errors: caller-supplied value outside contract. No state change.

func BidTooLow(current, submitted int64) *Error {
	return newErr(KindValidation, "BID_TOO_LOW", "bid %d does not exceed minimum next bid over current %d", submitted, current)
}

func InvalidRoster(reason string) *Error {
	return newErr(KindValidation, "INVALID_ROSTER", "%s", reason)
}

func ContractBelowFloor(offered, floor int64) *Error {
	return newErr(KindValidation, "CONTRACT_BELOW_FLOOR", "offered salary %d is below the 70%% UVF floor %d", offered, floor)
}

// Conflict errors: optimistic/transactional conflict. Retried internally by
// C2 up to 5 times for transient serialization failures, or surfaced.

func StaleDay(expected, actual int) *Error {
	return newErr(KindConflict, "STALE_DAY", "expected current day %d, found %d", expected, actual)
}

func AuctionClosed(listingID string) *Error {
	return newErr(KindConflict, "AUCTION_CLOSED", "listing %s is no longer active", listingID)
}

func ListingBusy(listingID string) *Error {
	return newErr(KindConflict, "LISTING_BUSY", "listing %s is being settled concurrently", listingID)
}

// IsRetryable reports whether a conflict should be retried by C2's withTx
// loop rather than surfaced immediately.
func (e *Error) IsRetryable() bool {
	return e.Kind == KindConflict && (e.Code == "STALE_DAY" || e.Code == "SERIALIZATION_FAILURE")
}

func SerializationFailure(cause error) *Error {
	return &Error{Kind: KindConflict, Code: "SERIALIZATION_FAILURE", Message: "transaction serialization conflict", Err: cause}
}

// Insufficient resource errors: surfaced, never silently adjusted.

func InsufficientCredits(have, need int64) *Error {
	return newErr(KindResource, "INSUFFICIENT_CREDITS", "have %d, need %d", have, need)
}

func InsufficientGems(have, need int32) *Error {
	return newErr(KindResource, "INSUFFICIENT_GEMS", "have %d, need %d", have, need)
}

func InsufficientLineup(fieldable, required int) *Error {
	return newErr(KindResource, "INSUFFICIENT_LINEUP", "only %d fieldable players, need %d", fieldable, required)
}

// Not found errors: surfaced.

func TeamNotFound(id string) *Error    { return newErr(KindNotFound, "TEAM_NOT_FOUND", "team %s", id) }
func PlayerNotFound(id string) *Error  { return newErr(KindNotFound, "PLAYER_NOT_FOUND", "player %s", id) }
func GameNotFound(id string) *Error    { return newErr(KindNotFound, "GAME_NOT_FOUND", "game %s", id) }
func ListingNotFound(id string) *Error { return newErr(KindNotFound, "LISTING_NOT_FOUND", "listing %s", id) }
func TournamentNotFound(id string) *Error {
	return newErr(KindNotFound, "TOURNAMENT_NOT_FOUND", "tournament %s", id)
}

// Invariant violations: should not occur. Detecting one aborts the
// operation, rolls back the transaction, and must be logged at error level
// as a bug report, not a runtime condition.

func Invariant(what string) *Error {
	return newErr(KindInvariant, "INVARIANT_VIOLATION", "%s", what)
}

// Stall/recovery: informational. Never fail the caller's operation; logged
// and exposed via metrics, not returned as the primary error of an op.

func MatchStalled(gameID string, lastTick int) *Error {
	return newErr(KindStall, "MATCH_STALLED", "game %s stalled at tick %d", gameID, lastTick)
}

func CheckpointRestored(gameID string, tick int) *Error {
	return newErr(KindStall, "CHECKPOINT_RESTORED", "game %s restored from checkpoint at tick %d", gameID, tick)
}

func LateStart(gameID string, delay string) *Error {
	return newErr(KindStall, "LATE_START", "game %s started late by %s", gameID, delay)
}

func MaxExtensionsReached(listingID string) *Error {
	return newErr(KindValidation, "MAX_EXTENSIONS_REACHED", "listing %s has used all %d anti-snipe extensions", listingID, 5)
}
