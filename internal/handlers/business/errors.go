package business

import (
	"errors"
	"fmt"
)

// Ledger-mutating operations return these directly to the caller; nothing is
// retried inside this package. Retries belong to the chain intake.
var (
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrPoolCapacityExceeded    = errors.New("pool capacity exceeded")
	ErrLockPeriodActive        = errors.New("lock period active")
	ErrNoBeneficiarySelected   = errors.New("no beneficiary selected")
	ErrTransactionNotConfirmed = errors.New("transaction not confirmed")
	ErrStaleInput              = errors.New("stale input")
	ErrAlreadyExecuted         = errors.New("already executed")
	ErrNegativeResultRejected  = errors.New("negative result rejected")
	ErrInvalidWalletAddress    = errors.New("invalid wallet address")
	ErrPoolInactive            = errors.New("pool is not active")
	ErrStakeInactive           = errors.New("stake is not active")
	ErrPositionInactive        = errors.New("position is not active")

	// Vesting regeneration refuses to drop an executed milestone.
	ErrExecutedMilestoneOrphaned = errors.New("executed milestone has no matching date in regenerated schedule")
)

var (
	ErrBelowMinimumStake = fmt.Errorf("%w: below pool minimum", ErrInvalidAmount)
	ErrAboveMaximumStake = fmt.Errorf("%w: above pool maximum", ErrInvalidAmount)
)
