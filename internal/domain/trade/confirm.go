package trade

import (
	"errors"
	"fmt"

	"tradesim/internal/domain/token"
)

var ErrPreconditionFailed = errors.New("trade precondition failed")

var (
	ErrWalletNotConnected = fmt.Errorf("%w: wallet not connected", ErrPreconditionFailed)
	ErrInvalidAmount      = fmt.Errorf("%w: invalid amount", ErrPreconditionFailed)
	ErrIdenticalTokens    = fmt.Errorf("%w: identical tokens", ErrPreconditionFailed)
)

// Validate checks a confirmation attempt. Checks run in a fixed order and the first
// failing one is reported: wallet, amount, tokens.
func Validate(walletConnected bool, amountFrom string, from, to token.Token) error {
	if !walletConnected {
		return ErrWalletNotConnected
	}
	value, ok := ParseAmount(amountFrom)
	if !ok || value.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if from.ID == to.ID {
		return ErrIdenticalTokens
	}
	return nil
}

// UserMessage is the text shown to the user for a failed precondition.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrWalletNotConnected):
		return "Please connect your wallet to trade."
	case errors.Is(err, ErrInvalidAmount):
		return "Please enter a valid amount to trade."
	case errors.Is(err, ErrIdenticalTokens):
		return "Cannot trade the same token."
	default:
		return "Trade could not be confirmed."
	}
}
