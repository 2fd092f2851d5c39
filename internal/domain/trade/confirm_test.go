package trade

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		connected  bool
		amountFrom string
		from, to   string
		wantErr    error
	}{
		{name: "ok", connected: true, amountFrom: "1.5", from: "btc", to: "eth", wantErr: nil},
		{name: "trailing point is a valid amount", connected: true, amountFrom: "5.", from: "btc", to: "eth", wantErr: nil},
		{name: "wallet first even when everything else is wrong", connected: false, amountFrom: "", from: "btc", to: "btc", wantErr: ErrWalletNotConnected},
		{name: "wallet disconnected with valid trade", connected: false, amountFrom: "1", from: "btc", to: "eth", wantErr: ErrWalletNotConnected},
		{name: "zero amount", connected: true, amountFrom: "0", from: "btc", to: "eth", wantErr: ErrInvalidAmount},
		{name: "zero with leading zeros", connected: true, amountFrom: "000.000", from: "btc", to: "eth", wantErr: ErrInvalidAmount},
		{name: "empty amount", connected: true, amountFrom: "", from: "btc", to: "eth", wantErr: ErrInvalidAmount},
		{name: "amount before tokens", connected: true, amountFrom: ".", from: "btc", to: "btc", wantErr: ErrInvalidAmount},
		{name: "identical tokens", connected: true, amountFrom: "1", from: "btc", to: "btc", wantErr: ErrIdenticalTokens},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := btcTok
			from.ID = tt.from
			to := ethTok
			to.ID = tt.to

			err := Validate(tt.connected, tt.amountFrom, from, to)
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && !errors.Is(err, ErrPreconditionFailed) {
				t.Errorf("Validate() error = %v, want it to wrap ErrPreconditionFailed", err)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(ErrIdenticalTokens); got != "Cannot trade the same token." {
		t.Errorf("UserMessage(ErrIdenticalTokens) = %q", got)
	}
	if got := UserMessage(errors.New("boom")); got != "Trade could not be confirmed." {
		t.Errorf("UserMessage(other) = %q", got)
	}
}
