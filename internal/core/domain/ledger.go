package domain

const (
	// StampCap is the maximum balance a wallet can hold.
	StampCap = 10
	// EuroPerStamp is the spend, in whole euros, needed for one stamp.
	EuroPerStamp = 10
	// MaxAmountCents bounds a single purchase.
	MaxAmountCents = 50000
)

// StampsForAmount converts a purchase amount to stamps. Whole euros are
// divided by EuroPerStamp, so 1099 cents earn 1 stamp and 999 earn none.
func StampsForAmount(amountCents int64) int {
	if amountCents <= 0 {
		return 0
	}
	euros := amountCents / 100
	return int(euros / EuroPerStamp)
}

// ClampStamps bounds a balance to [0, StampCap].
func ClampStamps(n int) int {
	if n < 0 {
		return 0
	}
	if n > StampCap {
		return StampCap
	}
	return n
}

// WalletState is the externally visible balance of one wallet.
type WalletState struct {
	StoreID  string `json:"storeId"`
	WalletID string `json:"walletId"`
	Stamps   int    `json:"stamps"`
	StampCap int    `json:"stampCap"`
}
