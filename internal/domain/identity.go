package domain

import "fmt"

// Identity associates ledger and history records with a player.
// Resolution precedence: numeric social-network id (FID), else connected
// wallet address, else anonymous (local-only play, no remote sync).
type Identity struct {
	FID           int64  `json:"fid,omitempty"`
	WalletAddress string `json:"wallet_address,omitempty"`
	Username      string `json:"username,omitempty"`
	AvatarURL     string `json:"pfp_url,omitempty"`
}

// Key returns the stable user id for remote records, or "" when the
// identity is anonymous.
func (i Identity) Key() string {
	if i.FID > 0 {
		return fmt.Sprintf("fid:%d", i.FID)
	}
	if i.WalletAddress != "" {
		return i.WalletAddress
	}
	return ""
}

// IsAnonymous reports whether no remote identity can be derived.
func (i Identity) IsAnonymous() bool {
	return i.Key() == ""
}

// HasWallet reports whether a wallet address is connected.
func (i Identity) HasWallet() bool {
	return i.WalletAddress != ""
}
