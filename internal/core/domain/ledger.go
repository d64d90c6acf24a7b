package domain

import (
	"fmt"
	"time"
)

// EntryKind tags a ledger entry with the kind of point movement it records.
type EntryKind string

const (
	// KindGrant is a parent-initiated addition of points.
	KindGrant EntryKind = "GRANT"
	// KindDeduction is a parent-initiated removal of points, unchecked against the balance.
	KindDeduction EntryKind = "DEDUCTION"
	// KindRedemption is a funds-checked spend against a reward's cost.
	KindRedemption EntryKind = "REDEMPTION"
)

// IsValid reports whether the kind is one of the known entry kinds.
func (k EntryKind) IsValid() bool {
	switch k {
	case KindGrant, KindDeduction, KindRedemption:
		return true
	}
	return false
}

// IsAdjustment reports whether the kind is one a parent may append directly.
func (k EntryKind) IsAdjustment() bool {
	return k == KindGrant || k == KindDeduction
}

// NormalizeSign forces the sign of a point delta to match the entry kind:
// grants are non-negative, deductions and redemptions non-positive. The
// caller-supplied sign is never trusted.
func (k EntryKind) NormalizeSign(points int64) int64 {
	abs := points
	if abs < 0 {
		abs = -abs
	}
	if k == KindGrant {
		return abs
	}
	return -abs
}

// LedgerEntry is one immutable signed point movement for one child. Entries
// are never updated or deleted; corrections are new opposite entries.
type LedgerEntry struct {
	EntryID     string    `json:"entryID"` // Primary Key (UUID)
	ChildID     string    `json:"childID"`
	ParentID    *string   `json:"parentID,omitempty"` // Acting parent; nil for unmediated self-redemptions
	Points      int64     `json:"points"`             // Signed delta, sign determined by Kind
	Kind        EntryKind `json:"kind"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewRedemptionEntry builds the redemption entry both spend paths append:
// child self-redemption (parentID nil) and parent-approved redemption. The
// two paths share this constructor so the entry shape cannot diverge.
func NewRedemptionEntry(entryID, childID string, parentID *string, reward Reward, now time.Time) LedgerEntry {
	desc := fmt.Sprintf("Redeemed reward: %s", reward.Name)
	if parentID != nil {
		desc = fmt.Sprintf("Approved reward: %s", reward.Name)
	}
	return LedgerEntry{
		EntryID:     entryID,
		ChildID:     childID,
		ParentID:    parentID,
		Points:      KindRedemption.NormalizeSign(reward.Cost),
		Kind:        KindRedemption,
		Description: desc,
		CreatedAt:   now,
	}
}
