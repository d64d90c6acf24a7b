package domain

// Reward is a purchasable catalog item issued by exactly one parent.
// It is visible to a child if the issuing parent guards that child.
type Reward struct {
	RewardID    string `json:"rewardID"` // Primary Key (UUID)
	ParentID    string `json:"parentID"` // Issuing parent
	Name        string `json:"name"`
	Cost        int64  `json:"cost"` // Cost in points, always >= 0
	Description string `json:"description"`
	AuditFields
}
