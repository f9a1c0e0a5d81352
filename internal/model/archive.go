package model

// CommissionArchive is an immutable snapshot of a session's commission tables.
// Type: "opening" (skeleton archived when the session opens) | "raz" (final
// state archived by the reset). Append-only: entries are never updated after
// creation, only deleted whole.
type CommissionArchive struct {
	ID           string `gorm:"primaryKey" json:"id"`
	SessionID    string `gorm:"index;not null" json:"sessionId"`
	SessionName  string `json:"sessionName"`
	SessionStart int64  `json:"sessionStart"`
	SessionEnd   int64  `json:"sessionEnd"`
	ArchivedAt   int64  `gorm:"not null" json:"archivedAt"`
	Type         string `gorm:"type:varchar(20);not null" json:"type"`
	// Tables is the JSON-serialized []CommissionTable — kept as an opaque
	// string so the archive survives shape changes in the live types.
	Tables string `gorm:"type:text" json:"tables"`
	Totals string `gorm:"type:text" json:"totals"`
}

func (CommissionArchive) TableName() string { return "vendor_commission_archives" }

// CommissionTotals is the aggregate block of an archive entry.
type CommissionTotals struct {
	GrandTotal  string `json:"grandTotal"`
	TotalSalary string `json:"totalSalary"`
	NetAPayer   string `json:"netAPayer"`
}
