package models

const (
	TransactionDeposit    = "deposit"
	TransactionWithdrawal = "withdrawal"
)

// Transaction is a wallet ledger entry. Deposits and withdrawals are
// independent of trades; the two collections only meet at the summary level
// where wallet balance plus cumulative trading PnL gives the current balance.
type Transaction struct {
	ID     int64   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Date   string  `gorm:"not null;index" json:"date"`
	Type   string  `gorm:"not null" json:"type"`
	Amount float64 `gorm:"not null" json:"amount"`
	Notes  string  `gorm:"type:text" json:"notes"`
}
