package models

// User represents a registered user. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	UserID   int    `db:"user_id" json:"userId"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
}

// Transaction represents a single dated, signed monetary amount with
// optional tags, scoped to one user. Date is in DD-MM-YYYY wire form and
// Amount keeps its mandatory leading sign. Tags is the space-joined "#tag"
// form, in original input order.
type Transaction struct {
	TransactionID int    `db:"transaction_id" json:"transactionId"`
	Date          string `db:"date" json:"date"`
	Amount        string `db:"amount" json:"amount"`
	Tags          string `db:"tags" json:"tags"`
}

// TransactionTag is one ordered tag attachment to a transaction. TagPosition
// preserves the order tags appeared in the input string.
type TransactionTag struct {
	UserID        int    `db:"user_id" json:"userId"`
	TransactionID int    `db:"transaction_id" json:"transactionId"`
	Tag           string `db:"tag" json:"tag"`
	TagPosition   int    `db:"tag_position" json:"tagPosition"`
}
