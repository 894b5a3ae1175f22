package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/fintrack-app/fintrack/internal/models"
	"github.com/fintrack-app/fintrack/internal/timeline"
	"github.com/fintrack-app/fintrack/internal/validation"
)

// AmountKind selects which side of the ledger an aggregation sums over. The
// classification is structural: it matches the mandatory sign prefix on the
// stored amount text.
type AmountKind string

const (
	Spendings AmountKind = "spendings"
	Income    AmountKind = "income"
)

// signPattern returns the LIKE pattern matching amounts of this kind. An
// unknown kind is a programming error, not user input, so it panics.
func (k AmountKind) signPattern() string {
	switch k {
	case Spendings:
		return "-%"
	case Income:
		return "+%"
	default:
		panic(fmt.Sprintf("unknown amount kind: %q", k))
	}
}

// Repository interface defines the methods that any repository implementation must satisfy
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, username, passwordHash string) (int, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	DeleteUser(ctx context.Context, userID int) (bool, error)

	// Transaction operations
	AddTransaction(ctx context.Context, userID int, date, amount, tags string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, transactionID int, date, amount, tags string) error
	DeleteTransaction(ctx context.Context, userID, transactionID int) (bool, error)
	ListTransactions(ctx context.Context, userID int) ([]models.Transaction, error)

	// Aggregation
	SumAmounts(ctx context.Context, userID int, kind AmountKind, startDate, endDate, tagFilter string) (decimal.Decimal, error)
}

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// User repository methods
func (r *PostgresRepository) CreateUser(ctx context.Context, username, passwordHash string) (int, error) {
	query := `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING user_id
	`

	var userID int
	err := r.db.QueryRowContext(ctx, query, username, passwordHash).Scan(&userID)
	if err != nil {
		return 0, err
	}

	return userID, nil
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT * FROM users WHERE username = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

// DeleteUser removes a user; transactions and tags go with it through the
// cascade. Returns whether a row was actually removed.
func (r *PostgresRepository) DeleteUser(ctx context.Context, userID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// Transaction repository methods

// AddTransaction assigns the next per-user transaction id (max+1, starting at
// 1), stores the date reversed, and persists the parsed tag list with
// positions. The whole insert runs in one database transaction so the id
// assignment and the tag rows stay consistent.
func (r *PostgresRepository) AddTransaction(
	ctx context.Context,
	userID int,
	date, amount, tags string,
) (*models.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	query := `
		INSERT INTO transactions (user_id, transaction_id, date, amount)
		VALUES (
			$1,
			(SELECT COALESCE(MAX(transaction_id) + 1, 1) FROM transactions WHERE user_id = $1),
			$2,
			$3
		)
		RETURNING transaction_id
	`

	var transactionID int
	err = tx.QueryRowContext(ctx, query, userID, timeline.Reverse(date), amount).Scan(&transactionID)
	if err != nil {
		return nil, err
	}

	err = insertTagsTx(ctx, tx, userID, transactionID, tags)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &models.Transaction{
		TransactionID: transactionID,
		Date:          date,
		Amount:        amount,
		Tags:          tags,
	}, nil
}

// UpdateTransaction overwrites date and amount wholesale and replaces the tag
// list. A transaction id that does not belong to userID updates nothing; that
// is not reported as an error.
func (r *PostgresRepository) UpdateTransaction(
	ctx context.Context,
	userID, transactionID int,
	date, amount, tags string,
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	query := `
		UPDATE transactions
		SET date = $1, amount = $2
		WHERE user_id = $3 AND transaction_id = $4
	`

	_, err = tx.ExecContext(ctx, query, timeline.Reverse(date), amount, userID, transactionID)
	if err != nil {
		return err
	}

	// Replace tags: delete all prior rows, re-insert the new ordered list
	_, err = tx.ExecContext(ctx,
		`DELETE FROM transaction_tags WHERE user_id = $1 AND transaction_id = $2`,
		userID, transactionID)
	if err != nil {
		return err
	}

	err = insertTagsTx(ctx, tx, userID, transactionID, tags)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) DeleteTransaction(ctx context.Context, userID, transactionID int) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE user_id = $1 AND transaction_id = $2`,
		userID, transactionID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// ListTransactions returns all of a user's transactions sorted by
// (chronological date, transaction id). Lexical order on the stored date
// column is chronological order, so the sort happens in SQL. Tags come back
// space-joined as "#tag" tokens in position order.
func (r *PostgresRepository) ListTransactions(ctx context.Context, userID int) ([]models.Transaction, error) {
	query := `
		SELECT
			t.transaction_id,
			t.date,
			t.amount,
			COALESCE(string_agg('#' || tags.tag, ' ' ORDER BY tags.tag_position), '') AS tags
		FROM transactions t
		LEFT JOIN transaction_tags tags
			ON t.user_id = tags.user_id AND t.transaction_id = tags.transaction_id
		WHERE t.user_id = $1
		GROUP BY t.transaction_id, t.date, t.amount
		ORDER BY t.date, t.transaction_id
	`

	var transactions []models.Transaction
	err := r.db.SelectContext(ctx, &transactions, query, userID)
	if err != nil {
		return nil, err
	}

	// Dates come out of storage reversed
	for i := range transactions {
		transactions[i].Date = timeline.Reverse(transactions[i].Date)
	}

	return transactions, nil
}

// insertTagsTx parses the tag string and inserts one row per tag with its
// 0-based position, inside the caller's database transaction.
func insertTagsTx(ctx context.Context, tx *sql.Tx, userID, transactionID int, tags string) error {
	query := `
		INSERT INTO transaction_tags (user_id, transaction_id, tag, tag_position)
		VALUES ($1, $2, $3, $4)
	`

	for position, tag := range validation.ParseTags(tags) {
		if _, err := tx.ExecContext(ctx, query, userID, transactionID, tag, position); err != nil {
			return err
		}
	}

	return nil
}

// Aggregation

// SumAmounts totals the amounts of the user's transactions dated within
// [startDate, endDate] (inclusive, wire-form dates) whose sign matches kind.
// A non-empty tagFilter restricts the total to transactions carrying every
// filter tag; a transaction missing even one is excluded. The result is
// rounded to 4 decimal places, half away from zero, and is zero when nothing
// matches.
//
// Only two query shapes exist: no filter, and N-tag filter. The tag count is
// the only dynamic part of the SQL text; every value travels as a parameter.
func (r *PostgresRepository) SumAmounts(
	ctx context.Context,
	userID int,
	kind AmountKind,
	startDate, endDate, tagFilter string,
) (decimal.Decimal, error) {
	tagList := validation.ParseTags(tagFilter)

	var (
		query string
		args  []interface{}
	)

	if len(tagList) == 0 {
		query = `
			SELECT COALESCE(SUM(CAST(amount AS NUMERIC)), 0)
			FROM transactions
			WHERE user_id = $1
				AND date >= $2 AND date <= $3
				AND amount LIKE $4
		`
		args = []interface{}{userID, timeline.Reverse(startDate), timeline.Reverse(endDate), kind.signPattern()}
	} else {
		placeholders := make([]string, len(tagList))
		args = []interface{}{userID, timeline.Reverse(startDate), timeline.Reverse(endDate), kind.signPattern()}
		for i, tag := range tagList {
			placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
			args = append(args, tag)
		}
		args = append(args, len(tagList))

		// Group matched tag rows per transaction and require the count of
		// distinct matched filter tags to equal the filter's cardinality:
		// set containment, not any-match.
		query = fmt.Sprintf(`
			SELECT COALESCE(SUM(CAST(amount AS NUMERIC)), 0)
			FROM (
				SELECT t.transaction_id, t.amount
				FROM transactions t
				JOIN transaction_tags tags
					ON t.user_id = tags.user_id AND t.transaction_id = tags.transaction_id
				WHERE t.user_id = $1
					AND t.date >= $2 AND t.date <= $3
					AND t.amount LIKE $4
					AND tags.tag IN (%s)
				GROUP BY t.transaction_id, t.amount
				HAVING COUNT(DISTINCT tags.tag) = $%d
			) matched
		`, strings.Join(placeholders, ", "), len(args))
	}

	var total string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}

	sum, err := decimal.NewFromString(total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed sum from database: %w", err)
	}

	// Round half away from zero, which is decimal's Round mode, to keep
	// display free of floating-point artifacts.
	return sum.Round(4), nil
}
