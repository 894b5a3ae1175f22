package client

import (
	"github.com/fintrack-app/fintrack/internal/models"
	"github.com/fintrack-app/fintrack/internal/timeline"
)

// The transaction list is kept sorted ascending by (chronological date,
// transaction id), lower id first on equal dates, with no duplicate ids.
// All operations return a new slice and leave their inputs untouched.

// Merge combines two sequences already sorted by the same key into one,
// in linear time. On equal transaction ids the incoming element is dropped
// and the existing one kept. That keeps a re-fetch from disturbing the list,
// but it also means Merge never replaces content; callers that want the new
// data must go through Update.
func Merge(existing, incoming []models.Transaction) []models.Transaction {
	merged := make([]models.Transaction, 0, len(existing)+len(incoming))

	i, j := 0, 0
	for i < len(existing) && j < len(incoming) {
		switch timeline.Compare(
			existing[i].Date, existing[i].TransactionID,
			incoming[j].Date, incoming[j].TransactionID,
		) {
		case 0:
			// Duplicate id: keep the existing element
			j++
		case -1:
			merged = append(merged, existing[i])
			i++
		default:
			merged = append(merged, incoming[j])
			j++
		}
	}
	merged = append(merged, existing[i:]...)
	merged = append(merged, incoming[j:]...)

	return merged
}

// Remove drops the transaction with the given id. Removing an absent id is a
// no-op.
func Remove(list []models.Transaction, transactionID int) []models.Transaction {
	filtered := make([]models.Transaction, 0, len(list))
	for _, transaction := range list {
		if transaction.TransactionID != transactionID {
			filtered = append(filtered, transaction)
		}
	}
	return filtered
}

// Update replaces the transaction with the same id, repositioning it if its
// date changed: remove, then merge the single element back in.
func Update(list []models.Transaction, updated models.Transaction) []models.Transaction {
	return Merge(Remove(list, updated.TransactionID), []models.Transaction{updated})
}
