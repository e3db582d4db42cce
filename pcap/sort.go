package pcap

import (
	"sort"
	"strings"
)

// SortTransactions orders transactions the way the service's web UI
// presents them: pending first, then newest date, highest id, account
// name, signed amount, description, price, and quantity as tie-breakers.
func SortTransactions(transactions []Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return compareTransactions(&transactions[i], &transactions[j]) < 0
	})
}

func compareTransactions(a *Transaction, b *Transaction) int {
	var comparisons = []func(*Transaction, *Transaction) int{
		compareTransactionStatus,
		compareTransactionDate,
		compareTransactionId,
		compareTransactionAccountName,
		compareTransactionAmount,
		compareTransactionDescription,
		compareTransactionPrice,
		compareTransactionQuantity,
	}
	for _, cmp := range comparisons {
		if o := cmp(a, b); o != 0 {
			return o
		}
	}
	return 0
}

func compareTransactionStatus(a *Transaction, b *Transaction) int {
	i := a.Status == TransactionStatus_Pending
	j := b.Status == TransactionStatus_Pending
	switch {
	case i && !j:
		return -1
	case !i && j:
		return 1
	}
	return 0
}

// Dates are ISO formatted, so string order is date order. Newest first.
func compareTransactionDate(a *Transaction, b *Transaction) int {
	return strings.Compare(b.TransactionDate, a.TransactionDate)
}

func compareTransactionId(a *Transaction, b *Transaction) int {
	switch {
	case b.UserTransactionId < a.UserTransactionId:
		return -1
	case b.UserTransactionId > a.UserTransactionId:
		return 1
	}
	return 0
}

func compareTransactionAccountName(a *Transaction, b *Transaction) int {
	return strings.Compare(strings.ToUpper(a.AccountName), strings.ToUpper(b.AccountName))
}

func compareTransactionAmount(a *Transaction, b *Transaction) int {
	return compareFloat(signedAmount(a), signedAmount(b))
}

func signedAmount(t *Transaction) float64 {
	if t.IsCredit {
		return t.Amount
	}
	return -t.Amount
}

func compareTransactionDescription(a *Transaction, b *Transaction) int {
	return strings.Compare(strings.ToUpper(a.Description), strings.ToUpper(b.Description))
}

func compareTransactionPrice(a *Transaction, b *Transaction) int {
	return compareFloatPtr(a.Price, b.Price)
}

func compareTransactionQuantity(a *Transaction, b *Transaction) int {
	return compareFloatPtr(a.Quantity, b.Quantity)
}

func compareFloat(a float64, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Absent values sort before present ones.
func compareFloatPtr(a *float64, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return compareFloat(*a, *b)
}
