package intel

import "strings"

const (
	DefaultTransactionDays = 7
	ProspectWindowDays     = 14
)

var callUpKeywords = []string{"recalled", "selected", "contract purchased", "optioned", "promoted"}

var injuryKeywords = []string{"injured list", "disabled list"}

var relevantKeywords = []string{
	"injured list", "disabled list", "recalled", "optioned",
	"designated for assignment", "released", "traded", "signed",
	"selected", "contract purchased", "activated", "transferred",
}

// Transaction is one MLB roster move.
type Transaction struct {
	Type        string `json:"type"`
	Date        string `json:"date"`
	Description string `json:"description"`
	PlayerName  string `json:"player_name"`
	Team        string `json:"team"`
}

type TransactionReport struct {
	Transactions []Transaction `json:"transactions"`
	Days         int           `json:"days"`
	Note         string        `json:"note,omitempty"`
}

type ProspectReport struct {
	Prospects []Transaction `json:"prospects"`
	Note      string        `json:"note,omitempty"`
}

// CallUps keeps call-up style moves.
func CallUps(txs []Transaction) ProspectReport {
	if len(txs) == 0 {
		return ProspectReport{Prospects: []Transaction{}, Note: "No recent transactions found"}
	}
	return ProspectReport{Prospects: filterTransactions(txs, callUpKeywords)}
}

// FantasyRelevant keeps moves that change fantasy availability. When nothing
// matches, every transaction is returned.
func FantasyRelevant(txs []Transaction, days int) TransactionReport {
	if len(txs) == 0 {
		return TransactionReport{Transactions: []Transaction{}, Days: days, Note: "No transactions found"}
	}
	relevant := filterTransactions(txs, relevantKeywords)
	if len(relevant) == 0 {
		relevant = txs
	}
	return TransactionReport{Transactions: relevant, Days: days}
}

// Injuries keeps injured-list placements, transfers and activations.
func Injuries(txs []Transaction, days int) TransactionReport {
	return TransactionReport{Transactions: filterTransactions(txs, injuryKeywords), Days: days}
}

func filterTransactions(txs []Transaction, keywords []string) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		desc := strings.ToLower(tx.Description)
		kind := strings.ToLower(tx.Type)
		for _, kw := range keywords {
			if strings.Contains(desc, kw) || strings.Contains(kind, kw) {
				out = append(out, tx)
				break
			}
		}
	}
	return out
}
