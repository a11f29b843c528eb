package model

// TransactionRecord is one ledger entry as returned by the explorer API.
// Native transfers (txlist) leave ContractAddress and TokenDecimal empty;
// token transfers (tokentx) carry both. Amounts stay integer-as-string to
// avoid floating-point truncation before conversion.
type TransactionRecord struct {
	Hash            string `json:"hash"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	ContractAddress string `json:"contractAddress,omitempty"`
	TokenDecimal    string `json:"tokenDecimal,omitempty"`
	TokenSymbol     string `json:"tokenSymbol,omitempty"`
	BlockNumber     string `json:"blockNumber,omitempty"`
	TimeStamp       string `json:"timeStamp,omitempty"`
}
