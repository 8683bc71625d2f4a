package archnode

import (
	"encoding/json"
	"fmt"
)

// ByteArray is a byte sequence that marshals to and from a JSON array of
// numbers, the node's wire format for raw bytes.
type ByteArray []byte

func (b ByteArray) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(b))
	for i, v := range b {
		ints[i] = int(v)
	}
	return json.Marshal(ints)
}

func (b *ByteArray) UnmarshalJSON(data []byte) error {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	out := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return fmt.Errorf("byte array element out of range: %d", v)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}

// AccountInfo is the account object returned by read_account_info and
// get_multiple_accounts. Data and Tag are opaque payloads owned by the
// account's program; the SDK does not interpret them.
type AccountInfo struct {
	Data         json.RawMessage `json:"data"`
	Owner        Pubkey          `json:"owner"`
	UTXO         json.RawMessage `json:"utxo"`
	IsExecutable bool            `json:"is_executable"`
	Tag          json.RawMessage `json:"tag"`
}

// ProgramAccount is one entry of a get_program_accounts result.
type ProgramAccount struct {
	Pubkey  Pubkey          `json:"pubkey"`
	Account json.RawMessage `json:"account"`
}

// RuntimeTransaction is a transaction as submitted to send_transaction.
// Signatures and Message are passed through verbatim.
type RuntimeTransaction struct {
	Version    int             `json:"version"`
	Signatures json.RawMessage `json:"signatures"`
	Message    json.RawMessage `json:"message"`
}

// ProcessedTransaction is the result of get_processed_transaction.
type ProcessedTransaction struct {
	RuntimeTransaction json.RawMessage `json:"runtime_transaction"`
	Status             json.RawMessage `json:"status"`
	BitcoinTxIDs       []string        `json:"bitcoin_txids"`
}

// AccountFilter narrows a get_program_accounts query. Exactly one of the
// fields should be set; the JSON keys follow the node's convention.
type AccountFilter struct {
	DataSize    *uint64            `json:"DataSize,omitempty"`
	DataContent *DataContentFilter `json:"DataContent,omitempty"`
}

// DataSizeFilter returns a filter matching accounts whose data is exactly
// size bytes long.
func DataSizeFilter(size uint64) AccountFilter {
	return AccountFilter{DataSize: &size}
}

// DataContentFilter matches accounts whose data contains the given bytes
// at the given offset.
type DataContentFilter struct {
	Offset uint64    `json:"offset"`
	Bytes  ByteArray `json:"bytes"`
}

// BlockFilter narrows the transactions included in a get_block or
// get_block_by_height result. The filter object is passed through to the
// node verbatim.
type BlockFilter struct {
	Filter json.RawMessage
}

func (f BlockFilter) MarshalJSON() ([]byte, error) {
	if f.Filter == nil {
		return []byte("null"), nil
	}
	return f.Filter, nil
}

func (f *BlockFilter) UnmarshalJSON(data []byte) error {
	f.Filter = append(f.Filter[:0], data...)
	return nil
}
