// Package archnode exposes the Arch node's remote procedures as typed
// method calls on top of the rpc dispatcher.
package archnode

import (
	"context"
	"encoding/json"
)

// Caller is the dispatch surface the typed methods delegate to. It is
// implemented by rpc.Client.
type Caller interface {
	Call(ctx context.Context, result interface{}, method string, params ...interface{}) error
}

// Node exposes the Arch node's RPC interface as typed methods. Each method
// is a thin delegation to the underlying Caller with a fixed method name;
// payload internals are passed through verbatim and never interpreted.
type Node struct {
	caller Caller
}

// New returns a Node dispatching through the given caller.
func New(caller Caller) *Node {
	return &Node{caller: caller}
}

// ReadAccountInfo retrieves information for the account with the given
// public key.
func (n *Node) ReadAccountInfo(ctx context.Context, pubkey Pubkey) (*AccountInfo, error) {
	var info AccountInfo
	if err := n.caller.Call(ctx, &info, "read_account_info", pubkey); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetAccountAddress retrieves the Bitcoin address for the account with the
// given public key. The address format depends on the node's network mode.
func (n *Node) GetAccountAddress(ctx context.Context, pubkey Pubkey) (string, error) {
	var address string
	if err := n.caller.Call(ctx, &address, "get_account_address", pubkey); err != nil {
		return "", err
	}
	return address, nil
}

// GetProgramAccounts fetches all accounts owned by the given program ID.
// Filters are optional and appended to the params only when present.
func (n *Node) GetProgramAccounts(ctx context.Context, programID Pubkey, filters []AccountFilter) ([]ProgramAccount, error) {
	params := []interface{}{programID}
	if len(filters) > 0 {
		params = append(params, filters)
	}
	var accounts []ProgramAccount
	if err := n.caller.Call(ctx, &accounts, "get_program_accounts", params...); err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetMultipleAccounts retrieves information for multiple accounts in a
// single request. The node returns entries in the same order as the keys.
func (n *Node) GetMultipleAccounts(ctx context.Context, pubkeys []Pubkey) ([]*AccountInfo, error) {
	var accounts []*AccountInfo
	if err := n.caller.Call(ctx, &accounts, "get_multiple_accounts", pubkeys); err != nil {
		return nil, err
	}
	return accounts, nil
}

// SendTransaction submits a single transaction and returns its ID.
func (n *Node) SendTransaction(ctx context.Context, tx RuntimeTransaction) (string, error) {
	var txid string
	if err := n.caller.Call(ctx, &txid, "send_transaction", tx); err != nil {
		return "", err
	}
	return txid, nil
}

// SendTransactions submits multiple transactions and returns their IDs.
func (n *Node) SendTransactions(ctx context.Context, txs []RuntimeTransaction) ([]string, error) {
	var txids []string
	if err := n.caller.Call(ctx, &txids, "send_transactions", txs); err != nil {
		return nil, err
	}
	return txids, nil
}

// GetProcessedTransaction retrieves a processed transaction and its status.
func (n *Node) GetProcessedTransaction(ctx context.Context, txid string) (*ProcessedTransaction, error) {
	var tx ProcessedTransaction
	if err := n.caller.Call(ctx, &tx, "get_processed_transaction", txid); err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetBlock retrieves a block by its hash. The filter is optional.
func (n *Node) GetBlock(ctx context.Context, blockHash string, filter *BlockFilter) (json.RawMessage, error) {
	params := []interface{}{blockHash}
	if filter != nil {
		params = append(params, filter)
	}
	var block json.RawMessage
	if err := n.caller.Call(ctx, &block, "get_block", params...); err != nil {
		return nil, err
	}
	return block, nil
}

// GetBlockByHeight retrieves a block by its height. The filter is optional.
func (n *Node) GetBlockByHeight(ctx context.Context, height uint64, filter *BlockFilter) (json.RawMessage, error) {
	params := []interface{}{height}
	if filter != nil {
		params = append(params, filter)
	}
	var block json.RawMessage
	if err := n.caller.Call(ctx, &block, "get_block_by_height", params...); err != nil {
		return nil, err
	}
	return block, nil
}

// GetBlockCount retrieves the current block count.
func (n *Node) GetBlockCount(ctx context.Context) (uint64, error) {
	var count uint64
	if err := n.caller.Call(ctx, &count, "get_block_count"); err != nil {
		return 0, err
	}
	return count, nil
}

// GetBlockHash retrieves the block hash at the given height.
func (n *Node) GetBlockHash(ctx context.Context, height uint64) (string, error) {
	var hash string
	if err := n.caller.Call(ctx, &hash, "get_block_hash", height); err != nil {
		return "", err
	}
	return hash, nil
}

// GetBestBlockHash retrieves the hash of the latest block.
func (n *Node) GetBestBlockHash(ctx context.Context) (string, error) {
	var hash string
	if err := n.caller.Call(ctx, &hash, "get_best_block_hash"); err != nil {
		return "", err
	}
	return hash, nil
}

// IsNodeReady reports whether the node is ready to process requests.
func (n *Node) IsNodeReady(ctx context.Context) (bool, error) {
	var ready bool
	if err := n.caller.Call(ctx, &ready, "is_node_ready"); err != nil {
		return false, err
	}
	return ready, nil
}

// StartDKG initiates the Distributed Key Generation process. The node
// rejects the call unless it is in the WaitingForDkg state.
func (n *Node) StartDKG(ctx context.Context) (json.RawMessage, error) {
	var result json.RawMessage
	if err := n.caller.Call(ctx, &result, "start_dkg"); err != nil {
		return nil, err
	}
	return result, nil
}

// ResetNetwork resets the network state. Only the network leader can
// initiate this.
func (n *Node) ResetNetwork(ctx context.Context) (json.RawMessage, error) {
	var result json.RawMessage
	if err := n.caller.Call(ctx, &result, "reset_network"); err != nil {
		return nil, err
	}
	return result, nil
}
