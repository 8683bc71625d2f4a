// Package archsdk is a Go client SDK for the Arch Network node RPC
// interface. It wires the rpc dispatcher and the typed archnode surface
// into a single entry point:
//
//	sdk, err := archsdk.New(rpc.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer sdk.Close()
//
//	count, err := sdk.GetBlockCount(ctx)
package archsdk

import (
	"context"

	"github.com/sirloso/arch-go-sdk/archnode"
	"github.com/sirloso/arch-go-sdk/rpc"
)

// SDK combines the RPC client with the typed node surface. The embedded
// *archnode.Node promotes every remote procedure as a method, so the full
// surface is explicit and checked at compile time.
type SDK struct {
	*archnode.Node

	// Client is the underlying RPC client, exposed for callers that need
	// untyped calls or explicit session control.
	Client *rpc.Client
}

// New returns an SDK for the given config. No connection is opened until
// Connect or the first call.
func New(config rpc.Config) (*SDK, error) {
	client, err := rpc.NewClient(config)
	if err != nil {
		return nil, err
	}
	return &SDK{
		Node:   archnode.New(client),
		Client: client,
	}, nil
}

// Connect opens the session. Idempotent.
func (s *SDK) Connect() error {
	return s.Client.Connect()
}

// Close tears down the session. Idempotent.
func (s *SDK) Close() error {
	return s.Client.Close()
}

// Session runs fn within a connected session and always disconnects
// afterwards, whether or not fn failed.
func (s *SDK) Session(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.Client.Session(ctx, fn)
}
