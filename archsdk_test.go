package archsdk_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	archsdk "github.com/sirloso/arch-go-sdk"
	"github.com/sirloso/arch-go-sdk/archnode"
	"github.com/sirloso/arch-go-sdk/internal/fakenode"
	"github.com/sirloso/arch-go-sdk/rpc"
)

func testSDK(t *testing.T, node *fakenode.FakeNode) *archsdk.SDK {
	t.Helper()
	server := httptest.NewServer(node)
	t.Cleanup(server.Close)

	config := rpc.DefaultConfig()
	config.Endpoint = server.URL
	config.RetryDelay = 5 * time.Millisecond

	sdk, err := archsdk.New(config)
	require.NoError(t, err)
	t.Cleanup(func() { sdk.Close() })
	return sdk
}

func TestSDKTypedCalls(t *testing.T) {
	node := fakenode.Node()
	node.Results["get_block_count"] = 99
	node.Results["get_account_address"] = "bcrt1qexample"

	sdk := testSDK(t, node)
	ctx := context.Background()

	count, err := sdk.GetBlockCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), count)

	pubkey, err := archnode.PubkeyFromHex("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	address, err := sdk.GetAccountAddress(ctx, pubkey)
	require.NoError(t, err)
	assert.Equal(t, "bcrt1qexample", address)

	require.Equal(t, 2, node.CallCount())
	// The pubkey travels as a 32-element number array.
	assert.Equal(t, "get_account_address", node.Calls[1].Method)
	require.Len(t, node.Calls[1].Params, 1)
	arr, ok := node.Calls[1].Params[0].([]interface{})
	require.True(t, ok, "pubkey param is %T", node.Calls[1].Params[0])
	assert.Len(t, arr, 32)
}

func TestSDKSurfacesRPCErrors(t *testing.T) {
	node := fakenode.Node()
	node.Errors["start_dkg"] = &rpc.Error{Code: -32603, Message: "DKG already completed"}

	sdk := testSDK(t, node)

	_, err := sdk.StartDKG(context.Background())
	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -32603, rpcErr.Code)
	assert.Equal(t, "DKG already completed", rpcErr.Message)
}

func TestSDKSession(t *testing.T) {
	node := fakenode.Node()
	node.Results["is_node_ready"] = true

	sdk := testSDK(t, node)

	wantErr := errors.New("boom")
	err := sdk.Session(context.Background(), func(ctx context.Context) error {
		ready, err := sdk.IsNodeReady(ctx)
		require.NoError(t, err)
		assert.True(t, ready)
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// The session was released; the next call lazily reconnects.
	ready, err := sdk.IsNodeReady(context.Background())
	require.NoError(t, err)
	assert.True(t, ready)
}
