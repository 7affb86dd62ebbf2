package types

import (
	"context"
	"encoding/json"
	"time"

	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BlockInfo describes the simulated block a call executes in.
type BlockInfo struct {
	Height  int64
	Time    time.Time
	ChainID string
}

// AppResponse is the result of a successful execute or sudo call:
// the events the module emitted plus optional response data bytes.
type AppResponse struct {
	Events sdk.Events
	Data   []byte
}

// AppendEvent adds an event to the response and returns it for chaining.
func (r *AppResponse) AppendEvent(event sdk.Event) *AppResponse {
	r.Events = r.Events.AppendEvent(event)
	return r
}

// SudoMsg is a privileged message routed past normal sender authorization.
type SudoMsg struct {
	Bank *BankSudo `json:"bank,omitempty"`
}

// BankSudo holds the privileged bank operations.
type BankSudo struct {
	Mint *BankMintSudo `json:"mint,omitempty"`
}

// BankMintSudo mints coins out of thin air to an address.
type BankMintSudo struct {
	ToAddress string                              `json:"to_address"`
	Amount    wasmvmtypes.Array[wasmvmtypes.Coin] `json:"amount"`
}

// Router gives a module access to the host ledger engine for the
// duration of a single call. Execute runs a native message as the given
// sender, Query answers a native query with JSON-encoded response
// bytes, and Sudo performs a privileged operation.
type Router interface {
	Execute(ctx context.Context, sender string, msg wasmvmtypes.CosmosMsg) (*AppResponse, error)
	Query(ctx context.Context, req wasmvmtypes.QueryRequest) ([]byte, error)
	Sudo(ctx context.Context, msg SudoMsg) (*AppResponse, error)
}

// Querier is the read-only slice of the Router handed to query handlers.
type Querier interface {
	Query(ctx context.Context, req wasmvmtypes.QueryRequest) ([]byte, error)
}

// StargateModule is implemented by simulated chain modules addressed by
// generic typed envelopes: a type URL plus opaque protobuf payload for
// execute, a query path plus opaque protobuf payload for query.
//
// Calls are synchronous and single-threaded; the keyed record store for
// the session travels in ctx (see WithKVStore). A module must validate
// before it writes so that an error never leaves a partial state change
// visible to later calls.
type StargateModule interface {
	Execute(ctx context.Context, rt Router, block BlockInfo, sender string, msg wasmvmtypes.AnyMsg) (*AppResponse, error)
	Query(ctx context.Context, q Querier, block BlockInfo, req wasmvmtypes.StargateQuery) ([]byte, error)
	Sudo(ctx context.Context, rt Router, block BlockInfo, msg []byte) (*AppResponse, error)
}

// CustomModule is the same dispatch contract for modules addressed by
// the chain's custom JSON message/query types instead of typed
// envelopes.
type CustomModule interface {
	Execute(ctx context.Context, rt Router, block BlockInfo, sender string, msg json.RawMessage) (*AppResponse, error)
	Query(ctx context.Context, q Querier, block BlockInfo, req json.RawMessage) ([]byte, error)
	Sudo(ctx context.Context, rt Router, block BlockInfo, msg []byte) (*AppResponse, error)
}
