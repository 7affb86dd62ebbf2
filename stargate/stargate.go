// Package stargate implements the unified query bridge: it answers the
// well-known bank and wasm stargate query paths against the host
// ledger and hands everything else to an optional extension module.
package stargate

import (
	"context"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	wasmdtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/cosmos/gogoproto/proto"

	"github.com/simgate/simgate/types"
)

// Query paths answered natively by the bridge. The strings are part of
// the wire contract and must match the chain's gRPC method names
// byte-for-byte.
const (
	QueryAllBalancesPath   = "/cosmos.bank.v1beta1.Query/AllBalances"
	QueryBalancePath       = "/cosmos.bank.v1beta1.Query/Balance"
	QuerySupplyOfPath      = "/cosmos.bank.v1beta1.Query/SupplyOf"
	QueryContractSmartPath = "/cosmwasm.wasm.v1.Query/SmartContractState"
	QueryContractInfoPath  = "/cosmwasm.wasm.v1.Query/ContractInfo"
)

// UnifiedStargate bridges stargate queries onto the host ledger's
// native query surface. Paths it does not know are delegated to Extra
// when one is installed.
type UnifiedStargate struct {
	Extra types.StargateModule
}

var _ types.StargateModule = (*UnifiedStargate)(nil)

// NewWithoutExtra creates a bridge with no extension; unknown paths and
// all executes fail.
func NewWithoutExtra() *UnifiedStargate {
	return &UnifiedStargate{}
}

// NewWithExtra creates a bridge that hands unknown paths, executes, and
// sudo calls to the extension module.
func NewWithExtra(extra types.StargateModule) *UnifiedStargate {
	return &UnifiedStargate{Extra: extra}
}

// Execute delegates to the extension module.
func (us *UnifiedStargate) Execute(ctx context.Context, rt types.Router, block types.BlockInfo, sender string, msg wasmvmtypes.AnyMsg) (*types.AppResponse, error) {
	if us.Extra != nil {
		return us.Extra.Execute(ctx, rt, block, sender, msg)
	}
	return nil, errorsmod.Wrapf(types.ErrUnknownMessageType, "No stargate exec handler for %s", msg.TypeURL)
}

// Sudo delegates to the extension module.
func (us *UnifiedStargate) Sudo(ctx context.Context, rt types.Router, block types.BlockInfo, msg []byte) (*types.AppResponse, error) {
	if us.Extra != nil {
		return us.Extra.Sudo(ctx, rt, block, msg)
	}
	return &types.AppResponse{}, nil
}

// Query answers the well-known paths by re-issuing the request against
// the host ledger and re-encoding the answer in the path's protobuf
// response shape. Unknown paths go to the extension module.
func (us *UnifiedStargate) Query(ctx context.Context, q types.Querier, block types.BlockInfo, req wasmvmtypes.StargateQuery) ([]byte, error) {
	switch req.Path {
	case QueryAllBalancesPath:
		return us.queryAllBalances(ctx, q, req.Data)
	case QueryBalancePath:
		return us.queryBalance(ctx, q, req.Data)
	case QuerySupplyOfPath:
		return us.querySupplyOf(ctx, q, req.Data)
	case QueryContractSmartPath:
		return us.querySmartContractState(ctx, q, req.Data)
	case QueryContractInfoPath:
		return us.queryContractInfo(ctx, q, req.Data)
	default:
		if us.Extra != nil {
			return us.Extra.Query(ctx, q, block, req)
		}
		return nil, errorsmod.Wrapf(types.ErrUnexpectedQuery, "Unexpected stargate query: path=%s, data=%X", req.Path, req.Data)
	}
}

func (us *UnifiedStargate) queryAllBalances(ctx context.Context, q types.Querier, data []byte) ([]byte, error) {
	var req banktypes.QueryAllBalancesRequest
	if err := req.Unmarshal(data); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode QueryAllBalancesRequest: %v", err)
	}

	raw, err := q.Query(ctx, wasmvmtypes.QueryRequest{Bank: &wasmvmtypes.BankQuery{
		AllBalances: &wasmvmtypes.AllBalancesQuery{Address: req.Address},
	}})
	if err != nil {
		return nil, err
	}
	var resp wasmvmtypes.AllBalancesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode all balances response: %v", err)
	}

	balances := make(sdk.Coins, 0, len(resp.Amount))
	for _, c := range resp.Amount {
		coin, err := coinFromWire(c)
		if err != nil {
			return nil, err
		}
		balances = append(balances, coin)
	}
	return proto.Marshal(&banktypes.QueryAllBalancesResponse{Balances: balances})
}

func (us *UnifiedStargate) queryBalance(ctx context.Context, q types.Querier, data []byte) ([]byte, error) {
	var req banktypes.QueryBalanceRequest
	if err := req.Unmarshal(data); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode QueryBalanceRequest: %v", err)
	}

	raw, err := q.Query(ctx, wasmvmtypes.QueryRequest{Bank: &wasmvmtypes.BankQuery{
		Balance: &wasmvmtypes.BalanceQuery{Address: req.Address, Denom: req.Denom},
	}})
	if err != nil {
		return nil, err
	}
	var resp wasmvmtypes.BalanceResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode balance response: %v", err)
	}

	coin, err := coinFromWire(resp.Amount)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(&banktypes.QueryBalanceResponse{Balance: &coin})
}

func (us *UnifiedStargate) querySupplyOf(ctx context.Context, q types.Querier, data []byte) ([]byte, error) {
	var req banktypes.QuerySupplyOfRequest
	if err := req.Unmarshal(data); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode QuerySupplyOfRequest: %v", err)
	}

	raw, err := q.Query(ctx, wasmvmtypes.QueryRequest{Bank: &wasmvmtypes.BankQuery{
		Supply: &wasmvmtypes.SupplyQuery{Denom: req.Denom},
	}})
	if err != nil {
		return nil, err
	}
	var resp wasmvmtypes.SupplyResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode supply response: %v", err)
	}

	coin, err := coinFromWire(resp.Amount)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(&banktypes.QuerySupplyOfResponse{Amount: coin})
}

func (us *UnifiedStargate) querySmartContractState(ctx context.Context, q types.Querier, data []byte) ([]byte, error) {
	var req wasmdtypes.QuerySmartContractStateRequest
	if err := req.Unmarshal(data); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode QuerySmartContractStateRequest: %v", err)
	}

	raw, err := q.Query(ctx, wasmvmtypes.QueryRequest{Wasm: &wasmvmtypes.WasmQuery{
		Smart: &wasmvmtypes.SmartQuery{ContractAddr: req.Address, Msg: []byte(req.QueryData)},
	}})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(&wasmdtypes.QuerySmartContractStateResponse{Data: raw})
}

func (us *UnifiedStargate) queryContractInfo(ctx context.Context, q types.Querier, data []byte) ([]byte, error) {
	var req wasmdtypes.QueryContractInfoRequest
	if err := req.Unmarshal(data); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode QueryContractInfoRequest: %v", err)
	}

	raw, err := q.Query(ctx, wasmvmtypes.QueryRequest{Wasm: &wasmvmtypes.WasmQuery{
		ContractInfo: &wasmvmtypes.ContractInfoQuery{ContractAddr: req.Address},
	}})
	if err != nil {
		return nil, err
	}
	var resp wasmvmtypes.ContractInfoResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode contract info response: %v", err)
	}

	return proto.Marshal(&wasmdtypes.QueryContractInfoResponse{
		Address: req.Address,
		ContractInfo: wasmdtypes.ContractInfo{
			CodeID:    resp.CodeID,
			Creator:   resp.Creator,
			Admin:     resp.Admin,
			IBCPortID: resp.IBCPort,
		},
	})
}

func coinFromWire(c wasmvmtypes.Coin) (sdk.Coin, error) {
	if c.Amount == "" {
		return sdk.Coin{Denom: c.Denom, Amount: sdkmath.ZeroInt()}, nil
	}
	amount, ok := sdkmath.NewIntFromString(c.Amount)
	if !ok {
		return sdk.Coin{}, errorsmod.Wrapf(types.ErrDecode, "invalid coin amount %q", c.Amount)
	}
	return sdk.Coin{Denom: c.Denom, Amount: amount}, nil
}
