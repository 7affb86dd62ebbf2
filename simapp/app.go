// Package simapp is the in-process test host: an in-memory bank, a
// message router, and hook points for the stargate, custom, and wasm
// query surfaces. It stands in for a chain so module behavior can be
// exercised call-by-call from tests.
package simapp

import (
	"context"
	"encoding/json"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	"cosmossdk.io/store/cachekv"
	"cosmossdk.io/store/dbadapter"
	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/simgate/simgate/denom"
	"github.com/simgate/simgate/types"
)

// SmartQueryHandler answers wasm smart contract queries for the
// session.
type SmartQueryHandler func(ctx context.Context, contractAddr string, msg []byte) ([]byte, error)

// ContractInfoHandler answers wasm contract info queries for the
// session.
type ContractInfoHandler func(ctx context.Context, contractAddr string) (*wasmvmtypes.ContractInfoResponse, error)

// App hosts one simulation session. It implements types.Router and
// types.Querier, dispatching native messages to the bank and typed
// envelopes to the installed modules.
type App struct {
	logger log.Logger
	bank   *BankModule
	block  types.BlockInfo
	store  dbadapter.Store

	stargate     types.StargateModule
	custom       types.CustomModule
	smartQuery   SmartQueryHandler
	contractInfo ContractInfoHandler
}

var (
	_ types.Router  = (*App)(nil)
	_ types.Querier = (*App)(nil)
)

// Option configures an App.
type Option func(*App)

// WithStargate installs the module receiving typed envelopes and
// stargate queries.
func WithStargate(m types.StargateModule) Option {
	return func(a *App) { a.stargate = m }
}

// WithCustom installs the module receiving the chain's custom JSON
// messages and queries.
func WithCustom(m types.CustomModule) Option {
	return func(a *App) { a.custom = m }
}

// WithSmartQueryHandler installs the wasm smart query hook.
func WithSmartQueryHandler(h SmartQueryHandler) Option {
	return func(a *App) { a.smartQuery = h }
}

// WithContractInfoHandler installs the wasm contract info hook.
func WithContractInfoHandler(h ContractInfoHandler) Option {
	return func(a *App) { a.contractInfo = h }
}

// WithLogger replaces the default no-op logger.
func WithLogger(l log.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithBlock overrides the simulated block info.
func WithBlock(b types.BlockInfo) Option {
	return func(a *App) { a.block = b }
}

// New creates a session host with an empty ledger and a fresh store.
func New(opts ...Option) *App {
	a := &App{
		logger: log.NewNopLogger(),
		bank:   NewBankModule(),
		block: types.BlockInfo{
			Height:  12345,
			Time:    time.Unix(1571797419, 879305533),
			ChainID: "cosmos-testnet-14002",
		},
		store: dbadapter.Store{DB: dbm.NewMemDB()},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Context returns a call context carrying the session store.
func (a *App) Context() context.Context {
	return types.WithKVStore(context.Background(), a.store)
}

// Bank exposes the ledger for test setup and assertions.
func (a *App) Bank() *BankModule {
	return a.bank
}

// Block returns the simulated block info.
func (a *App) Block() types.BlockInfo {
	return a.block
}

// FundAccount seeds an account balance before a scenario runs.
func (a *App) FundAccount(addr string, coins sdk.Coins) {
	a.bank.InitBalance(addr, coins)
}

type txContextKey struct{}

// transact runs fn against a cache-wrapped store and a ledger
// snapshot, committing both only when fn succeeds. A failed dispatch
// leaves no state change visible. Nested dispatches join the caller's
// transaction instead of opening their own.
func (a *App) transact(ctx context.Context, fn func(context.Context) (*types.AppResponse, error)) (*types.AppResponse, error) {
	if ctx.Value(txContextKey{}) != nil {
		return fn(ctx)
	}
	cached := cachekv.NewStore(a.store)
	saved := a.bank.snapshot()
	ctx = context.WithValue(types.WithKVStore(ctx, cached), txContextKey{}, struct{}{})
	res, err := fn(ctx)
	if err != nil {
		a.bank.restore(saved)
		return nil, err
	}
	cached.Write()
	return res, nil
}

// Execute dispatches a native message as the given sender.
func (a *App) Execute(ctx context.Context, sender string, msg wasmvmtypes.CosmosMsg) (*types.AppResponse, error) {
	return a.transact(ctx, func(ctx context.Context) (*types.AppResponse, error) {
		return a.execute(ctx, sender, msg)
	})
}

func (a *App) execute(ctx context.Context, sender string, msg wasmvmtypes.CosmosMsg) (*types.AppResponse, error) {
	switch {
	case msg.Bank != nil:
		return a.executeBank(sender, msg.Bank)
	case msg.Any != nil:
		if a.stargate == nil {
			return nil, errorsmod.Wrapf(types.ErrUnknownMessageType, "no stargate module installed for %s", msg.Any.TypeURL)
		}
		a.logger.Debug("dispatching stargate message", "sender", sender, "type_url", msg.Any.TypeURL)
		return a.stargate.Execute(ctx, a, a.block, sender, *msg.Any)
	case msg.Custom != nil:
		if a.custom == nil {
			return nil, errorsmod.Wrap(types.ErrUnknownMessageType, "no custom module installed")
		}
		a.logger.Debug("dispatching custom message", "sender", sender)
		return a.custom.Execute(ctx, a, a.block, sender, json.RawMessage(msg.Custom))
	default:
		return nil, errorsmod.Wrap(types.ErrUnknownMessageType, "unsupported message kind")
	}
}

func (a *App) executeBank(sender string, msg *wasmvmtypes.BankMsg) (*types.AppResponse, error) {
	switch {
	case msg.Send != nil:
		coins, err := coinsFromWire(msg.Send.Amount)
		if err != nil {
			return nil, err
		}
		if err := a.bank.Send(sender, msg.Send.ToAddress, coins); err != nil {
			return nil, err
		}
		res := &types.AppResponse{}
		res.AppendEvent(sdk.NewEvent("transfer",
			sdk.NewAttribute("recipient", msg.Send.ToAddress),
			sdk.NewAttribute("sender", sender),
			sdk.NewAttribute("amount", coins.String()),
		))
		return res, nil
	case msg.Burn != nil:
		coins, err := coinsFromWire(msg.Burn.Amount)
		if err != nil {
			return nil, err
		}
		if err := a.bank.Burn(sender, coins); err != nil {
			return nil, err
		}
		return &types.AppResponse{}, nil
	default:
		return nil, errorsmod.Wrap(types.ErrUnknownMessageType, "unsupported bank message")
	}
}

// Query answers a native query with JSON response bytes.
func (a *App) Query(ctx context.Context, req wasmvmtypes.QueryRequest) ([]byte, error) {
	switch {
	case req.Bank != nil:
		return a.queryBank(req.Bank)
	case req.Stargate != nil:
		if a.stargate == nil {
			return nil, errorsmod.Wrapf(types.ErrUnexpectedQuery, "no stargate module installed for %s", req.Stargate.Path)
		}
		a.logger.Debug("dispatching stargate query", "path", req.Stargate.Path)
		return a.stargate.Query(ctx, a, a.block, *req.Stargate)
	case req.Custom != nil:
		if a.custom == nil {
			return nil, errorsmod.Wrap(types.ErrUnexpectedQuery, "no custom module installed")
		}
		return a.custom.Query(ctx, a, a.block, json.RawMessage(req.Custom))
	case req.Wasm != nil:
		return a.queryWasm(ctx, req.Wasm)
	default:
		return nil, errorsmod.Wrap(types.ErrUnexpectedQuery, "unsupported query kind")
	}
}

func (a *App) queryBank(req *wasmvmtypes.BankQuery) ([]byte, error) {
	switch {
	case req.AllBalances != nil:
		balances := a.bank.GetAllBalances(req.AllBalances.Address)
		return json.Marshal(wasmvmtypes.AllBalancesResponse{Amount: coinsToWire(balances)})
	case req.Balance != nil:
		balance := a.bank.GetBalance(req.Balance.Address, req.Balance.Denom)
		return json.Marshal(wasmvmtypes.BalanceResponse{Amount: coinToWire(balance)})
	case req.Supply != nil:
		supply := a.bank.GetSupply(req.Supply.Denom)
		return json.Marshal(wasmvmtypes.SupplyResponse{Amount: coinToWire(supply)})
	default:
		return nil, errorsmod.Wrap(types.ErrUnexpectedQuery, "unsupported bank query")
	}
}

func (a *App) queryWasm(ctx context.Context, req *wasmvmtypes.WasmQuery) ([]byte, error) {
	switch {
	case req.Smart != nil:
		if a.smartQuery == nil {
			return nil, errorsmod.Wrapf(types.ErrUnexpectedQuery, "no smart query handler installed for %s", req.Smart.ContractAddr)
		}
		return a.smartQuery(ctx, req.Smart.ContractAddr, req.Smart.Msg)
	case req.ContractInfo != nil:
		if a.contractInfo == nil {
			return nil, errorsmod.Wrapf(types.ErrUnexpectedQuery, "no contract info handler installed for %s", req.ContractInfo.ContractAddr)
		}
		info, err := a.contractInfo(ctx, req.ContractInfo.ContractAddr)
		if err != nil {
			return nil, err
		}
		return json.Marshal(info)
	default:
		return nil, errorsmod.Wrap(types.ErrUnexpectedQuery, "unsupported wasm query")
	}
}

// Sudo performs a privileged operation, bypassing sender authorization.
func (a *App) Sudo(ctx context.Context, msg types.SudoMsg) (*types.AppResponse, error) {
	return a.transact(ctx, func(context.Context) (*types.AppResponse, error) {
		if msg.Bank == nil || msg.Bank.Mint == nil {
			return nil, errorsmod.Wrap(types.ErrUnknownMessageType, "unsupported sudo message")
		}
		coins, err := coinsFromWire(msg.Bank.Mint.Amount)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("privileged mint", "to", msg.Bank.Mint.ToAddress, "amount", coins.String())
		a.bank.Mint(msg.Bank.Mint.ToAddress, coins)
		return &types.AppResponse{}, nil
	})
}

// ParseCoins converts sdk coin strings like "10000000ucore" for test
// setup, accepting the coreum "{subunit}-{issuer}" shape too.
func ParseCoins(ss ...string) (sdk.Coins, error) {
	var coins sdk.Coins
	for _, s := range ss {
		c, err := denom.ParseCoreumCoin(s)
		if err != nil {
			return nil, err
		}
		coins = coins.Add(c)
	}
	return coins, nil
}

func coinsFromWire(wire []wasmvmtypes.Coin) (sdk.Coins, error) {
	var coins sdk.Coins
	for _, c := range wire {
		amount, ok := sdkmath.NewIntFromString(c.Amount)
		if !ok {
			return nil, errorsmod.Wrapf(types.ErrDecode, "invalid coin amount %q", c.Amount)
		}
		coins = coins.Add(sdk.Coin{Denom: c.Denom, Amount: amount})
	}
	return coins, nil
}

func coinToWire(c sdk.Coin) wasmvmtypes.Coin {
	return wasmvmtypes.Coin{Denom: c.Denom, Amount: c.Amount.String()}
}

func coinsToWire(coins sdk.Coins) []wasmvmtypes.Coin {
	out := make([]wasmvmtypes.Coin, 0, len(coins))
	for _, c := range coins {
		out = append(out, coinToWire(c))
	}
	return out
}
