// Package tokenfactory simulates the generic-chain token factory
// module: permissionless creation of "factory/{creator}/{subdenom}"
// denoms with creator-gated mint and burn, backed by the host ledger's
// bank subsystem.
package tokenfactory

import (
	"context"
	"encoding/json"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/simgate/simgate/denom"
	"github.com/simgate/simgate/types"
)

const (
	// DefaultCoinDenom is the native fee denom of the simulated chain.
	DefaultCoinDenom = "uosmo"
	// DefaultCreationFee is burned from the creator on denom creation.
	DefaultCreationFee = "10000000" + DefaultCoinDenom
)

// TokenFactory simulates the osmosis-style tokenfactory module. It
// keeps no records of its own: a denom exists exactly when its supply
// in the bank subsystem is nonzero.
type TokenFactory struct {
	ModuleDenomPrefix string
	MaxSubdenomLen    int
	MaxHRPLen         int
	MaxCreatorLen     int
	DenomCreationFee  string
}

var _ types.StargateModule = (*TokenFactory)(nil)

// New creates a TokenFactory with the given parameters.
func New(prefix string, maxSubdenomLen, maxHRPLen, maxCreatorLen int, denomCreationFee string) *TokenFactory {
	return &TokenFactory{
		ModuleDenomPrefix: prefix,
		MaxSubdenomLen:    maxSubdenomLen,
		MaxHRPLen:         maxHRPLen,
		MaxCreatorLen:     maxCreatorLen,
		DenomCreationFee:  denomCreationFee,
	}
}

// NewDefault creates a TokenFactory with the chain's default parameters.
func NewDefault() *TokenFactory {
	return New("factory", 32, 16, 59+16, DefaultCreationFee)
}

// Execute routes a typed envelope to the matching handler.
func (tf *TokenFactory) Execute(ctx context.Context, rt types.Router, block types.BlockInfo, sender string, msg wasmvmtypes.AnyMsg) (*types.AppResponse, error) {
	switch msg.TypeURL {
	case MsgCreateDenomTypeURL:
		return tf.createDenom(ctx, rt, sender, msg.Value)
	case MsgMintTypeURL:
		return tf.mint(ctx, rt, sender, msg.Value)
	case MsgBurnTypeURL:
		return tf.burn(ctx, rt, sender, msg.Value)
	default:
		return nil, errorsmod.Wrapf(types.ErrUnknownMessageType, "Unknown message type %s", msg.TypeURL)
	}
}

// Query rejects all stargate queries; the module has no query surface.
func (tf *TokenFactory) Query(_ context.Context, _ types.Querier, _ types.BlockInfo, req wasmvmtypes.StargateQuery) ([]byte, error) {
	return nil, errorsmod.Wrapf(types.ErrUnexpectedQuery, "path=%s, data=%X", req.Path, req.Data)
}

// Sudo is unused by the token factory.
func (tf *TokenFactory) Sudo(context.Context, types.Router, types.BlockInfo, []byte) (*types.AppResponse, error) {
	return &types.AppResponse{}, nil
}

func (tf *TokenFactory) createDenom(ctx context.Context, rt types.Router, sender string, value []byte) (*types.AppResponse, error) {
	var msg MsgCreateDenom
	if err := msg.Unmarshal(value); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode MsgCreateDenom: %v", err)
	}

	if len(msg.Subdenom) > tf.MaxSubdenomLen {
		return nil, errorsmod.Wrapf(types.ErrValidation, "Subdenom length is too long, max length is %d", tf.MaxSubdenomLen)
	}
	if len(msg.Sender) > tf.MaxCreatorLen {
		return nil, errorsmod.Wrapf(types.ErrValidation, "Creator length is too long, max length is %d", tf.MaxCreatorLen)
	}
	if strings.Contains(msg.Sender, "/") {
		return nil, errorsmod.Wrap(types.ErrValidation, "Invalid creator address, creator address cannot contains '/'")
	}
	if msg.Sender != sender {
		return nil, errorsmod.Wrap(types.ErrValidation, "Invalid creator address, creator address must be the same as the sender")
	}

	newDenom := tf.ModuleDenomPrefix + "/" + msg.Sender + "/" + msg.Subdenom

	supply, err := querySupply(ctx, rt, newDenom)
	if err != nil {
		return nil, err
	}
	if !supply.IsZero() {
		return nil, errorsmod.Wrap(types.ErrValidation, "Subdenom already exists")
	}

	fee, err := denom.ParseCoin(tf.DenomCreationFee)
	if err != nil {
		return nil, err
	}
	if _, err := rt.Execute(ctx, sender, burnMsg(fee.Denom, fee.Amount.String())); err != nil {
		return nil, err
	}

	data, err := (&MsgCreateDenomResponse{NewTokenDenom: newDenom}).Marshal()
	if err != nil {
		return nil, err
	}

	res := &types.AppResponse{Data: data}
	res.AppendEvent(sdk.NewEvent("create_denom",
		sdk.NewAttribute("creator", msg.Sender),
		sdk.NewAttribute("new_token_denom", newDenom),
	))
	return res, nil
}

func (tf *TokenFactory) mint(ctx context.Context, rt types.Router, sender string, value []byte) (*types.AppResponse, error) {
	var msg MsgMint
	if err := msg.Unmarshal(value); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode MsgMint: %v", err)
	}
	if msg.Amount == nil {
		return nil, errorsmod.Wrap(types.ErrValidation, "missing amount")
	}
	tokenDenom := msg.Amount.Denom

	if err := tf.authorizeFactoryDenom(tokenDenom, sender, msg.Sender, "mint"); err != nil {
		return nil, err
	}

	amount := msg.Amount.Amount
	if amount.IsNil() || amount.IsZero() {
		return nil, errorsmod.Wrap(types.ErrValidation, "Invalid zero amount")
	}

	recipient := msg.MintToAddress
	if recipient == "" {
		recipient = msg.Sender
	}

	if _, err := rt.Sudo(ctx, types.SudoMsg{Bank: &types.BankSudo{Mint: &types.BankMintSudo{
		ToAddress: recipient,
		Amount:    []wasmvmtypes.Coin{{Denom: tokenDenom, Amount: amount.String()}},
	}}}); err != nil {
		return nil, err
	}

	data, err := (&MsgMintResponse{}).Marshal()
	if err != nil {
		return nil, err
	}

	res := &types.AppResponse{Data: data}
	res.AppendEvent(sdk.NewEvent("tf_mint",
		sdk.NewAttribute("sender", msg.Sender),
		sdk.NewAttribute("mint_to_address", msg.MintToAddress),
		sdk.NewAttribute("recipient", recipient),
		sdk.NewAttribute("denom", tokenDenom),
		sdk.NewAttribute("amount", amount.String()),
	))
	return res, nil
}

func (tf *TokenFactory) burn(ctx context.Context, rt types.Router, sender string, value []byte) (*types.AppResponse, error) {
	var msg MsgBurn
	if err := msg.Unmarshal(value); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode MsgBurn: %v", err)
	}
	if msg.Amount == nil {
		return nil, errorsmod.Wrap(types.ErrValidation, "missing amount")
	}
	tokenDenom := msg.Amount.Denom

	if err := tf.authorizeFactoryDenom(tokenDenom, sender, msg.Sender, "burn"); err != nil {
		return nil, err
	}

	amount := msg.Amount.Amount
	if amount.IsNil() || amount.IsZero() {
		return nil, errorsmod.Wrap(types.ErrValidation, "Invalid zero amount")
	}

	if _, err := rt.Execute(ctx, sender, burnMsg(tokenDenom, amount.String())); err != nil {
		return nil, err
	}

	data, err := (&MsgBurnResponse{}).Marshal()
	if err != nil {
		return nil, err
	}

	res := &types.AppResponse{Data: data}
	res.AppendEvent(sdk.NewEvent("tf_burn",
		sdk.NewAttribute("burn_from_address", sender),
		sdk.NewAttribute("amount", amount.String()),
	))
	return res, nil
}

// authorizeFactoryDenom checks that the denom names the transaction
// sender as its creator and that the declared message sender matches.
// The shape check joins its two conditions with AND, so a malformed
// denom that still starts with the module prefix passes it; this
// matches the live module's behavior.
func (tf *TokenFactory) authorizeFactoryDenom(tokenDenom, sender, msgSender, op string) error {
	parts := strings.Split(tokenDenom, "/")
	if len(parts) != 3 && parts[0] != tf.ModuleDenomPrefix {
		return errorsmod.Wrap(types.ErrValidation, "Invalid denom")
	}
	if len(parts) < 2 {
		return errorsmod.Wrap(types.ErrValidation, "Invalid denom")
	}
	if parts[1] != sender {
		return errorsmod.Wrapf(types.ErrUnauthorized, "Unauthorized %s. Not the creator of the denom.", op)
	}
	if sender != msgSender {
		return errorsmod.Wrap(types.ErrUnauthorized, "Invalid sender. Sender in msg must be same as sender of transaction.")
	}
	return nil
}

func burnMsg(tokenDenom, amount string) wasmvmtypes.CosmosMsg {
	return wasmvmtypes.CosmosMsg{Bank: &wasmvmtypes.BankMsg{Burn: &wasmvmtypes.BurnMsg{
		Amount: []wasmvmtypes.Coin{{Denom: tokenDenom, Amount: amount}},
	}}}
}

// querySupply asks the host ledger for the current supply of a denom.
func querySupply(ctx context.Context, rt types.Router, tokenDenom string) (sdkmath.Int, error) {
	raw, err := rt.Query(ctx, wasmvmtypes.QueryRequest{Bank: &wasmvmtypes.BankQuery{
		Supply: &wasmvmtypes.SupplyQuery{Denom: tokenDenom},
	}})
	if err != nil {
		return sdkmath.Int{}, err
	}
	var resp wasmvmtypes.SupplyResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return sdkmath.Int{}, errorsmod.Wrapf(types.ErrDecode, "failed to decode supply response: %v", err)
	}
	if resp.Amount.Amount == "" {
		return sdkmath.ZeroInt(), nil
	}
	amt, ok := sdkmath.NewIntFromString(resp.Amount.Amount)
	if !ok {
		return sdkmath.Int{}, errorsmod.Wrapf(types.ErrDecode, "invalid supply amount %q", resp.Amount.Amount)
	}
	return amt, nil
}
