package coreum

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/simgate/simgate/denom"
	"github.com/simgate/simgate/types"
)

// subunitRE constrains both the subunit and symbol of an issuance, the
// way the chain validates them.
var subunitRE = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9/:._-]{2,127}$`)

func (tf *TokenFactory) issue(ctx context.Context, rt types.Router, sender string, msg *MsgIssue) (*types.AppResponse, error) {
	if len(msg.Subunit) > tf.MaxSubdenomLen {
		return nil, errorsmod.Wrapf(types.ErrValidation, "Subdenom length is too long, max length is %d", tf.MaxSubdenomLen)
	}
	if len(msg.Issuer) > tf.MaxCreatorLen {
		return nil, errorsmod.Wrapf(types.ErrValidation, "Creator length is too long, max length is %d", tf.MaxCreatorLen)
	}
	if strings.Contains(msg.Issuer, "/") {
		return nil, errorsmod.Wrap(types.ErrValidation, "Invalid creator address, creator address cannot contains '/'")
	}
	if msg.Issuer != sender {
		return nil, errorsmod.Wrap(types.ErrValidation, "Invalid creator address, creator address must be the same as the sender")
	}
	if !subunitRE.MatchString(msg.Subunit) {
		return nil, errorsmod.Wrap(types.ErrValidation, "subunit must match regex format '^[a-zA-Z][a-zA-Z0-9/:._-]{2,127}$': invalid input")
	}
	if !subunitRE.MatchString(msg.Symbol) {
		return nil, errorsmod.Wrap(types.ErrValidation, "symbol must match regex format '^[a-zA-Z][a-zA-Z0-9/:._-]{2,127}$': invalid input")
	}

	newDenom := msg.Denom()

	// The record is written before the supply check; a duplicate
	// issuance still fails the whole transaction, and the router's
	// rollback discards the write.
	if err := tf.issuedTokens.Set(ctx, newDenom, *msg); err != nil {
		return nil, err
	}

	supply, err := querySupply(ctx, rt, newDenom)
	if err != nil {
		return nil, err
	}
	if !supply.IsZero() {
		return nil, errorsmod.Wrap(types.ErrValidation, "Subdenom already exists")
	}

	fee, err := denom.ParseCoreumCoin(tf.DenomCreationFee)
	if err != nil {
		return nil, err
	}
	if _, err := rt.Execute(ctx, sender, burnMsg(fee.Denom, fee.Amount.String())); err != nil {
		return nil, err
	}

	res := &types.AppResponse{}
	if msg.InitialAmount != "" {
		amount, ok := sdkmath.NewIntFromString(msg.InitialAmount)
		if !ok {
			return nil, errorsmod.Wrapf(types.ErrValidation, "invalid initial_amount `%s`", msg.InitialAmount)
		}
		if amount.IsPositive() {
			minted, err := tf.bankMint(ctx, rt, msg.Issuer, newDenom, amount)
			if err != nil {
				return nil, err
			}
			res = minted
		}
	}

	res.AppendEvent(sdk.NewEvent("/coreum.asset.ft.v1.EventIssued",
		sdk.NewAttribute("denom", newDenom),
		sdk.NewAttribute("issuer", msg.Issuer),
	))
	return res, nil
}

func (tf *TokenFactory) mint(ctx context.Context, rt types.Router, sender string, msg *MsgFTMint) (*types.AppResponse, error) {
	if msg.Coin == nil {
		return nil, errorsmod.Wrap(types.ErrValidation, "MsgMint.coin is None")
	}
	tokenDenom := msg.Coin.Denom

	if err := tf.authorizeIssuedDenom(tokenDenom, sender, msg.Sender, "mint"); err != nil {
		return nil, err
	}

	has, err := tf.issuedTokens.Has(ctx, tokenDenom)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, errorsmod.Wrapf(types.ErrNotFound, "MsgMint for unknown Coreum FT denom `%s`", tokenDenom)
	}

	amount := msg.Coin.Amount
	if amount.IsNil() || amount.IsZero() {
		return nil, errorsmod.Wrap(types.ErrValidation, "Invalid zero amount")
	}

	recipient := msg.Recipient
	if recipient == "" {
		recipient = msg.Sender
	}

	res, err := tf.bankMint(ctx, rt, recipient, tokenDenom, amount)
	if err != nil {
		return nil, err
	}

	res.AppendEvent(sdk.NewEvent("tf_mint",
		sdk.NewAttribute("sender", msg.Sender),
		sdk.NewAttribute("recipient", recipient),
		sdk.NewAttribute("denom", tokenDenom),
		sdk.NewAttribute("amount", amount.String()),
	))
	return res, nil
}

func (tf *TokenFactory) burn(ctx context.Context, rt types.Router, sender string, msg *MsgFTBurn) (*types.AppResponse, error) {
	if msg.Coin == nil {
		return nil, errorsmod.Wrap(types.ErrValidation, "MsgBurn.coin is None")
	}
	tokenDenom := msg.Coin.Denom

	if err := tf.authorizeIssuedDenom(tokenDenom, sender, msg.Sender, "burn"); err != nil {
		return nil, err
	}

	has, err := tf.issuedTokens.Has(ctx, tokenDenom)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, errorsmod.Wrapf(types.ErrNotFound, "MsgBurn for unknown Coreum FT denom `%s`", tokenDenom)
	}

	amount := msg.Coin.Amount
	if amount.IsNil() || amount.IsZero() {
		return nil, errorsmod.Wrap(types.ErrValidation, "Invalid zero amount")
	}

	res, err := rt.Execute(ctx, sender, burnMsg(tokenDenom, amount.String()))
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = &types.AppResponse{}
	}

	res.AppendEvent(sdk.NewEvent("tf_burn",
		sdk.NewAttribute("burn_from_address", sender),
		sdk.NewAttribute("amount", amount.String()),
	))
	return res, nil
}

// authorizeIssuedDenom checks that an issued denom names the
// transaction sender as its issuer and that the declared message
// sender matches.
func (tf *TokenFactory) authorizeIssuedDenom(tokenDenom, sender, msgSender, op string) error {
	parts := strings.Split(tokenDenom, "-")
	if len(parts) != 2 {
		return errorsmod.Wrap(types.ErrValidation, "Invalid denom")
	}
	if parts[1] != sender {
		return errorsmod.Wrapf(types.ErrUnauthorized, "Unauthorized %s. Not the issuer of the denom.", op)
	}
	if sender != msgSender {
		return errorsmod.Wrap(types.ErrUnauthorized, "Invalid sender. Sender in msg must be same as sender of transaction.")
	}
	return nil
}

// bankMint mints coins through the host ledger's privileged entry
// point.
func (tf *TokenFactory) bankMint(ctx context.Context, rt types.Router, to, tokenDenom string, amount sdkmath.Int) (*types.AppResponse, error) {
	res, err := rt.Sudo(ctx, types.SudoMsg{Bank: &types.BankSudo{Mint: &types.BankMintSudo{
		ToAddress: to,
		Amount:    []wasmvmtypes.Coin{{Denom: tokenDenom, Amount: amount.String()}},
	}}})
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = &types.AppResponse{}
	}
	return res, nil
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

// tokenView maps an issuance record to its queryable form.
func tokenView(tokenDenom string, issue *MsgIssue) Token {
	return Token{
		Denom:              tokenDenom,
		Issuer:             issue.Issuer,
		Symbol:             issue.Symbol,
		Subunit:            issue.Subunit,
		Precision:          issue.Precision,
		Description:        issue.Description,
		BurnRate:           "0",
		SendCommissionRate: "0",
	}
}

// nativeTokenView is the synthetic descriptor reported for the chain's
// native fee denom, which is never issued through the factory.
func nativeTokenView(tokenDenom string) Token {
	return Token{
		Denom:              tokenDenom,
		Symbol:             "CORE",
		Subunit:            tokenDenom,
		Precision:          6,
		Description:        "Native Coreum token",
		BurnRate:           "0",
		SendCommissionRate: "0",
	}
}

func (tf *TokenFactory) queryToken(ctx context.Context, data []byte) ([]byte, error) {
	var req QueryTokenRequest
	if err := req.Unmarshal(data); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode QueryTokenRequest: %v", err)
	}
	token, err := tf.lookupToken(ctx, req.Denom)
	if err != nil {
		return nil, err
	}
	return (&QueryTokenResponse{Token: token}).Marshal()
}

func (tf *TokenFactory) queryTokens(ctx context.Context, data []byte) ([]byte, error) {
	var req QueryTokensRequest
	if err := req.Unmarshal(data); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode QueryTokensRequest: %v", err)
	}
	tokens, err := tf.listTokens(ctx, req.Issuer)
	if err != nil {
		return nil, err
	}
	return (&QueryTokensResponse{
		Pagination: &query.PageResponse{},
		Tokens:     tokens,
	}).Marshal()
}

// lookupToken resolves a single denom, special-casing the native fee
// denom.
func (tf *TokenFactory) lookupToken(ctx context.Context, tokenDenom string) (Token, error) {
	issue, err := tf.issuedTokens.Get(ctx, tokenDenom)
	switch {
	case err == nil:
		return tokenView(tokenDenom, &issue), nil
	case errors.Is(err, collections.ErrNotFound):
		if tokenDenom == DefaultCoinDenom {
			return nativeTokenView(tokenDenom), nil
		}
		return Token{}, errorsmod.Wrapf(types.ErrNotFound, "FT not found for denom `%s`", tokenDenom)
	default:
		return Token{}, err
	}
}

// listTokens scans the issuance records with an optional issuer filter.
func (tf *TokenFactory) listTokens(ctx context.Context, issuer string) ([]Token, error) {
	var tokens []Token
	err := tf.issuedTokens.Walk(ctx, nil, func(tokenDenom string, issue MsgIssue) (bool, error) {
		if issuer != "" && issue.Issuer != issuer {
			return false, nil
		}
		tokens = append(tokens, tokenView(tokenDenom, &issue))
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}
