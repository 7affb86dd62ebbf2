package simapp

import (
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// BankModule is the in-memory ledger backing a simulation session. It
// tracks per-account balances and the total supply of every denom it
// has seen.
type BankModule struct {
	balances map[string]sdk.Coins
	supply   map[string]sdkmath.Int
}

// NewBankModule creates an empty ledger.
func NewBankModule() *BankModule {
	return &BankModule{
		balances: make(map[string]sdk.Coins),
		supply:   make(map[string]sdkmath.Int),
	}
}

// InitBalance seeds an account and grows supply accordingly. Meant for
// test setup, before any module runs.
func (b *BankModule) InitBalance(addr string, coins sdk.Coins) {
	b.balances[addr] = b.balances[addr].Add(coins...)
	for _, c := range coins {
		b.addSupply(c.Denom, c.Amount)
	}
}

// Mint creates coins on an account, growing supply.
func (b *BankModule) Mint(to string, coins sdk.Coins) {
	b.balances[to] = b.balances[to].Add(coins...)
	for _, c := range coins {
		b.addSupply(c.Denom, c.Amount)
	}
}

// Burn destroys coins held by an account, shrinking supply. Burning
// more than the account holds fails with an insufficient funds error.
func (b *BankModule) Burn(from string, coins sdk.Coins) error {
	if err := b.sub(from, coins); err != nil {
		return err
	}
	for _, c := range coins {
		b.addSupply(c.Denom, c.Amount.Neg())
	}
	return nil
}

// Send moves coins between accounts.
func (b *BankModule) Send(from, to string, coins sdk.Coins) error {
	if err := b.sub(from, coins); err != nil {
		return err
	}
	b.balances[to] = b.balances[to].Add(coins...)
	return nil
}

// GetBalance returns an account's balance of a single denom.
func (b *BankModule) GetBalance(addr, denom string) sdk.Coin {
	return sdk.Coin{Denom: denom, Amount: b.balances[addr].AmountOf(denom)}
}

// GetAllBalances returns every coin an account holds.
func (b *BankModule) GetAllBalances(addr string) sdk.Coins {
	return b.balances[addr]
}

// GetSupply returns the tracked supply of a denom, zero if never seen.
func (b *BankModule) GetSupply(denom string) sdk.Coin {
	amount, ok := b.supply[denom]
	if !ok {
		amount = sdkmath.ZeroInt()
	}
	return sdk.Coin{Denom: denom, Amount: amount}
}

// bankState captures the ledger maps for transactional restore.
// Coins and Int values are never mutated in place, only reassigned,
// so copying the maps is enough.
type bankState struct {
	balances map[string]sdk.Coins
	supply   map[string]sdkmath.Int
}

func (b *BankModule) snapshot() bankState {
	balances := make(map[string]sdk.Coins, len(b.balances))
	for addr, coins := range b.balances {
		balances[addr] = coins
	}
	supply := make(map[string]sdkmath.Int, len(b.supply))
	for d, amount := range b.supply {
		supply[d] = amount
	}
	return bankState{balances: balances, supply: supply}
}

func (b *BankModule) restore(s bankState) {
	b.balances = s.balances
	b.supply = s.supply
}

func (b *BankModule) sub(from string, coins sdk.Coins) error {
	have := b.balances[from]
	for _, c := range coins {
		held := have.AmountOf(c.Denom)
		if held.LT(c.Amount) {
			return errorsmod.Wrapf(sdkerrors.ErrInsufficientFunds,
				"Overflow: Cannot Sub with %s and %s", held, c.Amount)
		}
	}
	b.balances[from] = have.Sub(coins...)
	return nil
}

func (b *BankModule) addSupply(denom string, delta sdkmath.Int) {
	cur, ok := b.supply[denom]
	if !ok {
		cur = sdkmath.ZeroInt()
	}
	b.supply[denom] = cur.Add(delta)
}
