// Package denom parses sdk-style coin strings such as "10000000uosmo"
// into an amount and a denom. It is used to interpret configuration
// strings like token issuance fees; parsed values are never persisted.
package denom

import (
	"regexp"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/simgate/simgate/types"
)

var (
	plainRE   = regexp.MustCompile(`^[0-9]+[a-z]+$`)
	ibcRE     = regexp.MustCompile(`^[0-9]+(ibc|IBC)/[0-9A-F]{64}$`)
	factoryRE = regexp.MustCompile(`^[0-9]+factory/[0-9a-z]+/[0-9a-zA-Z]+$`)
	coreumRE  = regexp.MustCompile(`^[0-9]+[a-z0-9]+-[A-Za-z0-9]+$`)
)

// ParseCoin parses a coin string whose denom is a plain lowercase
// denom, an "ibc/<64-hex>" denom, or a "factory/<creator>/<subdenom>"
// denom, each prefixed by a decimal amount with no separator.
func ParseCoin(s string) (sdk.Coin, error) {
	return parse(s, plainRE, ibcRE, factoryRE)
}

// ParseCoreumCoin is ParseCoin extended with the Coreum
// "<subunit>-<issuer>" denom shape.
func ParseCoreumCoin(s string) (sdk.Coin, error) {
	return parse(s, plainRE, coreumRE, ibcRE, factoryRE)
}

func parse(s string, shapes ...*regexp.Regexp) (sdk.Coin, error) {
	matched := false
	for _, re := range shapes {
		if re.MatchString(s) {
			matched = true
			break
		}
	}
	if !matched {
		return sdk.Coin{}, errorsmod.Wrapf(types.ErrValidation, "Invalid sdk string %q", s)
	}

	// The shapes guarantee a leading digit run followed by the denom.
	split := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	amount, ok := sdkmath.NewIntFromString(s[:split])
	if !ok {
		return sdk.Coin{}, errorsmod.Wrapf(types.ErrValidation, "invalid amount in sdk string %q", s)
	}

	return sdk.Coin{Denom: s[split:], Amount: amount}, nil
}
