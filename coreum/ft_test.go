package coreum_test

import (
	"context"
	"testing"

	sdkmath "cosmossdk.io/math"
	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/suite"

	"github.com/simgate/simgate/coreum"
	"github.com/simgate/simgate/simapp"
	"github.com/simgate/simgate/types"
	"github.com/simgate/simgate/wire"
)

const (
	sender   = "sender"
	receiver = "receiver"
)

type FTSuite struct {
	suite.Suite

	app *simapp.App
	ctx context.Context
	tf  *coreum.TokenFactory
}

func TestFTSuite(t *testing.T) {
	suite.Run(t, new(FTSuite))
}

func (s *FTSuite) SetupTest() {
	s.tf = coreum.NewDefault()
	s.app = simapp.New(simapp.WithStargate(s.tf))
	s.ctx = s.app.Context()
}

func (s *FTSuite) fund(addr string, coins ...string) {
	parsed, err := simapp.ParseCoins(coins...)
	s.Require().NoError(err)
	s.app.FundAccount(addr, parsed)
}

func (s *FTSuite) execAny(from, typeURL string, msg wire.Message) (*types.AppResponse, error) {
	value, err := msg.Marshal()
	s.Require().NoError(err)
	return s.app.Execute(s.ctx, from, wasmvmtypes.CosmosMsg{
		Any: &wasmvmtypes.AnyMsg{TypeURL: typeURL, Value: value},
	})
}

func (s *FTSuite) assertEvent(res *types.AppResponse, eventType string, attrs ...string) {
	s.T().Helper()
	for _, ev := range res.Events {
		if ev.Type != eventType {
			continue
		}
		got := map[string]string{}
		for _, a := range ev.Attributes {
			got[a.Key] = a.Value
		}
		for i := 0; i+1 < len(attrs); i += 2 {
			s.Equal(attrs[i+1], got[attrs[i]], "attribute %q of event %q", attrs[i], eventType)
		}
		return
	}
	s.Failf("event not found", "no %q event in %v", eventType, res.Events)
}

func (s *FTSuite) issue(from string, msg *coreum.MsgIssue) (*types.AppResponse, error) {
	return s.execAny(from, coreum.MsgIssueTypeURL, msg)
}

func (s *FTSuite) issueDefault(from string) string {
	s.fund(from, coreum.DefaultCreationFee)
	_, err := s.issue(from, &coreum.MsgIssue{
		Issuer:    from,
		Symbol:    "SUB",
		Subunit:   "subdenom",
		Precision: 6,
	})
	s.Require().NoError(err)
	return "subdenom-" + from
}

func (s *FTSuite) TestIssue() {
	tests := []struct {
		name             string
		msg              coreum.MsgIssue
		expectedErrorMsg string
	}{
		{
			name: "valid issuance",
			msg:  coreum.MsgIssue{Issuer: sender, Symbol: "SUB", Subunit: "subdenom", Precision: 6},
		},
		{
			name:             "subunit fails regex",
			msg:              coreum.MsgIssue{Issuer: sender, Symbol: "SUB", Subunit: "1subdenom", Precision: 6},
			expectedErrorMsg: "subunit must match regex format",
		},
		{
			name:             "symbol fails regex",
			msg:              coreum.MsgIssue{Issuer: sender, Symbol: "1SUB", Subunit: "subdenom", Precision: 6},
			expectedErrorMsg: "symbol must match regex format",
		},
		{
			name:             "issuer address contains slash",
			msg:              coreum.MsgIssue{Issuer: "sen/der", Symbol: "SUB", Subunit: "subdenom", Precision: 6},
			expectedErrorMsg: "creator address cannot contains",
		},
		{
			name:             "issuer does not match sender",
			msg:              coreum.MsgIssue{Issuer: "other", Symbol: "SUB", Subunit: "subdenom", Precision: 6},
			expectedErrorMsg: "creator address must be the same as the sender",
		},
		{
			name:             "invalid initial amount",
			msg:              coreum.MsgIssue{Issuer: sender, Symbol: "SUB", Subunit: "subdenom", Precision: 6, InitialAmount: "many"},
			expectedErrorMsg: "invalid initial_amount `many`",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.fund(sender, coreum.DefaultCreationFee)

			res, err := s.issue(sender, &tc.msg)
			if tc.expectedErrorMsg != "" {
				s.Require().Error(err)
				s.Contains(err.Error(), tc.expectedErrorMsg)
				return
			}
			s.Require().NoError(err)

			s.assertEvent(res, "/coreum.asset.ft.v1.EventIssued",
				"denom", "subdenom-"+sender,
				"issuer", sender,
			)
			s.True(s.app.Bank().GetBalance(sender, coreum.DefaultCoinDenom).IsZero())
		})
	}
}

func (s *FTSuite) TestIssueWithInitialAmount() {
	s.fund(sender, coreum.DefaultCreationFee)

	_, err := s.issue(sender, &coreum.MsgIssue{
		Issuer:        sender,
		Symbol:        "SUB",
		Subunit:       "subdenom",
		Precision:     6,
		InitialAmount: "777",
	})
	s.Require().NoError(err)

	s.Equal(sdkmath.NewInt(777), s.app.Bank().GetBalance(sender, "subdenom-"+sender).Amount)

	// The minted supply makes a repeat issuance fail.
	s.fund(sender, coreum.DefaultCreationFee)
	_, err = s.issue(sender, &coreum.MsgIssue{Issuer: sender, Symbol: "SUB", Subunit: "subdenom", Precision: 6})
	s.Require().Error(err)
	s.Contains(err.Error(), "Subdenom already exists")
}

func (s *FTSuite) TestIssueDuplicate() {
	s.issueDefault(sender)
	s.fund(sender, coreum.DefaultCreationFee)

	// A second issuance of the same subunit fails once the denom has supply.
	s.app.FundAccount(sender, sdk.NewCoins(sdk.NewInt64Coin("subdenom-"+sender, 100)))
	_, err := s.issue(sender, &coreum.MsgIssue{Issuer: sender, Symbol: "SUB", Subunit: "subdenom", Precision: 6})
	s.Require().Error(err)
	s.Contains(err.Error(), "Subdenom already exists")
}

func (s *FTSuite) TestFailedIssueLeavesNoState() {
	s.fund(sender, "100ucore")

	_, err := s.issue(sender, &coreum.MsgIssue{Issuer: sender, Symbol: "SUB", Subunit: "subdenom", Precision: 6})
	s.Require().Error(err)
	s.Contains(err.Error(), "Cannot Sub")

	// The failed issuance recorded nothing, so the denom is still
	// unknown to mint and no balance moved.
	_, err = s.execAny(sender, coreum.MsgMintTypeURL, &coreum.MsgFTMint{
		Sender: sender,
		Coin:   &sdk.Coin{Denom: "subdenom-" + sender, Amount: sdkmath.NewInt(1000)},
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "MsgMint for unknown Coreum FT denom `subdenom-"+sender+"`")
	s.True(s.app.Bank().GetBalance(sender, "subdenom-"+sender).Amount.IsZero())
	s.Equal(sdkmath.NewInt(100), s.app.Bank().GetBalance(sender, "ucore").Amount)
}

func (s *FTSuite) TestFailedIssueRestoresFee() {
	s.fund(sender, coreum.DefaultCreationFee)

	_, err := s.issue(sender, &coreum.MsgIssue{
		Issuer:        sender,
		Symbol:        "SUB",
		Subunit:       "subdenom",
		Precision:     6,
		InitialAmount: "many",
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "invalid initial_amount `many`")

	// The fee was burned before the failure and comes back with the
	// rollback.
	s.Equal(sdkmath.NewInt(10000000), s.app.Bank().GetBalance(sender, "ucore").Amount)
	s.Equal(sdkmath.NewInt(10000000), s.app.Bank().GetSupply("ucore").Amount)

	_, err = s.execAny(sender, coreum.MsgMintTypeURL, &coreum.MsgFTMint{
		Sender: sender,
		Coin:   &sdk.Coin{Denom: "subdenom-" + sender, Amount: sdkmath.NewInt(1000)},
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "MsgMint for unknown Coreum FT denom")
}

func (s *FTSuite) TestMint() {
	tests := []struct {
		name             string
		sender           string
		coin             *sdk.Coin
		recipient        string
		expectedErrorMsg string
	}{
		{
			name:      "valid mint to self",
			sender:    sender,
			coin:      &sdk.Coin{Denom: "subdenom-sender", Amount: sdkmath.NewInt(1000)},
			recipient: sender,
		},
		{
			name:      "empty recipient defaults to sender",
			sender:    sender,
			coin:      &sdk.Coin{Denom: "subdenom-sender", Amount: sdkmath.NewInt(1000)},
			recipient: "",
		},
		{
			name:      "mint to another account",
			sender:    sender,
			coin:      &sdk.Coin{Denom: "subdenom-sender", Amount: sdkmath.NewInt(1000)},
			recipient: receiver,
		},
		{
			name:             "missing coin",
			sender:           sender,
			coin:             nil,
			expectedErrorMsg: "MsgMint.coin is None",
		},
		{
			name:             "zero amount",
			sender:           sender,
			coin:             &sdk.Coin{Denom: "subdenom-sender", Amount: sdkmath.ZeroInt()},
			expectedErrorMsg: "Invalid zero amount",
		},
		{
			name:             "sender is not the issuer",
			sender:           receiver,
			coin:             &sdk.Coin{Denom: "subdenom-sender", Amount: sdkmath.NewInt(1000)},
			expectedErrorMsg: "Unauthorized mint. Not the issuer of the denom.",
		},
		{
			name:             "unknown denom",
			sender:           sender,
			coin:             &sdk.Coin{Denom: "other-sender", Amount: sdkmath.NewInt(1000)},
			expectedErrorMsg: "MsgMint for unknown Coreum FT denom `other-sender`",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.issueDefault(sender)

			res, err := s.execAny(tc.sender, coreum.MsgMintTypeURL, &coreum.MsgFTMint{
				Sender:    tc.sender,
				Coin:      tc.coin,
				Recipient: tc.recipient,
			})
			if tc.expectedErrorMsg != "" {
				s.Require().Error(err)
				s.Contains(err.Error(), tc.expectedErrorMsg)
				return
			}
			s.Require().NoError(err)

			recipient := tc.recipient
			if recipient == "" {
				recipient = tc.sender
			}
			s.assertEvent(res, "tf_mint",
				"sender", tc.sender,
				"recipient", recipient,
				"denom", "subdenom-sender",
				"amount", "1000",
			)
			s.Equal(sdkmath.NewInt(1000), s.app.Bank().GetBalance(recipient, "subdenom-sender").Amount)
		})
	}
}

func (s *FTSuite) TestBurn() {
	tests := []struct {
		name             string
		sender           string
		coin             *sdk.Coin
		balance          int64
		expectedErrorMsg string
	}{
		{
			name:    "burn whole balance",
			sender:  sender,
			coin:    &sdk.Coin{Denom: "subdenom-sender", Amount: sdkmath.NewInt(1000)},
			balance: 1000,
		},
		{
			name:             "insufficient balance",
			sender:           sender,
			coin:             &sdk.Coin{Denom: "subdenom-sender", Amount: sdkmath.NewInt(2000)},
			balance:          1000,
			expectedErrorMsg: "Cannot Sub",
		},
		{
			name:             "missing coin",
			sender:           sender,
			coin:             nil,
			expectedErrorMsg: "MsgBurn.coin is None",
		},
		{
			name:             "zero amount",
			sender:           sender,
			coin:             &sdk.Coin{Denom: "subdenom-sender", Amount: sdkmath.ZeroInt()},
			expectedErrorMsg: "Invalid zero amount",
		},
		{
			name:             "sender is not the issuer",
			sender:           receiver,
			coin:             &sdk.Coin{Denom: "subdenom-sender", Amount: sdkmath.NewInt(1000)},
			balance:          1000,
			expectedErrorMsg: "Unauthorized burn. Not the issuer of the denom.",
		},
		{
			name:             "unknown denom",
			sender:           sender,
			coin:             &sdk.Coin{Denom: "other-sender", Amount: sdkmath.NewInt(1000)},
			expectedErrorMsg: "MsgBurn for unknown Coreum FT denom `other-sender`",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.issueDefault(sender)
			if tc.balance > 0 {
				s.app.FundAccount(tc.sender, sdk.NewCoins(sdk.NewInt64Coin("subdenom-"+sender, tc.balance)))
			}

			res, err := s.execAny(tc.sender, coreum.MsgBurnTypeURL, &coreum.MsgFTBurn{
				Sender: tc.sender,
				Coin:   tc.coin,
			})
			if tc.expectedErrorMsg != "" {
				s.Require().Error(err)
				s.Contains(err.Error(), tc.expectedErrorMsg)
				return
			}
			s.Require().NoError(err)

			s.assertEvent(res, "tf_burn",
				"burn_from_address", tc.sender,
				"amount", "1000",
			)
			s.True(s.app.Bank().GetBalance(tc.sender, "subdenom-sender").IsZero())
		})
	}
}

func (s *FTSuite) TestMintDeclaredSenderMismatch() {
	s.issueDefault(sender)

	_, err := s.execAny(sender, coreum.MsgMintTypeURL, &coreum.MsgFTMint{
		Sender: receiver,
		Coin:   &sdk.Coin{Denom: "subdenom-sender", Amount: sdkmath.NewInt(1000)},
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "Sender in msg must be same as sender of transaction")
}

func (s *FTSuite) TestUnknownMessageType() {
	_, err := s.app.Execute(s.ctx, sender, wasmvmtypes.CosmosMsg{
		Any: &wasmvmtypes.AnyMsg{TypeURL: "/coreum.asset.ft.v1.MsgFreeze"},
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "Unknown message type /coreum.asset.ft.v1.MsgFreeze")
}
