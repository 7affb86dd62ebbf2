// Package coreum simulates the Coreum asset modules: fungible token
// issuance ("{subunit}-{issuer}" denoms) with mint and burn, the NFT
// class and token lifecycle, and the matching query surfaces.
package coreum

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/x/nft"
	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"

	"github.com/simgate/simgate/types"
	"github.com/simgate/simgate/wire"
)

// TokenFactory simulates the coreum.asset.ft and coreum.asset.nft
// modules. Issuance records live in the session store; balances and
// supply live in the host ledger's bank subsystem.
type TokenFactory struct {
	ModuleDenomPrefix string
	MaxSubdenomLen    int
	MaxHRPLen         int
	MaxCreatorLen     int
	DenomCreationFee  string

	issuedTokens collections.Map[string, MsgIssue]
	nftClasses   collections.Map[string, MsgIssueClass]
	mintedNFTs   collections.Map[collections.Pair[string, string], StoredNFT]
}

var _ types.StargateModule = (*TokenFactory)(nil)

// New creates a TokenFactory with the given parameters.
func New(prefix string, maxSubdenomLen, maxHRPLen, maxCreatorLen int, denomCreationFee string) *TokenFactory {
	sb := collections.NewSchemaBuilder(types.KVStoreService())
	tf := &TokenFactory{
		ModuleDenomPrefix: prefix,
		MaxSubdenomLen:    maxSubdenomLen,
		MaxHRPLen:         maxHRPLen,
		MaxCreatorLen:     maxCreatorLen,
		DenomCreationFee:  denomCreationFee,

		issuedTokens: collections.NewMap(sb, IssuedTokensPrefix, IssuedTokensName,
			collections.StringKey, wire.CollValue[MsgIssue]()),
		nftClasses: collections.NewMap(sb, NFTClassesPrefix, NFTClassesName,
			collections.StringKey, wire.CollValue[MsgIssueClass]()),
		mintedNFTs: collections.NewMap(sb, MintedNFTsPrefix, MintedNFTsName,
			collections.PairKeyCodec(collections.StringKey, collections.StringKey), wire.CollValue[StoredNFT]()),
	}
	if _, err := sb.Build(); err != nil {
		panic(err)
	}
	return tf
}

// NewDefault creates a TokenFactory with the chain's default parameters.
func NewDefault() *TokenFactory {
	return New("", 32, 16, 59+16, DefaultCreationFee)
}

// Execute routes a typed envelope to the matching handler.
func (tf *TokenFactory) Execute(ctx context.Context, rt types.Router, block types.BlockInfo, sender string, msg wasmvmtypes.AnyMsg) (*types.AppResponse, error) {
	switch msg.TypeURL {
	case MsgIssueTypeURL:
		var m MsgIssue
		if err := m.Unmarshal(msg.Value); err != nil {
			return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode MsgIssue: %v", err)
		}
		return tf.issue(ctx, rt, sender, &m)
	case MsgMintTypeURL:
		var m MsgFTMint
		if err := m.Unmarshal(msg.Value); err != nil {
			return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode MsgMint: %v", err)
		}
		return tf.mint(ctx, rt, sender, &m)
	case MsgBurnTypeURL:
		var m MsgFTBurn
		if err := m.Unmarshal(msg.Value); err != nil {
			return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode MsgBurn: %v", err)
		}
		return tf.burn(ctx, rt, sender, &m)
	case MsgIssueClassTypeURL:
		var m MsgIssueClass
		if err := m.Unmarshal(msg.Value); err != nil {
			return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode MsgIssueClass: %v", err)
		}
		return tf.issueClass(ctx, sender, &m)
	case MsgNFTMintTypeURL:
		var m MsgNFTMint
		if err := m.Unmarshal(msg.Value); err != nil {
			return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode MsgMint (NFT): %v", err)
		}
		return tf.mintNFT(ctx, sender, &m)
	case MsgNFTBurnTypeURL:
		var m MsgNFTBurn
		if err := m.Unmarshal(msg.Value); err != nil {
			return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode MsgBurn (NFT): %v", err)
		}
		return tf.burnNFT(ctx, sender, &m)
	case MsgNFTSendTypeURL:
		var m nft.MsgSend
		if err := m.Unmarshal(msg.Value); err != nil {
			return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode MsgSend (NFT): %v", err)
		}
		return tf.sendNFT(ctx, sender, &m)
	default:
		return nil, errorsmod.Wrapf(types.ErrUnknownMessageType, "Unknown message type %s", msg.TypeURL)
	}
}

// Query answers the module's registered stargate query paths from the
// issuance records.
func (tf *TokenFactory) Query(ctx context.Context, _ types.Querier, _ types.BlockInfo, req wasmvmtypes.StargateQuery) ([]byte, error) {
	switch req.Path {
	case QueryTokenPath:
		return tf.queryToken(ctx, req.Data)
	case QueryTokensPath:
		return tf.queryTokens(ctx, req.Data)
	case QueryClassPath:
		return tf.queryClass(ctx, req.Data)
	case QueryClassesPath:
		return tf.queryClasses(ctx, req.Data)
	case QueryNFTPath:
		return tf.queryNFT(ctx, req.Data)
	case QueryNFTsPath:
		return tf.queryNFTs(ctx, req.Data)
	case QueryOwnerPath:
		return tf.queryOwner(ctx, req.Data)
	default:
		return nil, errorsmod.Wrapf(types.ErrUnexpectedQuery, "path=%s, data=%X", req.Path, req.Data)
	}
}

// Sudo is unused by the token factory.
func (tf *TokenFactory) Sudo(context.Context, types.Router, types.BlockInfo, []byte) (*types.AppResponse, error) {
	return &types.AppResponse{}, nil
}
