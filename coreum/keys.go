package coreum

import "cosmossdk.io/collections"

const (
	// DefaultCoinDenom is the native fee denom of the simulated chain.
	DefaultCoinDenom = "ucore"
	// DefaultCreationFee is burned from the issuer on token issuance.
	DefaultCreationFee = "10000000" + DefaultCoinDenom
)

// Message type URLs handled by the token factory.
const (
	MsgIssueTypeURL      = "/coreum.asset.ft.v1.MsgIssue"
	MsgMintTypeURL       = "/coreum.asset.ft.v1.MsgMint"
	MsgBurnTypeURL       = "/coreum.asset.ft.v1.MsgBurn"
	MsgIssueClassTypeURL = "/coreum.asset.nft.v1.MsgIssueClass"
	MsgNFTMintTypeURL    = "/coreum.asset.nft.v1.MsgMint"
	MsgNFTBurnTypeURL    = "/coreum.asset.nft.v1.MsgBurn"
	MsgNFTSendTypeURL    = "/cosmos.nft.v1beta1.MsgSend"
)

// Query paths answered by the token factory's stargate surface.
const (
	QueryTokenPath   = "/coreum.asset.ft.v1.Query/Token"
	QueryTokensPath  = "/coreum.asset.ft.v1.Query/Tokens"
	QueryClassPath   = "/coreum.asset.nft.v1.Query/Class"
	QueryClassesPath = "/coreum.asset.nft.v1.Query/Classes"
	QueryNFTPath     = "/cosmos.nft.v1beta1.Query/NFT"
	QueryNFTsPath    = "/cosmos.nft.v1beta1.Query/NFTs"
	QueryOwnerPath   = "/cosmos.nft.v1beta1.Query/Owner"
)

// Collection prefixes for records kept in the session store.
var (
	IssuedTokensPrefix = collections.NewPrefix(1)
	NFTClassesPrefix   = collections.NewPrefix(2)
	MintedNFTsPrefix   = collections.NewPrefix(3)
)

const (
	IssuedTokensName = "coreum_assetft_issued"
	NFTClassesName   = "coreum_assetnft_issued_classes"
	MintedNFTsName   = "coreum_assetnft_minted"
)
