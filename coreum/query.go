package coreum

import (
	"context"
	"encoding/json"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/simgate/simgate/types"
)

// QueryModule answers the chain's custom JSON queries from the token
// factory's records. It is read-only; execute is not supported.
type QueryModule struct {
	tf *TokenFactory
}

var _ types.CustomModule = (*QueryModule)(nil)

// NewQueryModule creates a QueryModule reading the given factory's
// records.
func NewQueryModule(tf *TokenFactory) *QueryModule {
	return &QueryModule{tf: tf}
}

// customQuery is the decoded shape of a custom query request, one
// category set at a time.
type customQuery struct {
	AssetFT  *assetFTQuery  `json:"asset_ft,omitempty"`
	AssetNFT *assetNFTQuery `json:"asset_nft,omitempty"`
	NFT      *nftQuery      `json:"nft,omitempty"`
}

type assetFTQuery struct {
	Token  *tokenQuery  `json:"token,omitempty"`
	Tokens *tokensQuery `json:"tokens,omitempty"`
}

type tokenQuery struct {
	Denom string `json:"denom"`
}

type tokensQuery struct {
	Issuer string `json:"issuer"`
}

type assetNFTQuery struct {
	Class   *classQuery   `json:"class,omitempty"`
	Classes *classesQuery `json:"classes,omitempty"`
}

type classQuery struct {
	ID string `json:"id"`
}

type classesQuery struct {
	Issuer string `json:"issuer"`
}

type nftQuery struct {
	NFT   *nftByIDQuery `json:"nft,omitempty"`
	NFTs  *nftsQuery    `json:"nfts,omitempty"`
	Owner *nftByIDQuery `json:"owner,omitempty"`
}

type nftByIDQuery struct {
	ClassID string `json:"class_id"`
	ID      string `json:"id"`
}

type nftsQuery struct {
	ClassID *string `json:"class_id,omitempty"`
	Owner   *string `json:"owner,omitempty"`
}

// JSON response shapes.

type pageResponseJSON struct {
	NextKey []byte `json:"next_key"`
	Total   uint64 `json:"total"`
}

type tokenJSON struct {
	Denom              string   `json:"denom"`
	Issuer             string   `json:"issuer"`
	Symbol             string   `json:"symbol"`
	Subunit            string   `json:"subunit"`
	Precision          uint32   `json:"precision"`
	Description        string   `json:"description"`
	GloballyFrozen     bool     `json:"globally_frozen"`
	Features           []uint32 `json:"features"`
	BurnRate           string   `json:"burn_rate"`
	SendCommissionRate string   `json:"send_commission_rate"`
	Version            uint32   `json:"version"`
	URI                string   `json:"uri"`
	URIHash            string   `json:"uri_hash"`
}

type tokenResponseJSON struct {
	Token tokenJSON `json:"token"`
}

type tokensResponseJSON struct {
	Tokens     []tokenJSON      `json:"tokens"`
	Pagination pageResponseJSON `json:"pagination"`
}

type classJSON struct {
	ID          string   `json:"id"`
	Issuer      string   `json:"issuer"`
	Name        string   `json:"name"`
	Symbol      string   `json:"symbol"`
	Description string   `json:"description"`
	URI         string   `json:"uri"`
	URIHash     string   `json:"uri_hash"`
	Features    []uint32 `json:"features"`
	Data        []byte   `json:"data,omitempty"`
	RoyaltyRate string   `json:"royalty_rate"`
}

type classResponseJSON struct {
	Class classJSON `json:"class"`
}

type classesResponseJSON struct {
	Classes    []classJSON      `json:"classes"`
	Pagination pageResponseJSON `json:"pagination"`
}

type nftJSON struct {
	ClassID string  `json:"class_id"`
	ID      string  `json:"id"`
	URI     *string `json:"uri,omitempty"`
	URIHash *string `json:"uri_hash,omitempty"`
	Data    []byte  `json:"data,omitempty"`
}

type nftResponseJSON struct {
	NFT nftJSON `json:"nft"`
}

type nftsResponseJSON struct {
	NFTs       []nftJSON        `json:"nfts"`
	Pagination pageResponseJSON `json:"pagination"`
}

type ownerResponseJSON struct {
	Owner string `json:"owner"`
}

// Execute is not supported; the module only answers queries.
func (qm *QueryModule) Execute(context.Context, types.Router, types.BlockInfo, string, json.RawMessage) (*types.AppResponse, error) {
	return nil, status.Error(codes.Unimplemented, "CoreumQueryModule execute is not implemented")
}

// Query dispatches a custom JSON query by category and variant.
func (qm *QueryModule) Query(ctx context.Context, _ types.Querier, _ types.BlockInfo, req json.RawMessage) ([]byte, error) {
	var q customQuery
	if err := json.Unmarshal(req, &q); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode custom query: %v", err)
	}
	switch {
	case q.NFT != nil:
		return qm.queryNFT(ctx, q.NFT, req)
	case q.AssetNFT != nil:
		return qm.queryAssetNFT(ctx, q.AssetNFT, req)
	case q.AssetFT != nil:
		return qm.queryAssetFT(ctx, q.AssetFT, req)
	default:
		return nil, status.Errorf(codes.Unimplemented, "Coreum query not implemented: %s", string(req))
	}
}

// Sudo is unused by the query module.
func (qm *QueryModule) Sudo(context.Context, types.Router, types.BlockInfo, []byte) (*types.AppResponse, error) {
	return &types.AppResponse{}, nil
}

func (qm *QueryModule) queryNFT(ctx context.Context, q *nftQuery, raw json.RawMessage) ([]byte, error) {
	switch {
	case q.NFT != nil:
		stored, err := qm.lookupNFT(ctx, q.NFT.ClassID, q.NFT.ID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(nftResponseJSON{NFT: nftToJSON(&stored)})
	case q.NFTs != nil:
		classID, owner := "", ""
		if q.NFTs.ClassID != nil {
			classID = *q.NFTs.ClassID
		}
		if q.NFTs.Owner != nil {
			owner = *q.NFTs.Owner
		}
		nfts := []nftJSON{}
		err := qm.tf.mintedNFTs.Walk(ctx, nil, func(_ collections.Pair[string, string], stored StoredNFT) (bool, error) {
			if classID != "" && stored.ClassID != classID {
				return false, nil
			}
			if owner != "" && stored.Owner != owner {
				return false, nil
			}
			nfts = append(nfts, nftToJSON(&stored))
			return false, nil
		})
		if err != nil {
			return nil, err
		}
		return json.Marshal(nftsResponseJSON{NFTs: nfts})
	case q.Owner != nil:
		stored, err := qm.lookupNFT(ctx, q.Owner.ClassID, q.Owner.ID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(ownerResponseJSON{Owner: stored.Owner})
	default:
		return nil, status.Errorf(codes.Unimplemented, "Coreum NFT query not implemented: %s", string(raw))
	}
}

func (qm *QueryModule) queryAssetNFT(ctx context.Context, q *assetNFTQuery, raw json.RawMessage) ([]byte, error) {
	switch {
	case q.Class != nil:
		issue, err := qm.tf.nftClasses.Get(ctx, q.Class.ID)
		if err != nil {
			if errors.Is(err, collections.ErrNotFound) {
				return nil, errorsmod.Wrapf(types.ErrNotFound, "NFT class not found for id `%s`", q.Class.ID)
			}
			return nil, err
		}
		return json.Marshal(classResponseJSON{Class: classToJSON(q.Class.ID, &issue)})
	case q.Classes != nil:
		classes := []classJSON{}
		err := qm.tf.nftClasses.Walk(ctx, nil, func(classID string, issue MsgIssueClass) (bool, error) {
			if q.Classes.Issuer != "" && issue.Issuer != q.Classes.Issuer {
				return false, nil
			}
			classes = append(classes, classToJSON(classID, &issue))
			return false, nil
		})
		if err != nil {
			return nil, err
		}
		return json.Marshal(classesResponseJSON{Classes: classes})
	default:
		return nil, status.Errorf(codes.Unimplemented, "Coreum AssetNFT query not implemented: %s", string(raw))
	}
}

func (qm *QueryModule) queryAssetFT(ctx context.Context, q *assetFTQuery, raw json.RawMessage) ([]byte, error) {
	switch {
	case q.Token != nil:
		token, err := qm.tf.lookupToken(ctx, q.Token.Denom)
		if err != nil {
			return nil, err
		}
		return json.Marshal(tokenResponseJSON{Token: tokenToJSON(&token)})
	case q.Tokens != nil:
		tokens := []tokenJSON{}
		views, err := qm.tf.listTokens(ctx, q.Tokens.Issuer)
		if err != nil {
			return nil, err
		}
		for i := range views {
			tokens = append(tokens, tokenToJSON(&views[i]))
		}
		return json.Marshal(tokensResponseJSON{Tokens: tokens})
	default:
		return nil, status.Errorf(codes.Unimplemented, "Coreum AssetFT query not implemented: %s", string(raw))
	}
}

func (qm *QueryModule) lookupNFT(ctx context.Context, classID, id string) (StoredNFT, error) {
	stored, err := qm.tf.mintedNFTs.Get(ctx, collections.Join(classID, id))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return StoredNFT{}, errorsmod.Wrapf(types.ErrNotFound, "NFT not found for %s/%s", classID, id)
		}
		return StoredNFT{}, err
	}
	return stored, nil
}

func nftToJSON(stored *StoredNFT) nftJSON {
	out := nftJSON{
		ClassID: stored.ClassID,
		ID:      stored.ID,
		Data:    stored.DataValue,
	}
	if stored.URI != "" {
		uri := stored.URI
		out.URI = &uri
	}
	return out
}

func classToJSON(classID string, issue *MsgIssueClass) classJSON {
	features := make([]uint32, 0, len(issue.Features))
	for _, f := range issue.Features {
		features = append(features, uint32(f))
	}
	var data []byte
	if issue.Data != nil {
		data = issue.Data.Value
	}
	return classJSON{
		ID:          classID,
		Issuer:      issue.Issuer,
		Name:        issue.Name,
		Symbol:      issue.Symbol,
		Description: issue.Description,
		URI:         issue.URI,
		URIHash:     issue.URIHash,
		Features:    features,
		Data:        data,
		RoyaltyRate: "0",
	}
}

func tokenToJSON(t *Token) tokenJSON {
	return tokenJSON{
		Denom:              t.Denom,
		Issuer:             t.Issuer,
		Symbol:             t.Symbol,
		Subunit:            t.Subunit,
		Precision:          t.Precision,
		Description:        t.Description,
		Features:           []uint32{},
		BurnRate:           "0",
		SendCommissionRate: "0",
		URI:                t.URI,
		URIHash:            t.URIHash,
	}
}
