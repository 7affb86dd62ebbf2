package coreum_test

import (
	"context"
	"encoding/json"
	"testing"

	"cosmossdk.io/x/nft"
	wasmvmtypes "github.com/CosmWasm/wasmvm/v2/types"
	"github.com/stretchr/testify/suite"

	"github.com/simgate/simgate/coreum"
	"github.com/simgate/simgate/simapp"
	"github.com/simgate/simgate/wire"
)

type QuerySuite struct {
	suite.Suite

	app *simapp.App
	ctx context.Context
	tf  *coreum.TokenFactory
}

func TestQuerySuite(t *testing.T) {
	suite.Run(t, new(QuerySuite))
}

func (s *QuerySuite) SetupTest() {
	s.tf = coreum.NewDefault()
	s.app = simapp.New(
		simapp.WithStargate(s.tf),
		simapp.WithCustom(coreum.NewQueryModule(s.tf)),
	)
	s.ctx = s.app.Context()
}

func (s *QuerySuite) execAny(from, typeURL string, msg wire.Message) {
	value, err := msg.Marshal()
	s.Require().NoError(err)
	_, err = s.app.Execute(s.ctx, from, wasmvmtypes.CosmosMsg{
		Any: &wasmvmtypes.AnyMsg{TypeURL: typeURL, Value: value},
	})
	s.Require().NoError(err)
}

// seed issues one FT, one NFT class and two NFTs owned by different
// accounts.
func (s *QuerySuite) seed() {
	parsed, err := simapp.ParseCoins(coreum.DefaultCreationFee)
	s.Require().NoError(err)
	s.app.FundAccount(issuer, parsed)

	s.execAny(issuer, coreum.MsgIssueTypeURL, &coreum.MsgIssue{
		Issuer:      issuer,
		Symbol:      "SUB",
		Subunit:     "subdenom",
		Precision:   6,
		Description: "test token",
	})
	s.execAny(issuer, coreum.MsgIssueClassTypeURL, &coreum.MsgIssueClass{
		Issuer: issuer,
		Symbol: "NFTClass",
		Name:   "Test class",
	})
	s.execAny(issuer, coreum.MsgNFTMintTypeURL, &coreum.MsgNFTMint{
		Sender:  issuer,
		ClassID: "nftclass-" + issuer,
		ID:      "nft1",
		URI:     "ipfs://nft1",
	})
	s.execAny(issuer, coreum.MsgNFTMintTypeURL, &coreum.MsgNFTMint{
		Sender:    issuer,
		ClassID:   "nftclass-" + issuer,
		ID:        "nft2",
		Recipient: receiver,
	})
}

func (s *QuerySuite) customQuery(req string, out any) {
	s.T().Helper()
	raw, err := s.app.Query(s.ctx, wasmvmtypes.QueryRequest{Custom: []byte(req)})
	s.Require().NoError(err)
	s.Require().NoError(json.Unmarshal(raw, out))
}

func (s *QuerySuite) TestCustomTokenQuery() {
	s.seed()

	var resp struct {
		Token struct {
			Denom       string `json:"denom"`
			Issuer      string `json:"issuer"`
			Symbol      string `json:"symbol"`
			Subunit     string `json:"subunit"`
			Precision   uint32 `json:"precision"`
			Description string `json:"description"`
			BurnRate    string `json:"burn_rate"`
		} `json:"token"`
	}
	s.customQuery(`{"asset_ft":{"token":{"denom":"subdenom-issuer"}}}`, &resp)
	s.Equal("subdenom-issuer", resp.Token.Denom)
	s.Equal(issuer, resp.Token.Issuer)
	s.Equal("SUB", resp.Token.Symbol)
	s.Equal("subdenom", resp.Token.Subunit)
	s.Equal(uint32(6), resp.Token.Precision)
	s.Equal("test token", resp.Token.Description)
	s.Equal("0", resp.Token.BurnRate)
}

func (s *QuerySuite) TestCustomTokenQueryNativeDenom() {
	var resp struct {
		Token struct {
			Denom       string `json:"denom"`
			Symbol      string `json:"symbol"`
			Precision   uint32 `json:"precision"`
			Description string `json:"description"`
		} `json:"token"`
	}
	s.customQuery(`{"asset_ft":{"token":{"denom":"ucore"}}}`, &resp)
	s.Equal("ucore", resp.Token.Denom)
	s.Equal("CORE", resp.Token.Symbol)
	s.Equal(uint32(6), resp.Token.Precision)
	s.Equal("Native Coreum token", resp.Token.Description)
}

func (s *QuerySuite) TestCustomTokenQueryNotFound() {
	_, err := s.app.Query(s.ctx, wasmvmtypes.QueryRequest{
		Custom: []byte(`{"asset_ft":{"token":{"denom":"missing-issuer"}}}`),
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "FT not found for denom `missing-issuer`")
}

func (s *QuerySuite) TestCustomTokensQuery() {
	s.seed()

	var resp struct {
		Tokens []struct {
			Denom string `json:"denom"`
		} `json:"tokens"`
		Pagination struct {
			Total uint64 `json:"total"`
		} `json:"pagination"`
	}
	s.customQuery(`{"asset_ft":{"tokens":{"issuer":"issuer"}}}`, &resp)
	s.Require().Len(resp.Tokens, 1)
	s.Equal("subdenom-issuer", resp.Tokens[0].Denom)

	s.customQuery(`{"asset_ft":{"tokens":{"issuer":"nobody"}}}`, &resp)
	s.Empty(resp.Tokens)
}

func (s *QuerySuite) TestCustomClassQueries() {
	s.seed()

	var classResp struct {
		Class struct {
			ID     string `json:"id"`
			Issuer string `json:"issuer"`
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
		} `json:"class"`
	}
	s.customQuery(`{"asset_nft":{"class":{"id":"nftclass-issuer"}}}`, &classResp)
	s.Equal("nftclass-"+issuer, classResp.Class.ID)
	s.Equal(issuer, classResp.Class.Issuer)
	s.Equal("Test class", classResp.Class.Name)
	s.Equal("NFTClass", classResp.Class.Symbol)

	var classesResp struct {
		Classes []struct {
			ID string `json:"id"`
		} `json:"classes"`
	}
	s.customQuery(`{"asset_nft":{"classes":{"issuer":"issuer"}}}`, &classesResp)
	s.Require().Len(classesResp.Classes, 1)
	s.Equal("nftclass-"+issuer, classesResp.Classes[0].ID)

	_, err := s.app.Query(s.ctx, wasmvmtypes.QueryRequest{
		Custom: []byte(`{"asset_nft":{"class":{"id":"missing-issuer"}}}`),
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "NFT class not found for id `missing-issuer`")
}

func (s *QuerySuite) TestCustomNFTQueries() {
	s.seed()

	var nftResp struct {
		NFT struct {
			ClassID string  `json:"class_id"`
			ID      string  `json:"id"`
			URI     *string `json:"uri"`
		} `json:"nft"`
	}
	s.customQuery(`{"nft":{"nft":{"class_id":"nftclass-issuer","id":"nft1"}}}`, &nftResp)
	s.Equal("nftclass-"+issuer, nftResp.NFT.ClassID)
	s.Equal("nft1", nftResp.NFT.ID)
	s.Require().NotNil(nftResp.NFT.URI)
	s.Equal("ipfs://nft1", *nftResp.NFT.URI)

	var nftsResp struct {
		NFTs []struct {
			ID string `json:"id"`
		} `json:"nfts"`
	}
	s.customQuery(`{"nft":{"nfts":{"class_id":"nftclass-issuer"}}}`, &nftsResp)
	s.Len(nftsResp.NFTs, 2)

	s.customQuery(`{"nft":{"nfts":{"owner":"receiver"}}}`, &nftsResp)
	s.Require().Len(nftsResp.NFTs, 1)
	s.Equal("nft2", nftsResp.NFTs[0].ID)

	var ownerResp struct {
		Owner string `json:"owner"`
	}
	s.customQuery(`{"nft":{"owner":{"class_id":"nftclass-issuer","id":"nft2"}}}`, &ownerResp)
	s.Equal(receiver, ownerResp.Owner)

	// Ownership queries track transfers.
	s.execAny(issuer, coreum.MsgNFTSendTypeURL, &nft.MsgSend{
		ClassId:  "nftclass-" + issuer,
		Id:       "nft1",
		Sender:   issuer,
		Receiver: receiver,
	})
	s.customQuery(`{"nft":{"owner":{"class_id":"nftclass-issuer","id":"nft1"}}}`, &ownerResp)
	s.Equal(receiver, ownerResp.Owner)
	s.customQuery(`{"nft":{"nfts":{"owner":"issuer"}}}`, &nftsResp)
	s.Empty(nftsResp.NFTs)
	s.customQuery(`{"nft":{"nfts":{"owner":"receiver"}}}`, &nftsResp)
	s.Len(nftsResp.NFTs, 2)

	_, err := s.app.Query(s.ctx, wasmvmtypes.QueryRequest{
		Custom: []byte(`{"nft":{"nft":{"class_id":"nftclass-issuer","id":"missing"}}}`),
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "NFT not found for nftclass-issuer/missing")
}

func (s *QuerySuite) TestCustomQueryNotImplemented() {
	tests := []struct {
		name             string
		request          string
		expectedErrorMsg string
	}{
		{
			name:             "unknown category",
			request:          `{"gov":{}}`,
			expectedErrorMsg: "Coreum query not implemented",
		},
		{
			name:             "unknown asset_ft variant",
			request:          `{"asset_ft":{"balance":{}}}`,
			expectedErrorMsg: "Coreum AssetFT query not implemented",
		},
		{
			name:             "unknown asset_nft variant",
			request:          `{"asset_nft":{"frozen":{}}}`,
			expectedErrorMsg: "Coreum AssetNFT query not implemented",
		},
		{
			name:             "unknown nft variant",
			request:          `{"nft":{"supply":{}}}`,
			expectedErrorMsg: "Coreum NFT query not implemented",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			_, err := s.app.Query(s.ctx, wasmvmtypes.QueryRequest{Custom: []byte(tc.request)})
			s.Require().Error(err)
			s.Contains(err.Error(), tc.expectedErrorMsg)
		})
	}
}

func (s *QuerySuite) TestCustomExecuteUnsupported() {
	_, err := s.app.Execute(s.ctx, issuer, wasmvmtypes.CosmosMsg{
		Custom: []byte(`{"anything":{}}`),
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "CoreumQueryModule execute is not implemented")
}

func (s *QuerySuite) stargateQuery(path string, req wire.Message) []byte {
	s.T().Helper()
	data, err := req.Marshal()
	s.Require().NoError(err)
	raw, err := s.app.Query(s.ctx, wasmvmtypes.QueryRequest{
		Stargate: &wasmvmtypes.StargateQuery{Path: path, Data: data},
	})
	s.Require().NoError(err)
	return raw
}

func (s *QuerySuite) TestGRPCTokenQueries() {
	s.seed()

	raw := s.stargateQuery(coreum.QueryTokenPath, &coreum.QueryTokenRequest{Denom: "subdenom-issuer"})
	var tokenResp coreum.QueryTokenResponse
	s.Require().NoError(tokenResp.Unmarshal(raw))
	s.Equal("subdenom-issuer", tokenResp.Token.Denom)
	s.Equal(issuer, tokenResp.Token.Issuer)
	s.Equal("0", tokenResp.Token.BurnRate)

	raw = s.stargateQuery(coreum.QueryTokensPath, &coreum.QueryTokensRequest{Issuer: issuer})
	var tokensResp coreum.QueryTokensResponse
	s.Require().NoError(tokensResp.Unmarshal(raw))
	s.Require().Len(tokensResp.Tokens, 1)
	s.Equal("subdenom-issuer", tokensResp.Tokens[0].Denom)
}

func (s *QuerySuite) TestGRPCClassQueries() {
	s.seed()

	raw := s.stargateQuery(coreum.QueryClassPath, &coreum.QueryClassRequest{ID: "nftclass-" + issuer})
	var classResp coreum.QueryClassResponse
	s.Require().NoError(classResp.Unmarshal(raw))
	s.Equal("nftclass-"+issuer, classResp.Class.ID)
	s.Equal(issuer, classResp.Class.Issuer)

	raw = s.stargateQuery(coreum.QueryClassesPath, &coreum.QueryClassesRequest{Issuer: issuer})
	var classesResp coreum.QueryClassesResponse
	s.Require().NoError(classesResp.Unmarshal(raw))
	s.Require().Len(classesResp.Classes, 1)
	s.Equal("nftclass-"+issuer, classesResp.Classes[0].ID)
}

func (s *QuerySuite) TestGRPCNFTQueries() {
	s.seed()

	raw := s.stargateQuery(coreum.QueryNFTPath, &nft.QueryNFTRequest{ClassId: "nftclass-" + issuer, Id: "nft1"})
	var nftResp nft.QueryNFTResponse
	s.Require().NoError(nftResp.Unmarshal(raw))
	s.Require().NotNil(nftResp.Nft)
	s.Equal("nft1", nftResp.Nft.Id)
	s.Equal("ipfs://nft1", nftResp.Nft.Uri)

	raw = s.stargateQuery(coreum.QueryNFTsPath, &nft.QueryNFTsRequest{Owner: receiver})
	var nftsResp nft.QueryNFTsResponse
	s.Require().NoError(nftsResp.Unmarshal(raw))
	s.Require().Len(nftsResp.Nfts, 1)
	s.Equal("nft2", nftsResp.Nfts[0].Id)

	raw = s.stargateQuery(coreum.QueryOwnerPath, &nft.QueryOwnerRequest{ClassId: "nftclass-" + issuer, Id: "nft2"})
	var ownerResp nft.QueryOwnerResponse
	s.Require().NoError(ownerResp.Unmarshal(raw))
	s.Equal(receiver, ownerResp.Owner)
}

func (s *QuerySuite) TestGRPCUnknownQueryPath() {
	_, err := s.app.Query(s.ctx, wasmvmtypes.QueryRequest{
		Stargate: &wasmvmtypes.StargateQuery{Path: "/coreum.asset.ft.v1.Query/Balance"},
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "unexpected stargate query")
}
