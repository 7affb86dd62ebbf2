package coreum_test

import (
	"cosmossdk.io/x/nft"

	"github.com/simgate/simgate/coreum"
	"github.com/simgate/simgate/types"
)

const issuer = "issuer"

func (s *FTSuite) issueClass(from string, features ...int32) string {
	_, err := s.execAny(from, coreum.MsgIssueClassTypeURL, &coreum.MsgIssueClass{
		Issuer:   from,
		Symbol:   "NFTClass",
		Name:     "Test class",
		Features: features,
	})
	s.Require().NoError(err)
	return "nftclass-" + from
}

func (s *FTSuite) mintNFT(from, classID, id, recipient string) (*types.AppResponse, error) {
	return s.execAny(from, coreum.MsgNFTMintTypeURL, &coreum.MsgNFTMint{
		Sender:    from,
		ClassID:   classID,
		ID:        id,
		Recipient: recipient,
	})
}

func (s *FTSuite) sendNFT(from, declared, classID, id, to string) (*types.AppResponse, error) {
	return s.execAny(from, coreum.MsgNFTSendTypeURL, &nft.MsgSend{
		ClassId:  classID,
		Id:       id,
		Sender:   declared,
		Receiver: to,
	})
}

func (s *FTSuite) TestNFTLifecycle() {
	classID := s.issueClass(issuer)

	res, err := s.mintNFT(issuer, classID, "nft1", "")
	s.Require().NoError(err)
	s.assertEvent(res, "/coreum.asset.nft.v1.EventMinted",
		"class_id", classID,
		"id", "nft1",
		"owner", issuer,
	)

	res, err = s.sendNFT(issuer, issuer, classID, "nft1", receiver)
	s.Require().NoError(err)
	s.assertEvent(res, "/coreum.asset.nft.v1.EventSent",
		"class_id", classID,
		"id", "nft1",
		"sender", issuer,
		"receiver", receiver,
	)

	// The new owner burns it.
	res, err = s.execAny(receiver, coreum.MsgNFTBurnTypeURL, &coreum.MsgNFTBurn{
		Sender:  receiver,
		ClassID: classID,
		ID:      "nft1",
	})
	s.Require().NoError(err)
	s.assertEvent(res, "/coreum.asset.nft.v1.EventBurned",
		"class_id", classID,
		"id", "nft1",
		"owner", receiver,
	)

	_, err = s.sendNFT(receiver, receiver, classID, "nft1", issuer)
	s.Require().Error(err)
	s.Contains(err.Error(), "NFT not found: "+classID+"/nft1")
}

func (s *FTSuite) TestIssueClass() {
	res, err := s.execAny(issuer, coreum.MsgIssueClassTypeURL, &coreum.MsgIssueClass{
		Issuer: issuer,
		Symbol: "NFTClass",
	})
	s.Require().NoError(err)
	s.assertEvent(res, "/coreum.asset.nft.v1.EventClassIssued",
		"class_id", "nftclass-"+issuer,
		"issuer", issuer,
	)

	_, err = s.execAny(issuer, coreum.MsgIssueClassTypeURL, &coreum.MsgIssueClass{
		Issuer: issuer,
		Symbol: "NFTClass",
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "NFT class already exists: nftclass-"+issuer)

	_, err = s.execAny(sender, coreum.MsgIssueClassTypeURL, &coreum.MsgIssueClass{
		Issuer: issuer,
		Symbol: "Other",
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "issuer in msg must match sender")
}

func (s *FTSuite) TestMintNFTErrors() {
	classID := s.issueClass(issuer)
	_, err := s.mintNFT(issuer, classID, "nft1", "")
	s.Require().NoError(err)

	tests := []struct {
		name             string
		sender           string
		classID          string
		id               string
		expectedErrorMsg string
	}{
		{
			name:             "duplicate id",
			sender:           issuer,
			classID:          classID,
			id:               "nft1",
			expectedErrorMsg: "NFT already minted: " + classID + "/nft1",
		},
		{
			name:             "unknown class",
			sender:           issuer,
			classID:          "missing-" + issuer,
			id:               "nft2",
			expectedErrorMsg: "MsgMint for unknown Coreum NFT class `missing-issuer`",
		},
		{
			name:             "sender is not the issuer",
			sender:           receiver,
			classID:          classID,
			id:               "nft2",
			expectedErrorMsg: "Unauthorized mint. Not the issuer of class `" + classID + "`",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			_, err := s.mintNFT(tc.sender, tc.classID, tc.id, "")
			s.Require().Error(err)
			s.Contains(err.Error(), tc.expectedErrorMsg)
		})
	}
}

func (s *FTSuite) TestMintNFTDeclaredSenderMismatch() {
	classID := s.issueClass(issuer)

	_, err := s.execAny(issuer, coreum.MsgNFTMintTypeURL, &coreum.MsgNFTMint{
		Sender:  receiver,
		ClassID: classID,
		ID:      "nft1",
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "sender in msg must match tx sender")
}

func (s *FTSuite) TestBurnNFTAuthorization() {
	classID := s.issueClass(issuer)
	_, err := s.mintNFT(issuer, classID, "nft1", receiver)
	s.Require().NoError(err)

	// Without the burning feature the issuer cannot burn another
	// owner's token.
	_, err = s.execAny(issuer, coreum.MsgNFTBurnTypeURL, &coreum.MsgNFTBurn{
		Sender:  issuer,
		ClassID: classID,
		ID:      "nft1",
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "Unauthorized burn. Only owner or issuer can burn "+classID+"/nft1")
}

func (s *FTSuite) TestBurnNFTWithBurningFeature() {
	classID := s.issueClass(issuer, coreum.ClassFeatureBurning)
	_, err := s.mintNFT(issuer, classID, "nft1", receiver)
	s.Require().NoError(err)

	res, err := s.execAny(issuer, coreum.MsgNFTBurnTypeURL, &coreum.MsgNFTBurn{
		Sender:  issuer,
		ClassID: classID,
		ID:      "nft1",
	})
	s.Require().NoError(err)
	s.assertEvent(res, "/coreum.asset.nft.v1.EventBurned",
		"class_id", classID,
		"id", "nft1",
		"owner", issuer,
	)
}

func (s *FTSuite) TestSendNFTErrors() {
	classID := s.issueClass(issuer)
	_, err := s.mintNFT(issuer, classID, "nft1", receiver)
	s.Require().NoError(err)

	_, err = s.sendNFT(issuer, issuer, classID, "nft1", sender)
	s.Require().Error(err)
	s.Contains(err.Error(), "Unauthorized send. Only owner can send "+classID+"/nft1")

	_, err = s.sendNFT(receiver, receiver, classID, "nft1", "")
	s.Require().Error(err)
	s.Contains(err.Error(), "MsgSend.receiver is empty")

	_, err = s.sendNFT(receiver, issuer, classID, "nft1", sender)
	s.Require().Error(err)
	s.Contains(err.Error(), "sender in msg must match tx sender")
}

func (s *FTSuite) TestSendSoulboundNFT() {
	classID := s.issueClass(issuer, coreum.ClassFeatureSoulbound)
	_, err := s.mintNFT(issuer, classID, "nft1", receiver)
	s.Require().NoError(err)

	// The owner of a soulbound token cannot move it.
	_, err = s.sendNFT(receiver, receiver, classID, "nft1", sender)
	s.Require().Error(err)
	s.Contains(err.Error(), "Unauthorized send. Only owner can send "+classID+"/nft1")

	// The issuer can.
	res, err := s.sendNFT(issuer, issuer, classID, "nft1", sender)
	s.Require().NoError(err)
	s.assertEvent(res, "/coreum.asset.nft.v1.EventSent",
		"class_id", classID,
		"id", "nft1",
		"sender", issuer,
		"receiver", sender,
	)
}
