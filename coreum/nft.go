package coreum

import (
	"context"
	"errors"
	"strings"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/x/nft"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/simgate/simgate/types"
)

func (tf *TokenFactory) issueClass(ctx context.Context, sender string, msg *MsgIssueClass) (*types.AppResponse, error) {
	if msg.Issuer != sender {
		return nil, errorsmod.Wrap(types.ErrUnauthorized, "Invalid issuer. issuer in msg must match sender.")
	}

	classID := strings.ToLower(msg.Symbol) + "-" + msg.Issuer

	has, err := tf.nftClasses.Has(ctx, classID)
	if err != nil {
		return nil, err
	}
	if has {
		return nil, errorsmod.Wrapf(types.ErrValidation, "NFT class already exists: %s", classID)
	}

	if err := tf.nftClasses.Set(ctx, classID, *msg); err != nil {
		return nil, err
	}

	res := &types.AppResponse{}
	res.AppendEvent(sdk.NewEvent("/coreum.asset.nft.v1.EventClassIssued",
		sdk.NewAttribute("class_id", classID),
		sdk.NewAttribute("issuer", msg.Issuer),
	))
	return res, nil
}

func (tf *TokenFactory) mintNFT(ctx context.Context, sender string, msg *MsgNFTMint) (*types.AppResponse, error) {
	if msg.Sender != sender {
		return nil, errorsmod.Wrap(types.ErrUnauthorized, "Invalid sender. sender in msg must match tx sender.")
	}

	class, err := tf.getClass(ctx, msg.ClassID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, errorsmod.Wrapf(types.ErrNotFound, "MsgMint for unknown Coreum NFT class `%s`", msg.ClassID)
		}
		return nil, err
	}

	// Only the issuer may mint.
	if class.Issuer != sender {
		return nil, errorsmod.Wrapf(types.ErrUnauthorized, "Unauthorized mint. Not the issuer of class `%s`", msg.ClassID)
	}

	key := collections.Join(msg.ClassID, msg.ID)
	has, err := tf.mintedNFTs.Has(ctx, key)
	if err != nil {
		return nil, err
	}
	if has {
		return nil, errorsmod.Wrapf(types.ErrValidation, "NFT already minted: %s/%s", msg.ClassID, msg.ID)
	}

	owner := msg.Recipient
	if owner == "" {
		owner = msg.Sender
	}

	stored := StoredNFT{
		ClassID: msg.ClassID,
		ID:      msg.ID,
		Owner:   owner,
		URI:     msg.URI,
	}
	if msg.Data != nil {
		stored.DataTypeURL = msg.Data.TypeUrl
		stored.DataValue = msg.Data.Value
	}

	if err := tf.mintedNFTs.Set(ctx, key, stored); err != nil {
		return nil, err
	}

	res := &types.AppResponse{}
	res.AppendEvent(sdk.NewEvent("/coreum.asset.nft.v1.EventMinted",
		sdk.NewAttribute("class_id", msg.ClassID),
		sdk.NewAttribute("id", msg.ID),
		sdk.NewAttribute("owner", owner),
	))
	return res, nil
}

func (tf *TokenFactory) burnNFT(ctx context.Context, sender string, msg *MsgNFTBurn) (*types.AppResponse, error) {
	if msg.Sender != sender {
		return nil, errorsmod.Wrap(types.ErrUnauthorized, "Invalid sender. sender in msg must match tx sender.")
	}

	class, err := tf.getClass(ctx, msg.ClassID)
	if err != nil {
		return nil, err
	}
	stored, err := tf.getNFT(ctx, msg.ClassID, msg.ID)
	if err != nil {
		return nil, err
	}

	// The owner may always burn; the issuer may burn only when the
	// class was issued with the burning feature.
	issuerMayBurn := class.HasFeature(ClassFeatureBurning) && class.Issuer == sender
	if stored.Owner != sender && !issuerMayBurn {
		return nil, errorsmod.Wrapf(types.ErrUnauthorized, "Unauthorized burn. Only owner or issuer can burn %s/%s", msg.ClassID, msg.ID)
	}

	if err := tf.mintedNFTs.Remove(ctx, collections.Join(msg.ClassID, msg.ID)); err != nil {
		return nil, err
	}

	res := &types.AppResponse{}
	res.AppendEvent(sdk.NewEvent("/coreum.asset.nft.v1.EventBurned",
		sdk.NewAttribute("class_id", msg.ClassID),
		sdk.NewAttribute("id", msg.ID),
		sdk.NewAttribute("owner", sender),
	))
	return res, nil
}

func (tf *TokenFactory) sendNFT(ctx context.Context, sender string, msg *nft.MsgSend) (*types.AppResponse, error) {
	class, err := tf.getClass(ctx, msg.ClassId)
	if err != nil {
		return nil, err
	}
	stored, err := tf.getNFT(ctx, msg.ClassId, msg.Id)
	if err != nil {
		return nil, err
	}

	// A soulbound class moves only at the issuer's hand; any other
	// sender is rejected. Non-soulbound tokens move only by their
	// current owner.
	soulbound := class.HasFeature(ClassFeatureSoulbound)
	issuerOverride := soulbound && class.Issuer == sender

	if msg.Sender != sender && !issuerOverride {
		return nil, errorsmod.Wrap(types.ErrUnauthorized, "Invalid sender. sender in msg must match tx sender.")
	}

	authorized := stored.Owner == sender
	if soulbound {
		authorized = issuerOverride
	}
	if !authorized {
		return nil, errorsmod.Wrapf(types.ErrUnauthorized, "Unauthorized send. Only owner can send %s/%s", msg.ClassId, msg.Id)
	}

	if msg.Receiver == "" {
		return nil, errorsmod.Wrap(types.ErrValidation, "MsgSend.receiver is empty")
	}

	stored.Owner = msg.Receiver
	if err := tf.mintedNFTs.Set(ctx, collections.Join(msg.ClassId, msg.Id), stored); err != nil {
		return nil, err
	}

	res := &types.AppResponse{}
	res.AppendEvent(sdk.NewEvent("/coreum.asset.nft.v1.EventSent",
		sdk.NewAttribute("class_id", msg.ClassId),
		sdk.NewAttribute("id", msg.Id),
		sdk.NewAttribute("sender", msg.Sender),
		sdk.NewAttribute("receiver", msg.Receiver),
	))
	return res, nil
}

func (tf *TokenFactory) getClass(ctx context.Context, classID string) (MsgIssueClass, error) {
	class, err := tf.nftClasses.Get(ctx, classID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return MsgIssueClass{}, errorsmod.Wrapf(types.ErrNotFound, "Class id not found: %s", classID)
		}
		return MsgIssueClass{}, err
	}
	return class, nil
}

func (tf *TokenFactory) getNFT(ctx context.Context, classID, id string) (StoredNFT, error) {
	stored, err := tf.mintedNFTs.Get(ctx, collections.Join(classID, id))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return StoredNFT{}, errorsmod.Wrapf(types.ErrNotFound, "NFT not found: %s/%s", classID, id)
		}
		return StoredNFT{}, err
	}
	return stored, nil
}

// classView maps a class record to its queryable form.
func classView(classID string, issue *MsgIssueClass) Class {
	royalty := issue.RoyaltyRate
	if royalty == "" {
		royalty = "0"
	}
	return Class{
		ID:          classID,
		Issuer:      issue.Issuer,
		Name:        issue.Name,
		Symbol:      issue.Symbol,
		Description: issue.Description,
		URI:         issue.URI,
		URIHash:     issue.URIHash,
		Data:        issue.Data,
		Features:    issue.Features,
		RoyaltyRate: royalty,
	}
}

// storedToNFT maps a minted record to the cosmos.nft.v1beta1 view.
func storedToNFT(stored *StoredNFT) *nft.NFT {
	return &nft.NFT{
		ClassId: stored.ClassID,
		Id:      stored.ID,
		Uri:     stored.URI,
		Data:    stored.Data(),
	}
}

func (tf *TokenFactory) queryClass(ctx context.Context, data []byte) ([]byte, error) {
	var req QueryClassRequest
	if err := req.Unmarshal(data); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode QueryClassRequest: %v", err)
	}
	issue, err := tf.nftClasses.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil, errorsmod.Wrapf(types.ErrNotFound, "NFT class not found for id `%s`", req.ID)
		}
		return nil, err
	}
	return (&QueryClassResponse{Class: classView(req.ID, &issue)}).Marshal()
}

func (tf *TokenFactory) queryClasses(ctx context.Context, data []byte) ([]byte, error) {
	var req QueryClassesRequest
	if err := req.Unmarshal(data); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode QueryClassesRequest: %v", err)
	}
	classes, err := tf.listClasses(ctx, req.Issuer)
	if err != nil {
		return nil, err
	}
	return (&QueryClassesResponse{
		Pagination: &query.PageResponse{},
		Classes:    classes,
	}).Marshal()
}

// listClasses scans the class records with an optional issuer filter.
func (tf *TokenFactory) listClasses(ctx context.Context, issuer string) ([]Class, error) {
	var classes []Class
	err := tf.nftClasses.Walk(ctx, nil, func(classID string, issue MsgIssueClass) (bool, error) {
		if issuer != "" && issue.Issuer != issuer {
			return false, nil
		}
		classes = append(classes, classView(classID, &issue))
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (tf *TokenFactory) queryNFT(ctx context.Context, data []byte) ([]byte, error) {
	var req nft.QueryNFTRequest
	if err := req.Unmarshal(data); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode QueryNFTRequest: %v", err)
	}
	stored, err := tf.mintedNFTs.Get(ctx, collections.Join(req.ClassId, req.Id))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil, errorsmod.Wrapf(types.ErrNotFound, "NFT not found for %s/%s", req.ClassId, req.Id)
		}
		return nil, err
	}
	return (&nft.QueryNFTResponse{Nft: storedToNFT(&stored)}).Marshal()
}

func (tf *TokenFactory) queryNFTs(ctx context.Context, data []byte) ([]byte, error) {
	var req nft.QueryNFTsRequest
	if err := req.Unmarshal(data); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode QueryNFTsRequest: %v", err)
	}
	nfts, err := tf.listNFTs(ctx, req.ClassId, req.Owner)
	if err != nil {
		return nil, err
	}
	return (&nft.QueryNFTsResponse{
		Nfts:       nfts,
		Pagination: &query.PageResponse{},
	}).Marshal()
}

// listNFTs scans the minted records with optional class and owner
// filters.
func (tf *TokenFactory) listNFTs(ctx context.Context, classID, owner string) ([]*nft.NFT, error) {
	var nfts []*nft.NFT
	err := tf.mintedNFTs.Walk(ctx, nil, func(_ collections.Pair[string, string], stored StoredNFT) (bool, error) {
		if classID != "" && stored.ClassID != classID {
			return false, nil
		}
		if owner != "" && stored.Owner != owner {
			return false, nil
		}
		nfts = append(nfts, storedToNFT(&stored))
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return nfts, nil
}

func (tf *TokenFactory) queryOwner(ctx context.Context, data []byte) ([]byte, error) {
	var req nft.QueryOwnerRequest
	if err := req.Unmarshal(data); err != nil {
		return nil, errorsmod.Wrapf(types.ErrDecode, "failed to decode QueryOwnerRequest: %v", err)
	}
	stored, err := tf.mintedNFTs.Get(ctx, collections.Join(req.ClassId, req.Id))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil, errorsmod.Wrapf(types.ErrNotFound, "NFT not found for %s/%s", req.ClassId, req.Id)
		}
		return nil, err
	}
	return (&nft.QueryOwnerResponse{Owner: stored.Owner}).Marshal()
}
