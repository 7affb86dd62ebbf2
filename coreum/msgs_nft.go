package coreum

import (
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/simgate/simgate/wire"
)

// Class feature flags. The numeric values are part of the wire
// contract.
const (
	ClassFeatureBurning        int32 = 0
	ClassFeatureFreezing       int32 = 1
	ClassFeatureWhitelisting   int32 = 2
	ClassFeatureDisableSending int32 = 3
	ClassFeatureSoulbound      int32 = 4
)

// MsgIssueClass defines a new NFT class. The class id is
// "{lowercase(symbol)}-{issuer}".
type MsgIssueClass struct {
	Issuer      string          `json:"issuer,omitempty"`
	Symbol      string          `json:"symbol,omitempty"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	URI         string          `json:"uri,omitempty"`
	URIHash     string          `json:"uri_hash,omitempty"`
	Data        *codectypes.Any `json:"data,omitempty"`
	Features    []int32         `json:"features,omitempty"`
	RoyaltyRate string          `json:"royalty_rate,omitempty"`
}

// HasFeature reports whether the class was issued with the feature.
func (m *MsgIssueClass) HasFeature(feature int32) bool {
	for _, f := range m.Features {
		if f == feature {
			return true
		}
	}
	return false
}

func (m *MsgIssueClass) Marshal() ([]byte, error) {
	var b []byte
	var err error
	b = wire.AppendString(b, 1, m.Issuer)
	b = wire.AppendString(b, 2, m.Symbol)
	b = wire.AppendString(b, 3, m.Name)
	b = wire.AppendString(b, 4, m.Description)
	b = wire.AppendString(b, 5, m.URI)
	b = wire.AppendString(b, 6, m.URIHash)
	if m.Data != nil {
		if b, err = wire.AppendMessage(b, 7, m.Data); err != nil {
			return nil, err
		}
	}
	b = wire.AppendPackedInt32(b, 8, m.Features)
	b = wire.AppendString(b, 9, m.RoyaltyRate)
	return b, nil
}

func (m *MsgIssueClass) Unmarshal(data []byte) error {
	d := wire.NewDecoder(data)
	for {
		num, typ, ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch num {
		case 1:
			m.Issuer, err = d.String()
		case 2:
			m.Symbol, err = d.String()
		case 3:
			m.Name, err = d.String()
		case 4:
			m.Description, err = d.String()
		case 5:
			m.URI, err = d.String()
		case 6:
			m.URIHash, err = d.String()
		case 7:
			var sub []byte
			if sub, err = d.Bytes(); err == nil {
				m.Data = &codectypes.Any{}
				err = m.Data.Unmarshal(sub)
			}
		case 8:
			m.Features, err = d.Int32s(typ, m.Features)
		case 9:
			m.RoyaltyRate, err = d.String()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// MsgNFTMint mints a single NFT in an issued class.
type MsgNFTMint struct {
	Sender    string          `json:"sender,omitempty"`
	ClassID   string          `json:"class_id,omitempty"`
	ID        string          `json:"id,omitempty"`
	URI       string          `json:"uri,omitempty"`
	URIHash   string          `json:"uri_hash,omitempty"`
	Data      *codectypes.Any `json:"data,omitempty"`
	Recipient string          `json:"recipient,omitempty"`
}

func (m *MsgNFTMint) Marshal() ([]byte, error) {
	var b []byte
	var err error
	b = wire.AppendString(b, 1, m.Sender)
	b = wire.AppendString(b, 2, m.ClassID)
	b = wire.AppendString(b, 3, m.ID)
	b = wire.AppendString(b, 4, m.URI)
	b = wire.AppendString(b, 5, m.URIHash)
	if m.Data != nil {
		if b, err = wire.AppendMessage(b, 6, m.Data); err != nil {
			return nil, err
		}
	}
	b = wire.AppendString(b, 7, m.Recipient)
	return b, nil
}

func (m *MsgNFTMint) Unmarshal(data []byte) error {
	d := wire.NewDecoder(data)
	for {
		num, typ, ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch num {
		case 1:
			m.Sender, err = d.String()
		case 2:
			m.ClassID, err = d.String()
		case 3:
			m.ID, err = d.String()
		case 4:
			m.URI, err = d.String()
		case 5:
			m.URIHash, err = d.String()
		case 6:
			var sub []byte
			if sub, err = d.Bytes(); err == nil {
				m.Data = &codectypes.Any{}
				err = m.Data.Unmarshal(sub)
			}
		case 7:
			m.Recipient, err = d.String()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// MsgNFTBurn removes a minted NFT.
type MsgNFTBurn struct {
	Sender  string `json:"sender,omitempty"`
	ClassID string `json:"class_id,omitempty"`
	ID      string `json:"id,omitempty"`
}

func (m *MsgNFTBurn) Marshal() ([]byte, error) {
	var b []byte
	b = wire.AppendString(b, 1, m.Sender)
	b = wire.AppendString(b, 2, m.ClassID)
	b = wire.AppendString(b, 3, m.ID)
	return b, nil
}

func (m *MsgNFTBurn) Unmarshal(data []byte) error {
	d := wire.NewDecoder(data)
	for {
		num, typ, ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch num {
		case 1:
			m.Sender, err = d.String()
		case 2:
			m.ClassID, err = d.String()
		case 3:
			m.ID, err = d.String()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// Class is the queryable view of an issued NFT class.
type Class struct {
	ID          string          `json:"id,omitempty"`
	Issuer      string          `json:"issuer,omitempty"`
	Name        string          `json:"name,omitempty"`
	Symbol      string          `json:"symbol,omitempty"`
	Description string          `json:"description,omitempty"`
	URI         string          `json:"uri,omitempty"`
	URIHash     string          `json:"uri_hash,omitempty"`
	Data        *codectypes.Any `json:"data,omitempty"`
	Features    []int32         `json:"features,omitempty"`
	RoyaltyRate string          `json:"royalty_rate,omitempty"`
}

func (c *Class) Marshal() ([]byte, error) {
	var b []byte
	var err error
	b = wire.AppendString(b, 1, c.ID)
	b = wire.AppendString(b, 2, c.Issuer)
	b = wire.AppendString(b, 3, c.Name)
	b = wire.AppendString(b, 4, c.Symbol)
	b = wire.AppendString(b, 5, c.Description)
	b = wire.AppendString(b, 6, c.URI)
	b = wire.AppendString(b, 7, c.URIHash)
	if c.Data != nil {
		if b, err = wire.AppendMessage(b, 8, c.Data); err != nil {
			return nil, err
		}
	}
	b = wire.AppendPackedInt32(b, 9, c.Features)
	b = wire.AppendString(b, 10, c.RoyaltyRate)
	return b, nil
}

func (c *Class) Unmarshal(data []byte) error {
	d := wire.NewDecoder(data)
	for {
		num, typ, ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch num {
		case 1:
			c.ID, err = d.String()
		case 2:
			c.Issuer, err = d.String()
		case 3:
			c.Name, err = d.String()
		case 4:
			c.Symbol, err = d.String()
		case 5:
			c.Description, err = d.String()
		case 6:
			c.URI, err = d.String()
		case 7:
			c.URIHash, err = d.String()
		case 8:
			var sub []byte
			if sub, err = d.Bytes(); err == nil {
				c.Data = &codectypes.Any{}
				err = c.Data.Unmarshal(sub)
			}
		case 9:
			c.Features, err = d.Int32s(typ, c.Features)
		case 10:
			c.RoyaltyRate, err = d.String()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// StoredNFT is the persisted record of a minted NFT.
type StoredNFT struct {
	ClassID     string `json:"class_id,omitempty"`
	ID          string `json:"id,omitempty"`
	Owner       string `json:"owner,omitempty"`
	URI         string `json:"uri,omitempty"`
	DataTypeURL string `json:"data_type_url,omitempty"`
	DataValue   []byte `json:"data_value,omitempty"`
}

// Data reconstructs the opaque payload attached at mint time.
func (n *StoredNFT) Data() *codectypes.Any {
	if n.DataTypeURL == "" && len(n.DataValue) == 0 {
		return nil
	}
	return &codectypes.Any{TypeUrl: n.DataTypeURL, Value: n.DataValue}
}

func (n *StoredNFT) Marshal() ([]byte, error) {
	var b []byte
	b = wire.AppendString(b, 1, n.ClassID)
	b = wire.AppendString(b, 2, n.ID)
	b = wire.AppendString(b, 3, n.Owner)
	b = wire.AppendString(b, 4, n.URI)
	b = wire.AppendString(b, 5, n.DataTypeURL)
	b = wire.AppendBytes(b, 6, n.DataValue)
	return b, nil
}

func (n *StoredNFT) Unmarshal(data []byte) error {
	d := wire.NewDecoder(data)
	for {
		num, typ, ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch num {
		case 1:
			n.ClassID, err = d.String()
		case 2:
			n.ID, err = d.String()
		case 3:
			n.Owner, err = d.String()
		case 4:
			n.URI, err = d.String()
		case 5:
			n.DataTypeURL, err = d.String()
		case 6:
			n.DataValue, err = d.Bytes()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// QueryClassRequest asks for a single NFT class by id.
type QueryClassRequest struct {
	ID string `json:"id,omitempty"`
}

func (m *QueryClassRequest) Marshal() ([]byte, error) {
	var b []byte
	b = wire.AppendString(b, 1, m.ID)
	return b, nil
}

func (m *QueryClassRequest) Unmarshal(data []byte) error {
	d := wire.NewDecoder(data)
	for {
		num, typ, ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch num {
		case 1:
			m.ID, err = d.String()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// QueryClassResponse carries the resolved class.
type QueryClassResponse struct {
	Class Class `json:"class"`
}

func (m *QueryClassResponse) Marshal() ([]byte, error) {
	return wire.AppendMessage(nil, 1, &m.Class)
}

func (m *QueryClassResponse) Unmarshal(data []byte) error {
	d := wire.NewDecoder(data)
	for {
		num, typ, ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch num {
		case 1:
			var sub []byte
			if sub, err = d.Bytes(); err == nil {
				err = m.Class.Unmarshal(sub)
			}
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// QueryClassesRequest lists issued classes, optionally by issuer.
type QueryClassesRequest struct {
	Pagination *query.PageRequest `json:"pagination,omitempty"`
	Issuer     string             `json:"issuer,omitempty"`
}

func (m *QueryClassesRequest) Marshal() ([]byte, error) {
	var b []byte
	var err error
	if m.Pagination != nil {
		if b, err = wire.AppendMessage(b, 1, m.Pagination); err != nil {
			return nil, err
		}
	}
	b = wire.AppendString(b, 2, m.Issuer)
	return b, nil
}

func (m *QueryClassesRequest) Unmarshal(data []byte) error {
	d := wire.NewDecoder(data)
	for {
		num, typ, ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch num {
		case 1:
			var sub []byte
			if sub, err = d.Bytes(); err == nil {
				m.Pagination = &query.PageRequest{}
				err = m.Pagination.Unmarshal(sub)
			}
		case 2:
			m.Issuer, err = d.String()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// QueryClassesResponse carries the matching classes. Pagination
// metadata is always reported as empty.
type QueryClassesResponse struct {
	Pagination *query.PageResponse `json:"pagination,omitempty"`
	Classes    []Class             `json:"classes,omitempty"`
}

func (m *QueryClassesResponse) Marshal() ([]byte, error) {
	var b []byte
	var err error
	if m.Pagination != nil {
		if b, err = wire.AppendMessage(b, 1, m.Pagination); err != nil {
			return nil, err
		}
	}
	for i := range m.Classes {
		if b, err = wire.AppendMessage(b, 2, &m.Classes[i]); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (m *QueryClassesResponse) Unmarshal(data []byte) error {
	d := wire.NewDecoder(data)
	for {
		num, typ, ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch num {
		case 1:
			var sub []byte
			if sub, err = d.Bytes(); err == nil {
				m.Pagination = &query.PageResponse{}
				err = m.Pagination.Unmarshal(sub)
			}
		case 2:
			var sub []byte
			if sub, err = d.Bytes(); err == nil {
				var c Class
				if err = c.Unmarshal(sub); err == nil {
					m.Classes = append(m.Classes, c)
				}
			}
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}
