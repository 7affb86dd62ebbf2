package coreum

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/simgate/simgate/wire"
)

// MsgIssue defines a new Coreum fungible token. The issued denom is
// "{subunit}-{issuer}".
type MsgIssue struct {
	Issuer             string   `json:"issuer,omitempty"`
	Symbol             string   `json:"symbol,omitempty"`
	Subunit            string   `json:"subunit,omitempty"`
	Precision          uint32   `json:"precision,omitempty"`
	InitialAmount      string   `json:"initial_amount,omitempty"`
	Description        string   `json:"description,omitempty"`
	Features           []int32  `json:"features,omitempty"`
	BurnRate           string   `json:"burn_rate,omitempty"`
	SendCommissionRate string   `json:"send_commission_rate,omitempty"`
	URI                string   `json:"uri,omitempty"`
	URIHash            string   `json:"uri_hash,omitempty"`
}

// Denom returns the chain denom the issuance produces.
func (m *MsgIssue) Denom() string {
	return m.Subunit + "-" + m.Issuer
}

func (m *MsgIssue) Marshal() ([]byte, error) {
	var b []byte
	b = wire.AppendString(b, 1, m.Issuer)
	b = wire.AppendString(b, 2, m.Symbol)
	b = wire.AppendString(b, 3, m.Subunit)
	b = wire.AppendUint32(b, 4, m.Precision)
	b = wire.AppendString(b, 5, m.InitialAmount)
	b = wire.AppendString(b, 6, m.Description)
	b = wire.AppendPackedInt32(b, 7, m.Features)
	b = wire.AppendString(b, 8, m.BurnRate)
	b = wire.AppendString(b, 9, m.SendCommissionRate)
	b = wire.AppendString(b, 10, m.URI)
	b = wire.AppendString(b, 11, m.URIHash)
	return b, nil
}

func (m *MsgIssue) Unmarshal(data []byte) error {
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
			m.Subunit, err = d.String()
		case 4:
			m.Precision, err = d.Uint32()
		case 5:
			m.InitialAmount, err = d.String()
		case 6:
			m.Description, err = d.String()
		case 7:
			m.Features, err = d.Int32s(typ, m.Features)
		case 8:
			m.BurnRate, err = d.String()
		case 9:
			m.SendCommissionRate, err = d.String()
		case 10:
			m.URI, err = d.String()
		case 11:
			m.URIHash, err = d.String()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// MsgFTMint mints an issued token to a recipient.
type MsgFTMint struct {
	Sender    string    `json:"sender,omitempty"`
	Coin      *sdk.Coin `json:"coin,omitempty"`
	Recipient string    `json:"recipient,omitempty"`
}

func (m *MsgFTMint) Marshal() ([]byte, error) {
	var b []byte
	var err error
	b = wire.AppendString(b, 1, m.Sender)
	if m.Coin != nil {
		if b, err = wire.AppendMessage(b, 2, m.Coin); err != nil {
			return nil, err
		}
	}
	b = wire.AppendString(b, 3, m.Recipient)
	return b, nil
}

func (m *MsgFTMint) Unmarshal(data []byte) error {
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
			var sub []byte
			if sub, err = d.Bytes(); err == nil {
				m.Coin = &sdk.Coin{}
				err = m.Coin.Unmarshal(sub)
			}
		case 3:
			m.Recipient, err = d.String()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// MsgFTBurn burns an issued token from the sender's balance.
type MsgFTBurn struct {
	Sender string    `json:"sender,omitempty"`
	Coin   *sdk.Coin `json:"coin,omitempty"`
}

func (m *MsgFTBurn) Marshal() ([]byte, error) {
	var b []byte
	var err error
	b = wire.AppendString(b, 1, m.Sender)
	if m.Coin != nil {
		if b, err = wire.AppendMessage(b, 2, m.Coin); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (m *MsgFTBurn) Unmarshal(data []byte) error {
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
			var sub []byte
			if sub, err = d.Bytes(); err == nil {
				m.Coin = &sdk.Coin{}
				err = m.Coin.Unmarshal(sub)
			}
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// Token is the queryable view of an issued fungible token.
type Token struct {
	Denom              string  `json:"denom,omitempty"`
	Issuer             string  `json:"issuer,omitempty"`
	Symbol             string  `json:"symbol,omitempty"`
	Subunit            string  `json:"subunit,omitempty"`
	Precision          uint32  `json:"precision,omitempty"`
	Description        string  `json:"description,omitempty"`
	GloballyFrozen     bool    `json:"globally_frozen,omitempty"`
	Features           []int32 `json:"features,omitempty"`
	BurnRate           string  `json:"burn_rate,omitempty"`
	SendCommissionRate string  `json:"send_commission_rate,omitempty"`
	Version            uint32  `json:"version,omitempty"`
	URI                string  `json:"uri,omitempty"`
	URIHash            string  `json:"uri_hash,omitempty"`
}

func (t *Token) Marshal() ([]byte, error) {
	var b []byte
	b = wire.AppendString(b, 1, t.Denom)
	b = wire.AppendString(b, 2, t.Issuer)
	b = wire.AppendString(b, 3, t.Symbol)
	b = wire.AppendString(b, 4, t.Subunit)
	b = wire.AppendUint32(b, 5, t.Precision)
	b = wire.AppendString(b, 6, t.Description)
	b = wire.AppendBool(b, 7, t.GloballyFrozen)
	b = wire.AppendPackedInt32(b, 8, t.Features)
	b = wire.AppendString(b, 9, t.BurnRate)
	b = wire.AppendString(b, 10, t.SendCommissionRate)
	b = wire.AppendUint32(b, 11, t.Version)
	b = wire.AppendString(b, 12, t.URI)
	b = wire.AppendString(b, 13, t.URIHash)
	return b, nil
}

func (t *Token) Unmarshal(data []byte) error {
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
			t.Denom, err = d.String()
		case 2:
			t.Issuer, err = d.String()
		case 3:
			t.Symbol, err = d.String()
		case 4:
			t.Subunit, err = d.String()
		case 5:
			t.Precision, err = d.Uint32()
		case 6:
			t.Description, err = d.String()
		case 7:
			t.GloballyFrozen, err = d.Bool()
		case 8:
			t.Features, err = d.Int32s(typ, t.Features)
		case 9:
			t.BurnRate, err = d.String()
		case 10:
			t.SendCommissionRate, err = d.String()
		case 11:
			t.Version, err = d.Uint32()
		case 12:
			t.URI, err = d.String()
		case 13:
			t.URIHash, err = d.String()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// QueryTokenRequest asks for a single issued token by denom.
type QueryTokenRequest struct {
	Denom string `json:"denom,omitempty"`
}

func (m *QueryTokenRequest) Marshal() ([]byte, error) {
	var b []byte
	b = wire.AppendString(b, 1, m.Denom)
	return b, nil
}

func (m *QueryTokenRequest) Unmarshal(data []byte) error {
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
			m.Denom, err = d.String()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// QueryTokenResponse carries the resolved token.
type QueryTokenResponse struct {
	Token Token `json:"token"`
}

func (m *QueryTokenResponse) Marshal() ([]byte, error) {
	return wire.AppendMessage(nil, 1, &m.Token)
}

func (m *QueryTokenResponse) Unmarshal(data []byte) error {
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
				err = m.Token.Unmarshal(sub)
			}
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// QueryTokensRequest lists issued tokens, optionally by issuer.
type QueryTokensRequest struct {
	Pagination *query.PageRequest `json:"pagination,omitempty"`
	Issuer     string             `json:"issuer,omitempty"`
}

func (m *QueryTokensRequest) Marshal() ([]byte, error) {
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

func (m *QueryTokensRequest) Unmarshal(data []byte) error {
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

// QueryTokensResponse carries the matching tokens. Pagination metadata
// is always reported as empty.
type QueryTokensResponse struct {
	Pagination *query.PageResponse `json:"pagination,omitempty"`
	Tokens     []Token             `json:"tokens,omitempty"`
}

func (m *QueryTokensResponse) Marshal() ([]byte, error) {
	var b []byte
	var err error
	if m.Pagination != nil {
		if b, err = wire.AppendMessage(b, 1, m.Pagination); err != nil {
			return nil, err
		}
	}
	for i := range m.Tokens {
		if b, err = wire.AppendMessage(b, 2, &m.Tokens[i]); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (m *QueryTokensResponse) Unmarshal(data []byte) error {
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
				var t Token
				if err = t.Unmarshal(sub); err == nil {
					m.Tokens = append(m.Tokens, t)
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
