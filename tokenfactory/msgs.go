package tokenfactory

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/simgate/simgate/wire"
)

// Type URLs routed by the token factory module. The strings are part of
// the wire contract and must match the chain's registered messages
// byte-for-byte.
const (
	MsgCreateDenomTypeURL = "/osmosis.tokenfactory.v1beta1.MsgCreateDenom"
	MsgMintTypeURL        = "/osmosis.tokenfactory.v1beta1.MsgMint"
	MsgBurnTypeURL        = "/osmosis.tokenfactory.v1beta1.MsgBurn"
)

// MsgCreateDenom creates a new factory denom owned by the sender.
type MsgCreateDenom struct {
	Sender   string `json:"sender,omitempty"`
	Subdenom string `json:"subdenom,omitempty"`
}

// Marshal encodes the message in protobuf wire format.
func (m *MsgCreateDenom) Marshal() ([]byte, error) {
	var b []byte
	b = wire.AppendString(b, 1, m.Sender)
	b = wire.AppendString(b, 2, m.Subdenom)
	return b, nil
}

// Unmarshal decodes the message from protobuf wire format.
func (m *MsgCreateDenom) Unmarshal(data []byte) error {
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
			m.Subdenom, err = d.String()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// MsgCreateDenomResponse returns the full denom of the created token.
type MsgCreateDenomResponse struct {
	NewTokenDenom string `json:"new_token_denom,omitempty"`
}

func (m *MsgCreateDenomResponse) Marshal() ([]byte, error) {
	var b []byte
	b = wire.AppendString(b, 1, m.NewTokenDenom)
	return b, nil
}

func (m *MsgCreateDenomResponse) Unmarshal(data []byte) error {
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
			m.NewTokenDenom, err = d.String()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// MsgMint mints an amount of a factory denom to an address.
type MsgMint struct {
	Sender        string    `json:"sender,omitempty"`
	Amount        *sdk.Coin `json:"amount,omitempty"`
	MintToAddress string    `json:"mint_to_address,omitempty"`
}

func (m *MsgMint) Marshal() ([]byte, error) {
	var b []byte
	var err error
	b = wire.AppendString(b, 1, m.Sender)
	if m.Amount != nil {
		if b, err = wire.AppendMessage(b, 2, m.Amount); err != nil {
			return nil, err
		}
	}
	b = wire.AppendString(b, 3, m.MintToAddress)
	return b, nil
}

func (m *MsgMint) Unmarshal(data []byte) error {
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
				m.Amount = &sdk.Coin{}
				err = m.Amount.Unmarshal(sub)
			}
		case 3:
			m.MintToAddress, err = d.String()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// MsgMintResponse is the empty mint acknowledgement.
type MsgMintResponse struct{}

func (m *MsgMintResponse) Marshal() ([]byte, error) { return nil, nil }

func (m *MsgMintResponse) Unmarshal([]byte) error { return nil }

// MsgBurn burns an amount of a factory denom from an address.
type MsgBurn struct {
	Sender          string    `json:"sender,omitempty"`
	Amount          *sdk.Coin `json:"amount,omitempty"`
	BurnFromAddress string    `json:"burn_from_address,omitempty"`
}

func (m *MsgBurn) Marshal() ([]byte, error) {
	var b []byte
	var err error
	b = wire.AppendString(b, 1, m.Sender)
	if m.Amount != nil {
		if b, err = wire.AppendMessage(b, 2, m.Amount); err != nil {
			return nil, err
		}
	}
	b = wire.AppendString(b, 3, m.BurnFromAddress)
	return b, nil
}

func (m *MsgBurn) Unmarshal(data []byte) error {
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
				m.Amount = &sdk.Coin{}
				err = m.Amount.Unmarshal(sub)
			}
		case 3:
			m.BurnFromAddress, err = d.String()
		default:
			err = d.Skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
}

// MsgBurnResponse is the empty burn acknowledgement.
type MsgBurnResponse struct{}

func (m *MsgBurnResponse) Marshal() ([]byte, error) { return nil, nil }

func (m *MsgBurnResponse) Unmarshal([]byte) error { return nil }
