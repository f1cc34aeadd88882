package transaction

import (
	"testing"

	"github.com/novachain/nova-go/pkg/crypto/keys"
	"github.com/novachain/nova-go/pkg/io"
	"github.com/novachain/nova-go/pkg/smartcontract"
	"github.com/novachain/nova-go/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEncodeRoundtrip(t *testing.T, tx *Transaction) *Transaction {
	data := tx.Bytes()
	require.NotNil(t, data)

	decoded, err := DecodeFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, tx.Hash(), decoded.Hash())
	assert.Equal(t, data, decoded.Bytes())
	return decoded
}

func TestMinerTXRoundtrip(t *testing.T) {
	tx := NewMinerTX(12345)
	tx.Attributes = []Attribute{}
	tx.Inputs = []Input{}
	tx.Outputs = []Output{}
	tx.Scripts = []Witness{}

	decoded := decodeEncodeRoundtrip(t, tx)
	assert.Equal(t, MinerType, decoded.Type)
	assert.Equal(t, uint32(12345), decoded.Data.(*MinerTX).Nonce)
}

func TestContractTXRoundtrip(t *testing.T) {
	tx := NewContractTX()
	tx.Inputs = append(tx.Inputs, Input{
		PrevHash:  util.Uint256{1, 2, 3},
		PrevIndex: 2,
	})
	tx.Outputs = append(tx.Outputs, Output{
		AssetID:    util.Uint256{7},
		Amount:     util.Fixed8FromInt64(42),
		ScriptHash: util.Uint160{9, 9},
	})
	tx.Scripts = []Witness{{
		InvocationScript:   []byte{1, 2},
		VerificationScript: []byte{3, 4},
	}}

	decoded := decodeEncodeRoundtrip(t, tx)
	assert.Equal(t, 1, len(decoded.Inputs))
	assert.Equal(t, 1, len(decoded.Outputs))
	assert.Equal(t, util.Fixed8FromInt64(42), decoded.Outputs[0].Amount)
}

func TestClaimTXRoundtrip(t *testing.T) {
	tx := &Transaction{
		Type: ClaimType,
		Data: &ClaimTX{
			Claims: []Input{
				{PrevHash: util.Uint256{1}, PrevIndex: 0},
				{PrevHash: util.Uint256{2}, PrevIndex: 1},
			},
		},
	}

	decoded := decodeEncodeRoundtrip(t, tx)
	claims := decoded.Data.(*ClaimTX).Claims
	assert.Equal(t, 2, len(claims))
	assert.Equal(t, uint16(1), claims[1].PrevIndex)
}

func TestRegisterTXRoundtrip(t *testing.T) {
	someKey, err := keys.NewPrivateKey()
	require.NoError(t, err)
	tx := &Transaction{
		Type: RegisterType,
		Data: &RegisterTX{
			AssetType: Token,
			Name:      "super cool token",
			Amount:    util.Fixed8FromInt64(1000000),
			Precision: 8,
			Owner:     *someKey.PublicKey(),
			Admin:     util.Uint160{5, 5},
		},
	}

	decoded := decodeEncodeRoundtrip(t, tx)
	data := decoded.Data.(*RegisterTX)
	assert.Equal(t, Token, data.AssetType)
	assert.Equal(t, "super cool token", data.Name)
	assert.Equal(t, util.Fixed8FromInt64(1000000), data.Amount)
	assert.True(t, someKey.PublicKey().Equal(&data.Owner))
}

func TestEnrollmentTXRoundtrip(t *testing.T) {
	someKey, err := keys.NewPrivateKey()
	require.NoError(t, err)
	tx := &Transaction{
		Type: EnrollmentType,
		Data: &EnrollmentTX{PublicKey: *someKey.PublicKey()},
	}

	decoded := decodeEncodeRoundtrip(t, tx)
	assert.True(t, someKey.PublicKey().Equal(&decoded.Data.(*EnrollmentTX).PublicKey))
}

func TestStateTXRoundtrip(t *testing.T) {
	tx := &Transaction{
		Type: StateType,
		Data: &StateTX{
			Descriptors: []*StateDescriptor{{
				Type:  Validator,
				Key:   []byte{1, 2, 3},
				Value: []byte{1},
				Field: "Registered",
			}},
		},
	}

	decoded := decodeEncodeRoundtrip(t, tx)
	descriptors := decoded.Data.(*StateTX).Descriptors
	require.Equal(t, 1, len(descriptors))
	assert.Equal(t, Validator, descriptors[0].Type)
	assert.Equal(t, "Registered", descriptors[0].Field)
}

func TestInvocationTXRoundtrip(t *testing.T) {
	tx := NewInvocationTX([]byte{0x51}, util.Fixed8FromInt64(1))

	decoded := decodeEncodeRoundtrip(t, tx)
	data := decoded.Data.(*InvocationTX)
	assert.Equal(t, []byte{0x51}, data.Script)
	assert.Equal(t, util.Fixed8FromInt64(1), data.Gas)
}

func TestPublishTXRoundtrip(t *testing.T) {
	tx := &Transaction{
		Type:    PublishType,
		Version: 1,
		Data: &PublishTX{
			Script:      []byte{1, 2, 3, 4},
			ParamList:   []smartcontract.ParamType{smartcontract.ByteArrayType},
			ReturnType:  smartcontract.BoolType,
			NeedStorage: true,
			Name:        "Contract",
			CodeVersion: "1.0",
			Author:      "O. Gopher",
			Email:       "g@nova.io",
			Description: "test contract",
			Version:     1,
		},
	}

	decoded := decodeEncodeRoundtrip(t, tx)
	data := decoded.Data.(*PublishTX)
	assert.True(t, data.NeedStorage)
	assert.Equal(t, "Contract", data.Name)
}

func TestDecodeInvalidType(t *testing.T) {
	_, err := DecodeFromBytes([]byte{0xba, 0x00, 0x00, 0x00, 0x00})
	require.Error(t, err)
}

func TestHaveDuplicateInputs(t *testing.T) {
	ins := []Input{
		{PrevHash: util.Uint256{1}, PrevIndex: 0},
		{PrevHash: util.Uint256{1}, PrevIndex: 1},
	}
	assert.False(t, HaveDuplicateInputs(ins))
	ins = append(ins, Input{PrevHash: util.Uint256{1}, PrevIndex: 0})
	assert.True(t, HaveDuplicateInputs(ins))
}

func TestGroupInputsByPrevHash(t *testing.T) {
	ins := []Input{
		{PrevHash: util.Uint256{1}, PrevIndex: 0},
		{PrevHash: util.Uint256{2}, PrevIndex: 0},
		{PrevHash: util.Uint256{1}, PrevIndex: 1},
	}
	m := GroupInputsByPrevHash(ins)
	require.Equal(t, 2, len(m))
	require.Equal(t, 2, len(m[util.Uint256{1}]))
	require.Equal(t, 1, len(m[util.Uint256{2}]))
}

func TestAttributeRoundtrip(t *testing.T) {
	attrs := []Attribute{
		{Usage: Script, Data: make([]byte, 20)},
		{Usage: Vote, Data: make([]byte, 32)},
		{Usage: Remark, Data: []byte("some remark")},
		{Usage: DescriptionURL, Data: []byte("https://nova.io")},
	}
	for _, attr := range attrs {
		buf := io.NewBufBinWriter()
		attr.EncodeBinary(buf.BinWriter)
		require.NoError(t, buf.Err)

		var decoded Attribute
		r := io.NewBinReaderFromBuf(buf.Bytes())
		decoded.DecodeBinary(r)
		require.NoError(t, r.Err)
		assert.Equal(t, attr, decoded)
	}
}
