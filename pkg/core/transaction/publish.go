package transaction

import (
	"github.com/novachain/nova-go/pkg/io"
	"github.com/novachain/nova-go/pkg/smartcontract"
)

// PublishTX represents a publish transaction.
type PublishTX struct {
	Script      []byte
	ParamList   []smartcontract.ParamType
	ReturnType  smartcontract.ParamType
	NeedStorage bool
	Name        string
	CodeVersion string
	Author      string
	Email       string
	Description string

	// Version of the main transaction, it's needed because NeedStorage
	// is only serialized since version 1.
	Version uint8
}

// DecodeBinary implements the Serializable interface.
func (tx *PublishTX) DecodeBinary(br *io.BinReader) {
	tx.Script = br.ReadVarBytes()

	lenParams := br.ReadVarUint()
	tx.ParamList = make([]smartcontract.ParamType, lenParams)
	for i := 0; i < int(lenParams); i++ {
		tx.ParamList[i] = smartcontract.ParamType(br.ReadB())
	}

	tx.ReturnType = smartcontract.ParamType(br.ReadB())
	if tx.Version >= 1 {
		tx.NeedStorage = br.ReadBool()
	} else {
		tx.NeedStorage = false
	}

	tx.Name = br.ReadString()
	tx.CodeVersion = br.ReadString()
	tx.Author = br.ReadString()
	tx.Email = br.ReadString()
	tx.Description = br.ReadString()
}

// EncodeBinary implements the Serializable interface.
func (tx *PublishTX) EncodeBinary(bw *io.BinWriter) {
	bw.WriteVarBytes(tx.Script)
	bw.WriteVarUint(uint64(len(tx.ParamList)))
	for _, param := range tx.ParamList {
		bw.WriteB(byte(param))
	}
	bw.WriteB(byte(tx.ReturnType))
	if tx.Version >= 1 {
		bw.WriteBool(tx.NeedStorage)
	}
	bw.WriteString(tx.Name)
	bw.WriteString(tx.CodeVersion)
	bw.WriteString(tx.Author)
	bw.WriteString(tx.Email)
	bw.WriteString(tx.Description)
}
