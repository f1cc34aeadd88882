package state

import (
	"github.com/novachain/nova-go/pkg/core/transaction"
	"github.com/novachain/nova-go/pkg/crypto/keys"
	"github.com/novachain/nova-go/pkg/io"
	"github.com/novachain/nova-go/pkg/util"
)

const feeMode = 0x0

// Asset represents the state of a Nova registered asset.
type Asset struct {
	ID         util.Uint256
	AssetType  transaction.AssetType
	Name       string
	Amount     util.Fixed8
	Available  util.Fixed8
	Precision  uint8
	FeeMode    uint8
	FeeAddress util.Uint160
	Owner      keys.PublicKey
	Admin      util.Uint160
	Issuer     util.Uint160
	Expiration uint32
	IsFrozen   bool
}

// DecodeBinary implements the Serializable interface.
func (a *Asset) DecodeBinary(br *io.BinReader) {
	a.ID.DecodeBinary(br)
	a.AssetType = transaction.AssetType(br.ReadB())

	a.Name = br.ReadString()

	a.Amount.DecodeBinary(br)
	a.Available.DecodeBinary(br)
	a.Precision = br.ReadB()
	a.FeeMode = br.ReadB()
	a.FeeAddress.DecodeBinary(br)

	a.Owner.DecodeBinary(br)
	a.Admin.DecodeBinary(br)
	a.Issuer.DecodeBinary(br)
	a.Expiration = br.ReadU32LE()
	a.IsFrozen = br.ReadBool()
}

// EncodeBinary implements the Serializable interface.
func (a *Asset) EncodeBinary(bw *io.BinWriter) {
	a.ID.EncodeBinary(bw)
	bw.WriteB(byte(a.AssetType))
	bw.WriteString(a.Name)
	a.Amount.EncodeBinary(bw)
	a.Available.EncodeBinary(bw)
	bw.WriteB(a.Precision)
	bw.WriteB(a.FeeMode)
	a.FeeAddress.EncodeBinary(bw)

	a.Owner.EncodeBinary(bw)

	a.Admin.EncodeBinary(bw)
	a.Issuer.EncodeBinary(bw)
	bw.WriteU32LE(a.Expiration)
	bw.WriteBool(a.IsFrozen)
}

// GetName returns the asset name based on its type.
func (a *Asset) GetName() string {
	if a.AssetType == transaction.GoverningToken {
		return "NOVA"
	} else if a.AssetType == transaction.UtilityToken {
		return "NovaGas"
	}

	return a.Name
}
