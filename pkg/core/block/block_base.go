package block

import (
	"fmt"

	"github.com/novachain/nova-go/pkg/core/transaction"
	"github.com/novachain/nova-go/pkg/crypto/hash"
	"github.com/novachain/nova-go/pkg/io"
	"github.com/novachain/nova-go/pkg/util"
)

// Base holds the base info of a block.
type Base struct {
	// Version of the block.
	Version uint32 `json:"version"`

	// hash of the previous block.
	PrevHash util.Uint256 `json:"previousblockhash"`

	// Root hash of a transaction list.
	MerkleRoot util.Uint256 `json:"merkleroot"`

	// The time stamp of each block must be later than the previous
	// block's time stamp. Generally the difference between two block's
	// time stamps is about 15 seconds and imprecision is allowed.
	// The height of the block must be exactly equal to the height of the
	// previous block plus 1.
	Timestamp uint32 `json:"time"`

	// index/height of the block
	Index uint32 `json:"height"`

	// Random number also called nonce.
	ConsensusData uint64 `json:"nonce"`

	// Contract address of the next miner.
	NextConsensus util.Uint160 `json:"next_consensus"`

	// Script used to validate the block.
	Script transaction.Witness `json:"script"`

	// Hash of this block, created when binary encoded (double SHA256).
	hash util.Uint256
}

// Hash returns the hash of the block.
func (b *Base) Hash() util.Uint256 {
	if b.hash.Equals(util.Uint256{}) {
		b.createHash()
	}
	return b.hash
}

// DecodeBinary implements the Serializable interface.
func (b *Base) DecodeBinary(br *io.BinReader) {
	b.decodeHashableFields(br)

	padding := br.ReadB()
	if br.Err == nil && padding != 1 {
		br.Err = fmt.Errorf("format error: padding must equal 1 got %d", padding)
		return
	}

	b.Script.DecodeBinary(br)
}

// EncodeBinary implements the Serializable interface.
func (b *Base) EncodeBinary(bw *io.BinWriter) {
	b.encodeHashableFields(bw)
	bw.WriteB(1)
	b.Script.EncodeBinary(bw)
}

// createHash creates the hash of the block.
// When calculating the hash value of the block, instead of processing the
// entire block, only the first seven fields in the block head will be used,
// which are version, PrevHash, MerkleRoot, timestamp, index, the nonce and
// NextConsensus. Since MerkleRoot already contains the hash value of all
// transactions, the modification of a transaction will influence the hash
// value of the block.
func (b *Base) createHash() {
	buf := io.NewBufBinWriter()
	b.encodeHashableFields(buf.BinWriter)
	if buf.Err != nil {
		panic(buf.Err)
	}

	b.hash = hash.DoubleSha256(buf.Bytes())
}

// encodeHashableFields will only encode the fields used for hashing.
// See Hash() for more information about the fields.
func (b *Base) encodeHashableFields(bw *io.BinWriter) {
	bw.WriteU32LE(b.Version)
	b.PrevHash.EncodeBinary(bw)
	b.MerkleRoot.EncodeBinary(bw)
	bw.WriteU32LE(b.Timestamp)
	bw.WriteU32LE(b.Index)
	bw.WriteU64LE(b.ConsensusData)
	b.NextConsensus.EncodeBinary(bw)
}

// decodeHashableFields decodes the fields used for hashing.
// See Hash() for more information about the fields.
func (b *Base) decodeHashableFields(br *io.BinReader) {
	b.Version = br.ReadU32LE()
	b.PrevHash.DecodeBinary(br)
	b.MerkleRoot.DecodeBinary(br)
	b.Timestamp = br.ReadU32LE()
	b.Index = br.ReadU32LE()
	b.ConsensusData = br.ReadU64LE()
	b.NextConsensus.DecodeBinary(br)

	// Make the hash of the block here so we dont need to do this
	// again.
	if br.Err == nil {
		b.createHash()
	}
}
