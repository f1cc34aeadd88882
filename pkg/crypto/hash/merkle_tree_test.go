package hash

import (
	"testing"

	"github.com/novachain/nova-go/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRootHash(t *testing.T) {
	rawHashes := []string{
		"fb5bd72b2d6792d75dc2f1084ffa9e9f70ca85543c717a6b13d9959b452a57d6",
		"c56f33fc6ecfcd0c225c4ab356fee59390af8560be0e930faebe74a6daff7c9b",
		"602c79718b16e442de58778e148d0b1084e3b2dffd5de6b7b16cee7969282de7",
		"3631f66024ca6f5b033d7e0809eb993443374830025af904fb51b0334f127cda",
	}

	hashes := make([]util.Uint256, len(rawHashes))
	for i, str := range rawHashes {
		hash, _ := util.Uint256DecodeStringLE(str)
		hashes[i] = hash
	}

	merkle, err := NewMerkleTree(hashes)
	require.NoError(t, err)

	rootHash := merkle.Root()
	// A tree of 4 hashes is 3 levels deep, the root is the hash of two
	// intermediate nodes.
	l := DoubleSha256(append(hashes[0].BytesBE(), hashes[1].BytesBE()...))
	r := DoubleSha256(append(hashes[2].BytesBE(), hashes[3].BytesBE()...))
	expected := DoubleSha256(append(l.BytesBE(), r.BytesBE()...))
	assert.Equal(t, expected, rootHash)

	// CalcMerkleRoot gives the same result without building the tree.
	hashesCopy := make([]util.Uint256, len(hashes))
	copy(hashesCopy, hashes)
	assert.Equal(t, expected, CalcMerkleRoot(hashesCopy))
}

func TestOddTree(t *testing.T) {
	hashes := []util.Uint256{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}
	merkle, err := NewMerkleTree(hashes)
	require.NoError(t, err)

	// The odd leaf is paired with itself.
	l := DoubleSha256(append(hashes[0].BytesBE(), hashes[1].BytesBE()...))
	r := DoubleSha256(append(hashes[2].BytesBE(), hashes[2].BytesBE()...))
	expected := DoubleSha256(append(l.BytesBE(), r.BytesBE()...))
	assert.Equal(t, expected, merkle.Root())

	hashesCopy := make([]util.Uint256, len(hashes))
	copy(hashesCopy, hashes)
	assert.Equal(t, expected, CalcMerkleRoot(hashesCopy))
}

func TestSingleHash(t *testing.T) {
	hashes := []util.Uint256{{7}}
	merkle, err := NewMerkleTree(hashes)
	require.NoError(t, err)
	assert.Equal(t, hashes[0], merkle.Root())
	assert.Equal(t, hashes[0], CalcMerkleRoot([]util.Uint256{{7}}))
}

func TestNewMerkleTreeFailForEmptyHashes(t *testing.T) {
	_, err := NewMerkleTree([]util.Uint256{})
	require.Error(t, err)
}
