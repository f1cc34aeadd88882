package hash

import (
	"errors"

	"github.com/novachain/nova-go/pkg/util"
)

// CalcMerkleRoot calculates the Merkle root hash value for the given slice of
// hashes. It doesn't create a full tree structure, it uses the given slice as
// a working area instead for efficiency purposes.
func CalcMerkleRoot(hashes []util.Uint256) util.Uint256 {
	if len(hashes) == 0 {
		return util.Uint256{}
	}

	scratch := make([]byte, util.Uint256Size*2)
	for len(hashes) != 1 {
		n := (len(hashes) + 1) / 2
		for i := 0; i < n; i++ {
			copy(scratch, hashes[i*2].BytesBE())
			if i*2+1 == len(hashes) {
				copy(scratch[util.Uint256Size:], hashes[i*2].BytesBE())
			} else {
				copy(scratch[util.Uint256Size:], hashes[i*2+1].BytesBE())
			}
			hashes[i] = DoubleSha256(scratch)
		}
		hashes = hashes[:n]
	}
	return hashes[0]
}

// MerkleTree implementation.
type MerkleTree struct {
	root  *merkleTreeNode
	depth int
}

// NewMerkleTree returns a new MerkleTree object built from the given slice of
// hashes.
func NewMerkleTree(hashes []util.Uint256) (*MerkleTree, error) {
	if len(hashes) == 0 {
		return nil, errors.New("length of the hashes cannot be zero")
	}

	nodes := make([]*merkleTreeNode, len(hashes))
	for i := 0; i < len(hashes); i++ {
		nodes[i] = &merkleTreeNode{
			hash: hashes[i],
		}
	}

	root, err := buildMerkleTree(nodes)
	if err != nil {
		return nil, err
	}

	return &MerkleTree{
		root:  root,
		depth: 1,
	}, nil
}

// Root returns the computed root hash of the MerkleTree.
func (t *MerkleTree) Root() util.Uint256 {
	return t.root.hash
}

func buildMerkleTree(leaves []*merkleTreeNode) (*merkleTreeNode, error) {
	if len(leaves) == 0 {
		return nil, errors.New("length of the leaves cannot be zero")
	}
	if len(leaves) == 1 {
		return leaves[0], nil
	}

	scratch := make([]byte, util.Uint256Size*2)
	parents := make([]*merkleTreeNode, (len(leaves)+1)/2)
	for i := 0; i < len(parents); i++ {
		parents[i] = &merkleTreeNode{}
		parents[i].leftChild = leaves[i*2]
		leaves[i*2].parent = parents[i]

		if i*2+1 == len(leaves) {
			parents[i].rightChild = parents[i].leftChild
		} else {
			parents[i].rightChild = leaves[i*2+1]
			leaves[i*2+1].parent = parents[i]
		}

		copy(scratch, parents[i].leftChild.hash.BytesBE())
		copy(scratch[util.Uint256Size:], parents[i].rightChild.hash.BytesBE())
		parents[i].hash = DoubleSha256(scratch)
	}

	return buildMerkleTree(parents)
}

// merkleTreeNode represents a node in the MerkleTree.
type merkleTreeNode struct {
	hash       util.Uint256
	parent     *merkleTreeNode
	leftChild  *merkleTreeNode
	rightChild *merkleTreeNode
}

// IsLeaf returns whether this node is a leaf node or not.
func (n *merkleTreeNode) IsLeaf() bool {
	return n.leftChild == nil && n.rightChild == nil
}

// IsRoot returns whether this node is a root node or not.
func (n *merkleTreeNode) IsRoot() bool {
	return n.parent == nil
}
