package core

import (
	"testing"

	"github.com/novachain/nova-go/pkg/core/state"
	"github.com/novachain/nova-go/pkg/core/transaction"
	"github.com/novachain/nova-go/pkg/crypto/keys"
	"github.com/novachain/nova-go/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferUpdatesBalancesAndCoins(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	recipient := util.Uint160{0xde, 0xad}
	amount := util.Fixed8FromInt64(10)
	issueTx, issueOut := genesisIssueOutput(bc)

	tx := transferTX(t, bc, recipient, amount)
	b := newBlock(t, bc.GetConfig(), bc.GenesisBlock(), tx)
	require.Equal(t, RelaySucceed, bc.AddBlock(b))

	// The recipient has been credited.
	acc := bc.GetAccountState(recipient)
	require.NotNil(t, acc)
	assert.Equal(t, amount, acc.GetBalance(bc.GoverningTokenID()))

	// The original owner keeps the change only.
	owner := bc.GetAccountState(issueOut.ScriptHash)
	require.NotNil(t, owner)
	assert.Equal(t, issueOut.Amount-amount, owner.GetBalance(bc.GoverningTokenID()))

	// The spent output is flagged as spent.
	ucs := bc.GetUnspentCoinState(issueTx.Hash())
	require.NotNil(t, ucs)
	assert.NotEqual(t, state.Coin(0), ucs.States[0]&state.CoinSpent)

	// The new outputs are confirmed and unspent.
	newUcs := bc.GetUnspentCoinState(tx.Hash())
	require.NotNil(t, newUcs)
	require.Equal(t, 2, len(newUcs.States))
	assert.Equal(t, state.CoinConfirmed, newUcs.States[0])

	// Spending the governing token records the spending height for the
	// utility token claim.
	scs, err := bc.dao.GetSpentCoinState(issueTx.Hash())
	require.NoError(t, err)
	assert.Equal(t, uint32(0), scs.TxHeight)
	assert.Equal(t, b.Index, scs.Items[0])

	// The same transaction can't be spent twice.
	tx2 := transferTX(t, bc, recipient, amount)
	b2 := newBlock(t, bc.GetConfig(), b, tx2)
	assert.Equal(t, RelayInvalid, bc.AddBlock(b2))
}

func TestClaimRemovesSpentCoinRecord(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	issueTx, _ := genesisIssueOutput(bc)
	tx := transferTX(t, bc, util.Uint160{1}, util.Fixed8FromInt64(1))
	b := newBlock(t, bc.GetConfig(), bc.GenesisBlock(), tx)
	require.Equal(t, RelaySucceed, bc.AddBlock(b))

	_, err := bc.dao.GetSpentCoinState(issueTx.Hash())
	require.NoError(t, err)

	claim := &transaction.Transaction{
		Type: transaction.ClaimType,
		Data: &transaction.ClaimTX{
			Claims: []transaction.Input{{
				PrevHash:  issueTx.Hash(),
				PrevIndex: 0,
			}},
		},
	}
	b2 := newBlock(t, bc.GetConfig(), b, claim)
	require.Equal(t, RelaySucceed, bc.AddBlock(b2))

	// The spent coin record is gone after a successful claim.
	_, err = bc.dao.GetSpentCoinState(issueTx.Hash())
	require.Error(t, err)

	// Claiming it again is invalid.
	claim2 := &transaction.Transaction{
		Type: transaction.ClaimType,
		Data: &transaction.ClaimTX{
			Claims: []transaction.Input{{
				PrevHash:  issueTx.Hash(),
				PrevIndex: 0,
			}},
		},
		Attributes: []transaction.Attribute{{Usage: transaction.Remark, Data: []byte{1}}},
	}
	b3 := newBlock(t, bc.GetConfig(), b2, claim2)
	assert.Equal(t, RelayInvalid, bc.AddBlock(b3))
}

func voteTX(account util.Uint160, votes keys.PublicKeys) *transaction.Transaction {
	return &transaction.Transaction{
		Type: transaction.StateType,
		Data: &transaction.StateTX{
			Descriptors: []*transaction.StateDescriptor{{
				Type:  transaction.Account,
				Key:   account.BytesBE(),
				Field: "Votes",
				Value: votes.Bytes(),
			}},
		},
	}
}

func TestVoteReassignment(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	validators, err := getValidators(bc.GetConfig())
	require.NoError(t, err)
	p1, p2 := validators[0], validators[1]

	accountHash := util.Uint160{0xca, 0xfe}
	balance := util.Fixed8FromInt64(10)

	tx := transferTX(t, bc, accountHash, balance)
	b := newBlock(t, bc.GetConfig(), bc.GenesisBlock(), tx)
	require.Equal(t, RelaySucceed, bc.AddBlock(b))

	// Vote for a single validator.
	b2 := newBlock(t, bc.GetConfig(), b, voteTX(accountHash, keys.PublicKeys{p1}))
	require.Equal(t, RelaySucceed, bc.AddBlock(b2))

	v1, err := bc.dao.GetValidatorState(p1)
	require.NoError(t, err)
	assert.Equal(t, balance, v1.Votes)

	vc, err := bc.dao.GetValidatorsCount()
	require.NoError(t, err)
	assert.Equal(t, balance, vc[0])

	// Switch the vote to two validators.
	b3 := newBlock(t, bc.GetConfig(), b2, voteTX(accountHash, keys.PublicKeys{p1, p2}))
	require.Equal(t, RelaySucceed, bc.AddBlock(b3))

	v1, err = bc.dao.GetValidatorState(p1)
	require.NoError(t, err)
	assert.Equal(t, balance, v1.Votes)
	v2, err := bc.dao.GetValidatorState(p2)
	require.NoError(t, err)
	assert.Equal(t, balance, v2.Votes)

	vc, err = bc.dao.GetValidatorsCount()
	require.NoError(t, err)
	assert.Equal(t, util.Fixed8(0), vc[0])
	assert.Equal(t, balance, vc[1])

	// Incoming governing tokens bump the votes of the voted validators,
	// the transfer spends the change output of the first one.
	extra := util.Fixed8FromInt64(5)
	tx2 := spendTX(t, bc, tx, 1, accountHash, extra)
	b4 := newBlock(t, bc.GetConfig(), b3, tx2)
	require.Equal(t, RelaySucceed, bc.AddBlock(b4))

	v1, err = bc.dao.GetValidatorState(p1)
	require.NoError(t, err)
	assert.Equal(t, balance+extra, v1.Votes)
	vc, err = bc.dao.GetValidatorsCount()
	require.NoError(t, err)
	assert.Equal(t, balance+extra, vc[1])
}

func TestEnrollmentAndValidatorDescriptor(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	key, err := keys.NewPrivateKey()
	require.NoError(t, err)
	pub := key.PublicKey()

	enroll := &transaction.Transaction{
		Type: transaction.EnrollmentType,
		Data: &transaction.EnrollmentTX{PublicKey: *pub},
	}
	b := newBlock(t, bc.GetConfig(), bc.GenesisBlock(), enroll)
	require.Equal(t, RelaySucceed, bc.AddBlock(b))

	v, err := bc.dao.GetValidatorState(pub)
	require.NoError(t, err)
	assert.True(t, v.Registered)

	// A validator descriptor can unregister it again. With no votes the
	// state is removed entirely.
	unregister := &transaction.Transaction{
		Type: transaction.StateType,
		Data: &transaction.StateTX{
			Descriptors: []*transaction.StateDescriptor{{
				Type:  transaction.Validator,
				Key:   pub.Bytes(),
				Field: "Registered",
				Value: []byte{0},
			}},
		},
	}
	b2 := newBlock(t, bc.GetConfig(), b, unregister)
	require.Equal(t, RelaySucceed, bc.AddBlock(b2))

	_, err = bc.dao.GetValidatorState(pub)
	require.Error(t, err)
}

func TestRegisterAndIssueAsset(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	key, err := keys.NewPrivateKey()
	require.NoError(t, err)

	register := &transaction.Transaction{
		Type: transaction.RegisterType,
		Data: &transaction.RegisterTX{
			AssetType: transaction.Token,
			Name:      "[{\"lang\":\"en\",\"name\":\"Gopher Coin\"}]",
			Amount:    util.Fixed8FromInt64(1000),
			Precision: 8,
			Owner:     *key.PublicKey(),
			Admin:     util.Uint160{4, 2},
		},
	}
	b := newBlock(t, bc.GetConfig(), bc.GenesisBlock(), register)
	require.Equal(t, RelaySucceed, bc.AddBlock(b))

	asset := bc.GetAssetState(register.Hash())
	require.NotNil(t, asset)
	assert.Equal(t, util.Fixed8FromInt64(1000), asset.Amount)
	assert.Equal(t, util.Fixed8(0), asset.Available)
	assert.Equal(t, uint32(b.Index+registeredAssetLifetime), asset.Expiration)

	// Issue part of the registered asset out of thin air.
	issue := &transaction.Transaction{
		Type: transaction.IssueType,
		Data: &transaction.IssueTX{},
		Outputs: []transaction.Output{{
			AssetID:    register.Hash(),
			Amount:     util.Fixed8FromInt64(100),
			ScriptHash: util.Uint160{1, 1},
		}},
	}
	b2 := newBlock(t, bc.GetConfig(), b, issue)
	require.Equal(t, RelaySucceed, bc.AddBlock(b2))

	asset = bc.GetAssetState(register.Hash())
	require.NotNil(t, asset)
	assert.Equal(t, util.Fixed8FromInt64(100), asset.Available)

	acc := bc.GetAccountState(util.Uint160{1, 1})
	require.NotNil(t, acc)
	assert.Equal(t, util.Fixed8FromInt64(100), acc.GetBalance(register.Hash()))

	// Over-issuing is rejected.
	issue2 := &transaction.Transaction{
		Type: transaction.IssueType,
		Data: &transaction.IssueTX{},
		Outputs: []transaction.Output{{
			AssetID:    register.Hash(),
			Amount:     util.Fixed8FromInt64(100000),
			ScriptHash: util.Uint160{1, 1},
		}},
	}
	b3 := newBlock(t, bc.GetConfig(), b2, issue2)
	assert.Equal(t, RelayInvalid, bc.AddBlock(b3))
}

func TestMempoolAcrossPersist(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	recipient := util.Uint160{0xaa}
	tx := transferTX(t, bc, recipient, util.Fixed8FromInt64(7))
	require.Equal(t, RelaySucceed, bc.RelayTransaction(tx))
	assert.Equal(t, RelayAlreadyExists, bc.RelayTransaction(tx))
	assert.True(t, bc.GetMemPool().ContainsKey(tx.Hash()))

	// A conflicting spend of the same output is kept out of the pool.
	conflict := transferTX(t, bc, util.Uint160{0xbb}, util.Fixed8FromInt64(8))
	assert.Equal(t, RelayInvalid, bc.RelayTransaction(conflict))

	// Mined transactions leave the pool on persist.
	b := newBlock(t, bc.GetConfig(), bc.GenesisBlock(), tx)
	require.Equal(t, RelaySucceed, bc.AddBlock(b))
	assert.False(t, bc.GetMemPool().ContainsKey(tx.Hash()))
	assert.Equal(t, RelayAlreadyExists, bc.RelayTransaction(tx))
}

func TestRelayMinerTransaction(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	tx := transaction.NewMinerTX(42)
	assert.Equal(t, RelayInvalid, bc.RelayTransaction(tx))
}

func TestCalculateClaimable(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	// The system fee part of the bonus needs the intermediate blocks.
	for _, b := range newBlockChain(t, bc, 2) {
		require.Equal(t, RelaySucceed, bc.AddBlock(b))
	}

	// One governing token held over one block of the first generation
	// period generates 8e-8 utility tokens.
	val := bc.CalculateClaimable(util.Fixed8FromInt64(1), 0, 1)
	assert.Equal(t, util.Fixed8(8), val)

	// Ten tokens over two blocks generate twice as much.
	val = bc.CalculateClaimable(util.Fixed8FromInt64(10), 0, 2)
	assert.Equal(t, util.Fixed8(10*8*2), val)
}
