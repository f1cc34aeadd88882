package core

import (
	"github.com/novachain/nova-go/pkg/config"
	"github.com/novachain/nova-go/pkg/core/block"
	"github.com/novachain/nova-go/pkg/core/transaction"
	"github.com/novachain/nova-go/pkg/crypto/hash"
	"github.com/novachain/nova-go/pkg/crypto/keys"
	"github.com/novachain/nova-go/pkg/smartcontract"
	"github.com/novachain/nova-go/pkg/util"
	"github.com/novachain/nova-go/pkg/vm/opcode"
)

// genesisNonce is the nonce used both as the consensus data of the genesis
// block and as the nonce of its miner transaction.
const genesisNonce = 2083236893

// createGenesisBlock creates a genesis block based on the given
// configuration.
func createGenesisBlock(cfg config.ProtocolConfiguration) (*block.Block, error) {
	validators, err := getValidators(cfg)
	if err != nil {
		return nil, err
	}

	nextConsensus, err := getNextConsensusAddress(validators)
	if err != nil {
		return nil, err
	}

	base := block.Base{
		Version:       0,
		PrevHash:      util.Uint256{},
		Timestamp:     uint32(1468595301),
		Index:         0,
		ConsensusData: genesisNonce,
		NextConsensus: nextConsensus,
		Script: transaction.Witness{
			InvocationScript:   []byte{},
			VerificationScript: []byte{byte(opcode.PUSHT)},
		},
	}

	governingTX := governingTokenTX()
	utilityTX := utilityTokenTX()
	rawScript, err := smartcontract.CreateMultiSigRedeemScript(
		len(cfg.StandbyValidators)/2+1,
		validators,
	)
	if err != nil {
		return nil, err
	}
	scriptOut := hash.Hash160(rawScript)

	b := &block.Block{
		Base: base,
		Transactions: []*transaction.Transaction{
			{
				Type: transaction.MinerType,
				Data: &transaction.MinerTX{
					Nonce: genesisNonce,
				},
				Attributes: []transaction.Attribute{},
				Inputs:     []transaction.Input{},
				Outputs:    []transaction.Output{},
				Scripts:    []transaction.Witness{},
			},
			governingTX,
			utilityTX,
			{
				Type:   transaction.IssueType,
				Data:   &transaction.IssueTX{}, // no fields.
				Inputs: []transaction.Input{},
				Outputs: []transaction.Output{
					{
						AssetID:    governingTX.Hash(),
						Amount:     governingTX.Data.(*transaction.RegisterTX).Amount,
						ScriptHash: scriptOut,
					},
				},
				Scripts: []transaction.Witness{
					{
						InvocationScript:   []byte{},
						VerificationScript: []byte{byte(opcode.PUSHT)},
					},
				},
			},
		},
	}

	if err = b.RebuildMerkleRoot(); err != nil {
		return nil, err
	}

	return b, nil
}

func governingTokenTX() *transaction.Transaction {
	adminScript := []byte{byte(opcode.PUSHT)}
	registerTX := &transaction.RegisterTX{
		AssetType: transaction.GoverningToken,
		Name:      "[{\"lang\":\"zh-CN\",\"name\":\"新星币\"},{\"lang\":\"en\",\"name\":\"Nova\"}]",
		Amount:    util.Fixed8FromInt64(100000000),
		Precision: 0,
		Owner:     keys.PublicKey{},
		Admin:     hash.Hash160(adminScript),
	}

	tx := &transaction.Transaction{
		Type:       transaction.RegisterType,
		Data:       registerTX,
		Attributes: []transaction.Attribute{},
		Inputs:     []transaction.Input{},
		Outputs:    []transaction.Output{},
		Scripts:    []transaction.Witness{},
	}

	return tx
}

func utilityTokenTX() *transaction.Transaction {
	adminScript := []byte{byte(opcode.PUSHF)}
	registerTX := &transaction.RegisterTX{
		AssetType: transaction.UtilityToken,
		Name:      "[{\"lang\":\"zh-CN\",\"name\":\"新星燃料\"},{\"lang\":\"en\",\"name\":\"NovaGas\"}]",
		Amount:    calculateUtilityAmount(),
		Precision: 8,
		Owner:     keys.PublicKey{},
		Admin:     hash.Hash160(adminScript),
	}

	tx := &transaction.Transaction{
		Type:       transaction.RegisterType,
		Data:       registerTX,
		Attributes: []transaction.Attribute{},
		Inputs:     []transaction.Input{},
		Outputs:    []transaction.Output{},
		Scripts:    []transaction.Witness{},
	}

	return tx
}

func getValidators(cfg config.ProtocolConfiguration) (keys.PublicKeys, error) {
	validators := make(keys.PublicKeys, len(cfg.StandbyValidators))
	for i, pubKeyStr := range cfg.StandbyValidators {
		pubKey, err := keys.NewPublicKeyFromString(pubKeyStr)
		if err != nil {
			return nil, err
		}
		validators[i] = pubKey
	}
	return validators, nil
}

// getNextConsensusAddress returns the Byzantine quorum multisignature script
// hash over the given validators, requiring n - (n-1)/3 signatures out of n.
func getNextConsensusAddress(validators keys.PublicKeys) (val util.Uint160, err error) {
	vlen := len(validators)
	raw, err := smartcontract.CreateMultiSigRedeemScript(
		vlen-(vlen-1)/3,
		validators,
	)
	if err != nil {
		return val, err
	}
	return hash.Hash160(raw), nil
}

func calculateUtilityAmount() util.Fixed8 {
	sum := 0
	for i := 0; i < len(genAmount); i++ {
		sum += genAmount[i]
	}
	return util.Fixed8FromInt64(int64(sum * decrementInterval))
}

// headerSliceReverse reverses the given slice of *Header.
func headerSliceReverse(dest []*block.Header) {
	for i, j := 0, len(dest)-1; i < j; i, j = i+1, j-1 {
		dest[i], dest[j] = dest[j], dest[i]
	}
}
