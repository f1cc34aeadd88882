package dao

import (
	"github.com/novachain/nova-go/pkg/core/state"
	"github.com/novachain/nova-go/pkg/crypto/keys"
	"github.com/novachain/nova-go/pkg/util"
)

// Cached is a data access object that mimics DAO, but has a write cache
// for accounts, unspent coins, spent coins and validators. These are the
// most frequently used objects in the block persist procedure.
type Cached struct {
	DAO
	accounts   map[util.Uint160]*state.Account
	unspents   map[util.Uint256]*state.UnspentCoin
	spents     map[util.Uint256]*state.SpentCoin
	validators map[string]*state.Validator
	// dropped validators to be removed from the store on Persist.
	droppedValidators map[string]*state.Validator
	validatorsCount   *state.ValidatorsCount
}

// NewCached returns a new Cached wrapping around the given DAO.
func NewCached(d DAO) *Cached {
	accs := make(map[util.Uint160]*state.Account)
	unspents := make(map[util.Uint256]*state.UnspentCoin)
	spents := make(map[util.Uint256]*state.SpentCoin)
	vals := make(map[string]*state.Validator)
	dvals := make(map[string]*state.Validator)
	return &Cached{d.GetWrapped(), accs, unspents, spents, vals, dvals, nil}
}

// GetAccountStateOrNew retrieves Account from the cache or the underlying
// DAO or creates a new one if it doesn't exist.
func (cd *Cached) GetAccountStateOrNew(hash util.Uint160) (*state.Account, error) {
	if cd.accounts[hash] != nil {
		return cd.accounts[hash], nil
	}
	return cd.DAO.GetAccountStateOrNew(hash)
}

// GetAccountState retrieves Account from the cache or the underlying DAO.
func (cd *Cached) GetAccountState(hash util.Uint160) (*state.Account, error) {
	if cd.accounts[hash] != nil {
		return cd.accounts[hash], nil
	}
	return cd.DAO.GetAccountState(hash)
}

// PutAccountState saves the given Account in the cache.
func (cd *Cached) PutAccountState(as *state.Account) error {
	cd.accounts[as.ScriptHash] = as
	return nil
}

// GetUnspentCoinState retrieves UnspentCoin from the cache or the underlying
// DAO.
func (cd *Cached) GetUnspentCoinState(hash util.Uint256) (*state.UnspentCoin, error) {
	if cd.unspents[hash] != nil {
		return cd.unspents[hash], nil
	}
	return cd.DAO.GetUnspentCoinState(hash)
}

// PutUnspentCoinState saves the given UnspentCoin in the cache.
func (cd *Cached) PutUnspentCoinState(hash util.Uint256, ucs *state.UnspentCoin) error {
	cd.unspents[hash] = ucs
	return nil
}

// GetSpentCoinState retrieves SpentCoin from the cache or the underlying DAO.
func (cd *Cached) GetSpentCoinState(hash util.Uint256) (*state.SpentCoin, error) {
	if cd.spents[hash] != nil {
		return cd.spents[hash], nil
	}
	return cd.DAO.GetSpentCoinState(hash)
}

// GetSpentCoinsOrNew returns spent coins from the cache or the underlying
// DAO, creating a new state in case of absence.
func (cd *Cached) GetSpentCoinsOrNew(hash util.Uint256, height uint32) (*state.SpentCoin, error) {
	if cd.spents[hash] != nil {
		return cd.spents[hash], nil
	}
	return cd.DAO.GetSpentCoinsOrNew(hash, height)
}

// PutSpentCoinState saves the given SpentCoin in the cache.
func (cd *Cached) PutSpentCoinState(hash util.Uint256, scs *state.SpentCoin) error {
	cd.spents[hash] = scs
	return nil
}

// DeleteSpentCoinState drops the given SpentCoin both from the cache and the
// underlying DAO.
func (cd *Cached) DeleteSpentCoinState(hash util.Uint256) error {
	delete(cd.spents, hash)
	return cd.DAO.DeleteSpentCoinState(hash)
}

// GetValidatorStateOrNew retrieves the validator from the cache or the
// underlying DAO, creating a new state in case of absence.
func (cd *Cached) GetValidatorStateOrNew(publicKey *keys.PublicKey) (*state.Validator, error) {
	key := string(publicKey.Bytes())
	if cd.validators[key] != nil {
		return cd.validators[key], nil
	}
	if cd.droppedValidators[key] != nil {
		return &state.Validator{PublicKey: publicKey}, nil
	}
	return cd.DAO.GetValidatorStateOrNew(publicKey)
}

// GetValidatorState retrieves the validator from the cache or the underlying
// DAO.
func (cd *Cached) GetValidatorState(publicKey *keys.PublicKey) (*state.Validator, error) {
	key := string(publicKey.Bytes())
	if cd.validators[key] != nil {
		return cd.validators[key], nil
	}
	return cd.DAO.GetValidatorState(publicKey)
}

// PutValidatorState saves the given validator in the cache.
func (cd *Cached) PutValidatorState(vs *state.Validator) error {
	key := string(vs.PublicKey.Bytes())
	delete(cd.droppedValidators, key)
	cd.validators[key] = vs
	return nil
}

// DeleteValidatorState removes the given validator from the cache, it will
// be dropped from the store on Persist.
func (cd *Cached) DeleteValidatorState(vs *state.Validator) error {
	key := string(vs.PublicKey.Bytes())
	delete(cd.validators, key)
	cd.droppedValidators[key] = vs
	return nil
}

// GetValidatorsCount retrieves the ValidatorsCount from the cache or the
// underlying DAO.
func (cd *Cached) GetValidatorsCount() (*state.ValidatorsCount, error) {
	if cd.validatorsCount != nil {
		return cd.validatorsCount, nil
	}
	return cd.DAO.GetValidatorsCount()
}

// PutValidatorsCount saves the given ValidatorsCount in the cache.
func (cd *Cached) PutValidatorsCount(vc *state.ValidatorsCount) error {
	cd.validatorsCount = vc
	return nil
}

// Persist flushes all the changes made into the (supposedly) persistent
// underlying store.
func (cd *Cached) Persist() (int, error) {
	for sc := range cd.accounts {
		err := cd.DAO.PutAccountState(cd.accounts[sc])
		if err != nil {
			return 0, err
		}
	}
	for hash := range cd.unspents {
		err := cd.DAO.PutUnspentCoinState(hash, cd.unspents[hash])
		if err != nil {
			return 0, err
		}
	}
	for hash := range cd.spents {
		err := cd.DAO.PutSpentCoinState(hash, cd.spents[hash])
		if err != nil {
			return 0, err
		}
	}
	for key := range cd.validators {
		err := cd.DAO.PutValidatorState(cd.validators[key])
		if err != nil {
			return 0, err
		}
	}
	for key := range cd.droppedValidators {
		err := cd.DAO.DeleteValidatorState(cd.droppedValidators[key])
		if err != nil {
			return 0, err
		}
	}
	if cd.validatorsCount != nil {
		err := cd.DAO.PutValidatorsCount(cd.validatorsCount)
		if err != nil {
			return 0, err
		}
	}
	return cd.DAO.Persist()
}
