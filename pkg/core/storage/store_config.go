package storage

type (
	// DBConfiguration describes configuration for DB. Supported types:
	// 'leveldb', 'boltdb' and 'inmemory'.
	DBConfiguration struct {
		Type           string         `yaml:"Type"`
		LevelDBOptions LevelDBOptions `yaml:"LevelDBOptions"`
		BoltDBOptions  BoltDBOptions  `yaml:"BoltDBOptions"`
	}
)
