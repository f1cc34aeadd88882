package config

import (
	"fmt"
	"os"
	"time"

	"github.com/novachain/nova-go/pkg/core/storage"
	"gopkg.in/yaml.v2"
)

const (
	userAgentFormat = "/NOVA-GO:%s/"

	// Valid NetMode constants.
	ModeMainNet     NetMode = 0x0061766f // 6387311
	ModeTestNet     NetMode = 0x7461766f // 1952544367
	ModePrivNet     NetMode = 56753
	ModeUnitTestNet NetMode = 0
)

// Version is the version of the node, set at build time.
var Version string

type (
	// Config is the top level struct representing the config for the node.
	Config struct {
		ProtocolConfiguration    ProtocolConfiguration    `yaml:"ProtocolConfiguration"`
		ApplicationConfiguration ApplicationConfiguration `yaml:"ApplicationConfiguration"`
	}

	// ProtocolConfiguration represents the protocol config.
	ProtocolConfiguration struct {
		Magic                   NetMode   `yaml:"Magic"`
		AddressVersion          byte      `yaml:"AddressVersion"`
		SecondsPerBlock         int       `yaml:"SecondsPerBlock"`
		MaxTransactionsPerBlock int       `yaml:"MaxTransactionsPerBlock"`
		MemPoolSize             int       `yaml:"MemPoolSize"`
		StandbyValidators       []string  `yaml:"StandbyValidators"`
		SeedList                []string  `yaml:"SeedList"`
		SystemFee               SystemFee `yaml:"SystemFee"`
		// VerifyBlocks is whether to verify received blocks.
		VerifyBlocks bool `yaml:"VerifyBlocks"`
		// VerifyTransactions is whether to verify transactions in received blocks.
		VerifyTransactions bool `yaml:"VerifyTransactions"`
	}

	// SystemFee fees related to system.
	SystemFee struct {
		EnrollmentTransaction int64 `yaml:"EnrollmentTransaction"`
		IssueTransaction      int64 `yaml:"IssueTransaction"`
		PublishTransaction    int64 `yaml:"PublishTransaction"`
		RegisterTransaction   int64 `yaml:"RegisterTransaction"`
	}

	// ApplicationConfiguration config specific to the node.
	ApplicationConfiguration struct {
		LogPath           string                  `yaml:"LogPath"`
		DBConfiguration   storage.DBConfiguration `yaml:"DBConfiguration"`
		NodePort          uint16                  `yaml:"NodePort"`
		Relay             bool                    `yaml:"Relay"`
		DialTimeout       time.Duration           `yaml:"DialTimeout"`
		ProtoTickInterval time.Duration           `yaml:"ProtoTickInterval"`
		MaxPeers          int                     `yaml:"MaxPeers"`
	}

	// NetMode describes the mode the blockchain will operate on.
	NetMode uint32
)

// String implements the stringer interface.
func (n NetMode) String() string {
	switch n {
	case ModePrivNet:
		return "privnet"
	case ModeTestNet:
		return "testnet"
	case ModeMainNet:
		return "mainnet"
	case ModeUnitTestNet:
		return "unit_testnet"
	default:
		return "net unknown"
	}
}

// GenerateUserAgent creates a user agent string based on the build time
// environment.
func (c Config) GenerateUserAgent() string {
	return fmt.Sprintf(userAgentFormat, Version)
}

// TryGetValue returns the system fee for the given transaction type byte.
func (s SystemFee) TryGetValue(txType byte) int64 {
	switch txType {
	case 0x20: // enrollment
		return s.EnrollmentTransaction
	case 0x01: // issue
		return s.IssueTransaction
	case 0xd0: // publish
		return s.PublishTransaction
	case 0x40: // register
		return s.RegisterTransaction
	default:
		return 0
	}
}

// Load attempts to load the config from the given path for the given netMode.
func Load(path string, netMode NetMode) (Config, error) {
	configPath := fmt.Sprintf("%s/protocol.%s.yml", path, netMode)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config '%s' doesn't exist: %w", configPath, err)
	}

	configData, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}

	config := Config{
		ProtocolConfiguration: ProtocolConfiguration{
			SecondsPerBlock: 15,
			MemPoolSize:     50000,
		},
	}

	err = yaml.Unmarshal(configData, &config)
	if err != nil {
		return Config{}, fmt.Errorf("problem unmarshaling config data: %w", err)
	}

	return config, nil
}
