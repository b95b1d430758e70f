package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/gdb"
	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/xzap"
)

// Config is the top level configuration of the dashboard backend.
type Config struct {
	Api        ApiCfg       `toml:"api" mapstructure:"api" json:"api"`
	Log        xzap.LogConf `toml:"log" mapstructure:"log" json:"log"`
	Kv         KvConf       `toml:"kv" mapstructure:"kv" json:"kv"`
	DB         gdb.Config   `toml:"db" mapstructure:"db" json:"db"`
	ChainCfg   ChainCfg     `toml:"chain_cfg" mapstructure:"chain_cfg" json:"chain_cfg"`
	Contract   ContractCfg  `toml:"contract_cfg" mapstructure:"contract_cfg" json:"contract_cfg"`
	Wallet     WalletCfg    `toml:"wallet_cfg" mapstructure:"wallet_cfg" json:"wallet_cfg"`
	BotApi     BotApiCfg    `toml:"bot_api" mapstructure:"bot_api" json:"bot_api"`
	ProjectCfg ProjectCfg   `toml:"project_cfg" mapstructure:"project_cfg" json:"project_cfg"`
	Monitor    Monitor      `toml:"monitor" mapstructure:"monitor" json:"monitor"`
}

type ApiCfg struct {
	Port string `toml:"port" mapstructure:"port" json:"port"` // listen address, e.g. ":9100"
}

type ChainCfg struct {
	Name     string `toml:"name" mapstructure:"name" json:"name"`
	ID       int64  `toml:"id" mapstructure:"id" json:"id"`
	Endpoint string `toml:"endpoint" mapstructure:"endpoint" json:"endpoint"`
}

type ContractCfg struct {
	AgentNftAddress string `toml:"agent_nft_address" mapstructure:"agent_nft_address" json:"agent_nft_address"`
	MinterAddress   string `toml:"minter_address" mapstructure:"minter_address" json:"minter_address"`
	CollectionName  string `toml:"collection_name" mapstructure:"collection_name" json:"collection_name"`
	ImageUrlFormat  string `toml:"image_url_format" mapstructure:"image_url_format" json:"image_url_format"`
}

// WalletCfg configures the wallet login provider. ClientID mirrors the
// provider SDK client identifier and is required; AccountKey is the hex
// encoded secp256k1 key of the custodial account the daemon signs with.
type WalletCfg struct {
	ClientID   string `toml:"client_id" mapstructure:"client_id" json:"client_id"`
	Network    string `toml:"network" mapstructure:"network" json:"network"`
	AccountKey string `toml:"account_key" mapstructure:"account_key" json:"-"`
	Name       string `toml:"name" mapstructure:"name" json:"name"`
	Email      string `toml:"email" mapstructure:"email" json:"email"`
	AvatarUrl  string `toml:"avatar_url" mapstructure:"avatar_url" json:"avatar_url"`
}

type BotApiCfg struct {
	Url            string `toml:"url" mapstructure:"url" json:"url"`
	TimeoutSeconds int64  `toml:"timeout_seconds" mapstructure:"timeout_seconds" json:"timeout_seconds"`
}

type ProjectCfg struct {
	Name string `toml:"name" mapstructure:"name" json:"name"`
}

type Monitor struct {
	PprofEnable bool  `toml:"pprof_enable" mapstructure:"pprof_enable" json:"pprof_enable"`
	PprofPort   int64 `toml:"pprof_port" mapstructure:"pprof_port" json:"pprof_port"`
}

type KvConf struct {
	Redis []*Redis `toml:"redis" mapstructure:"redis" json:"redis"`
}

type Redis struct {
	Host string `toml:"host" mapstructure:"host" json:"host"`
	Type string `toml:"type" mapstructure:"type" json:"type"`
	Pass string `toml:"pass" mapstructure:"pass" json:"pass"`
}

// UnmarshalConfig loads and parses the config file at the given path.
func UnmarshalConfig(configFilePath string) (*Config, error) {
	viper.SetConfigFile(configFilePath)
	viper.SetConfigType("toml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("AGENTDASH")
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// UnmarshalCmdConfig parses the config file discovered by the root command.
func UnmarshalCmdConfig() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var c Config

	if err := viper.Unmarshal(&c); err != nil {
		return nil, err
	}

	return &c, nil
}
