package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AgentConfig tunes the aging engine itself.
type AgentConfig struct {
	Name            string `yaml:"name"`
	AgeTimeout      string `yaml:"age_timeout"`
	FlowMultiplier  uint64 `yaml:"flow_multiplier"`
	DefaultInterval string `yaml:"default_interval"`
	MinFlowsPerPass uint32 `yaml:"min_flows_per_pass"`
}

// DatapathConfig selects and tunes the kernel flow source. VRF names the
// routing instance all learned flows are attributed to.
type DatapathConfig struct {
	Type         string `yaml:"type"`
	PollInterval string `yaml:"poll_interval"`
	PcapPath     string `yaml:"pcap_path"`
	VRF          string `yaml:"vrf"`
}

// NetworkDef maps an address prefix to a virtual network name. Local marks
// prefixes whose endpoints terminate on this node.
type NetworkDef struct {
	Name  string `yaml:"name"`
	CIDR  string `yaml:"cidr"`
	Local bool   `yaml:"local"`
}

// VMDef names the workload behind an address, used to tag export records.
type VMDef struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

// NATSConfig holds the connection details for the record transport.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// ClickHouseConfig holds the connection details for the record store.
type ClickHouseConfig struct {
	Addr          string `yaml:"addr"`
	Database      string `yaml:"database"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	FlushInterval string `yaml:"flush_interval"`
}

// APIConfig configures the query service endpoints.
type APIConfig struct {
	GrpcListenAddr string `yaml:"grpc_listen_addr"`
	HttpListenAddr string `yaml:"http_listen_addr"`
}

// MetricsConfig configures the Prometheus scrape endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	Agent      AgentConfig      `yaml:"agent"`
	Datapath   DatapathConfig   `yaml:"datapath"`
	Networks   []NetworkDef     `yaml:"networks"`
	VMs        []VMDef          `yaml:"vms"`
	NATS       NATSConfig       `yaml:"nats"`
	ClickHouse ClickHouseConfig `yaml:"clickhouse"`
	API        APIConfig        `yaml:"api"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// LoadConfig reads the configuration from a YAML file and returns a Config struct.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	return &cfg, nil
}
