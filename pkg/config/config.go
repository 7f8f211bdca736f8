package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/taskgate/config"
	ConfigFileName    = "taskgate.yml"
)

// TaskGateConfig holds all TaskGate configuration settings
type TaskGateConfig struct {
	// TrustedProxies is a list of CIDR ranges for trusted proxies
	TrustedProxies []string `yaml:"trusted_proxies" json:"trusted_proxies"`

	// AuthTokenSecret signs access tokens issued by the login endpoint
	AuthTokenSecret string `yaml:"auth_token_secret" json:"auth_token_secret"`

	// AuthTokenTTL is the TTL for access tokens in minutes
	AuthTokenTTL int `yaml:"auth_token_ttl" json:"auth_token_ttl"`

	// InviteTokenSecret signs project invite tokens. It must differ from
	// AuthTokenSecret so that leaking one secret does not compromise the other.
	InviteTokenSecret string `yaml:"invite_token_secret" json:"invite_token_secret"`

	// InviteTokenTTL is the TTL for invite tokens in minutes
	InviteTokenTTL int `yaml:"invite_token_ttl" json:"invite_token_ttl"`

	// IdempotencyTTL is the retention window for idempotency records in minutes
	IdempotencyTTL int `yaml:"idempotency_ttl" json:"idempotency_ttl"`

	// APIListLimitMax is the maximum number of results for listing requests
	APIListLimitMax int `yaml:"api_list_limit_max" json:"api_list_limit_max"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *TaskGateConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *TaskGateConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *TaskGateConfig {
	return &TaskGateConfig{
		TrustedProxies:  []string{},
		AuthTokenTTL:    60,
		InviteTokenTTL:  15,
		IdempotencyTTL:  5,
		APIListLimitMax: 1000,
		sources:         make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*TaskGateConfig, error) {
	config := newDefault()

	// Initialize all sources as "default"
	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	// Determine config file path
	configPath := os.Getenv("TASKGATE_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	// Try to load from config file
	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig TaskGateConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	// Override with environment variables
	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"trusted_proxies", "auth_token_secret", "auth_token_ttl",
		"invite_token_secret", "invite_token_ttl", "idempotency_ttl",
		"api_list_limit_max",
	}
}

func (c *TaskGateConfig) applyFileConfig(file *TaskGateConfig) {
	if len(file.TrustedProxies) > 0 {
		c.TrustedProxies = file.TrustedProxies
		c.sources["trusted_proxies"] = "file"
	}
	if file.AuthTokenSecret != "" {
		c.AuthTokenSecret = file.AuthTokenSecret
		c.sources["auth_token_secret"] = "file"
	}
	if file.AuthTokenTTL != 0 {
		c.AuthTokenTTL = file.AuthTokenTTL
		c.sources["auth_token_ttl"] = "file"
	}
	if file.InviteTokenSecret != "" {
		c.InviteTokenSecret = file.InviteTokenSecret
		c.sources["invite_token_secret"] = "file"
	}
	if file.InviteTokenTTL != 0 {
		c.InviteTokenTTL = file.InviteTokenTTL
		c.sources["invite_token_ttl"] = "file"
	}
	if file.IdempotencyTTL != 0 {
		c.IdempotencyTTL = file.IdempotencyTTL
		c.sources["idempotency_ttl"] = "file"
	}
	if file.APIListLimitMax != 0 {
		c.APIListLimitMax = file.APIListLimitMax
		c.sources["api_list_limit_max"] = "file"
	}
}

func (c *TaskGateConfig) applyEnvConfig() {
	if val := os.Getenv("TASKGATE_TRUSTED_PROXIES"); val != "" {
		c.TrustedProxies = splitAndTrim(val)
		c.sources["trusted_proxies"] = "environment"
	}
	if val := os.Getenv("TASKGATE_AUTH_TOKEN_SECRET"); val != "" {
		c.AuthTokenSecret = val
		c.sources["auth_token_secret"] = "environment"
	}
	if val := os.Getenv("TASKGATE_AUTH_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.AuthTokenTTL = i
			c.sources["auth_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("TASKGATE_INVITE_TOKEN_SECRET"); val != "" {
		c.InviteTokenSecret = val
		c.sources["invite_token_secret"] = "environment"
	}
	if val := os.Getenv("TASKGATE_INVITE_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.InviteTokenTTL = i
			c.sources["invite_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("TASKGATE_IDEMPOTENCY_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.IdempotencyTTL = i
			c.sources["idempotency_ttl"] = "environment"
		}
	}
	if val := os.Getenv("TASKGATE_API_LIST_LIMIT_MAX"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.APIListLimitMax = i
			c.sources["api_list_limit_max"] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file
func (c *TaskGateConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *TaskGateConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// AuthTTL returns the access token TTL as a duration
func (c *TaskGateConfig) AuthTTL() time.Duration {
	return time.Duration(c.AuthTokenTTL) * time.Minute
}

// InviteTTL returns the invite token TTL as a duration
func (c *TaskGateConfig) InviteTTL() time.Duration {
	return time.Duration(c.InviteTokenTTL) * time.Minute
}

// IdempotencyWindow returns the idempotency retention window as a duration
func (c *TaskGateConfig) IdempotencyWindow() time.Duration {
	return time.Duration(c.IdempotencyTTL) * time.Minute
}

// IsTrustedProxy checks if an IP is from a trusted proxy
func (c *TaskGateConfig) IsTrustedProxy(ip string) bool {
	if len(c.TrustedProxies) == 0 {
		return false
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}

	for _, cidr := range c.TrustedProxies {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			// Try as plain IP
			if net.ParseIP(cidr) != nil && cidr == ip {
				return true
			}
			continue
		}
		if network.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// Validate validates the configuration
func (c *TaskGateConfig) Validate() error {
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			if net.ParseIP(cidr) == nil {
				return fmt.Errorf("invalid trusted_proxies value: %s", cidr)
			}
		}
	}

	if c.AuthTokenSecret == "" {
		return fmt.Errorf("auth_token_secret is required")
	}
	if c.InviteTokenSecret == "" {
		return fmt.Errorf("invite_token_secret is required")
	}
	// Separate secrets keep a leaked invite token secret from forging
	// access tokens, and vice versa.
	if c.AuthTokenSecret == c.InviteTokenSecret {
		return fmt.Errorf("invite_token_secret must differ from auth_token_secret")
	}

	if c.InviteTokenTTL <= 0 {
		return fmt.Errorf("invite_token_ttl must be positive")
	}
	if c.IdempotencyTTL <= 0 {
		return fmt.Errorf("idempotency_ttl must be positive")
	}

	return nil
}

// Attributes returns all configuration attributes with their values and
// sources. Secrets are redacted.
func (c *TaskGateConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "trusted_proxies", Value: strings.Join(c.TrustedProxies, ","), Source: c.Source("trusted_proxies")},
		{Name: "auth_token_secret", Value: redact(c.AuthTokenSecret), Source: c.Source("auth_token_secret")},
		{Name: "auth_token_ttl", Value: strconv.Itoa(c.AuthTokenTTL), Source: c.Source("auth_token_ttl")},
		{Name: "invite_token_secret", Value: redact(c.InviteTokenSecret), Source: c.Source("invite_token_secret")},
		{Name: "invite_token_ttl", Value: strconv.Itoa(c.InviteTokenTTL), Source: c.Source("invite_token_ttl")},
		{Name: "idempotency_ttl", Value: strconv.Itoa(c.IdempotencyTTL), Source: c.Source("idempotency_ttl")},
		{Name: "api_list_limit_max", Value: strconv.Itoa(c.APIListLimitMax), Source: c.Source("api_list_limit_max")},
	}
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}

// FormatText returns a text representation of the configuration
func (c *TaskGateConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-40s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-40s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-40s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *TaskGateConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
