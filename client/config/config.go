package config

import (
	"fmt"
	"strings"

	"bikeshare/communication"
	loaderConfig "bikeshare/domain/loader/config"
	"bikeshare/utils"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFilepath = "./client/config/config.yaml"

// ClientConfig config of the interactive client
// + PageSize: amount of trips shown each time the user asks for raw data
// + Loader: table of cities and how to read their sources
// + Publisher: where to publish the responses of each analysis
type ClientConfig struct {
	PageSize  int                           `yaml:"page_size" validate:"gte=0"`
	Loader    loaderConfig.LoaderConfig     `yaml:"loader"`
	Publisher communication.PublisherConfig `yaml:"publisher"`
}

// LoadConfig reads and validates the config file in filepath
func LoadConfig(filepath string) (*ClientConfig, error) {
	configFile, err := utils.GetConfigFile(filepath)
	if err != nil {
		return nil, err
	}

	return ParseConfig(configFile)
}

// ParseConfig parses and validates a YAML config
func ParseConfig(configBytes []byte) (*ClientConfig, error) {
	var clientConfig ClientConfig
	err := yaml.Unmarshal(configBytes, &clientConfig)
	if err != nil {
		return nil, fmt.Errorf("error parsing client config file: %s", err)
	}

	if err := clientConfig.Validate(); err != nil {
		return nil, err
	}

	clientConfig.Loader = clientConfig.Loader.WithDefaults()
	return &clientConfig, nil
}

func (cc *ClientConfig) Validate() error {
	v := validator.New()
	if err := v.Struct(cc); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}

	if cc.Publisher.Enabled && cc.Publisher.OutputQueue.Name == "" {
		return fmt.Errorf("%w: publisher is enabled but output queue has no name", ErrInvalidConfig)
	}

	seen := make(map[string]bool)
	for _, city := range cc.Loader.Cities {
		name := strings.ToLower(strings.TrimSpace(city.Name))
		if seen[name] {
			return fmt.Errorf("%w: city %q is declared twice", ErrInvalidConfig, city.Name)
		}
		seen[name] = true
	}

	return nil
}
