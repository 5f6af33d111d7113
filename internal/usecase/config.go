package usecase

import (
	"context"

	"github.com/runoshun/taskwatch/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	Effective    *domain.Config    // Merged configuration in use
	GlobalConfig domain.ConfigInfo // Global config file info
	LocalConfig  domain.ConfigInfo // Data dir config file info
}

// ShowConfig displays configuration file information.
type ShowConfig struct {
	configManager domain.ConfigManager
	cfg           *domain.Config
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, cfg *domain.Config) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		cfg:           cfg,
	}
}

// Execute retrieves configuration file information.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	return &ShowConfigOutput{
		Effective:    uc.cfg,
		GlobalConfig: uc.configManager.GetGlobalConfigInfo(),
		LocalConfig:  uc.configManager.GetLocalConfigInfo(),
	}, nil
}

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Global bool // If true, initialize global config; otherwise the data dir config
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path string // Path to the created config file
}

// InitConfig generates a configuration file template.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{
		configManager: configManager,
	}
}

// Execute creates a configuration file holding the default values.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	var err error
	var path string

	cfg := domain.NewDefaultConfig()
	if in.Global {
		path = uc.configManager.GetGlobalConfigInfo().Path
		err = uc.configManager.InitGlobalConfig(cfg)
	} else {
		path = uc.configManager.GetLocalConfigInfo().Path
		err = uc.configManager.InitLocalConfig(cfg)
	}

	if err != nil {
		return nil, err
	}

	return &InitConfigOutput{Path: path}, nil
}
