package config

import (
	"fmt"
	"os"
	"slices"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentProviderName = "PALETTE_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "PALETTE_AGENT_BASE_URL"
	EnvAgentToken        = "PALETTE_AGENT_TOKEN"
	EnvAgentDeployment   = "PALETTE_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "PALETTE_AGENT_API_VERSION"
	EnvAgentAuthType     = "PALETTE_AGENT_AUTH_TYPE"
	EnvAgentModelName    = "PALETTE_AGENT_MODEL_NAME"
)

// JudgeSystemPrompt is used when the agent config sets no system prompt.
const JudgeSystemPrompt = "You review marketing creatives against a brand's established style. " +
	"Answer exactly in the format each request asks for, with no commentary."

// judgeProviders are the go-agents providers the judge can run on.
var judgeProviders = []string{"ollama", "azure"}

// agentOptionEnv maps environment variables onto provider options.
var agentOptionEnv = []struct {
	env, option string
}{
	{EnvAgentToken, "token"},
	{EnvAgentDeployment, "deployment"},
	{EnvAgentAPIVersion, "api_version"},
	{EnvAgentAuthType, "auth_type"},
}

// FinalizeAgent prepares the judge's go-agents AgentConfig: go-agents
// defaults under the configured values, PALETTE_AGENT_* overrides, then
// validation.
func FinalizeAgent(c *gaconfig.AgentConfig) error {
	loadAgentDefaults(c)
	loadAgentEnv(c)
	return validateAgent(c)
}

func loadAgentDefaults(c *gaconfig.AgentConfig) {
	merged := gaconfig.DefaultAgentConfig()
	merged.Name = "palette-judge"
	merged.SystemPrompt = JudgeSystemPrompt
	merged.Merge(c)
	*c = merged

	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
}

func loadAgentEnv(c *gaconfig.AgentConfig) {
	if v := os.Getenv(EnvAgentProviderName); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv(EnvAgentBaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvAgentModelName); v != "" {
		c.Model.Name = v
	}
	for _, o := range agentOptionEnv {
		if v := os.Getenv(o.env); v != "" {
			c.Provider.Options[o.option] = v
		}
	}
}

func validateAgent(c *gaconfig.AgentConfig) error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if !slices.Contains(judgeProviders, c.Provider.Name) {
		return fmt.Errorf("unsupported provider %q, want one of %v", c.Provider.Name, judgeProviders)
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider base_url required")
	}
	if c.Provider.Name == "azure" && c.Provider.Options["deployment"] == nil {
		return fmt.Errorf("azure provider requires a deployment (%s)", EnvAgentDeployment)
	}
	return nil
}
