package a2a

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed agent.json
var agentCardData []byte

// AgentCard returns the agent card document after checking it is valid JSON.
func AgentCard() ([]byte, error) {
	if !json.Valid(agentCardData) {
		return nil, fmt.Errorf("agent card is not valid JSON")
	}
	out := make([]byte, len(agentCardData))
	copy(out, agentCardData)
	return out, nil
}
