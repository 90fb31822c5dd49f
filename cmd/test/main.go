package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	blue   = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	purple = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the agent")
	testType := flag.String("test", "all", "Test type: all, health, agent-card, profile, api, download, input-required, custom")
	description := flag.String("description", "", "Product description for profile generation (for custom test)")
	flag.Parse()

	client := NewTestClient(*baseURL)

	printHeader("ICP Generator - Test Suite")
	fmt.Println(cyan.Render("Base URL: " + *baseURL))
	fmt.Println()

	switch *testType {
	case "all":
		client.runAllTests()
	case "health":
		client.testHealthCheck()
	case "agent-card":
		client.testAgentCard()
	case "profile":
		client.testProfileGeneration()
	case "api":
		client.testAPIProfile()
	case "download":
		client.testDownload()
	case "input-required":
		client.testInputRequired()
	case "custom":
		if *description == "" {
			printError("Description is required for custom test. Use -description flag")
			os.Exit(1)
		}
		client.testCustomProfile(*description)
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, agent-card, profile, api, download, input-required, custom")
		os.Exit(1)
	}
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Agent Card", tc.testAgentCard},
		{"Profile Generation", tc.testProfileGeneration},
		{"JSON API", tc.testAPIProfile},
		{"Download", tc.testDownload},
		{"Input Required", tc.testInputRequired},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Println(green.Render(fmt.Sprintf("Passed: %d", passed)))
	fmt.Println(red.Render(fmt.Sprintf("Failed: %d", failed)))
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	url := fmt.Sprintf("%s/health", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	url := fmt.Sprintf("%s/.well-known/agent.json", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	// Parse JSON to validate it's valid
	var agentCard map[string]interface{}
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	// Check required fields
	requiredFields := []string{"name", "description", "version", "capabilities", "endpoints"}
	for _, field := range requiredFields {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testProfileGeneration() bool {
	description := "AI-powered LinkedIn outreach tool for B2B SaaS founders"
	return tc.testCustomProfile(description)
}

func (tc *TestClient) testCustomProfile(description string) bool {
	printTestHeader("Testing Profile Generation")

	url := fmt.Sprintf("%s/a2a/profiler", tc.baseURL)
	fmt.Printf("POST %s\n", url)
	fmt.Printf("%s %s\n\n", cyan.Render("Description:"), description)

	// Create JSON-RPC request
	request := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("test-%d", time.Now().Unix()),
		"method":  "agent/task",
		"params": map[string]interface{}{
			"message": map[string]interface{}{
				"kind": "message",
				"role": "user",
				"parts": []map[string]interface{}{
					{
						"kind": "text",
						"text": description,
					},
				},
			},
			"configuration": map[string]interface{}{
				"blocking":            true,
				"acceptedOutputModes": []string{"text", "data"},
			},
		},
	}

	jsonData, _ := json.MarshalIndent(request, "", "  ")
	fmt.Println(yellow.Render("Request:"))
	fmt.Println(string(jsonData))
	fmt.Println()

	resp, err := tc.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	// Parse JSON-RPC response
	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	// Check for errors
	if errObj, ok := response["error"]; ok {
		printError("Request returned an error")
		errJSON, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Println(string(errJSON))
		return false
	}

	// Check result
	result, ok := response["result"].(map[string]interface{})
	if !ok {
		printError("Invalid result format")
		return false
	}

	// Check task status
	status, ok := result["status"].(map[string]interface{})
	if !ok {
		printError("Invalid status format")
		return false
	}

	state, _ := status["state"].(string)
	if state != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", state))
		return false
	}

	printSuccess("Profile generation completed successfully")

	// Display the response message
	if msg, ok := status["message"].(map[string]interface{}); ok {
		if parts, ok := msg["parts"].([]interface{}); ok {
			fmt.Printf("\n%s\n", green.Render("Generated Profile:"))
			fmt.Println(strings.Repeat("=", 80))
			for _, part := range parts {
				if p, ok := part.(map[string]interface{}); ok {
					if text, ok := p["text"].(string); ok {
						fmt.Println(text)
					}
				}
			}
			fmt.Println(strings.Repeat("=", 80))
		}
	}

	// Display artifacts if any
	if artifacts, ok := result["artifacts"].([]interface{}); ok && len(artifacts) > 0 {
		fmt.Printf("\n%s\n", purple.Render("Artifacts:"))
		artifactsJSON, _ := json.MarshalIndent(artifacts, "", "  ")
		fmt.Println(string(artifactsJSON))
	}

	return true
}

func (tc *TestClient) postDescription(path, description string) (*http.Response, []byte, error) {
	url := fmt.Sprintf("%s%s", tc.baseURL, path)
	fmt.Printf("POST %s\n", url)

	payload, _ := json.Marshal(map[string]string{"description": description})
	resp, err := tc.client.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp, body, err
}

func (tc *TestClient) testAPIProfile() bool {
	printTestHeader("Testing JSON API")

	cases := []struct {
		description string
		template    string
	}{
		{"AI-powered LinkedIn outreach tool for B2B SaaS founders", "linkedin_outreach"},
		{"Our B2B SaaS platform helps growth teams", "b2b_saas"},
		{"A generic productivity app", "default"},
	}

	for _, c := range cases {
		resp, body, err := tc.postDescription("/api/icp", c.description)
		if err != nil {
			printError(fmt.Sprintf("Request failed: %v", err))
			return false
		}
		if resp.StatusCode != http.StatusOK {
			printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
			fmt.Printf("Response: %s\n", string(body))
			return false
		}

		var result struct {
			Template string `json:"template"`
			Profile  struct {
				Personas []map[string]interface{} `json:"personas"`
			} `json:"profile"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			printError(fmt.Sprintf("Invalid JSON response: %v", err))
			return false
		}
		if result.Template != c.template {
			printError(fmt.Sprintf("Expected template '%s', got '%s'", c.template, result.Template))
			return false
		}
		if len(result.Profile.Personas) == 0 {
			printError("Profile has no personas")
			return false
		}
		printSuccess(fmt.Sprintf("%s -> %s", c.description, result.Template))
	}
	return true
}

func (tc *TestClient) testDownload() bool {
	printTestHeader("Testing Download Endpoint")

	resp, body, err := tc.postDescription("/api/icp", "Our B2B SaaS platform helps growth teams")
	if err != nil || resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Generating the profile to download failed: %v", err))
		return false
	}

	var generated struct {
		Profile json.RawMessage `json:"profile"`
	}
	if err := json.Unmarshal(body, &generated); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	url := fmt.Sprintf("%s/api/icp/download", tc.baseURL)
	fmt.Printf("POST %s\n", url)
	resp, err = tc.client.Post(url, "application/json", bytes.NewReader(generated.Profile))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ = io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	disposition := resp.Header.Get("Content-Disposition")
	if !strings.Contains(disposition, "ideal-customer-profile.json") {
		printError(fmt.Sprintf("Unexpected Content-Disposition: %s", disposition))
		return false
	}
	if !json.Valid(body) {
		printError("Download body is not valid JSON")
		return false
	}

	printSuccess("Download returned ideal-customer-profile.json")
	printJSON(body)
	return true
}

func (tc *TestClient) testInputRequired() bool {
	printTestHeader("Testing Empty Input")

	resp, body, err := tc.postDescription("/api/icp", "   ")
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		printError(fmt.Sprintf("Expected status 422, got %d", resp.StatusCode))
		return false
	}
	if !strings.Contains(string(body), "INPUT_REQUIRED") {
		printError(fmt.Sprintf("Expected INPUT_REQUIRED error, got %s", string(body)))
		return false
	}

	printSuccess("Empty description rejected with INPUT_REQUIRED")
	return true
}

func printHeader(text string) {
	rule := strings.Repeat("=", len(text)+4)
	fmt.Printf("\n%s\n%s\n%s\n\n", blue.Render(rule), blue.Render("= "+text+" ="), blue.Render(rule))
}

func printTestHeader(text string) {
	fmt.Println(cyan.Render("[TEST] " + text))
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Println(green.Render("✓ " + text))
}

func printError(text string) {
	fmt.Println(red.Render("✗ " + text))
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%s\n%s\n", yellow.Render("Response:"), prettyJSON.String())
	}
}
