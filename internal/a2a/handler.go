package a2a

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BerylCAtieno/icp-generator/internal/logger"
	"github.com/BerylCAtieno/icp-generator/internal/metrics"
	"github.com/BerylCAtieno/icp-generator/internal/models"
	"github.com/BerylCAtieno/icp-generator/internal/presenter"
	"github.com/BerylCAtieno/icp-generator/internal/profiler"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	inputRequiredText = "Input Required: please describe your product or service first."
	directMessageID   = "direct-message"
)

type A2AHandler struct {
	generator profiler.Generator
	logger    logger.Logger
}

func NewA2AHandler(generator profiler.Generator, log logger.Logger) *A2AHandler {
	return &A2AHandler{
		generator: generator,
		logger:    log.With(map[string]interface{}{"component": "a2a"}),
	}
}

// HandleProfiler processes A2A messages
func (h *A2AHandler) HandleProfiler(c *gin.Context) {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.WithError(err).Error("failed to read request body", nil)
		h.sendErrorResponse(c, "", "Failed to read request body", CodeParseError)
		return
	}

	h.logger.Debug("raw request body", map[string]interface{}{"body": string(bodyBytes)})

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(bodyBytes, &rpcReq); err != nil || rpcReq.Method == "" {
		h.logger.Debug("not a JSON-RPC request, trying direct message parse", nil)
		h.handleDirectMessage(c, bodyBytes)
		return
	}

	log := h.logger.With(map[string]interface{}{"rpcId": rpcReq.ID, "method": rpcReq.Method})

	if rpcReq.JSONRPC != "2.0" {
		log.Warn("invalid JSON-RPC version", map[string]interface{}{"jsonrpc": rpcReq.JSONRPC})
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "agent/task", "message/send":
		h.handleTask(c, rpcReq, log)
	default:
		log.Warn("unknown method", nil)
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

// handleDirectMessage handles a bare MessageParams body without the JSON-RPC
// envelope.
func (h *A2AHandler) handleDirectMessage(c *gin.Context, bodyBytes []byte) {
	var msgParams MessageParams
	if err := json.Unmarshal(bodyBytes, &msgParams); err != nil || len(msgParams.Message.Parts) == 0 {
		h.logger.Warn("failed to parse request", map[string]interface{}{"error": fmt.Sprint(err)})
		h.sendErrorResponse(c, "", "Invalid request format", CodeParseError)
		return
	}

	result := h.run(c, directMessageID, msgParams.Message, h.logger)
	h.sendSuccessResponse(c, directMessageID, result)
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest, log logger.Logger) {
	paramsJSON, err := json.Marshal(rpcReq.Params)
	if err != nil {
		log.WithError(err).Error("failed to marshal params", nil)
		h.sendErrorResponse(c, rpcReq.ID, "Failed to parse parameters", CodeInvalidParams)
		return
	}

	var msgParams MessageParams
	if err := json.Unmarshal(paramsJSON, &msgParams); err != nil {
		log.WithError(err).Warn("failed to unmarshal params", nil)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	result := h.run(c, rpcReq.ID, msgParams.Message, log)
	h.sendSuccessResponse(c, rpcReq.ID, result)
}

func (h *A2AHandler) run(c *gin.Context, taskID string, msg A2AMessage, log logger.Logger) TaskResult {
	description := extractDescription(msg)
	if description == "" {
		metrics.RecordRejection(metrics.ReasonEmptyInput)
		log.Warn("no product description found in message", nil)
		return createInputRequiredTaskResult(taskID)
	}

	start := time.Now()
	profileResp, err := h.generator.GenerateCustomerProfile(c.Request.Context(), description)
	if err != nil {
		if errors.Is(err, profiler.ErrEmptyDescription) {
			return createInputRequiredTaskResult(taskID)
		}
		log.WithError(err).Error("failed to generate profile", nil)
		return createErrorTaskResult(taskID, fmt.Sprintf("Failed to generate customer profile: %v", err))
	}

	metrics.ObserveGeneration(string(profileResp.Template), time.Since(start))
	log.Info("profile generated", map[string]interface{}{
		"template": string(profileResp.Template),
		"personas": len(profileResp.Profile.Personas),
	})

	result, err := createSuccessTaskResult(taskID, profileResp)
	if err != nil {
		log.WithError(err).Error("failed to build task result", nil)
		return createErrorTaskResult(taskID, "Failed to encode customer profile")
	}
	return result
}

// ServeAgentCard serves the agent card using Gin
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	card, err := AgentCard()
	if err != nil {
		h.logger.WithError(err).Error("error loading agent card", nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}
	c.Data(http.StatusOK, "application/json", card)
}

// extractDescription joins the text parts of msg. For data parts carrying
// conversation history it takes the most recent text that is not an agent
// progress message.
func extractDescription(msg A2AMessage) string {
	var texts []string

	for _, part := range msg.Parts {
		if part.Kind == "text" {
			if textStr, ok := part.Text.(string); ok && strings.TrimSpace(textStr) != "" {
				texts = append(texts, strings.TrimSpace(textStr))
			}
		}

		if part.Kind == "data" && part.Data != nil {
			if text := latestHistoryText(part.Data); text != "" {
				texts = append(texts, text)
			}
		}
	}

	return strings.TrimSpace(strings.Join(texts, " "))
}

func latestHistoryText(data interface{}) string {
	var dataBytes []byte
	switch v := data.(type) {
	case json.RawMessage:
		dataBytes = v
	case string:
		dataBytes = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		dataBytes = b
	}

	var items []map[string]interface{}
	if err := json.Unmarshal(dataBytes, &items); err != nil {
		return ""
	}

	for i := len(items) - 1; i >= 0; i-- {
		kind, _ := items[i]["kind"].(string)
		text, _ := items[i]["text"].(string)
		if kind != "text" || text == "" {
			continue
		}

		clean := strings.TrimSpace(text)
		clean = strings.ReplaceAll(clean, "<p>", "")
		clean = strings.ReplaceAll(clean, "</p>", "")
		clean = strings.TrimSpace(clean)

		lower := strings.ToLower(clean)
		if strings.Contains(lower, "generating") || strings.Contains(lower, "creating") ||
			strings.Trim(clean, ".") == "" {
			continue
		}
		return clean
	}
	return ""
}

func createSuccessTaskResult(taskID string, profileResp *models.ProfileResponse) (TaskResult, error) {
	encoded, err := presenter.Encode(profileResp.Profile)
	if err != nil {
		return TaskResult{}, err
	}

	responseText := fmt.Sprintf("# Ideal Customer Profile\n\n_%s_\n\n%s", profileResp.Description, presenter.RenderMarkdown(profileResp.Profile))

	return TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				Parts: []MessagePart{
					TextPart(responseText),
				},
			},
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.New().String(),
				Name:       presenter.DownloadFilename,
				Parts: []MessagePart{
					TextPart(string(encoded)),
					DataPart(profileResp.Profile),
				},
			},
		},
	}, nil
}

func createInputRequiredTaskResult(taskID string) TaskResult {
	return statusOnlyResult(taskID, StateInputRequired, inputRequiredText)
}

func createErrorTaskResult(taskID string, errorMsg string) TaskResult {
	return statusOnlyResult(taskID, StateFailed, errorMsg)
}

func statusOnlyResult(taskID, state, text string) TaskResult {
	return TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				Parts: []MessagePart{
					TextPart(text),
				},
			},
		},
	}
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id string, result TaskResult) {
	h.logger.Debug("sending response", map[string]interface{}{"rpcId": id, "state": result.Status.State})
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

// JSON-RPC errors are sent with 200 OK.
func (h *A2AHandler) sendErrorResponse(c *gin.Context, id string, message string, code int) {
	h.logger.Debug("sending rpc error", map[string]interface{}{"rpcId": id, "code": code, "message": message})
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
		},
	})
}
