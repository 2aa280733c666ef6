package openai

import (
	"github.com/dskvich/old-russian-bot/pkg/domain"
	openaiclient "github.com/openai/openai-go/v2"
)

const defaultMaxRetries = 0

func toMessageParams(messages []domain.Message) []openaiclient.ChatCompletionMessageParamUnion {
	params := make([]openaiclient.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.MessageRoleSystem:
			params = append(params, openaiclient.SystemMessage(m.Content))
		case domain.MessageRoleAssistant:
			params = append(params, openaiclient.AssistantMessage(m.Content))
		default:
			params = append(params, openaiclient.UserMessage(m.Content))
		}
	}
	return params
}
