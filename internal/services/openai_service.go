package services

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/buena/portfolio-service/internal/utils"
)

const extractionSystemPrompt = `You are an expert data extraction assistant for German Real Estate 'Teilungserklärung' documents.
Your goal is to extract:
1. The Property Address (Street, Number, Zip, City)
2. The list of units (Wohnungen/Teileigentum)

Return a JSON object with this structure:
{
    "address": "extracted address string or null",
    "units": [ ... list of units ... ]
}

Look for a table or list defining the "Sondereigentum" or "Aufteilungsplan" for the units.
Typically formatted as: Unit No. | Location | Size | Shares | Rooms.

Schema per unit:
{
    "number": string (e.g. "1", "WE1", "1. OG rechts"),
    "type": "APARTMENT" | "OFFICE" | "GARDEN" | "PARKING",
    "floor": string (e.g. "KG", "EG", "1. OG"),
    "entrance": string,
    "size": number (in sqm, e.g. 80.50),
    "coOwnershipShare": number (e.g. 55.20),
    "rooms": number
}

Rules:
1. Map "Wohnung" -> APARTMENT
2. Map "Büro"/"Gewerbe"/"Laden" -> OFFICE
3. Map "Stellplatz"/"Garage"/"Tiefgarage" -> PARKING
4. If a value is missing, use 0 or empty string.
5. Try to extract ALL units found in the list.`

// OpenAIService wraps the OpenAI client. If client is nil, extraction is
// disabled and callers get utils.ErrExtractionDisabled.
type OpenAIService struct {
	client *openai.Client
}

// NewOpenAIService creates the service. Pass an empty apiKey to disable calls.
func NewOpenAIService(apiKey string) *OpenAIService {
	if apiKey == "" {
		return &OpenAIService{client: nil}
	}
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIService{client: &c}
}

// ExtractUnits sends the document text to the model and returns the raw JSON
// reply. An empty reply is returned as "" with no error; the caller decides
// what zero units means.
func (s *OpenAIService) ExtractUnits(ctx context.Context, text string) (string, error) {
	if s.client == nil {
		return "", utils.ErrExtractionDisabled
	}

	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModelGPT4TurboPreview,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(extractionSystemPrompt),
			openai.UserMessage(text),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	resp, err := s.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
