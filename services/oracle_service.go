package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/sanskarrz/Meal-Tracker/config"
	"github.com/sanskarrz/Meal-Tracker/utils"
)

// ErrNotFood is raised when the inference backend judges the submitted
// image to contain no food. This is the one semantic judgment delegated
// entirely to the backend.
var ErrNotFood = errors.New("the image does not appear to contain a food item")

// OracleService talks to the vision-LLM inference backend that turns an
// image and/or text query into a structured nutrition estimate. Every call
// is one-shot: no caching, no retries.
type OracleService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewOracleService(cfg *config.Config) *OracleService {
	return &OracleService{
		apiKey:  cfg.OpenAIKey,
		baseURL: cfg.OpenAIBaseURL,
		model:   cfg.OpenAIModel,
		// No client timeout: an inference call can run for tens of
		// seconds and the request blocks for its full duration.
		client: &http.Client{},
	}
}

// NutritionData is the parsed oracle verdict. The macro fields are
// pointers so callers can apply their own per-field fallback rules: zero
// for fresh entries, the prior recorded values for serving rewrites.
type NutritionData struct {
	FoodName      string
	Calories      *float64
	Protein       *float64
	Carbs         *float64
	Fats          *float64
	ServingSize   string
	ServingWeight int
	Confidence    string
}

// FloatOr resolves an optional macro against a fallback.
func FloatOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}

const oracleSystemPrompt = `You are a nutrition expert specializing in Indian and South Asian cuisine.
Provide SPECIFIC serving sizes using MEASURABLE units:
- For packaged foods: Try to identify brand AND weight (e.g., "Kellogg's Corn Flakes 100g", "Cadbury 45g")
- For home-cooked foods: Use specific Indian units (e.g., "2 medium rotis (60g each)", "1 katori dal (150ml)")
- For fruits/vegetables: Use pieces with weight (e.g., "1 medium banana (120g)", "2 medium potatoes (200g)")
- NEVER use vague terms like "1 serving" - always quantify

Always provide your best estimate even if image quality is not perfect.
Be VERY accurate with portion sizes and calorie counts for Indian market.
If an image is provided and it clearly does not contain food, return ONLY {"error": "not_food"} instead of a nutrition object.`

const oracleSchema = `Return ONLY valid JSON:
{
    "food_name": "specific name with brand and weight if packaged",
    "calories": number,
    "protein": number in grams,
    "carbs": number in grams,
    "fats": number in grams,
    "serving_size": "specific measurement with weight/volume/pieces",
    "serving_weight": number, total weight in grams,
    "confidence": "high/medium/low"
}`

// Chat-completion wire types.

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"` // plain string, or []contentPart for vision
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageRef `json:"image_url,omitempty"`
}

type imageRef struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// nutritionPayload mirrors the JSON object the backend is asked to emit.
// Every field is optional; named fallbacks are applied after parsing.
type nutritionPayload struct {
	Error         *string  `json:"error"`
	FoodName      *string  `json:"food_name"`
	Calories      *float64 `json:"calories"`
	Protein       *float64 `json:"protein"`
	Carbs         *float64 `json:"carbs"`
	Fats          *float64 `json:"fats"`
	ServingSize   *string  `json:"serving_size"`
	ServingWeight *float64 `json:"serving_weight"`
	Confidence    *string  `json:"confidence"`
}

// Analyze sends one inference request for the given inputs. imageBase64
// must already be in canonical form (see utils.NormalizeBase64Image); at
// least one of the two inputs must be non-empty.
func (s *OracleService) Analyze(imageBase64, textQuery string) (*NutritionData, error) {
	if imageBase64 == "" && textQuery == "" {
		return nil, errors.New("nothing to analyze: no image and no query")
	}

	payload := chatRequest{
		Model:       s.model,
		Messages:    s.buildMessages(imageBase64, textQuery),
		MaxTokens:   500,
		Temperature: 0.3,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inference payload: %w", err)
	}

	req, err := http.NewRequest("POST", s.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call inference backend: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read inference response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference backend error %d: %s", resp.StatusCode, string(body))
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("failed to parse inference response: %w", err)
	}
	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return nil, errors.New("empty response from inference backend")
	}

	return s.parseNutrition(cr.Choices[0].Message.Content, imageBase64 != "")
}

func (s *OracleService) buildMessages(imageBase64, textQuery string) []chatMessage {
	messages := []chatMessage{{Role: "system", Content: oracleSystemPrompt}}

	switch {
	case imageBase64 != "" && textQuery != "":
		prompt := textQuery + ".\n" + oracleSchema
		messages = append(messages, visionMessage(prompt, imageBase64))
	case imageBase64 != "":
		prompt := `Carefully identify this food item and provide nutritional information.

Look at the image and identify:
1. What type of food is visible
2. Approximate portion size based on visual cues
3. If it's packaged food, try to identify the brand and package size

Provide your best estimate based on what you can see.

` + oracleSchema
		messages = append(messages, visionMessage(prompt, imageBase64))
	default:
		prompt := "Provide accurate nutritional information for: " + textQuery + "\n\n" + oracleSchema
		messages = append(messages, chatMessage{Role: "user", Content: prompt})
	}

	return messages
}

func visionMessage(prompt, imageBase64 string) chatMessage {
	return chatMessage{
		Role: "user",
		Content: []contentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &imageRef{URL: "data:image/jpeg;base64," + imageBase64}},
		},
	}
}

// parseNutrition extracts the first balanced JSON object from the raw
// model output and applies the per-field fallback rules. Unparseable
// output is deliberately NOT an error: the caller gets a fixed
// low-confidence estimate so the user flow stays unblocked.
func (s *OracleService) parseNutrition(raw string, hadImage bool) (*NutritionData, error) {
	obj, ok := firstJSONObject(raw)
	if !ok {
		return fallbackNutrition(), nil
	}

	var p nutritionPayload
	if err := json.Unmarshal([]byte(obj), &p); err != nil {
		return fallbackNutrition(), nil
	}

	if p.Error != nil && strings.Contains(*p.Error, "not_food") {
		return nil, ErrNotFood
	}

	n := &NutritionData{
		FoodName:   "Unknown Food",
		Calories:   p.Calories,
		Protein:    p.Protein,
		Carbs:      p.Carbs,
		Fats:       p.Fats,
		Confidence: "medium",
	}
	if p.FoodName != nil && *p.FoodName != "" {
		n.FoodName = *p.FoodName
	}
	if p.Confidence != nil && *p.Confidence != "" {
		n.Confidence = *p.Confidence
	}

	if p.ServingSize != nil {
		n.ServingSize = strings.TrimSpace(*p.ServingSize)
	}
	if n.ServingSize == "" || n.ServingSize == "1 serving" {
		n.ServingSize = "1 serving (weight not specified)"
	}

	switch {
	case p.ServingWeight != nil && *p.ServingWeight > 0:
		n.ServingWeight = int(math.Round(*p.ServingWeight))
	default:
		if g, found := utils.ExtractGramWeight(n.ServingSize); found {
			n.ServingWeight = g
		} else {
			n.ServingWeight = 100
		}
	}

	// Flag uncertain image analyses so the user can see the estimate is
	// shaky.
	if hadImage && n.Confidence == "low" && !strings.HasSuffix(n.FoodName, "(estimated)") {
		n.FoodName += " (estimated)"
	}

	return n, nil
}

func fallbackNutrition() *NutritionData {
	cal, prot, carbs, fats := 200.0, 10.0, 20.0, 8.0
	return &NutritionData{
		FoodName:      "Unknown Food (estimated)",
		Calories:      &cal,
		Protein:       &prot,
		Carbs:         &carbs,
		Fats:          &fats,
		ServingSize:   "1 serving (weight not specified)",
		ServingWeight: 100,
		Confidence:    "low",
	}
}

// firstJSONObject scans for the first balanced brace-delimited object,
// tolerating prose around it and braces inside JSON strings.
func firstJSONObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
