package knowledge

import "strings"

// cleanJSONResponse strips the wrapping a model tends to put around JSON:
// markdown code fences and explanatory text before the first brace. The
// result is handed to json.Unmarshal as-is; any remaining damage surfaces
// there and is handled by the empty-result fallback.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	// Keep only the content of the first fenced block when one is present.
	if idx := strings.Index(response, "```json"); idx != -1 {
		response = response[idx+len("```json"):]
		if end := strings.Index(response, "```"); end != -1 {
			response = response[:end]
		}
	} else if idx := strings.Index(response, "```"); idx != -1 {
		response = response[idx+3:]
		if end := strings.Index(response, "```"); end != -1 {
			response = response[:end]
		}
	}
	response = strings.TrimSpace(response)

	// Discard any prose before the JSON object.
	if !strings.HasPrefix(response, "{") {
		if first := strings.Index(response, "{"); first != -1 {
			response = response[first:]
		}
	}
	return strings.TrimSpace(response)
}
