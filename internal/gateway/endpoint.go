package gateway

import "strings"

// DefaultBaseURL is the well-known public endpoint of the gateway. It is
// substituted whenever the configured base URL is absent or blank, and reused
// by the login/settings surfaces as placeholder text.
const DefaultBaseURL = "https://ai-proxy.lab.epam.com"

// openAISuffix is the discovery sub-path of an Azure-style resource root.
const openAISuffix = "/openai"

// baseURLSuffixes are the recognized trailing segments, most specific first
// so that "/openai/v1/" never gets stripped in two passes.
var baseURLSuffixes = []string{"/openai/v1/", "/openai/v1", "/openai/", "/openai"}

// Endpoint is the resolved answer for one configured base URL: where to send
// API requests, where to list models, and whether the gateway is addressed in
// Azure-style resource routing or as a direct OpenAI-v1-compatible root.
type Endpoint struct {
	APIBaseURL        string
	ModelDiscoveryURL string
	UseAzure          bool
}

// NormalizeBaseURL canonicalizes a user-supplied base URL: whitespace is
// trimmed, a blank value becomes DefaultBaseURL, and one recognized trailing
// segment (/openai, /openai/v1, either with or without a trailing slash,
// matched case-insensitively) is stripped along with any trailing slash left
// behind. Casing of the retained prefix is preserved, non-trailing segments
// are left alone, and the function is idempotent. The input is treated as an
// opaque string; nothing here checks URL syntax.
func NormalizeBaseURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultBaseURL
	}
	lower := strings.ToLower(trimmed)
	for _, suffix := range baseURLSuffixes {
		if strings.HasSuffix(lower, suffix) {
			stripped := strings.TrimSuffix(trimmed[:len(trimmed)-len(suffix)], "/")
			if stripped == "" {
				// A bare "/openai" reduces to nothing; fall back to the
				// default so repeated normalization stays stable.
				return DefaultBaseURL
			}
			return stripped
		}
	}
	return trimmed
}

// Resolve classifies the shape of a raw base URL and derives the endpoint
// triple consumed by the request-handler constructor and the model-discovery
// fetcher. A trailing /openai/v1 means the caller opted into a direct
// OpenAI-v1 root and the URL is kept as-is; anything else is treated as an
// Azure-style resource root whose discovery path is {base}/openai.
func Resolve(raw string) Endpoint {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return azureEndpoint(DefaultBaseURL)
	}
	lower := strings.ToLower(trimmed)
	if strings.HasSuffix(lower, "/openai/v1") || strings.HasSuffix(lower, "/openai/v1/") {
		base := strings.TrimSuffix(trimmed, "/")
		return Endpoint{APIBaseURL: base, ModelDiscoveryURL: base, UseAzure: false}
	}
	return azureEndpoint(NormalizeBaseURL(trimmed))
}

func azureEndpoint(base string) Endpoint {
	return Endpoint{
		APIBaseURL:        base,
		ModelDiscoveryURL: base + openAISuffix,
		UseAzure:          true,
	}
}
