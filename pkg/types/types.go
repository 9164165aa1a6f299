package types

// Endpoint describes a hosted OCR model that can receive inference requests.
type Endpoint struct {
	// Display name used to select the endpoint.
	// example: DeepSeek OCR
	Name string `json:"name" yaml:"name" toml:"name" example:"DeepSeek OCR"`
	// Hosted model identifier.
	// example: deepseek-ai/deepseek-ocr
	Model string `json:"model,omitempty" yaml:"model" toml:"model" example:"deepseek-ai/deepseek-ocr"`
	// Fully resolved inference URL. Derived from the base URL and Model when omitted in config.
	// example: https://router.huggingface.co/hf-inference/models/deepseek-ai/deepseek-ocr
	URL string `json:"url" yaml:"url" toml:"url" example:"https://router.huggingface.co/hf-inference/models/deepseek-ai/deepseek-ocr"`
	// Optional human-friendly description.
	Description string `json:"description,omitempty" yaml:"description" toml:"description"`
}

// ModelStatus is the readiness payload returned by the status endpoint.
type ModelStatus struct {
	// Whether the model is resident in serving memory.
	// example: true
	Loaded bool `json:"loaded" example:"true"`
	// Provider-reported state string.
	// example: Loadable
	State string `json:"state" example:"Loadable"`
}
