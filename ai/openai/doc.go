// Package openai implements ai.Embedder against OpenAI-compatible embedding
// APIs, including local servers such as Ollama, LocalAI and vLLM.
package openai
