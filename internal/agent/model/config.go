package model

import "time"

// ================ Config ================
type EngineConfig struct {
	SystemPrompt  string        `envconfig:"ENGINE_SYSTEM_PROMPT" default:"You are a helpful assistant that analyzes uploaded content and answers questions about it."`
	ResponseDelay time.Duration `envconfig:"ENGINE_RESPONSE_DELAY" default:"0s"`
}

type ConversationConfig struct {
	Store string        `envconfig:"CONVERSATION_STORE" default:"memory"`
	TTL   time.Duration `envconfig:"CONVERSATION_TTL" default:"24h"`
}

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)
