// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package config loads application configuration from a YAML file with
// optional environment overrides. A missing file is not an error; defaults
// are returned so the CLI works out of the box against a local model server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// StorageConfig configures the document store.
type StorageConfig struct {
	// Path is the BadgerDB database directory.
	Path string `yaml:"path"`
	// InMemory runs the store without persistence. Intended for tests and
	// experiments.
	InMemory bool `yaml:"in_memory"`
}

// AIConfig configures the embedding and chat model endpoints.
type AIConfig struct {
	EmbeddingHost  string  `yaml:"embedding_host"`
	EmbeddingModel string  `yaml:"embedding_model"`
	ChatHost       string  `yaml:"chat_host"`
	ChatModel      string  `yaml:"chat_model"`
	Temperature    float64 `yaml:"temperature"`
}

// IngestionConfig configures text cleaning and chunking.
type IngestionConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	PoolSize     int `yaml:"pool_size"`
}

// RetrievalConfig configures query answering.
type RetrievalConfig struct {
	TopK            int     `yaml:"top_k"`
	MaxContentChars int     `yaml:"max_content_chars"`
	MinSimilarity   float32 `yaml:"min_similarity"`
}

// Config is the root application configuration structure.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	AI        AIConfig        `yaml:"ai"`
	Ingestion IngestionConfig `yaml:"ingestion"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
}

// Default returns the configuration used when no file or overrides exist.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: "./pricewise_db",
		},
		AI: AIConfig{
			EmbeddingHost:  "http://localhost:11434/v1",
			EmbeddingModel: "embeddinggemma",
			ChatHost:       "http://localhost:11434/v1",
			ChatModel:      "qwen2.5:3b",
			Temperature:    0.1,
		},
		Ingestion: IngestionConfig{
			ChunkSize:    1000,
			ChunkOverlap: 200,
		},
		Retrieval: RetrievalConfig{
			TopK:            5,
			MaxContentChars: 500,
		},
	}
}

// Load reads a config from the specified path. If the file does not exist,
// defaults are returned. A .env file in the working directory and process
// environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Storage.Path == "" && !c.Storage.InMemory {
		return fmt.Errorf("storage path is required for persistent mode")
	}
	if c.AI.EmbeddingModel == "" {
		return fmt.Errorf("embedding model is required")
	}
	if c.AI.ChatModel == "" {
		return fmt.Errorf("chat model is required")
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", c.AI.Temperature)
	}
	if c.Ingestion.ChunkOverlap >= c.Ingestion.ChunkSize {
		return fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)",
			c.Ingestion.ChunkOverlap, c.Ingestion.ChunkSize)
	}
	if c.Retrieval.MinSimilarity < -1 || c.Retrieval.MinSimilarity > 1 {
		return fmt.Errorf("min similarity must be between -1 and 1, got %f", c.Retrieval.MinSimilarity)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.AI.EmbeddingHost == "" {
		cfg.AI.EmbeddingHost = def.AI.EmbeddingHost
	}
	if cfg.AI.ChatHost == "" {
		cfg.AI.ChatHost = cfg.AI.EmbeddingHost
	}
	if cfg.AI.EmbeddingModel == "" {
		cfg.AI.EmbeddingModel = def.AI.EmbeddingModel
	}
	if cfg.AI.ChatModel == "" {
		cfg.AI.ChatModel = def.AI.ChatModel
	}
	if cfg.Ingestion.ChunkSize <= 0 {
		cfg.Ingestion.ChunkSize = def.Ingestion.ChunkSize
	}
	if cfg.Ingestion.ChunkOverlap < 0 {
		cfg.Ingestion.ChunkOverlap = def.Ingestion.ChunkOverlap
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = def.Retrieval.TopK
	}
	if cfg.Retrieval.MaxContentChars <= 0 {
		cfg.Retrieval.MaxContentChars = def.Retrieval.MaxContentChars
	}
}

// applyEnvOverrides lets deployment environments override endpoints and
// paths without editing the config file. A .env file is loaded best-effort.
func applyEnvOverrides(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("PRICEWISE_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("PRICEWISE_EMBEDDING_HOST"); v != "" {
		cfg.AI.EmbeddingHost = v
	}
	if v := os.Getenv("PRICEWISE_EMBEDDING_MODEL"); v != "" {
		cfg.AI.EmbeddingModel = v
	}
	if v := os.Getenv("PRICEWISE_CHAT_HOST"); v != "" {
		cfg.AI.ChatHost = v
	}
	if v := os.Getenv("PRICEWISE_CHAT_MODEL"); v != "" {
		cfg.AI.ChatModel = v
	}
}
