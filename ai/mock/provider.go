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


package mock

import "github.com/poiesic/scout/ai"

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock inference and scorer instances.
type MockProvider struct {
	inference *MockInference
	scorer    *MockScorer
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockInference()/GetMockScorer() to access concrete types for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		inference: NewMockInference(),
		scorer:    NewMockScorer(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(inference *MockInference, scorer *MockScorer) ai.AIProvider {
	return &MockProvider{
		inference: inference,
		scorer:    scorer,
	}
}

// Inference returns the mock inference service.
func (p *MockProvider) Inference() ai.Inference {
	return p.inference
}

// Scorer returns the mock scorer.
func (p *MockProvider) Scorer() ai.Scorer {
	return p.scorer
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockInference returns the underlying mock inference for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockInference() *MockInference {
	return p.inference
}

// GetMockScorer returns the underlying mock scorer for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockScorer() *MockScorer {
	return p.scorer
}
