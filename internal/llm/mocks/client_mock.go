package mocks

import (
	"context"

	"github.com/jonathan/expert-profile/internal/llm"
	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) GenerateContent(ctx context.Context, req llm.Request) (string, error) {
	args := m.Called(ctx, req)

	return args.String(0), args.Error(1)
}

func (m *MockClient) GetModel(tier llm.ModelTier) string {
	args := m.Called(tier)

	return args.String(0)
}

func (m *MockClient) Close() error {
	args := m.Called()

	return args.Error(0)
}

// MockFactory records every credential it is asked to build a client for.
type MockFactory struct {
	mock.Mock
}

func (m *MockFactory) NewClient(ctx context.Context, apiKey string) (llm.Client, error) {
	args := m.Called(ctx, apiKey)

	client, _ := args.Get(0).(llm.Client)
	return client, args.Error(1)
}
