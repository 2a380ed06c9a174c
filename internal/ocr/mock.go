package ocr

import "context"

// MockEngine returns canned candidates, for tests and dry runs.
type MockEngine struct {
	Candidates []string
	Err        error
	Calls      int
}

func (m *MockEngine) Name() string { return "mock" }

func (m *MockEngine) Recognize(ctx context.Context, imageData []byte) ([]string, error) {
	m.Calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Candidates, nil
}
