// Package inference scores feature rows with a binary classifier exported to
// ONNX.
package inference

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	// ErrSessionClosed is returned when scoring with a closed session.
	ErrSessionClosed = errors.New("inference: session is closed")

	// ErrShape is returned when the features or the model output do not
	// match the requested rows and columns.
	ErrShape = errors.New("inference: shape mismatch")
)

var (
	ortEnvOnce sync.Once
	ortEnvErr  error
)

// initORT initializes ONNX Runtime environment once.
func initORT() error {
	ortEnvOnce.Do(func() {
		ortEnvErr = ort.InitializeEnvironment()
	})
	return ortEnvErr
}

// Session wraps an ONNX Runtime session with one float32 input of shape
// [rows, cols] and one output of shape [rows], [rows, 1] or [rows, 2].
type Session struct {
	session *ort.DynamicAdvancedSession
	input   string
	output  string
	mu      sync.Mutex
	closed  bool
}

// NewSession creates a new ONNX session from a model file. The first input
// and the first output of the model are used.
func NewSession(modelPath string) (*Session, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	if err := initORT(); err != nil {
		return nil, fmt.Errorf("initializing ONNX runtime: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("inspecting model: %w", err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, fmt.Errorf("model has %d inputs and %d outputs: %w", len(inputs), len(outputs), ErrShape)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("creating session options: %w", err)
	}
	defer func() { _ = options.Destroy() }() // Cleanup error doesn't affect success

	input, output := inputs[0].Name, outputs[0].Name
	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{input},
		[]string{output},
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &Session{session: session, input: input, output: output}, nil
}

// Score runs the model on rows feature vectors of cols values each, stored
// row-major in features, and returns one score per row. For two-column
// outputs the score is the second column, the positive class probability.
func (s *Session) Score(ctx context.Context, features []float32, rows, cols int) ([]float32, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if rows <= 0 || cols <= 0 || len(features) != rows*cols {
		return nil, fmt.Errorf("%d features for %dx%d: %w", len(features), rows, cols, ErrShape)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}

	in, err := ort.NewTensor(ort.NewShape(int64(rows), int64(cols)), features)
	if err != nil {
		return nil, fmt.Errorf("creating %s tensor: %w", s.input, err)
	}
	defer func() { _ = in.Destroy() }()

	// nil entries are allocated by Run
	outputs := []ort.Value{nil}
	if err := s.session.Run([]ort.Value{in}, outputs); err != nil {
		return nil, fmt.Errorf("running inference: %w", err)
	}
	if outputs[0] == nil {
		return nil, fmt.Errorf("no output produced")
	}
	defer func() { _ = outputs[0].Destroy() }()

	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected %s tensor type", s.output)
	}

	return positiveScores(out.GetData(), rows)
}

// positiveScores copies one score per row out of a model output.
func positiveScores(data []float32, rows int) ([]float32, error) {
	switch len(data) {
	case rows:
		scores := make([]float32, rows)
		copy(scores, data)
		return scores, nil
	case 2 * rows:
		scores := make([]float32, rows)
		for i := range scores {
			scores[i] = data[2*i+1]
		}
		return scores, nil
	default:
		return nil, fmt.Errorf("%d outputs for %d rows: %w", len(data), rows, ErrShape)
	}
}

// Sigmoid maps a logit to a probability.
func Sigmoid(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(float64(-x))))
}

// Close releases ONNX resources.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if s.session != nil {
		return s.session.Destroy()
	}
	return nil
}
