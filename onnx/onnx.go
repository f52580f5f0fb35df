// Package onnx provides a local all-MiniLM-L6-v2 sentence embedder running
// on ONNX Runtime. The embedder needs CGO and the onnxruntime shared
// library; the tokenizer is pure Go.
package onnx

// Model defaults for all-MiniLM-L6-v2.
const (
	DefaultDimension = 384
	DefaultMaxTokens = 128
	DefaultOutput    = "last_hidden_state"
)

// Config describes the model files and runtime.
type Config struct {
	// ModelPath is the .onnx model file.
	ModelPath string
	// VocabPath is the WordPiece vocab.txt file.
	VocabPath string
	// LibraryPath optionally points to the onnxruntime shared library.
	LibraryPath string

	Dimension int
	MaxTokens int
	// OutputName is the token embedding output to mean-pool.
	OutputName string
}

func (c Config) withDefaults() Config {
	if c.Dimension <= 0 {
		c.Dimension = DefaultDimension
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.OutputName == "" {
		c.OutputName = DefaultOutput
	}
	return c
}

// MeanPool averages the token vectors in hidden (maxTokens x dim, row major)
// whose attention mask is set.
func MeanPool(hidden []float32, mask []int64, dim int) []float32 {
	out := make([]float32, dim)
	var n float32
	for tok, m := range mask {
		if m == 0 {
			continue
		}
		row := hidden[tok*dim : (tok+1)*dim]
		for i, v := range row {
			out[i] += v
		}
		n++
	}
	if n > 0 {
		for i := range out {
			out[i] /= n
		}
	}
	return out
}
