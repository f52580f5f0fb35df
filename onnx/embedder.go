//go:build cgo

package onnx

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/cdpdocs"
	ort "github.com/yalue/onnxruntime_go"
)

// Ensure Embedder implements cdpdocs.Embedder at compile time.
var _ cdpdocs.Embedder = (*Embedder)(nil)

// Embedder runs a BERT-style sentence model through ONNX Runtime.
// Inference is serialized; input tensors are reused between calls.
type Embedder struct {
	cfg       Config
	tokenizer *Tokenizer

	mu         sync.Mutex
	session    *ort.AdvancedSession
	inputIDs   *ort.Tensor[int64]
	attention  *ort.Tensor[int64]
	tokenTypes *ort.Tensor[int64]
	output     *ort.Tensor[float32]
}

// NewEmbedder loads the vocabulary and model and prepares a session.
func NewEmbedder(cfg Config) (*Embedder, error) {
	cfg = cfg.withDefaults()
	if cfg.ModelPath == "" || cfg.VocabPath == "" {
		return nil, cdpdocs.Errorf(cdpdocs.EINVALID, "onnx model and vocab paths required")
	}

	tokenizer, err := LoadVocabFile(cfg.VocabPath)
	if err != nil {
		return nil, fmt.Errorf("load vocab: %w", err)
	}

	if cfg.LibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.LibraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
		}
	}

	e := &Embedder{cfg: cfg, tokenizer: tokenizer}
	if err := e.open(); err != nil {
		_ = e.Close()
		return nil, err
	}
	return e, nil
}

func (e *Embedder) open() error {
	shape := ort.NewShape(1, int64(e.cfg.MaxTokens))
	var err error
	if e.inputIDs, err = ort.NewEmptyTensor[int64](shape); err != nil {
		return fmt.Errorf("failed to create input_ids tensor: %w", err)
	}
	if e.attention, err = ort.NewEmptyTensor[int64](shape); err != nil {
		return fmt.Errorf("failed to create attention_mask tensor: %w", err)
	}
	if e.tokenTypes, err = ort.NewEmptyTensor[int64](shape); err != nil {
		return fmt.Errorf("failed to create token_type_ids tensor: %w", err)
	}
	outShape := ort.NewShape(1, int64(e.cfg.MaxTokens), int64(e.cfg.Dimension))
	if e.output, err = ort.NewEmptyTensor[float32](outShape); err != nil {
		return fmt.Errorf("failed to create output tensor: %w", err)
	}

	e.session, err = ort.NewAdvancedSession(
		e.cfg.ModelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{e.cfg.OutputName},
		[]ort.ArbitraryTensor{e.inputIDs, e.attention, e.tokenTypes},
		[]ort.ArbitraryTensor{e.output},
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to create ONNX session: %w", err)
	}
	return nil
}

// Embed returns mean-pooled, normalized sentence vectors.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return nil, cdpdocs.Errorf(cdpdocs.EINVALID, "embedder is closed")
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ids, mask, types := e.tokenizer.Encode(text, e.cfg.MaxTokens)
		copy(e.inputIDs.GetData(), ids)
		copy(e.attention.GetData(), mask)
		copy(e.tokenTypes.GetData(), types)

		if err := e.session.Run(); err != nil {
			return nil, fmt.Errorf("inference failed: %w", err)
		}

		v := MeanPool(e.output.GetData(), mask, e.cfg.Dimension)
		cdpdocs.NormalizeL2(v)
		out[i] = v
	}
	return out, nil
}

// Dimension returns the sentence vector length.
func (e *Embedder) Dimension() int {
	return e.cfg.Dimension
}

// Close destroys the session and tensors. It is safe to call more than once.
func (e *Embedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var err error
	if e.session != nil {
		err = e.session.Destroy()
		e.session = nil
	}
	for _, t := range []*ort.Tensor[int64]{e.inputIDs, e.attention, e.tokenTypes} {
		if t != nil {
			_ = t.Destroy()
		}
	}
	if e.output != nil {
		_ = e.output.Destroy()
	}
	e.inputIDs, e.attention, e.tokenTypes, e.output = nil, nil, nil, nil
	return err
}
