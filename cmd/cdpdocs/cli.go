package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/cdpdocs"
	"github.com/fwojciec/cdpdocs/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Sources []cdpdocs.Source
	Store   cdpdocs.CorpusStore
	// Inspector is set when the store can report per-source metadata.
	Inspector cdpdocs.CorpusInspector
	Embedder  cdpdocs.Embedder
	Crawler   *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Corpus   string `short:"c" env:"CDPDOCS_CORPUS" help:"Corpus file (json) or database (sqlite) path"`
	Store    string `env:"CDPDOCS_STORE" enum:"json,sqlite" default:"json" help:"Corpus storage backend (json, sqlite)"`
	Embedder string `env:"CDPDOCS_EMBEDDER" enum:"auto,hash,gemini,onnx" default:"auto" help:"Sentence embedder (auto, hash, gemini, onnx). auto uses onnx (all-MiniLM-L6-v2) when --onnx-model and --onnx-vocab are set, otherwise the offline hash embedder"`

	GeminiKey string `name:"gemini-key" env:"GEMINI_API_KEY" help:"Gemini API key for the gemini embedder"`
	OnnxModel string `name:"onnx-model" env:"CDPDOCS_ONNX_MODEL" help:"all-MiniLM-L6-v2 ONNX model file"`
	OnnxVocab string `name:"onnx-vocab" env:"CDPDOCS_ONNX_VOCAB" help:"WordPiece vocab.txt for the onnx embedder"`

	Sources string `short:"s" help:"YAML file replacing the built-in sources"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Crawl       CrawlCmd   `cmd:"" help:"Crawl every source and save the corpus"`
	Index       IndexCmd   `cmd:"" help:"Build the index from the saved corpus and report it"`
	Ask         AskCmd     `cmd:"" help:"Answer a question from the saved corpus"`
	Serve       ServeCmd   `cmd:"" help:"Serve the question endpoint"`
	ListSources SourcesCmd `cmd:"" name:"sources" help:"List configured documentation sources"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	MaxPages    int  `default:"10" help:"Maximum pages visited per source"`
	MaxChars    int  `default:"50000" help:"Maximum corpus characters per source"`
	Concurrency int  `default:"4" help:"Sources crawled in parallel"`
	Retry       bool `help:"Retry transient fetch failures (5xx, 429, timeouts) after 1s and 2s"`
	Quiet       bool `short:"q" help:"Do not print per-page progress"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct{}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the documentation"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr  string `env:"CDPDOCS_ADDR" default:":8000" help:"Listen address"`
	Crawl bool   `help:"Crawl all sources before serving"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}
