package onnx

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/fwojciec/cdpdocs"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Special tokens of uncased BERT vocabularies.
const (
	tokenPad = "[PAD]"
	tokenUnk = "[UNK]"
	tokenCLS = "[CLS]"
	tokenSEP = "[SEP]"
)

// maxWordChars is the longest word WordPiece will split; longer words become [UNK].
const maxWordChars = 100

// Tokenizer is an uncased BERT WordPiece tokenizer.
type Tokenizer struct {
	vocab map[string]int64
	pad   int64
	unk   int64
	cls   int64
	sep   int64
}

// LoadVocabFile reads a vocab.txt file with one token per line.
func LoadVocabFile(path string) (*Tokenizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadVocab(f)
}

// LoadVocab reads one token per line; the line number is the token ID.
func LoadVocab(r io.Reader) (*Tokenizer, error) {
	vocab := make(map[string]int64)
	scanner := bufio.NewScanner(r)
	var id int64
	for scanner.Scan() {
		vocab[strings.TrimRight(scanner.Text(), "\r")] = id
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	t := &Tokenizer{vocab: vocab}
	for tok, dst := range map[string]*int64{tokenPad: &t.pad, tokenUnk: &t.unk, tokenCLS: &t.cls, tokenSEP: &t.sep} {
		v, ok := vocab[tok]
		if !ok {
			return nil, cdpdocs.Errorf(cdpdocs.EINVALID, "vocabulary is missing %s", tok)
		}
		*dst = v
	}
	return t, nil
}

// Encode returns input_ids, attention_mask and token_type_ids of length
// maxLen: [CLS] tokens [SEP] followed by padding. Tokens that do not fit
// are dropped.
func (t *Tokenizer) Encode(text string, maxLen int) (ids, mask, types []int64) {
	ids = make([]int64, maxLen)
	mask = make([]int64, maxLen)
	types = make([]int64, maxLen)
	for i := range ids {
		ids[i] = t.pad
	}
	if maxLen < 2 {
		return ids, mask, types
	}

	pieces := t.Tokenize(text)
	if len(pieces) > maxLen-2 {
		pieces = pieces[:maxLen-2]
	}

	ids[0] = t.cls
	mask[0] = 1
	for i, p := range pieces {
		ids[i+1] = p
		mask[i+1] = 1
	}
	ids[len(pieces)+1] = t.sep
	mask[len(pieces)+1] = 1
	return ids, mask, types
}

// Tokenize returns the WordPiece token IDs of text without special tokens.
func (t *Tokenizer) Tokenize(text string) []int64 {
	var out []int64
	for _, word := range basicTokens(text) {
		out = append(out, t.wordPiece(word)...)
	}
	return out
}

// wordPiece splits word greedily into the longest vocabulary prefixes,
// continuing pieces carrying the "##" marker.
func (t *Tokenizer) wordPiece(word string) []int64 {
	chars := []rune(word)
	if len(chars) > maxWordChars {
		return []int64{t.unk}
	}

	var pieces []int64
	for start := 0; start < len(chars); {
		end := len(chars)
		found := false
		for end > start {
			sub := string(chars[start:end])
			if start > 0 {
				sub = "##" + sub
			}
			if id, ok := t.vocab[sub]; ok {
				pieces = append(pieces, id)
				found = true
				break
			}
			end--
		}
		if !found {
			return []int64{t.unk}
		}
		start = end
	}
	return pieces
}

// basicTokens lowercases, strips accents and splits on whitespace and
// punctuation, keeping each punctuation character as its own token.
func basicTokens(text string) []string {
	text = strings.ToLower(text)
	// Chained transformers carry state, so one is built per call.
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(stripAccents, text); err == nil {
		text = stripped
	}

	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		switch {
		case unicode.IsSpace(r) || unicode.IsControl(r):
			flush()
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush()
			tokens = append(tokens, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}
