package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// MaxDocumentBytes bounds documents read from files or stdin.
const MaxDocumentBytes = 4 << 20

// StdinPath selects standard input in Load.
const StdinPath = "-"

// Document is a cleaned input document.
type Document struct {
	Source  string // file path, or "stdin"
	Text    string
	Hash    string // SHA256 hex digest of the cleaned text
	Lines   int
	Bullets int
}

// Load reads path, or stdin when path is StdinPath, and cleans its text.
func Load(path string, stdin io.Reader) (*Document, error) {
	var (
		content []byte
		err     error
		source  = path
	)

	if path == StdinPath {
		source = "stdin"
		content, err = io.ReadAll(io.LimitReader(stdin, MaxDocumentBytes+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
	} else {
		content, err = os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("file not found: %w", err)
			}
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}

	if len(content) > MaxDocumentBytes {
		return nil, fmt.Errorf("%s is larger than %d bytes", source, MaxDocumentBytes)
	}

	return NewDocument(source, string(content)), nil
}

// NewDocument cleans raw text into a Document.
func NewDocument(source, raw string) *Document {
	text := CleanText(raw)
	lines := 0
	if text != "" {
		lines = 1
		for _, r := range text {
			if r == '\n' {
				lines++
			}
		}
	}
	return &Document{
		Source:  source,
		Text:    text,
		Hash:    computeHash(text),
		Lines:   lines,
		Bullets: CountBullets(text),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
