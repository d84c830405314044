// Package transcript reads JSON Lines conversation logs and extracts the
// messages written by one participant.
package transcript

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dtnitsch/chat-profiler/models"
)

// maxLineBytes bounds a single record. Tool outputs embedded in transcripts
// can be several megabytes; longer records are drained and skipped.
const maxLineBytes = 10 * 1024 * 1024

const readBufferBytes = 256 * 1024

// SkipReason explains why a record did not become a Message.
type SkipReason string

const (
	SkipBlankLine        SkipReason = "blank_line"
	SkipInvalidJSON      SkipReason = "invalid_json"
	SkipNotObject        SkipReason = "not_object"
	SkipNoMessage        SkipReason = "no_message"
	SkipMessageNotObject SkipReason = "message_not_object"
	SkipWrongRole        SkipReason = "wrong_role"
	SkipMissingContent   SkipReason = "missing_content"
	SkipNonStringContent SkipReason = "non_string_content"
	SkipEmptyContent     SkipReason = "empty_content"
	SkipOversizedRecord  SkipReason = "oversized_record"
)

// Decision is the outcome of decoding one record.
// Content is set only when Skip is empty.
type Decision struct {
	Content string
	Skip    SkipReason
}

// Accepted reports whether the record produced a Message.
func (d Decision) Accepted() bool {
	return d.Skip == ""
}

// SourceStats counts what was seen while reading one source.
type SourceStats struct {
	SourceID          string
	Path              string
	RecordsExamined   int
	MessagesExtracted int
	Skipped           map[SkipReason]int
}

// Reader extracts messages for one role, examining at most MaxRecords lines per source.
type Reader struct {
	Role       string
	MaxRecords int
	Logger     *slog.Logger
}

// NewReader returns a Reader with defaults applied for empty values.
func NewReader(role string, maxRecords int, logger *slog.Logger) *Reader {
	if role == "" {
		role = models.DefaultRole
	}
	if maxRecords <= 0 {
		maxRecords = models.DefaultMaxRecords
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reader{Role: role, MaxRecords: maxRecords, Logger: logger}
}

// ReadFile opens path and reads it as sourceID. Failing to open or read the
// file is returned as an error; malformed records are only counted.
func (r *Reader) ReadFile(sourceID, path string) ([]models.Message, SourceStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, SourceStats{SourceID: sourceID, Path: path}, fmt.Errorf("failed to open transcript %s: %w", path, err)
	}
	defer f.Close()

	msgs, stats, err := r.Read(sourceID, f)
	stats.Path = path
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read transcript %s: %w", path, err)
	}
	return msgs, stats, nil
}

// Read consumes up to MaxRecords lines from src. Only an I/O error from src
// is returned; every record, however malformed or large, is counted.
func (r *Reader) Read(sourceID string, src io.Reader) ([]models.Message, SourceStats, error) {
	stats := SourceStats{SourceID: sourceID, Skipped: make(map[SkipReason]int)}
	logger := r.logger()

	br := bufio.NewReaderSize(src, readBufferBytes)

	var messages []models.Message
	for stats.RecordsExamined < r.maxRecords() {
		line, oversized, err := readRecord(br, maxLineBytes)
		if err != nil && err != io.EOF {
			stats.RecordsExamined++
			return nil, stats, fmt.Errorf("record %d: %w", stats.RecordsExamined, err)
		}
		if err == io.EOF && len(line) == 0 && !oversized {
			break
		}
		stats.RecordsExamined++

		d := Decision{Skip: SkipOversizedRecord}
		if !oversized {
			d = r.Decode(line)
		}
		if !d.Accepted() {
			stats.Skipped[d.Skip]++
			logger.Debug("skipping record", "source", sourceID, "line", stats.RecordsExamined, "reason", string(d.Skip))
		} else {
			messages = append(messages, models.Message{
				SourceID:      sourceID,
				SequenceIndex: len(messages),
				LineNumber:    stats.RecordsExamined,
				Content:       d.Content,
			})
		}

		if err == io.EOF {
			break
		}
	}

	stats.MessagesExtracted = len(messages)
	logger.Info("read transcript", "source", sourceID,
		"records_examined", stats.RecordsExamined,
		"messages_extracted", stats.MessagesExtracted)
	return messages, stats, nil
}

// readRecord returns the next line without its line ending. A line longer
// than limit is consumed up to its newline but not kept, and oversized is
// set. err is io.EOF when the input ended at or inside this line.
func readRecord(br *bufio.Reader, limit int) (line []byte, oversized bool, err error) {
	for {
		var chunk []byte
		chunk, err = br.ReadSlice('\n')
		if !oversized {
			line = append(line, chunk...)
			if len(line) > limit+2 {
				oversized = true
				line = nil
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}

		line = bytes.TrimSuffix(line, []byte("\n"))
		line = bytes.TrimSuffix(line, []byte("\r"))
		if len(line) > limit {
			oversized = true
			line = nil
		}
		return line, oversized, err
	}
}

// Decode classifies a single record. It never fails; every problem maps to a SkipReason.
func (r *Reader) Decode(line []byte) Decision {
	if len(bytes.TrimSpace(line)) == 0 {
		return Decision{Skip: SkipBlankLine}
	}

	var record map[string]json.RawMessage
	if err := json.Unmarshal(line, &record); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Decision{Skip: SkipNotObject}
		}
		return Decision{Skip: SkipInvalidJSON}
	}

	rawMsg, ok := record["message"]
	if !ok {
		return Decision{Skip: SkipNoMessage}
	}

	var msg map[string]json.RawMessage
	if err := json.Unmarshal(rawMsg, &msg); err != nil || msg == nil {
		return Decision{Skip: SkipMessageNotObject}
	}

	var role string
	if err := json.Unmarshal(msg["role"], &role); err != nil || role != r.role() {
		return Decision{Skip: SkipWrongRole}
	}

	rawContent, ok := msg["content"]
	if !ok || bytes.Equal(bytes.TrimSpace(rawContent), []byte("null")) {
		return Decision{Skip: SkipMissingContent}
	}

	var content string
	if err := json.Unmarshal(rawContent, &content); err != nil {
		return Decision{Skip: SkipNonStringContent}
	}
	if content == "" {
		return Decision{Skip: SkipEmptyContent}
	}

	return Decision{Content: content}
}

func (r *Reader) role() string {
	if r.Role == "" {
		return models.DefaultRole
	}
	return r.Role
}

func (r *Reader) maxRecords() int {
	if r.MaxRecords <= 0 {
		return models.DefaultMaxRecords
	}
	return r.MaxRecords
}

func (r *Reader) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}
