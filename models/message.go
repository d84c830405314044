package models

// Message is one utterance by the target participant, extracted from a transcript.
type Message struct {
	SourceID      string `json:"source_id" yaml:"source_id"`
	SequenceIndex int    `json:"sequence_index" yaml:"sequence_index"` // 0-based, resets per source
	LineNumber    int    `json:"line_number" yaml:"line_number"`       // 1-based record position in the source
	Content       string `json:"content" yaml:"content"`
}
