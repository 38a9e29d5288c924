package entity

// RawDocument is the immutable input to one extraction run. The pipeline
// only reads it; ownership stays with the caller.
type RawDocument struct {
	Filename string
	MIMEType string
	Data     []byte
}
