package domain

// SaveEnvelope wraps a state for persistence. Timestamp is epoch milliseconds.
type SaveEnvelope struct {
	Version   string     `json:"version"`
	State     *GameState `json:"state"`
	Timestamp int64      `json:"timestamp"`
}

// ExportedSave is a portable save document ready to be written to disk.
type ExportedSave struct {
	Filename string
	Data     []byte
}
