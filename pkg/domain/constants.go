package domain

const (
	// SaveVersion is the format version stamped into metadata and save envelopes.
	SaveVersion = "1.0.0"

	// DefaultInventoryCapacity is advisory; nothing enforces it.
	DefaultInventoryCapacity = 20

	StartingHP             = 100
	StartingMP             = 50
	StartingExpToNextLevel = 100
)
