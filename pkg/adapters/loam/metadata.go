package loam

// QuestMetadata represents the frontmatter of a quest document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type QuestMetadata struct {
	ID          string `json:"id" mapstructure:"id"`
	Title       string `json:"title" mapstructure:"title"`
	Description string `json:"description" mapstructure:"description"`
	Type        string `json:"type" mapstructure:"type"`

	// Components are decoded by the catalog so nested YAML maps keep their camelCase keys.
	Components []map[string]any `json:"components" mapstructure:"components"`

	Rewards      RewardMetadata `json:"rewards" mapstructure:"rewards"`
	Next         []string       `json:"next" mapstructure:"next"`
	Requirements []string       `json:"requirements" mapstructure:"requirements"`
}

// RewardMetadata is the rewards block of a quest document.
type RewardMetadata struct {
	Exp   int      `json:"exp" mapstructure:"exp"`
	Gold  int      `json:"gold" mapstructure:"gold"`
	Items []string `json:"items" mapstructure:"items"`
}
