package loam

// MessageMetadata is the frontmatter of a catalog document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type MessageMetadata struct {
	// ID overrides the document path as the message ID.
	ID string `json:"id" mapstructure:"id"`

	// Format names the codec used for the body (e.g. "markup", "legacy", "json").
	// Empty means markup.
	Format string `json:"format" mapstructure:"format"`

	Description string   `json:"description,omitempty" mapstructure:"description"`
	Tags        []string `json:"tags,omitempty" mapstructure:"tags"`
}
