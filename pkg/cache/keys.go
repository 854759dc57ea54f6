package cache

// ArtifactKeyOpts are the render options that change the output bytes.
type ArtifactKeyOpts struct {
	Format    string   `json:"format"`
	Detailed  bool     `json:"detailed,omitempty"`
	Arrows    bool     `json:"arrows,omitempty"`
	Photos    bool     `json:"photos,omitempty"`
	Highlight []string `json:"highlight,omitempty"`
	Focus     []string `json:"focus,omitempty"`

	// PhotoStamp fingerprints the photo files drawn into the artifact.
	PhotoStamp string `json:"photo_stamp,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<hash>" over the dataset hash and options.
func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", datasetHash, opts)
}
