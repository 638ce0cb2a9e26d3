package cache

// Keyer derives cache keys.
type Keyer interface {
	// SnapshotKey identifies a layout snapshot computed from a configuration.
	SnapshotKey(configHash string, opts SnapshotKeyOpts) string
	// ArtifactKey identifies a rendering of a snapshot.
	ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string
}

// SnapshotKeyOpts are the inputs of a snapshot that the configuration hash
// does not cover.
type SnapshotKeyOpts struct {
	Steps  int `json:"steps"`
	JumpTo int `json:"jump_to"`
}

// ArtifactKeyOpts are the render options of an artifact.
type ArtifactKeyOpts struct {
	VizType      string  `json:"viz_type"`
	Format       string  `json:"format"`
	ShowIDs      bool    `json:"show_ids,omitempty"`
	ShowViewport bool    `json:"show_viewport,omitempty"`
	ShowColumns  bool    `json:"show_columns,omitempty"`
	Detailed     bool    `json:"detailed,omitempty"`
	Scale        float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) SnapshotKey(configHash string, opts SnapshotKeyOpts) string {
	return hashKey("snapshot", configHash, opts)
}

func (DefaultKeyer) ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", snapshotHash, opts)
}
