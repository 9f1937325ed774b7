package manifest

// FileName is the manifest file expected at the root of an extracted archive
const FileName = "manifest.json"

// Manifest is the subset of an extension manifest that drives bundling
type Manifest struct {
	Name            string          `json:"name,omitempty"`
	Version         string          `json:"version,omitempty"`
	ManifestVersion int             `json:"manifest_version,omitempty"`
	Background      *Background     `json:"background,omitempty"`
	ContentScripts  []ContentScript `json:"content_scripts,omitempty"`
}

// Background describes the extension's background page scripts
type Background struct {
	Scripts []string `json:"scripts,omitempty"`
	// ServiceWorker is decoded for logging only; it is not bundled.
	ServiceWorker string `json:"service_worker,omitempty"`
}

// ContentScript is one content_scripts entry
type ContentScript struct {
	Matches []string `json:"matches,omitempty"`
	JS      []string `json:"js,omitempty"`
	CSS     []string `json:"css,omitempty"`
}

// Validate checks that the manifest declares at least one background script
func (m *Manifest) Validate() error {
	if len(m.BackgroundScripts()) == 0 {
		return ErrMissingBackground
	}
	return nil
}

// BackgroundScripts returns the declared background scripts in order
func (m *Manifest) BackgroundScripts() []string {
	if m.Background == nil {
		return nil
	}
	return m.Background.Scripts
}

// ContentScriptPaths flattens every content_scripts[].js list into one
// ordered list. Entries without js are skipped.
func (m *Manifest) ContentScriptPaths() []string {
	var paths []string
	for _, cs := range m.ContentScripts {
		paths = append(paths, cs.JS...)
	}
	return paths
}

// ScriptCount returns the number of bundle calls the manifest implies
func (m *Manifest) ScriptCount() int {
	return len(m.BackgroundScripts()) + len(m.ContentScriptPaths())
}
