// Package manifest loads and validates the manifest.json of an extracted
// browser extension. Only the fields needed to discover entry scripts are
// decoded; everything else in the document is ignored.
//
// # Manifest Format
//
//	{
//	  "name": "Example",
//	  "background": {"scripts": ["bg/main.js"]},
//	  "content_scripts": [
//	    {"matches": ["<all_urls>"], "js": ["cs/a.js", "cs/b.js"]}
//	  ]
//	}
//
// background.scripts is required and must be non-empty. content_scripts is
// optional, and an entry without js contributes no scripts.
//
// # Usage
//
//	loader := manifest.NewLoader()
//	m, err := loader.LoadDir(extractedDir)
//	if err != nil {
//	    // errors.Is(err, manifest.ErrFileNotFound) and friends
//	}
//	for _, script := range m.BackgroundScripts() {
//	    // bundle each script
//	}
//
// # Error Handling
//
// The package defines sentinel errors for the ways a manifest can be unusable:
//   - ErrFileNotFound: manifest.json does not exist
//   - ErrInvalidFormat: the file is not a valid manifest document
//   - ErrMissingBackground: background.scripts is absent or empty
package manifest
