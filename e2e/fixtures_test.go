//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
)

const datasetJSON = `[
  {"id": "1", "name": "Acme Corp", "address": "1 Main St", "items": ["anvils", "rockets"]},
  {"id": "2", "name": "Contoso", "address": "2 Side Rd", "items": ["widgets"]},
  {"id": "3", "name": "Cogswell Cogs", "address": "3 Sprocket Way", "items": ["cogs", "sprockets"]},
  {"id": "4", "name": "Globex", "address": "4 Cypress Creek", "items": []},
  {"id": "5", "name": "Initech", "address": "5 Office Park", "items": ["staplers"]}
]`

// CreateTestWorkspace creates a temporary home directory for the app
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// CreateDataset writes the sample records into the workspace and returns
// the file path
func (tf *TUITestFramework) CreateDataset(name string) (string, error) {
	if tf.workspace == "" {
		if _, err := tf.CreateTestWorkspace(); err != nil {
			return "", err
		}
	}
	path := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(path, []byte(datasetJSON), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// StartWithDataset creates the sample dataset and launches the app on it
func (tf *TUITestFramework) StartWithDataset(extra ...string) error {
	tf.t.Helper()
	dataset, err := tf.CreateDataset("records.json")
	if err != nil {
		return err
	}
	args := append([]string{dataset, "--log-file", filepath.Join(tf.workspace, "typeahead.log"), "--debounce", "50"}, extra...)
	return tf.StartApp(args...)
}
