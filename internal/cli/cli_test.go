package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vocSample = `<annotation>
	<filename>dog.jpg</filename>
	<size><width>640</width><height>480</height></size>
	<object>
		<name>dog</name>
		<bndbox><xmin>10</xmin><ymin>20</ymin><xmax>110</xmax><ymax>220</ymax></bndbox>
	</object>
</annotation>`

// runCommand executes the root command with args and returns its output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "labelpivot v")
	assert.Contains(t, out, modulePath)
}

func TestInitCmd(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "conf")

	out, err := runCommand(t, "init", "--config-dir", configDir)
	require.NoError(t, err)
	assert.Contains(t, out, "initialized")
	assert.FileExists(t, filepath.Join(configDir, "config.yaml"))

	// Re-running leaves the existing config untouched.
	_, err = runCommand(t, "init", "--config-dir", configDir)
	require.NoError(t, err)
}

func TestSniffCmd(t *testing.T) {
	dir := t.TempDir()
	vocPath := filepath.Join(dir, "ann.xml")
	require.NoError(t, os.WriteFile(vocPath, []byte(vocSample), 0o644))
	prosePath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(prosePath, []byte("just some words here\n"), 0o644))

	out, err := runCommand(t, "sniff", vocPath, prosePath)
	require.NoError(t, err)
	assert.Contains(t, out, "ann.xml: Pascal VOC")
	assert.Contains(t, out, "notes.txt: Unknown")
}

func TestConvertCmd(t *testing.T) {
	src := filepath.Join(t.TempDir(), "dogs")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "dog.xml"), []byte(vocSample), 0o644))

	outputDir := t.TempDir()
	configDir := filepath.Join(t.TempDir(), "conf")

	out, err := runCommand(t, "convert", src,
		"--config-dir", configDir,
		"--output-dir", outputDir,
		"--csv-snapshot",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Pascal VOC")

	cocosDir := filepath.Join(outputDir, "converted_dogs", "cocos")
	assert.FileExists(t, filepath.Join(cocosDir, "train_coco.json"))
	assert.FileExists(t, filepath.Join(cocosDir, "canonical.csv"))
}

func TestConvertCmdUnknownFormat(t *testing.T) {
	src := filepath.Join(t.TempDir(), "nothing")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "readme.md"), []byte("hi"), 0o644))

	_, err := runCommand(t, "convert", src,
		"--config-dir", filepath.Join(t.TempDir(), "conf"),
		"--output-dir", t.TempDir(),
	)
	assert.Error(t, err)
}
