package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/rsqsongdb/internal/builder"
	"github.com/harrison/rsqsongdb/internal/models"
	"github.com/harrison/rsqsongdb/internal/songdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates empty files under root; paths use forward slashes
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}
}

// executeCommand runs the root command with args, isolated from any user config
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	t.Setenv("RSQSONGDB_CONFIG", "")
	isolated := []string{"--config", filepath.Join(t.TempDir(), "none.yaml")}

	rootCmd := NewRootCommand()
	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(errBuf)
	rootCmd.SetArgs(append(args, isolated...))

	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func readDatabase(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\r\n"), "\r\n")
}

func TestCreateCommand_WritesDatabase(t *testing.T) {
	music := t.TempDir()
	writeTree(t, music,
		"Sinatra - 01 - My Way.mp3", "Sinatra - 01 - My Way.cdg",
		"Pop/Adele - 03 - Hello.mp3", "Pop/Adele - 03 - Hello.cdg",
	)

	stdout, stderr, err := executeCommand(t, "create", "-m", music, "-a", `H:\Music\`, "-n", "5000")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Records: 2")
	assert.Contains(t, stdout, "Song numbers: 5000-5001")

	lines := readDatabase(t, filepath.Join(music, songdb.DefaultFileName))
	require.Len(t, lines, 3)
	assert.Equal(t, songdb.Header(), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "#5000"))
	assert.Contains(t, lines[1], "#MY WAY")
	assert.Contains(t, lines[1], `#H:\Music\Sinatra - 01 - My Way.mp3`)
	assert.True(t, strings.HasPrefix(lines[2], "#5001"))
	assert.Contains(t, lines[2], `#H:\Music\Pop\Adele - 03 - Hello.cdg`)

	_, statErr := os.Stat(filepath.Join(music, songdb.DefaultFileName+".lock"))
	assert.NoError(t, statErr, "lock file is left in place after the run")
}

func TestCreateCommand_WarningsExitNonZero(t *testing.T) {
	music := t.TempDir()
	writeTree(t, music,
		"Queen - Bohemian Rhapsody.mp3", "Queen - Bohemian Rhapsody.cdg",
		"Lonely - 01 - Song.mp3",
		"Good - 01 - Song.mp3", "Good - 01 - Song.cdg",
	)
	dbPath := filepath.Join(t.TempDir(), "out", "db.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(dbPath), 0755))

	stdout, stderr, err := executeCommand(t, "create", "--musicdir", music, "--songdb", dbPath)

	var diagErr *builder.DiagnosticsError
	require.ErrorAs(t, err, &diagErr)
	assert.Equal(t, 2, diagErr.Warnings)
	assert.Equal(t, 0, diagErr.Errors)

	assert.Contains(t, stdout, "[WARN] '"+filepath.Join(music, "Lonely - 01 - Song.mp3")+"' - MP3 has no CDG file.")
	assert.Contains(t, stdout, "File name is not in correct format")
	assert.Contains(t, stderr, "Audio files without a graphics file")
	assert.Contains(t, stderr, "File names not in 'Singer - NN - Title' format")

	lines := readDatabase(t, dbPath)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "#1000"))
	assert.Contains(t, lines[1], "#GOOD")
}

func TestCreateCommand_OverwriteWarns(t *testing.T) {
	music := t.TempDir()
	writeTree(t, music, "A - 1 - B.mp3", "A - 1 - B.cdg")

	_, _, err := executeCommand(t, "create", "-m", music)
	require.NoError(t, err)

	stdout, _, err := executeCommand(t, "create", "-m", music)
	var diagErr *builder.DiagnosticsError
	require.ErrorAs(t, err, &diagErr)
	assert.Equal(t, 1, diagErr.Warnings)
	assert.Contains(t, stdout, "Overwriting existing song database")

	assert.Len(t, readDatabase(t, filepath.Join(music, songdb.DefaultFileName)), 2)
}

func TestCreateCommand_MissingMusicDir(t *testing.T) {
	stdout, _, err := executeCommand(t, "create")

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrMissingMusicDir), "got %v", err)
	assert.Contains(t, stdout, "[ERROR] music directory must be specified")
}

func TestCreateCommand_InvalidFlags(t *testing.T) {
	music := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "negative song number", args: []string{"-n", "-5"}, wantErr: "first_song_number"},
		{name: "bad log level", args: []string{"--log-level", "loud"}, wantErr: "invalid log_level"},
		{name: "same extensions", args: []string{"--audio-ext", ".cdg"}, wantErr: "must differ"},
		{name: "positional argument", args: []string{"extra"}, wantErr: "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"create", "-m", music}, tt.args...)
			_, _, err := executeCommand(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateCommand_ConfigFile(t *testing.T) {
	music := t.TempDir()
	writeTree(t, music, "A - 1 - B.ogg", "A - 1 - B.lrc", "skip/C - 1 - D.ogg", "skip/C - 1 - D.lrc")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "music_dir: " + music + "\n" +
		"first_song_number: 7\n" +
		"audio_ext: .ogg\n" +
		"graphics_ext: .lrc\n" +
		"exclude_dirs: [skip]\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	rootCmd := NewRootCommand()
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs([]string{"create", "--config", cfgPath, "-n", "9"})
	require.NoError(t, rootCmd.Execute())

	lines := readDatabase(t, filepath.Join(music, songdb.DefaultFileName))
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "#9 "), "flag should override config number, got %q", lines[1])
	assert.Contains(t, lines[1], "A - 1 - B.ogg")
}

func TestCreateCommand_LogDir(t *testing.T) {
	music := t.TempDir()
	logDir := filepath.Join(t.TempDir(), "logs")
	writeTree(t, music, "A - 1 - B.mp3")

	_, _, err := executeCommand(t, "create", "-m", music, "--log-dir", logDir)
	require.Error(t, err)

	data, err := os.ReadFile(filepath.Join(logDir, "latest.log"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Run ID: ")
	assert.Contains(t, content, "MissingPairFile")
	assert.Contains(t, content, "=== BUILD SUMMARY ===")
}

func TestCreateCommand_UnwritableDatabase(t *testing.T) {
	music := t.TempDir()
	writeTree(t, music, "A - 1 - B.mp3", "A - 1 - B.cdg")
	dbPath := filepath.Join(t.TempDir(), "missing", "dir", "songdb.txt")

	stdout, _, err := executeCommand(t, "create", "-m", music, "-d", dbPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build failed")
	assert.Contains(t, stdout, "[ERROR]")
}
