package crawler

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJSONLSinkWritesOneRecordPerLine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "corpus.jsonl")
	sink, err := NewJSONLSink(path, zap.NewNop())
	require.NoError(t, err)

	records := []Record{
		{
			Lang:         "en",
			CategoryPath: []string{"Physics"},
			Title:        "Quark",
			PageID:       25254,
			Text:         "A quark is an elementary particle.",
			URL:          "https://en.wikipedia.org/wiki/Quark",
		},
		{
			Lang:         "sr",
			CategoryPath: []string{"Физика", "Честице"},
			Title:        "Кварк",
			PageID:       11111,
			Text:         "Кварк је елементарна честица & <graditељ> материје.",
			URL:          "https://sr.wikipedia.org/wiki/%D0%9A%D0%B2%D0%B0%D1%80%D0%BA",
		},
	}
	ctx := context.Background()
	for _, rec := range records {
		require.NoError(t, sink.Write(ctx, rec))
	}
	require.NoError(t, sink.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	require.Len(t, lines, len(records))

	for i, line := range lines {
		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &got))
		require.Len(t, got, 6)
		for _, key := range []string{"lang", "category_path", "title", "pageid", "text", "url"} {
			require.Contains(t, got, key)
		}
		require.Equal(t, records[i].Title, got["title"])
		require.EqualValues(t, records[i].PageID, got["pageid"])
	}

	// Non-ASCII text and HTML-sensitive characters are written verbatim,
	// not \u-escaped.
	require.Contains(t, lines[1], "Кварк")
	require.Contains(t, lines[1], "<graditељ>")
}

func TestJSONLSinkRejectsWriteAfterCancel(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "corpus.jsonl")
	sink, err := NewJSONLSink(path, zap.NewNop())
	require.NoError(t, err)
	defer sink.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = sink.Write(ctx, Record{Lang: "en", Title: "Quark"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestJSONLSinkFailsOnUnwritablePath(t *testing.T) {
	t.Parallel()

	_, err := NewJSONLSink(filepath.Join(t.TempDir(), "no", "such", "dir", "out.jsonl"), zap.NewNop())
	require.Error(t, err)
	require.Contains(t, err.Error(), "out.jsonl")
}
