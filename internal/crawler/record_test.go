package crawler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lang  string
		title string
		want  string
	}{
		{
			name:  "spaces become underscores",
			lang:  "en",
			title: "Albert Einstein",
			want:  "https://en.wikipedia.org/wiki/Albert_Einstein",
		},
		{
			name:  "slash is preserved",
			lang:  "en",
			title: "AC/DC",
			want:  "https://en.wikipedia.org/wiki/AC/DC",
		},
		{
			name:  "non-ASCII title is percent-encoded",
			lang:  "sr",
			title: "Физика",
			want:  "https://sr.wikipedia.org/wiki/%D0%A4%D0%B8%D0%B7%D0%B8%D0%BA%D0%B0",
		},
		{
			name:  "question mark is escaped",
			lang:  "en",
			title: "Who? Me?",
			want:  "https://en.wikipedia.org/wiki/Who%3F_Me%3F",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, PageURL(tt.lang, tt.title))
		})
	}
}
