package notify_test

import (
	"bytes"
	"testing"

	"github.com/appupgen/appupgen/pkg/ui/notify"
	fcolor "github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

//nolint:paralleltest // Toggles the package-level color state.
func TestWriteMessage_Symbols(t *testing.T) {
	originalNoColor := fcolor.NoColor
	fcolor.NoColor = true

	t.Cleanup(func() { fcolor.NoColor = originalNoColor })

	tests := []struct {
		name  string
		write func(buffer *bytes.Buffer)
		want  string
	}{
		{
			name:  "error",
			write: func(b *bytes.Buffer) { notify.Errorf(b, "boom %d", 1) },
			want:  "✗ boom 1\n",
		},
		{
			name:  "warning",
			write: func(b *bytes.Buffer) { notify.Warningf(b, "careful") },
			want:  "⚠ careful\n",
		},
		{
			name:  "activity",
			write: func(b *bytes.Buffer) { notify.Activityf(b, "working") },
			want:  "► working\n",
		},
		{
			name:  "generate",
			write: func(b *bytes.Buffer) { notify.Generatef(b, "wrote file") },
			want:  "✚ wrote file\n",
		},
		{
			name:  "success",
			write: func(b *bytes.Buffer) { notify.Successf(b, "done") },
			want:  "✔ done\n",
		},
		{
			name:  "info",
			write: func(b *bytes.Buffer) { notify.Infof(b, "fyi") },
			want:  "ℹ fyi\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buffer bytes.Buffer

			test.write(&buffer)

			assert.Equal(t, test.want, buffer.String())
		})
	}
}

//nolint:paralleltest // Toggles the package-level color state.
func TestWriteMessage_MultilineIndent(t *testing.T) {
	originalNoColor := fcolor.NoColor
	fcolor.NoColor = true

	t.Cleanup(func() { fcolor.NoColor = originalNoColor })

	var buffer bytes.Buffer

	notify.Errorf(&buffer, "first line\nsecond line")

	assert.Equal(t, "✗ first line\n  second line\n", buffer.String())
}
