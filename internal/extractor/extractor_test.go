package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/quantmind-br/extbundle/internal/domain"
	"github.com/quantmind-br/extbundle/internal/mocks"
	"github.com/quantmind-br/extbundle/internal/utils"
)

func newTestExtractor(opts Options) *Extractor {
	opts.Progress = utils.ProgressOptions{Disabled: true}
	return New(opts)
}

func TestExtractor_ExtractAll(t *testing.T) {
	input := t.TempDir()
	output := filepath.Join(t.TempDir(), "archives")

	writeZip(t, filepath.Join(input, "alpha.zip"), zipEntry{name: "manifest.json", body: `{}`})
	writeZip(t, filepath.Join(input, "beta.xpi"), zipEntry{name: "bg.js", body: "1"})
	writeZip(t, filepath.Join(input, ".hidden.zip"), zipEntry{name: "x.js", body: "1"})
	require.NoError(t, os.Mkdir(filepath.Join(input, "subdir"), 0755))

	result, err := newTestExtractor(Options{}).ExtractAll(context.Background(), input, output)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Empty(t, result.Failed)
	assert.Equal(t, []domain.ArchiveID{"alpha", "beta"}, result.IDs())

	absOut, _ := filepath.Abs(output)
	assert.Equal(t, filepath.Join(absOut, "alpha"), result.Extracted[0].Dir)
	assert.FileExists(t, filepath.Join(output, "alpha", "manifest.json"))
	assert.FileExists(t, filepath.Join(output, "beta", "bg.js"))
	assert.NoDirExists(t, filepath.Join(output, ".hidden"))
}

func TestExtractor_ExtractAll_Limit(t *testing.T) {
	input := t.TempDir()
	for _, name := range []string{"a.zip", "b.zip", "c.zip"} {
		writeZip(t, filepath.Join(input, name), zipEntry{name: "f.js", body: "1"})
	}

	opts := Options{}
	opts.Limit = 2
	result, err := newTestExtractor(opts).ExtractAll(context.Background(), input, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, []domain.ArchiveID{"a", "b"}, result.IDs())
}

func TestExtractor_ExtractAll_DuplicateNames(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	writeZip(t, filepath.Join(input, "Tool.zip"), zipEntry{name: "first.js", body: "1"})
	writeZip(t, filepath.Join(input, "tool.xpi"), zipEntry{name: "second.js", body: "2"})

	result, err := newTestExtractor(Options{}).ExtractAll(context.Background(), input, output)
	require.NoError(t, err)

	require.Len(t, result.Extracted, 1)
	assert.Equal(t, domain.ArchiveID("Tool"), result.Extracted[0].ID)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, domain.ArchiveID("tool"), result.Failed[0].ID)
	assert.ErrorIs(t, result.Failed[0].Err, domain.ErrDuplicateArchive)
	assert.FileExists(t, filepath.Join(output, "Tool", "first.js"))
	assert.NoFileExists(t, filepath.Join(output, "Tool", "second.js"))
}

func TestExtractor_ExtractAll_MissingInput(t *testing.T) {
	result, err := newTestExtractor(Options{}).ExtractAll(context.Background(), filepath.Join(t.TempDir(), "nope"), t.TempDir())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrListInput)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtractor_ExtractAll_EmptyInput(t *testing.T) {
	result, err := newTestExtractor(Options{}).ExtractAll(context.Background(), t.TempDir(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Extracted)
}

func TestExtractor_ExtractAll_FailureContinues(t *testing.T) {
	ctrl := gomock.NewController(t)

	input := t.TempDir()
	output := t.TempDir()
	for _, name := range []string{"a.zip", "b.zip", "c.zip"} {
		require.NoError(t, os.WriteFile(filepath.Join(input, name), []byte("x"), 0644))
	}

	absOut, _ := filepath.Abs(output)
	archiver := mocks.NewMockArchiveExtractor(ctrl)
	gomock.InOrder(
		archiver.EXPECT().Extract(gomock.Any(), filepath.Join(input, "a.zip"), filepath.Join(absOut, "a")).Return(nil),
		archiver.EXPECT().Extract(gomock.Any(), filepath.Join(input, "b.zip"), filepath.Join(absOut, "b")).
			DoAndReturn(func(_ context.Context, _, dest string) error {
				// leave a partial directory behind
				require.NoError(t, os.MkdirAll(dest, 0755))
				return errors.New("corrupt archive")
			}),
		archiver.EXPECT().Extract(gomock.Any(), filepath.Join(input, "c.zip"), filepath.Join(absOut, "c")).Return(nil),
	)

	result, err := newTestExtractor(Options{Archiver: archiver}).ExtractAll(context.Background(), input, output)
	require.NoError(t, err)

	assert.Equal(t, []domain.ArchiveID{"a", "c"}, result.IDs())
	require.Len(t, result.Failed, 1)
	assert.Equal(t, domain.ArchiveID("b"), result.Failed[0].ID)
	assert.EqualError(t, result.Failed[0].Err, "corrupt archive")
	assert.NoDirExists(t, filepath.Join(output, "b"))
}

func TestExtractor_ExtractAll_FailureKeepsEarlierExtraction(t *testing.T) {
	ctrl := gomock.NewController(t)

	input := t.TempDir()
	output := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(input, "a.zip"), []byte("x"), 0644))

	earlier := filepath.Join(output, "a", "manifest.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(earlier), 0755))
	require.NoError(t, os.WriteFile(earlier, []byte(`{}`), 0644))

	archiver := mocks.NewMockArchiveExtractor(ctrl)
	archiver.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("corrupt archive"))

	result, err := newTestExtractor(Options{Archiver: archiver}).ExtractAll(context.Background(), input, output)
	require.NoError(t, err)

	require.Len(t, result.Failed, 1)
	assert.FileExists(t, earlier)
}

func TestExtractor_ExtractAll_Canceled(t *testing.T) {
	ctrl := gomock.NewController(t)

	input := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(input, "a.zip"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(input, "b.zip"), []byte("x"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	archiver := mocks.NewMockArchiveExtractor(ctrl)
	archiver.EXPECT().Extract(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string) error {
			cancel()
			return nil
		}).Times(1)

	result, err := newTestExtractor(Options{Archiver: archiver}).ExtractAll(ctx, input, t.TempDir())

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Len(t, result.Extracted, 1)
}

func TestNew_Defaults(t *testing.T) {
	e := New(Options{})

	require.NotNil(t, e)
	assert.IsType(t, &ZipExtractor{}, e.archiver)
	assert.NotNil(t, e.logger)
}
