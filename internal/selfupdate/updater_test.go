package selfupdate

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetNameFor(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
	}{
		{"darwin", "amd64", "adaptiq_Darwin_all.tar.gz"},
		{"darwin", "arm64", "adaptiq_Darwin_all.tar.gz"},
		{"linux", "amd64", "adaptiq_Linux_x86_64.tar.gz"},
		{"linux", "arm64", "adaptiq_Linux_arm64.tar.gz"},
		{"linux", "386", "adaptiq_Linux_i386.tar.gz"},
		{"windows", "amd64", "adaptiq_Windows_x86_64.zip"},
		{"windows", "arm64", "adaptiq_Windows_arm64.zip"},
	}
	for _, tt := range tests {
		got, err := assetNameFor(tt.goos, tt.goarch)
		require.NoError(t, err, tt.goos+"/"+tt.goarch)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range [][2]string{{"freebsd", "amd64"}, {"linux", "mips"}} {
		_, err := assetNameFor(bad[0], bad[1])
		assert.Error(t, err, bad[0]+"/"+bad[1])
	}
}

func TestParseChecksums(t *testing.T) {
	got := parseChecksums([]byte("abc123  adaptiq_Darwin_all.tar.gz\nbadline\n  \nfoo  bar  baz\ndef456  adaptiq_Linux_x86_64.tar.gz\n"))
	assert.Equal(t, map[string]string{
		"adaptiq_Darwin_all.tar.gz":   "abc123",
		"adaptiq_Linux_x86_64.tar.gz": "def456",
	}, got)
	assert.Empty(t, parseChecksums(nil))
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("hello world")
	h := sha256.Sum256(data)

	assert.NoError(t, verifyChecksum(data, hex.EncodeToString(h[:])))
	assert.ErrorIs(t, verifyChecksum(data, strings.Repeat("0", 64)), ErrChecksum)
}

func TestExtractBinary(t *testing.T) {
	content := []byte("#!/bin/sh\necho adaptiq")

	got, err := extractBinary(buildTarGz(t, "dist/adaptiq", content), "adaptiq_Linux_x86_64.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = extractBinary(buildTarGz(t, "README.md", content), "adaptiq_Linux_x86_64.tar.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestApplyUpdate(t *testing.T) {
	target := filepath.Join(t.TempDir(), "adaptiq")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0755))

	fresh := []byte("new-binary-content")
	h := sha256.Sum256(fresh)
	require.NoError(t, applyUpdate(fresh, target, h[:]))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, fresh, got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	assert.ErrorIs(t, applyUpdate(fresh, target, make([]byte, 32)), ErrChecksum)
}

// releaseServer serves a v2.0.0 release of archive. checksum overrides the
// listed hash when non-empty; skipAssets makes every download 404.
func releaseServer(t *testing.T, asset string, archive []byte, checksum string, skipAssets bool) *httptest.Server {
	t.Helper()
	if checksum == "" {
		h := sha256.Sum256(archive)
		checksum = hex.EncodeToString(h[:])
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const dl = "/abhisek/adaptiq/releases/download/v2.0.0/"
		switch {
		case r.URL.Path == "/repos/abhisek/adaptiq/releases/latest":
			_, _ = w.Write([]byte(`{"tag_name":"v2.0.0","html_url":"https://example.com/v2.0.0"}`))
		case skipAssets:
			w.WriteHeader(http.StatusNotFound)
		case r.URL.Path == dl+asset:
			_, _ = w.Write(archive)
		case r.URL.Path == dl+"checksums.txt":
			_, _ = fmt.Fprintf(w, "%s  %s\n", checksum, asset)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestUpdate(t *testing.T) {
	asset, err := assetName()
	if err != nil || strings.HasSuffix(asset, ".zip") {
		t.Skip("no tar.gz release asset for this platform")
	}
	binary := []byte("new-adaptiq-binary")
	archive := buildTarGz(t, "adaptiq", binary)
	noop := func(UpdateProgress) {}

	t.Run("installs latest", func(t *testing.T) {
		execPath := filepath.Join(t.TempDir(), "adaptiq")
		require.NoError(t, os.WriteFile(execPath, []byte("old"), 0755))

		srv := releaseServer(t, asset, archive, "", false)
		checker := NewChecker(
			WithBaseURL(srv.URL),
			WithDownloadBaseURL(srv.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
		)

		var stages []string
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(p UpdateProgress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"check", "download", "verify", "extract", "apply", "done"}, stages)

		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, binary, got)
	})

	t.Run("dev build", func(t *testing.T) {
		err := NewChecker().Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, noop)
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		srv := releaseServer(t, asset, archive, "", false)
		err := NewChecker(WithBaseURL(srv.URL)).Update(context.Background(), &UpdateInput{CurrentVersion: "v2.0.0"}, noop)
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		srv := releaseServer(t, asset, archive, strings.Repeat("0", 64), false)
		checker := NewChecker(WithBaseURL(srv.URL), WithDownloadBaseURL(srv.URL))
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, noop)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("download failure", func(t *testing.T) {
		srv := releaseServer(t, asset, archive, "", true)
		checker := NewChecker(WithBaseURL(srv.URL), WithDownloadBaseURL(srv.URL))
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, noop)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download archive")
	})
}

func buildTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     name,
		Size:     int64(len(content)),
		Mode:     0755,
		Typeflag: tar.TypeReg,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}
