package selfupdate

import (
	"archive/tar"
	"archive/zip"
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
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetNameFor(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
		wantErr      bool
	}{
		{"darwin", "amd64", "drill_Darwin_all.tar.gz", false},
		{"darwin", "arm64", "drill_Darwin_all.tar.gz", false},
		{"linux", "amd64", "drill_Linux_x86_64.tar.gz", false},
		{"linux", "arm64", "drill_Linux_arm64.tar.gz", false},
		{"linux", "386", "drill_Linux_i386.tar.gz", false},
		{"windows", "amd64", "drill_Windows_x86_64.zip", false},
		{"freebsd", "amd64", "", true},
		{"linux", "mips", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := assetNameFor(tt.goos, tt.goarch)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/abhisek/drill/releases/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{"tag_name":"v1.2.0","html_url":"https://example.com/v1.2.0"}`))
	}))
	defer srv.Close()

	tests := []struct {
		version string
		want    bool
	}{
		{"v1.1.9", true},
		{"1.1.0", true},
		{"v1.2.0", false},
		{"v1.10.0", false},
		{"(devel)", true},
	}
	checker := NewChecker(WithBaseURL(srv.URL))
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			res, err := checker.Check(context.Background(), &CheckInput{Version: tt.version})
			require.NoError(t, err)
			assert.Equal(t, "v1.2.0", res.LatestVersion)
			assert.Equal(t, "https://example.com/v1.2.0", res.ReleaseURL)
			assert.Equal(t, tt.want, res.UpdateAvailable)
		})
	}
}

func TestCheck_Errors(t *testing.T) {
	t.Run("bad tag", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"tag_name":"nightly"}`))
		}))
		defer srv.Close()

		_, err := NewChecker(WithBaseURL(srv.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a version")
	})

	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		_, err := NewChecker(WithBaseURL(srv.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 403")
	})
}

func TestParseChecksums(t *testing.T) {
	got := parseChecksums([]byte("abc123  drill_Darwin_all.tar.gz\nbadline\n\n  \nfoo bar baz\ndef456  drill_Linux_x86_64.tar.gz"))
	assert.Equal(t, map[string]string{
		"drill_Darwin_all.tar.gz":   "abc123",
		"drill_Linux_x86_64.tar.gz": "def456",
	}, got)

	assert.Empty(t, parseChecksums(nil))
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("hello world")
	sum := sha256.Sum256(data)

	assert.NoError(t, verifyChecksum(data, hex.EncodeToString(sum[:])))
	assert.ErrorIs(t, verifyChecksum(data, "00"), ErrChecksum)
}

func TestExtractBinary(t *testing.T) {
	content := []byte("#!/bin/sh\necho drill")

	got, err := extractBinary(tarGz(t, "dist/drill", content), "drill_Linux_x86_64.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	got, err = extractBinary(zipped(t, "drill.exe", content), "drill_Windows_x86_64.zip")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = extractBinary(tarGz(t, "README.md", content), "drill_Linux_x86_64.tar.gz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReplaceExecutable(t *testing.T) {
	target := filepath.Join(t.TempDir(), "drill")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

	require.NoError(t, replaceExecutable(target, []byte("new-binary")))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("new-binary"), got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(target), ".drill-update-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

// releaseServer serves a v2.0.0 release for the current platform. sum
// overrides the published checksum when non-empty.
func releaseServer(t *testing.T, archive []byte, sum string) *httptest.Server {
	t.Helper()
	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	require.NoError(t, err)
	if sum == "" {
		h := sha256.Sum256(archive)
		sum = hex.EncodeToString(h[:])
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/abhisek/drill/releases/latest":
			_, _ = w.Write([]byte(`{"tag_name":"v2.0.0","html_url":"https://example.com/v2.0.0"}`))
		case "/abhisek/drill/releases/download/v2.0.0/" + asset:
			if archive == nil {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write(archive)
		case "/abhisek/drill/releases/download/v2.0.0/checksums.txt":
			fmt.Fprintf(w, "%s  %s\n", sum, asset)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func platformArchive(t *testing.T, content []byte) []byte {
	if runtime.GOOS == "windows" {
		return zipped(t, "drill.exe", content)
	}
	return tarGz(t, "drill", content)
}

func TestUpdate(t *testing.T) {
	content := []byte("new-drill-binary")
	noop := func(UpdateProgress) {}

	t.Run("installs latest", func(t *testing.T) {
		execPath := filepath.Join(t.TempDir(), "drill")
		require.NoError(t, os.WriteFile(execPath, []byte("old"), 0o755))

		srv := releaseServer(t, platformArchive(t, content), "")
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

		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, content, got)
		assert.Equal(t, []string{"check", "download", "verify", "extract", "apply", "done"}, stages)
	})

	t.Run("pinned version skips check", func(t *testing.T) {
		execPath := filepath.Join(t.TempDir(), "drill")
		require.NoError(t, os.WriteFile(execPath, []byte("old"), 0o755))

		srv := releaseServer(t, platformArchive(t, content), "")
		checker := NewChecker(
			WithDownloadBaseURL(srv.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
		)

		var stages []string
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v3.0.0", TargetVersion: "v2.0.0"},
			func(p UpdateProgress) { stages = append(stages, p.Stage) })
		require.NoError(t, err)
		assert.NotContains(t, stages, "check")
	})

	t.Run("dev build", func(t *testing.T) {
		err := NewChecker().Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, noop)
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		srv := releaseServer(t, nil, "")
		err := NewChecker(WithBaseURL(srv.URL)).Update(context.Background(), &UpdateInput{CurrentVersion: "v2.0.0"}, noop)
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		srv := releaseServer(t, platformArchive(t, content), "0000")
		checker := NewChecker(WithBaseURL(srv.URL), WithDownloadBaseURL(srv.URL))
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, noop)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("missing archive", func(t *testing.T) {
		srv := releaseServer(t, nil, "")
		checker := NewChecker(WithBaseURL(srv.URL), WithDownloadBaseURL(srv.URL))
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, noop)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download archive")
	})
}

func tarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     name,
		Mode:     0o755,
		Size:     int64(len(content)),
		Typeflag: tar.TypeReg,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func zipped(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
