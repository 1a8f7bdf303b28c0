// Copyright 2026 Peter Edge
//
// All rights reserved.

package epochpickzone

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
)

func TestCatalogDir(t *testing.T) {
	t.Parallel()
	rootPath := t.TempDir()
	writeZoneFile(t, rootPath, "UTC", "TZif2")
	writeZoneFile(t, rootPath, "America/New_York", "TZif2")
	writeZoneFile(t, rootPath, "America/Argentina/Buenos_Aires", "TZif3")
	writeZoneFile(t, rootPath, "Etc/GMT+5", "TZif2")
	// Metadata and duplicates are excluded.
	writeZoneFile(t, rootPath, "zone.tab", "# tz zone descriptions")
	writeZoneFile(t, rootPath, "tzdata.zi", "# version 2024a")
	writeZoneFile(t, rootPath, "posixrules", "TZif2")
	writeZoneFile(t, rootPath, "posix/UTC", "TZif2")
	writeZoneFile(t, rootPath, "right/UTC", "TZif2")
	writeZoneFile(t, rootPath, "Europe/Fake", "not a zone")
	writeZoneFile(t, rootPath, "Asia/Short", "TZ")

	catalog := NewCatalog(CatalogWithRootPaths(filepath.Join(rootPath, "missing"), rootPath))
	require.Equal(
		t,
		[]string{
			"America/Argentina/Buenos_Aires",
			"America/New_York",
			"Etc/GMT+5",
			"UTC",
		},
		catalog.Zones(),
	)
	require.Equal(t, rootPath, catalog.Source())
	require.True(t, catalog.Contains("America/New_York"))
	require.False(t, catalog.Contains("posix/UTC"))
	require.False(t, catalog.Contains("Europe/Fake"))
	require.Equal(t, []string{"America/Argentina/Buenos_Aires", "America/New_York"}, catalog.Filter("america"))
	require.Equal(t, []string{"America/New_York"}, catalog.Filter(" new_YORK "))
	require.Empty(t, catalog.Filter("tokyo"))
	require.Len(t, catalog.Filter(""), 4)
}

func TestCatalogZonesIsCopy(t *testing.T) {
	t.Parallel()
	catalog := NewCatalog(CatalogWithRootPaths())
	zones := catalog.Zones()
	zones[0] = "Mutated/Zone"
	require.NotEqual(t, "Mutated/Zone", catalog.Zones()[0])
}

func TestCatalogZip(t *testing.T) {
	t.Parallel()
	zipPath := filepath.Join(t.TempDir(), "zoneinfo.zip")
	file, err := os.Create(zipPath)
	require.NoError(t, err)
	zipWriter := zip.NewWriter(file)
	for _, name := range []string{"Asia/Tokyo", "Europe/Berlin", "UTC", "right/UTC", "zone1970.tab"} {
		writer, err := zipWriter.Create(name)
		require.NoError(t, err)
		_, err = writer.Write([]byte("TZif2"))
		require.NoError(t, err)
	}
	require.NoError(t, zipWriter.Close())
	require.NoError(t, file.Close())

	catalog := NewCatalog(CatalogWithRootPaths(zipPath))
	require.Equal(t, []string{"Asia/Tokyo", "Europe/Berlin", "UTC"}, catalog.Zones())
	require.Equal(t, zipPath, catalog.Source())
}

func TestCatalogFallback(t *testing.T) {
	t.Parallel()
	catalog := NewCatalog(CatalogWithRootPaths(filepath.Join(t.TempDir(), "missing")))
	require.Equal(t, SourceFallback, catalog.Source())
	require.Equal(
		t,
		[]string{
			"America/Chicago",
			"America/Denver",
			"America/Los_Angeles",
			"America/New_York",
			"Asia/Tokyo",
			"Europe/Berlin",
			"Europe/London",
			"UTC",
		},
		catalog.Zones(),
	)

	catalog = NewCatalog(
		CatalogWithRootPaths(),
		CatalogWithFallbackZones("UTC", "Pacific/Auckland", "UTC"),
	)
	require.Equal(t, []string{"Pacific/Auckland", "UTC"}, catalog.Zones())
}

func TestDefaultRootPathsWithEnv(t *testing.T) {
	t.Parallel()
	rootPaths := defaultRootPathsWithEnv(func(string) string { return "" })
	require.Equal(t, defaultRootPaths, rootPaths)
	rootPaths = defaultRootPathsWithEnv(func(key string) string {
		if key == "ZONEINFO" {
			return "/opt/go/lib/time/zoneinfo.zip"
		}
		return ""
	})
	require.Equal(t, "/opt/go/lib/time/zoneinfo.zip", rootPaths[0])
	require.Len(t, rootPaths, len(defaultRootPaths)+1)
}

func TestHostZoneFromEnv(t *testing.T) {
	t.Parallel()
	getenv := func(zone string) func(string) string {
		return func(key string) string {
			if key == "TZ" {
				return zone
			}
			return ""
		}
	}
	require.Equal(t, "Europe/Berlin", HostZone(getenv("Europe/Berlin")))
	require.Equal(t, "Asia/Tokyo", HostZone(getenv(":Asia/Tokyo")))
}

func TestZoneFromLocaltimeLink(t *testing.T) {
	t.Parallel()
	dirPath := t.TempDir()
	for _, test := range []struct {
		target   string
		want     string
		wantFind bool
	}{
		{target: "/usr/share/zoneinfo/Europe/Berlin", want: "Europe/Berlin", wantFind: true},
		{target: "../usr/share/zoneinfo/America/New_York", want: "America/New_York", wantFind: true},
		{target: "/usr/share/zoneinfo/posix/Asia/Tokyo", want: "Asia/Tokyo", wantFind: true},
		{target: "/var/db/timezone/zoneinfo/Australia/Sydney", want: "Australia/Sydney", wantFind: true},
		{target: "/usr/share/zoneinfo/Not/AZone"},
		{target: "/etc/somewhere/else"},
	} {
		linkPath := filepath.Join(dirPath, filepath.Base(test.target)+"-link")
		require.NoError(t, os.Symlink(test.target, linkPath))
		got, ok := zoneFromLocaltimeLink(linkPath)
		require.Equal(t, test.wantFind, ok, test.target)
		require.Equal(t, test.want, got, test.target)
	}
	_, ok := zoneFromLocaltimeLink(filepath.Join(dirPath, "missing"))
	require.False(t, ok)
}

func writeZoneFile(t *testing.T, rootPath string, name string, content string) {
	t.Helper()
	filePath := filepath.Join(rootPath, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
}
