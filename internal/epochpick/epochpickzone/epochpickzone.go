// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package epochpickzone provides the catalog of zone identifiers the host can resolve.
//
// Zones are discovered by reading the host zoneinfo tree, the same sources
// the time package reads from. If no tree is readable, a fixed fallback set
// of common zones is used.
package epochpickzone

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

const (
	// SourceFallback is the Source of a catalog built from the fallback zones.
	SourceFallback = "fallback"
	// zoneinfoEnvVar is the environment variable the time package also honors.
	zoneinfoEnvVar = "ZONEINFO"
)

var (
	// DefaultFallbackZones are used when the host zone catalog is unavailable.
	DefaultFallbackZones = []string{
		"UTC",
		"America/New_York",
		"America/Chicago",
		"America/Denver",
		"America/Los_Angeles",
		"Europe/London",
		"Europe/Berlin",
		"Asia/Tokyo",
	}
	// defaultRootPaths mirrors the platform zoneinfo locations of the time package.
	defaultRootPaths = []string{
		"/usr/share/zoneinfo/",
		"/usr/share/lib/zoneinfo/",
		"/usr/lib/locale/TZ/",
	}
	// tzifMagic is the first four bytes of every compiled zone file.
	tzifMagic = []byte("TZif")
)

// Catalog is the set of zone identifiers recognized by the host.
type Catalog interface {
	// Zones returns the sorted zone identifiers.
	Zones() []string
	// Contains reports whether the zone is in the catalog.
	Contains(zone string) bool
	// Filter returns the sorted zone identifiers containing substring, case-insensitively.
	//
	// An empty substring returns all zones.
	Filter(substring string) []string
	// Source returns the path the catalog was read from, or SourceFallback.
	Source() string
}

// CatalogOption is a functional option for configuring the Catalog.
type CatalogOption func(*catalog)

// CatalogWithRootPaths sets the zoneinfo directories or zip files to read, in order.
//
// The first root that yields at least one zone is used.
func CatalogWithRootPaths(rootPaths ...string) CatalogOption {
	return func(c *catalog) {
		c.rootPaths = rootPaths
	}
}

// CatalogWithFallbackZones sets the zones used when no root is readable.
//
// An empty list keeps DefaultFallbackZones.
func CatalogWithFallbackZones(fallbackZones ...string) CatalogOption {
	return func(c *catalog) {
		if len(fallbackZones) > 0 {
			c.fallbackZones = fallbackZones
		}
	}
}

// CatalogWithLogger sets the logger.
func CatalogWithLogger(logger *slog.Logger) CatalogOption {
	return func(c *catalog) {
		c.logger = logger
	}
}

// NewCatalog creates a new Catalog. Zones are read lazily on first use.
//
// By default the roots are $ZONEINFO followed by the platform zoneinfo directories.
func NewCatalog(options ...CatalogOption) Catalog {
	c := &catalog{
		rootPaths:     defaultRootPathsWithEnv(os.Getenv),
		fallbackZones: DefaultFallbackZones,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// *** PRIVATE ***

type catalog struct {
	rootPaths     []string
	fallbackZones []string
	logger        *slog.Logger

	once     sync.Once
	source   string
	zones    []string
	zonesSet map[string]struct{}
}

func (c *catalog) Zones() []string {
	c.load()
	return slices.Clone(c.zones)
}

func (c *catalog) Contains(zone string) bool {
	c.load()
	_, ok := c.zonesSet[zone]
	return ok
}

func (c *catalog) Filter(substring string) []string {
	c.load()
	substring = strings.ToLower(strings.TrimSpace(substring))
	if substring == "" {
		return slices.Clone(c.zones)
	}
	var zones []string
	for _, zone := range c.zones {
		if strings.Contains(strings.ToLower(zone), substring) {
			zones = append(zones, zone)
		}
	}
	return zones
}

func (c *catalog) Source() string {
	c.load()
	return c.source
}

func (c *catalog) load() {
	c.once.Do(func() {
		source, zones := c.readRoots()
		if len(zones) == 0 {
			c.logger.Debug("no zoneinfo found, using fallback zones", "roots", c.rootPaths)
			source = SourceFallback
			zones = slices.Clone(c.fallbackZones)
		}
		slices.Sort(zones)
		zones = slices.Compact(zones)
		c.source = source
		c.zones = zones
		c.zonesSet = make(map[string]struct{}, len(zones))
		for _, zone := range zones {
			c.zonesSet[zone] = struct{}{}
		}
	})
}

func (c *catalog) readRoots() (string, []string) {
	for _, rootPath := range c.rootPaths {
		if rootPath == "" {
			continue
		}
		var zones []string
		var err error
		if strings.HasSuffix(rootPath, ".zip") {
			zones, err = readZip(rootPath)
		} else {
			zones, err = readDir(rootPath)
		}
		if err != nil {
			c.logger.Debug("could not read zoneinfo", "path", rootPath, "error", err)
			continue
		}
		if len(zones) > 0 {
			c.logger.Debug("zoneinfo loaded", "path", rootPath, "count", len(zones))
			return rootPath, zones
		}
	}
	return "", nil
}

// readDir walks a zoneinfo directory and returns the names of compiled zone files.
func readDir(rootPath string) ([]string, error) {
	var zones []string
	err := fs.WalkDir(os.DirFS(rootPath), ".", func(path string, dirEntry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == "." {
			return nil
		}
		if dirEntry.IsDir() {
			if skipDir(dirEntry.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		// Some distributions ship aliases as symlinks.
		if !dirEntry.Type().IsRegular() && dirEntry.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if !isZoneName(path) {
			return nil
		}
		isTZif, err := hasTZifMagic(filepath.Join(rootPath, filepath.FromSlash(path)))
		if err != nil {
			// Unreadable entries such as dangling links are not zones.
			return nil
		}
		if isTZif {
			zones = append(zones, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return zones, nil
}

// readZip reads a zoneinfo.zip in the layout produced for the time package.
func readZip(zipPath string) (_ []string, retErr error) {
	zipReader, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		retErr = errors.Join(retErr, zipReader.Close())
	}()
	var zones []string
	for _, file := range zipReader.File {
		if file.FileInfo().IsDir() || !isZoneName(file.Name) {
			continue
		}
		if first, _, _ := strings.Cut(file.Name, "/"); skipDir(first) {
			continue
		}
		zones = append(zones, file.Name)
	}
	return zones, nil
}

func hasTZifMagic(filePath string) (_ bool, retErr error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer func() {
		retErr = errors.Join(retErr, file.Close())
	}()
	header := make([]byte, len(tzifMagic))
	if _, err := io.ReadFull(file, header); err != nil {
		// Files shorter than the magic are not zone files.
		return false, nil
	}
	return bytes.Equal(header, tzifMagic), nil
}

// skipDir reports whether a top-level zoneinfo directory holds duplicate or non-zone data.
func skipDir(name string) bool {
	switch name {
	case "posix", "right":
		return true
	default:
		return false
	}
}

// isZoneName reports whether a slash-separated path looks like a zone identifier.
//
// Zone identifiers start with an uppercase letter and have no extension, which
// excludes metadata files such as zone.tab, tzdata.zi, leapseconds, and posixrules.
func isZoneName(path string) bool {
	base := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		base = path[i+1:]
	}
	if base == "" || base[0] < 'A' || base[0] > 'Z' {
		return false
	}
	if strings.Contains(base, ".") {
		return false
	}
	switch path {
	case "Factory", "SECURITY":
		return false
	default:
		return true
	}
}

func defaultRootPathsWithEnv(getenv func(string) string) []string {
	rootPaths := make([]string, 0, len(defaultRootPaths)+1)
	if zoneinfo := getenv(zoneinfoEnvVar); zoneinfo != "" {
		rootPaths = append(rootPaths, zoneinfo)
	}
	return append(rootPaths, defaultRootPaths...)
}
