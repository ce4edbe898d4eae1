package fingerprint

import (
	"cmp"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"slices"
)

// File is the fingerprint of one image on disk.
type File struct {
	Path   string
	Size   int64
	MD5    string
	Hashes Hashes
	// Decoded is false when the content could not be decoded; such files
	// only take part in exact matching.
	Decoded bool
}

// Analyze reads path and computes its content digest and perceptual hashes.
func Analyze(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading %s: %w", path, err)
	}
	sum := md5.Sum(data)
	f := File{Path: path, Size: int64(len(data)), MD5: hex.EncodeToString(sum[:])}
	if h, err := ComputeHashes(data); err == nil {
		f.Hashes = h
		f.Decoded = true
	}
	return f, nil
}

// MatchKind tells how the files in a group matched.
type MatchKind string

const (
	MatchExact   MatchKind = "exact"
	MatchSimilar MatchKind = "similar"
)

// Group is a set of duplicate files. Keep is the first path in sort order;
// Duplicates are the others.
type Group struct {
	Kind       MatchKind
	Keep       string
	Duplicates []string
	// Distance is the largest hash distance from Keep, zero for exact groups.
	Distance int
}

// FindDuplicates groups byte-identical files first, then groups the
// remaining files whose hashes are within threshold bits of each other.
// A negative threshold only reports exact copies.
func FindDuplicates(files []File, threshold int) []Group {
	sorted := slices.Clone(files)
	slices.SortFunc(sorted, func(a, b File) int { return cmp.Compare(a.Path, b.Path) })

	seen := make(map[string]bool)
	copies := make(map[string][]string)
	var unique []File
	for _, f := range sorted {
		if seen[f.MD5] {
			copies[f.MD5] = append(copies[f.MD5], f.Path)
			continue
		}
		seen[f.MD5] = true
		unique = append(unique, f)
	}

	var groups []Group
	for _, f := range unique {
		if dups := copies[f.MD5]; len(dups) > 0 {
			groups = append(groups, Group{Kind: MatchExact, Keep: f.Path, Duplicates: dups})
		}
	}
	if threshold < 0 {
		return groups
	}
	return append(groups, similarGroups(unique, threshold)...)
}

// similarGroups walks files in order; each file not yet grouped becomes a
// keeper and collects the later files within threshold of it. Membership is
// measured against the keeper only, so chains of near matches do not merge.
func similarGroups(files []File, threshold int) []Group {
	grouped := make([]bool, len(files))
	var groups []Group
	for i, keep := range files {
		if grouped[i] || !keep.Decoded {
			continue
		}
		g := Group{Kind: MatchSimilar, Keep: keep.Path}
		for j := i + 1; j < len(files); j++ {
			f := files[j]
			if grouped[j] || !f.Decoded || !Similar(keep.Hashes, f.Hashes, threshold) {
				continue
			}
			grouped[j] = true
			g.Duplicates = append(g.Duplicates, f.Path)
			g.Distance = max(g.Distance, Distance(keep.Hashes, f.Hashes))
		}
		if len(g.Duplicates) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}
