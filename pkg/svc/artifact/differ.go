package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// moduleFileExt is the extension of compiled module files inside an artifact
// directory. Other files (plan descriptors, checksums) are ignored by the
// differ.
const moduleFileExt = ".mod"

// ChangeSet classifies the module files of a component between two artifact
// directories. All three lists hold file names relative to the artifact
// directory, in ascending name order.
type ChangeSet struct {
	Added   []string
	Removed []string
	Changed []string
}

// Empty reports whether the change set contains no file changes at all.
func (c ChangeSet) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Changed) == 0
}

// ChangedNames returns the module names (file names without extension) of
// every file in the change set, used for dependency filtering.
func (c ChangeSet) ChangedNames() map[string]bool {
	names := make(map[string]bool, len(c.Added)+len(c.Removed)+len(c.Changed))
	for _, list := range [][]string{c.Added, c.Removed, c.Changed} {
		for _, file := range list {
			names[ModuleName(file)] = true
		}
	}

	return names
}

// ModuleName derives the module name from an artifact file name.
func ModuleName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), moduleFileExt)
}

// CompareDirs hashes the module files of two artifact directories and
// classifies them into added, removed, and changed lists. The comparison is
// pure and deterministic for identical directory contents. Either directory
// missing fails with ErrArtifactDirUnreadable.
func CompareDirs(oldDir, newDir string) (ChangeSet, error) {
	oldHashes, err := hashDir(oldDir)
	if err != nil {
		return ChangeSet{}, err
	}

	newHashes, err := hashDir(newDir)
	if err != nil {
		return ChangeSet{}, err
	}

	changeSet := ChangeSet{}

	for file, newHash := range newHashes {
		oldHash, ok := oldHashes[file]

		switch {
		case !ok:
			changeSet.Added = append(changeSet.Added, file)
		case oldHash != newHash:
			changeSet.Changed = append(changeSet.Changed, file)
		}
	}

	for file := range oldHashes {
		if _, ok := newHashes[file]; !ok {
			changeSet.Removed = append(changeSet.Removed, file)
		}
	}

	sort.Strings(changeSet.Added)
	sort.Strings(changeSet.Removed)
	sort.Strings(changeSet.Changed)

	return changeSet, nil
}

// hashDir maps every module file in dir to the hex sha256 of its content.
func hashDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %w", ErrArtifactDirUnreadable, dir, err)
	}

	hashes := make(map[string]string, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != moduleFileExt {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %w", ErrArtifactDirUnreadable, filepath.Join(dir, entry.Name()), err)
		}

		sum := sha256.Sum256(data)
		hashes[entry.Name()] = hex.EncodeToString(sum[:])
	}

	return hashes, nil
}
