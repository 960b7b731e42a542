package seeds

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/khankhulgun/mapstyle/store"
	"github.com/khankhulgun/mapstyle/style"
)

var seedExtensions = map[string]bool{".json": true, ".yaml": true, ".yml": true}

// Seed loads every style document in dir through l and saves the ones whose
// name (the file name without extension) is not stored yet. Documents that
// fail Check are skipped and logged. It returns the number of saved styles.
func Seed(st *store.Store, l style.Loader, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("seed: read %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !seedExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	saved := 0
	for _, file := range files {
		name := strings.TrimSuffix(file, filepath.Ext(file))

		exists, err := st.Exists(name)
		if err != nil {
			return saved, err
		}
		if exists {
			continue
		}

		doc, err := style.Load(l, filepath.Join(dir, file), nil)
		if err != nil {
			log.Printf("Failed to load seed style %s: %v", file, err)
			continue
		}
		if err := doc.Check(); err != nil {
			log.Printf("Skipping seed style %s: %v", file, err)
			continue
		}

		if _, err := st.Save(name, nil, doc); err != nil {
			return saved, err
		}
		saved++
	}

	log.Printf("Seeded %d style(s) from %s", saved, dir)
	return saved, nil
}
