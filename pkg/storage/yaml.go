package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/blackcoderx/apistudio/pkg/model"
)

// FileStore keeps one YAML file per collection and per environment under a
// base directory, named after the item ID.
type FileStore struct {
	baseDir string
	mu      sync.Mutex
	log     logrus.FieldLogger
	// known tracks the IDs read or written per directory. Only known files
	// are removed on save, so an unreadable file is never deleted.
	known map[string]map[string]bool
}

// NewFileStore creates a store rooted at baseDir.
func NewFileStore(baseDir string, log logrus.FieldLogger) *FileStore {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FileStore{baseDir: baseDir, log: log, known: make(map[string]map[string]bool)}
}

// GetCollectionsDir returns the collections directory path
func GetCollectionsDir(baseDir string) string {
	return filepath.Join(baseDir, "collections")
}

// GetEnvironmentsDir returns the environments directory path
func GetEnvironmentsDir(baseDir string) string {
	return filepath.Join(baseDir, "environments")
}

// LoadCollections reads every collection file, oldest first.
func (s *FileStore) LoadCollections() ([]model.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var collections []model.Collection
	err := s.readAll(GetCollectionsDir(s.baseDir), func(data []byte) (string, error) {
		var c model.Collection
		if err := yaml.Unmarshal(data, &c); err != nil {
			return "", err
		}
		if c.Requests == nil {
			c.Requests = []model.Request{}
		}
		collections = append(collections, c)
		return c.ID, nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(collections, func(i, j int) bool {
		if !collections[i].CreatedAt.Equal(collections[j].CreatedAt) {
			return collections[i].CreatedAt.Before(collections[j].CreatedAt)
		}
		return collections[i].Name < collections[j].Name
	})
	return collections, nil
}

// SaveCollections writes every collection and removes files of deleted ones.
func (s *FileStore) SaveCollections(collections []model.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make(map[string]interface{}, len(collections))
	for _, c := range collections {
		items[c.ID] = c
	}
	return s.writeAll(GetCollectionsDir(s.baseDir), items)
}

// LoadEnvironments reads every environment file, sorted by name.
func (s *FileStore) LoadEnvironments() ([]model.Environment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var environments []model.Environment
	err := s.readAll(GetEnvironmentsDir(s.baseDir), func(data []byte) (string, error) {
		var env model.Environment
		if err := yaml.Unmarshal(data, &env); err != nil {
			return "", err
		}
		if env.Variables == nil {
			env.Variables = []model.EnvironmentVariable{}
		}
		environments = append(environments, env)
		return env.ID, nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(environments, func(i, j int) bool {
		return strings.ToLower(environments[i].Name) < strings.ToLower(environments[j].Name)
	})
	return environments, nil
}

// SaveEnvironments writes every environment and removes files of deleted ones.
func (s *FileStore) SaveEnvironments(environments []model.Environment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make(map[string]interface{}, len(environments))
	for _, env := range environments {
		items[env.ID] = env
	}
	return s.writeAll(GetEnvironmentsDir(s.baseDir), items)
}

// readAll calls decode for every YAML file in dir. Files that fail to decode
// are logged and skipped so one bad file does not hide the rest.
func (s *FileStore) readAll(dir string, decode func(data []byte) (string, error)) error {
	known := make(map[string]bool)
	s.known[dir] = known

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		id, err := decode(data)
		if err != nil {
			s.log.WithError(err).WithField("file", path).Warn("skipping unreadable file")
			continue
		}
		if id+".yaml" == entry.Name() {
			known[id] = true
		}
	}
	return nil
}

// writeAll writes items as <id>.yaml and removes the files of known items
// that are gone.
func (s *FileStore) writeAll(dir string, items map[string]interface{}) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	for id, item := range items {
		if id == "" || strings.ContainsAny(id, `/\`) {
			return fmt.Errorf("invalid id %q", id)
		}
		data, err := yaml.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", id, err)
		}
		if err := writeFileAtomic(filepath.Join(dir, id+".yaml"), data); err != nil {
			return err
		}
	}

	for id := range s.known[dir] {
		if _, keep := items[id]; keep {
			continue
		}
		path := filepath.Join(dir, id+".yaml")
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		s.log.WithField("file", path).Debug("removed deleted item")
	}

	known := make(map[string]bool, len(items))
	for id := range items {
		known[id] = true
	}
	s.known[dir] = known
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
