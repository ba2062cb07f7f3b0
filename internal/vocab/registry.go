package vocab

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/verbiz/internal/logging"
)

// DefaultDataset is opened when nothing else was remembered.
const DefaultDataset = "verbs"

//go:embed data/*.json
var embedded embed.FS

// Registry holds every known dataset by name.
type Registry struct {
	datasets map[string]*Dataset
	names    []string
}

// NewRegistry loads the built-in datasets and then every *.json file in dir.
// A user dataset replaces a built-in one with the same name. An empty dir
// loads only the built-in datasets.
func NewRegistry(dir string, log logrus.FieldLogger) (*Registry, error) {
	log = logging.OrDiscard(log)
	r := &Registry{datasets: make(map[string]*Dataset)}

	builtin, err := fs.Glob(embedded, "data/*.json")
	if err != nil {
		return nil, err
	}
	for _, p := range builtin {
		data, err := embedded.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read embedded dataset %s: %w", p, err)
		}
		ds, err := Parse(p, data)
		if err != nil {
			return nil, err
		}
		ds.Source = "embedded"
		r.add(ds)
	}

	if dir == "" {
		return r, nil
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list datasets in %s: %w", dir, err)
	}
	for _, p := range files {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read dataset: %w", err)
		}
		ds, err := Parse(p, data)
		if err != nil {
			return nil, err
		}
		if _, ok := r.datasets[ds.Name]; ok {
			log.WithFields(logrus.Fields{"dataset": ds.Name, "file": p}).Info("user dataset replaces built-in")
		}
		r.add(ds)
	}
	return r, nil
}

// NewStaticRegistry builds a registry from in-memory datasets.
func NewStaticRegistry(datasets ...*Dataset) *Registry {
	r := &Registry{datasets: make(map[string]*Dataset)}
	for _, ds := range datasets {
		r.add(ds)
	}
	return r
}

func (r *Registry) add(ds *Dataset) {
	if _, ok := r.datasets[ds.Name]; !ok {
		r.names = append(r.names, ds.Name)
		sort.Strings(r.names)
	}
	r.datasets[ds.Name] = ds
}

// ErrUnknownDataset is returned for a dataset name with no registered data.
var ErrUnknownDataset = errors.New("unknown dataset")

// Names lists dataset names in sorted order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Get returns the named dataset.
func (r *Registry) Get(name string) (*Dataset, error) {
	ds, ok := r.datasets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	return ds, nil
}

// Resolve returns name when it is registered, otherwise DefaultDataset, or
// the first dataset when even that is missing.
func (r *Registry) Resolve(name string) string {
	if _, ok := r.datasets[name]; ok {
		return name
	}
	if _, ok := r.datasets[DefaultDataset]; ok {
		return DefaultDataset
	}
	if len(r.names) > 0 {
		return r.names[0]
	}
	return ""
}
