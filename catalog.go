package kitchen3d

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml assets/*.obj
var embeddedAssets embed.FS

const (
	sphereSlices = 24
	sphereStacks = 16
)

var builtinShapes = map[string]func() *Mesh{
	"pyramid": PyramidMesh,
	"cube":    CubeMesh,
	"sphere":  func() *Mesh { return SphereMesh(sphereSlices, sphereStacks) },
}

// CatalogEntry describes one placeable object type.
type CatalogEntry struct {
	Key   string     `yaml:"key"`
	Name  string     `yaml:"name"`
	File  string     `yaml:"file,omitempty"`
	Shape string     `yaml:"shape,omitempty"`
	Color [3]float32 `yaml:"color"`
}

type catalogFile struct {
	Types []CatalogEntry `yaml:"types"`
}

// Catalog creates objects by type key. Meshes are parsed once and shared
// between every object of the same type.
type Catalog struct {
	fsys    fs.FS
	dir     string
	entries []CatalogEntry
	byKey   map[string]CatalogEntry

	mu     sync.Mutex
	meshes map[string]*Mesh
}

// DefaultCatalog returns the built-in kitchen catalog.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(embeddedAssets, "catalog.yaml", "assets")
}

// LoadCatalog reads a catalog description from fsys. Mesh files named by
// entries are resolved relative to assetDir.
func LoadCatalog(fsys fs.FS, name, assetDir string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("could not read catalog %s: %w", name, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing catalog %s: %w", name, err)
	}

	c := &Catalog{
		fsys:   fsys,
		dir:    assetDir,
		byKey:  make(map[string]CatalogEntry, len(file.Types)),
		meshes: make(map[string]*Mesh, len(file.Types)),
	}
	for i, e := range file.Types {
		switch {
		case e.Key == "":
			return nil, fmt.Errorf("catalog entry %d has no key", i)
		case e.File == "" && e.Shape == "":
			return nil, fmt.Errorf("catalog entry %q needs a file or a shape", e.Key)
		case e.Shape != "" && builtinShapes[e.Shape] == nil:
			return nil, fmt.Errorf("catalog entry %q: unknown shape %q", e.Key, e.Shape)
		}
		if _, dup := c.byKey[e.Key]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", e.Key)
		}
		if e.Name == "" {
			e.Name = e.Key
		}
		c.entries = append(c.entries, e)
		c.byKey[e.Key] = e
	}
	return c, nil
}

// Entries returns the catalog in file order.
func (c *Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Kinds returns the type keys in file order.
func (c *Catalog) Kinds() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entry looks up a type key.
func (c *Catalog) Entry(kind string) (CatalogEntry, bool) {
	e, ok := c.byKey[kind]
	return e, ok
}

// Preload parses every mesh concurrently. It stops at the first failure.
func (c *Catalog) Preload(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, e := range c.entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := c.mesh(e)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Debug("catalog preloaded", slog.Int("types", len(c.entries)))
	return nil
}

// New returns a fresh object of the given type, named by its display name,
// coloured by its catalog colour and placed at the origin.
func (c *Catalog) New(kind string) (*SceneObject, error) {
	e, ok := c.byKey[kind]
	if !ok {
		return nil, fmt.Errorf("unknown object type %q", kind)
	}
	mesh, err := c.mesh(e)
	if err != nil {
		return nil, err
	}
	obj := NewSceneObject(e.Name, mesh)
	obj.Kind = e.Key
	obj.Color = V3(e.Color[0], e.Color[1], e.Color[2])
	return obj, nil
}

func (c *Catalog) mesh(e CatalogEntry) (*Mesh, error) {
	c.mu.Lock()
	m, ok := c.meshes[e.Key]
	c.mu.Unlock()
	if ok {
		return m, nil
	}

	m, err := c.build(e)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.meshes[e.Key]; ok {
		return existing, nil
	}
	c.meshes[e.Key] = m
	return m, nil
}

func (c *Catalog) build(e CatalogEntry) (*Mesh, error) {
	if e.Shape != "" {
		return builtinShapes[e.Shape](), nil
	}

	name := path.Join(c.dir, e.File)
	f, err := c.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open mesh %s for %q: %w", name, e.Key, err)
	}
	defer f.Close()

	m, err := ParseOBJMesh(f)
	if err != nil {
		return nil, fmt.Errorf("error parsing mesh %s for %q: %w", name, e.Key, err)
	}
	return m, nil
}
