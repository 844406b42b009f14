package kitchen3d

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// CreateRequest asks the scene for a new catalog object.
type CreateRequest struct {
	Kind     string
	Position Vector3
	// Color overrides the catalog colour when set.
	Color *Vector3
	// Appearance and Duration (seconds) select the entry animation.
	Appearance AppearanceMode
	Duration   float32
}

// Scene owns the ordered object list and the current selection. One mutex
// guards structural changes, picking and render iteration. Transform fields
// of individual objects are written by input handling without the lock.
type Scene struct {
	mu       sync.Mutex
	objects  []*SceneObject
	selected *SceneObject
	nextID   uint64
	released []MeshHandle

	catalog *Catalog
	clock   Clock
}

// NewScene returns an empty scene. catalog may be nil when only imported
// objects are used; a nil clock means SystemClock.
func NewScene(catalog *Catalog, clock Clock) *Scene {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scene{catalog: catalog, clock: clock}
}

func (s *Scene) Clock() Clock {
	return s.clock
}

func (s *Scene) Catalog() *Catalog {
	return s.catalog
}

// Add appends obj, assigns it an ID and selects it.
func (s *Scene) Add(obj *SceneObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(obj)
}

func (s *Scene) add(obj *SceneObject) {
	s.nextID++
	obj.ID = s.nextID
	s.objects = append(s.objects, obj)
	if obj.Pickable {
		s.selected = obj
	}
	logger.Info("object added", slog.Any("object", obj))
}

// AddScenery appends a non-pickable object, such as the floor grid, without
// touching the selection.
func (s *Scene) AddScenery(obj *SceneObject) {
	obj.Pickable = false
	s.Add(obj)
}

// Remove takes obj out of the scene. The selection moves to the object
// that preceded it, or the first object, or nil when the scene is empty.
// The new selection is returned.
func (s *Scene) Remove(obj *SceneObject) *SceneObject {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(obj)
	if idx < 0 {
		return s.selected
	}
	s.objects = append(s.objects[:idx], s.objects[idx+1:]...)
	if obj.uploaded {
		s.released = append(s.released, obj.handle)
		obj.uploaded = false
	}

	s.selected = nil
	for i := idx - 1; i >= 0; i-- {
		if s.objects[i].Pickable {
			s.selected = s.objects[i]
			break
		}
	}
	if s.selected == nil {
		for _, o := range s.objects {
			if o.Pickable {
				s.selected = o
				break
			}
		}
	}

	logger.Info("object removed", slog.Any("object", obj))
	return s.selected
}

// RemoveSelected removes the selected object, if any.
func (s *Scene) RemoveSelected() *SceneObject {
	sel := s.Selected()
	if sel == nil {
		return nil
	}
	return s.Remove(sel)
}

func (s *Scene) indexOf(obj *SceneObject) int {
	for i, o := range s.objects {
		if o == obj {
			return i
		}
	}
	return -1
}

// Objects returns a snapshot of the object list.
func (s *Scene) Objects() []*SceneObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*SceneObject, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *Scene) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// Selected returns the selected object, or nil.
func (s *Scene) Selected() *SceneObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Select makes obj the selection. Objects not in the scene, and nil, clear it.
func (s *Scene) Select(obj *SceneObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if obj != nil && s.indexOf(obj) < 0 {
		obj = nil
	}
	s.selected = obj
}

// Pick returns the nearest object hit by r, or nil.
func (s *Scene) Pick(r Ray) *SceneObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, _ := PickNearest(r, s.objects)
	return obj
}

// Each calls fn for every object in order while holding the scene lock.
// fn must not call back into the scene.
func (s *Scene) Each(fn func(obj *SceneObject)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, obj := range s.objects {
		fn(obj)
	}
}

// Tick advances every animation to now and returns how many are still
// running.
func (s *Scene) Tick(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick(now)
}

func (s *Scene) tick(now time.Time) int {
	running := 0
	for _, obj := range s.objects {
		if obj.UpdateAnimation(now) {
			running++
		}
	}
	return running
}

// Create builds a catalog object, names it "<display name> <n>" where n
// counts the pickable objects including the new one, places it, and starts
// its entry animation.
func (s *Scene) Create(req CreateRequest) (*SceneObject, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("scene has no catalog")
	}
	obj, err := s.catalog.New(req.Kind)
	if err != nil {
		return nil, err
	}
	if req.Color != nil {
		obj.Color = *req.Color
	}
	obj.Position = req.Position

	s.mu.Lock()
	defer s.mu.Unlock()
	obj.Name = fmt.Sprintf("%s %d", obj.Name, s.pickableCount()+1)
	obj.StartAnimation(req.Appearance, req.Duration, s.clock.Now())
	s.add(obj)
	return obj, nil
}

func (s *Scene) pickableCount() int {
	n := 0
	for _, o := range s.objects {
		if o.Pickable {
			n++
		}
	}
	return n
}

// Import loads a mesh file and adds it like Create does. On failure nothing
// is added.
func (s *Scene) Import(path string, appearance AppearanceMode, duration float32) (*SceneObject, error) {
	obj, err := ImportMeshFile(path)
	if err != nil {
		logger.Warn("import failed", slog.String("path", path), slog.Any("error", err))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	obj.StartAnimation(appearance, duration, s.clock.Now())
	s.add(obj)
	return obj, nil
}

// Render runs one frame: animations are advanced, objects that have never
// been uploaded are handed to r.Upload, handles of removed objects are
// released, and every uploaded object is drawn.
func (s *Scene) Render(r Renderer, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tick(now)
	s.upload(r)

	for _, obj := range s.objects {
		if !obj.uploaded {
			continue
		}
		r.Draw(obj.handle, obj.ModelMatrix(), obj.Color, obj == s.selected)
	}
}

// Handle returns obj's mesh handle and whether it is currently uploaded.
func (s *Scene) Handle(obj *SceneObject) (MeshHandle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return obj.handle, obj.uploaded
}

func (s *Scene) upload(r Renderer) {
	if rel, ok := r.(Releaser); ok {
		for _, h := range s.released {
			rel.Release(h)
		}
	}
	s.released = s.released[:0]

	for _, obj := range s.objects {
		if obj.uploaded || obj.uploadFailed {
			continue
		}
		h, err := r.Upload(obj)
		if err != nil {
			obj.uploadFailed = true
			logger.Error("mesh upload failed", slog.Any("object", obj), slog.Any("error", err))
			continue
		}
		obj.handle = h
		obj.uploaded = true
	}
}
