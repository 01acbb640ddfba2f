// Package catalog holds the read-only portfolio content shown in Finder windows.
//
// The catalog is an ordered list of folders, each with an ordered list of items. Items
// optionally carry preview content whose kind is resolved once, at construction time.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultYAML []byte

// Folder ids understood by launchers and the Finder sidebar.
const (
	FolderAbout          = "about"
	FolderEducation      = "education"
	FolderCertifications = "certifications"
	FolderExperience     = "experience"
	FolderProjects       = "projects"
	FolderEvents         = "events"
)

// KnownFolders lists the folder ids in sidebar order.
var KnownFolders = []string{
	FolderAbout,
	FolderEducation,
	FolderCertifications,
	FolderExperience,
	FolderProjects,
	FolderEvents,
}

type ItemKind string

const (
	KindFile   ItemKind = "file"
	KindFolder ItemKind = "folder"
)

type Item struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Kind         ItemKind `json:"kind" yaml:"kind"`
	Size         string   `json:"size" yaml:"size"`
	LastModified string   `json:"lastModified" yaml:"lastModified"`
	Icon         string   `json:"icon" yaml:"icon"`
	Preview      Preview  `json:"preview" yaml:"preview"`
}

type Folder struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Items []Item `json:"items" yaml:"items"`
}

// Catalog is immutable once built. All accessors return copies of slices.
type Catalog struct {
	folders  []Folder
	folderIx map[string]int
	itemIx   map[string]itemRef
}

type itemRef struct {
	folder int
	item   int
}

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

// IsNotFound reports whether err is a missing folder or item lookup.
func IsNotFound(err error) bool {
	var nf notFoundError
	return errors.As(err, &nf)
}

// Default returns the embedded catalog with relative dates resolved against now.
func Default(now time.Time) (*Catalog, error) {
	return Parse(defaultYAML, now)
}

// MustDefault is Default for callers that ship the embedded catalog and cannot recover.
func MustDefault() *Catalog {
	c, err := Default(time.Now())
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded data: %v", err))
	}
	return c
}

// LoadFile parses a catalog from disk. Errors carry the path.
func LoadFile(path string, now time.Time) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(b, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Load returns the catalog at path, or the embedded one when path is empty.
func Load(path string, now time.Time) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(now)
	}
	return LoadFile(path, now)
}

type rawCatalog struct {
	Folders []rawFolder `yaml:"folders"`
}

type rawFolder struct {
	ID    string    `yaml:"id"`
	Name  string    `yaml:"name"`
	Items []rawItem `yaml:"items"`
}

type rawItem struct {
	ID       string      `yaml:"id"`
	Name     string      `yaml:"name"`
	Type     string      `yaml:"type"`
	Size     string      `yaml:"size"`
	Modified string      `yaml:"modified"`
	Icon     string      `yaml:"icon"`
	Kind     string      `yaml:"kind"`
	Content  *rawContent `yaml:"content"`
}

// Parse builds a catalog from YAML. The literal date "today" resolves to now.
func Parse(b []byte, now time.Time) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	known := map[string]bool{}
	for _, id := range KnownFolders {
		known[id] = true
	}

	c := &Catalog{
		folderIx: map[string]int{},
		itemIx:   map[string]itemRef{},
	}
	for _, rf := range raw.Folders {
		id := strings.TrimSpace(rf.ID)
		if id == "" {
			return nil, errors.New("folder with empty id")
		}
		if !known[id] {
			return nil, fmt.Errorf("unknown folder %q", id)
		}
		if _, dup := c.folderIx[id]; dup {
			return nil, fmt.Errorf("duplicate folder %q", id)
		}
		f := Folder{ID: id, Name: strings.TrimSpace(rf.Name)}
		if f.Name == "" {
			f.Name = id
		}
		fi := len(c.folders)
		for _, ri := range rf.Items {
			it, err := buildItem(ri, now)
			if err != nil {
				return nil, fmt.Errorf("folder %q: %w", id, err)
			}
			if _, dup := c.itemIx[it.ID]; dup {
				return nil, fmt.Errorf("folder %q: duplicate item %q", id, it.ID)
			}
			c.itemIx[it.ID] = itemRef{folder: fi, item: len(f.Items)}
			f.Items = append(f.Items, it)
		}
		c.folderIx[id] = fi
		c.folders = append(c.folders, f)
	}
	return c, nil
}

func buildItem(ri rawItem, now time.Time) (Item, error) {
	id := strings.TrimSpace(ri.ID)
	if id == "" {
		return Item{}, errors.New("item with empty id")
	}
	kind := ItemKind(strings.ToLower(strings.TrimSpace(ri.Type)))
	switch kind {
	case "":
		kind = KindFile
	case KindFile, KindFolder:
	default:
		return Item{}, fmt.Errorf("item %q: invalid type %q (expected file|folder)", id, ri.Type)
	}
	preview, err := buildPreview(ri.Kind, ri.Content)
	if err != nil {
		return Item{}, fmt.Errorf("item %q: %w", id, err)
	}
	name := strings.TrimSpace(ri.Name)
	if name == "" {
		name = id
	}
	return Item{
		ID:           id,
		Name:         name,
		Kind:         kind,
		Size:         strings.TrimSpace(ri.Size),
		LastModified: resolveDate(ri.Modified, now),
		Icon:         strings.TrimSpace(ri.Icon),
		Preview:      preview,
	}, nil
}

func resolveDate(s string, now time.Time) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "today") {
		return now.Format("Jan 2, 2006")
	}
	return s
}

// Folders returns all folders in sidebar order.
func (c *Catalog) Folders() []Folder {
	if c == nil {
		return nil
	}
	out := make([]Folder, len(c.folders))
	copy(out, c.folders)
	return out
}

func (c *Catalog) Folder(id string) (Folder, bool) {
	if c == nil {
		return Folder{}, false
	}
	ix, ok := c.folderIx[id]
	if !ok {
		return Folder{}, false
	}
	return c.folders[ix], true
}

// FolderByID is Folder with a typed not-found error for CLI callers.
func (c *Catalog) FolderByID(id string) (Folder, error) {
	f, ok := c.Folder(id)
	if !ok {
		return Folder{}, notFoundError{kind: "folder", id: id}
	}
	return f, nil
}

func (c *Catalog) HasFolder(id string) bool {
	_, ok := c.Folder(id)
	return ok
}

// Items returns the items of a folder, or nil when the folder is unknown.
func (c *Catalog) Items(folderID string) []Item {
	f, ok := c.Folder(folderID)
	if !ok {
		return nil
	}
	out := make([]Item, len(f.Items))
	copy(out, f.Items)
	return out
}

// FirstItem returns the id of the first item in a folder.
func (c *Catalog) FirstItem(folderID string) (string, bool) {
	f, ok := c.Folder(folderID)
	if !ok || len(f.Items) == 0 {
		return "", false
	}
	return f.Items[0].ID, true
}

// Contains reports whether itemID belongs to folderID.
func (c *Catalog) Contains(folderID, itemID string) bool {
	if c == nil || itemID == "" {
		return false
	}
	ref, ok := c.itemIx[itemID]
	if !ok {
		return false
	}
	return c.folders[ref.folder].ID == folderID
}

// Item looks up an item by id and returns it together with its folder id.
func (c *Catalog) Item(id string) (Item, string, bool) {
	if c == nil {
		return Item{}, "", false
	}
	ref, ok := c.itemIx[id]
	if !ok {
		return Item{}, "", false
	}
	f := c.folders[ref.folder]
	return f.Items[ref.item], f.ID, true
}

// ItemByID is Item with a typed not-found error.
func (c *Catalog) ItemByID(id string) (Item, string, error) {
	it, folder, ok := c.Item(id)
	if !ok {
		return Item{}, "", notFoundError{kind: "item", id: id}
	}
	return it, folder, nil
}

// Len returns the total number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.itemIx)
}
