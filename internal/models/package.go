package models

// Attribute keys a lockfile package record is selected by
const (
	AttrName     = "name"
	AttrPlatform = "platform"
	AttrManager  = "manager"
	AttrCategory = "category"
	AttrURL      = "url"
)

// PackageRecord represents one package entry of a lockfile. Only keys that
// sit directly under the list item are kept; all values are strings.
type PackageRecord struct {
	// Line is the 1-based line number of the record's list item
	Line  int
	Attrs map[string]string
}

// NewPackageRecord creates an empty record starting at line
func NewPackageRecord(line int) *PackageRecord {
	return &PackageRecord{
		Line:  line,
		Attrs: make(map[string]string),
	}
}

// Get returns the value of key and whether it is present
func (p *PackageRecord) Get(key string) (string, bool) {
	v, ok := p.Attrs[key]
	return v, ok
}

// Set stores a value. Empty values are treated as absent.
func (p *PackageRecord) Set(key, value string) {
	if value == "" {
		return
	}
	p.Attrs[key] = value
}

func (p *PackageRecord) Name() string     { return p.Attrs[AttrName] }
func (p *PackageRecord) Platform() string { return p.Attrs[AttrPlatform] }
func (p *PackageRecord) Manager() string  { return p.Attrs[AttrManager] }
func (p *PackageRecord) Category() string { return p.Attrs[AttrCategory] }
func (p *PackageRecord) URL() string      { return p.Attrs[AttrURL] }

// PackageTable maps package names to records, remembering lockfile order
type PackageTable struct {
	// Platform is the active platform the table was built for
	Platform string

	byName map[string]*PackageRecord
	order  []string
}

// NewPackageTable creates an empty table
func NewPackageTable() *PackageTable {
	return &PackageTable{byName: make(map[string]*PackageRecord)}
}

// Insert adds a record under its name. Callers check Has first; inserting
// an existing name replaces the record but keeps its original position.
func (t *PackageTable) Insert(rec *PackageRecord) {
	name := rec.Name()
	if _, ok := t.byName[name]; !ok {
		t.order = append(t.order, name)
	}
	t.byName[name] = rec
}

// Has reports whether a package with name exists
func (t *PackageTable) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Get returns the record for name, or nil
func (t *PackageTable) Get(name string) *PackageRecord {
	return t.byName[name]
}

// Len returns the number of packages
func (t *PackageTable) Len() int {
	return len(t.order)
}

// Names returns package names in lockfile order
func (t *PackageTable) Names() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

// Records returns the records in lockfile order
func (t *PackageTable) Records() []*PackageRecord {
	records := make([]*PackageRecord, 0, len(t.order))
	for _, name := range t.order {
		records = append(records, t.byName[name])
	}
	return records
}
