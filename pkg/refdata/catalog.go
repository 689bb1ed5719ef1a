package refdata

import "sort"

// DefaultVersion is the tagged reference-data release shipped with the tool.
const DefaultVersion = "0.7.131c"

// A Catalog is an immutable lookup table of supported reference-data
// versions. Catalogs are built once at startup and injected; tests supply
// their own instances.
type Catalog struct {
	versions  map[string]ReferenceVersion
	defaultID string
}

// NewCatalog builds a catalog from the given versions. Exactly one version id
// must be named as the default.
func NewCatalog(defaultID string, versions ...ReferenceVersion) *Catalog {
	byID := make(map[string]ReferenceVersion, len(versions))
	for _, v := range versions {
		byID[v.ID] = v
	}
	if _, ok := byID[defaultID]; !ok {
		panic("default version " + defaultID + " is not in the catalog")
	}
	return &Catalog{versions: byID, defaultID: defaultID}
}

// DefaultCatalog returns the catalog of releases this build knows about.
func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultVersion, ReferenceVersion{
		ID:           DefaultVersion,
		SourceBucket: "daylily-omics-analysis-references-public",
		Groups:       []GroupName{GroupHG38, GroupB37, GroupGIAB},
		Sources: map[GroupName][]CopySpec{
			GroupHG38: {
				{"data/genomic_data/organism_references/H_sapiens/hg38/", "hg38/references/"},
				{"data/genomic_data/organism_annotations/H_sapiens/hg38/", "hg38/annotations/"},
			},
			GroupB37: {
				{"data/genomic_data/organism_references/H_sapiens/b37/", "b37/references/"},
				{"data/genomic_data/organism_annotations/H_sapiens/b37/", "b37/annotations/"},
			},
			GroupGIAB: {
				{"data/genomic_data/organism_reads/", "giab/reads/"},
			},
		},
		MarkerContent: DefaultVersion,
	})
}

// Lookup returns the version registered under id.
func (c *Catalog) Lookup(id string) (ReferenceVersion, error) {
	v, ok := c.versions[id]
	if !ok {
		return ReferenceVersion{}, &UnknownVersionError{ID: id, Known: c.VersionIDs()}
	}
	return v, nil
}

// Default returns the version shipped as the default release.
func (c *Catalog) Default() ReferenceVersion {
	return c.versions[c.defaultID]
}

// VersionIDs returns the registered version ids in sorted order.
func (c *Catalog) VersionIDs() []string {
	ids := make([]string, 0, len(c.versions))
	for id := range c.versions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
