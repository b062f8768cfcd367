package model

// Classification is the result of classifying one entity against one rule
// table. When no rule matches, Matched is false and Label is empty: the
// explicit "no category" outcome, never a default category.
type Classification struct {
	EntityID    string
	Label       string
	SubgroupKey string
	Color       string
	Priority    int
	Matched     bool
}

// Subgroup is a secondary partition within a category, keyed by assignee
// code or by the literal communication-channel text.
type Subgroup struct {
	Key     string
	Members []string
	Count   int
}

// CategoryGroup is one sidebar entry: a label, its member entities, and any
// subgroups. Top-level groups render in declared rule order (Priority);
// subgroups are sorted by descending count.
type CategoryGroup struct {
	Label     string
	Color     string
	Members   []string
	Subgroups []Subgroup
	Count     int
	Priority  int
}
