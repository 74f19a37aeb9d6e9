package model

// CategoryFilter selects which categories a filter matches. The zero
// value matches everything. Using a tagged value rather than a magic
// string keeps "uncategorized" distinct from any real category ID.
type CategoryFilter struct {
	id   string
	mode categoryFilterMode
}

type categoryFilterMode int

const (
	categoryAll categoryFilterMode = iota
	categoryUncategorized
	categorySpecific
)

// AnyCategory matches all transactions regardless of category.
func AnyCategory() CategoryFilter {
	return CategoryFilter{}
}

// UncategorizedOnly matches only transactions with no category.
func UncategorizedOnly() CategoryFilter {
	return CategoryFilter{mode: categoryUncategorized}
}

// CategoryIs matches only transactions assigned the given category.
func CategoryIs(id string) CategoryFilter {
	return CategoryFilter{mode: categorySpecific, id: id}
}

// Matches evaluates the filter against a transaction's category
// reference (nil means uncategorized).
func (f CategoryFilter) Matches(categoryID *string) bool {
	switch f.mode {
	case categoryUncategorized:
		return categoryID == nil
	case categorySpecific:
		return categoryID != nil && *categoryID == f.id
	default:
		return true
	}
}

// IsSet reports whether the filter constrains anything.
func (f CategoryFilter) IsSet() bool {
	return f.mode != categoryAll
}

// FilterSpec is the set of constraints a list view applies to a
// transaction collection. Every field is optional; an unset field
// imposes no constraint. MinAmount and MaxAmount are kept as raw
// strings from user input: an unparseable bound is treated as absent
// rather than rejecting every transaction.
type FilterSpec struct {
	DateFrom    *Date
	DateTo      *Date
	Type        *TransactionType
	AccountID   string
	MinAmount   string
	MaxAmount   string
	SearchQuery string
	Category    CategoryFilter
}

// IsEmpty reports whether the spec constrains anything at all.
func (s FilterSpec) IsEmpty() bool {
	return s.DateFrom == nil &&
		s.DateTo == nil &&
		s.Type == nil &&
		s.AccountID == "" &&
		s.MinAmount == "" &&
		s.MaxAmount == "" &&
		s.SearchQuery == "" &&
		!s.Category.IsSet()
}
