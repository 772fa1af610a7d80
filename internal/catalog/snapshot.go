package catalog

import "strings"

// Snapshot is an immutable, queryable view of the product set. It is
// built once from the repository at startup; all filtering happens here,
// not in the storage layer.
type Snapshot struct {
	products []Product
	byID     map[int64]Product
}

func NewSnapshot(products []Product) *Snapshot {
	byID := make(map[int64]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	cp := make([]Product, len(products))
	copy(cp, products)
	return &Snapshot{products: cp, byID: byID}
}

// ListAll returns every product in catalog order.
func (s *Snapshot) ListAll() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// ByID looks a product up by its identity.
func (s *Snapshot) ByID(id int64) (Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Filter projects the snapshot by category and/or search text. An empty
// category or CategoryAll means no category filter; search matches
// case-insensitively against name or description substrings.
func (s *Snapshot) Filter(category, search string) []Product {
	out := make([]Product, 0)
	for _, p := range s.products {
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		if !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p Product, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// Featured returns products the storefront highlights: recommended or best sellers.
func (s *Snapshot) Featured() []Product {
	return s.pick(func(p Product) bool { return p.IsRecommended || p.IsBestSeller })
}

// New returns products flagged as new arrivals.
func (s *Snapshot) New() []Product {
	return s.pick(func(p Product) bool { return p.IsNew })
}

// BestSellers returns products flagged as best sellers.
func (s *Snapshot) BestSellers() []Product {
	return s.pick(func(p Product) bool { return p.IsBestSeller })
}

// Promotions returns products with a discount above 20 percent.
func (s *Snapshot) Promotions() []Product {
	return s.pick(func(p Product) bool { return p.Discount > 20 })
}

func (s *Snapshot) pick(keep func(Product) bool) []Product {
	out := make([]Product, 0)
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
