package entities

// SupplierID identifies a supplier in the registry
type SupplierID int64

// Supplier represents a registered supplier and the products it supplies
type Supplier struct {
	ID               SupplierID
	Name             string
	Contact          string
	ProductsSupplied []ProductID // appended in product creation order
}

// Clone returns a deep copy of the supplier
func (s *Supplier) Clone() *Supplier {
	out := *s
	out.ProductsSupplied = make([]ProductID, len(s.ProductsSupplied))
	copy(out.ProductsSupplied, s.ProductsSupplied)
	return &out
}
