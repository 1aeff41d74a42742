package entities

// CatalogType distinguishes user-owned catalogs from global admin-managed ones.
type CatalogType string

const (
	CatalogTypeUserOwned    CatalogType = "USER_OWNED"
	CatalogTypeAdminManaged CatalogType = "ADMIN_MANAGED"
)

// Product is a sellable item inside a catalog.
type Product struct {
	ProductID   string  `dynamodbav:"productId" json:"productId"`
	ProductName string  `dynamodbav:"productName" json:"productName"`
	Description string  `dynamodbav:"description,omitempty" json:"description,omitempty"`
	Price       float64 `dynamodbav:"price" json:"price"`
	SortOrder   int     `dynamodbav:"sortOrder" json:"sortOrder"`
}

// Catalog is a product list, keyed by catalogId alone. Catalogs are never
// physically deleted when their owner is purged: historical orders and
// campaigns keep referencing them, so removal is a soft-delete flag.
type Catalog struct {
	CatalogID      string      `dynamodbav:"catalogId" json:"catalogId"`
	CatalogName    string      `dynamodbav:"catalogName" json:"catalogName"`
	CatalogType    CatalogType `dynamodbav:"catalogType" json:"catalogType"`
	OwnerAccountID string      `dynamodbav:"ownerAccountId" json:"ownerAccountId"`
	IsPublic       bool        `dynamodbav:"isPublic" json:"isPublic"`
	IsDeleted      bool        `dynamodbav:"isDeleted,omitempty" json:"isDeleted,omitempty"`
	Products       []Product   `dynamodbav:"products" json:"products"`
	CreatedAt      string      `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt      string      `dynamodbav:"updatedAt" json:"updatedAt"`
}
