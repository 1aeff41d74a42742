package entities

// LineItem is a single product purchase inside an order.
type LineItem struct {
	ProductID   string  `dynamodbav:"productId" json:"productId"`
	ProductName string  `dynamodbav:"productName" json:"productName"`
	Quantity    int     `dynamodbav:"quantity" json:"quantity"`
	UnitPrice   float64 `dynamodbav:"unitPrice" json:"unitPrice"`
}

// Order belongs to exactly one campaign, keyed by (campaignId, orderId).
// Hard-deleted whenever its owning campaign is deleted.
type Order struct {
	CampaignID    string     `dynamodbav:"campaignId" json:"campaignId"`
	OrderID       string     `dynamodbav:"orderId" json:"orderId"`
	ProfileID     string     `dynamodbav:"profileId" json:"profileId"`
	CustomerName  string     `dynamodbav:"customerName" json:"customerName"`
	CustomerPhone string     `dynamodbav:"customerPhone,omitempty" json:"customerPhone,omitempty"`
	LineItems     []LineItem `dynamodbav:"lineItems" json:"lineItems"`
	TotalAmount   float64    `dynamodbav:"totalAmount" json:"totalAmount"`
	PaymentMethod string     `dynamodbav:"paymentMethod" json:"paymentMethod"`
	OrderDate     string     `dynamodbav:"orderDate" json:"orderDate"`
	CreatedAt     string     `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt     string     `dynamodbav:"updatedAt" json:"updatedAt"`
}
