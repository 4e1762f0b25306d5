package invoices

import "time"

// Application is the body of POST /api/account/invoice/apply
type Application struct {
	Title       string `json:"title"`
	TaxID       string `json:"taxId"`
	Email       string `json:"email"`
	TotalAmount int64  `json:"totalAmount"`
	Remark      string `json:"remark,omitempty"`
}

type Detail struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	TaxID       string    `json:"taxId"`
	Email       string    `json:"email"`
	TotalAmount int64     `json:"totalAmount"`
	Remark      string    `json:"remark,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
