package catalog

import "context"

type Product struct {
	Image       string `json:"image"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	ID          string `json:"id"`
	Description string `json:"description"`
}

// ProductDocument mirrors the on-disk shape of all_prods.json.
type ProductDocument struct {
	Products []Product `json:"products"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQDocument struct {
	FAQs []FAQ `json:"faqs"`
}

type Promo struct {
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	SaleDescription string `json:"sale_description"`
}

type PromoDocument struct {
	Promos []Promo `json:"promos"`
}

type Submission struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Feedback   string `json:"feedback"`
	Phone      string `json:"phone"`
	ReceivedAt string `json:"received_at"`
}

// SubmissionDocument mirrors the on-disk shape of cust_serv.json. The
// form_submissions array only ever grows; prior entries are never altered.
type SubmissionDocument struct {
	FormSubmissions []Submission `json:"form_submissions"`
}

// SubmitRequest is a contact-form submission. Name, email, and feedback are
// required; phone defaults to the empty string.
type SubmitRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Feedback string `json:"feedback" validate:"required"`
	Phone    string `json:"phone"`
}

// Store is the catalog data-access layer. Every read re-parses the backing
// document from disk; nothing is cached across calls.
type Store interface {
	Ping(ctx context.Context) error

	ListProducts(ctx context.Context) (ProductDocument, error)
	FilterByCategory(ctx context.Context, category string) (ProductDocument, error)
	GetByID(ctx context.Context, id string) (Product, error)

	ListFAQs(ctx context.Context) (FAQDocument, error)
	ListPromos(ctx context.Context) (PromoDocument, error)

	SubmitFeedback(ctx context.Context, req SubmitRequest) (string, error)
}
