package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testProducts = `{
  "products": [
    {"image": "/img/a1.jpg", "name": "Claw Hammer", "price": "12.99", "category": "Tools", "id": "A1", "description": "16 oz hammer"},
    {"image": "/img/a2.jpg", "name": "Screwdriver Set", "price": "19.49", "category": "Tools", "id": "A2", "description": "12-piece set"},
    {"image": "/img/b1.jpg", "name": "Garden Trowel", "price": "7.25", "category": "Garden", "id": "B1", "description": "steel trowel"}
  ]
}`

const testFAQs = `{
  "faqs": [
    {"question": "Do you ship internationally?", "answer": "US and Canada only."}
  ]
}`

const testPromos = `{
  "promos": [
    {"start_date": "2026-06-01", "end_date": "2026-06-15", "sale_description": "15% off Garden"}
  ]
}`

func seedDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "all_prods.json"), []byte(testProducts), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "faqs.json"), []byte(testFAQs), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "promos.json"), []byte(testPromos), 0o644))
	return dir
}

func TestFileStore_ListProducts(t *testing.T) {
	s := NewFileStore(seedDir(t))

	doc, err := s.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Products, 3)
	require.Equal(t, "A1", doc.Products[0].ID)
	require.Equal(t, "Claw Hammer", doc.Products[0].Name)
}

func TestFileStore_ListProducts_MissingFile(t *testing.T) {
	s := NewFileStore(t.TempDir())

	_, err := s.ListProducts(context.Background())
	var se *StorageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "read", se.Op)
}

func TestFileStore_ListProducts_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "all_prods.json"), []byte("{not json"), 0o644))
	s := NewFileStore(dir)

	_, err := s.ListProducts(context.Background())
	var se *StorageError
	require.ErrorAs(t, err, &se)
}

func TestFileStore_FilterByCategory(t *testing.T) {
	s := NewFileStore(seedDir(t))

	// lowercased query matches the stored "Tools" casing
	doc, err := s.FilterByCategory(context.Background(), "tools")
	require.NoError(t, err)
	require.Len(t, doc.Products, 2)
	for _, p := range doc.Products {
		require.Equal(t, "Tools", p.Category)
	}

	doc, err = s.FilterByCategory(context.Background(), "GARDEN")
	require.NoError(t, err)
	require.Len(t, doc.Products, 1)
	require.Equal(t, "B1", doc.Products[0].ID)
}

func TestFileStore_FilterByCategory_NotFound(t *testing.T) {
	s := NewFileStore(seedDir(t))

	_, err := s.FilterByCategory(context.Background(), "nope")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	// the message echoes the category exactly as given
	require.Equal(t, "Category nope not found.", nf.Msg)

	_, err = s.FilterByCategory(context.Background(), "NoPe")
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "Category NoPe not found.", nf.Msg)
}

func TestFileStore_GetByID(t *testing.T) {
	s := NewFileStore(seedDir(t))

	p, err := s.GetByID(context.Background(), "a2")
	require.NoError(t, err)
	require.Equal(t, "A2", p.ID)
	require.Equal(t, "Screwdriver Set", p.Name)
}

func TestFileStore_GetByID_NotFound(t *testing.T) {
	s := NewFileStore(seedDir(t))

	_, err := s.GetByID(context.Background(), "ZZ")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "Product ID ZZ not found.", nf.Msg)
}

func TestFileStore_GetByID_DuplicateTakesFirst(t *testing.T) {
	dir := t.TempDir()
	dup := `{"products": [
		{"id": "X1", "name": "first", "category": "Tools"},
		{"id": "x1", "name": "second", "category": "Tools"}
	]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "all_prods.json"), []byte(dup), 0o644))
	s := NewFileStore(dir)

	p, err := s.GetByID(context.Background(), "X1")
	require.NoError(t, err)
	require.Equal(t, "first", p.Name)
}

func TestFileStore_ListFAQs(t *testing.T) {
	s := NewFileStore(seedDir(t))

	doc, err := s.ListFAQs(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.FAQs, 1)
	require.Equal(t, "Do you ship internationally?", doc.FAQs[0].Question)
}

func TestFileStore_ListPromos(t *testing.T) {
	s := NewFileStore(seedDir(t))

	doc, err := s.ListPromos(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Promos, 1)
	require.Equal(t, "2026-06-01", doc.Promos[0].StartDate)
}

func TestFileStore_ReadsDoNotMutateFiles(t *testing.T) {
	dir := seedDir(t)
	s := NewFileStore(dir)
	ctx := context.Background()

	before, err := os.ReadFile(filepath.Join(dir, "all_prods.json"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := s.ListProducts(ctx)
		require.NoError(t, err)
		_, err = s.FilterByCategory(ctx, "tools")
		require.NoError(t, err)
		_, err = s.GetByID(ctx, "A1")
		require.NoError(t, err)
		_, err = s.ListFAQs(ctx)
		require.NoError(t, err)
		_, err = s.ListPromos(ctx)
		require.NoError(t, err)
	}

	after, err := os.ReadFile(filepath.Join(dir, "all_prods.json"))
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestFileStore_SubmitFeedback_CreatesDocument(t *testing.T) {
	dir := seedDir(t)
	s := NewFileStore(dir)

	msg, err := s.SubmitFeedback(context.Background(), SubmitRequest{
		Name:     "Eric",
		Email:    "e@x.com",
		Feedback: "Great",
	})
	require.NoError(t, err)
	require.Equal(t, "Request to add Eric's feedback successfully received!", msg)

	raw, err := os.ReadFile(filepath.Join(dir, "cust_serv.json"))
	require.NoError(t, err)

	var doc SubmissionDocument
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc.FormSubmissions, 1)

	got := doc.FormSubmissions[0]
	require.Equal(t, "Eric", got.Name)
	require.Equal(t, "e@x.com", got.Email)
	require.Equal(t, "Great", got.Feedback)
	require.Empty(t, got.Phone)
	require.NotEmpty(t, got.ID)

	_, err = time.Parse(time.RFC3339, got.ReceivedAt)
	require.NoError(t, err)
}

func TestFileStore_SubmitFeedback_AppendsToExisting(t *testing.T) {
	dir := seedDir(t)
	s := NewFileStore(dir)
	ctx := context.Background()

	_, err := s.SubmitFeedback(ctx, SubmitRequest{Name: "Eric", Email: "e@x.com", Feedback: "Great"})
	require.NoError(t, err)

	_, err = s.SubmitFeedback(ctx, SubmitRequest{Name: "Dana", Email: "d@x.com", Feedback: "Fine", Phone: "555-0101"})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "cust_serv.json"))
	require.NoError(t, err)

	var doc SubmissionDocument
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc.FormSubmissions, 2)
	require.Equal(t, "Eric", doc.FormSubmissions[0].Name)
	require.Equal(t, "Dana", doc.FormSubmissions[1].Name)
	require.Equal(t, "555-0101", doc.FormSubmissions[1].Phone)
}

func TestFileStore_SubmitFeedback_MissingFields(t *testing.T) {
	dir := seedDir(t)
	s := NewFileStore(dir)
	ctx := context.Background()

	cases := []SubmitRequest{
		{Email: "e@x.com", Feedback: "Great"},
		{Name: "Eric", Feedback: "Great"},
		{Name: "Eric", Email: "e@x.com"},
		{},
	}
	for _, req := range cases {
		_, err := s.SubmitFeedback(ctx, req)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		require.Equal(t, "Did not include all POST parameters of name, email, and feedback!", ve.Msg)
	}

	// no submission ever reached disk
	_, err := os.Stat(filepath.Join(dir, "cust_serv.json"))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileStore_SubmitFeedback_CorruptDocument(t *testing.T) {
	dir := seedDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cust_serv.json"), []byte("{broken"), 0o644))
	s := NewFileStore(dir)

	_, err := s.SubmitFeedback(context.Background(), SubmitRequest{Name: "Eric", Email: "e@x.com", Feedback: "Great"})
	var se *StorageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "read", se.Op)
}

func TestFileStore_Ping(t *testing.T) {
	s := NewFileStore(seedDir(t))
	require.NoError(t, s.Ping(context.Background()))

	empty := NewFileStore(t.TempDir())
	require.Error(t, empty.Ping(context.Background()))
}
