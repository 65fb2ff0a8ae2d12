package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	productsFile    = "all_prods.json"
	faqsFile        = "faqs.json"
	promosFile      = "promos.json"
	submissionsFile = "cust_serv.json"

	documentPerm = 0o644
)

// FileStore serves the catalog out of flat JSON documents under dir. Reads
// go straight to disk on every call. Only the submissions document is ever
// written, and its read-modify-write is serialized by submitMu.
type FileStore struct {
	dir      string
	validate *validator.Validate

	submitMu sync.Mutex
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:      dir,
		validate: validator.New(),
	}
}

func (s *FileStore) Ping(ctx context.Context) error {
	if _, err := os.Stat(filepath.Join(s.dir, productsFile)); err != nil {
		return err
	}
	return nil
}

func (s *FileStore) ListProducts(ctx context.Context) (ProductDocument, error) {
	var doc ProductDocument
	if err := s.readDocument(productsFile, &doc); err != nil {
		return ProductDocument{}, err
	}
	return doc, nil
}

func (s *FileStore) FilterByCategory(ctx context.Context, category string) (ProductDocument, error) {
	var doc ProductDocument
	if err := s.readDocument(productsFile, &doc); err != nil {
		return ProductDocument{}, err
	}

	want := strings.ToLower(category)
	matched := make([]Product, 0, len(doc.Products))
	for _, p := range doc.Products {
		if strings.ToLower(p.Category) == want {
			matched = append(matched, p)
		}
	}

	if len(matched) == 0 {
		return ProductDocument{}, &NotFoundError{Msg: fmt.Sprintf("Category %s not found.", category)}
	}
	return ProductDocument{Products: matched}, nil
}

func (s *FileStore) GetByID(ctx context.Context, id string) (Product, error) {
	var doc ProductDocument
	if err := s.readDocument(productsFile, &doc); err != nil {
		return Product{}, err
	}

	// First match in document order wins if ids ever collide.
	want := strings.ToLower(id)
	for _, p := range doc.Products {
		if strings.ToLower(p.ID) == want {
			return p, nil
		}
	}
	return Product{}, &NotFoundError{Msg: fmt.Sprintf("Product ID %s not found.", id)}
}

func (s *FileStore) ListFAQs(ctx context.Context) (FAQDocument, error) {
	var doc FAQDocument
	if err := s.readDocument(faqsFile, &doc); err != nil {
		return FAQDocument{}, err
	}
	return doc, nil
}

func (s *FileStore) ListPromos(ctx context.Context) (PromoDocument, error) {
	var doc PromoDocument
	if err := s.readDocument(promosFile, &doc); err != nil {
		return PromoDocument{}, err
	}
	return doc, nil
}

// SubmitFeedback appends one record to the submissions document and rewrites
// it in full. A missing document is an initialization trigger, not an error;
// the first submission creates it.
func (s *FileStore) SubmitFeedback(ctx context.Context, req SubmitRequest) (string, error) {
	if err := s.validate.Struct(req); err != nil {
		return "", &ValidationError{Msg: MissingParamsMessage}
	}

	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	path := filepath.Join(s.dir, submissionsFile)

	var doc SubmissionDocument
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		doc.FormSubmissions = []Submission{}
	case err != nil:
		return "", &StorageError{Op: "read", Path: path, Err: err}
	default:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return "", &StorageError{Op: "read", Path: path, Err: err}
		}
	}

	doc.FormSubmissions = append(doc.FormSubmissions, Submission{
		ID:         "s_" + uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Feedback:   req.Feedback,
		Phone:      req.Phone,
		ReceivedAt: time.Now().UTC().Format(time.RFC3339),
	})

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := os.WriteFile(path, out, documentPerm); err != nil {
		return "", &StorageError{Op: "write", Path: path, Err: err}
	}

	return fmt.Sprintf("Request to add %s's feedback successfully received!", req.Name), nil
}

func (s *FileStore) readDocument(name string, v any) error {
	path := filepath.Join(s.dir, name)

	raw, err := os.ReadFile(path)
	if err != nil {
		return &StorageError{Op: "read", Path: path, Err: err}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &StorageError{Op: "read", Path: path, Err: err}
	}
	return nil
}
