package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/chicken-vending/internal/service"
)

func (s *Service) ListProducts(w http.ResponseWriter, r *http.Request) error {
	products, err := s.productSvc.ListProducts(r.Context())
	if err != nil {
		return fmt.Errorf("product service list products: %w", err)
	}

	items := make([]productListItem, 0, len(products))
	for _, product := range products {
		items = append(items, newProductListItem(product))
	}

	return s.writeJSON(w, r, http.StatusOK, items)
}

func (s *Service) CreateProduct(w http.ResponseWriter, r *http.Request) error {
	var req createProductRequest
	if err := s.decodeBody(r, &req); err != nil {
		return err
	}

	product, err := s.productSvc.CreateProduct(r.Context(), service.CreateProductParams{
		Name:       *req.ProductName,
		PricePerKg: *req.PricePerKg,
		StockKg:    *req.StockKg,
	})
	if err != nil {
		return fmt.Errorf("product service create product: %w", err)
	}

	return s.writeJSON(w, r, http.StatusCreated, newProductResponse(product))
}

func (s *Service) GetProduct(w http.ResponseWriter, r *http.Request) error {
	var id int64
	if err := bindPathParam(r, "product_id", &id); err != nil {
		return err
	}

	product, err := s.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		return fmt.Errorf("product service get product: %w", err)
	}

	return s.writeJSON(w, r, http.StatusOK, newProductResponse(product))
}

func (s *Service) UpdateProduct(w http.ResponseWriter, r *http.Request) error {
	var req updateProductRequest
	if err := s.decodeBody(r, &req); err != nil {
		return err
	}

	product, err := s.productSvc.UpdateProduct(r.Context(), *req.ProductID, req.ProductPatch)
	if err != nil {
		return fmt.Errorf("product service update product: %w", err)
	}

	return s.writeJSON(w, r, http.StatusOK, newProductResponse(product))
}

func (s *Service) DeleteProduct(w http.ResponseWriter, r *http.Request) error {
	var id int64
	if err := bindPathParam(r, "product_id", &id); err != nil {
		return err
	}

	product, err := s.productSvc.DeleteProduct(r.Context(), id)
	if err != nil {
		return fmt.Errorf("product service delete product: %w", err)
	}

	return s.writeJSON(w, r, http.StatusOK, deleteProductResponse{
		Message:   fmt.Sprintf("Product '%s' deleted successfully", product.Name),
		ProductID: product.ID,
	})
}
