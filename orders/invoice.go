package orders

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"shoply/models"
	"shoply/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PrintInvoice renders a PDF invoice for the order: line items from the cart
// snapshot, the stored total, and the current status.
func (s *Service) PrintInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("orderId")

	order, err := s.Get(ctx, orderID)
	if err == ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	} else if err != nil {
		log.Printf("PrintInvoice order lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load order")
		return
	}

	// The cart may have been cleared since; the invoice still renders with
	// the order's stored total.
	var cart models.Cart
	err = s.store.Carts.FindOne(ctx, bson.M{"id": order.CartID}).Decode(&cart)
	if err != nil && err != mongo.ErrNoDocuments {
		log.Printf("PrintInvoice cart lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order ID: %s", order.ID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("User ID: %s", order.UserID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", order.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(12)

	if len(cart.Products) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(80, 8, "Product")
		pdf.Cell(30, 8, "Qty")
		pdf.Cell(40, 8, "Unit Price")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 12)
		for _, item := range cart.Products {
			pdf.Cell(80, 8, item.ProductID)
			pdf.Cell(30, 8, fmt.Sprintf("%d", item.Quantity))
			pdf.Cell(40, 8, fmt.Sprintf("%.2f", item.Amount))
			pdf.Ln(8)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Total: %.2f INR", order.TotalAmount))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("PrintInvoice PDF render error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", order.ID))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("PrintInvoice write error: %v", err)
	}
}
